package web

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"TraceTutor/internal/catalog"
	"TraceTutor/internal/session"
	"TraceTutor/internal/tutor"
)

var templateFuncs = template.FuncMap{
	"join": strings.Join,
	"price": func(monthly int) string {
		if monthly == 0 {
			return "Free"
		}
		return fmt.Sprintf("$%d/month", monthly)
	},
	"isUser": func(m session.Message) bool { return m.Role == session.RoleUser },
}

type pageData struct {
	session.Snapshot

	Tabs         []session.Tab
	Levels       []catalog.Level
	Catalog      *catalog.Catalog
	Projects     []catalog.Project
	Project      *catalog.Project
	Path         *catalog.LearningPath
	PathProjects []catalog.Project
	Headline     string
	Tagline      string
	Error        string
}

// handleIndex renders the page. The tab, q, level and close query parameters
// update the view state first so that plain links can drive navigation.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	st := s.state(w.Header(), r)
	q := r.URL.Query()

	data := pageData{Error: q.Get("error")}

	if tab, ok := session.ParseTab(q.Get("tab")); ok {
		st.SelectTab(tab)
	}
	if q.Has("q") {
		st.SetSearch(q.Get("q"))
	}
	if q.Has("level") {
		lvl, err := catalog.ParseLevel(q.Get("level"))
		if err != nil {
			data.Error = err.Error()
		} else {
			st.SetLevel(lvl)
		}
	}
	if q.Has("close") {
		st.CloseDetail()
	}

	data.Snapshot = st.Snapshot()
	data.Tabs = session.Tabs
	data.Levels = catalog.Levels
	data.Catalog = s.catalog
	data.Projects = catalog.Filter(data.Search, data.Level, s.catalog.Projects)
	data.Headline = catalog.Headline
	data.Tagline = catalog.Tagline
	if p, ok := s.catalog.Project(data.CurrentProject); ok {
		data.Project = &p
	}
	if lp, ok := s.catalog.LearningPath(data.CurrentPath); ok {
		data.Path = &lp
		data.PathProjects = s.catalog.PathProjects(lp)
	}

	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, "index.html", data); err != nil {
		s.logger.Error("failed to render page", "error", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

func (s *Server) handleTheme(w http.ResponseWriter, r *http.Request) {
	st := s.state(w.Header(), r)
	st.ToggleDarkMode()
	redirect(w, r, st.ActiveTab(), "")
}

func (s *Server) handleChatForm(w http.ResponseWriter, r *http.Request) {
	st := s.state(w.Header(), r)
	st.SelectTab(session.TabTutor)

	_, err := s.tutor.Send(r.Context(), st, r.FormValue("message"))
	switch {
	case err == nil, errors.Is(err, tutor.ErrEmptyInput):
		redirect(w, r, session.TabTutor, "")
	case errors.Is(err, tutor.ErrRoundTripPending):
		redirect(w, r, session.TabTutor, "The tutor is still answering your last question.")
	default:
		redirect(w, r, session.TabTutor, err.Error())
	}
}

func (s *Server) handleRecommendForm(w http.ResponseWriter, r *http.Request) {
	st := s.state(w.Header(), r)
	query := r.FormValue("q")
	st.SetSearch(query)

	err := s.tutor.Recommend(r.Context(), st, query)
	switch {
	case err == nil:
		redirect(w, r, session.TabTutor, "")
	case errors.Is(err, tutor.ErrEmptyQuery):
		redirect(w, r, session.TabProjects, "")
	default:
		redirect(w, r, session.TabProjects, err.Error())
	}
}

func (s *Server) handleStartProject(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.Error(w, "invalid project id", http.StatusBadRequest)
		return
	}
	if _, ok := s.catalog.Project(id); !ok {
		http.NotFound(w, r)
		return
	}
	st := s.state(w.Header(), r)
	st.StartProject(id)
	redirect(w, r, session.TabProjects, "")
}

func (s *Server) handleStartPath(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.Error(w, "invalid learning path id", http.StatusBadRequest)
		return
	}
	if _, ok := s.catalog.LearningPath(id); !ok {
		http.NotFound(w, r)
		return
	}
	st := s.state(w.Header(), r)
	st.StartLearningPath(id)
	redirect(w, r, session.TabLearningPaths, "")
}

func redirect(w http.ResponseWriter, r *http.Request, tab session.Tab, errMsg string) {
	v := url.Values{"tab": {string(tab)}}
	if errMsg != "" {
		v.Set("error", errMsg)
	}
	http.Redirect(w, r, "/?"+v.Encode(), http.StatusSeeOther)
}
