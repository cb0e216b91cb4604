package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"TraceTutor/internal/catalog"
	"TraceTutor/internal/session"
	"TraceTutor/internal/tutor"
)

type chatRequest struct {
	Message string `json:"message"`
}

type recommendRequest struct {
	Query string `json:"query"`
}

type transcriptResponse struct {
	Messages  []session.Message `json:"messages"`
	Pending   bool              `json:"pending"`
	ActiveTab session.Tab       `json:"active_tab"`
}

type chatResponse struct {
	Reply session.Message `json:"reply"`
	transcriptResponse
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "status", status, "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}

func transcriptOf(st *session.State) transcriptResponse {
	snap := st.Snapshot()
	return transcriptResponse{
		Messages:  snap.Messages,
		Pending:   snap.Pending,
		ActiveTab: snap.ActiveTab,
	}
}

// handleAPIProjects filters the catalog with the q and level parameters. It
// does not touch session state.
func (s *Server) handleAPIProjects(w http.ResponseWriter, r *http.Request) {
	level, err := catalog.ParseLevel(r.URL.Query().Get("level"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, catalog.Filter(r.URL.Query().Get("q"), level, s.catalog.Projects))
}

func (s *Server) handleAPIPaths(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.catalog.LearningPaths)
}

func (s *Server) handleAPIPlans(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.catalog.Plans)
}

func (s *Server) handleAPITranscript(w http.ResponseWriter, r *http.Request) {
	st := s.state(w.Header(), r)
	s.writeJSON(w, http.StatusOK, transcriptOf(st))
}

func (s *Server) handleAPIChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	st := s.state(w.Header(), r)
	reply, err := s.tutor.Send(r.Context(), st, req.Message)
	switch {
	case errors.Is(err, tutor.ErrEmptyInput):
		s.writeError(w, http.StatusBadRequest, "message is empty")
		return
	case errors.Is(err, tutor.ErrRoundTripPending):
		s.writeError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, chatResponse{Reply: reply, transcriptResponse: transcriptOf(st)})
}

func (s *Server) handleAPIRecommend(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	st := s.state(w.Header(), r)
	st.SetSearch(req.Query)

	err := s.tutor.Recommend(r.Context(), st, req.Query)
	switch {
	case errors.Is(err, tutor.ErrEmptyQuery):
		s.writeError(w, http.StatusBadRequest, "query is empty")
		return
	case err != nil:
		s.writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, transcriptOf(st))
}
