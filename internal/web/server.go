// Package web serves the browser front end: an HTML page driven by form
// posts, a JSON API over the same operations, and a websocket chat channel.
package web

import (
	"bufio"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"TraceTutor/internal/catalog"
	"TraceTutor/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

// SessionCookie names the cookie that binds a browser to its view state.
const SessionCookie = "tracetutor_session"

// Tutor is the subset of tutor.Tutor the server drives.
type Tutor interface {
	Send(ctx context.Context, st *session.State, input string) (session.Message, error)
	Recommend(ctx context.Context, st *session.State, query string) error
}

// Server is the HTTP handler for the web front end.
type Server struct {
	tutor    Tutor
	catalog  *catalog.Catalog
	registry *session.Registry
	logger   *slog.Logger
	tmpl     *template.Template
	upgrader websocket.Upgrader
	mux      *http.ServeMux
}

// NewServer creates a Server. Each browser gets its own session.State from
// registry, keyed by the session cookie.
func NewServer(t Tutor, cat *catalog.Catalog, registry *session.Registry, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}

	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	s := &Server{
		tutor:    t,
		catalog:  cat,
		registry: registry,
		logger:   logger,
		tmpl:     tmpl,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		mux: http.NewServeMux(),
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("POST /theme", s.handleTheme)
	s.mux.HandleFunc("POST /chat", s.handleChatForm)
	s.mux.HandleFunc("POST /recommend", s.handleRecommendForm)
	s.mux.HandleFunc("POST /projects/{id}/start", s.handleStartProject)
	s.mux.HandleFunc("POST /paths/{id}/start", s.handleStartPath)

	s.mux.HandleFunc("GET /api/projects", s.handleAPIProjects)
	s.mux.HandleFunc("GET /api/paths", s.handleAPIPaths)
	s.mux.HandleFunc("GET /api/plans", s.handleAPIPlans)
	s.mux.HandleFunc("GET /api/transcript", s.handleAPITranscript)
	s.mux.HandleFunc("POST /api/chat", s.handleAPIChat)
	s.mux.HandleFunc("POST /api/recommend", s.handleAPIRecommend)

	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	s.mux.ServeHTTP(rec, r)
	s.logger.Info("http request",
		"method", r.Method,
		"path", r.URL.Path,
		"status", rec.status,
		"duration_ms", time.Since(start).Milliseconds(),
	)
}

// state returns the caller's view state, creating a session if the cookie is
// missing or expired. The cookie is written to header so websocket upgrades
// can pass it along with the handshake response.
func (s *Server) state(header http.Header, r *http.Request) *session.State {
	_, st := s.lookupSession(header, r)
	return st
}

// lookupSession is state plus the registry id the state is stored under.
func (s *Server) lookupSession(header http.Header, r *http.Request) (string, *session.State) {
	if c, err := r.Cookie(SessionCookie); err == nil {
		if st, ok := s.registry.Get(c.Value); ok {
			return c.Value, st
		}
	}

	id, st := s.registry.Create()
	cookie := &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	header.Add("Set-Cookie", cookie.String())
	s.logger.Debug("created session", "sessions", s.registry.Count())
	return id, st
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": s.registry.Count(),
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// Hijack lets websocket upgrades through the recorder.
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	r.status = http.StatusSwitchingProtocols
	return hj.Hijack()
}
