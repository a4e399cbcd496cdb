// Package server exposes the dashboard over HTTP.
//
// Routes:
//
//	GET /api/github/{username}  dashboard payload or {"error": "..."}
//	GET /healthz                liveness and build version
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/ghdash/pkg/buildinfo"
	"github.com/matzehuels/ghdash/pkg/dashboard"
	"github.com/matzehuels/ghdash/pkg/session"
)

// Builder builds dashboard responses. *dashboard.Service implements it.
type Builder interface {
	Build(ctx context.Context, req dashboard.Request) (*dashboard.Response, error)
}

// Options configures a Server.
type Options struct {
	// Logger receives request and error logs. Default log.Default().
	Logger *log.Logger
	// Sessions verifies session tokens. Nil treats every caller as anonymous.
	Sessions *session.Verifier
}

// Server is the HTTP front end of the dashboard service.
type Server struct {
	builder  Builder
	sessions *session.Verifier
	logger   *log.Logger
	router   chi.Router
}

// New creates a Server with its routes and middleware installed.
func New(b Builder, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	s := &Server{
		builder:  b,
		sessions: opts.Sessions,
		logger:   opts.Logger,
	}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/api/github", s.handleDashboard)
	r.Get("/api/github/", s.handleDashboard)
	r.Get("/api/github/{username}", s.handleDashboard)

	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(chi.URLParam(r, "username"))
	req := dashboard.Request{
		Username:       username,
		UserCredential: s.userCredential(r),
		Refresh:        bypassCache(r),
	}

	resp, err := s.builder.Build(r.Context(), req)
	if err != nil {
		status, msg := dashboard.Classify(err)
		s.logger.Error("dashboard build failed",
			"username", username,
			"status", status,
			"request_id", RequestIDFromContext(r.Context()),
			"err", err,
		)
		writeError(w, status, msg)
		return
	}

	w.Header().Set("Cache-Control", dashboard.CacheControl)
	writeJSON(w, http.StatusOK, resp)
}

// userCredential returns the GitHub token carried by the caller's session.
// Missing, invalid and expired sessions all yield "" so the request proceeds
// with the fallback credential.
func (s *Server) userCredential(r *http.Request) string {
	if s.sessions == nil {
		return ""
	}
	raw := session.TokenFromRequest(r)
	if raw == "" {
		return ""
	}
	sess, err := s.sessions.Verify(raw)
	if err != nil {
		s.logger.Debug("ignoring session", "err", err, "request_id", RequestIDFromContext(r.Context()))
		return ""
	}
	return sess.AccessToken
}

// bypassCache reports whether the caller asked for fresh upstream data.
func bypassCache(r *http.Request) bool {
	for _, v := range r.Header.Values("Cache-Control") {
		for _, directive := range strings.Split(v, ",") {
			switch strings.ToLower(strings.TrimSpace(directive)) {
			case "no-cache", "no-store":
				return true
			}
		}
	}
	return false
}

// =============================================================================
// Response Helpers
// =============================================================================

type errorBody struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
