// Package v1 implements the native REST API.
package v1

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/vmunix/trackarr/internal/events"
	"github.com/vmunix/trackarr/internal/rules"
	"github.com/vmunix/trackarr/pkg/mediaserver"
)

// sessionLister is the slice of the media server client the API needs.
type sessionLister interface {
	Sessions(ctx context.Context) ([]mediaserver.Session, error)
}

// Server is the v1 API server.
type Server struct {
	rules    *rules.Store
	bus      *events.Bus
	eventLog *events.EventLog
	sessions sessionLister
	version  string
	started  time.Time
	logger   *slog.Logger
}

// New creates a new v1 API server.
func New(store *rules.Store, bus *events.Bus, eventLog *events.EventLog, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		rules:    store,
		bus:      bus,
		eventLog: eventLog,
		version:  version,
		started:  time.Now(),
		logger:   logger.With("component", "api"),
	}
}

// SetSessionLister configures the media server client used by the
// sessions endpoint.
func (s *Server) SetSessionLister(lister sessionLister) {
	s.sessions = lister
}

// RegisterRoutes registers API routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	// Rules
	mux.HandleFunc("GET /api/v1/users", s.listUsers)
	mux.HandleFunc("GET /api/v1/users/{id}/rules", s.getRules)
	mux.HandleFunc("PUT /api/v1/users/{id}/rules", s.putRules)
	mux.HandleFunc("DELETE /api/v1/users/{id}/rules", s.deleteRules)

	// Resolution
	mux.HandleFunc("POST /api/v1/resolve", s.resolve)

	// System
	mux.HandleFunc("GET /api/v1/status", s.getStatus)
	mux.HandleFunc("GET /api/v1/sessions", s.listSessions)
	mux.HandleFunc("GET /api/v1/events", s.listEvents)
}

// Error response
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, code int, errCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: message, Code: errCode})
}

func writeJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}

// pathUserID extracts the user id from the URL path.
func pathUserID(r *http.Request) string {
	return r.PathValue("id")
}
