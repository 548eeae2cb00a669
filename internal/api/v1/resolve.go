package v1

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/vmunix/trackarr/pkg/tracks"
)

// resolve runs the rule engine against a posted stream list without
// touching any session: a dry run for testing rules.
func (s *Server) resolve(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "missing_user", "userId is required")
		return
	}

	set, err := s.rules.Get(req.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "store_error", err.Error())
		return
	}

	result := tracks.Resolve(set, tracks.Context{
		UserID:               req.UserID,
		SeriesID:             req.SeriesID,
		LibraryID:            req.LibraryID,
		Streams:              req.Streams,
		CurrentAudioIndex:    req.CurrentAudioIndex,
		CurrentSubtitleIndex: req.CurrentSubtitleIndex,
	})

	resp := resolveResponse{Changed: result.HasChange()}
	if result.HasChange() {
		resp.Scope = result.Scope.String()
		resp.AudioIndex = result.AudioIndex
		resp.SubtitleIndex = result.SubtitleIndex
	}
	writeJSON(w, http.StatusOK, resp)
}

// getStatus reports daemon health.
func (s *Server) getStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{
		Version: s.version,
		Uptime:  time.Since(s.started).Round(time.Second).String(),
	})
}

// listSessions proxies the media server's active sessions.
func (s *Server) listSessions(w http.ResponseWriter, r *http.Request) {
	if s.sessions == nil {
		writeError(w, http.StatusServiceUnavailable, "no_media_server", "media server not configured")
		return
	}
	sessions, err := s.sessions.Sessions(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, "media_server_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

// listEvents returns recent events from the log.
func (s *Server) listEvents(w http.ResponseWriter, r *http.Request) {
	if s.eventLog == nil {
		writeJSON(w, http.StatusOK, []struct{}{})
		return
	}

	since := time.Now().Add(-24 * time.Hour)
	if q := r.URL.Query().Get("since"); q != "" {
		t, err := time.Parse(time.RFC3339, q)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_since", "since must be RFC3339")
			return
		}
		since = t
	}

	evts, err := s.eventLog.Since(since)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "store_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, evts)
}
