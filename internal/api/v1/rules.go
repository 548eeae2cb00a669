package v1

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/vmunix/trackarr/internal/events"
	"github.com/vmunix/trackarr/pkg/language"
	"github.com/vmunix/trackarr/pkg/tracks"
)

// listUsers returns the ids of all users with stored rules.
func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.rules.ListUsers()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "store_error", err.Error())
		return
	}
	if users == nil {
		users = []string{}
	}
	writeJSON(w, http.StatusOK, usersResponse{Users: users})
}

// getRules returns a user's rule set, creating an empty one on first
// access.
func (s *Server) getRules(w http.ResponseWriter, r *http.Request) {
	userID := pathUserID(r)
	set, err := s.rules.Get(userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "store_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, set)
}

// putRules replaces a user's rule set wholesale.
func (s *Server) putRules(w http.ResponseWriter, r *http.Request) {
	userID := pathUserID(r)

	var incoming tracks.RuleSet
	if err := json.NewDecoder(r.Body).Decode(&incoming); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}

	warnings := ruleWarnings(incoming.Rules)

	set, err := s.rules.Update(userID, func(set *tracks.RuleSet) error {
		set.Rules = incoming.Rules
		if set.Rules == nil {
			set.Rules = []tracks.Rule{}
		}
		return nil
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "store_error", err.Error())
		return
	}

	if s.bus != nil {
		_ = s.bus.Publish(r.Context(), &events.RulesUpdated{
			BaseEvent: events.NewBaseEvent(events.EventRulesUpdated, events.EntityUser, userID),
			UserID:    userID,
			RuleCount: len(set.Rules),
		})
	}

	writeJSON(w, http.StatusOK, putRulesResponse{RuleSet: set, Warnings: warnings})
}

// deleteRules removes a user's rule set.
func (s *Server) deleteRules(w http.ResponseWriter, r *http.Request) {
	userID := pathUserID(r)
	if err := s.rules.Delete(userID); err != nil {
		writeError(w, http.StatusInternalServerError, "store_error", err.Error())
		return
	}

	if s.bus != nil {
		_ = s.bus.Publish(r.Context(), &events.RulesUpdated{
			BaseEvent: events.NewBaseEvent(events.EventRulesUpdated, events.EntityUser, userID),
			UserID:    userID,
			Deleted:   true,
		})
	}

	w.WriteHeader(http.StatusNoContent)
}

// ruleWarnings flags probable mistakes that do not make a rule invalid:
// inert non-global rules without a target, and language tokens that look
// like typos of a known alias. Unknown tokens are still stored as-is.
func ruleWarnings(ruleList []tracks.Rule) []string {
	var warnings []string
	for i := range ruleList {
		r := &ruleList[i]
		if r.Scope != tracks.ScopeGlobal && (r.TargetID == nil || *r.TargetID == "") {
			warnings = append(warnings, fmt.Sprintf("rule %d: %s scope without a target never matches", i, r.Scope))
		}
		for _, tok := range append(append([]string{}, r.Audio...), r.Subs...) {
			if suggestion, ok := language.Suggest(tok); ok {
				warnings = append(warnings, fmt.Sprintf("rule %d: unknown language %q (did you mean %q?)", i, tok, suggestion))
			}
		}
	}
	return warnings
}
