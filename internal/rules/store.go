// Package rules persists per-user track rule sets.
package rules

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/vmunix/trackarr/pkg/tracks"
)

// Store reads and writes rule set documents in SQLite. Each user's rule
// set is stored as a single JSON document and replaced wholesale on
// every save.
type Store struct {
	db     *sql.DB
	locks  *lockRegistry
	logger *slog.Logger
}

// NewStore creates a new rules store.
func NewStore(db *sql.DB, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		db:     db,
		locks:  newLockRegistry(),
		logger: logger.With("component", "rules-store"),
	}
}

// Get returns the rule set for a user, creating an empty one on first
// access. Malformed persisted data is treated as "no rules" so playback
// is never blocked; older schema versions are upgraded in place.
func (s *Store) Get(userID string) (*tracks.RuleSet, error) {
	var payload string
	err := s.db.QueryRow(`SELECT payload FROM user_rules WHERE user_id = ?`, userID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return tracks.NewRuleSet(userID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("get rules for %s: %w", userID, err)
	}

	var set tracks.RuleSet
	if err := json.Unmarshal([]byte(payload), &set); err != nil {
		s.logger.Warn("malformed rule set, treating as empty",
			"user_id", userID,
			"error", err)
		return tracks.NewRuleSet(userID), nil
	}
	set.UserID = userID
	if set.Rules == nil {
		set.Rules = []tracks.Rule{}
	}
	if set.Upgrade() {
		s.logger.Info("upgraded rule set schema",
			"user_id", userID,
			"version", set.Version)
	}
	return &set, nil
}

// Save replaces the stored rule set for a user.
func (s *Store) Save(set *tracks.RuleSet) error {
	set.Upgrade()
	payload, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("marshal rules for %s: %w", set.UserID, err)
	}

	_, err = s.db.Exec(`
		INSERT INTO user_rules (user_id, version, payload, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			version = excluded.version,
			payload = excluded.payload,
			updated_at = excluded.updated_at`,
		set.UserID, set.Version, string(payload), time.Now(),
	)
	if err != nil {
		return fmt.Errorf("save rules for %s: %w", set.UserID, err)
	}
	return nil
}

// Update runs a read-modify-write cycle under the user's advisory lock,
// so concurrent updates to the same user never lose writes.
func (s *Store) Update(userID string, fn func(*tracks.RuleSet) error) (*tracks.RuleSet, error) {
	unlock := s.locks.lock(userID)
	defer unlock()

	set, err := s.Get(userID)
	if err != nil {
		return nil, err
	}
	if err := fn(set); err != nil {
		return nil, err
	}
	if err := s.Save(set); err != nil {
		return nil, err
	}
	return set, nil
}

// Delete removes a user's rule set. Idempotent.
func (s *Store) Delete(userID string) error {
	unlock := s.locks.lock(userID)
	defer unlock()

	if _, err := s.db.Exec(`DELETE FROM user_rules WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("delete rules for %s: %w", userID, err)
	}
	return nil
}

// ListUsers returns the ids of all users with a stored rule set.
func (s *Store) ListUsers() ([]string, error) {
	rows, err := s.db.Query(`SELECT user_id FROM user_rules ORDER BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var users []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, id)
	}
	return users, rows.Err()
}
