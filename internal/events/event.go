// Package events provides the pub/sub bus and SQLite event log for
// session and rule activity.
package events

import "time"

// Event is the base interface all events implement.
type Event interface {
	EventType() string
	EntityType() string // "session", "user"
	EntityID() string
	OccurredAt() time.Time
}

// Event type names.
const (
	EventPlaybackSeen  = "playback.seen"
	EventTracksApplied = "tracks.applied"
	EventRulesUpdated  = "rules.updated"
)

// Entity type names.
const (
	EntitySession = "session"
	EntityUser    = "user"
)

// BaseEvent provides common fields for all events.
type BaseEvent struct {
	Type      string    `json:"type"`
	Entity    string    `json:"entity_type"`
	ID        string    `json:"entity_id"`
	Timestamp time.Time `json:"occurred_at"`
}

func (e BaseEvent) EventType() string     { return e.Type }
func (e BaseEvent) EntityType() string    { return e.Entity }
func (e BaseEvent) EntityID() string      { return e.ID }
func (e BaseEvent) OccurredAt() time.Time { return e.Timestamp }

// NewBaseEvent creates a BaseEvent with the current timestamp.
func NewBaseEvent(eventType, entityType, entityID string) BaseEvent {
	return BaseEvent{
		Type:      eventType,
		Entity:    entityType,
		ID:        entityID,
		Timestamp: time.Now(),
	}
}

// PlaybackSeen is emitted when the watcher first sees a session playing
// an item.
type PlaybackSeen struct {
	BaseEvent
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id"`
	ItemID    string `json:"item_id"`
	ItemName  string `json:"item_name,omitempty"`
}

// TracksApplied is emitted after track-switch commands were dispatched
// (or would have been, in dry-run mode) for a session.
type TracksApplied struct {
	BaseEvent
	SessionID     string `json:"session_id"`
	UserID        string `json:"user_id"`
	ItemID        string `json:"item_id"`
	Scope         string `json:"scope"`
	AudioIndex    *int   `json:"audio_index,omitempty"`
	SubtitleIndex *int   `json:"subtitle_index,omitempty"`
	DryRun        bool   `json:"dry_run,omitempty"`
}

// RulesUpdated is emitted when a user's rule set is replaced or deleted.
type RulesUpdated struct {
	BaseEvent
	UserID    string `json:"user_id"`
	RuleCount int    `json:"rule_count"`
	Deleted   bool   `json:"deleted,omitempty"`
}
