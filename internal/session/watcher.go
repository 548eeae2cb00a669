// Package session watches active playback sessions and applies resolved
// track changes to them.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/vmunix/trackarr/internal/events"
	"github.com/vmunix/trackarr/pkg/mediaserver"
	"github.com/vmunix/trackarr/pkg/tracks"
)

//go:generate mockgen -destination mocks/mocks.go -package mocks . SessionLister,Dispatcher,Guard,RuleSource

// SessionLister enumerates active sessions on the media server.
type SessionLister interface {
	Sessions(ctx context.Context) ([]mediaserver.Session, error)
}

// Dispatcher sends track-switch commands to a live session.
type Dispatcher interface {
	SetAudioStreamIndex(ctx context.Context, sessionID string, index int) error
	SetSubtitleStreamIndex(ctx context.Context, sessionID string, index int) error
}

// Guard gates whether computed changes are dispatched for a session
// whose rule suppresses transcode-risking switches. It never alters
// what was computed.
type Guard interface {
	ShouldSkip(s mediaserver.Session) bool
}

// RuleSource loads the rule set for a user.
type RuleSource interface {
	Get(userID string) (*tracks.RuleSet, error)
}

// dispatchTimeout bounds each fire-and-forget command send.
const dispatchTimeout = 10 * time.Second

// Config tunes the watcher.
type Config struct {
	PollInterval time.Duration
	ApplyOnce    bool // apply at most once per (session, item) pair
	DryRun       bool // resolve and log, never dispatch
}

// Watcher polls the media server and applies rule resolutions to new
// playback sessions.
type Watcher struct {
	client     SessionLister
	dispatcher Dispatcher
	guard      Guard
	rules      RuleSource
	bus        *events.Bus
	cfg        Config
	logger     *slog.Logger

	mu      sync.Mutex
	applied map[string]struct{} // "sessionID|itemID" -> handled
}

// New creates a watcher.
func New(client SessionLister, dispatcher Dispatcher, guard Guard, rules RuleSource, bus *events.Bus, cfg Config, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 15 * time.Second
	}
	return &Watcher{
		client:     client,
		dispatcher: dispatcher,
		guard:      guard,
		rules:      rules,
		bus:        bus,
		cfg:        cfg,
		logger:     logger.With("component", "session-watcher"),
		applied:    make(map[string]struct{}),
	}
}

// Start polls until the context is canceled.
func (w *Watcher) Start(ctx context.Context) error {
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			w.checkSessions(ctx)
		}
	}
}

// checkSessions fetches active sessions and handles each playing one.
func (w *Watcher) checkSessions(ctx context.Context) {
	sessions, err := w.client.Sessions(ctx)
	if err != nil {
		w.logger.Error("failed to list sessions", "error", err)
		return
	}

	live := make(map[string]struct{}, len(sessions))
	for _, s := range sessions {
		if s.NowPlaying == nil || s.UserID == "" {
			continue
		}
		live[applyKey(s.ID, s.NowPlaying.ID)] = struct{}{}
		w.handleSession(ctx, s)
	}
	w.forget(live)
}

// HandleSession resolves and applies track changes for one session.
// Exposed for the dry-run API path.
func (w *Watcher) HandleSession(ctx context.Context, s mediaserver.Session) {
	w.handleSession(ctx, s)
}

func (w *Watcher) handleSession(ctx context.Context, s mediaserver.Session) {
	item := s.NowPlaying
	key := applyKey(s.ID, item.ID)

	if w.cfg.ApplyOnce && w.seen(key) {
		return
	}

	set, err := w.rules.Get(s.UserID)
	if err != nil {
		// Fail closed: a store error must never block playback.
		w.logger.Error("failed to load rules", "user_id", s.UserID, "error", err)
		return
	}

	rctx := tracks.Context{
		UserID:               s.UserID,
		SeriesID:             item.SeriesID,
		LibraryID:            item.ParentID,
		Streams:              item.Streams(),
		CurrentAudioIndex:    s.PlayState.AudioStreamIndex,
		CurrentSubtitleIndex: s.PlayState.SubtitleStreamIndex,
	}
	result := tracks.Resolve(set, rctx)

	w.mark(key)
	w.publish(ctx, &events.PlaybackSeen{
		BaseEvent: events.NewBaseEvent(events.EventPlaybackSeen, events.EntitySession, s.ID),
		SessionID: s.ID,
		UserID:    s.UserID,
		ItemID:    item.ID,
		ItemName:  item.Name,
	})

	if !result.HasChange() {
		w.logger.Debug("no track changes", "session_id", s.ID, "item_id", item.ID)
		return
	}

	if result.Rule != nil && result.Rule.DontTranscode && w.guard != nil && w.guard.ShouldSkip(s) {
		w.logger.Info("skipping track change, transcode risk",
			"session_id", s.ID,
			"item_id", item.ID,
			"play_method", s.PlayState.PlayMethod)
		return
	}

	w.logger.Info("applying track changes",
		"session_id", s.ID,
		"user_id", s.UserID,
		"item_id", item.ID,
		"scope", result.Scope.String(),
		"audio_index", indexOrNil(result.AudioIndex),
		"subtitle_index", indexOrNil(result.SubtitleIndex),
		"dry_run", w.cfg.DryRun)

	if !w.cfg.DryRun {
		w.dispatch(ctx, s.ID, result)
	}

	w.publish(ctx, &events.TracksApplied{
		BaseEvent:     events.NewBaseEvent(events.EventTracksApplied, events.EntitySession, s.ID),
		SessionID:     s.ID,
		UserID:        s.UserID,
		ItemID:        item.ID,
		Scope:         result.Scope.String(),
		AudioIndex:    result.AudioIndex,
		SubtitleIndex: result.SubtitleIndex,
		DryRun:        w.cfg.DryRun,
	})
}

// dispatch sends the commands fire-and-forget. Each send gets its own
// timeout detached from the poll cycle, and failures are only logged.
func (w *Watcher) dispatch(ctx context.Context, sessionID string, result tracks.Result) {
	audio := result.AudioIndex
	subtitle := result.SubtitleIndex

	go func() {
		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), dispatchTimeout)
		defer cancel()

		if audio != nil {
			if err := w.dispatcher.SetAudioStreamIndex(sendCtx, sessionID, *audio); err != nil {
				w.logger.Error("failed to set audio stream",
					"session_id", sessionID,
					"index", *audio,
					"error", err)
			}
		}
		if subtitle != nil {
			if err := w.dispatcher.SetSubtitleStreamIndex(sendCtx, sessionID, *subtitle); err != nil {
				w.logger.Error("failed to set subtitle stream",
					"session_id", sessionID,
					"index", *subtitle,
					"error", err)
			}
		}
	}()
}

func (w *Watcher) publish(ctx context.Context, e events.Event) {
	if w.bus == nil {
		return
	}
	if err := w.bus.Publish(ctx, e); err != nil {
		w.logger.Error("failed to publish event", "type", e.EventType(), "error", err)
	}
}

func (w *Watcher) seen(key string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.applied[key]
	return ok
}

func (w *Watcher) mark(key string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.applied[key] = struct{}{}
}

// forget drops tracking for session/item pairs no longer playing.
func (w *Watcher) forget(live map[string]struct{}) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for key := range w.applied {
		if _, ok := live[key]; !ok {
			delete(w.applied, key)
		}
	}
}

func applyKey(sessionID, itemID string) string {
	return sessionID + "|" + itemID
}

func indexOrNil(idx *int) any {
	if idx == nil {
		return nil
	}
	return *idx
}
