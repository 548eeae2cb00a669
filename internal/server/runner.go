// Package server ties the background components together.
package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/vmunix/trackarr/internal/events"
	"github.com/vmunix/trackarr/internal/session"
	"golang.org/x/sync/errgroup"
)

// eventRetention is how long persisted events are kept.
const eventRetention = 7 * 24 * time.Hour

// pruneInterval is how often the event log is pruned.
const pruneInterval = time.Hour

// Runner manages the background components: the session watcher and the
// event log pruner.
type Runner struct {
	watcher  *session.Watcher
	eventLog *events.EventLog
	logger   *slog.Logger
}

// NewRunner creates a new runner. The event log is optional.
func NewRunner(watcher *session.Watcher, eventLog *events.EventLog, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		watcher:  watcher,
		eventLog: eventLog,
		logger:   logger,
	}
}

// Run starts all background components.
// It blocks until the context is canceled or a component fails.
func (r *Runner) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return r.watcher.Start(ctx)
	})

	if r.eventLog != nil {
		g.Go(func() error {
			r.prune(ctx)
			return nil
		})
	}

	return g.Wait()
}

func (r *Runner) prune(ctx context.Context) {
	ticker := time.NewTicker(pruneInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := r.eventLog.Prune(eventRetention)
			if err != nil {
				r.logger.Error("failed to prune events", "error", err)
				continue
			}
			if n > 0 {
				r.logger.Debug("pruned events", "count", n)
			}
		}
	}
}
