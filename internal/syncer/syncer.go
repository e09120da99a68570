// Package syncer is the gateway between local edits and the remote store
// of record. Every mutation enqueues the current full snapshot; only the
// most recent snapshot is ever pending, and at most one save is in flight.
// A newer snapshot supersedes a pending one, never cancels an in-flight
// save — the remote store is last-writer-wins.
package syncer

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/irynavol/seatmap-go/internal/remote"
	"github.com/irynavol/seatmap-go/internal/seating"
)

// Saver is the slice of the remote client the syncer drives.
type Saver interface {
	SaveTables(ctx context.Context, token string, eventID uuid.UUID, snap seating.Snapshot) error
}

// AfterSave runs after a successful save, outside the syncer lock. The app
// hangs cache invalidation and pub/sub notification off it.
type AfterSave func(ctx context.Context, eventID uuid.UUID)

type Syncer struct {
	saver     Saver
	eventID   uuid.UUID
	logger    *slog.Logger
	afterSave AfterSave

	kick chan struct{}

	mu        sync.Mutex
	token     string
	pending   *seating.Snapshot
	suspended bool
	lastErr   error
}

func New(saver Saver, eventID uuid.UUID, token string, logger *slog.Logger, afterSave AfterSave) *Syncer {
	if logger == nil {
		logger = slog.Default()
	}

	return &Syncer{
		saver:     saver,
		eventID:   eventID,
		token:     token,
		logger:    logger,
		afterSave: afterSave,
		kick:      make(chan struct{}, 1),
	}
}

// Enqueue replaces any pending snapshot with this one and wakes the
// worker. It never blocks; local editing continues regardless of what the
// remote store is doing.
func (s *Syncer) Enqueue(snap seating.Snapshot) {
	s.mu.Lock()
	s.pending = &snap
	s.mu.Unlock()

	select {
	case s.kick <- struct{}{}:
	default:
	}
}

// Run drives saves until ctx is done. After a session-expired response the
// worker stops saving until SetToken re-authenticates it; any other save
// failure keeps local state, is logged and surfaced via LastError, and
// waits for the next Enqueue.
func (s *Syncer) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.kick:
			_ = s.save(ctx)
		}
	}
}

// Flush saves any pending snapshot synchronously. Sessions call it on
// close so the last edits are not lost to process exit. It reports the
// outcome of its own save only; a concurrent worker save that fails does
// not bleed into it.
func (s *Syncer) Flush(ctx context.Context) error {
	return s.save(ctx)
}

// SetToken installs a fresh credential and resumes a suspended worker.
func (s *Syncer) SetToken(token string) {
	s.mu.Lock()
	s.token = token
	s.suspended = false
	hasPending := s.pending != nil
	s.mu.Unlock()

	if hasPending {
		select {
		case s.kick <- struct{}{}:
		default:
		}
	}
}

// LastError reports the outcome of the most recent save attempt; nil after
// a success.
func (s *Syncer) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Suspended reports whether syncing stopped on an expired session.
func (s *Syncer) Suspended() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.suspended
}

func (s *Syncer) save(ctx context.Context) error {
	s.mu.Lock()
	if s.pending == nil {
		s.mu.Unlock()
		return nil
	}
	if s.suspended {
		// The held snapshot cannot go out until SetToken; surface why.
		err := s.lastErr
		s.mu.Unlock()
		return err
	}
	snap := *s.pending
	s.pending = nil
	token := s.token
	s.mu.Unlock()

	err := s.saver.SaveTables(ctx, token, s.eventID, snap)

	s.mu.Lock()
	s.lastErr = err
	if err != nil {
		// Keep the snapshot unless a newer one already superseded it, so
		// the next enqueue or a close-time flush retries the save.
		s.suspended = errors.Is(err, remote.ErrSessionExpired)
		if s.pending == nil {
			s.pending = &snap
		}
	}
	s.mu.Unlock()

	switch {
	case err == nil:
		s.logger.Debug("snapshot saved", "event_id", s.eventID)
		if s.afterSave != nil {
			s.afterSave(ctx, s.eventID)
		}
	case errors.Is(err, remote.ErrSessionExpired):
		s.logger.Warn("session expired, sync suspended", "event_id", s.eventID)
	default:
		s.logger.Error("snapshot save failed", "event_id", s.eventID, "error", err)
	}

	return err
}
