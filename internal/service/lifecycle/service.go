// Package lifecycle gates event creation and deletion against per-role
// limits. The remote store holds the event list; this service only applies
// policy on top of it.
package lifecycle

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/irynavol/seatmap-go/internal/domain"
	"github.com/irynavol/seatmap-go/internal/remote"
)

// EventStore is the slice of the remote client the policy needs.
type EventStore interface {
	EventsForUser(ctx context.Context, token string) ([]domain.Event, error)
	CreateEvent(ctx context.Context, token string, draft remote.EventDraft) (domain.Event, error)
	UpdateEvent(ctx context.Context, token string, id uuid.UUID, draft remote.EventDraft) (domain.Event, error)
	DeleteEvent(ctx context.Context, token string, id uuid.UUID) error
}

type Service struct {
	store EventStore
}

func New(store EventStore) *Service {
	return &Service{store: store}
}

// CreateEvent creates a new event for the caller. A capped role at its
// active-event limit gets ErrLimitExceeded; draft events do not count.
// Replacing an event at the limit is two explicit calls, DeleteEvent then
// CreateEvent, sequenced by the caller.
func (s *Service) CreateEvent(
	ctx context.Context,
	token string,
	profile domain.Profile,
	draft remote.EventDraft,
) (domain.Event, error) {
	const op = "lifecycle.CreateEvent"

	if draft.Status == "" {
		draft.Status = domain.EventDraft
	}

	if profile.EventLimit != nil && draft.Status == domain.EventActive {
		events, err := s.store.EventsForUser(ctx, token)
		if err != nil {
			return domain.Event{}, fmt.Errorf("%s: %w", op, err)
		}
		active := 0
		for _, ev := range events {
			if ev.Status == domain.EventActive {
				active++
			}
		}
		if active >= *profile.EventLimit {
			return domain.Event{}, fmt.Errorf("%s: role %q holds %d active events (limit %d): %w",
				op, profile.Role, active, *profile.EventLimit, ErrLimitExceeded)
		}
	}

	ev, err := s.store.CreateEvent(ctx, token, draft)
	if err != nil {
		return domain.Event{}, fmt.Errorf("%s: %w", op, err)
	}

	return ev, nil
}

func (s *Service) ListEvents(ctx context.Context, token string) ([]domain.Event, error) {
	const op = "lifecycle.ListEvents"

	events, err := s.store.EventsForUser(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return events, nil
}

// UpdateEvent applies the draft as-is. Activating a draft event re-checks
// the limit the same way creation does.
func (s *Service) UpdateEvent(
	ctx context.Context,
	token string,
	profile domain.Profile,
	id uuid.UUID,
	draft remote.EventDraft,
) (domain.Event, error) {
	const op = "lifecycle.UpdateEvent"

	if profile.EventLimit != nil && draft.Status == domain.EventActive {
		events, err := s.store.EventsForUser(ctx, token)
		if err != nil {
			return domain.Event{}, fmt.Errorf("%s: %w", op, err)
		}
		active := 0
		for _, ev := range events {
			if ev.Status == domain.EventActive && ev.ID != id {
				active++
			}
		}
		if active >= *profile.EventLimit {
			return domain.Event{}, fmt.Errorf("%s: %w", op, ErrLimitExceeded)
		}
	}

	ev, err := s.store.UpdateEvent(ctx, token, id, draft)
	if err != nil {
		return domain.Event{}, fmt.Errorf("%s: %w", op, err)
	}

	return ev, nil
}

// ArchiveEvent demotes an active event to draft, freeing a slot under the
// caller's limit without deleting anything.
func (s *Service) ArchiveEvent(ctx context.Context, token string, id uuid.UUID) (domain.Event, error) {
	const op = "lifecycle.ArchiveEvent"

	events, err := s.store.EventsForUser(ctx, token)
	if err != nil {
		return domain.Event{}, fmt.Errorf("%s: %w", op, err)
	}

	for _, ev := range events {
		if ev.ID != id {
			continue
		}
		updated, err := s.store.UpdateEvent(ctx, token, id, remote.EventDraft{
			Name:        ev.Name,
			Description: ev.Description,
			Location:    ev.Location,
			StartsAt:    ev.StartsAt,
			Status:      domain.EventDraft,
		})
		if err != nil {
			return domain.Event{}, fmt.Errorf("%s: %w", op, err)
		}
		return updated, nil
	}

	return domain.Event{}, fmt.Errorf("%s: event %s: %w", op, id, remote.ErrNotFound)
}

// DeleteEvent removes the event; the remote store cascades to tables and
// seats, and the event-scoped guest list goes with it.
func (s *Service) DeleteEvent(ctx context.Context, token string, id uuid.UUID) error {
	const op = "lifecycle.DeleteEvent"

	if err := s.store.DeleteEvent(ctx, token, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
