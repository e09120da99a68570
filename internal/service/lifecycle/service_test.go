package lifecycle

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irynavol/seatmap-go/internal/domain"
	"github.com/irynavol/seatmap-go/internal/remote"
)

// fakeStore is an in-memory stand-in for the remote event store.
type fakeStore struct {
	events map[uuid.UUID]domain.Event
	err    error
}

func newFakeStore() *fakeStore {
	return &fakeStore{events: make(map[uuid.UUID]domain.Event)}
}

func (f *fakeStore) EventsForUser(_ context.Context, _ string) ([]domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]domain.Event, 0, len(f.events))
	for _, ev := range f.events {
		out = append(out, ev)
	}
	return out, nil
}

func (f *fakeStore) CreateEvent(_ context.Context, _ string, draft remote.EventDraft) (domain.Event, error) {
	if f.err != nil {
		return domain.Event{}, f.err
	}
	ev := domain.Event{
		ID:       uuid.New(),
		Name:     draft.Name,
		StartsAt: draft.StartsAt,
		Status:   draft.Status,
	}
	f.events[ev.ID] = ev
	return ev, nil
}

func (f *fakeStore) UpdateEvent(_ context.Context, _ string, id uuid.UUID, draft remote.EventDraft) (domain.Event, error) {
	if f.err != nil {
		return domain.Event{}, f.err
	}
	ev, ok := f.events[id]
	if !ok {
		return domain.Event{}, remote.ErrNotFound
	}
	ev.Name = draft.Name
	ev.Status = draft.Status
	f.events[id] = ev
	return ev, nil
}

func (f *fakeStore) DeleteEvent(_ context.Context, _ string, id uuid.UUID) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.events[id]; !ok {
		return remote.ErrNotFound
	}
	delete(f.events, id)
	return nil
}

func limit(n int) domain.Profile {
	return domain.Profile{Role: "basic", EventLimit: &n}
}

func activeDraft(name string) remote.EventDraft {
	return remote.EventDraft{Name: name, StartsAt: time.Now(), Status: domain.EventActive}
}

func TestCreateEventUnderLimit(t *testing.T) {
	store := newFakeStore()
	svc := New(store)

	ev, err := svc.CreateEvent(context.Background(), "tok", limit(1), activeDraft("Wedding"))
	require.NoError(t, err)
	assert.Equal(t, domain.EventActive, ev.Status)
}

func TestCreateEventAtLimitRejected(t *testing.T) {
	store := newFakeStore()
	svc := New(store)
	ctx := context.Background()

	first, err := svc.CreateEvent(ctx, "tok", limit(1), activeDraft("Wedding"))
	require.NoError(t, err)

	_, err = svc.CreateEvent(ctx, "tok", limit(1), activeDraft("Gala"))
	require.ErrorIs(t, err, ErrLimitExceeded)

	// Delete-then-create is two explicit calls; after the delete the slot
	// is free again.
	require.NoError(t, svc.DeleteEvent(ctx, "tok", first.ID))
	_, err = svc.CreateEvent(ctx, "tok", limit(1), activeDraft("Gala"))
	require.NoError(t, err)
}

func TestDraftEventsDoNotCount(t *testing.T) {
	store := newFakeStore()
	svc := New(store)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.CreateEvent(ctx, "tok", limit(1), remote.EventDraft{
			Name:     "Draft",
			StartsAt: time.Now(),
			Status:   domain.EventDraft,
		})
		require.NoError(t, err)
	}

	_, err := svc.CreateEvent(ctx, "tok", limit(1), activeDraft("Live"))
	require.NoError(t, err)
}

func TestNilLimitIsUnlimited(t *testing.T) {
	store := newFakeStore()
	svc := New(store)
	ctx := context.Background()
	profile := domain.Profile{Role: "pro"}

	for i := 0; i < 5; i++ {
		_, err := svc.CreateEvent(ctx, "tok", profile, activeDraft("Event"))
		require.NoError(t, err)
	}
}

func TestArchiveFreesTheSlot(t *testing.T) {
	store := newFakeStore()
	svc := New(store)
	ctx := context.Background()

	ev, err := svc.CreateEvent(ctx, "tok", limit(1), activeDraft("Wedding"))
	require.NoError(t, err)

	archived, err := svc.ArchiveEvent(ctx, "tok", ev.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.EventDraft, archived.Status)

	_, err = svc.CreateEvent(ctx, "tok", limit(1), activeDraft("Gala"))
	require.NoError(t, err)
}

func TestArchiveUnknownEvent(t *testing.T) {
	svc := New(newFakeStore())
	_, err := svc.ArchiveEvent(context.Background(), "tok", uuid.New())
	assert.ErrorIs(t, err, remote.ErrNotFound)
}

func TestUpdateActivationRechecksLimit(t *testing.T) {
	store := newFakeStore()
	svc := New(store)
	ctx := context.Background()

	_, err := svc.CreateEvent(ctx, "tok", limit(1), activeDraft("Wedding"))
	require.NoError(t, err)
	draft, err := svc.CreateEvent(ctx, "tok", limit(1), remote.EventDraft{
		Name:     "Gala",
		StartsAt: time.Now(),
		Status:   domain.EventDraft,
	})
	require.NoError(t, err)

	_, err = svc.UpdateEvent(ctx, "tok", limit(1), draft.ID, activeDraft("Gala"))
	require.ErrorIs(t, err, ErrLimitExceeded)

	// Re-activating the already-active event is not a second slot.
	events, err := svc.ListEvents(ctx, "tok")
	require.NoError(t, err)
	for _, ev := range events {
		if ev.Status == domain.EventActive {
			_, err = svc.UpdateEvent(ctx, "tok", limit(1), ev.ID, activeDraft(ev.Name))
			require.NoError(t, err)
		}
	}
}

func TestRemoteErrorsPropagate(t *testing.T) {
	store := newFakeStore()
	store.err = remote.ErrSessionExpired
	svc := New(store)

	_, err := svc.CreateEvent(context.Background(), "tok", limit(1), activeDraft("Wedding"))
	assert.ErrorIs(t, err, remote.ErrSessionExpired)

	_, err = svc.ListEvents(context.Background(), "tok")
	assert.ErrorIs(t, err, remote.ErrSessionExpired)
}
