package syncer

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irynavol/seatmap-go/internal/domain"
	"github.com/irynavol/seatmap-go/internal/remote"
	"github.com/irynavol/seatmap-go/internal/seating"
)

// recordingSaver captures every snapshot that reaches the remote store.
type recordingSaver struct {
	mu    sync.Mutex
	saves []seating.Snapshot
	errs  []error // popped per call; nil means success
	gate  chan struct{}
}

func (r *recordingSaver) SaveTables(_ context.Context, _ string, _ uuid.UUID, snap seating.Snapshot) error {
	if r.gate != nil {
		<-r.gate
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves = append(r.saves, snap)
	if len(r.errs) > 0 {
		err := r.errs[0]
		r.errs = r.errs[1:]
		return err
	}
	return nil
}

func (r *recordingSaver) saved() []seating.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]seating.Snapshot, len(r.saves))
	copy(out, r.saves)
	return out
}

func snapshotWithTables(t *testing.T, count int) seating.Snapshot {
	t.Helper()
	m := seating.NewModel()
	require.NoError(t, m.CreateTables(count, 2, domain.ShapeRound))
	return m.Snapshot()
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition never met")
}

func TestEnqueueSavesLatestSnapshot(t *testing.T) {
	saver := &recordingSaver{}
	s := New(saver, uuid.New(), "tok", nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = s.Run(ctx) }()

	snap := snapshotWithTables(t, 3)
	s.Enqueue(snap)

	waitFor(t, func() bool { return len(saver.saved()) == 1 })
	assert.Len(t, saver.saved()[0].Tables, 3)
	assert.NoError(t, s.LastError())
}

func TestBurstCoalescesToLatest(t *testing.T) {
	// Hold the first save in flight while a burst of newer snapshots
	// arrives; only the newest of the burst may follow it out.
	saver := &recordingSaver{gate: make(chan struct{})}
	s := New(saver, uuid.New(), "tok", nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = s.Run(ctx) }()

	s.Enqueue(snapshotWithTables(t, 1))
	// First save is now blocked on the gate; stack up a burst.
	time.Sleep(20 * time.Millisecond)
	for count := 2; count <= 5; count++ {
		s.Enqueue(snapshotWithTables(t, count))
	}

	saver.gate <- struct{}{} // release first save
	saver.gate <- struct{}{} // release the coalesced follow-up

	waitFor(t, func() bool { return len(saver.saved()) == 2 })
	// No re-ordering can lose the newest state: the last save is the
	// 5-table snapshot, the intermediate ones never went out.
	saves := saver.saved()
	assert.Len(t, saves[0].Tables, 1)
	assert.Len(t, saves[1].Tables, 5)
}

func TestSessionExpirySuspendsUntilReauth(t *testing.T) {
	saver := &recordingSaver{errs: []error{remote.ErrSessionExpired}}
	s := New(saver, uuid.New(), "tok", nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = s.Run(ctx) }()

	s.Enqueue(snapshotWithTables(t, 2))
	waitFor(t, func() bool { return s.Suspended() })
	assert.ErrorIs(t, s.LastError(), remote.ErrSessionExpired)
	require.Len(t, saver.saved(), 1)

	// Further enqueues are held, not sent.
	s.Enqueue(snapshotWithTables(t, 4))
	time.Sleep(50 * time.Millisecond)
	assert.Len(t, saver.saved(), 1)

	// A fresh credential resumes and ships the held snapshot.
	s.SetToken("fresh")
	waitFor(t, func() bool { return len(saver.saved()) == 2 })
	assert.Len(t, saver.saved()[1].Tables, 4)
	assert.False(t, s.Suspended())
	waitFor(t, func() bool { return s.LastError() == nil })
}

func TestRemoteFailureSurfacesAndWaits(t *testing.T) {
	saver := &recordingSaver{errs: []error{remote.ErrRemoteUnavailable}}
	s := New(saver, uuid.New(), "tok", nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = s.Run(ctx) }()

	s.Enqueue(snapshotWithTables(t, 2))
	waitFor(t, func() bool { return s.LastError() != nil })
	assert.ErrorIs(t, s.LastError(), remote.ErrRemoteUnavailable)
	assert.False(t, s.Suspended(), "network trouble does not suspend the session")

	// No automatic retry; the next user mutation re-triggers the save.
	time.Sleep(50 * time.Millisecond)
	require.Len(t, saver.saved(), 1)

	s.Enqueue(snapshotWithTables(t, 3))
	waitFor(t, func() bool { return len(saver.saved()) == 2 })
	assert.NoError(t, s.LastError())
}

func TestFlushSavesPendingSynchronously(t *testing.T) {
	saver := &recordingSaver{}
	s := New(saver, uuid.New(), "tok", nil, nil)

	// No worker running at all; Flush alone must ship the snapshot.
	s.Enqueue(snapshotWithTables(t, 2))
	require.NoError(t, s.Flush(context.Background()))
	require.Len(t, saver.saved(), 1)

	// Nothing pending: Flush is a no-op.
	require.NoError(t, s.Flush(context.Background()))
	assert.Len(t, saver.saved(), 1)
}

// stallingSaver blocks its first save until the context is cancelled, then
// fails it; later saves succeed.
type stallingSaver struct {
	mu      sync.Mutex
	started chan struct{}
	calls   int
	saves   []seating.Snapshot
}

func (s *stallingSaver) SaveTables(ctx context.Context, _ string, _ uuid.UUID, snap seating.Snapshot) error {
	s.mu.Lock()
	s.calls++
	first := s.calls == 1
	s.mu.Unlock()

	if first {
		close(s.started)
		<-ctx.Done()
	}
	if ctx.Err() != nil {
		return fmt.Errorf("%w: %v", remote.ErrRemoteUnavailable, ctx.Err())
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves = append(s.saves, snap)
	return nil
}

func TestFlushReportsItsOwnSaveOnly(t *testing.T) {
	// Session close cancels the worker and then flushes. The cancelled
	// worker save fails after the flush succeeds; that failure must not
	// turn the successful close into an error.
	saver := &stallingSaver{started: make(chan struct{})}
	s := New(saver, uuid.New(), "tok", nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = s.Run(ctx) }()

	s.Enqueue(snapshotWithTables(t, 1))
	<-saver.started
	s.Enqueue(snapshotWithTables(t, 2))
	cancel()

	require.NoError(t, s.Flush(context.Background()))

	saver.mu.Lock()
	defer saver.mu.Unlock()
	require.Len(t, saver.saves, 1)
	assert.Len(t, saver.saves[0].Tables, 2)
}

func TestAfterSaveHookRuns(t *testing.T) {
	saver := &recordingSaver{}
	eventID := uuid.New()

	var mu sync.Mutex
	var hookEvents []uuid.UUID
	s := New(saver, eventID, "tok", nil, func(_ context.Context, id uuid.UUID) {
		mu.Lock()
		hookEvents = append(hookEvents, id)
		mu.Unlock()
	})

	s.Enqueue(snapshotWithTables(t, 1))
	require.NoError(t, s.Flush(context.Background()))

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, hookEvents, 1)
	assert.Equal(t, eventID, hookEvents[0])
}
