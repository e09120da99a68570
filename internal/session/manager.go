// Package session owns the editing sessions. One session per event at a
// time: it holds the in-memory seating model, the assignment engine on top
// of it, and the syncer that ships snapshots to the remote store. All
// mutations run under the session lock and complete before the next one
// starts, so the model never sees concurrent writers.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/irynavol/seatmap-go/internal/domain"
	"github.com/irynavol/seatmap-go/internal/seating"
	"github.com/irynavol/seatmap-go/internal/service/assignment"
	"github.com/irynavol/seatmap-go/internal/syncer"
)

// Store is the slice of the remote client sessions depend on.
type Store interface {
	FetchTables(ctx context.Context, token string, eventID uuid.UUID) (seating.Snapshot, error)
	SaveTables(ctx context.Context, token string, eventID uuid.UUID, snap seating.Snapshot) error
}

type Session struct {
	EventID uuid.UUID

	mu     sync.Mutex
	model  *seating.Model
	engine *assignment.Service
	sync   *syncer.Syncer
	cancel context.CancelFunc
}

type Manager struct {
	store     Store
	logger    *slog.Logger
	afterSave syncer.AfterSave

	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
}

func NewManager(store Store, logger *slog.Logger, afterSave syncer.AfterSave) *Manager {
	if logger == nil {
		logger = slog.Default()
	}

	return &Manager{
		store:     store,
		logger:    logger,
		afterSave: afterSave,
		sessions:  make(map[uuid.UUID]*Session),
	}
}

// Open fetches the authoritative snapshot and starts an editing session.
// Opening an already-open event returns the existing session; the model
// assumes a single editor per event.
func (m *Manager) Open(ctx context.Context, token string, eventID uuid.UUID) (*Session, error) {
	const op = "session.Open"

	m.mu.Lock()
	if s, ok := m.sessions[eventID]; ok {
		m.mu.Unlock()
		return s, nil
	}
	m.mu.Unlock()

	snap, err := m.store.FetchTables(ctx, token, eventID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	model := seating.NewModel()
	if err := model.RestoreSnapshot(snap); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s := &Session{
		EventID: eventID,
		model:   model,
		sync:    syncer.New(m.store, eventID, token, m.logger, m.afterSave),
	}
	s.engine = assignment.New(model, func() {
		s.sync.Enqueue(model.Snapshot())
	})

	workerCtx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	go func() {
		if err := s.sync.Run(workerCtx); err != nil && workerCtx.Err() == nil {
			m.logger.Error("sync worker stopped", "event_id", eventID, "error", err)
		}
	}()

	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.sessions[eventID]; ok {
		cancel()
		return existing, nil
	}
	m.sessions[eventID] = s

	return s, nil
}

func (m *Manager) Get(eventID uuid.UUID) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[eventID]
	return s, ok
}

// Close flushes the final snapshot and tears the session down.
func (m *Manager) Close(ctx context.Context, eventID uuid.UUID) error {
	const op = "session.Close"

	m.mu.Lock()
	s, ok := m.sessions[eventID]
	delete(m.sessions, eventID)
	m.mu.Unlock()
	if !ok {
		return nil
	}

	s.cancel()
	if err := s.sync.Flush(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// CloseAll flushes every open session, used on shutdown.
func (m *Manager) CloseAll(ctx context.Context) {
	m.mu.Lock()
	ids := make([]uuid.UUID, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	m.mu.Unlock()

	for _, id := range ids {
		if err := m.Close(ctx, id); err != nil {
			m.logger.Error("closing session", "event_id", id, "error", err)
		}
	}
}

// enqueue ships the current snapshot; model mutations that bypass the
// assignment engine call it after a successful change.
func (s *Session) enqueue() {
	s.sync.Enqueue(s.model.Snapshot())
}

func (s *Session) CreateTables(count, seatsPerTable int, shape domain.Shape) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.model.CreateTables(count, seatsPerTable, shape); err != nil {
		return err
	}
	s.enqueue()
	return nil
}

func (s *Session) RenameTable(tableID int, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.model.RenameTable(tableID, name); err != nil {
		return err
	}
	s.enqueue()
	return nil
}

func (s *Session) SetTableColor(tableID int, color string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.model.SetTableColor(tableID, color); err != nil {
		return err
	}
	s.enqueue()
	return nil
}

func (s *Session) AddGuest(name, email, phone string) (domain.Guest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.model.AddGuest(name, email, phone)
	if err != nil {
		return domain.Guest{}, err
	}
	s.enqueue()
	return g, nil
}

func (s *Session) UpdateGuest(id uuid.UUID, name, email, phone string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.model.UpdateGuest(id, name, email, phone); err != nil {
		return err
	}
	s.enqueue()
	return nil
}

func (s *Session) RemoveGuest(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.model.RemoveGuest(id); err != nil {
		return err
	}
	s.enqueue()
	return nil
}

func (s *Session) AssignGuestToSeat(guestID *uuid.UUID, tableID, seatID int, state domain.SeatState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.AssignGuestToSeat(guestID, tableID, seatID, state)
}

func (s *Session) SwapSeats(tableA, seatA, tableB, seatB int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.SwapSeats(tableA, seatA, tableB, seatB)
}

func (s *Session) MoveGuest(fromTable, fromSeat, toTable, toSeat int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.MoveGuest(fromTable, fromSeat, toTable, toSeat)
}

func (s *Session) UnassignSeat(tableID, seatID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.UnassignSeat(tableID, seatID)
}

func (s *Session) Layout(tableID int) ([]assignment.SeatLayout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Layout(tableID)
}

func (s *Session) IsTableFull(tableID int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.IsTableFull(tableID)
}

func (s *Session) Stats() domain.OccupancyStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.OccupancyStats()
}

// Snapshot returns a detached copy of the current state, safe to render or
// serialize after the lock is released.
func (s *Session) Snapshot() seating.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.model.Snapshot()
}

func (s *Session) Guests() []domain.Guest {
	s.mu.Lock()
	defer s.mu.Unlock()

	guests := s.model.Guests()
	out := make([]domain.Guest, len(guests))
	for i, g := range guests {
		out[i] = *g
		if g.Seating != nil {
			ref := *g.Seating
			out[i].Seating = &ref
		}
	}
	return out
}

// Reload discards local state and replaces it with the remote store's
// current snapshot. This is the only path that overwrites local edits.
func (s *Session) Reload(ctx context.Context, store Store, token string) error {
	const op = "session.Reload"

	snap, err := store.FetchTables(ctx, token, s.EventID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.model.RestoreSnapshot(snap); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// SyncError surfaces the most recent save failure to the UI.
func (s *Session) SyncError() error {
	return s.sync.LastError()
}

// SyncSuspended reports whether saves stopped on an expired session.
func (s *Session) SyncSuspended() bool {
	return s.sync.Suspended()
}

// Reauthenticate installs a fresh token and resumes suspended saves.
func (s *Session) Reauthenticate(token string) {
	s.sync.SetToken(token)
}
