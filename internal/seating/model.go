// Package seating holds the in-memory model of tables, seats and guests
// for a single editing session. The model is a plain value owned by its
// session; nothing in here touches the network or any shared state.
package seating

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/irynavol/seatmap-go/internal/domain"
)

var (
	ErrInvalidConfiguration = errors.New("invalid table configuration")
	ErrTableNotFound        = errors.New("table not found")
	ErrSeatNotFound         = errors.New("seat not found")
	ErrGuestNotFound        = errors.New("guest not found")
	ErrGuestNameRequired    = errors.New("guest name is required")
)

const (
	MinTables        = 1
	MaxTables        = 50
	MinSeatsPerTable = 1
	MaxSeatsPerTable = 12
)

// zonePalette supplies the cosmetic zone colors, cycled per table.
var zonePalette = []string{
	"#4f8fba", "#75a743", "#c65197", "#de9e41", "#a53030", "#7a367b",
}

// Model is the seating state for one event: tables keyed by ID with their
// ordered seats, and the guest roster keyed by guest ID.
type Model struct {
	tables map[int]*domain.Table
	guests map[uuid.UUID]*domain.Guest
}

func NewModel() *Model {
	return &Model{
		tables: make(map[int]*domain.Table),
		guests: make(map[uuid.UUID]*domain.Guest),
	}
}

// CreateTables replaces the entire table set. Any previous tables, and any
// guest seating that pointed into them, are discarded; the guest roster
// itself survives.
func (m *Model) CreateTables(count, seatsPerTable int, shape domain.Shape) error {
	const op = "seating.CreateTables"

	if count < MinTables || count > MaxTables {
		return fmt.Errorf("%s: table count %d out of [%d,%d]: %w",
			op, count, MinTables, MaxTables, ErrInvalidConfiguration)
	}
	if seatsPerTable < MinSeatsPerTable || seatsPerTable > MaxSeatsPerTable {
		return fmt.Errorf("%s: seats per table %d out of [%d,%d]: %w",
			op, seatsPerTable, MinSeatsPerTable, MaxSeatsPerTable, ErrInvalidConfiguration)
	}

	tables := make(map[int]*domain.Table, count)
	for i := 1; i <= count; i++ {
		seats := make([]domain.Seat, seatsPerTable)
		for j := range seats {
			seats[j] = domain.Seat{ID: j + 1, State: domain.SeatEmpty}
		}
		tables[i] = &domain.Table{
			ID:    i,
			Name:  fmt.Sprintf("Table %d", i),
			Shape: shape,
			Color: zonePalette[(i-1)%len(zonePalette)],
			Seats: seats,
		}
	}

	m.tables = tables
	for _, g := range m.guests {
		g.Seating = nil
		if g.Status != domain.GuestPending {
			g.Status = domain.GuestPending
		}
	}

	return nil
}

func (m *Model) RenameTable(tableID int, name string) error {
	const op = "seating.RenameTable"

	t, ok := m.tables[tableID]
	if !ok {
		return fmt.Errorf("%s: table %d: %w", op, tableID, ErrTableNotFound)
	}
	t.Name = name

	return nil
}

func (m *Model) SetTableColor(tableID int, color string) error {
	const op = "seating.SetTableColor"

	t, ok := m.tables[tableID]
	if !ok {
		return fmt.Errorf("%s: table %d: %w", op, tableID, ErrTableNotFound)
	}
	t.Color = color

	return nil
}

// AddGuest appends a guest to the roster with a fresh ID and pending status.
func (m *Model) AddGuest(name, email, phone string) (domain.Guest, error) {
	const op = "seating.AddGuest"

	if strings.TrimSpace(name) == "" {
		return domain.Guest{}, fmt.Errorf("%s: %w", op, ErrGuestNameRequired)
	}

	g := &domain.Guest{
		ID:     uuid.New(),
		Name:   strings.TrimSpace(name),
		Email:  email,
		Phone:  phone,
		Status: domain.GuestPending,
	}
	m.guests[g.ID] = g

	return *g, nil
}

// UpdateGuest changes the guest's contact fields. A renamed guest's seat
// display name is refreshed in the same call.
func (m *Model) UpdateGuest(id uuid.UUID, name, email, phone string) error {
	const op = "seating.UpdateGuest"

	g, ok := m.guests[id]
	if !ok {
		return fmt.Errorf("%s: guest %s: %w", op, id, ErrGuestNotFound)
	}
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%s: %w", op, ErrGuestNameRequired)
	}

	g.Name = strings.TrimSpace(name)
	g.Email = email
	g.Phone = phone

	if g.Seating != nil {
		if seat, err := m.SeatAt(g.Seating.TableID, g.Seating.SeatID); err == nil {
			seat.DisplayName = g.Name
		}
	}

	return nil
}

// RemoveGuest drops the guest from the roster, clearing their seat first.
func (m *Model) RemoveGuest(id uuid.UUID) error {
	const op = "seating.RemoveGuest"

	g, ok := m.guests[id]
	if !ok {
		return fmt.Errorf("%s: guest %s: %w", op, id, ErrGuestNotFound)
	}

	if g.Seating != nil {
		if seat, err := m.SeatAt(g.Seating.TableID, g.Seating.SeatID); err == nil {
			seat.State = domain.SeatEmpty
			seat.GuestID = nil
			seat.DisplayName = ""
		}
	}
	delete(m.guests, id)

	return nil
}

// Table returns the table with the given ID.
func (m *Model) Table(tableID int) (*domain.Table, error) {
	t, ok := m.tables[tableID]
	if !ok {
		return nil, fmt.Errorf("seating.Table: table %d: %w", tableID, ErrTableNotFound)
	}
	return t, nil
}

// Tables returns all tables ordered by ID.
func (m *Model) Tables() []*domain.Table {
	out := make([]*domain.Table, 0, len(m.tables))
	for _, t := range m.tables {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// SeatAt returns a pointer into the table's seat slice, so callers can
// mutate occupancy in place.
func (m *Model) SeatAt(tableID, seatID int) (*domain.Seat, error) {
	const op = "seating.SeatAt"

	t, ok := m.tables[tableID]
	if !ok {
		return nil, fmt.Errorf("%s: table %d: %w", op, tableID, ErrTableNotFound)
	}
	for i := range t.Seats {
		if t.Seats[i].ID == seatID {
			return &t.Seats[i], nil
		}
	}

	return nil, fmt.Errorf("%s: table %d seat %d: %w", op, tableID, seatID, ErrSeatNotFound)
}

func (m *Model) Guest(id uuid.UUID) (*domain.Guest, error) {
	g, ok := m.guests[id]
	if !ok {
		return nil, fmt.Errorf("seating.Guest: guest %s: %w", id, ErrGuestNotFound)
	}
	return g, nil
}

// Guests returns the roster sorted by name, then ID for a stable order.
func (m *Model) Guests() []*domain.Guest {
	out := make([]*domain.Guest, 0, len(m.guests))
	for _, g := range m.guests {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out
}

// IsTableFull reports whether every seat on the table is occupied.
func (m *Model) IsTableFull(tableID int) (bool, error) {
	t, ok := m.tables[tableID]
	if !ok {
		return false, fmt.Errorf("seating.IsTableFull: table %d: %w", tableID, ErrTableNotFound)
	}
	for i := range t.Seats {
		if !t.Seats[i].Occupied() {
			return false, nil
		}
	}
	return true, nil
}

// OccupancyStats sums occupancy over all tables. Percentage rounds to the
// nearest integer and is 0 for an empty floor plan.
func (m *Model) OccupancyStats() domain.OccupancyStats {
	var stats domain.OccupancyStats
	for _, t := range m.tables {
		stats.TotalSeats += len(t.Seats)
		for i := range t.Seats {
			if t.Seats[i].Occupied() {
				stats.OccupiedSeats++
			}
		}
	}
	if stats.TotalSeats > 0 {
		stats.Percentage = (stats.OccupiedSeats*100 + stats.TotalSeats/2) / stats.TotalSeats
	}
	return stats
}

// CheckInvariants validates the occupancy relation: at most one guest per
// seat, at most one seat per guest, empty state iff no guest reference,
// and forward/back references in agreement.
func (m *Model) CheckInvariants() error {
	const op = "seating.CheckInvariants"

	seatedAt := make(map[uuid.UUID]domain.SeatRef)
	for _, t := range m.tables {
		for i := range t.Seats {
			s := &t.Seats[i]
			if (s.State == domain.SeatEmpty) != (s.GuestID == nil) {
				return fmt.Errorf("%s: table %d seat %d: state %q disagrees with guest ref",
					op, t.ID, s.ID, s.State)
			}
			if s.GuestID == nil {
				continue
			}
			if prev, dup := seatedAt[*s.GuestID]; dup {
				return fmt.Errorf("%s: guest %s seated at both %v and table %d seat %d",
					op, s.GuestID, prev, t.ID, s.ID)
			}
			seatedAt[*s.GuestID] = domain.SeatRef{TableID: t.ID, SeatID: s.ID}
			g, ok := m.guests[*s.GuestID]
			if !ok {
				return fmt.Errorf("%s: table %d seat %d references unknown guest %s",
					op, t.ID, s.ID, s.GuestID)
			}
			if g.Seating == nil || *g.Seating != (domain.SeatRef{TableID: t.ID, SeatID: s.ID}) {
				return fmt.Errorf("%s: guest %s back-reference %v disagrees with table %d seat %d",
					op, g.ID, g.Seating, t.ID, s.ID)
			}
		}
	}

	for _, g := range m.guests {
		if g.Seating == nil {
			continue
		}
		if _, ok := seatedAt[g.ID]; !ok {
			return fmt.Errorf("%s: guest %s claims seat %v but no seat references them",
				op, g.ID, *g.Seating)
		}
	}

	return nil
}
