package seating

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/irynavol/seatmap-go/internal/domain"
)

var ErrCorruptSnapshot = errors.New("corrupt snapshot")

// Snapshot is the unit of persistence: the full ordered table/seat set plus
// the guest roster. Guest back-references are not serialized; they are
// rebuilt from the seats' guest IDs on restore.
type Snapshot struct {
	Tables []domain.Table  `json:"tables"`
	Guests []SnapshotGuest `json:"guests"`
}

type SnapshotGuest struct {
	ID     uuid.UUID          `json:"id"`
	Name   string             `json:"name"`
	Email  string             `json:"email,omitempty"`
	Phone  string             `json:"phone,omitempty"`
	Status domain.GuestStatus `json:"status"`
}

// Snapshot copies the current state into a detached value. The sync
// gateway owns the copy; later local edits never show through.
func (m *Model) Snapshot() Snapshot {
	tables := m.Tables()
	s := Snapshot{
		Tables: make([]domain.Table, 0, len(tables)),
		Guests: make([]SnapshotGuest, 0, len(m.guests)),
	}

	for _, t := range tables {
		cp := *t
		cp.Seats = make([]domain.Seat, len(t.Seats))
		copy(cp.Seats, t.Seats)
		for i := range cp.Seats {
			if gid := cp.Seats[i].GuestID; gid != nil {
				id := *gid
				cp.Seats[i].GuestID = &id
			}
		}
		s.Tables = append(s.Tables, cp)
	}

	for _, g := range m.Guests() {
		s.Guests = append(s.Guests, SnapshotGuest{
			ID:     g.ID,
			Name:   g.Name,
			Email:  g.Email,
			Phone:  g.Phone,
			Status: g.Status,
		})
	}

	return s
}

// RestoreSnapshot replaces the model with the snapshot's state. The
// snapshot is validated before anything is touched, so a corrupt payload
// leaves the model as it was.
func (m *Model) RestoreSnapshot(s Snapshot) error {
	const op = "seating.RestoreSnapshot"

	guests := make(map[uuid.UUID]*domain.Guest, len(s.Guests))
	for _, sg := range s.Guests {
		if _, dup := guests[sg.ID]; dup {
			return fmt.Errorf("%s: duplicate guest %s: %w", op, sg.ID, ErrCorruptSnapshot)
		}
		status := sg.Status
		if status == "" {
			status = domain.GuestPending
		}
		guests[sg.ID] = &domain.Guest{
			ID:     sg.ID,
			Name:   sg.Name,
			Email:  sg.Email,
			Phone:  sg.Phone,
			Status: status,
		}
	}

	tables := make(map[int]*domain.Table, len(s.Tables))
	for _, st := range s.Tables {
		if _, dup := tables[st.ID]; dup {
			return fmt.Errorf("%s: duplicate table %d: %w", op, st.ID, ErrCorruptSnapshot)
		}
		cp := st
		cp.Seats = make([]domain.Seat, len(st.Seats))
		copy(cp.Seats, st.Seats)

		seatIDs := make(map[int]struct{}, len(cp.Seats))
		for i := range cp.Seats {
			seat := &cp.Seats[i]
			if _, dup := seatIDs[seat.ID]; dup {
				return fmt.Errorf("%s: table %d duplicate seat %d: %w",
					op, st.ID, seat.ID, ErrCorruptSnapshot)
			}
			seatIDs[seat.ID] = struct{}{}
			if (seat.State == domain.SeatEmpty) != (seat.GuestID == nil) {
				return fmt.Errorf("%s: table %d seat %d state/guest mismatch: %w",
					op, st.ID, seat.ID, ErrCorruptSnapshot)
			}
			if seat.GuestID == nil {
				continue
			}
			g, ok := guests[*seat.GuestID]
			if !ok {
				return fmt.Errorf("%s: table %d seat %d references unknown guest %s: %w",
					op, st.ID, seat.ID, seat.GuestID, ErrCorruptSnapshot)
			}
			if g.Seating != nil {
				return fmt.Errorf("%s: guest %s seated twice: %w", op, g.ID, ErrCorruptSnapshot)
			}
			id := *seat.GuestID
			seat.GuestID = &id
			g.Seating = &domain.SeatRef{TableID: st.ID, SeatID: seat.ID}
			seat.DisplayName = g.Name
		}

		tables[st.ID] = &cp
	}

	m.tables = tables
	m.guests = guests

	return nil
}
