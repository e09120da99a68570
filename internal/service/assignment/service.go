// Package assignment implements the seat mutation operations: assign,
// move, swap and unassign. Every operation is atomic over the in-memory
// model: inputs are validated before anything is written, so a failed call
// leaves the model exactly as it was.
package assignment

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/irynavol/seatmap-go/internal/domain"
	"github.com/irynavol/seatmap-go/internal/geometry"
	"github.com/irynavol/seatmap-go/internal/seating"
)

// Notify is called after every committed mutation. The session hooks the
// sync gateway in here; tests leave it nil.
type Notify func()

type Service struct {
	model  *seating.Model
	notify Notify
}

func New(model *seating.Model, notify Notify) *Service {
	return &Service{model: model, notify: notify}
}

func (s *Service) committed() {
	if s.notify != nil {
		s.notify()
	}
}

// AssignGuestToSeat sets the seat directly to the chosen state and binds
// the guest, matching the "open seat editor, pick a guest" gesture. A nil
// guestID clears the seat. A guest already seated elsewhere is released
// from their old seat within the same operation, so a guest never holds
// two seats.
func (s *Service) AssignGuestToSeat(guestID *uuid.UUID, tableID, seatID int, state domain.SeatState) error {
	const op = "assignment.AssignGuestToSeat"

	seat, err := s.model.SeatAt(tableID, seatID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if guestID == nil || state == domain.SeatEmpty {
		if guestID != nil {
			return fmt.Errorf("%s: cannot bind guest with empty state: %w", op, ErrInvalidState)
		}
		s.clearSeat(seat)
		s.committed()
		return nil
	}

	guest, err := s.model.Guest(*guestID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if state != domain.SeatReserved && state != domain.SeatConfirmed {
		return fmt.Errorf("%s: state %q: %w", op, state, ErrInvalidState)
	}

	// Release whoever held the target seat, then the guest's prior seat.
	s.clearSeat(seat)
	if guest.Seating != nil {
		if prev, err := s.model.SeatAt(guest.Seating.TableID, guest.Seating.SeatID); err == nil {
			prev.State = domain.SeatEmpty
			prev.GuestID = nil
			prev.DisplayName = ""
		}
	}

	id := guest.ID
	seat.State = state
	seat.GuestID = &id
	seat.DisplayName = guest.Name
	guest.Seating = &domain.SeatRef{TableID: tableID, SeatID: seatID}
	guest.Status = guestStatusFor(state)

	s.committed()
	return nil
}

// SwapSeats exchanges the full occupancy triple between two seats and
// fixes both back-references. An invalid seat reference makes the whole
// call a silent no-op, as does swapping a seat with itself.
func (s *Service) SwapSeats(tableA, seatA, tableB, seatB int) error {
	a, errA := s.model.SeatAt(tableA, seatA)
	b, errB := s.model.SeatAt(tableB, seatB)
	if errA != nil || errB != nil || a == b {
		return nil
	}

	a.State, b.State = b.State, a.State
	a.GuestID, b.GuestID = b.GuestID, a.GuestID
	a.DisplayName, b.DisplayName = b.DisplayName, a.DisplayName

	if a.GuestID != nil {
		if g, err := s.model.Guest(*a.GuestID); err == nil {
			g.Seating = &domain.SeatRef{TableID: tableA, SeatID: seatA}
		}
	}
	if b.GuestID != nil {
		if g, err := s.model.Guest(*b.GuestID); err == nil {
			g.Seating = &domain.SeatRef{TableID: tableB, SeatID: seatB}
		}
	}

	s.committed()
	return nil
}

// MoveGuest relocates an occupant to an empty seat. An occupied target
// fails with ErrSeatOccupied and leaves both seats untouched.
func (s *Service) MoveGuest(fromTable, fromSeat, toTable, toSeat int) error {
	const op = "assignment.MoveGuest"

	src, err := s.model.SeatAt(fromTable, fromSeat)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	dst, err := s.model.SeatAt(toTable, toSeat)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !src.Occupied() {
		return fmt.Errorf("%s: table %d seat %d: %w", op, fromTable, fromSeat, ErrSeatEmpty)
	}
	if dst.Occupied() {
		return fmt.Errorf("%s: table %d seat %d: %w", op, toTable, toSeat, ErrSeatOccupied)
	}

	dst.State = src.State
	dst.GuestID = src.GuestID
	dst.DisplayName = src.DisplayName
	src.State = domain.SeatEmpty
	src.GuestID = nil
	src.DisplayName = ""

	if dst.GuestID != nil {
		if g, err := s.model.Guest(*dst.GuestID); err == nil {
			g.Seating = &domain.SeatRef{TableID: toTable, SeatID: toSeat}
		}
	}

	s.committed()
	return nil
}

// UnassignSeat clears the seat unconditionally.
func (s *Service) UnassignSeat(tableID, seatID int) error {
	const op = "assignment.UnassignSeat"

	seat, err := s.model.SeatAt(tableID, seatID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.clearSeat(seat)
	s.committed()
	return nil
}

func (s *Service) IsTableFull(tableID int) (bool, error) {
	return s.model.IsTableFull(tableID)
}

func (s *Service) OccupancyStats() domain.OccupancyStats {
	return s.model.OccupancyStats()
}

// SeatLayout pairs each seat with its computed position, in seat order.
// This is the renderer's input contract.
type SeatLayout struct {
	Seat     domain.Seat     `json:"seat"`
	Position domain.Position `json:"position"`
}

// Layout returns the seat layout for one table.
func (s *Service) Layout(tableID int) ([]SeatLayout, error) {
	const op = "assignment.Layout"

	t, err := s.model.Table(tableID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return LayoutFor(*t), nil
}

// LayoutFor computes the layout for a detached table value, for callers
// that render from a snapshot rather than a live model.
func LayoutFor(t domain.Table) []SeatLayout {
	positions := geometry.Positions(len(t.Seats), t.Shape)
	out := make([]SeatLayout, len(t.Seats))
	for i := range t.Seats {
		out[i] = SeatLayout{Seat: t.Seats[i], Position: positions[i]}
	}
	return out
}

// clearSeat empties the seat and resets the occupant's back-reference and
// status, keeping both sides of the relation in step.
func (s *Service) clearSeat(seat *domain.Seat) {
	if seat.GuestID != nil {
		if g, err := s.model.Guest(*seat.GuestID); err == nil {
			g.Seating = nil
			g.Status = domain.GuestPending
		}
	}
	seat.State = domain.SeatEmpty
	seat.GuestID = nil
	seat.DisplayName = ""
}

func guestStatusFor(state domain.SeatState) domain.GuestStatus {
	if state == domain.SeatConfirmed {
		return domain.GuestConfirmed
	}
	return domain.GuestReserved
}
