package domain

import (
	"time"

	"github.com/google/uuid"
)

// Shape of a Table, which drives seat geometry.
type Shape string

const (
	ShapeRectangular Shape = "rectangular"
	ShapeSquare      Shape = "square"
	ShapeRound       Shape = "round"
)

// SeatState is the tri-state occupancy of a single seat.
type SeatState string

const (
	SeatEmpty     SeatState = "empty"
	SeatReserved  SeatState = "reserved"
	SeatConfirmed SeatState = "confirmed"
)

// GuestStatus tracks a guest's confirmation independent of the seat map.
type GuestStatus string

const (
	GuestPending   GuestStatus = "pending"
	GuestReserved  GuestStatus = "reserved"
	GuestConfirmed GuestStatus = "confirmed"
)

type EventStatus string

const (
	EventDraft  EventStatus = "draft"
	EventActive EventStatus = "active"
)

type Event struct {
	ID          uuid.UUID   `json:"id"`
	OwnerID     string      `json:"owner_id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Location    string      `json:"location,omitempty"`
	StartsAt    time.Time   `json:"starts_at"`
	Status      EventStatus `json:"status"`
}

// Table is a seating unit with a fixed ordered seat list. Table IDs are
// small integers unique within an event; seat IDs run 1..N and never
// change except through full table-set recreation.
type Table struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Shape Shape  `json:"shape"`
	Color string `json:"color"`
	Seats []Seat `json:"seats"`
}

// Seat holds at most one guest. DisplayName is a denormalized copy of the
// guest's name kept in sync by the assignment engine; the guest roster is
// authoritative.
type Seat struct {
	ID          int        `json:"id"`
	State       SeatState  `json:"state"`
	GuestID     *uuid.UUID `json:"guest_id,omitempty"`
	DisplayName string     `json:"display_name,omitempty"`
}

// SeatRef is a guest's back-reference to their seat. It must always agree
// with the seat's forward reference; both sides are updated within the
// same engine operation.
type SeatRef struct {
	TableID int `json:"table_id"`
	SeatID  int `json:"seat_id"`
}

type Guest struct {
	ID      uuid.UUID   `json:"id"`
	Name    string      `json:"name"`
	Email   string      `json:"email,omitempty"`
	Phone   string      `json:"phone,omitempty"`
	Status  GuestStatus `json:"status"`
	Seating *SeatRef    `json:"seating,omitempty"`
}

// Position is a seat coordinate in percent of the table extent, both axes
// in [0,100].
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type OccupancyStats struct {
	TotalSeats    int `json:"total_seats"`
	OccupiedSeats int `json:"occupied_seats"`
	Percentage    int `json:"percentage"`
}

// Profile carries the read-only role limits supplied by the auth
// collaborator. A nil EventLimit means unlimited active events.
type Profile struct {
	Role       string
	EventLimit *int
}

// Occupied reports whether the seat holds a guest in any non-empty state.
func (s *Seat) Occupied() bool {
	return s.State != SeatEmpty
}
