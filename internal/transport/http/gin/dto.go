package httpgin

import (
	"time"

	"github.com/irynavol/seatmap-go/internal/domain"
)

type EventRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Location    string `json:"location"`
	StartsAt    string `json:"starts_at" binding:"required"`
	Status      string `json:"status" binding:"omitempty,oneof=draft active"`
}

type CreateTablesRequest struct {
	Count         int    `json:"count" binding:"required,gte=1,lte=50"`
	SeatsPerTable int    `json:"seats_per_table" binding:"required,gte=1,lte=12"`
	Shape         string `json:"shape" binding:"required,oneof=rectangular square round"`
}

type UpdateTableRequest struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
}

type GuestRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"omitempty,email"`
	Phone string `json:"phone"`
}

type AssignRequest struct {
	GuestID *string `json:"guest_id" binding:"omitempty,uuid"`
	TableID int     `json:"table_id" binding:"required"`
	SeatID  int     `json:"seat_id" binding:"required"`
	State   string  `json:"state" binding:"required,oneof=empty reserved confirmed"`
}

type MoveRequest struct {
	FromTable int `json:"from_table" binding:"required"`
	FromSeat  int `json:"from_seat" binding:"required"`
	ToTable   int `json:"to_table" binding:"required"`
	ToSeat    int `json:"to_seat" binding:"required"`
}

type SwapRequest struct {
	TableA int `json:"table_a" binding:"required"`
	SeatA  int `json:"seat_a" binding:"required"`
	TableB int `json:"table_b" binding:"required"`
	SeatB  int `json:"seat_b" binding:"required"`
}

type UnassignRequest struct {
	TableID int `json:"table_id" binding:"required"`
	SeatID  int `json:"seat_id" binding:"required"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// SyncStatusResponse reports how the last save went, so the UI can show
// "saved", "retry" or "sign in again".
type SyncStatusResponse struct {
	Suspended bool   `json:"suspended"`
	LastError string `json:"last_error,omitempty"`
}

func parseRFC3339(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

func eventDraftStatus(s string) domain.EventStatus {
	if s == string(domain.EventActive) {
		return domain.EventActive
	}
	return domain.EventDraft
}
