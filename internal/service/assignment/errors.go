package assignment

import "errors"

var (
	ErrSeatOccupied = errors.New("seat is already occupied")
	ErrSeatEmpty    = errors.New("seat is empty")
	ErrInvalidState = errors.New("invalid occupancy state")
)
