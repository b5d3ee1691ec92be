package booking

import (
	"errors"
	"fmt"
)

var (
	// ErrVehicleNotFound signals the referenced vehicle does not exist
	// (possibly deleted concurrently).
	ErrVehicleNotFound = errors.New("vehicle not found")

	// ErrBookingNotFound signals the target booking no longer exists.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrUnauthorized signals the actor is neither the booking owner nor an
	// administrator.
	ErrUnauthorized = errors.New("not authorized to modify this booking")
)

// InvalidRangeError rejects a malformed or past-dated range before any
// persistent work happens.
type InvalidRangeError struct {
	Reason string
}

func (e *InvalidRangeError) Error() string {
	return "invalid date range: " + e.Reason
}

// ConflictError reports an overlapping confirmed booking found at commit time.
// The conflicting booking id is diagnostic only.
type ConflictError struct {
	ConflictingBookingID string
}

func (e *ConflictError) Error() string {
	if e.ConflictingBookingID == "" {
		return "dates conflict with an existing booking"
	}
	return fmt.Sprintf("dates conflict with existing booking %s", e.ConflictingBookingID)
}
