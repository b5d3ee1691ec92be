package bookingRepo

import (
	"context"
	"errors"
	"fmt"

	"fleetrent/models"
)

// ErrNotFound signals the booking record does not exist.
var ErrNotFound = errors.New("booking not found")

// ErrVehicleGone signals the vehicle was removed before the commit landed.
var ErrVehicleGone = errors.New("vehicle no longer exists")

// ConflictError is returned when a commit would overlap an existing confirmed
// booking on the same vehicle.
type ConflictError struct {
	ConflictingBookingID string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("overlapping confirmed booking %s", e.ConflictingBookingID)
}

// BookingRepository is the authoritative store of confirmed bookings.
// CreateConfirmed and UpdateDates re-validate the no-overlap invariant
// atomically with respect to all other commits on the same vehicle: two
// concurrent overlapping commits yield exactly one success and one
// ConflictError.
type BookingRepository interface {
	// CreateConfirmed atomically re-checks for overlap and inserts the booking.
	// The vehicle's existence is re-verified inside the same atomic section;
	// a commit racing a vehicle removal returns ErrVehicleGone rather than
	// leaving a booking behind for a vehicle that no longer exists.
	CreateConfirmed(ctx context.Context, booking *models.Booking) error
	// UpdateDates atomically re-validates the new range against all other
	// confirmed bookings of the same vehicle, then applies dates and cost.
	UpdateDates(ctx context.Context, bookingID, startDate, endDate string, totalCost models.Money) error
	// Delete removes a booking record (hard delete).
	Delete(ctx context.Context, bookingID string) error
	// GetByID retrieves a booking by its unique ID.
	GetByID(ctx context.Context, bookingID string) (*models.Booking, error)
	// FindOverlapping returns confirmed bookings of the vehicle whose inclusive
	// ranges intersect [startDate, endDate], excluding excludeBookingID if set.
	FindOverlapping(ctx context.Context, vehicleID, startDate, endDate, excludeBookingID string) ([]models.Booking, error)
	// ListByVehicle returns the vehicle's bookings, most recent range first.
	ListByVehicle(ctx context.Context, vehicleID string) ([]models.Booking, error)
	// ListByUser returns the user's bookings, most recent range first.
	ListByUser(ctx context.Context, userID string) ([]models.Booking, error)
	// ListAll returns every booking, newest first (admin reporting).
	ListAll(ctx context.Context) ([]models.Booking, error)
	// DeleteByVehicle removes all bookings of a vehicle (cascade on vehicle
	// removal). Serialized against commits on the same vehicle so the cascade
	// cannot interleave with an in-flight create or update.
	DeleteByVehicle(ctx context.Context, vehicleID string) (int64, error)
	// HasActiveOn reports whether a confirmed booking spans the given date.
	HasActiveOn(ctx context.Context, vehicleID, date string) (bool, error)
}
