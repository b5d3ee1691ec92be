package booking

import (
	"context"
	"time"

	bookingRepo "fleetrent/database/repository/booking"
	vehicleRepo "fleetrent/database/repository/vehicle"
	"fleetrent/models"
	"fleetrent/services/tasks"
)

// Actor identifies who is performing an operation. Identity is always passed
// in explicitly; the service never reads it from ambient state.
type Actor struct {
	ID    string
	Admin bool
}

// AvailabilityResult is the outcome of a non-binding availability probe.
type AvailabilityResult struct {
	Available            bool   `json:"available"`
	ConflictingBookingID string `json:"conflicting_booking_id,omitempty"`
	Message              string `json:"message"`
}

// BookingService exposes the reservation operations: a non-binding probe, the
// committing create/update/cancel, and the read paths used for reporting.
type BookingService interface {
	// CheckAvailability is advisory only; a positive result is never a commit
	// guarantee because other commits can land between probe and commit.
	CheckAvailability(ctx context.Context, vehicleID, start, end string) (AvailabilityResult, error)
	CreateBooking(ctx context.Context, userID, vehicleID, start, end string) (*models.Booking, error)
	UpdateBooking(ctx context.Context, actor Actor, bookingID, start, end string) (*models.Booking, error)
	CancelBooking(ctx context.Context, actor Actor, bookingID string) error
	ListUserBookings(ctx context.Context, userID string) ([]models.Booking, error)
	ListAllBookings(ctx context.Context) ([]models.Booking, error)
}

// DefaultBookingService implements BookingService against the booking ledger
// and the vehicle store.
type DefaultBookingService struct {
	Bookings  bookingRepo.BookingRepository
	Vehicles  vehicleRepo.VehicleRepository
	Reminders tasks.ReminderScheduler

	// Now supplies the reference date for past-start rejection. Injected so
	// tests never depend on the wall clock. Defaults to time.Now.
	Now func() time.Time
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
