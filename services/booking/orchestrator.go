package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingRepo "fleetrent/database/repository/booking"
	vehicleRepo "fleetrent/database/repository/vehicle"
	"fleetrent/models"
	"fleetrent/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateBooking validates the range, looks up the vehicle's current daily
// rate, computes the total cost and delegates the atomic check-and-insert to
// the ledger. The probe a client may have run earlier carries no weight here;
// the commit re-validates from scratch.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, userID, vehicleID, start, end string) (*models.Booking, error) {
	r, err := s.validateRange(start, end)
	if err != nil {
		return nil, err
	}

	vehicle, err := s.Vehicles.GetByID(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, vehicleRepo.ErrNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, fmt.Errorf("vehicle lookup failed: %w", err)
	}

	booking := &models.Booking{
		ID:        uuid.New().String(),
		VehicleID: vehicle.ID,
		UserID:    userID,
		StartDate: r.StartString(),
		EndDate:   r.EndString(),
		TotalCost: QuoteCost(r, vehicle.DailyRate),
		Status:    models.BookingStatusConfirmed,
		CreatedAt: s.now(),
	}

	if err := s.Bookings.CreateConfirmed(ctx, booking); err != nil {
		return nil, translateLedgerError(err)
	}

	s.schedulePickupReminder(ctx, booking, r)
	return booking, nil
}

// UpdateBooking re-runs the full validation for the new range and recomputes
// the cost from the vehicle's current daily rate before delegating the atomic
// re-check-and-update to the ledger. Only the owner or an administrator may
// change a booking.
func (s *DefaultBookingService) UpdateBooking(ctx context.Context, actor Actor, bookingID, start, end string) (*models.Booking, error) {
	r, err := s.validateRange(start, end)
	if err != nil {
		return nil, err
	}

	existing, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, translateLedgerError(err)
	}
	if !actor.Admin && actor.ID != existing.UserID {
		return nil, ErrUnauthorized
	}

	vehicle, err := s.Vehicles.GetByID(ctx, existing.VehicleID)
	if err != nil {
		if errors.Is(err, vehicleRepo.ErrNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, fmt.Errorf("vehicle lookup failed: %w", err)
	}

	cost := QuoteCost(r, vehicle.DailyRate)
	if err := s.Bookings.UpdateDates(ctx, bookingID, r.StartString(), r.EndString(), cost); err != nil {
		return nil, translateLedgerError(err)
	}

	updated := *existing
	updated.StartDate = r.StartString()
	updated.EndDate = r.EndString()
	updated.TotalCost = cost
	return &updated, nil
}

// CancelBooking hard-deletes the booking, freeing its dates immediately.
// Only the owner or an administrator may cancel.
func (s *DefaultBookingService) CancelBooking(ctx context.Context, actor Actor, bookingID string) error {
	existing, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return translateLedgerError(err)
	}
	if !actor.Admin && actor.ID != existing.UserID {
		return ErrUnauthorized
	}
	return translateLedgerError(s.Bookings.Delete(ctx, bookingID))
}

// ListUserBookings returns the user's bookings for their dashboard.
func (s *DefaultBookingService) ListUserBookings(ctx context.Context, userID string) ([]models.Booking, error) {
	return s.Bookings.ListByUser(ctx, userID)
}

// ListAllBookings returns every booking, used by administrators.
func (s *DefaultBookingService) ListAllBookings(ctx context.Context) ([]models.Booking, error) {
	return s.Bookings.ListAll(ctx)
}

// validateRange parses the endpoints and rejects ranges starting before the
// injected reference date.
func (s *DefaultBookingService) validateRange(start, end string) (DateRange, error) {
	r, err := ParseDateRange(start, end)
	if err != nil {
		return DateRange{}, err
	}

	today := truncateToDate(s.now().UTC())
	if r.Start.Before(today) {
		return DateRange{}, &InvalidRangeError{Reason: "start date is in the past"}
	}
	return r, nil
}

// schedulePickupReminder enqueues a reminder for the booking's start date.
// Best effort: a queue hiccup never fails a committed booking.
func (s *DefaultBookingService) schedulePickupReminder(ctx context.Context, booking *models.Booking, r DateRange) {
	if s.Reminders == nil {
		return
	}
	payload := models.ReminderPayload{
		BookingID: booking.ID,
		UserID:    booking.UserID,
		VehicleID: booking.VehicleID,
		StartDate: booking.StartDate,
		EndDate:   booking.EndDate,
	}
	fireAt := r.Start.Add(8 * time.Hour)
	if err := s.Reminders.SchedulePickupReminder(ctx, payload, fireAt); err != nil {
		utils.GetLogger().Warn("failed to schedule pickup reminder",
			zap.String("bookingID", booking.ID), zap.Error(err))
	}
}

// translateLedgerError maps repository errors onto the service taxonomy.
func translateLedgerError(err error) error {
	if err == nil {
		return nil
	}
	var conflict *bookingRepo.ConflictError
	if errors.As(err, &conflict) {
		return &ConflictError{ConflictingBookingID: conflict.ConflictingBookingID}
	}
	if errors.Is(err, bookingRepo.ErrNotFound) {
		return ErrBookingNotFound
	}
	if errors.Is(err, bookingRepo.ErrVehicleGone) {
		return ErrVehicleNotFound
	}
	return err
}
