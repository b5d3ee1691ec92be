package booking

import (
	"context"
	"errors"
	"fmt"
)

// Messages surfaced to interactive clients checking dates.
const (
	msgAvailable   = "Vehicle is available!"
	msgUnavailable = "Vehicle is already booked for the selected dates."
)

// CheckAvailability probes whether the vehicle is free for the range. It is a
// read-only check with no side effects: input problems come back as an
// unavailable result rather than an error, matching what interactive date
// pickers expect.
func (s *DefaultBookingService) CheckAvailability(ctx context.Context, vehicleID, start, end string) (AvailabilityResult, error) {
	r, err := ParseDateRange(start, end)
	if err != nil {
		var invalid *InvalidRangeError
		if errors.As(err, &invalid) {
			return AvailabilityResult{Available: false, Message: invalid.Reason}, nil
		}
		return AvailabilityResult{}, err
	}
	return s.probe(ctx, vehicleID, r, "")
}

// probe runs the advisory overlap check, optionally excluding one booking
// (used when re-checking an edit against the booking's own prior range).
func (s *DefaultBookingService) probe(ctx context.Context, vehicleID string, r DateRange, excludeBookingID string) (AvailabilityResult, error) {
	conflicts, err := s.Bookings.FindOverlapping(ctx, vehicleID, r.StartString(), r.EndString(), excludeBookingID)
	if err != nil {
		return AvailabilityResult{}, fmt.Errorf("availability check failed: %w", err)
	}
	if len(conflicts) > 0 {
		return AvailabilityResult{
			Available:            false,
			ConflictingBookingID: conflicts[0].ID,
			Message:              msgUnavailable,
		}, nil
	}
	return AvailabilityResult{Available: true, Message: msgAvailable}, nil
}
