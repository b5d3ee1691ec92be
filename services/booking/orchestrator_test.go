package booking

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	bookingRepo "fleetrent/database/repository/booking"
	vehicleRepo "fleetrent/database/repository/vehicle"
	"fleetrent/models"
)

// memLedger is an in-memory BookingRepository honoring the same atomicity
// contract as the Mongo implementation: vehicle re-check, overlap re-check and
// write happen under one lock, so concurrent overlapping commits yield one
// winner and a commit racing a vehicle removal cannot orphan a booking.
type memLedger struct {
	mu            sync.Mutex
	bookings      map[string]models.Booking
	vehicleExists func(vehicleID string) bool
}

func newMemLedger() *memLedger {
	return &memLedger{bookings: make(map[string]models.Booking)}
}

func (l *memLedger) firstOverlappingLocked(vehicleID, start, end, excludeID string) *models.Booking {
	for _, b := range l.bookings {
		if b.VehicleID != vehicleID || b.Status != models.BookingStatusConfirmed {
			continue
		}
		if excludeID != "" && b.ID == excludeID {
			continue
		}
		// ISO dates compare lexicographically.
		if b.StartDate <= end && b.EndDate >= start {
			found := b
			return &found
		}
	}
	return nil
}

func (l *memLedger) CreateConfirmed(ctx context.Context, booking *models.Booking) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.vehicleExists != nil && !l.vehicleExists(booking.VehicleID) {
		return bookingRepo.ErrVehicleGone
	}
	if c := l.firstOverlappingLocked(booking.VehicleID, booking.StartDate, booking.EndDate, ""); c != nil {
		return &bookingRepo.ConflictError{ConflictingBookingID: c.ID}
	}
	l.bookings[booking.ID] = *booking
	return nil
}

func (l *memLedger) UpdateDates(ctx context.Context, bookingID, startDate, endDate string, totalCost models.Money) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	b, ok := l.bookings[bookingID]
	if !ok {
		return bookingRepo.ErrNotFound
	}
	if c := l.firstOverlappingLocked(b.VehicleID, startDate, endDate, bookingID); c != nil {
		return &bookingRepo.ConflictError{ConflictingBookingID: c.ID}
	}
	b.StartDate = startDate
	b.EndDate = endDate
	b.TotalCost = totalCost
	l.bookings[bookingID] = b
	return nil
}

func (l *memLedger) Delete(ctx context.Context, bookingID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.bookings[bookingID]; !ok {
		return bookingRepo.ErrNotFound
	}
	delete(l.bookings, bookingID)
	return nil
}

func (l *memLedger) GetByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	b, ok := l.bookings[bookingID]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	found := b
	return &found, nil
}

func (l *memLedger) FindOverlapping(ctx context.Context, vehicleID, startDate, endDate, excludeBookingID string) ([]models.Booking, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []models.Booking
	for _, b := range l.bookings {
		if b.VehicleID != vehicleID || b.Status != models.BookingStatusConfirmed {
			continue
		}
		if excludeBookingID != "" && b.ID == excludeBookingID {
			continue
		}
		if b.StartDate <= endDate && b.EndDate >= startDate {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate < out[j].StartDate })
	return out, nil
}

func (l *memLedger) ListByVehicle(ctx context.Context, vehicleID string) ([]models.Booking, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []models.Booking
	for _, b := range l.bookings {
		if b.VehicleID == vehicleID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate > out[j].StartDate })
	return out, nil
}

func (l *memLedger) ListByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []models.Booking
	for _, b := range l.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate > out[j].StartDate })
	return out, nil
}

func (l *memLedger) ListAll(ctx context.Context) ([]models.Booking, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]models.Booking, 0, len(l.bookings))
	for _, b := range l.bookings {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (l *memLedger) DeleteByVehicle(ctx context.Context, vehicleID string) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var n int64
	for id, b := range l.bookings {
		if b.VehicleID == vehicleID {
			delete(l.bookings, id)
			n++
		}
	}
	return n, nil
}

func (l *memLedger) HasActiveOn(ctx context.Context, vehicleID, date string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, b := range l.bookings {
		if b.VehicleID == vehicleID && b.Status == models.BookingStatusConfirmed &&
			b.StartDate <= date && b.EndDate >= date {
			return true, nil
		}
	}
	return false, nil
}

// memFleet is an in-memory VehicleRepository.
type memFleet struct {
	mu       sync.Mutex
	vehicles map[string]models.Vehicle
}

func newMemFleet() *memFleet {
	return &memFleet{vehicles: make(map[string]models.Vehicle)}
}

func (f *memFleet) GetByID(ctx context.Context, id string) (*models.Vehicle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.vehicles[id]
	if !ok {
		return nil, vehicleRepo.ErrNotFound
	}
	found := v
	return &found, nil
}

func (f *memFleet) GetAll(ctx context.Context) ([]models.Vehicle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Vehicle, 0, len(f.vehicles))
	for _, v := range f.vehicles {
		out = append(out, v)
	}
	return out, nil
}

func (f *memFleet) Create(ctx context.Context, vehicle *models.Vehicle) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.vehicles[vehicle.ID] = *vehicle
	return nil
}

func (f *memFleet) Update(ctx context.Context, vehicle *models.Vehicle) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.vehicles[vehicle.ID]; !ok {
		return vehicleRepo.ErrNotFound
	}
	f.vehicles[vehicle.ID] = *vehicle
	return nil
}

func (f *memFleet) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.vehicles[id]; !ok {
		return vehicleRepo.ErrNotFound
	}
	delete(f.vehicles, id)
	return nil
}

func (f *memFleet) Search(ctx context.Context, query string) ([]models.Vehicle, error) {
	return f.GetAll(ctx)
}

func fixedClock(date string) func() time.Time {
	t, err := time.ParseInLocation(DateLayout, date, time.UTC)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return t }
}

func newTestService(t *testing.T) (*DefaultBookingService, *memLedger, *memFleet) {
	t.Helper()
	ledger := newMemLedger()
	fleet := newMemFleet()

	rate, err := models.NewMoneyFromString("50.00")
	require.NoError(t, err)
	require.NoError(t, fleet.Create(context.Background(), &models.Vehicle{
		ID:          "veh-1",
		PlateNumber: "KDA 123X",
		Model:       "Corolla",
		Type:        models.VehicleTypeCar,
		DailyRate:   rate,
	}))

	ledger.vehicleExists = func(vehicleID string) bool {
		_, err := fleet.GetByID(context.Background(), vehicleID)
		return err == nil
	}

	svc := &DefaultBookingService{
		Bookings: ledger,
		Vehicles: fleet,
		Now:      fixedClock("2024-02-01"),
	}
	return svc, ledger, fleet
}

// hookedFleet runs a callback after each lookup, used to interleave a vehicle
// removal between the orchestrator's rate lookup and the ledger commit.
type hookedFleet struct {
	*memFleet
	afterGet func()
}

func (f *hookedFleet) GetByID(ctx context.Context, id string) (*models.Vehicle, error) {
	v, err := f.memFleet.GetByID(ctx, id)
	if f.afterGet != nil {
		f.afterGet()
	}
	return v, err
}

func TestCreateBookingSequenceWithConflictBetween(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	// Three days at 50.00.
	a, err := svc.CreateBooking(ctx, "alice", "veh-1", "2024-03-01", "2024-03-03")
	require.NoError(t, err)
	require.Equal(t, "150.00", a.TotalCost.String())
	require.Equal(t, models.BookingStatusConfirmed, a.Status)

	// Shares 2024-03-03 with the first booking.
	_, err = svc.CreateBooking(ctx, "bob", "veh-1", "2024-03-03", "2024-03-04")
	var conflict *ConflictError
	require.True(t, errors.As(err, &conflict))
	require.Equal(t, a.ID, conflict.ConflictingBookingID)

	// Starts the day after the first booking ends.
	c, err := svc.CreateBooking(ctx, "bob", "veh-1", "2024-03-04", "2024-03-05")
	require.NoError(t, err)
	require.Equal(t, "100.00", c.TotalCost.String())
}

func TestCreateBookingRejectsPastStartDate(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.CreateBooking(context.Background(), "alice", "veh-1", "2024-01-31", "2024-02-02")
	var ire *InvalidRangeError
	require.True(t, errors.As(err, &ire))

	// Starting today is fine.
	_, err = svc.CreateBooking(context.Background(), "alice", "veh-1", "2024-02-01", "2024-02-02")
	require.NoError(t, err)
}

func TestCreateBookingUnknownVehicle(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.CreateBooking(context.Background(), "alice", "veh-404", "2024-03-01", "2024-03-02")
	require.ErrorIs(t, err, ErrVehicleNotFound)
}

func TestUpdateBookingMovesDatesAndRecomputesCost(t *testing.T) {
	svc, _, fleet := newTestService(t)
	ctx := context.Background()

	b, err := svc.CreateBooking(ctx, "alice", "veh-1", "2024-03-01", "2024-03-03")
	require.NoError(t, err)

	// The rate changes after the booking was made; edits re-quote from the
	// vehicle's current rate.
	newRate, err := models.NewMoneyFromString("60.00")
	require.NoError(t, err)
	v, err := fleet.GetByID(ctx, "veh-1")
	require.NoError(t, err)
	v.DailyRate = newRate
	require.NoError(t, fleet.Update(ctx, v))

	updated, err := svc.UpdateBooking(ctx, Actor{ID: "alice"}, b.ID, "2024-03-10", "2024-03-11")
	require.NoError(t, err)
	require.Equal(t, "2024-03-10", updated.StartDate)
	require.Equal(t, "2024-03-11", updated.EndDate)
	require.Equal(t, "120.00", updated.TotalCost.String())
}

func TestUpdateBookingMayOverlapItsOwnPriorRange(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	b, err := svc.CreateBooking(ctx, "alice", "veh-1", "2024-03-01", "2024-03-03")
	require.NoError(t, err)

	// Extending over the booking's own current dates must not self-conflict.
	updated, err := svc.UpdateBooking(ctx, Actor{ID: "alice"}, b.ID, "2024-03-02", "2024-03-05")
	require.NoError(t, err)
	require.Equal(t, "200.00", updated.TotalCost.String())
}

func TestUpdateBookingConflictLeavesRecordUnchanged(t *testing.T) {
	svc, ledger, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.CreateBooking(ctx, "alice", "veh-1", "2024-03-01", "2024-03-03")
	require.NoError(t, err)
	second, err := svc.CreateBooking(ctx, "bob", "veh-1", "2024-03-10", "2024-03-12")
	require.NoError(t, err)

	_, err = svc.UpdateBooking(ctx, Actor{ID: "bob"}, second.ID, "2024-03-02", "2024-03-11")
	var conflict *ConflictError
	require.True(t, errors.As(err, &conflict))
	require.Equal(t, first.ID, conflict.ConflictingBookingID)

	// The failed edit must not have touched the stored booking.
	stored, err := ledger.GetByID(ctx, second.ID)
	require.NoError(t, err)
	require.Equal(t, "2024-03-10", stored.StartDate)
	require.Equal(t, "2024-03-12", stored.EndDate)
	require.True(t, stored.TotalCost.Equal(second.TotalCost))
}

func TestUpdateBookingAuthorization(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	b, err := svc.CreateBooking(ctx, "alice", "veh-1", "2024-03-01", "2024-03-03")
	require.NoError(t, err)

	_, err = svc.UpdateBooking(ctx, Actor{ID: "mallory"}, b.ID, "2024-03-20", "2024-03-21")
	require.ErrorIs(t, err, ErrUnauthorized)

	// Administrators may edit anyone's booking.
	_, err = svc.UpdateBooking(ctx, Actor{ID: "root", Admin: true}, b.ID, "2024-03-20", "2024-03-21")
	require.NoError(t, err)
}

func TestUpdateBookingUnknownID(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.UpdateBooking(context.Background(), Actor{ID: "alice"}, "nope", "2024-03-01", "2024-03-02")
	require.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancelBookingFreesTheDates(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	b, err := svc.CreateBooking(ctx, "alice", "veh-1", "2024-03-01", "2024-03-03")
	require.NoError(t, err)

	require.NoError(t, svc.CancelBooking(ctx, Actor{ID: "alice"}, b.ID))

	// The freed range is immediately bookable again.
	_, err = svc.CreateBooking(ctx, "bob", "veh-1", "2024-03-01", "2024-03-03")
	require.NoError(t, err)

	// Cancelling twice reports the record gone.
	require.ErrorIs(t, svc.CancelBooking(ctx, Actor{ID: "alice"}, b.ID), ErrBookingNotFound)
}

func TestCancelBookingAuthorization(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	b, err := svc.CreateBooking(ctx, "alice", "veh-1", "2024-03-01", "2024-03-03")
	require.NoError(t, err)

	require.ErrorIs(t, svc.CancelBooking(ctx, Actor{ID: "mallory"}, b.ID), ErrUnauthorized)
	require.NoError(t, svc.CancelBooking(ctx, Actor{ID: "root", Admin: true}, b.ID))
}

func TestCheckAvailabilityProbe(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	res, err := svc.CheckAvailability(ctx, "veh-1", "2024-03-01", "2024-03-03")
	require.NoError(t, err)
	require.True(t, res.Available)
	require.Equal(t, msgAvailable, res.Message)

	b, err := svc.CreateBooking(ctx, "alice", "veh-1", "2024-03-01", "2024-03-03")
	require.NoError(t, err)

	res, err = svc.CheckAvailability(ctx, "veh-1", "2024-03-03", "2024-03-04")
	require.NoError(t, err)
	require.False(t, res.Available)
	require.Equal(t, b.ID, res.ConflictingBookingID)
	require.Equal(t, msgUnavailable, res.Message)

	// The probe is read-only; running it repeatedly changes nothing.
	for i := 0; i < 5; i++ {
		again, err := svc.CheckAvailability(ctx, "veh-1", "2024-03-03", "2024-03-04")
		require.NoError(t, err)
		require.Equal(t, res, again)
	}

	// Malformed input yields an unavailable result, not an error.
	res, err = svc.CheckAvailability(ctx, "veh-1", "bad-date", "2024-03-04")
	require.NoError(t, err)
	require.False(t, res.Available)
	require.NotEmpty(t, res.Message)
}

func TestConcurrentOverlappingCreatesYieldOneWinner(t *testing.T) {
	svc, ledger, _ := newTestService(t)
	ctx := context.Background()

	const attempts = 32
	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.CreateBooking(ctx, "racer", "veh-1", "2024-04-01", "2024-04-03")
		}(i)
	}
	wg.Wait()

	var wins, conflicts int
	for _, err := range errs {
		var c *ConflictError
		switch {
		case err == nil:
			wins++
		case errors.As(err, &c):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	require.Equal(t, 1, wins)
	require.Equal(t, attempts-1, conflicts)

	all, err := ledger.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestCreateBookingRacingVehicleRemovalLeavesNoOrphan(t *testing.T) {
	ctx := context.Background()
	ledger := newMemLedger()
	fleet := newMemFleet()

	rate, err := models.NewMoneyFromString("50.00")
	require.NoError(t, err)
	require.NoError(t, fleet.Create(ctx, &models.Vehicle{
		ID: "veh-1", PlateNumber: "KDA 123X", Model: "Corolla",
		Type: models.VehicleTypeCar, DailyRate: rate,
	}))
	ledger.vehicleExists = func(vehicleID string) bool {
		_, err := fleet.GetByID(context.Background(), vehicleID)
		return err == nil
	}

	// The vehicle vanishes after the rate lookup but before the ledger
	// commit: vehicle document first, then the booking cascade, the same
	// order the fleet service uses.
	hooked := &hookedFleet{memFleet: fleet}
	hooked.afterGet = func() {
		hooked.afterGet = nil
		require.NoError(t, fleet.Delete(ctx, "veh-1"))
		_, err := ledger.DeleteByVehicle(ctx, "veh-1")
		require.NoError(t, err)
	}

	svc := &DefaultBookingService{
		Bookings: ledger,
		Vehicles: hooked,
		Now:      fixedClock("2024-02-01"),
	}

	_, err = svc.CreateBooking(ctx, "alice", "veh-1", "2024-03-01", "2024-03-03")
	require.ErrorIs(t, err, ErrVehicleNotFound)

	all, err := ledger.ListAll(ctx)
	require.NoError(t, err)
	require.Empty(t, all, "no confirmed booking may survive its vehicle")
}

func TestListUserBookings(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateBooking(ctx, "alice", "veh-1", "2024-03-01", "2024-03-02")
	require.NoError(t, err)
	_, err = svc.CreateBooking(ctx, "alice", "veh-1", "2024-03-10", "2024-03-11")
	require.NoError(t, err)
	_, err = svc.CreateBooking(ctx, "bob", "veh-1", "2024-03-20", "2024-03-21")
	require.NoError(t, err)

	mine, err := svc.ListUserBookings(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	for _, b := range mine {
		require.Equal(t, "alice", b.UserID)
	}

	all, err := svc.ListAllBookings(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
}
