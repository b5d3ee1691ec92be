package vehicle

import (
	"context"
	"errors"
	"fmt"
	"time"

	vehicleRepo "fleetrent/database/repository/vehicle"
	"fleetrent/models"
	"fleetrent/services/booking"
	"fleetrent/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var allowedTypes = map[string]bool{
	models.VehicleTypeCar:     true,
	models.VehicleTypeBike:    true,
	models.VehicleTypeScooter: true,
}

// CreateVehicle adds a new unit to the fleet.
func (svc *DefaultVehicleService) CreateVehicle(ctx context.Context, input VehicleInput) (*models.Vehicle, error) {
	rate, err := validateInput(input)
	if err != nil {
		return nil, err
	}

	v := &models.Vehicle{
		ID:          uuid.New().String(),
		PlateNumber: input.PlateNumber,
		Model:       input.Model,
		Type:        input.Type,
		DailyRate:   rate,
	}
	if err := svc.Repo.Create(ctx, v); err != nil {
		return nil, fmt.Errorf("failed to create vehicle: %w", err)
	}
	return v, nil
}

// UpdateVehicle edits fleet attributes. A daily-rate change applies to future
// commits only; the cost stored on existing bookings is never recomputed.
func (svc *DefaultVehicleService) UpdateVehicle(ctx context.Context, id string, input VehicleInput) (*models.Vehicle, error) {
	rate, err := validateInput(input)
	if err != nil {
		return nil, err
	}

	v, err := svc.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, vehicleRepo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	v.PlateNumber = input.PlateNumber
	v.Model = input.Model
	v.Type = input.Type
	v.DailyRate = rate
	if err := svc.Repo.Update(ctx, v); err != nil {
		if errors.Is(err, vehicleRepo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update vehicle %s: %w", id, err)
	}
	return v, nil
}

// DeleteVehicle removes the vehicle and all of its bookings. The vehicle
// document goes first: once it is gone, new commits fail their in-transaction
// vehicle re-check, and any commit that slipped in just before is swept up by
// the cascade, which waits on the vehicle's commit lock.
func (svc *DefaultVehicleService) DeleteVehicle(ctx context.Context, id string) error {
	if err := svc.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, vehicleRepo.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete vehicle %s: %w", id, err)
	}

	removed, err := svc.Bookings.DeleteByVehicle(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to cascade bookings for vehicle %s: %w", id, err)
	}
	if removed > 0 {
		utils.GetLogger().Info("cascaded bookings on vehicle removal",
			zap.String("vehicleID", id), zap.Int64("bookings", removed))
	}
	return nil
}

// GetVehicle retrieves a single vehicle.
func (svc *DefaultVehicleService) GetVehicle(ctx context.Context, id string) (*models.Vehicle, error) {
	v, err := svc.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, vehicleRepo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return v, nil
}

// ListVehicles returns the fleet annotated with today's rental status:
// "Rented" when a confirmed booking spans today, otherwise "Available".
func (svc *DefaultVehicleService) ListVehicles(ctx context.Context) ([]models.VehicleWithStatus, error) {
	vehicles, err := svc.Repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	today := svc.today()
	out := make([]models.VehicleWithStatus, 0, len(vehicles))
	for _, v := range vehicles {
		rented, err := svc.Bookings.HasActiveOn(ctx, v.ID, today)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve status for vehicle %s: %w", v.ID, err)
		}
		status := models.VehicleStatusAvailable
		if rented {
			status = models.VehicleStatusRented
		}
		out = append(out, models.VehicleWithStatus{Vehicle: v, CurrentStatus: status})
	}
	return out, nil
}

// SearchVehicles matches by model, plate number or type.
func (svc *DefaultVehicleService) SearchVehicles(ctx context.Context, query string) ([]models.Vehicle, error) {
	if query == "" {
		return svc.Repo.GetAll(ctx)
	}
	return svc.Repo.Search(ctx, query)
}

func (svc *DefaultVehicleService) today() string {
	now := time.Now
	if svc.Now != nil {
		now = svc.Now
	}
	return now().UTC().Format(booking.DateLayout)
}

func validateInput(input VehicleInput) (models.Money, error) {
	if !allowedTypes[input.Type] {
		return models.Money{}, &InputError{Reason: "type must be Car, Bike or Scooter"}
	}
	rate, err := models.NewMoneyFromString(input.DailyRate)
	if err != nil {
		return models.Money{}, &InputError{Reason: "daily rate must be a decimal amount"}
	}
	if rate.IsNegative() {
		return models.Money{}, &InputError{Reason: "daily rate must not be negative"}
	}
	return rate, nil
}
