package vehicle

import (
	"context"
	"time"

	bookingRepo "fleetrent/database/repository/booking"
	vehicleRepo "fleetrent/database/repository/vehicle"
	"fleetrent/models"
)

// VehicleInput carries the fleet-admin fields for creating or editing a vehicle.
type VehicleInput struct {
	PlateNumber string `json:"plate_number" binding:"required"`
	Model       string `json:"model" binding:"required"`
	Type        string `json:"type" binding:"required"`
	DailyRate   string `json:"daily_rate" binding:"required"`
}

// VehicleService manages the rentable fleet.
type VehicleService interface {
	CreateVehicle(ctx context.Context, input VehicleInput) (*models.Vehicle, error)
	UpdateVehicle(ctx context.Context, id string, input VehicleInput) (*models.Vehicle, error)
	// DeleteVehicle removes the vehicle and cascades to all its bookings.
	DeleteVehicle(ctx context.Context, id string) error
	GetVehicle(ctx context.Context, id string) (*models.Vehicle, error)
	// ListVehicles returns the fleet with each vehicle's rental status today.
	ListVehicles(ctx context.Context) ([]models.VehicleWithStatus, error)
	SearchVehicles(ctx context.Context, query string) ([]models.Vehicle, error)
}

// DefaultVehicleService implements VehicleService.
type DefaultVehicleService struct {
	Repo     vehicleRepo.VehicleRepository
	Bookings bookingRepo.BookingRepository

	// Now supplies the reference date for the Rented/Available annotation.
	// Injected so tests never depend on the wall clock. Defaults to time.Now.
	Now func() time.Time
}
