package vehicleRepo

import (
	"context"
	"errors"

	"fleetrent/models"
)

// ErrNotFound signals the vehicle record does not exist.
var ErrNotFound = errors.New("vehicle not found")

// VehicleRepository defines methods for fleet data access.
type VehicleRepository interface {
	// GetByID retrieves a vehicle by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Vehicle, error)
	// GetAll retrieves all vehicles, newest first.
	GetAll(ctx context.Context) ([]models.Vehicle, error)
	// Create inserts a new vehicle record.
	Create(ctx context.Context, vehicle *models.Vehicle) error
	// Update modifies an existing vehicle record.
	Update(ctx context.Context, vehicle *models.Vehicle) error
	// Delete removes a vehicle record by its ID.
	Delete(ctx context.Context, id string) error
	// Search matches vehicles by model, plate number or type, case-insensitive.
	Search(ctx context.Context, query string) ([]models.Vehicle, error)
}
