package models

import "time"

// Vehicle types offered by the fleet.
const (
	VehicleTypeCar     = "Car"
	VehicleTypeBike    = "Bike"
	VehicleTypeScooter = "Scooter"
)

// Vehicle current rental state, derived from today's confirmed bookings.
const (
	VehicleStatusAvailable = "Available"
	VehicleStatusRented    = "Rented"
)

// Vehicle represents a rentable unit in the fleet.
type Vehicle struct {
	ID          string    `bson:"id" json:"id"`
	PlateNumber string    `bson:"plate_number" json:"plate_number"`
	Model       string    `bson:"model" json:"model"`
	Type        string    `bson:"type" json:"type"`
	DailyRate   Money     `bson:"daily_rate" json:"daily_rate"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

// VehicleWithStatus is the listing view: a vehicle plus whether it is rented today.
type VehicleWithStatus struct {
	Vehicle       `bson:",inline"`
	CurrentStatus string `bson:"-" json:"current_status"`
}
