package models

import "time"

// BookingStatusConfirmed is the only persisted status. A booking either exists
// as Confirmed or does not exist at all; cancellation removes the record.
const BookingStatusConfirmed = "Confirmed"

// Booking represents a confirmed reservation of a vehicle for an inclusive
// date range. Dates use the "YYYY-MM-DD" wire format so range comparisons in
// Mongo stay lexicographic.
type Booking struct {
	ID        string    `bson:"id" json:"id"`                   // Unique booking identifier (UUID)
	VehicleID string    `bson:"vehicle_id" json:"vehicle_id"`   // Vehicle being reserved
	UserID    string    `bson:"user_id" json:"user_id"`         // Owner of the reservation
	StartDate string    `bson:"start_date" json:"start_date"`   // Inclusive start, "YYYY-MM-DD"
	EndDate   string    `bson:"end_date" json:"end_date"`       // Inclusive end, "YYYY-MM-DD"
	TotalCost Money     `bson:"total_cost" json:"total_cost"`   // Days x daily rate at commit time
	Status    string    `bson:"status" json:"status"`           // Always "Confirmed"
	CreatedAt time.Time `bson:"created_at" json:"created_at"`   // Commit timestamp
}
