package bookingRepo

import (
	"context"
	"fmt"

	"fleetrent/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetByID retrieves a booking by its unique ID.
func (r *MongoBookingRepo) GetByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	var b models.Booking
	if err := r.coll.FindOne(ctx, bson.M{"id": bookingID}).Decode(&b); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch booking %s: %w", bookingID, err)
	}
	return &b, nil
}

// FindOverlapping returns confirmed bookings of the vehicle intersecting the
// inclusive range. Advisory read path used by availability probes; holds no lock.
func (r *MongoBookingRepo) FindOverlapping(ctx context.Context, vehicleID, startDate, endDate, excludeBookingID string) ([]models.Booking, error) {
	filter := bson.M{
		"vehicle_id": vehicleID,
		"status":     models.BookingStatusConfirmed,
		"start_date": bson.M{"$lte": endDate},
		"end_date":   bson.M{"$gte": startDate},
	}
	if excludeBookingID != "" {
		filter["id"] = bson.M{"$ne": excludeBookingID}
	}
	return r.find(ctx, filter, nil)
}

// ListByVehicle returns the vehicle's bookings ordered by start date descending.
func (r *MongoBookingRepo) ListByVehicle(ctx context.Context, vehicleID string) ([]models.Booking, error) {
	sort := bson.D{{Key: "start_date", Value: -1}}
	return r.find(ctx, bson.M{"vehicle_id": vehicleID}, sort)
}

// ListByUser returns the user's bookings ordered by start date descending.
func (r *MongoBookingRepo) ListByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	sort := bson.D{{Key: "start_date", Value: -1}}
	return r.find(ctx, bson.M{"user_id": userID}, sort)
}

// ListAll returns all bookings, newest first.
func (r *MongoBookingRepo) ListAll(ctx context.Context) ([]models.Booking, error) {
	sort := bson.D{{Key: "created_at", Value: -1}}
	return r.find(ctx, bson.M{}, sort)
}

// Delete removes a booking record by its ID.
func (r *MongoBookingRepo) Delete(ctx context.Context, bookingID string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": bookingID})
	if err != nil {
		return fmt.Errorf("failed to delete booking %s: %w", bookingID, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByVehicle removes all bookings of a vehicle. Used when a vehicle is
// removed from the fleet; its reservations go with it. Takes the vehicle's
// commit lock so the cascade waits out any in-flight commit, whose booking is
// then swept up here.
func (r *MongoBookingRepo) DeleteByVehicle(ctx context.Context, vehicleID string) (int64, error) {
	lock := r.locks.get(vehicleID)
	lock.Lock()
	defer lock.Unlock()

	res, err := r.coll.DeleteMany(ctx, bson.M{"vehicle_id": vehicleID})
	if err != nil {
		return 0, fmt.Errorf("failed to delete bookings for vehicle %s: %w", vehicleID, err)
	}
	return res.DeletedCount, nil
}

// HasActiveOn reports whether a confirmed booking spans the given date.
func (r *MongoBookingRepo) HasActiveOn(ctx context.Context, vehicleID, date string) (bool, error) {
	filter := bson.M{
		"vehicle_id": vehicleID,
		"status":     models.BookingStatusConfirmed,
		"start_date": bson.M{"$lte": date},
		"end_date":   bson.M{"$gte": date},
	}
	count, err := r.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check active booking for vehicle %s: %w", vehicleID, err)
	}
	return count > 0, nil
}

func (r *MongoBookingRepo) find(ctx context.Context, filter bson.M, sort bson.D) ([]models.Booking, error) {
	opts := options.Find()
	if sort != nil {
		opts.SetSort(sort)
	}

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	for cursor.Next(ctx) {
		var b models.Booking
		if err := cursor.Decode(&b); err != nil {
			return nil, fmt.Errorf("failed to decode booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}
