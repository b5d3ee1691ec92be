package bookingRepo

import (
	"context"
	"fmt"

	"fleetrent/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// withTransaction runs fn inside a Mongo session transaction, aborting on error.
func (r *MongoBookingRepo) withTransaction(ctx context.Context, fn func(sc mongo.SessionContext) error) error {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	return mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := fn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	})
}

// CreateConfirmed atomically re-checks the no-overlap invariant and inserts the
// booking. Commits for the same vehicle are serialized by a per-vehicle lock,
// and the vehicle-existence check, overlap re-check and insert run in one
// transaction, so two concurrent overlapping commits can never both land and a
// commit racing a vehicle removal cannot leave an orphaned booking.
func (r *MongoBookingRepo) CreateConfirmed(ctx context.Context, booking *models.Booking) error {
	lock := r.locks.get(booking.VehicleID)
	lock.Lock()
	defer lock.Unlock()

	return r.withTransaction(ctx, func(sc mongo.SessionContext) error {
		exists, err := r.vehicleExists(sc, booking.VehicleID)
		if err != nil {
			return fmt.Errorf("vehicle re-check failed: %w", err)
		}
		if !exists {
			return ErrVehicleGone
		}

		conflict, err := r.firstOverlapping(sc, booking.VehicleID, booking.StartDate, booking.EndDate, "")
		if err != nil {
			return fmt.Errorf("overlap re-check failed: %w", err)
		}
		if conflict != nil {
			return &ConflictError{ConflictingBookingID: conflict.ID}
		}
		if _, err := r.coll.InsertOne(sc, booking); err != nil {
			return fmt.Errorf("insert booking failed: %w", err)
		}
		return nil
	})
}

// UpdateDates atomically re-validates the new range against all other
// confirmed bookings of the same vehicle before applying dates and cost.
// The prior range stays untouched when the re-check fails.
func (r *MongoBookingRepo) UpdateDates(ctx context.Context, bookingID, startDate, endDate string, totalCost models.Money) error {
	existing, err := r.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}

	lock := r.locks.get(existing.VehicleID)
	lock.Lock()
	defer lock.Unlock()

	return r.withTransaction(ctx, func(sc mongo.SessionContext) error {
		conflict, err := r.firstOverlapping(sc, existing.VehicleID, startDate, endDate, bookingID)
		if err != nil {
			return fmt.Errorf("overlap re-check failed: %w", err)
		}
		if conflict != nil {
			return &ConflictError{ConflictingBookingID: conflict.ID}
		}

		update := bson.M{"$set": bson.M{
			"start_date": startDate,
			"end_date":   endDate,
			"total_cost": totalCost,
		}}
		res, err := r.coll.UpdateOne(sc, bson.M{"id": bookingID}, update)
		if err != nil {
			return fmt.Errorf("update booking failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// vehicleExists reports whether the vehicle document is still present.
func (r *MongoBookingRepo) vehicleExists(ctx context.Context, vehicleID string) (bool, error) {
	count, err := r.vehicles.CountDocuments(ctx, bson.M{"id": vehicleID}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// firstOverlapping returns one confirmed booking of the vehicle whose inclusive
// range intersects [startDate, endDate], or nil if the range is free. Dates in
// "YYYY-MM-DD" form compare lexicographically, so the closed-interval test is
// start <= other.end AND other.start <= end.
func (r *MongoBookingRepo) firstOverlapping(ctx context.Context, vehicleID, startDate, endDate, excludeBookingID string) (*models.Booking, error) {
	filter := bson.M{
		"vehicle_id": vehicleID,
		"status":     models.BookingStatusConfirmed,
		"start_date": bson.M{"$lte": endDate},
		"end_date":   bson.M{"$gte": startDate},
	}
	if excludeBookingID != "" {
		filter["id"] = bson.M{"$ne": excludeBookingID}
	}

	var b models.Booking
	if err := r.coll.FindOne(ctx, filter).Decode(&b); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}
