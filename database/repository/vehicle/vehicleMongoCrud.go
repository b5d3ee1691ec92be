package vehicleRepo

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"fleetrent/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Create inserts a new vehicle document.
func (r *MongoVehicleRepo) Create(ctx context.Context, vehicle *models.Vehicle) error {
	now := time.Now()
	vehicle.CreatedAt = now
	vehicle.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, vehicle)
	if err != nil {
		return fmt.Errorf("failed to create vehicle: %w", err)
	}
	return nil
}

// Update modifies an existing vehicle document.
func (r *MongoVehicleRepo) Update(ctx context.Context, vehicle *models.Vehicle) error {
	vehicle.UpdatedAt = time.Now()
	filter := bson.M{"id": vehicle.ID}
	update := bson.M{"$set": vehicle}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update vehicle with id %s: %w", vehicle.ID, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a vehicle document by its ID.
func (r *MongoVehicleRepo) Delete(ctx context.Context, id string) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete vehicle with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID retrieves a vehicle by its unique ID.
func (r *MongoVehicleRepo) GetByID(ctx context.Context, id string) (*models.Vehicle, error) {
	var v models.Vehicle
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&v); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch vehicle with id %s: %w", id, err)
	}
	return &v, nil
}

// GetAll retrieves all vehicles, newest first.
func (r *MongoVehicleRepo) GetAll(ctx context.Context) ([]models.Vehicle, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return r.find(ctx, bson.M{}, opts)
}

// Search matches vehicles by model, plate number or type, case-insensitive.
func (r *MongoVehicleRepo) Search(ctx context.Context, query string) ([]models.Vehicle, error) {
	pattern := primitiveRegex(query)
	filter := bson.M{"$or": []bson.M{
		{"model": pattern},
		{"plate_number": pattern},
		{"type": pattern},
	}}
	return r.find(ctx, filter, options.Find())
}

// primitiveRegex builds a case-insensitive substring filter. The query is a
// literal, so regex metacharacters must be escaped before it reaches the server.
func primitiveRegex(query string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(query), "$options": "i"}
}

func (r *MongoVehicleRepo) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Vehicle, error) {
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve vehicles: %w", err)
	}
	defer cursor.Close(ctx)

	var vehicles []models.Vehicle
	for cursor.Next(ctx) {
		var v models.Vehicle
		if err := cursor.Decode(&v); err != nil {
			return nil, fmt.Errorf("failed to decode vehicle: %w", err)
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, nil
}
