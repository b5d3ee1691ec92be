package database

import (
	"context"
	"log"
	"time"

	"fleetrent/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoClient is the shared connection used by every repository. The booking
// commit path opens sessions on it, so the deployment must point at a replica
// set (transactions are unavailable on a standalone mongod).
var MongoClient *mongo.Client

// InitDB connects to the configured MongoDB deployment and verifies it with a
// ping. The process cannot serve anything without its store, so failure here
// is fatal.
func InitDB() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(config.AppConfig.DatabaseURL))
	if err != nil {
		log.Fatalf("failed to connect to MongoDB: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		log.Fatalf("failed to ping MongoDB: %v", err)
	}

	MongoClient = client
	log.Printf("Connected to MongoDB (%s)", config.AppConfig.DatabaseName)
}
