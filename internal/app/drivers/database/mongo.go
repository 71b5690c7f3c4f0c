package database

import (
	"context"
	"fmt"
	"labcore-service/internal/app/config"
	"log"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NewMongoDB connects to the document store holding orders, results,
// specimen accessions, catalogs, and identifier counters. Startup aborts if
// the store cannot be reached: the lifecycle engine has no degraded mode
// without its store.
func NewMongoDB(driverConfig *config.DriverConfig) *mongo.Client {
	uri := fmt.Sprintf(
		"mongodb://%s:%s@%s:%s",
		driverConfig.MongoDB.Username,
		driverConfig.MongoDB.Password,
		driverConfig.MongoDB.Host,
		driverConfig.MongoDB.Port,
	)
	client, err := mongo.Connect(context.TODO(), options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("Failed to connect to mongo database: %s", err.Error())
	}
	if err := client.Ping(context.TODO(), nil); err != nil {
		log.Fatalf("Failed to ping mongo database: %s", err.Error())
	}
	log.Println("Successfully connected to mongo database")
	return client
}
