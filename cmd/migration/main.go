package main

import (
	"context"
	"labcore-service/internal/app/config"
	"labcore-service/internal/app/contracts"
	"labcore-service/internal/app/drivers/database"
	"labcore-service/internal/app/services/core/orders"
	"labcore-service/internal/app/services/core/results"
	"labcore-service/internal/app/services/shared/sequence"
	"time"

	"github.com/sirupsen/logrus"
)

// Seeds today's identifier counters from the highest identifiers already in
// the store, so a deployment over pre-existing data keeps minting past them
// instead of colliding. Running it on an empty store or more than once is
// harmless: existing counter documents are never overwritten.
func main() {
	driverConfig := config.NewDriverConfig()

	mongoDB := database.NewMongoDB(driverConfig)
	dbName := driverConfig.MongoDB.DbName

	orderRepository := orders.NewOrderMongoRepository(mongoDB, dbName)
	resultRepository := results.NewResultMongoRepository(mongoDB, dbName)
	counterRepository := sequence.NewCounterMongoRepository(mongoDB, dbName)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	now := time.Now()

	seedFromField := func(kind contracts.IdentifierKind, field string) {
		prefix := sequence.DayPrefix(kind, now)
		highest, err := orderRepository.MaxNumberWithPrefix(ctx, field, prefix)
		if err != nil {
			logrus.Fatalf("Failed to read highest %s identifier: %v", kind, err)
		}
		seed := sequence.ParseSuffix(kind, highest)
		if err := counterRepository.SeedIfAbsent(ctx, kind, sequence.DayKey(kind, now), seed); err != nil {
			logrus.Fatalf("Failed to seed %s counter: %v", kind, err)
		}
		logrus.Printf("Seeded %s counter at %d (from %q)", kind, seed, highest)
	}

	seedFromField(contracts.IdentifierKindOrder, "orderNumber")
	seedFromField(contracts.IdentifierKindAccession, "accessionNumber")

	resultPrefix := sequence.DayPrefix(contracts.IdentifierKindResult, now)
	highest, err := resultRepository.MaxNumberWithPrefix(ctx, resultPrefix)
	if err != nil {
		logrus.Fatalf("Failed to read highest result identifier: %v", err)
	}
	seed := sequence.ParseSuffix(contracts.IdentifierKindResult, highest)
	if err := counterRepository.SeedIfAbsent(ctx, contracts.IdentifierKindResult, sequence.DayKey(contracts.IdentifierKindResult, now), seed); err != nil {
		logrus.Fatalf("Failed to seed result counter: %v", err)
	}
	logrus.Printf("Seeded result counter at %d (from %q)", seed, highest)

	if err := mongoDB.Disconnect(ctx); err != nil {
		logrus.Fatalf("Failed to close MongoDB: %v", err)
	}
}
