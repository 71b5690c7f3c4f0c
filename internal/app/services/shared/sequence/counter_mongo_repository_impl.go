package sequence

import (
	"context"
	"fmt"
	"labcore-service/internal/app/contracts"
	"labcore-service/internal/app/models"
	"labcore-service/internal/pkg/constvars"
	"labcore-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type counterMongoRepository struct {
	Collection *mongo.Collection
}

func NewCounterMongoRepository(db *mongo.Client, dbName string) contracts.CounterRepository {
	return &counterMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionCounters),
	}
}

func counterID(kind contracts.IdentifierKind, dayKey string) string {
	return fmt.Sprintf("%s:%s", kind, dayKey)
}

// IncrementAndGet is the single serialization point for identifier minting.
// The upserted $inc is atomic on the server, so two concurrent callers on the
// same (kind, dayKey) can never observe the same sequence value.
func (repo *counterMongoRepository) IncrementAndGet(ctx context.Context, kind contracts.IdentifierKind, dayKey string) (int64, error) {
	filter := bson.M{"_id": counterID(kind, dayKey)}
	update := bson.M{
		"$inc":         bson.M{"sequence": int64(1)},
		"$setOnInsert": bson.M{"kind": string(kind), "dayKey": dayKey},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter models.Counter
	err := repo.Collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&counter)
	if err != nil {
		return 0, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return counter.Sequence, nil
}

// SeedIfAbsent installs a starting sequence for a (kind, dayKey) pair that
// predates the counter collection. A concurrent insert of the same counter
// wins harmlessly; the duplicate-key failure is swallowed.
func (repo *counterMongoRepository) SeedIfAbsent(ctx context.Context, kind contracts.IdentifierKind, dayKey string, seed int64) error {
	counter := models.Counter{
		ID:       counterID(kind, dayKey),
		Kind:     string(kind),
		DayKey:   dayKey,
		Sequence: seed,
	}
	_, err := repo.Collection.InsertOne(ctx, counter)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	return nil
}
