package results

import (
	"context"
	"labcore-service/internal/app/contracts"
	"labcore-service/internal/app/models"
	"labcore-service/internal/pkg/constvars"
	"labcore-service/internal/pkg/exceptions"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ResultMongoRepository struct {
	Collection *mongo.Collection
}

func NewResultMongoRepository(db *mongo.Client, dbName string) contracts.ResultRepository {
	return &ResultMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionResults),
	}
}

func (repo *ResultMongoRepository) Create(ctx context.Context, result *models.Result) (string, error) {
	result.CreatedAt = time.Now()
	result.UpdatedAt = result.CreatedAt
	inserted, err := repo.Collection.InsertOne(ctx, result)
	if err != nil {
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return inserted.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (repo *ResultMongoRepository) FindByID(ctx context.Context, resultID string) (*models.Result, error) {
	objectID, err := primitive.ObjectIDFromHex(resultID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}
	var result models.Result
	err = repo.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&result)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &result, nil
}

func (repo *ResultMongoRepository) Update(ctx context.Context, result *models.Result) error {
	objectID, err := primitive.ObjectIDFromHex(result.ID)
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}
	result.UpdatedAt = time.Now()

	replacement := *result
	replacement.ID = ""

	_, err = repo.Collection.ReplaceOne(ctx, bson.M{"_id": objectID}, replacement, options.Replace().SetUpsert(false))
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

// MaxNumberWithPrefix returns the highest result number starting with prefix,
// or "" when the day has none. Used only to seed the atomic counters over
// pre-existing data.
func (repo *ResultMongoRepository) MaxNumberWithPrefix(ctx context.Context, prefix string) (string, error) {
	filter := bson.M{"resultNumber": bson.M{"$regex": "^" + prefix}}
	opts := options.FindOne().SetSort(bson.D{{Key: "resultNumber", Value: -1}})

	var result models.Result
	err := repo.Collection.FindOne(ctx, filter, opts).Decode(&result)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return "", nil
		}
		return "", exceptions.ErrMongoDBFindDocument(err)
	}
	return result.ResultNumber, nil
}
