package specimens

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

type SpecimenMongoRepository struct {
	Collection *mongo.Collection
}

func NewSpecimenMongoRepository(db *mongo.Client, dbName string) contracts.SpecimenRepository {
	return &SpecimenMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionSpecimenAccessions),
	}
}

func (repo *SpecimenMongoRepository) Create(ctx context.Context, specimen *models.SpecimenAccession) (string, error) {
	specimen.CreatedAt = time.Now()
	specimen.UpdatedAt = specimen.CreatedAt
	result, err := repo.Collection.InsertOne(ctx, specimen)
	if err != nil {
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (repo *SpecimenMongoRepository) FindByOrderID(ctx context.Context, orderID string) (*models.SpecimenAccession, error) {
	var specimen models.SpecimenAccession
	err := repo.Collection.FindOne(ctx, bson.M{"orderId": orderID}).Decode(&specimen)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &specimen, nil
}

func (repo *SpecimenMongoRepository) Update(ctx context.Context, specimen *models.SpecimenAccession) error {
	objectID, err := primitive.ObjectIDFromHex(specimen.ID)
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}
	specimen.UpdatedAt = time.Now()

	replacement := *specimen
	replacement.ID = ""

	_, err = repo.Collection.ReplaceOne(ctx, bson.M{"_id": objectID}, replacement, options.Replace().SetUpsert(false))
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}
