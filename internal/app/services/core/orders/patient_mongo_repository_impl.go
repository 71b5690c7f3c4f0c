package orders

import (
	"context"
	"labcore-service/internal/app/contracts"
	"labcore-service/internal/pkg/constvars"
	"labcore-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type PatientMongoRepository struct {
	Collection *mongo.Collection
}

func NewPatientMongoRepository(db *mongo.Client, dbName string) contracts.PatientRepository {
	return &PatientMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionPatients),
	}
}

func (repo *PatientMongoRepository) Exists(ctx context.Context, patientID string) (bool, error) {
	objectID, err := primitive.ObjectIDFromHex(patientID)
	if err != nil {
		return false, nil
	}
	count, err := repo.Collection.CountDocuments(ctx, bson.M{"_id": objectID})
	if err != nil {
		return false, exceptions.ErrMongoDBFindDocument(err)
	}
	return count > 0, nil
}
