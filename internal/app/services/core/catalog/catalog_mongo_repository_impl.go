package catalog

import (
	"context"
	"labcore-service/internal/app/contracts"
	"labcore-service/internal/app/models"
	"labcore-service/internal/pkg/constvars"
	"labcore-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type testCatalogMongoRepository struct {
	Collection *mongo.Collection
}

func NewTestCatalogMongoRepository(db *mongo.Client, dbName string) contracts.TestCatalogRepository {
	return &testCatalogMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionTests),
	}
}

func (r *testCatalogMongoRepository) FindByID(ctx context.Context, testID string) (*models.CatalogTest, error) {
	var test models.CatalogTest
	err := r.Collection.FindOne(ctx, bson.M{"_id": testID}).Decode(&test)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &test, nil
}

type pcrPanelMongoRepository struct {
	Collection *mongo.Collection
}

func NewPCRPanelMongoRepository(db *mongo.Client, dbName string) contracts.PCRPanelRepository {
	return &pcrPanelMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionPCRPanels),
	}
}

func (r *pcrPanelMongoRepository) FindByID(ctx context.Context, panelID string) (*models.PCRPanel, error) {
	var panel models.PCRPanel
	err := r.Collection.FindOne(ctx, bson.M{"_id": panelID}).Decode(&panel)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &panel, nil
}
