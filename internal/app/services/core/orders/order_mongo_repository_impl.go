package orders

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

type OrderMongoRepository struct {
	Collection *mongo.Collection
}

func NewOrderMongoRepository(db *mongo.Client, dbName string) contracts.OrderRepository {
	return &OrderMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionOrders),
	}
}

func (repo *OrderMongoRepository) Create(ctx context.Context, order *models.Order) (string, error) {
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt
	result, err := repo.Collection.InsertOne(ctx, order)
	if err != nil {
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (repo *OrderMongoRepository) FindByID(ctx context.Context, orderID string) (*models.Order, error) {
	objectID, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}
	var order models.Order
	err = repo.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &order, nil
}

func (repo *OrderMongoRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	var order models.Order
	err := repo.Collection.FindOne(ctx, bson.M{"orderNumber": orderNumber}).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &order, nil
}

func (repo *OrderMongoRepository) Update(ctx context.Context, order *models.Order) error {
	objectID, err := primitive.ObjectIDFromHex(order.ID)
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}
	order.UpdatedAt = time.Now()

	// The id stays on the struct for callers; strip it from the replacement
	// document so the immutable _id is untouched.
	replacement := *order
	replacement.ID = ""

	_, err = repo.Collection.ReplaceOne(ctx, bson.M{"_id": objectID}, replacement, options.Replace().SetUpsert(false))
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

// MaxNumberWithPrefix returns the highest identifier in the given field that
// starts with prefix, or "" when the day has none. Used only to seed the
// atomic counters over pre-existing data.
func (repo *OrderMongoRepository) MaxNumberWithPrefix(ctx context.Context, field, prefix string) (string, error) {
	filter := bson.M{field: bson.M{"$regex": "^" + prefix}}
	opts := options.FindOne().SetSort(bson.D{{Key: field, Value: -1}})

	var order models.Order
	err := repo.Collection.FindOne(ctx, filter, opts).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return "", nil
		}
		return "", exceptions.ErrMongoDBFindDocument(err)
	}
	if field == "accessionNumber" {
		return order.AccessionNumber, nil
	}
	return order.OrderNumber, nil
}
