package contracts

import (
	"context"
	"labcore-service/internal/app/models"
	"labcore-service/internal/pkg/dto/requests"
)

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) (string, error)
	FindByID(ctx context.Context, orderID string) (*models.Order, error)
	FindByOrderNumber(ctx context.Context, orderNumber string) (*models.Order, error)
	Update(ctx context.Context, order *models.Order) error
	MaxNumberWithPrefix(ctx context.Context, field, prefix string) (string, error)
}

type PatientRepository interface {
	Exists(ctx context.Context, patientID string) (bool, error)
}

type OrderUsecase interface {
	CreateOrder(ctx context.Context, request *requests.CreateOrder, actorID string) (*models.Order, error)
	GetOrderByID(ctx context.Context, orderID string) (*models.Order, error)
	UpdateLineItemStatus(ctx context.Context, orderID, testID string, request *requests.UpdateLineItemStatus, actorID string) (*models.Order, error)
}
