package contracts

import (
	"context"
	"labcore-service/internal/app/models"
	"labcore-service/internal/pkg/dto/requests"
)

type SpecimenRepository interface {
	Create(ctx context.Context, specimen *models.SpecimenAccession) (string, error)
	FindByOrderID(ctx context.Context, orderID string) (*models.SpecimenAccession, error)
	Update(ctx context.Context, specimen *models.SpecimenAccession) error
}

type SpecimenUsecase interface {
	AccessionSpecimen(ctx context.Context, orderID string, request *requests.AccessionSpecimen, actorID string) (*models.Order, error)
	RejectSpecimen(ctx context.Context, orderID string, request *requests.RejectSpecimen, actorID string) (*models.Order, error)
	HoldSpecimen(ctx context.Context, orderID string, request *requests.HoldSpecimen, actorID string) (*models.Order, error)
	AppendCustodyEntry(ctx context.Context, orderID string, request *requests.CustodyEntry, actorID string) (*models.SpecimenAccession, error)
	CreateAliquot(ctx context.Context, orderID string, request *requests.CreateAliquot, actorID string) (*models.SpecimenAccession, error)
	UpdateStorage(ctx context.Context, orderID string, request *requests.UpdateStorage, actorID string) (*models.SpecimenAccession, error)
}
