package contracts

import (
	"context"
	"labcore-service/internal/app/models"
	"labcore-service/internal/pkg/dto/requests"
)

type ResultRepository interface {
	Create(ctx context.Context, result *models.Result) (string, error)
	FindByID(ctx context.Context, resultID string) (*models.Result, error)
	Update(ctx context.Context, result *models.Result) error
	MaxNumberWithPrefix(ctx context.Context, prefix string) (string, error)
}

type ResultUsecase interface {
	CreateResult(ctx context.Context, request *requests.CreateResult, actorID string) (*models.Result, error)
	GetResultByID(ctx context.Context, resultID string) (*models.Result, error)
	ReviewResult(ctx context.Context, resultID string, request *requests.ReviewResult, actorID string) (*models.Result, error)
	ApproveResult(ctx context.Context, resultID, actorID string) (*models.Result, error)
	FinalizeResult(ctx context.Context, resultID, actorID string) (*models.Result, error)
	AmendResult(ctx context.Context, resultID string, request *requests.AmendResult, actorID string) (*models.Result, error)
}
