package contracts

import (
	"context"
	"labcore-service/internal/app/models"
)

// EventPublisher flags notification-worthy lifecycle facts to downstream
// consumers. The engine never delivers notifications itself.
type EventPublisher interface {
	PublishCriticalValues(ctx context.Context, result *models.Result) error
	PublishAmendment(ctx context.Context, result *models.Result, amendment models.Amendment) error
}
