package contracts

import (
	"context"
	"labcore-service/internal/app/models"
)

type TestCatalogRepository interface {
	FindByID(ctx context.Context, testID string) (*models.CatalogTest, error)
}

type PCRPanelRepository interface {
	FindByID(ctx context.Context, panelID string) (*models.PCRPanel, error)
}

// TestResolver resolves a test id against both catalogs, returning the
// canonical price and display metadata tagged with the owning catalog.
type TestResolver interface {
	Resolve(ctx context.Context, testID string) (*models.ResolvedTest, error)
}
