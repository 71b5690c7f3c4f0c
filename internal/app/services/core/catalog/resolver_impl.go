package catalog

import (
	"context"
	"labcore-service/internal/app/contracts"
	"labcore-service/internal/app/models"
	"labcore-service/internal/pkg/exceptions"
)

type testResolver struct {
	PCRPanelRepository    contracts.PCRPanelRepository
	TestCatalogRepository contracts.TestCatalogRepository
}

func NewTestResolver(
	pcrPanelRepository contracts.PCRPanelRepository,
	testCatalogRepository contracts.TestCatalogRepository,
) contracts.TestResolver {
	return &testResolver{
		PCRPanelRepository:    pcrPanelRepository,
		TestCatalogRepository: testCatalogRepository,
	}
}

// Resolve probes the molecular panel catalog first, then the conventional
// catalog. The winning catalog is tagged on the returned reference so callers
// can persist it and never probe again.
func (r *testResolver) Resolve(ctx context.Context, testID string) (*models.ResolvedTest, error) {
	panel, err := r.PCRPanelRepository.FindByID(ctx, testID)
	if err != nil {
		return nil, err
	}
	if panel != nil {
		return &models.ResolvedTest{
			TestID:      panel.ID,
			Name:        panel.Name,
			Price:       panel.Price,
			CatalogKind: models.CatalogKindPCRPanel,
		}, nil
	}

	test, err := r.TestCatalogRepository.FindByID(ctx, testID)
	if err != nil {
		return nil, err
	}
	if test != nil {
		return &models.ResolvedTest{
			TestID:      test.ID,
			Name:        test.Name,
			Price:       test.Price,
			CatalogKind: models.CatalogKindTest,
		}, nil
	}

	return nil, exceptions.ErrInvalidTestReference(testID)
}
