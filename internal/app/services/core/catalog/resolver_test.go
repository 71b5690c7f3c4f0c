package catalog

import (
	"context"
	"labcore-service/internal/app/models"
	"labcore-service/internal/pkg/exceptions"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePCRPanelRepository struct {
	panels map[string]*models.PCRPanel
}

func (f *fakePCRPanelRepository) FindByID(ctx context.Context, panelID string) (*models.PCRPanel, error) {
	return f.panels[panelID], nil
}

type fakeTestCatalogRepository struct {
	tests map[string]*models.CatalogTest
}

func (f *fakeTestCatalogRepository) FindByID(ctx context.Context, testID string) (*models.CatalogTest, error) {
	return f.tests[testID], nil
}

func TestResolve(t *testing.T) {
	ctx := context.Background()
	resolver := NewTestResolver(
		&fakePCRPanelRepository{panels: map[string]*models.PCRPanel{
			"resp-panel": {ID: "resp-panel", Name: "Respiratory Panel", Price: 250},
			"both":       {ID: "both", Name: "Panel Version", Price: 300},
		}},
		&fakeTestCatalogRepository{tests: map[string]*models.CatalogTest{
			"cbc":  {ID: "cbc", Name: "Complete Blood Count", Price: 15},
			"both": {ID: "both", Name: "Conventional Version", Price: 20},
		}},
	)

	t.Run("pcr panel resolves as molecular", func(t *testing.T) {
		resolved, err := resolver.Resolve(ctx, "resp-panel")
		require.NoError(t, err)
		assert.Equal(t, "Respiratory Panel", resolved.Name)
		assert.Equal(t, 250.0, resolved.Price)
		assert.Equal(t, models.CatalogKindPCRPanel, resolved.CatalogKind)
	})

	t.Run("conventional test resolves as test", func(t *testing.T) {
		resolved, err := resolver.Resolve(ctx, "cbc")
		require.NoError(t, err)
		assert.Equal(t, "Complete Blood Count", resolved.Name)
		assert.Equal(t, models.CatalogKindTest, resolved.CatalogKind)
	})

	t.Run("panel catalog wins when both match", func(t *testing.T) {
		resolved, err := resolver.Resolve(ctx, "both")
		require.NoError(t, err)
		assert.Equal(t, models.CatalogKindPCRPanel, resolved.CatalogKind)
		assert.Equal(t, "Panel Version", resolved.Name)
	})

	t.Run("miss in both catalogs is an invalid reference", func(t *testing.T) {
		_, err := resolver.Resolve(ctx, "unknown")
		require.Error(t, err)
		assert.True(t, exceptions.IsStatus(err, 422))
	})
}
