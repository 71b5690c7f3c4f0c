package results

import (
	"context"
	"labcore-service/internal/app/contracts"
	"labcore-service/internal/app/models"
	"labcore-service/internal/pkg/dto/requests"
	"labcore-service/internal/pkg/exceptions"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type resultFixture struct {
	usecase contracts.ResultUsecase
	orders  *fakeOrderRepository
	results *fakeResultRepository
	events  *fakeEventPublisher
	storage *fakeObjectStorage
	orderID string
}

func newResultFixture(t *testing.T) *resultFixture {
	t.Helper()

	orderRepo := newFakeOrderRepository()
	resultRepo := newFakeResultRepository()
	events := &fakeEventPublisher{}
	storage := newFakeObjectStorage()

	usecase := NewResultUsecase(
		resultRepo,
		orderRepo,
		&fakeSequenceService{},
		&fakeLockerService{},
		events,
		storage,
		testConfig(),
		zap.NewNop(),
	)

	orderID, err := orderRepo.Create(context.Background(), &models.Order{
		OrderNumber:     "ORD240731001",
		PatientID:       "patient-1",
		AccessionNumber: "ACC240731001",
		Status:          models.OrderStatusAccessioned,
		LineItems: []models.TestLineItem{
			{TestID: "resp-panel", TestName: "Respiratory Panel", CatalogKind: models.CatalogKindPCRPanel, Status: models.LineItemStatusCollected},
			{TestID: "cbc", TestName: "Complete Blood Count", CatalogKind: models.CatalogKindTest, Status: models.LineItemStatusCollected},
		},
	})
	require.NoError(t, err)

	return &resultFixture{
		usecase: usecase,
		orders:  orderRepo,
		results: resultRepo,
		events:  events,
		storage: storage,
		orderID: orderID,
	}
}

func (fx *resultFixture) createMolecularResult(t *testing.T, targets []requests.TargetDetection) *models.Result {
	t.Helper()
	result, err := fx.usecase.CreateResult(context.Background(), &requests.CreateResult{
		OrderID: fx.orderID,
		TestID:  "resp-panel",
		Targets: targets,
	}, "tech-1")
	require.NoError(t, err)
	return result
}

func (fx *resultFixture) releaseResult(t *testing.T, resultID string) *models.Result {
	t.Helper()
	ctx := context.Background()
	_, err := fx.usecase.ReviewResult(ctx, resultID, &requests.ReviewResult{Notes: "looks right"}, "reviewer-1")
	require.NoError(t, err)
	_, err = fx.usecase.ApproveResult(ctx, resultID, "supervisor-1")
	require.NoError(t, err)
	result, err := fx.usecase.FinalizeResult(ctx, resultID, "supervisor-1")
	require.NoError(t, err)
	return result
}

func TestCreateResult(t *testing.T) {
	t.Run("molecular result is interpreted on entry", func(t *testing.T) {
		fx := newResultFixture(t)

		result := fx.createMolecularResult(t, []requests.TargetDetection{
			{TargetName: "Influenza A", Detected: true},
			{TargetName: "RSV", Detected: false},
		})

		assert.Equal(t, models.ResultStatusPreliminary, result.Status)
		assert.Equal(t, models.ResultKindMolecular, result.Kind)
		assert.Equal(t, models.OverallResultPartiallyPositive, result.OverallResult)
		assert.Equal(t, []string{"Influenza A"}, result.DetectedPathogens)
		assert.Equal(t, "tech-1", result.PerformedBy)
		assert.NotEmpty(t, result.ResultNumber)
	})

	t.Run("line item advances to processing", func(t *testing.T) {
		fx := newResultFixture(t)
		fx.createMolecularResult(t, nil)

		order, err := fx.orders.FindByID(context.Background(), fx.orderID)
		require.NoError(t, err)
		assert.Equal(t, models.LineItemStatusProcessing, order.FindLineItem("resp-panel").Status)
		assert.Equal(t, models.LineItemStatusCollected, order.FindLineItem("cbc").Status, "sibling line items are untouched")
	})

	t.Run("raw payload is archived", func(t *testing.T) {
		fx := newResultFixture(t)
		result := fx.createMolecularResult(t, nil)

		assert.Contains(t, fx.storage.objects, "results/"+result.ResultNumber+".json")
	})

	t.Run("test outside the order is rejected", func(t *testing.T) {
		fx := newResultFixture(t)

		_, err := fx.usecase.CreateResult(context.Background(), &requests.CreateResult{
			OrderID: fx.orderID,
			TestID:  "not-ordered",
		}, "tech-1")
		require.Error(t, err)
		assert.True(t, exceptions.IsStatus(err, 422))
	})

	t.Run("unknown order is not found", func(t *testing.T) {
		fx := newResultFixture(t)

		_, err := fx.usecase.CreateResult(context.Background(), &requests.CreateResult{
			OrderID: "missing",
			TestID:  "resp-panel",
		}, "tech-1")
		require.Error(t, err)
		assert.True(t, exceptions.IsNotFound(err))
	})
}

func TestResultLifecycle(t *testing.T) {
	ctx := context.Background()

	t.Run("full release cycle", func(t *testing.T) {
		fx := newResultFixture(t)
		created := fx.createMolecularResult(t, nil)

		final := fx.releaseResult(t, created.ID)
		assert.Equal(t, models.ResultStatusFinal, final.Status)
		assert.Equal(t, "reviewer-1", final.ReviewedBy)
		assert.Equal(t, "supervisor-1", final.ApprovedBy)
		assert.NotNil(t, final.ReportedAt)
	})

	t.Run("approve requires reviewed", func(t *testing.T) {
		fx := newResultFixture(t)
		created := fx.createMolecularResult(t, nil)

		_, err := fx.usecase.ApproveResult(ctx, created.ID, "supervisor-1")
		require.Error(t, err)
		assert.True(t, exceptions.IsInvalidTransition(err))
	})

	t.Run("finalize requires approved", func(t *testing.T) {
		fx := newResultFixture(t)
		created := fx.createMolecularResult(t, nil)

		_, err := fx.usecase.FinalizeResult(ctx, created.ID, "supervisor-1")
		require.Error(t, err)
		assert.True(t, exceptions.IsInvalidTransition(err))
	})

	t.Run("finalizing completes the line item and rolls the order up", func(t *testing.T) {
		fx := newResultFixture(t)
		created := fx.createMolecularResult(t, nil)
		fx.releaseResult(t, created.ID)

		order, err := fx.orders.FindByID(ctx, fx.orderID)
		require.NoError(t, err)
		assert.Equal(t, models.LineItemStatusCompleted, order.FindLineItem("resp-panel").Status)
		assert.Equal(t, models.OrderStatusPartial, order.Status, "the other test is still outstanding")
	})

	t.Run("finalizing a critical result publishes the flag", func(t *testing.T) {
		fx := newResultFixture(t)
		created := fx.createMolecularResult(t, []requests.TargetDetection{
			{TargetName: "MRSA screen", Detected: true},
		})
		fx.releaseResult(t, created.ID)

		require.Len(t, fx.events.criticalValues, 1)
		assert.Equal(t, created.ResultNumber, fx.events.criticalValues[0].ResultNumber)
	})

	t.Run("no flag published without critical values", func(t *testing.T) {
		fx := newResultFixture(t)
		created := fx.createMolecularResult(t, []requests.TargetDetection{
			{TargetName: "Influenza A", Detected: true},
		})
		fx.releaseResult(t, created.ID)

		assert.Empty(t, fx.events.criticalValues)
	})
}

func TestAmendResult(t *testing.T) {
	ctx := context.Background()

	t.Run("amending a final result leaves a trail", func(t *testing.T) {
		fx := newResultFixture(t)
		created := fx.createMolecularResult(t, nil)
		fx.releaseResult(t, created.ID)

		amended, err := fx.usecase.AmendResult(ctx, created.ID, &requests.AmendResult{
			Reason:        "transcription error",
			ChangedFields: map[string]interface{}{"interpretation": "corrected text"},
		}, "supervisor-1")
		require.NoError(t, err)

		assert.Equal(t, models.ResultStatusAmended, amended.Status)
		assert.Equal(t, "corrected text", amended.Interpretation)
		require.Len(t, amended.Amendments, 1)

		trail := amended.Amendments[0]
		assert.Equal(t, "transcription error", trail.Reason)
		assert.Equal(t, "supervisor-1", trail.Actor)
		assert.Contains(t, trail.PreviousValues, "interpretation")
		assert.Equal(t, "corrected text", trail.NewValues["interpretation"])

		require.Len(t, fx.events.amendments, 1, "amendment is flagged to downstream consumers")
	})

	t.Run("preliminary results are rewritten silently", func(t *testing.T) {
		fx := newResultFixture(t)
		created := fx.createMolecularResult(t, nil)

		amended, err := fx.usecase.AmendResult(ctx, created.ID, &requests.AmendResult{
			Reason:        "typo",
			ChangedFields: map[string]interface{}{"interpretation": "fixed"},
		}, "tech-1")
		require.NoError(t, err)

		assert.Equal(t, models.ResultStatusPreliminary, amended.Status)
		assert.Equal(t, "fixed", amended.Interpretation)
		assert.Empty(t, amended.Amendments, "no trail before release")
		assert.Empty(t, fx.events.amendments)
	})

	t.Run("an amended result can be amended again", func(t *testing.T) {
		fx := newResultFixture(t)
		created := fx.createMolecularResult(t, nil)
		fx.releaseResult(t, created.ID)

		_, err := fx.usecase.AmendResult(ctx, created.ID, &requests.AmendResult{
			Reason:        "transcription error",
			ChangedFields: map[string]interface{}{"interpretation": "first correction"},
		}, "supervisor-1")
		require.NoError(t, err)

		amended, err := fx.usecase.AmendResult(ctx, created.ID, &requests.AmendResult{
			Reason:        "further correction",
			ChangedFields: map[string]interface{}{"interpretation": "second correction"},
		}, "supervisor-2")
		require.NoError(t, err)

		assert.Equal(t, models.ResultStatusAmended, amended.Status)
		require.Len(t, amended.Amendments, 2, "each amendment appends its own entry")
		assert.Equal(t, "first correction", amended.Amendments[1].PreviousValues["interpretation"])
		assert.Equal(t, "second correction", amended.Interpretation)
		assert.Len(t, fx.events.amendments, 2)
	})

	t.Run("lifecycle and audit fields are off limits", func(t *testing.T) {
		fx := newResultFixture(t)
		created := fx.createMolecularResult(t, nil)

		_, err := fx.usecase.AmendResult(ctx, created.ID, &requests.AmendResult{
			Reason:        "shortcut",
			ChangedFields: map[string]interface{}{"status": "final"},
		}, "tech-1")
		require.Error(t, err)
		assert.True(t, exceptions.IsStatus(err, 400))

		reloaded, err := fx.usecase.GetResultByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, models.ResultStatusPreliminary, reloaded.Status, "the release cycle cannot be skipped by amendment")
		assert.Nil(t, reloaded.ReportedAt)
	})

	t.Run("the amendment trail itself cannot be rewritten", func(t *testing.T) {
		fx := newResultFixture(t)
		created := fx.createMolecularResult(t, nil)
		fx.releaseResult(t, created.ID)

		_, err := fx.usecase.AmendResult(ctx, created.ID, &requests.AmendResult{
			Reason:        "transcription error",
			ChangedFields: map[string]interface{}{"interpretation": "corrected"},
		}, "supervisor-1")
		require.NoError(t, err)

		_, err = fx.usecase.AmendResult(ctx, created.ID, &requests.AmendResult{
			Reason:        "cover tracks",
			ChangedFields: map[string]interface{}{"amendments": []interface{}{}},
		}, "supervisor-1")
		require.Error(t, err)
		assert.True(t, exceptions.IsStatus(err, 400))

		reloaded, err := fx.usecase.GetResultByID(ctx, created.ID)
		require.NoError(t, err)
		require.Len(t, reloaded.Amendments, 1, "the trail survives intact")
	})

	t.Run("the business key and attribution are off limits", func(t *testing.T) {
		fx := newResultFixture(t)
		created := fx.createMolecularResult(t, nil)
		fx.releaseResult(t, created.ID)

		for _, field := range []string{"resultNumber", "performedBy", "orderId", "reportedAt"} {
			_, err := fx.usecase.AmendResult(ctx, created.ID, &requests.AmendResult{
				Reason:        "rewrite",
				ChangedFields: map[string]interface{}{field: "something-else"},
			}, "supervisor-1")
			require.Error(t, err, "field %s should be rejected", field)
			assert.True(t, exceptions.IsStatus(err, 400))
		}
	})

	t.Run("reviewed results cannot be amended", func(t *testing.T) {
		fx := newResultFixture(t)
		created := fx.createMolecularResult(t, nil)
		_, err := fx.usecase.ReviewResult(ctx, created.ID, &requests.ReviewResult{}, "reviewer-1")
		require.NoError(t, err)

		_, err = fx.usecase.AmendResult(ctx, created.ID, &requests.AmendResult{
			Reason:        "too late",
			ChangedFields: map[string]interface{}{"interpretation": "x"},
		}, "reviewer-1")
		require.Error(t, err)
		assert.True(t, exceptions.IsInvalidTransition(err))
	})
}
