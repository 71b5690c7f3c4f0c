package orders

import (
	"context"
	"fmt"
	"labcore-service/internal/app/config"
	"labcore-service/internal/app/contracts"
	"labcore-service/internal/app/models"
	"labcore-service/internal/pkg/dto/requests"
	"labcore-service/internal/pkg/exceptions"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrderRepository struct {
	mu     sync.Mutex
	orders map[string]*models.Order
	nextID int
}

func newFakeOrderRepository() *fakeOrderRepository {
	return &fakeOrderRepository{orders: make(map[string]*models.Order)}
}

func (f *fakeOrderRepository) Create(ctx context.Context, order *models.Order) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	id := fmt.Sprintf("order-%d", f.nextID)
	stored := *order
	stored.ID = id
	f.orders[id] = &stored
	return id, nil
}

func (f *fakeOrderRepository) FindByID(ctx context.Context, orderID string) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.orders[orderID]
	if !ok {
		return nil, nil
	}
	copied := *stored
	copied.LineItems = append([]models.TestLineItem(nil), stored.LineItems...)
	return &copied, nil
}

func (f *fakeOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	return nil, nil
}

func (f *fakeOrderRepository) Update(ctx context.Context, order *models.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := *order
	stored.LineItems = append([]models.TestLineItem(nil), order.LineItems...)
	f.orders[order.ID] = &stored
	return nil
}

func (f *fakeOrderRepository) MaxNumberWithPrefix(ctx context.Context, field, prefix string) (string, error) {
	return "", nil
}

type fakePatientRepository struct {
	known map[string]bool
}

func (f *fakePatientRepository) Exists(ctx context.Context, patientID string) (bool, error) {
	return f.known[patientID], nil
}

type fakeTestResolver struct {
	catalog map[string]*models.ResolvedTest
}

func (f *fakeTestResolver) Resolve(ctx context.Context, testID string) (*models.ResolvedTest, error) {
	resolved, ok := f.catalog[testID]
	if !ok {
		return nil, exceptions.ErrInvalidTestReference(testID)
	}
	return resolved, nil
}

type fakeLockerService struct{}

func (f *fakeLockerService) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	return true, "lock-value", nil
}

func (f *fakeLockerService) Unlock(ctx context.Context, key, lockValue string) error {
	return nil
}

type fakeSequenceService struct {
	mu   sync.Mutex
	next int64
}

func (f *fakeSequenceService) Next(ctx context.Context, kind contracts.IdentifierKind, date time.Time) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.next++
	return fmt.Sprintf("ORD240731%03d", f.next), nil
}

type orderFixture struct {
	usecase contracts.OrderUsecase
	orders  *fakeOrderRepository
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()

	orderRepo := newFakeOrderRepository()
	usecase := NewOrderUsecase(
		orderRepo,
		&fakePatientRepository{known: map[string]bool{"patient-1": true}},
		&fakeTestResolver{catalog: map[string]*models.ResolvedTest{
			"cbc":        {TestID: "cbc", Name: "Complete Blood Count", Price: 15, CatalogKind: models.CatalogKindTest},
			"resp-panel": {TestID: "resp-panel", Name: "Respiratory Panel", Price: 250, CatalogKind: models.CatalogKindPCRPanel},
		}},
		&fakeSequenceService{},
		&fakeLockerService{},
		&config.InternalConfig{App: config.App{
			LockWaitBudgetInMillis:  100,
			LockExpirationInSeconds: 5,
		}},
	)

	return &orderFixture{usecase: usecase, orders: orderRepo}
}

func validCreateOrder() *requests.CreateOrder {
	return &requests.CreateOrder{
		PatientID:    "patient-1",
		Physician:    requests.PhysicianSnapshot{Name: "Dr. Chen", License: "MD-1234", Phone: "555-0101"},
		Priority:     "routine",
		SpecimenType: "blood",
		LineItems: []requests.OrderLineItem{
			{TestID: "cbc"},
			{TestID: "resp-panel", Priority: "stat"},
		},
	}
}

func TestCreateOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves tests and sums the total", func(t *testing.T) {
		fx := newOrderFixture(t)
		order, err := fx.usecase.CreateOrder(ctx, validCreateOrder(), "clerk-1")
		require.NoError(t, err)

		assert.Equal(t, "ORD240731001", order.OrderNumber)
		assert.Equal(t, models.OrderStatusPending, order.Status)
		assert.Equal(t, models.PaymentStatusUnpaid, order.PaymentStatus)
		assert.Equal(t, 265.0, order.TotalAmount)

		require.Len(t, order.LineItems, 2)
		assert.Equal(t, "Complete Blood Count", order.LineItems[0].TestName, "the display name is denormalized from the catalog")
		assert.Equal(t, models.CatalogKindTest, order.LineItems[0].CatalogKind)
		assert.Equal(t, models.CatalogKindPCRPanel, order.LineItems[1].CatalogKind)
	})

	t.Run("physician snapshot is denormalized", func(t *testing.T) {
		fx := newOrderFixture(t)
		order, err := fx.usecase.CreateOrder(ctx, validCreateOrder(), "clerk-1")
		require.NoError(t, err)

		assert.Equal(t, "Dr. Chen", order.Physician.Name)
		assert.Equal(t, "MD-1234", order.Physician.License)
	})

	t.Run("line item priority falls back to the order priority", func(t *testing.T) {
		fx := newOrderFixture(t)
		order, err := fx.usecase.CreateOrder(ctx, validCreateOrder(), "clerk-1")
		require.NoError(t, err)

		assert.Equal(t, models.PriorityRoutine, order.LineItems[0].Priority)
		assert.Equal(t, models.PriorityStat, order.LineItems[1].Priority)
	})

	t.Run("one bad test reference rejects the whole order", func(t *testing.T) {
		fx := newOrderFixture(t)
		request := validCreateOrder()
		request.LineItems = append(request.LineItems, requests.OrderLineItem{TestID: "bogus"})

		_, err := fx.usecase.CreateOrder(ctx, request, "clerk-1")
		require.Error(t, err)
		assert.True(t, exceptions.IsStatus(err, 422))
		assert.Empty(t, fx.orders.orders, "nothing is persisted on a partial failure")
	})

	t.Run("unknown patient is not found", func(t *testing.T) {
		fx := newOrderFixture(t)
		request := validCreateOrder()
		request.PatientID = "stranger"

		_, err := fx.usecase.CreateOrder(ctx, request, "clerk-1")
		require.Error(t, err)
		assert.True(t, exceptions.IsNotFound(err))
	})
}

func TestUpdateLineItemStatus(t *testing.T) {
	ctx := context.Background()

	create := func(t *testing.T, fx *orderFixture) *models.Order {
		t.Helper()
		order, err := fx.usecase.CreateOrder(ctx, validCreateOrder(), "clerk-1")
		require.NoError(t, err)
		return order
	}

	t.Run("walks the machine and rolls the order up", func(t *testing.T) {
		fx := newOrderFixture(t)
		order := create(t, fx)

		for _, status := range []string{"collected", "processing", "completed"} {
			var err error
			order, err = fx.usecase.UpdateLineItemStatus(ctx, order.ID, "cbc", &requests.UpdateLineItemStatus{Status: status}, "tech-1")
			require.NoError(t, err)
		}

		assert.Equal(t, models.LineItemStatusCompleted, order.FindLineItem("cbc").Status)
		assert.Equal(t, models.OrderStatusPartial, order.Status, "one completed of two is partial")
	})

	t.Run("skipping a state is rejected", func(t *testing.T) {
		fx := newOrderFixture(t)
		order := create(t, fx)

		_, err := fx.usecase.UpdateLineItemStatus(ctx, order.ID, "cbc", &requests.UpdateLineItemStatus{Status: "completed"}, "tech-1")
		require.Error(t, err)
		assert.True(t, exceptions.IsInvalidTransition(err))
	})

	t.Run("unknown test is rejected", func(t *testing.T) {
		fx := newOrderFixture(t)
		order := create(t, fx)

		_, err := fx.usecase.UpdateLineItemStatus(ctx, order.ID, "bogus", &requests.UpdateLineItemStatus{Status: "collected"}, "tech-1")
		require.Error(t, err)
		assert.True(t, exceptions.IsStatus(err, 422))
	})

	t.Run("cancelling everything cancels the order", func(t *testing.T) {
		fx := newOrderFixture(t)
		order := create(t, fx)

		for _, testID := range []string{"cbc", "resp-panel"} {
			var err error
			order, err = fx.usecase.UpdateLineItemStatus(ctx, order.ID, testID, &requests.UpdateLineItemStatus{Status: "cancelled"}, "tech-1")
			require.NoError(t, err)
		}

		assert.Equal(t, models.OrderStatusCancelled, order.Status)

		_, err := fx.usecase.UpdateLineItemStatus(ctx, order.ID, "cbc", &requests.UpdateLineItemStatus{Status: "collected"}, "tech-1")
		require.Error(t, err, "a cancelled order accepts no further transitions")
	})
}
