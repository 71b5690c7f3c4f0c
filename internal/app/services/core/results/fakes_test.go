package results

import (
	"context"
	"fmt"
	"labcore-service/internal/app/config"
	"labcore-service/internal/app/contracts"
	"labcore-service/internal/app/models"
	"sync"
	"time"
)

type fakeResultRepository struct {
	mu      sync.Mutex
	results map[string]*models.Result
	nextID  int
}

func newFakeResultRepository() *fakeResultRepository {
	return &fakeResultRepository{results: make(map[string]*models.Result)}
}

func (f *fakeResultRepository) Create(ctx context.Context, result *models.Result) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	id := fmt.Sprintf("result-%d", f.nextID)
	stored := *result
	stored.ID = id
	f.results[id] = &stored
	return id, nil
}

func (f *fakeResultRepository) FindByID(ctx context.Context, resultID string) (*models.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.results[resultID]
	if !ok {
		return nil, nil
	}
	copied := *stored
	return &copied, nil
}

func (f *fakeResultRepository) Update(ctx context.Context, result *models.Result) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := *result
	f.results[result.ID] = &stored
	return nil
}

func (f *fakeResultRepository) MaxNumberWithPrefix(ctx context.Context, prefix string) (string, error) {
	return "", nil
}

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
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, stored := range f.orders {
		if stored.OrderNumber == orderNumber {
			copied := *stored
			return &copied, nil
		}
	}
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
	return fmt.Sprintf("RES20240731%04d", f.next), nil
}

type fakeEventPublisher struct {
	mu             sync.Mutex
	criticalValues []*models.Result
	amendments     []models.Amendment
}

func (f *fakeEventPublisher) PublishCriticalValues(ctx context.Context, result *models.Result) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.criticalValues = append(f.criticalValues, result)
	return nil
}

func (f *fakeEventPublisher) PublishAmendment(ctx context.Context, result *models.Result, amendment models.Amendment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.amendments = append(f.amendments, amendment)
	return nil
}

type fakeObjectStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newFakeObjectStorage() *fakeObjectStorage {
	return &fakeObjectStorage{objects: make(map[string][]byte)}
}

func (f *fakeObjectStorage) PutJSON(ctx context.Context, objectKey string, data []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[objectKey] = data
	return objectKey, nil
}

func testConfig() *config.InternalConfig {
	return &config.InternalConfig{
		App: config.App{
			RequestTimeoutInSeconds: 10,
			LockWaitBudgetInMillis:  100,
			LockExpirationInSeconds: 5,
		},
	}
}
