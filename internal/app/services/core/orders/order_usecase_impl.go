package orders

import (
	"context"
	"labcore-service/internal/app/config"
	"labcore-service/internal/app/contracts"
	"labcore-service/internal/app/models"
	"labcore-service/internal/app/services/shared/locker"
	"labcore-service/internal/pkg/dto/requests"
	"labcore-service/internal/pkg/exceptions"
	"time"
)

type orderUsecase struct {
	OrderRepository   contracts.OrderRepository
	PatientRepository contracts.PatientRepository
	TestResolver      contracts.TestResolver
	SequenceService   contracts.SequenceService
	LockerService     contracts.LockerService
	InternalConfig    *config.InternalConfig
}

func NewOrderUsecase(
	orderRepository contracts.OrderRepository,
	patientRepository contracts.PatientRepository,
	testResolver contracts.TestResolver,
	sequenceService contracts.SequenceService,
	lockerService contracts.LockerService,
	internalConfig *config.InternalConfig,
) contracts.OrderUsecase {
	return &orderUsecase{
		OrderRepository:   orderRepository,
		PatientRepository: patientRepository,
		TestResolver:      testResolver,
		SequenceService:   sequenceService,
		LockerService:     lockerService,
		InternalConfig:    internalConfig,
	}
}

// CreateOrder validates every submitted test reference up front
// (all-or-nothing), mints an order number, and persists the aggregate with
// the resolved prices summed into the total.
func (uc *orderUsecase) CreateOrder(ctx context.Context, request *requests.CreateOrder, actorID string) (*models.Order, error) {
	exists, err := uc.PatientRepository.Exists(ctx, request.PatientID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, exceptions.ErrEntityNotFound("patient", request.PatientID)
	}

	now := time.Now()

	lineItems := make([]models.TestLineItem, 0, len(request.LineItems))
	total := 0.0
	for _, item := range request.LineItems {
		resolved, err := uc.TestResolver.Resolve(ctx, item.TestID)
		if err != nil {
			return nil, err
		}

		priority := models.Priority(item.Priority)
		if priority == "" {
			priority = models.Priority(request.Priority)
		}

		lineItems = append(lineItems, models.TestLineItem{
			TestID:      resolved.TestID,
			TestName:    resolved.Name,
			CatalogKind: resolved.CatalogKind,
			Price:       resolved.Price,
			Status:      models.LineItemStatusPending,
			Priority:    priority,
			Notes:       item.Notes,
		})
		total += resolved.Price
	}

	orderNumber, err := uc.SequenceService.Next(ctx, contracts.IdentifierKindOrder, now)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		OrderNumber:     orderNumber,
		PatientID:       request.PatientID,
		MedicalOfficeID: request.MedicalOfficeID,
		Physician: models.PhysicianSnapshot{
			Name:    request.Physician.Name,
			License: request.Physician.License,
			Phone:   request.Physician.Phone,
		},
		Priority:     models.Priority(request.Priority),
		ClinicalInfo: request.ClinicalInfo,
		Specimen: models.SpecimenInfo{
			Type:        request.SpecimenType,
			Barcode:     request.SpecimenBarcode,
			CollectedAt: request.CollectedAt,
		},
		Status:        models.OrderStatusPending,
		PaymentStatus: models.PaymentStatusUnpaid,
		TotalAmount:   total,
		LineItems:     lineItems,
		ScheduledAt:   request.ScheduledAt,
	}

	orderID, err := uc.OrderRepository.Create(ctx, order)
	if err != nil {
		return nil, err
	}
	order.ID = orderID
	return order, nil
}

func (uc *orderUsecase) GetOrderByID(ctx context.Context, orderID string) (*models.Order, error) {
	order, err := uc.OrderRepository.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, exceptions.ErrEntityNotFound("order", orderID)
	}
	return order, nil
}

// UpdateLineItemStatus applies one line-item transition under the per-order
// lock: the order is re-read after lock acquisition so the transition and the
// status rollup always work on the latest persisted state.
func (uc *orderUsecase) UpdateLineItemStatus(ctx context.Context, orderID, testID string, request *requests.UpdateLineItemStatus, actorID string) (*models.Order, error) {
	lockKey := locker.OrderKey(orderID)
	lockValue, err := locker.Acquire(ctx, uc.LockerService, lockKey,
		time.Duration(uc.InternalConfig.App.LockExpirationInSeconds)*time.Second,
		time.Duration(uc.InternalConfig.App.LockWaitBudgetInMillis)*time.Millisecond,
	)
	if err != nil {
		return nil, err
	}
	defer uc.LockerService.Unlock(ctx, lockKey, lockValue)

	order, err := uc.OrderRepository.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, exceptions.ErrEntityNotFound("order", orderID)
	}
	if order.Status == models.OrderStatusRejected {
		return nil, exceptions.ErrOrderTerminal(orderID, string(order.Status))
	}

	lineItem := order.FindLineItem(testID)
	if lineItem == nil {
		return nil, exceptions.ErrTestNotInOrder(orderID, testID)
	}

	target := models.LineItemStatus(request.Status)
	if !lineItem.CanTransitionTo(target) {
		return nil, exceptions.ErrInvalidLineItemTransition(testID, string(lineItem.Status), string(target))
	}

	now := time.Now()
	lineItem.ApplyTransition(target, actorID, now)
	if request.Notes != "" {
		lineItem.Notes = request.Notes
	}
	order.RecomputeStatus(now)

	if err := uc.OrderRepository.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}
