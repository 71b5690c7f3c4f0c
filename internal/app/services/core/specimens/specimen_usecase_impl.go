package specimens

import (
	"context"
	"labcore-service/internal/app/config"
	"labcore-service/internal/app/contracts"
	"labcore-service/internal/app/models"
	"labcore-service/internal/app/services/shared/locker"
	"labcore-service/internal/pkg/dto/requests"
	"labcore-service/internal/pkg/exceptions"
	"time"

	"github.com/google/uuid"
)

const (
	custodyActionAccessioned   = "accessioned"
	custodyActionRejected      = "rejected"
	custodyActionHold          = "hold"
	custodyActionAliquot       = "aliquot_created"
	custodyActionStorageChange = "storage_changed"
)

type specimenUsecase struct {
	OrderRepository    contracts.OrderRepository
	SpecimenRepository contracts.SpecimenRepository
	SequenceService    contracts.SequenceService
	LockerService      contracts.LockerService
	InternalConfig     *config.InternalConfig
}

func NewSpecimenUsecase(
	orderRepository contracts.OrderRepository,
	specimenRepository contracts.SpecimenRepository,
	sequenceService contracts.SequenceService,
	lockerService contracts.LockerService,
	internalConfig *config.InternalConfig,
) contracts.SpecimenUsecase {
	return &specimenUsecase{
		OrderRepository:    orderRepository,
		SpecimenRepository: specimenRepository,
		SequenceService:    sequenceService,
		LockerService:      lockerService,
		InternalConfig:     internalConfig,
	}
}

// AccessionSpecimen registers a received specimen: mints an accession number,
// stamps the accessioning actor and time, rolls every still-pending line item
// to collected with the same actor and time, and opens the specimen's chain
// of custody. Accessioning an order that already carries an accession number
// fails; the number never changes once set.
func (uc *specimenUsecase) AccessionSpecimen(ctx context.Context, orderID string, request *requests.AccessionSpecimen, actorID string) (*models.Order, error) {
	order, unlock, err := uc.lockAndLoadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if order.AccessionNumber != "" {
		return nil, exceptions.ErrAlreadyAccessioned(orderID, order.AccessionNumber)
	}
	if order.IsTerminal() {
		return nil, exceptions.ErrOrderTerminal(orderID, string(order.Status))
	}

	now := time.Now()
	accessionNumber, err := uc.SequenceService.Next(ctx, contracts.IdentifierKindAccession, now)
	if err != nil {
		return nil, err
	}

	condition := request.Condition
	if condition == "" {
		condition = models.DefaultSpecimenCondition
	}

	order.AccessionNumber = accessionNumber
	order.AccessionedAt = &now
	order.AccessionedBy = actorID
	order.ReceivedAt = &now
	order.Specimen.Condition = condition

	// Accessioning acknowledges collection for every test still pending.
	for i := range order.LineItems {
		if order.LineItems[i].Status == models.LineItemStatusPending {
			order.LineItems[i].ApplyTransition(models.LineItemStatusCollected, actorID, now)
		}
	}
	order.RecomputeStatus(now)

	notes := request.Notes
	if !models.IsConditionAcceptable(condition) {
		if notes != "" {
			notes += "; "
		}
		notes += "condition " + condition + " is outside the acceptable set"
	}

	specimen := &models.SpecimenAccession{
		OrderID:         order.ID,
		AccessionNumber: accessionNumber,
		AccessionedBy:   actorID,
		AccessionedAt:   now,
		Condition:       condition,
		Status:          models.SpecimenStatusAccessioned,
		ChainOfCustody: []models.CustodyEntry{{
			ID:        uuid.NewString(),
			Action:    custodyActionAccessioned,
			Actor:     actorID,
			Timestamp: now,
			Location:  request.Location,
			Notes:     notes,
		}},
		Aliquots: []models.Aliquot{},
	}

	if _, err := uc.SpecimenRepository.Create(ctx, specimen); err != nil {
		return nil, err
	}
	if err := uc.OrderRepository.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// RejectSpecimen is terminal: the order leaves the rollup machine for good.
func (uc *specimenUsecase) RejectSpecimen(ctx context.Context, orderID string, request *requests.RejectSpecimen, actorID string) (*models.Order, error) {
	order, unlock, err := uc.lockAndLoadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if order.IsTerminal() {
		return nil, exceptions.ErrOrderTerminal(orderID, string(order.Status))
	}

	now := time.Now()
	order.Rejection = &models.RejectionRecord{
		Reason:     models.RejectionReason(request.Reason),
		Comments:   request.Comments,
		RejectedBy: actorID,
		RejectedAt: now,
	}
	order.RecomputeStatus(now)

	if err := uc.appendCustodyIfAccessioned(ctx, order.ID, models.CustodyEntry{
		ID:        uuid.NewString(),
		Action:    custodyActionRejected,
		Actor:     actorID,
		Timestamp: now,
		Notes:     request.Reason,
	}, models.SpecimenStatusRejected, models.RejectionReason(request.Reason)); err != nil {
		return nil, err
	}

	if err := uc.OrderRepository.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// HoldSpecimen records that the specimen needs clarification before
// processing. Line-item statuses are untouched.
func (uc *specimenUsecase) HoldSpecimen(ctx context.Context, orderID string, request *requests.HoldSpecimen, actorID string) (*models.Order, error) {
	order, unlock, err := uc.lockAndLoadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if order.IsTerminal() {
		return nil, exceptions.ErrOrderTerminal(orderID, string(order.Status))
	}

	now := time.Now()
	order.Hold = &models.HoldRecord{
		Reason: request.Reason,
		Notes:  request.Notes,
		HeldBy: actorID,
		HeldAt: now,
	}

	if err := uc.appendCustodyIfAccessioned(ctx, order.ID, models.CustodyEntry{
		ID:        uuid.NewString(),
		Action:    custodyActionHold,
		Actor:     actorID,
		Timestamp: now,
		Notes:     request.Reason,
	}, models.SpecimenStatusHold, ""); err != nil {
		return nil, err
	}

	if err := uc.OrderRepository.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (uc *specimenUsecase) AppendCustodyEntry(ctx context.Context, orderID string, request *requests.CustodyEntry, actorID string) (*models.SpecimenAccession, error) {
	specimen, err := uc.loadSpecimen(ctx, orderID)
	if err != nil {
		return nil, err
	}

	specimen.AppendCustody(models.CustodyEntry{
		ID:        uuid.NewString(),
		Action:    request.Action,
		Actor:     actorID,
		Timestamp: time.Now(),
		Location:  request.Location,
		Notes:     request.Notes,
	})

	if err := uc.SpecimenRepository.Update(ctx, specimen); err != nil {
		return nil, err
	}
	return specimen, nil
}

// CreateAliquot derives a child specimen unit. Ids are never reused because
// aliquots are never removed.
func (uc *specimenUsecase) CreateAliquot(ctx context.Context, orderID string, request *requests.CreateAliquot, actorID string) (*models.SpecimenAccession, error) {
	specimen, err := uc.loadSpecimen(ctx, orderID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	aliquot := models.Aliquot{
		ID:        specimen.NextAliquotID(),
		CreatedBy: actorID,
		CreatedAt: now,
		VolumeML:  request.VolumeML,
		Purpose:   request.Purpose,
	}
	specimen.Aliquots = append(specimen.Aliquots, aliquot)
	specimen.AppendCustody(models.CustodyEntry{
		ID:        uuid.NewString(),
		Action:    custodyActionAliquot,
		Actor:     actorID,
		Timestamp: now,
		Notes:     aliquot.ID,
	})

	if err := uc.SpecimenRepository.Update(ctx, specimen); err != nil {
		return nil, err
	}
	return specimen, nil
}

func (uc *specimenUsecase) UpdateStorage(ctx context.Context, orderID string, request *requests.UpdateStorage, actorID string) (*models.SpecimenAccession, error) {
	specimen, err := uc.loadSpecimen(ctx, orderID)
	if err != nil {
		return nil, err
	}

	specimen.StorageLocation = request.Location
	specimen.StorageTemperature = request.Temperature
	specimen.AppendCustody(models.CustodyEntry{
		ID:        uuid.NewString(),
		Action:    custodyActionStorageChange,
		Actor:     actorID,
		Timestamp: time.Now(),
		Location:  request.Location,
		Notes:     request.Temperature,
	})

	if err := uc.SpecimenRepository.Update(ctx, specimen); err != nil {
		return nil, err
	}
	return specimen, nil
}

func (uc *specimenUsecase) lockAndLoadOrder(ctx context.Context, orderID string) (*models.Order, func(), error) {
	lockKey := locker.OrderKey(orderID)
	lockValue, err := locker.Acquire(ctx, uc.LockerService, lockKey,
		time.Duration(uc.InternalConfig.App.LockExpirationInSeconds)*time.Second,
		time.Duration(uc.InternalConfig.App.LockWaitBudgetInMillis)*time.Millisecond,
	)
	if err != nil {
		return nil, nil, err
	}
	unlock := func() { uc.LockerService.Unlock(ctx, lockKey, lockValue) }

	order, err := uc.OrderRepository.FindByID(ctx, orderID)
	if err != nil {
		unlock()
		return nil, nil, err
	}
	if order == nil {
		unlock()
		return nil, nil, exceptions.ErrEntityNotFound("order", orderID)
	}
	return order, unlock, nil
}

func (uc *specimenUsecase) loadSpecimen(ctx context.Context, orderID string) (*models.SpecimenAccession, error) {
	specimen, err := uc.SpecimenRepository.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if specimen == nil {
		return nil, exceptions.ErrEntityNotFound("specimen", orderID)
	}
	return specimen, nil
}

// appendCustodyIfAccessioned mirrors an order-level transition into the
// specimen's own record when one exists. Reject and hold can happen before
// accession, in which case there is no record yet and nothing to append.
func (uc *specimenUsecase) appendCustodyIfAccessioned(ctx context.Context, orderID string, entry models.CustodyEntry, status models.SpecimenStatus, reason models.RejectionReason) error {
	specimen, err := uc.SpecimenRepository.FindByOrderID(ctx, orderID)
	if err != nil {
		return err
	}
	if specimen == nil {
		return nil
	}

	specimen.Status = status
	if reason != "" {
		specimen.RejectionReason = reason
	}
	specimen.AppendCustody(entry)
	return uc.SpecimenRepository.Update(ctx, specimen)
}
