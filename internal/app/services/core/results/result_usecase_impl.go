package results

import (
	"context"
	"fmt"
	"labcore-service/internal/app/config"
	"labcore-service/internal/app/contracts"
	"labcore-service/internal/app/models"
	"labcore-service/internal/app/services/shared/locker"
	"labcore-service/internal/pkg/constvars"
	"labcore-service/internal/pkg/dto/requests"
	"labcore-service/internal/pkg/exceptions"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type resultUsecase struct {
	ResultRepository contracts.ResultRepository
	OrderRepository  contracts.OrderRepository
	SequenceService  contracts.SequenceService
	LockerService    contracts.LockerService
	EventPublisher   contracts.EventPublisher
	ObjectStorage    contracts.ObjectStorage
	InternalConfig   *config.InternalConfig
	Log              *zap.Logger
}

func NewResultUsecase(
	resultRepository contracts.ResultRepository,
	orderRepository contracts.OrderRepository,
	sequenceService contracts.SequenceService,
	lockerService contracts.LockerService,
	eventPublisher contracts.EventPublisher,
	objectStorage contracts.ObjectStorage,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.ResultUsecase {
	return &resultUsecase{
		ResultRepository: resultRepository,
		OrderRepository:  orderRepository,
		SequenceService:  sequenceService,
		LockerService:    lockerService,
		EventPublisher:   eventPublisher,
		ObjectStorage:    objectStorage,
		InternalConfig:   internalConfig,
		Log:              logger,
	}
}

// CreateResult enters a preliminary result for one of the order's tests. The
// result kind follows the catalog the test resolved against at order time.
// Interpretation (flags, overall call, detected lists, critical values) runs
// on entry, the raw submission is archived, and the matching line item moves
// to processing.
func (uc *resultUsecase) CreateResult(ctx context.Context, request *requests.CreateResult, actorID string) (*models.Result, error) {
	order, err := uc.OrderRepository.FindByID(ctx, request.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, exceptions.ErrEntityNotFound("order", request.OrderID)
	}

	lineItem := order.FindLineItem(request.TestID)
	if lineItem == nil {
		return nil, exceptions.ErrTestNotInOrder(request.OrderID, request.TestID)
	}

	now := time.Now()
	resultNumber, err := uc.SequenceService.Next(ctx, contracts.IdentifierKindResult, now)
	if err != nil {
		return nil, err
	}

	kind := models.ResultKindConventional
	if lineItem.CatalogKind == models.CatalogKindPCRPanel {
		kind = models.ResultKindMolecular
	}

	result := &models.Result{
		ResultNumber:      resultNumber,
		OrderID:           order.ID,
		PatientID:         order.PatientID,
		TestID:            lineItem.TestID,
		TestName:          lineItem.TestName,
		Kind:              kind,
		Parameters:        toModelParameters(request.Parameters),
		Targets:           toModelTargets(request.Targets),
		ResistanceMarkers: toModelMarkers(request.ResistanceMarkers),
		Susceptibilities:  toModelSusceptibilities(request.Susceptibilities),
		Interpretation:    request.Interpretation,
		Status:            models.ResultStatusPreliminary,
		PerformedBy:       actorID,
		PerformedAt:       now,
	}
	if request.QualityControl != nil {
		result.QualityControl = &models.QualityControl{
			InternalControlPassed: request.QualityControl.InternalControlPassed,
			Notes:                 request.QualityControl.Notes,
		}
	}
	if request.TreatmentSuggestion != nil {
		result.TreatmentSuggestion = &models.TreatmentSuggestion{
			Preferred:   request.TreatmentSuggestion.Preferred,
			Alternative: request.TreatmentSuggestion.Alternative,
			Avoid:       request.TreatmentSuggestion.Avoid,
		}
	}

	uc.interpret(result)
	result.CriticalValues = DetectCriticalValues(result.Targets, result.ResistanceMarkers, now)

	uc.archiveRawPayload(ctx, resultNumber, request)

	resultID, err := uc.ResultRepository.Create(ctx, result)
	if err != nil {
		return nil, err
	}
	result.ID = resultID

	if err := uc.advanceLineItem(ctx, order.ID, result.TestID, models.LineItemStatusProcessing, actorID); err != nil {
		return nil, err
	}
	return result, nil
}

func (uc *resultUsecase) GetResultByID(ctx context.Context, resultID string) (*models.Result, error) {
	result, err := uc.ResultRepository.FindByID(ctx, resultID)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, exceptions.ErrEntityNotFound("result", resultID)
	}
	return result, nil
}

func (uc *resultUsecase) ReviewResult(ctx context.Context, resultID string, request *requests.ReviewResult, actorID string) (*models.Result, error) {
	result, unlock, err := uc.lockAndLoadResult(ctx, resultID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if result.Status != models.ResultStatusPreliminary {
		return nil, exceptions.ErrResultInvalidTransition(resultID, string(result.Status), "be reviewed", constvars.ErrClientResultNotReviewable)
	}

	now := time.Now()
	result.Status = models.ResultStatusReviewed
	result.ReviewedBy = actorID
	result.ReviewedAt = &now
	result.ReviewNotes = request.Notes

	if err := uc.ResultRepository.Update(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (uc *resultUsecase) ApproveResult(ctx context.Context, resultID, actorID string) (*models.Result, error) {
	result, unlock, err := uc.lockAndLoadResult(ctx, resultID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if result.Status != models.ResultStatusReviewed {
		return nil, exceptions.ErrResultInvalidTransition(resultID, string(result.Status), "be approved", constvars.ErrClientResultNotReviewed)
	}

	now := time.Now()
	result.Status = models.ResultStatusApproved
	result.ApprovedBy = actorID
	result.ApprovedAt = &now

	if err := uc.ResultRepository.Update(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

// FinalizeResult releases an approved result: it stamps the report time,
// publishes any outstanding critical-value flags, and completes the order's
// matching line item so the aggregate status can roll up.
func (uc *resultUsecase) FinalizeResult(ctx context.Context, resultID, actorID string) (*models.Result, error) {
	result, unlock, err := uc.lockAndLoadResult(ctx, resultID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if result.Status != models.ResultStatusApproved {
		return nil, exceptions.ErrResultInvalidTransition(resultID, string(result.Status), "be finalized", constvars.ErrClientResultNotApproved)
	}

	now := time.Now()
	result.Status = models.ResultStatusFinal
	result.ReportedAt = &now

	if err := uc.ResultRepository.Update(ctx, result); err != nil {
		return nil, err
	}

	if result.HasCriticalValues() {
		if err := uc.EventPublisher.PublishCriticalValues(ctx, result); err != nil {
			uc.Log.Warn("critical value event not published",
				zap.String(constvars.LoggingResultNumberKey, result.ResultNumber),
				zap.Error(err),
			)
		}
	}

	if err := uc.advanceLineItem(ctx, result.OrderID, result.TestID, models.LineItemStatusCompleted, actorID); err != nil {
		return nil, err
	}
	return result, nil
}

// AmendResult changes a released result under audit: for a final or already
// amended result the previous value of every changed field is snapshotted
// into a new append-only amendment entry and the result moves to (or stays
// in) amended. A result still in preliminary is rewritten silently with no
// trail. Anything in between (reviewed, approved) must finish its release
// cycle first.
func (uc *resultUsecase) AmendResult(ctx context.Context, resultID string, request *requests.AmendResult, actorID string) (*models.Result, error) {
	result, unlock, err := uc.lockAndLoadResult(ctx, resultID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	switch result.Status {
	case models.ResultStatusPreliminary:
		if _, err := applyChangedFields(result, request.ChangedFields); err != nil {
			return nil, err
		}
		uc.interpret(result)
		if err := uc.ResultRepository.Update(ctx, result); err != nil {
			return nil, err
		}
		return result, nil

	case models.ResultStatusFinal, models.ResultStatusAmended:
		previousValues, err := applyChangedFields(result, request.ChangedFields)
		if err != nil {
			return nil, err
		}
		uc.interpret(result)

		now := time.Now()
		amendment := models.Amendment{
			Reason:         request.Reason,
			Actor:          actorID,
			Timestamp:      now,
			PreviousValues: previousValues,
			NewValues:      request.ChangedFields,
		}
		result.Amendments = append(result.Amendments, amendment)
		result.Status = models.ResultStatusAmended

		if err := uc.ResultRepository.Update(ctx, result); err != nil {
			return nil, err
		}

		if err := uc.EventPublisher.PublishAmendment(ctx, result, amendment); err != nil {
			uc.Log.Warn("amendment event not published",
				zap.String(constvars.LoggingResultNumberKey, result.ResultNumber),
				zap.Error(err),
			)
		}
		return result, nil

	default:
		return nil, exceptions.ErrResultInvalidTransition(resultID, string(result.Status), "be amended", constvars.ErrClientResultNotAmendable)
	}
}

// interpret re-derives everything computable from the entered values: flags
// on conventional parameters, and for molecular results the per-target
// interpretations, the overall call, and the detected lists.
func (uc *resultUsecase) interpret(result *models.Result) {
	FlagParameters(result.Parameters)
	if result.Kind != models.ResultKindMolecular {
		return
	}
	NormalizeTargets(result.Targets)
	result.OverallResult = ComputeOverallResult(result.Targets)
	result.DetectedPathogens = DetectedPathogens(result.Targets)
	result.DetectedResistanceMarkers = DetectedResistanceMarkers(result.ResistanceMarkers)
}

// archiveRawPayload stores the submission as received, before any derived
// fields, for traceability. Archival is best effort and never blocks result
// entry.
func (uc *resultUsecase) archiveRawPayload(ctx context.Context, resultNumber string, request *requests.CreateResult) {
	if uc.InternalConfig.App.RawPayloadArchiveDisabled {
		return
	}
	payload, err := json.Marshal(request)
	if err != nil {
		uc.Log.Warn("raw payload not archived", zap.String(constvars.LoggingResultNumberKey, resultNumber), zap.Error(err))
		return
	}
	objectKey := fmt.Sprintf("results/%s.json", resultNumber)
	if _, err := uc.ObjectStorage.PutJSON(ctx, objectKey, payload); err != nil {
		uc.Log.Warn("raw payload not archived",
			zap.String(constvars.LoggingResultNumberKey, resultNumber),
			zap.String(constvars.LoggingObjectKey, objectKey),
			zap.Error(err),
		)
	}
}

// advanceLineItem walks the order's line item toward the target status under
// the per-order lock. Intermediate states are stepped through so the machine
// is never skipped; a line item already at or past the target is left alone.
func (uc *resultUsecase) advanceLineItem(ctx context.Context, orderID, testID string, target models.LineItemStatus, actorID string) error {
	lockKey := locker.OrderKey(orderID)
	lockValue, err := locker.Acquire(ctx, uc.LockerService, lockKey,
		time.Duration(uc.InternalConfig.App.LockExpirationInSeconds)*time.Second,
		time.Duration(uc.InternalConfig.App.LockWaitBudgetInMillis)*time.Millisecond,
	)
	if err != nil {
		return err
	}
	defer uc.LockerService.Unlock(ctx, lockKey, lockValue)

	order, err := uc.OrderRepository.FindByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return exceptions.ErrEntityNotFound("order", orderID)
	}
	if order.Status == models.OrderStatusRejected {
		return nil
	}

	lineItem := order.FindLineItem(testID)
	if lineItem == nil {
		return nil
	}

	now := time.Now()
	changed := false
	for _, step := range stepsToward(lineItem.Status, target) {
		if !lineItem.CanTransitionTo(step) {
			break
		}
		lineItem.ApplyTransition(step, actorID, now)
		changed = true
	}
	if !changed {
		return nil
	}

	order.RecomputeStatus(now)
	return uc.OrderRepository.Update(ctx, order)
}

func stepsToward(from, target models.LineItemStatus) []models.LineItemStatus {
	ladder := []models.LineItemStatus{
		models.LineItemStatusPending,
		models.LineItemStatusCollected,
		models.LineItemStatusProcessing,
		models.LineItemStatusCompleted,
	}
	fromIdx, targetIdx := -1, -1
	for i, s := range ladder {
		if s == from {
			fromIdx = i
		}
		if s == target {
			targetIdx = i
		}
	}
	if fromIdx < 0 || targetIdx < 0 || targetIdx <= fromIdx {
		return nil
	}
	return ladder[fromIdx+1 : targetIdx+1]
}

// protectedFields are the JSON field names an amendment may never touch:
// the business key and linkage, the lifecycle status with its actor and
// timestamp attributions, and the append-only audit trails. These move only
// through their own operations.
var protectedFields = map[string]struct{}{
	"id":               {},
	"resultNumber":     {},
	"orderId":          {},
	"patientId":        {},
	"testId":           {},
	"kind":             {},
	"status":           {},
	"performedBy":      {},
	"performedAt":      {},
	"reviewedBy":       {},
	"reviewedAt":       {},
	"approvedBy":       {},
	"approvedAt":       {},
	"reportedAt":       {},
	"amendments":       {},
	"criticalValues":   {},
	"rawPayloadObject": {},
	"createdAt":        {},
	"updatedAt":        {},
	"deletedAt":        {},
}

// applyChangedFields overlays the changed fields onto the result through its
// JSON form and returns the previous value of exactly those fields. Protected
// fields are rejected before anything is touched; unknown field names pass
// through the overlay untouched by the decoder.
func applyChangedFields(result *models.Result, changedFields map[string]interface{}) (map[string]interface{}, error) {
	for field := range changedFields {
		if _, reserved := protectedFields[field]; reserved {
			return nil, exceptions.ErrAmendFieldProtected(field)
		}
	}

	encoded, err := json.Marshal(result)
	if err != nil {
		return nil, exceptions.ErrServerProcess(err)
	}
	var document map[string]interface{}
	if err := json.Unmarshal(encoded, &document); err != nil {
		return nil, exceptions.ErrServerProcess(err)
	}

	previousValues := make(map[string]interface{}, len(changedFields))
	for field, newValue := range changedFields {
		previousValues[field] = document[field]
		document[field] = newValue
	}

	reencoded, err := json.Marshal(document)
	if err != nil {
		return nil, exceptions.ErrServerProcess(err)
	}
	updated := new(models.Result)
	if err := json.Unmarshal(reencoded, updated); err != nil {
		return nil, exceptions.ErrCannotParseJSON(err)
	}
	*result = *updated
	return previousValues, nil
}

func toModelParameters(in []requests.ResultParameter) []models.ResultParameter {
	if len(in) == 0 {
		return nil
	}
	out := make([]models.ResultParameter, 0, len(in))
	for _, p := range in {
		parameter := models.ResultParameter{
			Name:      p.Name,
			Value:     p.Value,
			ValueText: p.ValueText,
			Unit:      p.Unit,
		}
		if p.ReferenceRange != nil {
			parameter.ReferenceRange = &models.ReferenceRange{Min: p.ReferenceRange.Min, Max: p.ReferenceRange.Max}
		}
		out = append(out, parameter)
	}
	return out
}

func toModelTargets(in []requests.TargetDetection) []models.TargetDetection {
	if len(in) == 0 {
		return nil
	}
	out := make([]models.TargetDetection, 0, len(in))
	for _, t := range in {
		out = append(out, models.TargetDetection{
			TargetName:     t.TargetName,
			Detected:       t.Detected,
			Interpretation: models.TargetInterpretation(t.Interpretation),
			CtValue:        t.CtValue,
		})
	}
	return out
}

func toModelMarkers(in []requests.ResistanceMarker) []models.ResistanceMarker {
	if len(in) == 0 {
		return nil
	}
	out := make([]models.ResistanceMarker, 0, len(in))
	for _, m := range in {
		out = append(out, models.ResistanceMarker{
			MarkerName:          m.MarkerName,
			Gene:                m.Gene,
			Detected:            m.Detected,
			AffectedAntibiotics: m.AffectedAntibiotics,
		})
	}
	return out
}

func toModelSusceptibilities(in []requests.Susceptibility) []models.Susceptibility {
	if len(in) == 0 {
		return nil
	}
	out := make([]models.Susceptibility, 0, len(in))
	for _, s := range in {
		out = append(out, models.Susceptibility{
			Antibiotic:     s.Antibiotic,
			Interpretation: s.Interpretation,
			MIC:            s.MIC,
		})
	}
	return out
}

func (uc *resultUsecase) lockAndLoadResult(ctx context.Context, resultID string) (*models.Result, func(), error) {
	lockKey := locker.ResultKey(resultID)
	lockValue, err := locker.Acquire(ctx, uc.LockerService, lockKey,
		time.Duration(uc.InternalConfig.App.LockExpirationInSeconds)*time.Second,
		time.Duration(uc.InternalConfig.App.LockWaitBudgetInMillis)*time.Millisecond,
	)
	if err != nil {
		return nil, nil, err
	}
	unlock := func() { uc.LockerService.Unlock(ctx, lockKey, lockValue) }

	result, err := uc.ResultRepository.FindByID(ctx, resultID)
	if err != nil {
		unlock()
		return nil, nil, err
	}
	if result == nil {
		unlock()
		return nil, nil, exceptions.ErrEntityNotFound("result", resultID)
	}
	return result, unlock, nil
}
