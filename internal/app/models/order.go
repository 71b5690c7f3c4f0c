package models

import "time"

type OrderStatus string

const (
	OrderStatusPending     OrderStatus = "pending"
	OrderStatusAccessioned OrderStatus = "accessioned"
	OrderStatusPartial     OrderStatus = "partial"
	OrderStatusCompleted   OrderStatus = "completed"
	OrderStatusCancelled   OrderStatus = "cancelled"
	OrderStatusRejected    OrderStatus = "rejected"
)

type LineItemStatus string

const (
	LineItemStatusPending    LineItemStatus = "pending"
	LineItemStatusCollected  LineItemStatus = "collected"
	LineItemStatusProcessing LineItemStatus = "processing"
	LineItemStatusCompleted  LineItemStatus = "completed"
	LineItemStatusCancelled  LineItemStatus = "cancelled"
)

type Priority string

const (
	PriorityRoutine Priority = "routine"
	PriorityUrgent  Priority = "urgent"
	PriorityStat    Priority = "stat"
)

type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "unpaid"
	PaymentStatusPaid   PaymentStatus = "paid"
)

// SpecimenExpiryHours is the fixed age threshold beyond which a collected
// specimen is considered expired.
const SpecimenExpiryHours = 72

// PhysicianSnapshot is denormalized onto the order at creation time so later
// edits to the physician record do not rewrite order history.
type PhysicianSnapshot struct {
	Name    string `json:"name" bson:"name"`
	License string `json:"license" bson:"license"`
	Phone   string `json:"phone" bson:"phone"`
}

type SpecimenInfo struct {
	Type        string     `json:"type" bson:"type"`
	Condition   string     `json:"condition,omitempty" bson:"condition,omitempty"`
	Barcode     string     `json:"barcode,omitempty" bson:"barcode,omitempty"`
	CollectedAt *time.Time `json:"collectedAt,omitempty" bson:"collectedAt,omitempty"`
}

type RejectionRecord struct {
	Reason     RejectionReason `json:"reason" bson:"reason"`
	Comments   string          `json:"comments,omitempty" bson:"comments,omitempty"`
	RejectedBy string          `json:"rejectedBy" bson:"rejectedBy"`
	RejectedAt time.Time       `json:"rejectedAt" bson:"rejectedAt"`
}

type HoldRecord struct {
	Reason string    `json:"reason" bson:"reason"`
	Notes  string    `json:"notes,omitempty" bson:"notes,omitempty"`
	HeldBy string    `json:"heldBy" bson:"heldBy"`
	HeldAt time.Time `json:"heldAt" bson:"heldAt"`
}

// TestLineItem is one requested test within an order. It has no identity
// outside its order. TestName and Price are captured at order time so catalog
// edits do not corrupt history; CatalogKind records which catalog the test id
// resolved against so reads never re-probe both catalogs.
type TestLineItem struct {
	TestID              string         `json:"testId" bson:"testId"`
	TestName            string         `json:"testName" bson:"testName"`
	CatalogKind         CatalogKind    `json:"catalogKind" bson:"catalogKind"`
	Price               float64        `json:"price" bson:"price"`
	Status              LineItemStatus `json:"status" bson:"status"`
	Priority            Priority       `json:"priority" bson:"priority"`
	CollectedAt         *time.Time     `json:"collectedAt,omitempty" bson:"collectedAt,omitempty"`
	CollectedBy         string         `json:"collectedBy,omitempty" bson:"collectedBy,omitempty"`
	ProcessingStartedAt *time.Time     `json:"processingStartedAt,omitempty" bson:"processingStartedAt,omitempty"`
	ProcessingEndedAt   *time.Time     `json:"processingEndedAt,omitempty" bson:"processingEndedAt,omitempty"`
	Notes               string         `json:"notes,omitempty" bson:"notes,omitempty"`
}

var lineItemTransitions = map[LineItemStatus][]LineItemStatus{
	LineItemStatusPending:    {LineItemStatusCollected, LineItemStatusCancelled},
	LineItemStatusCollected:  {LineItemStatusProcessing, LineItemStatusCancelled},
	LineItemStatusProcessing: {LineItemStatusCompleted, LineItemStatusCancelled},
}

// CanTransitionTo reports whether the line item may move to the target status.
// Completed and cancelled are terminal.
func (li *TestLineItem) CanTransitionTo(target LineItemStatus) bool {
	for _, allowed := range lineItemTransitions[li.Status] {
		if allowed == target {
			return true
		}
	}
	return false
}

// ApplyTransition moves the line item to the target status, stamping the
// collection and processing timestamps as side effects of the status change.
// The caller must have checked CanTransitionTo first.
func (li *TestLineItem) ApplyTransition(target LineItemStatus, actorID string, now time.Time) {
	switch target {
	case LineItemStatusCollected:
		li.CollectedAt = &now
		li.CollectedBy = actorID
	case LineItemStatusProcessing:
		li.ProcessingStartedAt = &now
	case LineItemStatusCompleted:
		li.ProcessingEndedAt = &now
	}
	li.Status = target
}

type Order struct {
	ID                   string            `json:"id,omitempty" bson:"_id,omitempty"`
	OrderNumber          string            `json:"orderNumber" bson:"orderNumber"`
	PatientID            string            `json:"patientId" bson:"patientId"`
	Physician            PhysicianSnapshot `json:"physician" bson:"physician"`
	MedicalOfficeID      string            `json:"medicalOfficeId,omitempty" bson:"medicalOfficeId,omitempty"`
	Priority             Priority          `json:"priority" bson:"priority"`
	ClinicalInfo         string            `json:"clinicalInfo,omitempty" bson:"clinicalInfo,omitempty"`
	Specimen             SpecimenInfo      `json:"specimen" bson:"specimen"`
	AccessionNumber      string            `json:"accessionNumber,omitempty" bson:"accessionNumber,omitempty"`
	AccessionedAt        *time.Time        `json:"accessionedAt,omitempty" bson:"accessionedAt,omitempty"`
	AccessionedBy        string            `json:"accessionedBy,omitempty" bson:"accessionedBy,omitempty"`
	Rejection            *RejectionRecord  `json:"rejection,omitempty" bson:"rejection,omitempty"`
	Hold                 *HoldRecord       `json:"hold,omitempty" bson:"hold,omitempty"`
	Status               OrderStatus       `json:"status" bson:"status"`
	PaymentStatus        PaymentStatus     `json:"paymentStatus" bson:"paymentStatus"`
	TotalAmount          float64           `json:"totalAmount" bson:"totalAmount"`
	LineItems            []TestLineItem    `json:"lineItems" bson:"lineItems"`
	ScheduledAt          *time.Time        `json:"scheduledAt,omitempty" bson:"scheduledAt,omitempty"`
	ReceivedAt           *time.Time        `json:"receivedAt,omitempty" bson:"receivedAt,omitempty"`
	ExpectedCompletionAt *time.Time        `json:"expectedCompletionAt,omitempty" bson:"expectedCompletionAt,omitempty"`
	ActualCompletionAt   *time.Time        `json:"actualCompletionAt,omitempty" bson:"actualCompletionAt,omitempty"`
	TimeModel            `bson:",inline"`
}

// RollupOrderStatus derives the aggregate status from the line-item statuses
// plus the accession flag. This is the single definition of the rollup rules;
// evaluation order is fixed: all completed, any completed, all cancelled,
// accessioned, pending.
func RollupOrderStatus(items []TestLineItem, hasAccessionNumber bool) OrderStatus {
	if len(items) == 0 {
		if hasAccessionNumber {
			return OrderStatusAccessioned
		}
		return OrderStatusPending
	}

	allCompleted := true
	anyCompleted := false
	allCancelled := true
	for _, item := range items {
		switch item.Status {
		case LineItemStatusCompleted:
			anyCompleted = true
			allCancelled = false
		case LineItemStatusCancelled:
			allCompleted = false
		default:
			allCompleted = false
			allCancelled = false
		}
	}

	switch {
	case allCompleted:
		return OrderStatusCompleted
	case anyCompleted:
		return OrderStatusPartial
	case allCancelled:
		return OrderStatusCancelled
	case hasAccessionNumber:
		return OrderStatusAccessioned
	default:
		return OrderStatusPending
	}
}

// RecomputeStatus re-derives the aggregate status from the current line-item
// set. A rejected order is terminal and never re-enters the rollup machine.
// Entering completed stamps the actual completion time once.
func (o *Order) RecomputeStatus(now time.Time) {
	if o.Rejection != nil {
		o.Status = OrderStatusRejected
		return
	}

	next := RollupOrderStatus(o.LineItems, o.AccessionNumber != "")
	if next == OrderStatusCompleted && o.ActualCompletionAt == nil {
		o.ActualCompletionAt = &now
	}
	o.Status = next
}

// IsTerminal reports whether the order accepts no further lifecycle
// transitions.
func (o *Order) IsTerminal() bool {
	return o.Status == OrderStatusRejected || o.Status == OrderStatusCancelled || o.Status == OrderStatusCompleted
}

// FindLineItem returns a pointer into the order's line-item slice for the
// given test id, or nil when the test is not part of the order.
func (o *Order) FindLineItem(testID string) *TestLineItem {
	for i := range o.LineItems {
		if o.LineItems[i].TestID == testID {
			return &o.LineItems[i]
		}
	}
	return nil
}

// TurnaroundHours returns the elapsed whole hours between accession and actual
// completion. It is undefined until both timestamps exist.
func (o *Order) TurnaroundHours() (int, bool) {
	if o.AccessionedAt == nil || o.ActualCompletionAt == nil {
		return 0, false
	}
	return int(o.ActualCompletionAt.Sub(*o.AccessionedAt).Hours()), true
}

var unacceptableConditions = map[string]bool{
	"hemolyzed":    true,
	"clotted":      true,
	"insufficient": true,
	"contaminated": true,
}

// IsConditionAcceptable reports whether a specimen condition permits
// processing. All conditions outside the fixed unacceptable set are
// acceptable.
func IsConditionAcceptable(condition string) bool {
	return !unacceptableConditions[condition]
}

// IsSpecimenExpired reports whether more than the fixed expiry window has
// elapsed since collection.
func IsSpecimenExpired(collectedAt time.Time, now time.Time) bool {
	return now.Sub(collectedAt).Hours() > SpecimenExpiryHours
}
