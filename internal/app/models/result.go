package models

import "time"

type ResultStatus string

const (
	ResultStatusPreliminary ResultStatus = "preliminary"
	ResultStatusReviewed    ResultStatus = "reviewed"
	ResultStatusApproved    ResultStatus = "approved"
	ResultStatusFinal       ResultStatus = "final"
	ResultStatusAmended     ResultStatus = "amended"
	ResultStatusCancelled   ResultStatus = "cancelled"
)

type ResultKind string

const (
	ResultKindConventional ResultKind = "conventional"
	ResultKindMolecular    ResultKind = "molecular"
)

type OverallResult string

const (
	OverallResultPositive          OverallResult = "Positive"
	OverallResultNegative          OverallResult = "Negative"
	OverallResultPartiallyPositive OverallResult = "Partially Positive"
	OverallResultIndeterminate     OverallResult = "Indeterminate"
	OverallResultInvalid           OverallResult = "Invalid"
)

type ParameterFlag string

const (
	ParameterFlagLow    ParameterFlag = "low"
	ParameterFlagNormal ParameterFlag = "normal"
	ParameterFlagHigh   ParameterFlag = "high"
)

type TargetInterpretation string

const (
	TargetInterpretationDetected      TargetInterpretation = "Detected"
	TargetInterpretationNotDetected   TargetInterpretation = "Not Detected"
	TargetInterpretationIndeterminate TargetInterpretation = "Indeterminate"
	TargetInterpretationInvalid       TargetInterpretation = "Invalid"
)

type ReferenceRange struct {
	Min float64 `json:"min" bson:"min"`
	Max float64 `json:"max" bson:"max"`
}

// ResultParameter is one named measurement on a conventional result.
type ResultParameter struct {
	Name           string          `json:"name" bson:"name"`
	Value          *float64        `json:"value,omitempty" bson:"value,omitempty"`
	ValueText      string          `json:"valueText,omitempty" bson:"valueText,omitempty"`
	Unit           string          `json:"unit,omitempty" bson:"unit,omitempty"`
	ReferenceRange *ReferenceRange `json:"referenceRange,omitempty" bson:"referenceRange,omitempty"`
	Flag           ParameterFlag   `json:"flag,omitempty" bson:"flag,omitempty"`
}

// TargetDetection is one per-target detection record on a molecular result.
type TargetDetection struct {
	TargetName     string               `json:"targetName" bson:"targetName"`
	Detected       bool                 `json:"detected" bson:"detected"`
	Interpretation TargetInterpretation `json:"interpretation" bson:"interpretation"`
	CtValue        *float64             `json:"ctValue,omitempty" bson:"ctValue,omitempty"`
}

type ResistanceMarker struct {
	MarkerName          string   `json:"markerName" bson:"markerName"`
	Gene                string   `json:"gene,omitempty" bson:"gene,omitempty"`
	Detected            bool     `json:"detected" bson:"detected"`
	AffectedAntibiotics []string `json:"affectedAntibiotics,omitempty" bson:"affectedAntibiotics,omitempty"`
}

type Susceptibility struct {
	Antibiotic     string `json:"antibiotic" bson:"antibiotic"`
	Interpretation string `json:"interpretation" bson:"interpretation"`
	MIC            string `json:"mic,omitempty" bson:"mic,omitempty"`
}

type QualityControl struct {
	InternalControlPassed bool   `json:"internalControlPassed" bson:"internalControlPassed"`
	Notes                 string `json:"notes,omitempty" bson:"notes,omitempty"`
}

// Amendment records one post-release change. previousValues snapshots exactly
// the fields that changed; entries are appended and never rewritten.
type Amendment struct {
	Reason         string                 `json:"reason" bson:"reason"`
	Actor          string                 `json:"actor" bson:"actor"`
	Timestamp      time.Time              `json:"timestamp" bson:"timestamp"`
	PreviousValues map[string]interface{} `json:"previousValues" bson:"previousValues"`
	NewValues      map[string]interface{} `json:"newValues" bson:"newValues"`
}

// CriticalValue flags a detected target that requires urgent clinician
// notification. The engine only flags; delivery happens elsewhere.
type CriticalValue struct {
	TargetName           string     `json:"targetName" bson:"targetName"`
	FlaggedAt            time.Time  `json:"flaggedAt" bson:"flaggedAt"`
	RequiresNotification bool       `json:"requiresNotification" bson:"requiresNotification"`
	NotifiedAt           *time.Time `json:"notifiedAt,omitempty" bson:"notifiedAt,omitempty"`
}

// TreatmentSuggestion carries operator-entered antibiotic guidance. The engine
// never computes these lists.
type TreatmentSuggestion struct {
	Preferred   []string `json:"preferred,omitempty" bson:"preferred,omitempty"`
	Alternative []string `json:"alternative,omitempty" bson:"alternative,omitempty"`
	Avoid       []string `json:"avoid,omitempty" bson:"avoid,omitempty"`
}

type Result struct {
	ID           string     `json:"id,omitempty" bson:"_id,omitempty"`
	ResultNumber string     `json:"resultNumber" bson:"resultNumber"`
	OrderID      string     `json:"orderId" bson:"orderId"`
	PatientID    string     `json:"patientId" bson:"patientId"`
	TestID       string     `json:"testId" bson:"testId"`
	TestName     string     `json:"testName" bson:"testName"`
	Kind         ResultKind `json:"kind" bson:"kind"`

	Parameters []ResultParameter `json:"parameters,omitempty" bson:"parameters,omitempty"`

	Targets           []TargetDetection  `json:"targets,omitempty" bson:"targets,omitempty"`
	ResistanceMarkers []ResistanceMarker `json:"resistanceMarkers,omitempty" bson:"resistanceMarkers,omitempty"`
	Susceptibilities  []Susceptibility   `json:"susceptibilities,omitempty" bson:"susceptibilities,omitempty"`
	QualityControl    *QualityControl    `json:"qualityControl,omitempty" bson:"qualityControl,omitempty"`

	OverallResult             OverallResult        `json:"overallResult,omitempty" bson:"overallResult,omitempty"`
	DetectedPathogens         []string             `json:"detectedPathogens,omitempty" bson:"detectedPathogens,omitempty"`
	DetectedResistanceMarkers []string             `json:"detectedResistanceMarkers,omitempty" bson:"detectedResistanceMarkers,omitempty"`
	CriticalValues            []CriticalValue      `json:"criticalValues,omitempty" bson:"criticalValues,omitempty"`
	Interpretation            string               `json:"interpretation,omitempty" bson:"interpretation,omitempty"`
	TreatmentSuggestion       *TreatmentSuggestion `json:"treatmentSuggestion,omitempty" bson:"treatmentSuggestion,omitempty"`

	Status      ResultStatus `json:"status" bson:"status"`
	PerformedBy string       `json:"performedBy" bson:"performedBy"`
	PerformedAt time.Time    `json:"performedAt" bson:"performedAt"`
	ReviewedBy  string       `json:"reviewedBy,omitempty" bson:"reviewedBy,omitempty"`
	ReviewedAt  *time.Time   `json:"reviewedAt,omitempty" bson:"reviewedAt,omitempty"`
	ReviewNotes string       `json:"reviewNotes,omitempty" bson:"reviewNotes,omitempty"`
	ApprovedBy  string       `json:"approvedBy,omitempty" bson:"approvedBy,omitempty"`
	ApprovedAt  *time.Time   `json:"approvedAt,omitempty" bson:"approvedAt,omitempty"`
	ReportedAt  *time.Time   `json:"reportedAt,omitempty" bson:"reportedAt,omitempty"`

	Amendments []Amendment `json:"amendments,omitempty" bson:"amendments,omitempty"`

	RawPayloadObject string `json:"rawPayloadObject,omitempty" bson:"rawPayloadObject,omitempty"`

	TimeModel `bson:",inline"`
}

// HasCriticalValues reports whether any flagged value still owes a
// notification.
func (r *Result) HasCriticalValues() bool {
	for _, cv := range r.CriticalValues {
		if cv.RequiresNotification {
			return true
		}
	}
	return false
}
