package requests

type ResultParameter struct {
	Name           string          `json:"name" validate:"required"`
	Value          *float64        `json:"value,omitempty"`
	ValueText      string          `json:"valueText,omitempty"`
	Unit           string          `json:"unit,omitempty"`
	ReferenceRange *ReferenceRange `json:"referenceRange,omitempty"`
}

type ReferenceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type TargetDetection struct {
	TargetName     string   `json:"targetName" validate:"required"`
	Detected       bool     `json:"detected"`
	Interpretation string   `json:"interpretation,omitempty" validate:"omitempty,oneof=Detected 'Not Detected' Indeterminate Invalid"`
	CtValue        *float64 `json:"ctValue,omitempty"`
}

type ResistanceMarker struct {
	MarkerName          string   `json:"markerName" validate:"required"`
	Gene                string   `json:"gene,omitempty"`
	Detected            bool     `json:"detected"`
	AffectedAntibiotics []string `json:"affectedAntibiotics,omitempty"`
}

type Susceptibility struct {
	Antibiotic     string `json:"antibiotic" validate:"required"`
	Interpretation string `json:"interpretation" validate:"required,oneof=S I R"`
	MIC            string `json:"mic,omitempty"`
}

type QualityControl struct {
	InternalControlPassed bool   `json:"internalControlPassed"`
	Notes                 string `json:"notes,omitempty"`
}

type TreatmentSuggestion struct {
	Preferred   []string `json:"preferred,omitempty"`
	Alternative []string `json:"alternative,omitempty"`
	Avoid       []string `json:"avoid,omitempty"`
}

type CreateResult struct {
	OrderID string `json:"orderId" validate:"required"`
	TestID  string `json:"testId" validate:"required"`

	Parameters []ResultParameter `json:"parameters,omitempty" validate:"omitempty,dive"`

	Targets           []TargetDetection  `json:"targets,omitempty" validate:"omitempty,dive"`
	ResistanceMarkers []ResistanceMarker `json:"resistanceMarkers,omitempty" validate:"omitempty,dive"`
	Susceptibilities  []Susceptibility   `json:"susceptibilities,omitempty" validate:"omitempty,dive"`
	QualityControl    *QualityControl    `json:"qualityControl,omitempty"`

	Interpretation      string               `json:"interpretation,omitempty"`
	TreatmentSuggestion *TreatmentSuggestion `json:"treatmentSuggestion,omitempty"`
}

type ReviewResult struct {
	Notes string `json:"notes,omitempty"`
}

type AmendResult struct {
	Reason        string                 `json:"reason" validate:"required"`
	ChangedFields map[string]interface{} `json:"changedFields" validate:"required,min=1"`
}
