package requests

import "time"

type OrderLineItem struct {
	TestID   string `json:"testId" validate:"required"`
	Priority string `json:"priority,omitempty" validate:"omitempty,priority"`
	Notes    string `json:"notes,omitempty"`
}

type PhysicianSnapshot struct {
	Name    string `json:"name" validate:"required"`
	License string `json:"license,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

type CreateOrder struct {
	PatientID       string            `json:"patientId" validate:"required"`
	MedicalOfficeID string            `json:"medicalOfficeId,omitempty"`
	Physician       PhysicianSnapshot `json:"physician" validate:"required"`
	Priority        string            `json:"priority" validate:"required,priority"`
	ClinicalInfo    string            `json:"clinicalInfo,omitempty"`
	SpecimenType    string            `json:"specimenType" validate:"required"`
	SpecimenBarcode string            `json:"specimenBarcode,omitempty"`
	CollectedAt     *time.Time        `json:"collectedAt,omitempty"`
	ScheduledAt     *time.Time        `json:"scheduledAt,omitempty"`
	LineItems       []OrderLineItem   `json:"lineItems" validate:"required,min=1,dive"`
}

type UpdateLineItemStatus struct {
	Status string `json:"status" validate:"required,line_item_status"`
	Notes  string `json:"notes,omitempty"`
}
