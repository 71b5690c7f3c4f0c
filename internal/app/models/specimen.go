package models

import (
	"fmt"
	"time"
)

type SpecimenStatus string

const (
	SpecimenStatusAccessioned SpecimenStatus = "accessioned"
	SpecimenStatusRejected    SpecimenStatus = "rejected"
	SpecimenStatusHold        SpecimenStatus = "hold"
)

type RejectionReason string

const (
	RejectionReasonHemolyzed    RejectionReason = "hemolyzed"
	RejectionReasonClotted      RejectionReason = "clotted"
	RejectionReasonInsufficient RejectionReason = "insufficient"
	RejectionReasonWrongTube    RejectionReason = "wrong_tube"
	RejectionReasonUnlabeled    RejectionReason = "unlabeled"
	RejectionReasonMislabeled   RejectionReason = "mislabeled"
	RejectionReasonContaminated RejectionReason = "contaminated"
	RejectionReasonExpired      RejectionReason = "expired"
	RejectionReasonTemperature  RejectionReason = "temperature"
	RejectionReasonOther        RejectionReason = "other"
)

// DefaultSpecimenCondition is recorded when accessioning does not state one.
const DefaultSpecimenCondition = "good"

// CustodyEntry is one link in a specimen's chain of custody. Entries are
// append-only and never edited or removed.
type CustodyEntry struct {
	ID        string    `json:"id" bson:"id"`
	Action    string    `json:"action" bson:"action"`
	Actor     string    `json:"actor" bson:"actor"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
	Location  string    `json:"location,omitempty" bson:"location,omitempty"`
	Notes     string    `json:"notes,omitempty" bson:"notes,omitempty"`
}

// Aliquot is a sub-portion of a specimen split out for separate handling.
// Aliquots are never removed, so their synthetic ids are stable.
type Aliquot struct {
	ID        string    `json:"id" bson:"id"`
	CreatedBy string    `json:"createdBy" bson:"createdBy"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	VolumeML  float64   `json:"volumeMl,omitempty" bson:"volumeMl,omitempty"`
	Purpose   string    `json:"purpose,omitempty" bson:"purpose,omitempty"`
}

// SpecimenAccession tracks the physical sample independent of clinical
// content.
type SpecimenAccession struct {
	ID                 string          `json:"id,omitempty" bson:"_id,omitempty"`
	OrderID            string          `json:"orderId" bson:"orderId"`
	AccessionNumber    string          `json:"accessionNumber" bson:"accessionNumber"`
	AccessionedBy      string          `json:"accessionedBy" bson:"accessionedBy"`
	AccessionedAt      time.Time       `json:"accessionedAt" bson:"accessionedAt"`
	Condition          string          `json:"condition" bson:"condition"`
	Status             SpecimenStatus  `json:"status" bson:"status"`
	RejectionReason    RejectionReason `json:"rejectionReason,omitempty" bson:"rejectionReason,omitempty"`
	ChainOfCustody     []CustodyEntry  `json:"chainOfCustody" bson:"chainOfCustody"`
	StorageLocation    string          `json:"storageLocation,omitempty" bson:"storageLocation,omitempty"`
	StorageTemperature string          `json:"storageTemperature,omitempty" bson:"storageTemperature,omitempty"`
	Aliquots           []Aliquot       `json:"aliquots" bson:"aliquots"`
	TimeModel          `bson:",inline"`
}

// AppendCustody appends a chain-of-custody entry. History is append-only;
// there is no removal counterpart.
func (s *SpecimenAccession) AppendCustody(entry CustodyEntry) {
	s.ChainOfCustody = append(s.ChainOfCustody, entry)
}

// NextAliquotID derives the synthetic id for the next aliquot: the accession
// number suffixed with the 1-based position in the current aliquot list.
func (s *SpecimenAccession) NextAliquotID() string {
	return fmt.Sprintf("%s-%d", s.AccessionNumber, len(s.Aliquots)+1)
}
