package models

type CatalogKind string

const (
	CatalogKindPCRPanel CatalogKind = "pcr_panel"
	CatalogKindTest     CatalogKind = "test"
)

// CatalogTest is an entry in the conventional test catalog.
type CatalogTest struct {
	ID         string   `json:"id,omitempty" bson:"_id,omitempty"`
	Name       string   `json:"name" bson:"name"`
	Code       string   `json:"code,omitempty" bson:"code,omitempty"`
	Price      float64  `json:"price" bson:"price"`
	Department string   `json:"department,omitempty" bson:"department,omitempty"`
	Parameters []string `json:"parameters,omitempty" bson:"parameters,omitempty"`
	TimeModel  `bson:",inline"`
}

// PCRPanel is an entry in the molecular panel catalog.
type PCRPanel struct {
	ID                string   `json:"id,omitempty" bson:"_id,omitempty"`
	Name              string   `json:"name" bson:"name"`
	Code              string   `json:"code,omitempty" bson:"code,omitempty"`
	Price             float64  `json:"price" bson:"price"`
	Targets           []string `json:"targets,omitempty" bson:"targets,omitempty"`
	ResistanceMarkers []string `json:"resistanceMarkers,omitempty" bson:"resistanceMarkers,omitempty"`
	TimeModel         `bson:",inline"`
}

// ResolvedTest is the catalog-independent view of a test reference, tagged
// with the catalog it resolved against.
type ResolvedTest struct {
	TestID      string
	Name        string
	Price       float64
	CatalogKind CatalogKind
}
