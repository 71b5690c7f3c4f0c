package requests

type AccessionSpecimen struct {
	Condition string `json:"condition,omitempty" validate:"omitempty,specimen_condition"`
	Location  string `json:"location,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

type RejectSpecimen struct {
	Reason   string `json:"reason" validate:"required,rejection_reason"`
	Comments string `json:"comments,omitempty"`
}

type HoldSpecimen struct {
	Reason string `json:"reason" validate:"required"`
	Notes  string `json:"notes,omitempty"`
}

type CustodyEntry struct {
	Action   string `json:"action" validate:"required"`
	Location string `json:"location,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

type CreateAliquot struct {
	VolumeML float64 `json:"volumeMl,omitempty" validate:"omitempty,gt=0"`
	Purpose  string  `json:"purpose,omitempty"`
}

type UpdateStorage struct {
	Location    string `json:"location" validate:"required"`
	Temperature string `json:"temperature,omitempty"`
}
