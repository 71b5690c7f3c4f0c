package constvars

const (
	CreateOrderSuccessMessage    = "Order created successfully"
	GetOrderSuccessMessage       = "Order retrieved successfully"
	AccessionSuccessMessage      = "Specimen accessioned successfully"
	RejectSpecimenSuccessMessage = "Specimen rejected"
	HoldSpecimenSuccessMessage   = "Specimen placed on hold"
	UpdateLineItemSuccessMessage = "Test status updated successfully"
	AppendCustodySuccessMessage  = "Chain of custody entry recorded"
	CreateAliquotSuccessMessage  = "Aliquot created successfully"
	UpdateStorageSuccessMessage  = "Storage location updated"
	CreateResultSuccessMessage   = "Result created successfully"
	GetResultSuccessMessage      = "Result retrieved successfully"
	ReviewResultSuccessMessage   = "Result reviewed"
	ApproveResultSuccessMessage  = "Result approved"
	FinalizeResultSuccessMessage = "Result finalized"
	AmendResultSuccessMessage    = "Result amended"
)
