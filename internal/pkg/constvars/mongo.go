package constvars

const (
	MongoCollectionOrders             = "orders"
	MongoCollectionResults            = "results"
	MongoCollectionSpecimenAccessions = "specimen_accessions"
	MongoCollectionTests              = "tests"
	MongoCollectionPCRPanels          = "pcr_panels"
	MongoCollectionCounters           = "counters"
	MongoCollectionPatients           = "patients"
)
