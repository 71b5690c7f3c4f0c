package constvars

// Client messages are safe to render to an end user. Dev messages carry the
// structured detail (entity kind, id, offending field) and stay in the logs.
const (
	ErrClientSomethingWrongWithApplication = "Something went wrong with the application, please try again later"
	ErrClientCannotProcessRequest          = "Cannot process your request, please check your input"
	ErrClientNotAuthorized                 = "You are not authorized to perform this action"
	ErrClientStoreUnavailable              = "The service is temporarily unavailable, please retry"

	ErrClientOrderNotFound          = "Order not found"
	ErrClientPatientNotFound        = "Patient not found"
	ErrClientResultNotFound         = "Result not found"
	ErrClientSpecimenNotFound       = "Specimen record not found"
	ErrClientInvalidTestReference   = "One or more requested tests do not exist in any catalog"
	ErrClientTestNotInOrder         = "The requested test is not part of this order"
	ErrClientAlreadyAccessioned     = "Specimen has already been accessioned"
	ErrClientOrderTerminal          = "Order is in a terminal state and cannot be modified"
	ErrClientInvalidLineItemChange  = "The requested test status change is not allowed"
	ErrClientResultNotReviewable    = "Only preliminary results can be reviewed"
	ErrClientResultNotReviewed      = "Result must be reviewed before approval"
	ErrClientResultNotApproved      = "Result must be approved before finalization"
	ErrClientResultNotAmendable     = "Only finalized results can be amended"
	ErrClientAmendFieldProtected    = "One or more fields cannot be changed through an amendment"
	ErrClientConcurrentModification = "The record was modified by another request, please retry"
)

const (
	ErrDevValidationFailed         = "request payload failed validation"
	ErrDevCannotParseJSON          = "failed to parse JSON request body"
	ErrDevServerProcess            = "unexpected server error"
	ErrDevServerDeadlineExceeded   = "request deadline exceeded"
	ErrDevDBFailedToFindDocument   = "mongodb: failed to find document"
	ErrDevDBFailedToInsertDocument = "mongodb: failed to insert document"
	ErrDevDBFailedToUpdateDocument = "mongodb: failed to update document"
	ErrDevDBNotObjectID            = "mongodb: supplied id is not a valid ObjectID"
	ErrDevRedisSetData             = "redis: failed to set value"
	ErrDevRedisGetData             = "redis: failed to get value"
	ErrDevRedisDeleteData          = "redis: failed to delete key"
	ErrDevRedisIncrementValue      = "redis: failed to increment value"
	ErrDevRedisSetNX               = "redis: failed to set value with NX"
	ErrDevRedisUnlock              = "redis: failed to release lock"
	ErrDevRabbitMQPublish          = "rabbitmq: failed to publish message to queue %s"
	ErrDevMinioPutObject           = "minio: failed to store object in bucket %s"

	ErrDevEntityNotFound          = "%s with id %s does not exist"
	ErrDevTestNotInOrder          = "order %s has no line item for test %s"
	ErrDevInvalidTestReference    = "test id %s resolves in neither the pcr panel catalog nor the test catalog"
	ErrDevAlreadyAccessioned      = "order %s already carries accession number %s"
	ErrDevOrderTerminal           = "order %s is %s and accepts no further transitions"
	ErrDevInvalidLineItemChange   = "line item %s cannot move from %s to %s"
	ErrDevResultInvalidTransition = "result %s in status %s cannot %s"
	ErrDevAmendFieldProtected     = "field %s is lifecycle- or audit-owned and cannot be amended"
	ErrDevLockNotAcquired         = "could not acquire lock %s within the wait budget"
)
