package constvars

const (
	LoggingRequestIDKey       = "request_id"
	LoggingMethodKey          = "method"
	LoggingEndpointKey        = "endpoint"
	LoggingRemoteAddrKey      = "remote_addr"
	LoggingUserAgentKey       = "user_agent"
	LoggingQueryKey           = "query"
	LoggingStatusCodeKey      = "status_code"
	LoggingDurationKey        = "duration"
	LoggingSuccessKey         = "success"
	LoggingActorIDKey         = "actor_id"
	LoggingOrderIDKey         = "order_id"
	LoggingOrderNumberKey     = "order_number"
	LoggingAccessionNumberKey = "accession_number"
	LoggingResultIDKey        = "result_id"
	LoggingResultNumberKey    = "result_number"
	LoggingTestIDKey          = "test_id"
	LoggingIdentifierKindKey  = "identifier_kind"
	LoggingRedisKey           = "redis_key"
	LoggingLockValueKey       = "lock_value"
	LoggingEventKey           = "event"
	LoggingQueueKey           = "queue"
	LoggingObjectKey          = "object_key"
)

type contextKey string

const (
	CONTEXT_REQUEST_ID_KEY contextKey = "requestID"
	CONTEXT_ACTOR_ID_KEY   contextKey = "actorID"
	CONTEXT_ACTOR_ROLE_KEY contextKey = "actorRole"
)
