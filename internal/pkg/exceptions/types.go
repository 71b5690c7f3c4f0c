package exceptions

import (
	"fmt"
	"labcore-service/internal/pkg/constvars"
)

var (
	ErrInputValidation = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, FormatFirstValidationError(err), constvars.ErrDevValidationFailed)
	}
	ErrCannotParseJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCannotParseJSON)
	}
	ErrServerProcess = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientCannotProcessRequest, constvars.ErrDevServerProcess)
	}
	ErrServerDeadlineExceeded = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusGatewayTimeout, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevServerDeadlineExceeded)
	}

	// Lifecycle taxonomy. Each failure carries the entity kind, id, and the
	// offending field in the dev message so callers can render a precise cause.
	ErrEntityNotFound = func(entityKind, entityID string) *CustomError {
		clientMessage := constvars.ErrClientCannotProcessRequest
		switch entityKind {
		case "order":
			clientMessage = constvars.ErrClientOrderNotFound
		case "patient":
			clientMessage = constvars.ErrClientPatientNotFound
		case "result":
			clientMessage = constvars.ErrClientResultNotFound
		case "specimen":
			clientMessage = constvars.ErrClientSpecimenNotFound
		}
		return BuildNewCustomError(nil, constvars.StatusNotFound, clientMessage, fmt.Sprintf(constvars.ErrDevEntityNotFound, entityKind, entityID))
	}
	ErrInvalidTestReference = func(testID string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusUnprocessableEntity, constvars.ErrClientInvalidTestReference, fmt.Sprintf(constvars.ErrDevInvalidTestReference, testID))
	}
	ErrTestNotInOrder = func(orderID, testID string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusUnprocessableEntity, constvars.ErrClientTestNotInOrder, fmt.Sprintf(constvars.ErrDevTestNotInOrder, orderID, testID))
	}
	ErrAlreadyAccessioned = func(orderID, accessionNumber string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusConflict, constvars.ErrClientAlreadyAccessioned, fmt.Sprintf(constvars.ErrDevAlreadyAccessioned, orderID, accessionNumber))
	}
	ErrOrderTerminal = func(orderID, status string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusConflict, constvars.ErrClientOrderTerminal, fmt.Sprintf(constvars.ErrDevOrderTerminal, orderID, status))
	}
	ErrInvalidLineItemTransition = func(testID, fromStatus, toStatus string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusConflict, constvars.ErrClientInvalidLineItemChange, fmt.Sprintf(constvars.ErrDevInvalidLineItemChange, testID, fromStatus, toStatus))
	}
	ErrResultInvalidTransition = func(resultID, status, attempted string, clientMessage string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusConflict, clientMessage, fmt.Sprintf(constvars.ErrDevResultInvalidTransition, resultID, status, attempted))
	}
	ErrAmendFieldProtected = func(field string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusBadRequest, constvars.ErrClientAmendFieldProtected, fmt.Sprintf(constvars.ErrDevAmendFieldProtected, field))
	}
	ErrConcurrentModification = func(lockKey string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusConflict, constvars.ErrClientConcurrentModification, fmt.Sprintf(constvars.ErrDevLockNotAcquired, lockKey))
	}

	// Mongo DB
	ErrMongoDBFindDocument = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusServiceUnavailable, constvars.ErrClientStoreUnavailable, constvars.ErrDevDBFailedToFindDocument)
	}
	ErrMongoDBInsertDocument = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusServiceUnavailable, constvars.ErrClientStoreUnavailable, constvars.ErrDevDBFailedToInsertDocument)
	}
	ErrMongoDBUpdateDocument = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusServiceUnavailable, constvars.ErrClientStoreUnavailable, constvars.ErrDevDBFailedToUpdateDocument)
	}
	ErrMongoDBNotObjectID = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevDBNotObjectID)
	}

	// Redis
	ErrRedisSet = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusServiceUnavailable, constvars.ErrClientStoreUnavailable, constvars.ErrDevRedisSetData)
	}
	ErrRedisGet = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusServiceUnavailable, constvars.ErrClientStoreUnavailable, constvars.ErrDevRedisGetData)
	}
	ErrRedisDelete = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusServiceUnavailable, constvars.ErrClientStoreUnavailable, constvars.ErrDevRedisDeleteData)
	}
	ErrRedisIncrement = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusServiceUnavailable, constvars.ErrClientStoreUnavailable, constvars.ErrDevRedisIncrementValue)
	}
	ErrRedisSetNX = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusServiceUnavailable, constvars.ErrClientStoreUnavailable, constvars.ErrDevRedisSetNX)
	}
	ErrRedisUnlock = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisUnlock)
	}

	// RabbitMQ
	ErrRabbitMQPublishMessage = func(err error, queueName string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusServiceUnavailable, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevRabbitMQPublish, queueName))
	}

	// Minio
	ErrMinioCreateObject = func(err error, bucketName string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusServiceUnavailable, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevMinioPutObject, bucketName))
	}
)
