package utils

import (
	"context"
	"labcore-service/internal/pkg/constvars"

	"github.com/google/uuid"
)

func GenerateRequestID() string {
	return uuid.NewString()
}

// ActorFromContext returns the authenticated actor id placed in the context by
// the actor middleware. The engine never authenticates; it only records who
// performed an operation.
func ActorFromContext(ctx context.Context) string {
	actorID, _ := ctx.Value(constvars.CONTEXT_ACTOR_ID_KEY).(string)
	return actorID
}

func RequestIDFromContext(ctx context.Context) string {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	return requestID
}
