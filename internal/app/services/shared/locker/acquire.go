package locker

import (
	"context"
	"labcore-service/internal/app/contracts"
	"labcore-service/internal/pkg/exceptions"
	"time"
)

const retryInterval = 25 * time.Millisecond

// OrderKey is the lock key serializing all transitions on one order.
func OrderKey(orderID string) string {
	return "order-lock:" + orderID
}

// ResultKey is the lock key serializing all transitions on one result.
func ResultKey(resultID string) string {
	return "result-lock:" + resultID
}

// Acquire polls TryLock until it succeeds or the wait budget is spent, then
// reports the contention as a ConcurrentModification failure. The returned
// lock value must be handed back to Unlock.
func Acquire(ctx context.Context, locker contracts.LockerService, key string, expiration, waitBudget time.Duration) (string, error) {
	deadline := time.Now().Add(waitBudget)
	for {
		acquired, lockValue, err := locker.TryLock(ctx, key, expiration)
		if err != nil {
			return "", err
		}
		if acquired {
			return lockValue, nil
		}
		if time.Now().After(deadline) {
			return "", exceptions.ErrConcurrentModification(key)
		}
		select {
		case <-ctx.Done():
			return "", exceptions.ErrConcurrentModification(key)
		case <-time.After(retryInterval):
		}
	}
}
