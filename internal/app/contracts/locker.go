package contracts

import (
	"context"
	"time"
)

// LockerService serializes read-modify-write transitions on a single
// aggregate. TryLock returns the lock value needed to release ownership.
type LockerService interface {
	TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error)
	Unlock(ctx context.Context, key, lockValue string) error
}
