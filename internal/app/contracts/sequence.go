package contracts

import (
	"context"
	"time"
)

type IdentifierKind string

const (
	IdentifierKindOrder     IdentifierKind = "order"
	IdentifierKindAccession IdentifierKind = "accession"
	IdentifierKindResult    IdentifierKind = "result"
)

// CounterRepository is the atomic fetch-and-increment primitive backing
// identifier minting. IncrementAndGet must be atomic with respect to
// concurrent callers on the same (kind, dayKey) pair.
type CounterRepository interface {
	IncrementAndGet(ctx context.Context, kind IdentifierKind, dayKey string) (int64, error)
	SeedIfAbsent(ctx context.Context, kind IdentifierKind, dayKey string, seed int64) error
}

// SequenceService mints day-scoped business identifiers. Minting never fails
// for data reasons; only store unavailability surfaces as an error.
type SequenceService interface {
	Next(ctx context.Context, kind IdentifierKind, date time.Time) (string, error)
}
