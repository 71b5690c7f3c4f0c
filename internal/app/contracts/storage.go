package contracts

import "context"

// ObjectStorage archives raw instrument payloads for traceability.
type ObjectStorage interface {
	PutJSON(ctx context.Context, objectKey string, data []byte) (string, error)
}
