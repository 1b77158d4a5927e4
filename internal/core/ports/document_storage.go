package ports

import (
	"context"
	"io"
)

// DocumentStorage is the object-storage contract for order documents:
// shipment proofs, signed reception proofs, and non-conformity photos.
// The core stores keys only; bytes live behind this port.
type DocumentStorage interface {
	// Put uploads a document and returns nil on success. The key is chosen
	// by the caller; uploading to an existing key overwrites it.
	Put(ctx context.Context, key string, contentType string, body io.Reader) error

	// Remove deletes the given keys. Missing keys are not an error; the
	// returned error aggregates the keys that could not be removed.
	Remove(ctx context.Context, keys []string) error
}
