package ports

import (
	"context"
	"time"

	"procurement/internal/core/domain/model/kernel"
)

// BlobCleanup is one pending storage-reconciliation record: document keys
// that could not be removed from object storage when their owning records
// were deleted. Rows are written in the same transaction as the deletion and
// retried by a background job.
type BlobCleanup struct {
	ID        kernel.UUID
	Keys      []string
	Attempts  int
	CreatedAt time.Time
}

// BlobCleanupRepository defines the persistence contract for pending
// blob-cleanup records.
type BlobCleanupRepository interface {
	// Add persists a new cleanup record.
	Add(ctx context.Context, cleanup BlobCleanup) error

	// GetAllPending retrieves every pending cleanup record, oldest first.
	GetAllPending(ctx context.Context) ([]BlobCleanup, error)

	// MarkAttempt increments the record's attempt counter after a failed
	// retry.
	MarkAttempt(ctx context.Context, id kernel.UUID) error

	// Delete removes a record once its keys are gone from storage.
	Delete(ctx context.Context, id kernel.UUID) error
}
