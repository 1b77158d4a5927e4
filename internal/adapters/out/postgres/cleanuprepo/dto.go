// Package cleanuprepo persists blob-cleanup outbox records. A record holds
// the document keys that could not be removed from object storage while
// their owning master order was being deleted; a background job drains the
// table and retries the removal.
package cleanuprepo

import (
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/ports"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// BlobCleanupDTO represents the database structure for a pending blob
// cleanup record.
type BlobCleanupDTO struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Keys      pq.StringArray `gorm:"type:text[];not null"`
	Attempts  int            `gorm:"type:int;not null;default:0"`
	CreatedAt time.Time      `gorm:"not null"`
}

// TableName specifies the database table name for blob cleanup records.
func (BlobCleanupDTO) TableName() string {
	return "blob_cleanups"
}

func fromRecord(record ports.BlobCleanup) BlobCleanupDTO {
	return BlobCleanupDTO{
		ID:        record.ID.Bytes(),
		Keys:      pq.StringArray(record.Keys),
		Attempts:  record.Attempts,
		CreatedAt: record.CreatedAt,
	}
}

func toRecord(dto BlobCleanupDTO) (ports.BlobCleanup, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.BlobCleanup{}, err
	}

	return ports.BlobCleanup{
		ID:        id,
		Keys:      []string(dto.Keys),
		Attempts:  dto.Attempts,
		CreatedAt: dto.CreatedAt,
	}, nil
}
