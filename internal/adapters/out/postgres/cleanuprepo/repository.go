package cleanuprepo

import (
	"context"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/ports"
	"procurement/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormBlobCleanupRepository implements BlobCleanupRepository using GORM.
type GormBlobCleanupRepository struct {
	db *gorm.DB
}

// NewGormBlobCleanupRepository creates a new GORM blob-cleanup repository.
func NewGormBlobCleanupRepository(db *gorm.DB) *GormBlobCleanupRepository {
	return &GormBlobCleanupRepository{db: db}
}

// Add saves a new cleanup record to the database.
func (r *GormBlobCleanupRepository) Add(ctx context.Context, record ports.BlobCleanup) error {
	if err := record.ID.Validate(); err != nil {
		return err
	}
	if len(record.Keys) == 0 {
		return errs.NewValueIsRequiredError("keys")
	}

	dto := fromRecord(record)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetAllPending retrieves all pending cleanup records, oldest first.
func (r *GormBlobCleanupRepository) GetAllPending(ctx context.Context) ([]ports.BlobCleanup, error) {
	var dtos []BlobCleanupDTO
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	records := make([]ports.BlobCleanup, 0, len(dtos))
	for _, dto := range dtos {
		record, recordErr := toRecord(dto)
		if recordErr != nil {
			return nil, recordErr
		}
		records = append(records, record)
	}

	return records, nil
}

// MarkAttempt increments the attempt counter of a cleanup record.
func (r *GormBlobCleanupRepository) MarkAttempt(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&BlobCleanupDTO{}).
		Where("id = ?", id.Bytes()).
		Update("attempts", gorm.Expr("attempts + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("blob cleanup", id.String())
	}

	return nil
}

// Delete removes a resolved cleanup record.
func (r *GormBlobCleanupRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&BlobCleanupDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("blob cleanup", id.String())
	}

	return nil
}
