package cartrepo

import (
	"context"
	"errors"

	"procurement/internal/core/domain/model/cart"
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCartRepository implements CartRepository using GORM.
type GormCartRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormCartRepository creates a new GORM cart repository.
func NewGormCartRepository(db *gorm.DB, tracker aggregateTracker) *GormCartRepository {
	return &GormCartRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new cart to the database. Inserting a second draft cart for
// the same station violates the partial unique index and is reported as a
// status conflict, so concurrent first-line requests cannot fork the draft.
func (r *GormCartRepository) Add(ctx context.Context, aggregate *cart.Cart) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewStatusConflictError(
				"a draft cart already exists for station " + aggregate.StationID().String())
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing cart to the database. Line rows are replaced
// wholesale; their positions restate the cart's insertion order.
func (r *GormCartRepository) Update(ctx context.Context, aggregate *cart.Cart) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&CartDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"status":          dto.Status,
		"master_order_id": dto.MasterOrderID,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	if err := db.Where("cart_id = ?", dto.ID).Delete(&CartLineDTO{}).Error; err != nil {
		return err
	}
	if len(dto.Lines) > 0 {
		if err := db.Create(&dto.Lines).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a cart by ID.
func (r *GormCartRepository) Get(ctx context.Context, id kernel.UUID) (*cart.Cart, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CartDTO
	err := r.db.WithContext(ctx).Preload("Lines").First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("cart", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetDraftByStation retrieves the station's current draft cart.
func (r *GormCartRepository) GetDraftByStation(ctx context.Context, stationID kernel.UUID) (*cart.Cart, error) {
	if err := stationID.Validate(); err != nil {
		return nil, err
	}

	var dto CartDTO
	err := r.db.WithContext(ctx).Preload("Lines").
		First(&dto, "station_id = ? AND status = ?", stationID.Bytes(), int(cart.StatusDraft)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("draft cart for station", stationID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
