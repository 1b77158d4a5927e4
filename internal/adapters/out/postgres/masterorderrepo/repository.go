package masterorderrepo

import (
	"context"
	"errors"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/masterorder"
	"procurement/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormMasterOrderRepository implements MasterOrderRepository using GORM.
type GormMasterOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormMasterOrderRepository creates a new GORM master-order repository.
func NewGormMasterOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormMasterOrderRepository {
	return &GormMasterOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new master order to the database. Child orders are persisted
// separately by the order repository; only the aggregate row is written here.
func (r *GormMasterOrderRepository) Add(ctx context.Context, aggregate *masterorder.MasterOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing master order. Only the mutable cache columns are
// written; reference, station and creator are immutable after creation.
func (r *GormMasterOrderRepository) Update(ctx context.Context, aggregate *masterorder.MasterOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&MasterOrderDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"status": dto.Status,
			"total":  dto.Total,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("master order", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a master order by ID together with its child order IDs.
func (r *GormMasterOrderRepository) Get(ctx context.Context, id kernel.UUID) (*masterorder.MasterOrder, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto MasterOrderDTO
	err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("master order", id.String())
		}
		return nil, err
	}

	orderIDs, err := r.childOrderIDs(ctx, dto.ID)
	if err != nil {
		return nil, err
	}

	return toDomain(dto, orderIDs)
}

// GetAllByStation retrieves all master orders for a station, newest first.
func (r *GormMasterOrderRepository) GetAllByStation(ctx context.Context, stationID kernel.UUID) ([]*masterorder.MasterOrder, error) {
	if err := stationID.Validate(); err != nil {
		return nil, err
	}

	var dtos []MasterOrderDTO
	err := r.db.WithContext(ctx).
		Where("station_id = ?", stationID.Bytes()).
		Order("created_at DESC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return r.restoreAll(ctx, dtos)
}

// GetAll retrieves all master orders, newest first.
func (r *GormMasterOrderRepository) GetAll(ctx context.Context) ([]*masterorder.MasterOrder, error) {
	var dtos []MasterOrderDTO
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return r.restoreAll(ctx, dtos)
}

// Delete removes a master order row. Child orders must be deleted first by
// the caller; this method does not cascade.
func (r *GormMasterOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&MasterOrderDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("master order", id.String())
	}

	return nil
}

func (r *GormMasterOrderRepository) restoreAll(ctx context.Context, dtos []MasterOrderDTO) ([]*masterorder.MasterOrder, error) {
	aggregates := make([]*masterorder.MasterOrder, 0, len(dtos))
	for _, dto := range dtos {
		orderIDs, err := r.childOrderIDs(ctx, dto.ID)
		if err != nil {
			return nil, err
		}

		aggregate, err := toDomain(dto, orderIDs)
		if err != nil {
			return nil, err
		}
		aggregates = append(aggregates, aggregate)
	}

	return aggregates, nil
}

func (r *GormMasterOrderRepository) childOrderIDs(ctx context.Context, masterID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Table("orders").
		Where("master_order_id = ?", masterID).
		Order("order_number ASC").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}

	return ids, nil
}
