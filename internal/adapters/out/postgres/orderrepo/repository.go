package orderrepo

import (
	"context"
	"errors"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM purchase-order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new purchase order to the database, including lines and the
// initial history entry. The version column starts at zero.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.PurchaseOrder) error {
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

// Update saves an existing purchase order conditionally on the version it was
// loaded with. A lost compare-and-swap means another transaction changed the
// order first and surfaces as a status conflict. Child rows are replaced
// wholesale within the same transaction.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.PurchaseOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(map[string]any{
			"master_order_id":          dto.MasterOrderID,
			"status":                   dto.Status,
			"shipment_carrier":         dto.Shipment.Carrier,
			"shipment_tracking_number": dto.Shipment.TrackingNumber,
			"shipment_proof_key":       dto.Shipment.ProofKey,
			"shipment_shipped_at":      dto.Shipment.ShippedAt,
			"reception_proof_key":      dto.Reception.ProofKey,
			"reception_received_at":    dto.Reception.ReceivedAt,
			"version":                  dto.Version + 1,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := db.Model(&OrderDTO{}).Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("order", aggregate.ID().String())
		}
		return errs.NewStatusConflictError("order was changed concurrently")
	}

	if err := r.replaceChildren(db, dto); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormOrderRepository) replaceChildren(db *gorm.DB, dto OrderDTO) error {
	if err := db.Where("order_id = ?", dto.ID).Delete(&OrderLineDTO{}).Error; err != nil {
		return err
	}
	if err := db.Where("order_id = ?", dto.ID).Delete(&NonConformityDTO{}).Error; err != nil {
		return err
	}
	if err := db.Where("order_id = ?", dto.ID).Delete(&HistoryEntryDTO{}).Error; err != nil {
		return err
	}

	if len(dto.Lines) > 0 {
		if err := db.Create(&dto.Lines).Error; err != nil {
			return err
		}
	}
	if len(dto.NonConformities) > 0 {
		if err := db.Create(&dto.NonConformities).Error; err != nil {
			return err
		}
	}
	if len(dto.History) > 0 {
		if err := db.Create(&dto.History).Error; err != nil {
			return err
		}
	}

	return nil
}

// Get retrieves a purchase order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.PurchaseOrder, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Lines").Preload("NonConformities").Preload("History").
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllByMasterOrder retrieves every purchase order of a master order.
func (r *GormOrderRepository) GetAllByMasterOrder(
	ctx context.Context,
	masterOrderID kernel.UUID,
) ([]*order.PurchaseOrder, error) {
	if err := masterOrderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Lines").Preload("NonConformities").Preload("History").
		Order("order_number").
		Find(&dtos, "master_order_id = ?", masterOrderID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.PurchaseOrder, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// Delete removes a purchase order together with its owned rows.
func (r *GormOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	return r.deleteWhere(ctx, "id = ?", id.Bytes())
}

// DeleteAllByMasterOrder removes every purchase order of a master order
// together with their owned rows.
func (r *GormOrderRepository) DeleteAllByMasterOrder(ctx context.Context, masterOrderID kernel.UUID) error {
	if err := masterOrderID.Validate(); err != nil {
		return err
	}

	return r.deleteWhere(ctx, "master_order_id = ?", masterOrderID.Bytes())
}

func (r *GormOrderRepository) deleteWhere(ctx context.Context, query string, arg any) error {
	db := r.db.WithContext(ctx)

	childFilter := db.Model(&OrderDTO{}).Select("id").Where(query, arg)
	if err := db.Where("order_id IN (?)", childFilter).Delete(&OrderLineDTO{}).Error; err != nil {
		return err
	}
	if err := db.Where("order_id IN (?)", childFilter).Delete(&NonConformityDTO{}).Error; err != nil {
		return err
	}
	if err := db.Where("order_id IN (?)", childFilter).Delete(&HistoryEntryDTO{}).Error; err != nil {
		return err
	}

	return db.Where(query, arg).Delete(&OrderDTO{}).Error
}
