// Package masterorderrepo provides data transfer objects and mapping
// functions for master-order persistence. Child order identifiers are not
// duplicated here; they are read from the orders table, which carries the
// owning master order as a foreign key.
package masterorderrepo

import (
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/masterorder"
	"procurement/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MasterOrderDTO represents the database structure for persisting
// master-order aggregates. Status and total are caches over the children.
type MasterOrderDTO struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Reference string          `gorm:"type:varchar(32);not null;uniqueIndex"`
	StationID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Status    int             `gorm:"type:int;not null;index"`
	Total     decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	CreatedBy uuid.UUID       `gorm:"type:uuid;not null"`
	CreatedAt time.Time       `gorm:"not null"`
}

// TableName specifies the database table name for master-order entities.
func (MasterOrderDTO) TableName() string {
	return "master_orders"
}

// fromDomain converts a master-order domain aggregate to its database
// representation.
func fromDomain(aggregate *masterorder.MasterOrder) MasterOrderDTO {
	return MasterOrderDTO{
		ID:        aggregate.ID().Bytes(),
		Reference: aggregate.Reference(),
		StationID: aggregate.StationID().Bytes(),
		Status:    int(aggregate.Status()),
		Total:     aggregate.Total(),
		CreatedBy: aggregate.CreatedBy().Bytes(),
		CreatedAt: aggregate.CreatedAt(),
	}
}

// toDomain converts a database DTO plus the child order identifiers to a
// master-order domain aggregate.
func toDomain(dto MasterOrderDTO, orderIDs []uuid.UUID) (*masterorder.MasterOrder, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	stationID, err := kernel.UUIDFromBytes(dto.StationID[:])
	if err != nil {
		return nil, err
	}

	createdBy, err := kernel.UUIDFromBytes(dto.CreatedBy[:])
	if err != nil {
		return nil, err
	}

	children := make([]kernel.UUID, 0, len(orderIDs))
	for _, raw := range orderIDs {
		childID, childErr := kernel.UUIDFromBytes(raw[:])
		if childErr != nil {
			return nil, childErr
		}
		children = append(children, childID)
	}

	return masterorder.RestoreMasterOrder(
		id,
		dto.Reference,
		stationID,
		children,
		order.Status(dto.Status),
		dto.Total,
		createdBy,
		dto.CreatedAt,
	)
}
