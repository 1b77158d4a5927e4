// Package cartrepo provides data transfer objects and mapping functions for cart persistence.
// This package implements the repository pattern for the cart domain aggregate, handling
// the conversion between domain entities and database representations.
package cartrepo

import (
	"sort"
	"time"

	"procurement/internal/core/domain/model/cart"
	"procurement/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CartDTO represents the database structure for persisting cart aggregates.
// One draft cart per station at a time, enforced by a partial unique index
// on station_id over draft rows; processed carts keep their link to the
// master order they produced.
type CartDTO struct {
	ID            uuid.UUID     `gorm:"type:uuid;primaryKey"`
	StationID     uuid.UUID     `gorm:"type:uuid;not null;index;uniqueIndex:ux_carts_station_draft,where:status = 1"`
	CreatedBy     uuid.UUID     `gorm:"type:uuid;not null"`
	Status        int           `gorm:"type:int;not null;index"`
	MasterOrderID *uuid.UUID    `gorm:"type:uuid"`
	Lines         []CartLineDTO `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for cart entities.
func (CartDTO) TableName() string {
	return "carts"
}

// CartLineDTO represents one cart line. Position preserves insertion order,
// which checkout relies on for supplier grouping.
type CartLineDTO struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	CartID              uuid.UUID `gorm:"type:uuid;not null;index"`
	Position            int       `gorm:"type:int;not null"`
	ProductID           uuid.UUID `gorm:"type:uuid;not null"`
	SupplierID          uuid.UUID `gorm:"type:uuid;not null"`
	Quantity            int       `gorm:"type:int;not null"`
	DesiredDeliveryDate time.Time `gorm:"not null"`
}

// TableName specifies the database table name for cart line entities.
func (CartLineDTO) TableName() string {
	return "cart_lines"
}

// fromDomain converts a cart domain aggregate to its database representation.
func fromDomain(aggregate *cart.Cart) CartDTO {
	cartID := aggregate.ID().Bytes()

	var masterOrderID *uuid.UUID
	if id := aggregate.MasterOrderID(); id != nil {
		raw := id.Bytes()
		masterOrderID = &raw
	}

	lines := make([]CartLineDTO, 0, len(aggregate.Lines()))
	for i, line := range aggregate.Lines() {
		lines = append(lines, CartLineDTO{
			ID:                  uuid.New(),
			CartID:              cartID,
			Position:            i,
			ProductID:           line.ProductID().Bytes(),
			SupplierID:          line.SupplierID().Bytes(),
			Quantity:            line.Quantity(),
			DesiredDeliveryDate: line.DesiredDeliveryDate(),
		})
	}

	return CartDTO{
		ID:            cartID,
		StationID:     aggregate.StationID().Bytes(),
		CreatedBy:     aggregate.CreatedBy().Bytes(),
		Status:        int(aggregate.Status()),
		MasterOrderID: masterOrderID,
		Lines:         lines,
	}
}

// toDomain converts a database DTO to a cart domain aggregate.
func toDomain(dto CartDTO) (*cart.Cart, error) {
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

	var masterOrderID *kernel.UUID
	if dto.MasterOrderID != nil {
		mID, mErr := kernel.UUIDFromBytes((*dto.MasterOrderID)[:])
		if mErr != nil {
			return nil, mErr
		}
		masterOrderID = &mID
	}

	sort.Slice(dto.Lines, func(i, j int) bool {
		return dto.Lines[i].Position < dto.Lines[j].Position
	})

	lines := make([]cart.Line, 0, len(dto.Lines))
	for _, lineDto := range dto.Lines {
		line, lineErr := lineToDomain(lineDto)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	return cart.RestoreCart(id, stationID, createdBy, cart.Status(dto.Status), lines, masterOrderID)
}

func lineToDomain(dto CartLineDTO) (cart.Line, error) {
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return cart.Line{}, err
	}

	supplierID, err := kernel.UUIDFromBytes(dto.SupplierID[:])
	if err != nil {
		return cart.Line{}, err
	}

	return cart.NewLine(productID, supplierID, dto.Quantity, dto.DesiredDeliveryDate)
}
