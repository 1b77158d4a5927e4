// Package orderrepo provides data transfer objects and mapping functions for
// purchase-order persistence. This package implements the repository pattern
// for the order domain aggregate, handling the conversion between domain
// entities and database representations.
package orderrepo

import (
	"sort"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting purchase-order
// aggregates. Shipment and reception documents are embedded as nullable
// column groups; presence of the proof key decides whether the group is set.
// The version column backs the compare-and-swap in Update.
type OrderDTO struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderNumber   string          `gorm:"type:varchar(32);not null;uniqueIndex"`
	SupplierID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	StationID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	MasterOrderID *uuid.UUID      `gorm:"type:uuid;index"`
	Total         decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Status        int             `gorm:"type:int;not null;index"`
	Shipment      ShipmentDTO     `gorm:"embedded;embeddedPrefix:shipment_"`
	Reception     ReceptionDTO    `gorm:"embedded;embeddedPrefix:reception_"`
	Version       int64           `gorm:"type:bigint;not null"`

	Lines           []OrderLineDTO     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	NonConformities []NonConformityDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	History         []HistoryEntryDTO  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for purchase-order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// ShipmentDTO represents the embedded shipment columns within the order table.
type ShipmentDTO struct {
	Carrier        *string    `gorm:"type:varchar(255)"`
	TrackingNumber *string    `gorm:"type:varchar(255)"`
	ProofKey       *string    `gorm:"type:text"`
	ShippedAt      *time.Time `gorm:""`
}

// ReceptionDTO represents the embedded reception columns within the order table.
type ReceptionDTO struct {
	ProofKey   *string    `gorm:"type:text"`
	ReceivedAt *time.Time `gorm:""`
}

// OrderLineDTO represents one order line with the commercial terms frozen at
// checkout. Position preserves the checkout order of the lines.
type OrderLineDTO struct {
	ID                    uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID               uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position              int             `gorm:"type:int;not null"`
	ProductID             uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity              int             `gorm:"type:int;not null"`
	UnitPrice             decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	PackagingUnit         string          `gorm:"type:varchar(64);not null"`
	QuantityPerPackage    int             `gorm:"type:int;not null"`
	DesiredDeliveryDate   time.Time       `gorm:"not null"`
	ConfirmedDeliveryDate *time.Time      `gorm:""`
	QuantityReceived      int             `gorm:"type:int;not null"`
}

// TableName specifies the database table name for order line entities.
func (OrderLineDTO) TableName() string {
	return "order_lines"
}

// NonConformityDTO represents one reported discrepancy. AtReception separates
// discrepancies reported with the delivery from those raised later.
type NonConformityDTO struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID      `gorm:"type:uuid;not null;index"`
	Position    int            `gorm:"type:int;not null"`
	Description string         `gorm:"type:text;not null"`
	Quantity    int            `gorm:"type:int;not null"`
	PhotoKeys   pq.StringArray `gorm:"type:text[]"`
	AtReception bool           `gorm:"not null"`
}

// TableName specifies the database table name for non-conformity entities.
func (NonConformityDTO) TableName() string {
	return "non_conformities"
}

// HistoryEntryDTO represents one row of the order's append-only status log.
type HistoryEntryDTO struct {
	ID       int64     `gorm:"primaryKey;autoIncrement"`
	OrderID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Position int       `gorm:"type:int;not null"`
	Status   int       `gorm:"type:int;not null"`
	At       time.Time `gorm:"not null"`
	ActorID  uuid.UUID `gorm:"type:uuid;not null"`
}

// TableName specifies the database table name for status history entities.
func (HistoryEntryDTO) TableName() string {
	return "order_status_history"
}

// fromDomain converts a purchase-order domain aggregate to its database
// representation.
func fromDomain(aggregate *order.PurchaseOrder) OrderDTO {
	orderID := aggregate.ID().Bytes()

	var masterOrderID *uuid.UUID
	if id := aggregate.MasterOrderID(); id != nil {
		raw := id.Bytes()
		masterOrderID = &raw
	}

	var shipment ShipmentDTO
	if s := aggregate.Shipment(); s != nil {
		carrier, tracking, proofKey, shippedAt := s.Carrier(), s.TrackingNumber(), s.ProofKey(), s.ShippedAt()
		shipment = ShipmentDTO{
			Carrier:        &carrier,
			TrackingNumber: &tracking,
			ProofKey:       &proofKey,
			ShippedAt:      &shippedAt,
		}
	}

	var reception ReceptionDTO
	if r := aggregate.Reception(); r != nil {
		proofKey, receivedAt := r.ProofKey(), r.ReceivedAt()
		reception = ReceptionDTO{
			ProofKey:   &proofKey,
			ReceivedAt: &receivedAt,
		}
	}

	lines := make([]OrderLineDTO, 0, len(aggregate.Lines()))
	for i, line := range aggregate.Lines() {
		lines = append(lines, OrderLineDTO{
			ID:                    uuid.New(),
			OrderID:               orderID,
			Position:              i,
			ProductID:             line.ProductID().Bytes(),
			Quantity:              line.Quantity(),
			UnitPrice:             line.UnitPrice(),
			PackagingUnit:         line.PackagingUnit(),
			QuantityPerPackage:    line.QuantityPerPackage(),
			DesiredDeliveryDate:   line.DesiredDeliveryDate(),
			ConfirmedDeliveryDate: line.ConfirmedDeliveryDate(),
			QuantityReceived:      line.QuantityReceived(),
		})
	}

	nonConformities := make([]NonConformityDTO, 0,
		len(aggregate.NonConformities())+len(aggregate.LateNonConformities()))
	for i, nc := range aggregate.NonConformities() {
		nonConformities = append(nonConformities, nonConformityFromDomain(orderID, i, nc, true))
	}
	for i, nc := range aggregate.LateNonConformities() {
		nonConformities = append(nonConformities, nonConformityFromDomain(orderID, i, nc, false))
	}

	history := make([]HistoryEntryDTO, 0, len(aggregate.History()))
	for i, entry := range aggregate.History() {
		history = append(history, HistoryEntryDTO{
			OrderID:  orderID,
			Position: i,
			Status:   int(entry.Status),
			At:       entry.At,
			ActorID:  entry.ActorID.Bytes(),
		})
	}

	return OrderDTO{
		ID:              orderID,
		OrderNumber:     aggregate.OrderNumber(),
		SupplierID:      aggregate.SupplierID().Bytes(),
		StationID:       aggregate.StationID().Bytes(),
		MasterOrderID:   masterOrderID,
		Total:           aggregate.Total(),
		Status:          int(aggregate.Status()),
		Shipment:        shipment,
		Reception:       reception,
		Version:         aggregate.Version(),
		Lines:           lines,
		NonConformities: nonConformities,
		History:         history,
	}
}

func nonConformityFromDomain(orderID uuid.UUID, position int, nc order.NonConformity, atReception bool) NonConformityDTO {
	return NonConformityDTO{
		ID:          uuid.New(),
		OrderID:     orderID,
		Position:    position,
		Description: nc.Description(),
		Quantity:    nc.Quantity(),
		PhotoKeys:   pq.StringArray(nc.PhotoKeys()),
		AtReception: atReception,
	}
}

// toDomain converts a database DTO to a purchase-order domain aggregate.
// Reconstructs the complete aggregate including lines, documents,
// non-conformities, and status history using RestorePurchaseOrder.
func toDomain(dto OrderDTO) (*order.PurchaseOrder, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	supplierID, err := kernel.UUIDFromBytes(dto.SupplierID[:])
	if err != nil {
		return nil, err
	}

	stationID, err := kernel.UUIDFromBytes(dto.StationID[:])
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

	var shipment *order.ShipmentInfo
	if dto.Shipment.ProofKey != nil {
		s, sErr := order.NewShipmentInfo(
			stringOrEmpty(dto.Shipment.Carrier),
			stringOrEmpty(dto.Shipment.TrackingNumber),
			*dto.Shipment.ProofKey,
			timeOrZero(dto.Shipment.ShippedAt),
		)
		if sErr != nil {
			return nil, sErr
		}
		shipment = &s
	}

	var reception *order.ReceptionInfo
	if dto.Reception.ProofKey != nil {
		rec, rErr := order.NewReceptionInfo(*dto.Reception.ProofKey, timeOrZero(dto.Reception.ReceivedAt))
		if rErr != nil {
			return nil, rErr
		}
		reception = &rec
	}

	sort.Slice(dto.Lines, func(i, j int) bool {
		return dto.Lines[i].Position < dto.Lines[j].Position
	})
	lines := make([]order.Line, 0, len(dto.Lines))
	for _, lineDto := range dto.Lines {
		line, lineErr := lineToDomain(lineDto)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	sort.Slice(dto.NonConformities, func(i, j int) bool {
		return dto.NonConformities[i].Position < dto.NonConformities[j].Position
	})
	var nonConformities, lateNonConformities []order.NonConformity
	for _, ncDto := range dto.NonConformities {
		nc, ncErr := order.NewNonConformity(ncDto.Description, ncDto.Quantity, []string(ncDto.PhotoKeys))
		if ncErr != nil {
			return nil, ncErr
		}
		if ncDto.AtReception {
			nonConformities = append(nonConformities, nc)
		} else {
			lateNonConformities = append(lateNonConformities, nc)
		}
	}

	sort.Slice(dto.History, func(i, j int) bool {
		return dto.History[i].Position < dto.History[j].Position
	})
	history := make([]order.HistoryEntry, 0, len(dto.History))
	for _, entryDto := range dto.History {
		actorID, actorErr := kernel.UUIDFromBytes(entryDto.ActorID[:])
		if actorErr != nil {
			return nil, actorErr
		}
		history = append(history, order.HistoryEntry{
			Status:  order.Status(entryDto.Status),
			At:      entryDto.At,
			ActorID: actorID,
		})
	}

	return order.RestorePurchaseOrder(
		id,
		dto.OrderNumber,
		supplierID,
		stationID,
		masterOrderID,
		lines,
		dto.Total,
		order.Status(dto.Status),
		shipment,
		reception,
		nonConformities,
		lateNonConformities,
		history,
		dto.Version,
	)
}

func lineToDomain(dto OrderLineDTO) (order.Line, error) {
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return order.Line{}, err
	}

	return order.RestoreLine(
		productID,
		dto.Quantity,
		dto.UnitPrice,
		dto.PackagingUnit,
		dto.QuantityPerPackage,
		dto.DesiredDeliveryDate,
		dto.ConfirmedDeliveryDate,
		dto.QuantityReceived,
	)
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
