package ports

import (
	"context"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/masterorder"
)

// MasterOrderRepository defines the persistence contract for master-order
// aggregates.
type MasterOrderRepository interface {
	// Add persists a new master-order aggregate to storage.
	Add(ctx context.Context, aggregate *masterorder.MasterOrder) error

	// Update persists changes to an existing master-order aggregate,
	// including its cached status and total.
	Update(ctx context.Context, aggregate *masterorder.MasterOrder) error

	// Get retrieves a master-order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*masterorder.MasterOrder, error)

	// GetAllByStation retrieves a station's master orders, newest first.
	GetAllByStation(ctx context.Context, stationID kernel.UUID) ([]*masterorder.MasterOrder, error)

	// GetAll retrieves every master order, newest first.
	GetAll(ctx context.Context) ([]*masterorder.MasterOrder, error)

	// Delete removes a master order. Child purchase orders are deleted
	// separately via OrderRepository before this call.
	Delete(ctx context.Context, id kernel.UUID) error
}
