package ports

import (
	"context"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for purchase-order
// aggregates.
type OrderRepository interface {
	// Add persists a new purchase-order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.PurchaseOrder) error

	// Update persists changes to an existing purchase-order aggregate.
	// The write is conditional on the version the aggregate was loaded
	// with; a status-conflict error is returned when another transaction
	// changed the order in the meantime.
	Update(ctx context.Context, aggregate *order.PurchaseOrder) error

	// Get retrieves a purchase-order aggregate by its unique identifier.
	// Returns the complete order with lines, documents, non-conformities,
	// and status history.
	Get(ctx context.Context, id kernel.UUID) (*order.PurchaseOrder, error)

	// GetAllByMasterOrder retrieves every purchase order belonging to the
	// given master order, in order-number order.
	GetAllByMasterOrder(ctx context.Context, masterOrderID kernel.UUID) ([]*order.PurchaseOrder, error)

	// Delete removes a purchase order and all of its owned records.
	Delete(ctx context.Context, id kernel.UUID) error

	// DeleteAllByMasterOrder removes every purchase order belonging to the
	// given master order, together with their owned records.
	DeleteAllByMasterOrder(ctx context.Context, masterOrderID kernel.UUID) error
}
