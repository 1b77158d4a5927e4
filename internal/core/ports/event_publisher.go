package ports

import (
	"context"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
)

// OrderStatusChangedEvent notifies downstream consumers that a purchase
// order moved to a new status. Published after the owning transaction
// commits; delivery is best effort.
type OrderStatusChangedEvent struct {
	OrderID       kernel.UUID
	OrderNumber   string
	MasterOrderID *kernel.UUID
	Status        order.Status
	ChangedBy     kernel.UUID
	ChangedAt     time.Time
}

// EventPublisher is the outbound messaging contract for domain events.
type EventPublisher interface {
	// PublishOrderStatusChanged emits a status-changed event.
	PublishOrderStatusChanged(ctx context.Context, event OrderStatusChangedEvent) error
}
