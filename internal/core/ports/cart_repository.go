// Package ports defines the contracts between the procurement core and
// infrastructure: repositories, the unit of work, object storage, reference
// data, and event publishing. These interfaces enable dependency inversion
// and testability.
package ports

import (
	"context"

	"procurement/internal/core/domain/model/cart"
	"procurement/internal/core/domain/model/kernel"
)

// CartRepository defines the persistence contract for cart aggregates.
type CartRepository interface {
	// Add persists a new cart aggregate to storage.
	// The cart must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *cart.Cart) error

	// Update persists changes to an existing cart aggregate.
	// The cart must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *cart.Cart) error

	// Get retrieves a cart aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*cart.Cart, error)

	// GetDraftByStation retrieves the station's current draft cart.
	// Returns an object-not-found error when the station has none.
	GetDraftByStation(ctx context.Context, stationID kernel.UUID) (*cart.Cart, error)
}
