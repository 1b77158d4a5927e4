// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"procurement/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// CartRepoFactory provides access to the cart repository within a transaction.
	CartRepoFactory interface {
		CartRepository() ports.CartRepository
	}

	// OrderRepoFactory provides access to the purchase-order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// MasterOrderRepoFactory provides access to the master-order repository within a transaction.
	MasterOrderRepoFactory interface {
		MasterOrderRepository() ports.MasterOrderRepository
	}

	// BlobCleanupRepoFactory provides access to the blob-cleanup repository within a transaction.
	BlobCleanupRepoFactory interface {
		BlobCleanupRepository() ports.BlobCleanupRepository
	}

	// CartUoW manages transactions for cart-only operations.
	// Used when commands only modify the cart aggregate.
	CartUoW interface {
		TxManager
		CartRepoFactory
	}

	// CartUoWFactory creates new cart unit of work instances.
	CartUoWFactory interface {
		Create() CartUoW
	}

	// CheckoutUoW manages the cart-to-orders consolidation transaction:
	// one cart update, the new purchase orders, and the new master order
	// commit or roll back together.
	CheckoutUoW interface {
		TxManager
		CartRepoFactory
		OrderRepoFactory
		MasterOrderRepoFactory
	}

	// CheckoutUoWFactory creates new checkout unit of work instances.
	CheckoutUoWFactory interface {
		Create() CheckoutUoW
	}

	// OrderUoW manages transactions that touch a purchase order and its
	// master order, such as status transitions and cancellations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		MasterOrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// DeleteUoW manages the master-order cascade deletion transaction,
	// including the blob-cleanup outbox written when object storage is
	// unavailable.
	DeleteUoW interface {
		TxManager
		OrderRepoFactory
		MasterOrderRepoFactory
		BlobCleanupRepoFactory
	}

	// DeleteUoWFactory creates new deletion unit of work instances.
	DeleteUoWFactory interface {
		Create() DeleteUoW
	}

	// CleanupUoW manages transactions for the blob-cleanup reconciliation job.
	CleanupUoW interface {
		TxManager
		BlobCleanupRepoFactory
	}

	// CleanupUoWFactory creates new cleanup unit of work instances.
	CleanupUoWFactory interface {
		Create() CleanupUoW
	}
)
