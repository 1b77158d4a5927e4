// Package postgres implements the unit-of-work port on top of GORM.
//
// A unit of work wraps one database transaction and hands out repositories
// bound to it, so a command handler can touch the cart, its purchase orders,
// the master order, and the blob-cleanup outbox and have all of it commit or
// roll back together. Checkout and master-order deletion depend on this:
// checkout writes one cart update, N purchase orders, and one master order as
// a single atomic unit.
//
// A typical handler drives it like this:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//
//	if err := uow.OrderRepository().Update(ctx, purchaseOrder); err != nil {
//	    uow.Rollback(ctx)
//	    return err
//	}
//	if err := uow.MasterOrderRepository().Update(ctx, master); err != nil {
//	    uow.Rollback(ctx)
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Instances are not safe for concurrent use; every business operation creates
// its own via the factory. Isolation between concurrent transitions of the
// same purchase order is handled separately by the version column checked on
// update.
package postgres

import (
	"context"

	"procurement/internal/adapters/out/postgres/cartrepo"
	"procurement/internal/adapters/out/postgres/cleanuprepo"
	"procurement/internal/adapters/out/postgres/masterorderrepo"
	"procurement/internal/adapters/out/postgres/orderrepo"
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate records an aggregate the current transaction touched. The
// list is the hook for post-commit processing such as event publishing.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate interface{} // Will be changed to a common Aggregate interface in the future
}

// GormUnitOfWorkFactory builds unit-of-work instances over a shared GORM
// connection. Handlers receive the factory, never a unit of work directly, so
// every invocation starts from a clean transaction state.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory wires the factory to an open GORM connection. All
// units of work it creates share that connection pool.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create returns a fresh unit of work with no open transaction and an empty
// tracked-aggregate list.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork holds one GORM transaction and the aggregates modified
// through its repositories. Before Begin (and after Commit or Rollback) the
// repository getters fall back to the non-transactional connection, which the
// read-only paths rely on.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin opens the transaction. Calling Begin again while a transaction is
// open is a no-op; nested transactions are never created.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		return uow.tx.Error
	}

	return nil
}

// Commit makes every change written through the unit of work permanent and
// closes the transaction. Committing without an open transaction returns
// gorm.ErrInvalidTransaction.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards every change made since Begin and closes the transaction.
// Rolling back without an open transaction returns gorm.ErrInvalidTransaction.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// CartRepository returns a cart repository bound to the open transaction, or
// to the plain connection when no transaction is open. Carts written through
// it are tracked as modified aggregates.
func (uow *GormUnitOfWork) CartRepository() ports.CartRepository {
	return cartrepo.NewGormCartRepository(uow.session(), uow)
}

// OrderRepository returns a purchase-order repository bound to the open
// transaction, or to the plain connection when no transaction is open.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.session(), uow)
}

// MasterOrderRepository returns a master-order repository bound to the open
// transaction, or to the plain connection when no transaction is open.
func (uow *GormUnitOfWork) MasterOrderRepository() ports.MasterOrderRepository {
	return masterorderrepo.NewGormMasterOrderRepository(uow.session(), uow)
}

// BlobCleanupRepository provides access to the blob-cleanup outbox within the
// unit of work. Cleanup records are plain data, not aggregates, so they are
// not tracked.
func (uow *GormUnitOfWork) BlobCleanupRepository() ports.BlobCleanupRepository {
	return cleanuprepo.NewGormBlobCleanupRepository(uow.session())
}

// TrackAggregate records an aggregate as modified in this unit of work.
// Repositories call it on successful adds and updates.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) session() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
