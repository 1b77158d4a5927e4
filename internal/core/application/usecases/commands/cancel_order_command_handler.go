package commands

import (
	"context"
)

// CancelOrderCommandHandler deletes a Registered purchase order, detaches it
// from its master order, and re-totals the master. A master left without
// children is deleted with it. All writes share one transaction.
//
// Registered orders have no documents yet, so cancellation never touches
// object storage.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the cancellation command.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	purchaseOrder, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = purchaseOrder.CancelableBy(cmd.Actor()); err != nil {
		return err
	}

	if err = orderRepo.Delete(ctx, purchaseOrder.ID()); err != nil {
		return err
	}

	if masterID := purchaseOrder.MasterOrderID(); masterID != nil {
		masterRepo := uow.MasterOrderRepository()
		master, err := masterRepo.Get(ctx, *masterID)
		if err != nil {
			return err
		}

		if err = master.DetachOrder(purchaseOrder.ID(), purchaseOrder.Total()); err != nil {
			return err
		}

		if master.IsEmpty() {
			err = masterRepo.Delete(ctx, master.ID())
		} else {
			err = masterRepo.Update(ctx, master)
		}
		if err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
