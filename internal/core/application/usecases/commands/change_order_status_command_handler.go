package commands

import (
	"context"
	"log/slog"
	"time"

	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/ports"
)

// ChangeOrderStatusCommandHandler applies a lifecycle transition to a
// purchase order and keeps the parent master order's cached aggregate status
// in step, all in one transaction. The conditional repository update
// serializes concurrent transitions on the same order; the loser gets a
// status-conflict error.
//
// A status-changed event is published after the transaction commits.
// Publishing is best effort: a broker failure is logged, never surfaced, and
// never rolls back the transition.
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewChangeOrderStatusCommandHandler creates a handler for status transitions.
func NewChangeOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the status-transition command.
func (h *ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) error {
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

	if err = purchaseOrder.Transition(cmd.Target(), cmd.Actor(), cmd.Payload()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, purchaseOrder); err != nil {
		return err
	}

	if masterID := purchaseOrder.MasterOrderID(); masterID != nil {
		if err = h.refreshMasterStatus(ctx, uow, purchaseOrder); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publish(ctx, purchaseOrder, cmd)
	return nil
}

// refreshMasterStatus recomputes the parent's cached status from all sibling
// statuses as they stand inside the transaction.
func (h *ChangeOrderStatusCommandHandler) refreshMasterStatus(
	ctx context.Context,
	uow OrderUoW,
	purchaseOrder *order.PurchaseOrder,
) error {
	masterRepo := uow.MasterOrderRepository()
	master, err := masterRepo.Get(ctx, *purchaseOrder.MasterOrderID())
	if err != nil {
		return err
	}

	siblings, err := uow.OrderRepository().GetAllByMasterOrder(ctx, master.ID())
	if err != nil {
		return err
	}

	statuses := make([]order.Status, 0, len(siblings))
	for _, sibling := range siblings {
		statuses = append(statuses, sibling.Status())
	}

	changed, err := master.RefreshStatus(statuses)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	return masterRepo.Update(ctx, master)
}

func (h *ChangeOrderStatusCommandHandler) publish(
	ctx context.Context,
	purchaseOrder *order.PurchaseOrder,
	cmd ChangeOrderStatusCommand,
) {
	event := ports.OrderStatusChangedEvent{
		OrderID:       purchaseOrder.ID(),
		OrderNumber:   purchaseOrder.OrderNumber(),
		MasterOrderID: purchaseOrder.MasterOrderID(),
		Status:        purchaseOrder.Status(),
		ChangedBy:     cmd.Actor().ID(),
		ChangedAt:     time.Now().UTC(),
	}

	if err := h.publisher.PublishOrderStatusChanged(ctx, event); err != nil {
		h.logger.Error("failed to publish order status change",
			"orderId", purchaseOrder.ID().String(),
			"status", purchaseOrder.Status().String(),
			"error", err,
		)
	}
}
