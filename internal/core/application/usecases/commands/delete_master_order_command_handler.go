package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/masterorder"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/ports"
	"procurement/internal/pkg/errs"
)

// DeleteMasterOrderCommandHandler removes a master order and everything it
// owns. Stored documents are removed from object storage first; if storage
// is unavailable the document keys are written to the blob-cleanup outbox
// inside the same transaction that deletes the records, and a background
// job retries them later. Record deletion is never blocked by storage.
type DeleteMasterOrderCommandHandler struct {
	uowFactory DeleteUoWFactory
	storage    ports.DocumentStorage
	logger     *slog.Logger
}

// NewDeleteMasterOrderCommandHandler creates a handler for cascade deletion.
func NewDeleteMasterOrderCommandHandler(
	uowFactory DeleteUoWFactory,
	storage ports.DocumentStorage,
	logger *slog.Logger,
) DeleteMasterOrderCommandHandler {
	return DeleteMasterOrderCommandHandler{
		uowFactory: uowFactory,
		storage:    storage,
		logger:     logger,
	}
}

// Handle processes the cascade-deletion command.
func (h *DeleteMasterOrderCommandHandler) Handle(ctx context.Context, cmd DeleteMasterOrderCommand) error {
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

	masterRepo := uow.MasterOrderRepository()
	master, err := masterRepo.Get(ctx, cmd.MasterOrderID())
	if err != nil {
		return err
	}

	if err = h.authorize(cmd.Actor(), master); err != nil {
		return err
	}

	orders, err := uow.OrderRepository().GetAllByMasterOrder(ctx, master.ID())
	if err != nil {
		return err
	}

	keys := collectDocumentKeys(orders)
	if len(keys) > 0 {
		if removeErr := h.storage.Remove(ctx, keys); removeErr != nil {
			h.logger.Warn("document removal failed, deferring to cleanup job",
				"masterOrderId", master.ID().String(),
				"keyCount", len(keys),
				"error", removeErr,
			)
			cleanup := ports.BlobCleanup{
				ID:        kernel.NewUUID(),
				Keys:      keys,
				CreatedAt: time.Now().UTC(),
			}
			if err = uow.BlobCleanupRepository().Add(ctx, cleanup); err != nil {
				return err
			}
		}
	}

	if err = uow.OrderRepository().DeleteAllByMasterOrder(ctx, master.ID()); err != nil {
		return err
	}
	if err = masterRepo.Delete(ctx, master.ID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h *DeleteMasterOrderCommandHandler) authorize(actor kernel.Actor, master *masterorder.MasterOrder) error {
	switch actor.Role() {
	case kernel.RoleStation:
		if !actor.ActsFor(master.StationID()) {
			return errs.NewNotAuthorizedError("actor does not act for the station of this master order")
		}
	case kernel.RoleManager, kernel.RoleHandler, kernel.RoleAdmin:
	default:
		return errs.NewNotAuthorizedError(
			fmt.Sprintf("role %s cannot delete master orders", actor.Role()))
	}
	return nil
}

// collectDocumentKeys gathers the document keys of all orders, deduplicated,
// in encounter order.
func collectDocumentKeys(orders []*order.PurchaseOrder) []string {
	var keys []string
	seen := map[string]struct{}{}
	for _, po := range orders {
		for _, key := range po.DocumentKeys() {
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			keys = append(keys, key)
		}
	}
	return keys
}
