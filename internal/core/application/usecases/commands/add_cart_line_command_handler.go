package commands

import (
	"context"
	"errors"

	"procurement/internal/core/domain/model/cart"
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/errs"
)

// AddCartLineCommandHandler handles cart line upserts. Loads the station's
// draft cart, creating one on first use, and persists the changed lines.
type AddCartLineCommandHandler struct {
	uowFactory CartUoWFactory
}

// NewAddCartLineCommandHandler creates a handler for cart editing operations.
func NewAddCartLineCommandHandler(uowFactory CartUoWFactory) AddCartLineCommandHandler {
	return AddCartLineCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the add-cart-line command.
// A station without a draft cart gets a fresh one; the line upsert then
// follows the cart's own uniqueness rule for (product, supplier) pairs.
//
// Two racing first-line requests both try to create the draft; the database's
// one-draft-per-station index rejects the loser with a status conflict. The
// winner's cart is committed by then, so a single second pass finds it and
// upserts into it instead.
func (h *AddCartLineCommandHandler) Handle(ctx context.Context, cmd AddCartLineCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	err := h.upsertLine(ctx, cmd)
	if errors.Is(err, errs.ErrStatusConflict) {
		err = h.upsertLine(ctx, cmd)
	}
	return err
}

func (h *AddCartLineCommandHandler) upsertLine(ctx context.Context, cmd AddCartLineCommand) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cartRepo := uow.CartRepository()

	stationID := *cmd.Actor().EntityID()
	shoppingCart, err := cartRepo.GetDraftByStation(ctx, stationID)

	created := false
	switch {
	case err == nil:
	case errors.Is(err, errs.ErrObjectNotFound):
		shoppingCart, err = cart.NewCart(kernel.NewUUID(), stationID, cmd.Actor().ID())
		if err != nil {
			return err
		}
		created = true
	default:
		return err
	}

	if err = shoppingCart.UpsertLine(
		cmd.ProductID(), cmd.SupplierID(), cmd.Quantity(), cmd.DesiredDeliveryDate(),
	); err != nil {
		return err
	}

	if created {
		err = cartRepo.Add(ctx, shoppingCart)
	} else {
		err = cartRepo.Update(ctx, shoppingCart)
	}
	if err != nil {
		return err
	}

	return uow.Commit(ctx)
}
