package commands

import (
	"context"
	"errors"
	"log/slog"

	"procurement/internal/core/domain/services"
	"procurement/internal/core/ports"
	"procurement/internal/pkg/errs"
)

// CheckoutCartCommandHandler performs the cart-to-orders consolidation.
//
// The handler resolves the commercial terms for every cart line through the
// reference-data gateway, lets the CartConsolidator build one purchase order
// per supplier and the master order over them, and persists all of it in a
// single transaction: N order inserts, one master-order insert, and the cart
// flip to Processed commit or roll back together.
//
// Lines whose (product, supplier) pair has no terms are skipped and logged;
// the checkout still succeeds as long as at least one line survives.
type CheckoutCartCommandHandler struct {
	uowFactory    CheckoutUoWFactory
	referenceData ports.ReferenceDataGateway
	consolidator  services.CartConsolidator
	logger        *slog.Logger
}

// NewCheckoutCartCommandHandler creates a handler for cart checkout.
func NewCheckoutCartCommandHandler(
	uowFactory CheckoutUoWFactory,
	referenceData ports.ReferenceDataGateway,
	logger *slog.Logger,
) CheckoutCartCommandHandler {
	return CheckoutCartCommandHandler{
		uowFactory:    uowFactory,
		referenceData: referenceData,
		consolidator:  services.NewCartConsolidator(),
		logger:        logger,
	}
}

// Handle processes the checkout command and returns the result of the
// consolidation, including the lines that were skipped for missing terms.
func (h *CheckoutCartCommandHandler) Handle(
	ctx context.Context,
	cmd CheckoutCartCommand,
) (services.ConsolidationResult, error) {
	if err := cmd.Validate(); err != nil {
		return services.ConsolidationResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return services.ConsolidationResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	stationID := *cmd.Actor().EntityID()
	shoppingCart, err := uow.CartRepository().GetDraftByStation(ctx, stationID)
	if err != nil {
		return services.ConsolidationResult{}, err
	}

	terms := map[services.TermsKey]services.ProductTerms{}
	for _, line := range shoppingCart.Lines() {
		key := services.TermsKey{ProductID: line.ProductID(), SupplierID: line.SupplierID()}
		productTerms, err := h.referenceData.TermsFor(ctx, line.ProductID(), line.SupplierID())
		if err != nil {
			if errors.Is(err, errs.ErrObjectNotFound) {
				continue
			}
			return services.ConsolidationResult{}, err
		}
		terms[key] = productTerms
	}

	result, err := h.consolidator.Consolidate(shoppingCart, terms, cmd.Actor().ID())
	if err != nil {
		return services.ConsolidationResult{}, err
	}

	orderRepo := uow.OrderRepository()
	for _, po := range result.Orders {
		if err = orderRepo.Add(ctx, po); err != nil {
			return services.ConsolidationResult{}, err
		}
	}
	if err = uow.MasterOrderRepository().Add(ctx, result.MasterOrder); err != nil {
		return services.ConsolidationResult{}, err
	}
	if err = uow.CartRepository().Update(ctx, shoppingCart); err != nil {
		return services.ConsolidationResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return services.ConsolidationResult{}, err
	}

	for _, skipped := range result.SkippedLines {
		h.logger.Warn("cart line skipped at checkout, no supplier terms",
			"cartId", shoppingCart.ID().String(),
			"productId", skipped.ProductID().String(),
			"supplierId", skipped.SupplierID().String(),
		)
	}

	return result, nil
}
