package services

import (
	"fmt"

	"procurement/internal/core/domain/model/cart"
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/masterorder"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ProductTerms are the commercial conditions a supplier quotes for a product
// at checkout time. The values are frozen into the order lines so later
// catalogue changes never rewrite an already placed order.
type ProductTerms struct {
	UnitPrice          decimal.Decimal
	PackagingUnit      string
	QuantityPerPackage int
}

// TermsKey addresses the terms for one (product, supplier) pair.
type TermsKey struct {
	ProductID  kernel.UUID
	SupplierID kernel.UUID
}

// ConsolidationResult is the outcome of a cart checkout: the master order,
// its child purchase orders, and the cart lines that were skipped because
// no supplier terms exist for them.
type ConsolidationResult struct {
	MasterOrder  *masterorder.MasterOrder
	Orders       []*order.PurchaseOrder
	SkippedLines []cart.Line
}

// CartConsolidator is a domain service that converts a draft cart into
// purchase orders, one per supplier appearing in the cart, grouped under a
// freshly created master order.
//
// Business rules:
//   - Supplier groups keep the first-appearance order of the cart lines
//   - Lines without supplier terms are skipped, not failed; the caller
//     decides how to report them
//   - A cart whose every line is skipped produces nothing and fails
//   - Order and master order numbers are generated here, never supplied
//   - The cart leaves as Processed, linked to the master order
type CartConsolidator struct{}

// NewCartConsolidator creates a new CartConsolidator instance.
func NewCartConsolidator() CartConsolidator {
	return CartConsolidator{}
}

// Consolidate performs the checkout. The terms map must be resolved by the
// caller before the call; createdBy is stamped on every produced aggregate.
// On success the cart is mutated to Processed.
func (s CartConsolidator) Consolidate(
	shoppingCart *cart.Cart,
	terms map[TermsKey]ProductTerms,
	createdBy kernel.UUID,
) (ConsolidationResult, error) {
	if err := shoppingCart.Validate(); err != nil {
		return ConsolidationResult{}, err
	}
	if shoppingCart.Status() != cart.StatusDraft {
		return ConsolidationResult{}, cart.ErrCartIsProcessed
	}
	if shoppingCart.IsEmpty() {
		return ConsolidationResult{}, errs.NewValueIsRequiredError("cart lines")
	}

	var (
		supplierIDs []kernel.UUID
		groups      = map[kernel.UUID][]order.Line{}
		skipped     []cart.Line
	)
	for _, line := range shoppingCart.Lines() {
		productTerms, ok := terms[TermsKey{ProductID: line.ProductID(), SupplierID: line.SupplierID()}]
		if !ok {
			skipped = append(skipped, line)
			continue
		}

		orderLine, err := order.NewLine(
			line.ProductID(),
			line.Quantity(),
			productTerms.UnitPrice,
			productTerms.PackagingUnit,
			productTerms.QuantityPerPackage,
			line.DesiredDeliveryDate(),
		)
		if err != nil {
			return ConsolidationResult{}, err
		}

		if _, seen := groups[line.SupplierID()]; !seen {
			supplierIDs = append(supplierIDs, line.SupplierID())
		}
		groups[line.SupplierID()] = append(groups[line.SupplierID()], orderLine)
	}

	if len(supplierIDs) == 0 {
		return ConsolidationResult{}, errs.NewValueIsInvalidErrorWithCause("cart lines",
			fmt.Errorf("no supplier terms found for any of the %d lines", len(skipped)))
	}

	orders := make([]*order.PurchaseOrder, 0, len(supplierIDs))
	for _, supplierID := range supplierIDs {
		po, err := order.NewPurchaseOrder(
			kernel.NewUUID(),
			kernel.NewOrderNumber(),
			supplierID,
			shoppingCart.StationID(),
			groups[supplierID],
			createdBy,
		)
		if err != nil {
			return ConsolidationResult{}, err
		}
		orders = append(orders, po)
	}

	master, err := masterorder.NewMasterOrder(
		kernel.NewUUID(),
		kernel.NewMasterReference(),
		shoppingCart.StationID(),
		orders,
		createdBy,
	)
	if err != nil {
		return ConsolidationResult{}, err
	}

	for _, po := range orders {
		if err := po.AttachToMaster(master.ID()); err != nil {
			return ConsolidationResult{}, err
		}
	}
	if err := shoppingCart.MarkProcessed(master.ID()); err != nil {
		return ConsolidationResult{}, err
	}

	return ConsolidationResult{
		MasterOrder:  master,
		Orders:       orders,
		SkippedLines: skipped,
	}, nil
}
