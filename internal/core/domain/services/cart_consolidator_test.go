package services_test

import (
	"testing"
	"time"

	"procurement/internal/core/domain/model/cart"
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/domain/services"
	"procurement/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func terms(price string, unit string, perPackage int) services.ProductTerms {
	return services.ProductTerms{
		UnitPrice:          decimal.RequireFromString(price),
		PackagingUnit:      unit,
		QuantityPerPackage: perPackage,
	}
}

func TestConsolidate(t *testing.T) {
	stationID := kernel.NewUUID()
	createdBy := kernel.NewUUID()
	desired := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	newDraftCart := func(t *testing.T) *cart.Cart {
		t.Helper()
		c, err := cart.NewCart(kernel.NewUUID(), stationID, createdBy)
		require.NoError(t, err)
		return c
	}

	t.Run("one_order_per_supplier_in_first_appearance_order", func(t *testing.T) {
		supplierA := kernel.NewUUID()
		supplierB := kernel.NewUUID()
		productA := kernel.NewUUID()
		productB := kernel.NewUUID()
		productC := kernel.NewUUID()

		c := newDraftCart(t)
		require.NoError(t, c.UpsertLine(productA, supplierA, 10, desired))
		require.NoError(t, c.UpsertLine(productB, supplierB, 5, desired))
		require.NoError(t, c.UpsertLine(productC, supplierA, 2, desired))

		result, err := services.NewCartConsolidator().Consolidate(c, map[services.TermsKey]services.ProductTerms{
			{ProductID: productA, SupplierID: supplierA}: terms("2.00", "box", 6),
			{ProductID: productB, SupplierID: supplierB}: terms("3.00", "pallet", 24),
			{ProductID: productC, SupplierID: supplierA}: terms("5.00", "box", 12),
		}, createdBy)

		require.NoError(t, err)
		require.Len(t, result.Orders, 2)
		assert.Empty(t, result.SkippedLines)

		first, second := result.Orders[0], result.Orders[1]
		assert.True(t, first.SupplierID().IsEqual(supplierA))
		assert.True(t, second.SupplierID().IsEqual(supplierB))
		assert.Len(t, first.Lines(), 2)
		assert.Len(t, second.Lines(), 1)

		// 10*2.00 + 2*5.00 and 5*3.00
		assert.True(t, first.Total().Equal(decimal.RequireFromString("30.00")))
		assert.True(t, second.Total().Equal(decimal.RequireFromString("15.00")))
		assert.True(t, result.MasterOrder.Total().Equal(decimal.RequireFromString("45.00")))

		assert.Equal(t, order.StatusRegistered, result.MasterOrder.Status())
		for _, po := range result.Orders {
			assert.Equal(t, order.StatusRegistered, po.Status())
			require.NotNil(t, po.MasterOrderID())
			assert.True(t, po.MasterOrderID().IsEqual(result.MasterOrder.ID()))
			assert.NotEmpty(t, po.OrderNumber())
		}

		assert.Equal(t, cart.StatusProcessed, c.Status())
		require.NotNil(t, c.MasterOrderID())
		assert.True(t, c.MasterOrderID().IsEqual(result.MasterOrder.ID()))
	})

	t.Run("lines_without_terms_are_skipped_and_reported", func(t *testing.T) {
		supplierA := kernel.NewUUID()
		productA := kernel.NewUUID()
		orphanProduct := kernel.NewUUID()

		c := newDraftCart(t)
		require.NoError(t, c.UpsertLine(productA, supplierA, 10, desired))
		require.NoError(t, c.UpsertLine(orphanProduct, supplierA, 3, desired))

		result, err := services.NewCartConsolidator().Consolidate(c, map[services.TermsKey]services.ProductTerms{
			{ProductID: productA, SupplierID: supplierA}: terms("2.00", "box", 6),
		}, createdBy)

		require.NoError(t, err)
		require.Len(t, result.Orders, 1)
		require.Len(t, result.SkippedLines, 1)
		assert.True(t, result.SkippedLines[0].ProductID().IsEqual(orphanProduct))
		assert.True(t, result.Orders[0].Total().Equal(decimal.RequireFromString("20.00")))
	})

	t.Run("empty_cart_is_rejected", func(t *testing.T) {
		c := newDraftCart(t)

		_, err := services.NewCartConsolidator().Consolidate(c, nil, createdBy)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Equal(t, cart.StatusDraft, c.Status())
	})

	t.Run("cart_with_no_resolvable_terms_is_rejected", func(t *testing.T) {
		c := newDraftCart(t)
		require.NoError(t, c.UpsertLine(kernel.NewUUID(), kernel.NewUUID(), 1, desired))

		_, err := services.NewCartConsolidator().Consolidate(c, nil, createdBy)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, cart.StatusDraft, c.Status())
	})

	t.Run("processed_cart_is_rejected", func(t *testing.T) {
		supplierA := kernel.NewUUID()
		productA := kernel.NewUUID()
		c := newDraftCart(t)
		require.NoError(t, c.UpsertLine(productA, supplierA, 1, desired))
		require.NoError(t, c.MarkProcessed(kernel.NewUUID()))

		_, err := services.NewCartConsolidator().Consolidate(c, map[services.TermsKey]services.ProductTerms{
			{ProductID: productA, SupplierID: supplierA}: terms("1.00", "box", 1),
		}, createdBy)

		require.ErrorIs(t, err, cart.ErrCartIsProcessed)
	})
}
