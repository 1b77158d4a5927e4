package ports

import (
	"context"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/services"
)

// ReferenceDataGateway resolves the commercial terms a supplier quotes for a
// product at checkout time. Catalogue ownership is outside this service; the
// gateway is the read-only seam to it.
type ReferenceDataGateway interface {
	// TermsFor returns the current terms for the (product, supplier) pair.
	// Returns an object-not-found error when the supplier does not quote
	// the product.
	TermsFor(ctx context.Context, productID, supplierID kernel.UUID) (services.ProductTerms, error)
}
