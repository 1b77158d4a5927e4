package catalogrepo

import (
	"context"
	"errors"
	"fmt"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/services"
	"procurement/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormReferenceDataGateway implements ReferenceDataGateway over the
// replicated catalog table.
type GormReferenceDataGateway struct {
	db *gorm.DB
}

// NewGormReferenceDataGateway creates a gateway reading supplier-product
// terms from the database.
func NewGormReferenceDataGateway(db *gorm.DB) *GormReferenceDataGateway {
	return &GormReferenceDataGateway{db: db}
}

// TermsFor returns the commercial terms a supplier quotes for a product.
// ObjectNotFound means the pair is not quoted; checkout skips such lines.
func (g *GormReferenceDataGateway) TermsFor(
	ctx context.Context,
	productID, supplierID kernel.UUID,
) (services.ProductTerms, error) {
	if err := errors.Join(productID.Validate(), supplierID.Validate()); err != nil {
		return services.ProductTerms{}, err
	}

	var dto SupplierProductTermsDTO
	err := g.db.WithContext(ctx).
		First(&dto, "product_id = ? AND supplier_id = ?", productID.Bytes(), supplierID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return services.ProductTerms{}, errs.NewObjectNotFoundError(
				"supplier product terms",
				fmt.Sprintf("%s/%s", supplierID.String(), productID.String()),
			)
		}
		return services.ProductTerms{}, err
	}

	return toTerms(dto), nil
}
