// Package catalogrepo resolves supplier-product commercial terms from the
// supplier_product_terms table, a local replica of the supplier catalog
// maintained by an external synchronization. Checkout reads it to freeze
// prices and packaging into order lines.
package catalogrepo

import (
	"procurement/internal/core/domain/services"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SupplierProductTermsDTO represents one row of the replicated catalog.
type SupplierProductTermsDTO struct {
	ProductID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SupplierID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UnitPrice          decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	PackagingUnit      string          `gorm:"type:varchar(64);not null"`
	QuantityPerPackage int             `gorm:"type:int;not null"`
}

// TableName specifies the database table name for supplier-product terms.
func (SupplierProductTermsDTO) TableName() string {
	return "supplier_product_terms"
}

func toTerms(dto SupplierProductTermsDTO) services.ProductTerms {
	return services.ProductTerms{
		UnitPrice:          dto.UnitPrice,
		PackagingUnit:      dto.PackagingUnit,
		QuantityPerPackage: dto.QuantityPerPackage,
	}
}
