package order

import (
	"errors"
	"fmt"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Line is a purchase-order line. Unit price and packaging terms are a
// point-in-time copy of the supplier's terms taken at checkout; later changes
// to the supplier catalog must never retroactively alter an existing line.
type Line struct {
	productID             kernel.UUID
	quantity              int
	unitPrice             decimal.Decimal
	packagingUnit         string
	quantityPerPackage    int
	desiredDeliveryDate   time.Time
	confirmedDeliveryDate *time.Time
	quantityReceived      int
}

// NewLine creates a validated order line with frozen supplier terms.
func NewLine(
	productID kernel.UUID,
	quantity int,
	unitPrice decimal.Decimal,
	packagingUnit string,
	quantityPerPackage int,
	desiredDeliveryDate time.Time,
) (Line, error) {
	if err := productID.Validate(); err != nil {
		return Line{}, err
	}
	if quantity <= 0 {
		return Line{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	if unitPrice.IsNegative() {
		return Line{}, errs.NewValueIsInvalidErrorWithCause("unit price",
			errors.New(unitPrice.String()+" is negative"))
	}

	return Line{
		productID:           productID,
		quantity:            quantity,
		unitPrice:           unitPrice,
		packagingUnit:       packagingUnit,
		quantityPerPackage:  quantityPerPackage,
		desiredDeliveryDate: desiredDeliveryDate,
	}, nil
}

// RestoreLine reconstructs a line from persistence.
// Used only by repository implementations.
func RestoreLine(
	productID kernel.UUID,
	quantity int,
	unitPrice decimal.Decimal,
	packagingUnit string,
	quantityPerPackage int,
	desiredDeliveryDate time.Time,
	confirmedDeliveryDate *time.Time,
	quantityReceived int,
) (Line, error) {
	line, err := NewLine(productID, quantity, unitPrice, packagingUnit, quantityPerPackage, desiredDeliveryDate)
	if err != nil {
		return Line{}, err
	}

	line.confirmedDeliveryDate = confirmedDeliveryDate
	line.quantityReceived = quantityReceived
	return line, nil
}

// ProductID returns the ordered product's identity.
func (l Line) ProductID() kernel.UUID {
	return l.productID
}

// Quantity returns the ordered quantity.
func (l Line) Quantity() int {
	return l.quantity
}

// UnitPrice returns the unit price frozen at checkout, excluding tax.
func (l Line) UnitPrice() decimal.Decimal {
	return l.unitPrice
}

// PackagingUnit returns the packaging unit frozen at checkout.
func (l Line) PackagingUnit() string {
	return l.packagingUnit
}

// QuantityPerPackage returns the per-package quantity frozen at checkout.
func (l Line) QuantityPerPackage() int {
	return l.quantityPerPackage
}

// DesiredDeliveryDate returns the delivery date the station asked for.
func (l Line) DesiredDeliveryDate() time.Time {
	return l.desiredDeliveryDate
}

// ConfirmedDeliveryDate returns the date the supplier committed to,
// or nil while the order is not yet Confirmed.
func (l Line) ConfirmedDeliveryDate() *time.Time {
	return l.confirmedDeliveryDate
}

// QuantityReceived returns the quantity the station actually received.
// Zero until the order reaches Received.
func (l Line) QuantityReceived() int {
	return l.quantityReceived
}

// Subtotal returns quantity times the frozen unit price.
func (l Line) Subtotal() decimal.Decimal {
	return l.unitPrice.Mul(decimal.NewFromInt(int64(l.quantity)))
}
