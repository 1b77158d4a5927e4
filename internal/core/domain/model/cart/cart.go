package cart

import (
	"errors"
	"fmt"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/errs"
)

var (
	// ErrCartIsNotConstructed is returned when a Cart instance was not created
	// through the NewCart factory method or restored via RestoreCart.
	ErrCartIsNotConstructed = errors.New("Cart must be created via NewCart constructor")

	// ErrCartIsProcessed is returned when a mutation is attempted on a cart
	// that has already been converted into orders.
	ErrCartIsProcessed = errors.New("cart has already been processed")
)

// Line is a single cart entry: a quantity of one product ordered from one
// supplier, with the delivery date the station would like.
// Lines are unique per (product, supplier) within a cart.
type Line struct {
	productID           kernel.UUID
	supplierID          kernel.UUID
	quantity            int
	desiredDeliveryDate time.Time
}

// NewLine creates a validated cart line. Quantity must be positive.
func NewLine(productID, supplierID kernel.UUID, quantity int, desiredDeliveryDate time.Time) (Line, error) {
	if err := productID.Validate(); err != nil {
		return Line{}, err
	}
	if err := supplierID.Validate(); err != nil {
		return Line{}, err
	}
	if quantity <= 0 {
		return Line{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}

	return Line{
		productID:           productID,
		supplierID:          supplierID,
		quantity:            quantity,
		desiredDeliveryDate: desiredDeliveryDate,
	}, nil
}

// ProductID returns the ordered product's identity.
func (l Line) ProductID() kernel.UUID {
	return l.productID
}

// SupplierID returns the supplier the product is ordered from.
func (l Line) SupplierID() kernel.UUID {
	return l.supplierID
}

// Quantity returns the ordered quantity.
func (l Line) Quantity() int {
	return l.quantity
}

// DesiredDeliveryDate returns the delivery date the station asked for.
func (l Line) DesiredDeliveryDate() time.Time {
	return l.desiredDeliveryDate
}

// Cart is the draft shopping cart aggregate for one station.
//
// Invariants:
//   - At most one line per (product, supplier) pair; re-adding updates quantity
//   - Only Draft carts accept line mutations
//   - The Draft -> Processed transition happens exactly once, together with
//     the master order link
type Cart struct {
	id            kernel.UUID
	stationID     kernel.UUID
	createdBy     kernel.UUID
	status        Status
	lines         []Line
	masterOrderID *kernel.UUID
	isConstructed bool
}

// NewCart creates an empty Draft cart for a station.
func NewCart(id, stationID, createdBy kernel.UUID) (*Cart, error) {
	if err := errors.Join(id.Validate(), stationID.Validate(), createdBy.Validate()); err != nil {
		return nil, err
	}

	return &Cart{
		id:            id,
		stationID:     stationID,
		createdBy:     createdBy,
		status:        StatusDraft,
		isConstructed: true,
	}, nil
}

// RestoreCart reconstructs a cart from persistence without applying
// creation-time defaults. Used only by repository implementations.
func RestoreCart(
	id, stationID, createdBy kernel.UUID,
	status Status,
	lines []Line,
	masterOrderID *kernel.UUID,
) (*Cart, error) {
	if err := errors.Join(id.Validate(), stationID.Validate(), createdBy.Validate(), status.Validate()); err != nil {
		return nil, err
	}

	return &Cart{
		id:            id,
		stationID:     stationID,
		createdBy:     createdBy,
		status:        status,
		lines:         lines,
		masterOrderID: masterOrderID,
		isConstructed: true,
	}, nil
}

// Validate ensures the Cart instance was properly constructed.
func (c *Cart) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCartIsNotConstructed
	}
	return nil
}

// ID returns the cart's unique identifier.
func (c *Cart) ID() kernel.UUID {
	return c.id
}

// StationID returns the owning station.
func (c *Cart) StationID() kernel.UUID {
	return c.stationID
}

// CreatedBy returns the user who opened the cart.
func (c *Cart) CreatedBy() kernel.UUID {
	return c.createdBy
}

// Status returns the cart's lifecycle status.
func (c *Cart) Status() Status {
	return c.status
}

// Lines returns the cart lines in insertion order.
func (c *Cart) Lines() []Line {
	return c.lines
}

// MasterOrderID returns the master order produced from this cart,
// or nil while the cart is still Draft.
func (c *Cart) MasterOrderID() *kernel.UUID {
	return c.masterOrderID
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// UpsertLine adds a line to the cart, or updates quantity and desired date
// when a line for the same (product, supplier) pair already exists.
func (c *Cart) UpsertLine(productID, supplierID kernel.UUID, quantity int, desiredDeliveryDate time.Time) error {
	if c.status != StatusDraft {
		return ErrCartIsProcessed
	}

	line, err := NewLine(productID, supplierID, quantity, desiredDeliveryDate)
	if err != nil {
		return err
	}

	for i := range c.lines {
		if c.lines[i].productID.IsEqual(productID) && c.lines[i].supplierID.IsEqual(supplierID) {
			c.lines[i] = line
			return nil
		}
	}

	c.lines = append(c.lines, line)
	return nil
}

// MarkProcessed transitions the cart to Processed and links it to the master
// order it produced. Fails when the cart is empty or already processed.
func (c *Cart) MarkProcessed(masterOrderID kernel.UUID) error {
	if c.status != StatusDraft {
		return ErrCartIsProcessed
	}
	if c.IsEmpty() {
		return errs.NewValueIsRequiredError("cart lines")
	}
	if err := masterOrderID.Validate(); err != nil {
		return err
	}

	c.status = StatusProcessed
	c.masterOrderID = &masterOrderID
	return nil
}
