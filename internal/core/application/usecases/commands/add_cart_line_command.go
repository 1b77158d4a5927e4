package commands

import (
	"errors"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/errs"
	"procurement/internal/pkg/guard"
)

var ErrAddCartLineCommandIsNotConstructed = errors.New(
	"AddCartLineCommand must be created via NewAddCartLineCommand constructor",
)

// AddCartLineCommand represents a station's request to put a quantity of one
// product from one supplier into its draft cart. Re-adding an existing
// (product, supplier) pair overwrites quantity and desired date.
type AddCartLineCommand struct { //nolint:recvcheck //using for validation
	actor               kernel.Actor
	productID           kernel.UUID
	supplierID          kernel.UUID
	quantity            int
	desiredDeliveryDate time.Time

	guard guard.ConstructorGuard
}

// NewAddCartLineCommand creates a command to add or update a cart line.
// The actor must be a station actor; quantity must be positive.
func NewAddCartLineCommand(
	actor kernel.Actor,
	productID, supplierID kernel.UUID,
	quantity int,
	desiredDeliveryDate time.Time,
) (AddCartLineCommand, error) {
	cmd := AddCartLineCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setProductID(productID),
		cmd.setSupplierID(supplierID),
		cmd.setQuantity(quantity),
		cmd.setDesiredDeliveryDate(desiredDeliveryDate),
	); err != nil {
		return AddCartLineCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AddCartLineCommand) Validate() error {
	return c.guard.Validate(ErrAddCartLineCommandIsNotConstructed)
}

// Actor returns the station actor adding the line.
func (c AddCartLineCommand) Actor() kernel.Actor {
	return c.actor
}

// ProductID returns the ordered product's identity.
func (c AddCartLineCommand) ProductID() kernel.UUID {
	return c.productID
}

// SupplierID returns the supplier the product is ordered from.
func (c AddCartLineCommand) SupplierID() kernel.UUID {
	return c.supplierID
}

// Quantity returns the ordered quantity.
func (c AddCartLineCommand) Quantity() int {
	return c.quantity
}

// DesiredDeliveryDate returns the delivery date the station asks for.
func (c AddCartLineCommand) DesiredDeliveryDate() time.Time {
	return c.desiredDeliveryDate
}

func (c *AddCartLineCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if actor.Role() != kernel.RoleStation {
		return errs.NewNotAuthorizedError("only station actors can edit carts")
	}

	c.actor = actor
	return nil
}

func (c *AddCartLineCommand) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}

	c.productID = productID
	return nil
}

func (c *AddCartLineCommand) setSupplierID(supplierID kernel.UUID) error {
	if err := supplierID.Validate(); err != nil {
		return err
	}

	c.supplierID = supplierID
	return nil
}

func (c *AddCartLineCommand) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidError("quantity")
	}

	c.quantity = quantity
	return nil
}

func (c *AddCartLineCommand) setDesiredDeliveryDate(date time.Time) error {
	if date.IsZero() {
		return errs.NewValueIsRequiredError("desired delivery date")
	}

	c.desiredDeliveryDate = date
	return nil
}
