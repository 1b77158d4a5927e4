package commands

import (
	"errors"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/errs"
	"procurement/internal/pkg/guard"
)

var ErrCheckoutCartCommandIsNotConstructed = errors.New(
	"CheckoutCartCommand must be created via NewCheckoutCartCommand constructor",
)

// CheckoutCartCommand represents a station's request to convert its draft
// cart into purchase orders under a new master order.
type CheckoutCartCommand struct { //nolint:recvcheck //using for validation
	actor kernel.Actor

	guard guard.ConstructorGuard
}

// NewCheckoutCartCommand creates a checkout command for a station actor.
func NewCheckoutCartCommand(actor kernel.Actor) (CheckoutCartCommand, error) {
	cmd := CheckoutCartCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setActor(actor); err != nil {
		return CheckoutCartCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CheckoutCartCommand) Validate() error {
	return c.guard.Validate(ErrCheckoutCartCommandIsNotConstructed)
}

// Actor returns the station actor checking out.
func (c CheckoutCartCommand) Actor() kernel.Actor {
	return c.actor
}

func (c *CheckoutCartCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if actor.Role() != kernel.RoleStation {
		return errs.NewNotAuthorizedError("only station actors can check out carts")
	}

	c.actor = actor
	return nil
}
