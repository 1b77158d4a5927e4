package commands

import (
	"errors"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/guard"
)

var ErrDeleteMasterOrderCommandIsNotConstructed = errors.New(
	"DeleteMasterOrderCommand must be created via NewDeleteMasterOrderCommand constructor",
)

// DeleteMasterOrderCommand represents a request to remove a master order
// with everything it owns: child purchase orders, their lines, status
// history, non-conformities, and the documents stored for them.
type DeleteMasterOrderCommand struct { //nolint:recvcheck //using for validation
	masterOrderID kernel.UUID
	actor         kernel.Actor

	guard guard.ConstructorGuard
}

// NewDeleteMasterOrderCommand creates a cascade-deletion command.
func NewDeleteMasterOrderCommand(masterOrderID kernel.UUID, actor kernel.Actor) (DeleteMasterOrderCommand, error) {
	cmd := DeleteMasterOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setMasterOrderID(masterOrderID),
		cmd.setActor(actor),
	); err != nil {
		return DeleteMasterOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DeleteMasterOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeleteMasterOrderCommandIsNotConstructed)
}

// MasterOrderID returns the master order to delete.
func (c DeleteMasterOrderCommand) MasterOrderID() kernel.UUID {
	return c.masterOrderID
}

// Actor returns the principal requesting the deletion.
func (c DeleteMasterOrderCommand) Actor() kernel.Actor {
	return c.actor
}

func (c *DeleteMasterOrderCommand) setMasterOrderID(masterOrderID kernel.UUID) error {
	if err := masterOrderID.Validate(); err != nil {
		return err
	}

	c.masterOrderID = masterOrderID
	return nil
}

func (c *DeleteMasterOrderCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}
