package commands

import (
	"errors"

	"procurement/internal/pkg/guard"
)

var ErrCleanupBlobsCommandIsNotConstructed = errors.New(
	"CleanupBlobsCommand must be created via NewCleanupBlobsCommand constructor",
)

// CleanupBlobsCommand represents a request to retry pending blob-cleanup
// records against object storage. Triggered periodically by the cleanup job.
type CleanupBlobsCommand struct {
	guard guard.ConstructorGuard
}

// NewCleanupBlobsCommand creates a cleanup command.
func NewCleanupBlobsCommand() CleanupBlobsCommand {
	return CleanupBlobsCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c CleanupBlobsCommand) Validate() error {
	return c.guard.Validate(ErrCleanupBlobsCommandIsNotConstructed)
}
