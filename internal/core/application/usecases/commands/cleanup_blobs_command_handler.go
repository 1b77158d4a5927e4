package commands

import (
	"context"
	"log/slog"

	"procurement/internal/core/ports"
)

// CleanupBlobsCommandHandler retries the blob-cleanup outbox: document keys
// whose removal from object storage failed when their records were deleted.
// Records whose keys are gone are deleted; the rest get their attempt
// counter bumped and stay for the next run.
type CleanupBlobsCommandHandler struct {
	uowFactory CleanupUoWFactory
	storage    ports.DocumentStorage
	logger     *slog.Logger
}

// NewCleanupBlobsCommandHandler creates a handler for the cleanup retries.
func NewCleanupBlobsCommandHandler(
	uowFactory CleanupUoWFactory,
	storage ports.DocumentStorage,
	logger *slog.Logger,
) CleanupBlobsCommandHandler {
	return CleanupBlobsCommandHandler{
		uowFactory: uowFactory,
		storage:    storage,
		logger:     logger,
	}
}

// Handle processes the cleanup command. Storage failures on individual
// records are logged and retried on the next run, never returned.
func (h *CleanupBlobsCommandHandler) Handle(ctx context.Context, cmd CleanupBlobsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cleanupRepo := uow.BlobCleanupRepository()
	pending, err := cleanupRepo.GetAllPending(ctx)
	if err != nil {
		return err
	}

	for _, record := range pending {
		if removeErr := h.storage.Remove(ctx, record.Keys); removeErr != nil {
			h.logger.Warn("blob cleanup retry failed",
				"cleanupId", record.ID.String(),
				"attempts", record.Attempts+1,
				"error", removeErr,
			)
			if err = cleanupRepo.MarkAttempt(ctx, record.ID); err != nil {
				return err
			}
			continue
		}

		if err = cleanupRepo.Delete(ctx, record.ID); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
