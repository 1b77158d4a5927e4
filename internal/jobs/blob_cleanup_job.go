package jobs

import (
	"context"
	"log/slog"

	"procurement/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// BlobCleanupJob retries pending document removals on a schedule.
type BlobCleanupJob struct {
	handler commands.CleanupBlobsCommandHandler
	spec    string
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewBlobCleanupJob creates the cleanup job. The spec is a standard cron
// expression; a few minutes between runs is plenty, the outbox only fills
// when object storage misbehaves.
func NewBlobCleanupJob(handler commands.CleanupBlobsCommandHandler, spec string, logger *slog.Logger) *BlobCleanupJob {
	return &BlobCleanupJob{
		handler: handler,
		spec:    spec,
		cron:    cron.New(),
		logger:  logger.With("component", "blob_cleanup_job"),
	}
}

// Start schedules the cleanup job.
func (j *BlobCleanupJob) Start() error {
	_, err := j.cron.AddFunc(j.spec, func() {
		ctx := context.Background()
		cmd := commands.NewCleanupBlobsCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Blob cleanup job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Blob cleanup job started", "spec", j.spec)
	return nil
}

// Stop stops the cleanup job.
func (j *BlobCleanupJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Blob cleanup job stopped")
}
