// Package jobs provides scheduled background tasks for the procurement system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. BlobCleanupJob - Periodically retries the removal of stored documents
// whose deletion failed while their master order was being removed. The
// failed keys sit in the blob_cleanups outbox table; the job drains it, so
// object storage eventually converges with the database.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(cleanupHandler, cronSpec, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed run leaves the outbox rows in place with a bumped attempt counter
// and is retried on the next tick; the job itself never gives up on a record.
package jobs
