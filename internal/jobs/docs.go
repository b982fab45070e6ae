// Package jobs provides scheduled background tasks for the storefront service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required by the order pipeline.
//
// # Available Jobs
//
// 1. EventRelayJob - Runs every second to drain the transactional outbox and
// hand pending domain events to the configured publisher.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(eventRepository, publisher, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A publish failure is recorded on the individual event (which stays pending
// for retry until the outbox parks it as failed) and does not stop the rest
// of the batch. Outbox access errors abort the tick and surface in the log.
package jobs
