// Package jobs provides scheduled background tasks for the storefront.
//
// Jobs are built on github.com/robfig/cron/v3 with second-level schedules
// and are started and stopped together through JobManager:
//
//	jobManager := jobs.NewJobManager(stalledOrdersHandler, schedule, olderThan, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Available Jobs
//
// StalledOrderMonitorJob reports orders that have not been delivered long
// after they were placed. It only reads; fulfillment staff act on the log.
package jobs
