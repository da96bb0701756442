// Package jobs provides scheduled background tasks for the pickup service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// PickupAssignmentJob - runs bulk assignment for pickup requests that are
// still waiting for a worker, by default every five minutes.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(orchestrator, cfg.AssignmentJobSchedule, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules are six-field cron expressions with a leading seconds field.
// A run that is still busy when the next tick arrives makes that tick skip.
//
// # Error Handling
//
// Per-request failures are handled inside the bulk run and never reach the
// job. A failed run is logged and the next tick tries again.
package jobs
