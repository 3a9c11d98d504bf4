// Package jobs provides scheduled background tasks for the fulfillment system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for warehouse fulfillment.
//
// # Available Jobs
//
// 1. StagingMonitorJob - Periodically sweeps open staging assignments,
// raising dwell alerts for orders sitting past the warning threshold and
// handing stranded loaded orders off to the carrier.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(stagingSweepHandler, interval, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The staging monitor uses an "@every" cron schedule derived from the
// configured interval, defaulting to five minutes. The sweep is idempotent,
// so overlapping or delayed runs only repeat alerts, never corrupt state.
package jobs
