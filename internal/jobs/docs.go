// Package jobs provides scheduled background tasks for the pizzeria system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations around the service period lifecycle.
//
// # Available Jobs
//
// 1. ServiceAutocloseJob - Runs at a configured nightly schedule to close a
// service period the staff forgot to close, sweeping its live orders to
// not_delivered and freezing the closing stats.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(closeServiceHandler, autocloseSpec, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The autoclose job ignores the expected no-open-period scenario (the staff
// already closed the day) and logs everything else.
package jobs
