// Package jobs provides scheduled background tasks for the locker service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// for periodic maintenance the request path should not carry.
//
// # Available Jobs
//
// 1. ExpiredReservationJob - Sweeps reservations whose deadline has passed
// and returns their compartments to the available pool.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(releaseExpiredHandler, "*/10 * * * * *", logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The sweep schedule is a six-field cron expression taken from
// configuration. A sweep that finds nothing expired is a no-op, so running
// it frequently is cheap.
package jobs
