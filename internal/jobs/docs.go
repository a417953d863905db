// Package jobs provides scheduled background tasks for the transportation service.
//
// Jobs are cron based (github.com/robfig/cron/v3).
//
// # Available Jobs
//
// TripEventsResyncJob re-runs the full event sync of every planned, loaded or
// in-transit trip. A save whose package writes were only partly applied leaves
// package histories out of line with the trip; the next pass heals them
// without touching events that are already in place.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(resyncHandler, "@every 15m", logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// An empty schedule disables the job.
package jobs
