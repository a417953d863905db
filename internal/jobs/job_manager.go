package jobs

import (
	"fmt"
	"log/slog"

	"transportation/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	tripEventsResyncJob *TripEventsResyncJob
}

// NewJobManager creates a new job manager. An empty resyncSchedule leaves
// the resync job out.
func NewJobManager(
	resyncHandler commands.ResyncTripEventsCommandHandler,
	resyncSchedule string,
	logger *slog.Logger,
) *JobManager {
	jm := &JobManager{}
	if resyncSchedule != "" {
		jm.tripEventsResyncJob = NewTripEventsResyncJob(resyncHandler, resyncSchedule, logger)
	}
	return jm
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if jm.tripEventsResyncJob == nil {
		return nil
	}
	if err := jm.tripEventsResyncJob.Start(); err != nil {
		return fmt.Errorf("failed to start trip events resync job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	if jm.tripEventsResyncJob != nil {
		jm.tripEventsResyncJob.Stop()
	}
}
