package jobs

import (
	"context"
	"log/slog"

	"transportation/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// TripEventsResyncJob periodically re-runs the event sync of every active
// trip so package histories left behind by a failed save are healed.
type TripEventsResyncJob struct {
	handler  commands.ResyncTripEventsCommandHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewTripEventsResyncJob creates the job. schedule is a standard five-field
// cron expression or a descriptor such as "@every 15m".
func NewTripEventsResyncJob(
	handler commands.ResyncTripEventsCommandHandler,
	schedule string,
	logger *slog.Logger,
) *TripEventsResyncJob {
	return &TripEventsResyncJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(),
		logger:   logger.With("component", "trip_events_resync_job"),
	}
}

// Start registers the job on its schedule and starts the scheduler.
func (j *TripEventsResyncJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Trip events resync job started", "schedule", j.schedule)
	return nil
}

// Run performs a single resync pass and logs its result.
func (j *TripEventsResyncJob) Run(ctx context.Context) {
	result, err := j.handler.Handle(ctx, commands.NewResyncTripEventsCommand())
	if err != nil {
		j.logger.ErrorContext(ctx, "Trip events resync failed", "error", err,
			"trips", result.Trips, "changed_packages", result.ChangedPackages)
		return
	}
	if result.ChangedPackages > 0 {
		j.logger.InfoContext(ctx, "Trip events resynced",
			"trips", result.Trips, "changed_packages", result.ChangedPackages)
	}
}

// Stop stops the scheduler and waits for a running pass to finish.
func (j *TripEventsResyncJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Trip events resync job stopped")
}
