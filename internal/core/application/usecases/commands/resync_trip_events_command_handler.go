package commands

import (
	"context"
	"errors"
	"fmt"

	"transportation/internal/core/domain/model/kernel"
	"transportation/internal/core/domain/model/lifecycle"
	"transportation/internal/core/domain/services"
)

// ResyncTripEventsResult counts what a resync touched.
type ResyncTripEventsResult struct {
	Trips           int
	ChangedPackages int
}

// ResyncTripEventsCommandHandler heals package histories that drifted from
// their active trips, e.g. after a partially applied save. Each trip is
// resynced in its own unit of work; a failing trip does not stop the others.
type ResyncTripEventsCommandHandler struct {
	uowFactory   UoWFactory
	synchronizer *services.EventSynchronizer
}

func NewResyncTripEventsCommandHandler(
	uowFactory UoWFactory,
	synchronizer *services.EventSynchronizer,
) ResyncTripEventsCommandHandler {
	return ResyncTripEventsCommandHandler{uowFactory: uowFactory, synchronizer: synchronizer}
}

func (h *ResyncTripEventsCommandHandler) Handle(ctx context.Context, cmd ResyncTripEventsCommand) (ResyncTripEventsResult, error) {
	if err := cmd.Validate(); err != nil {
		return ResyncTripEventsResult{}, err
	}

	ids, err := h.activeTrips(ctx)
	if err != nil {
		return ResyncTripEventsResult{}, err
	}

	var result ResyncTripEventsResult
	var failures []error
	for _, id := range ids {
		changed, err := h.resync(ctx, id)
		if err != nil {
			failures = append(failures, fmt.Errorf("resync trip %s: %w", id, err))
			continue
		}
		result.Trips++
		result.ChangedPackages += changed
	}

	return result, errors.Join(failures...)
}

func (h *ResyncTripEventsCommandHandler) activeTrips(ctx context.Context) ([]kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	trips, err := uow.TripRepository().ListByStates(ctx, lifecycle.Planned, lifecycle.Loaded, lifecycle.Transit)
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(trips))
	for _, t := range trips {
		ids = append(ids, t.ID())
	}
	return ids, nil
}

func (h *ResyncTripEventsCommandHandler) resync(ctx context.Context, tripID kernel.UUID) (int, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	t, err := uow.TripRepository().Get(ctx, tripID)
	if err != nil {
		return 0, err
	}

	packageRepo := uow.PackageRepository()
	effects, err := h.synchronizer.Resync(ctx, t, packageRepo)
	if err != nil {
		return 0, err
	}
	if err = services.Apply(ctx, effects, packageRepo); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}
	return len(effects.Changes), nil
}
