package commands

import (
	"context"
	"errors"

	"transportation/internal/core/domain/model/kernel"
	"transportation/internal/core/domain/model/trip"
	"transportation/internal/core/domain/services"
	"transportation/internal/core/ports"
	"transportation/internal/pkg/errs"
)

// SaveTripResult reports what a save did. When Outcome carries a violation
// nothing was persisted.
type SaveTripResult struct {
	TripID     kernel.UUID
	Created    bool
	Outcome    services.Outcome
	AddedStops []kernel.Destination

	// ChangedPackages lists the packages whose event ledger was rewritten.
	ChangedPackages []kernel.UUID
}

// SaveTripCommandHandler runs a trip save: validation, package diff, stop
// reconciliation, event synchronization, then package and trip persistence,
// all inside one unit of work.
//
// Warnings are returned in the result and also sent to the notifier once
// the save has been committed.
type SaveTripCommandHandler struct {
	uowFactory   UoWFactory
	validator    *services.TripValidator
	synchronizer *services.EventSynchronizer
	notifier     ports.Notifier
}

func NewSaveTripCommandHandler(
	uowFactory UoWFactory,
	validator *services.TripValidator,
	synchronizer *services.EventSynchronizer,
	notifier ports.Notifier,
) SaveTripCommandHandler {
	return SaveTripCommandHandler{
		uowFactory:   uowFactory,
		validator:    validator,
		synchronizer: synchronizer,
		notifier:     notifier,
	}
}

func (h *SaveTripCommandHandler) Handle(ctx context.Context, cmd SaveTripCommand) (SaveTripResult, error) {
	if err := cmd.Validate(); err != nil {
		return SaveTripResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return SaveTripResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	tripRepo := uow.TripRepository()
	packageRepo := uow.PackageRepository()

	previous, current, err := h.load(ctx, tripRepo, cmd)
	if err != nil {
		return SaveTripResult{}, err
	}
	if err = current.SetState(cmd.State()); err != nil {
		return SaveTripResult{}, err
	}
	current.ReplacePackages(cmd.Packages())
	current.ReplaceStops(stopLines(cmd.Stops()))

	result := SaveTripResult{TripID: current.ID(), Created: previous == nil}

	added, removed := services.DiffPackageLines(previous, current.Packages())

	result.Outcome, err = h.validator.Validate(ctx, previous, current, added, packageRepo)
	if err != nil {
		return SaveTripResult{}, err
	}
	if !result.Outcome.OK() {
		return result, nil
	}

	for _, stop := range services.ReconcileStops(current) {
		result.AddedStops = append(result.AddedStops, stop.Stop())
	}

	effects, err := h.synchronizer.Plan(ctx, previous, current, added, removed, packageRepo)
	if err != nil {
		return SaveTripResult{}, err
	}
	if err = services.Apply(ctx, effects, packageRepo); err != nil {
		return SaveTripResult{}, err
	}
	result.ChangedPackages = effects.PackageIDs()

	if previous == nil {
		err = tripRepo.Add(ctx, current)
	} else {
		err = tripRepo.Update(ctx, current)
	}
	if err != nil {
		return SaveTripResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return SaveTripResult{}, err
	}

	for _, w := range result.Outcome.Warnings {
		h.notifier.Warn(ctx, w.Title, w.Message)
	}

	return result, nil
}

// load returns the persisted revision (nil for a new trip) and the trip to
// edit. An unknown id creates a trip with that id.
func (h *SaveTripCommandHandler) load(
	ctx context.Context,
	repo ports.TripRepository,
	cmd SaveTripCommand,
) (previous, current *trip.Trip, err error) {
	id := cmd.TripID()
	if id.IsZero() {
		current, err = trip.NewTrip(kernel.NewUUID(), cmd.State())
		return nil, current, err
	}

	existing, err := repo.Get(ctx, id)
	if errors.Is(err, errs.ErrObjectNotFound) {
		current, err = trip.NewTrip(id, cmd.State())
		return nil, current, err
	}
	if err != nil {
		return nil, nil, err
	}
	return existing.Snapshot(), existing, nil
}

func stopLines(specs []StopSpec) []*trip.StopLine {
	lines := make([]*trip.StopLine, 0, len(specs))
	for _, s := range specs {
		lines = append(lines, trip.NewStopLine(s.ID, s.Stop))
	}
	return lines
}
