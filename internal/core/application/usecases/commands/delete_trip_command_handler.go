package commands

import (
	"context"

	"transportation/internal/core/domain/model/kernel"
	"transportation/internal/core/domain/services"
)

// DeleteTripResult carries the deletion guard outcome. A violation means
// the trip and its packages were left untouched.
type DeleteTripResult struct {
	Outcome         services.Outcome
	ChangedPackages []kernel.UUID
}

// DeleteTripCommandHandler deletes a trip after the deletion guard allowed
// it, removing the trip's lifecycle events from every package it carries.
type DeleteTripCommandHandler struct {
	uowFactory UoWFactory
	guard      *services.DeletionGuard
}

func NewDeleteTripCommandHandler(uowFactory UoWFactory, guard *services.DeletionGuard) DeleteTripCommandHandler {
	return DeleteTripCommandHandler{uowFactory: uowFactory, guard: guard}
}

func (h *DeleteTripCommandHandler) Handle(ctx context.Context, cmd DeleteTripCommand) (DeleteTripResult, error) {
	if err := cmd.Validate(); err != nil {
		return DeleteTripResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return DeleteTripResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	tripRepo := uow.TripRepository()
	packageRepo := uow.PackageRepository()

	t, err := tripRepo.Get(ctx, cmd.TripID())
	if err != nil {
		return DeleteTripResult{}, err
	}

	outcome, effects, err := h.guard.Check(ctx, t, packageRepo, packageRepo)
	if err != nil {
		return DeleteTripResult{}, err
	}
	if !outcome.OK() {
		return DeleteTripResult{Outcome: outcome}, nil
	}

	if err = services.Apply(ctx, effects, packageRepo); err != nil {
		return DeleteTripResult{}, err
	}
	if err = tripRepo.Delete(ctx, t.ID()); err != nil {
		return DeleteTripResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return DeleteTripResult{}, err
	}

	return DeleteTripResult{Outcome: outcome, ChangedPackages: effects.PackageIDs()}, nil
}
