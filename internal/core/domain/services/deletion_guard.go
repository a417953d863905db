package services

import (
	"context"
	"fmt"

	"transportation/internal/core/domain/model/lifecycle"
	"transportation/internal/core/domain/model/trip"
)

// DeletionGuard decides whether a trip may be deleted.
//
// A trip whose parcels carry trip-owned events outside the tracked lifecycle
// (delivered, returned, transferred...) records real-world actions; deleting
// it would silently roll those parcels back, so the deletion is rejected.
// Otherwise the guard plans the removal of every trip-owned event.
type DeletionGuard struct {
	ranking lifecycle.Ranking
}

func NewDeletionGuard(ranking lifecycle.Ranking) (*DeletionGuard, error) {
	if err := ranking.Validate(); err != nil {
		return nil, err
	}
	return &DeletionGuard{ranking: ranking}, nil
}

// Check returns a violation naming each protected "package - stage" pair,
// or the side effects that clean up the trip's events.
func (g *DeletionGuard) Check(
	ctx context.Context,
	t *trip.Trip,
	events TripEventFinder,
	packages PackageReader,
) (Outcome, SideEffects, error) {
	if err := t.Validate(); err != nil {
		return Outcome{}, SideEffects{}, err
	}

	protected, err := events.FindTripEvents(ctx, t.ID(), g.ranking.TrackedStages())
	if err != nil {
		return Outcome{}, SideEffects{}, err
	}
	if len(protected) > 0 {
		subjects := make([]string, 0, len(protected))
		for _, ref := range protected {
			subjects = append(subjects, fmt.Sprintf("%s - %s", ref.PackageID, ref.Stage))
		}
		return reject(RuleProtectedEvents, subjects,
			"there are package events associated with this trip that moved packages to delivered, returned etc., deleting it would roll them back: %s",
			joinSubjects(subjects)), SideEffects{}, nil
	}

	pl := newPlanner(packages)
	for _, packageID := range t.PackageIDs() {
		ledger, err := pl.ledger(ctx, packageID)
		if err != nil {
			return Outcome{}, SideEffects{}, err
		}
		if err := removeTripEvents(ledger, t.ID()); err != nil {
			return Outcome{}, SideEffects{}, err
		}
	}
	return Outcome{}, pl.effects(), nil
}
