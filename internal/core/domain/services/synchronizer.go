package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"transportation/internal/core/domain/model/kernel"
	"transportation/internal/core/domain/model/lifecycle"
	"transportation/internal/core/domain/model/parcel"
	"transportation/internal/core/domain/model/trip"
)

var ErrClockIsRequired = errors.New("event synchronizer needs a clock")

// EventSynchronizer keeps parcel event histories in line with the trips that
// carry them.
//
// On every save it decides, from the state change and the package diff,
// which trip-owned events to create, update or delete:
//
//   - state changed, not completed: every package gets an event of the new
//     state, and trip events of later states are pruned
//   - state changed to completed: lines with an end event get that event
//   - state unchanged: only added packages catch up with the current state
//   - removed packages lose every event owned by the trip
//
// Events without a trip reference, or owned by another trip, are never
// touched.
type EventSynchronizer struct {
	ranking lifecycle.Ranking
	now     func() time.Time
}

// NewEventSynchronizer creates a synchronizer. now stamps new and updated
// events unless a date is given explicitly.
func NewEventSynchronizer(ranking lifecycle.Ranking, now func() time.Time) (*EventSynchronizer, error) {
	if err := ranking.Validate(); err != nil {
		return nil, err
	}
	if now == nil {
		return nil, ErrClockIsRequired
	}
	return &EventSynchronizer{ranking: ranking, now: now}, nil
}

// EventOptions overrides the defaults of CreateOrUpdateEvent. Empty fields
// fall back to the parcel's origin, the parcel's destination and the clock.
type EventOptions struct {
	Origin      kernel.Destination
	Destination kernel.Destination
	Date        time.Time
}

// Plan computes the side effects of saving current. previous is the
// persisted revision, nil for a new trip; added and removed come from
// DiffPackageLines.
func (s *EventSynchronizer) Plan(
	ctx context.Context,
	previous, current *trip.Trip,
	added, removed []*trip.PackageLine,
	packages PackageReader,
) (SideEffects, error) {
	pl := newPlanner(packages)
	tripID := current.ID()
	state := current.State()
	stateChanged := previous == nil || previous.State() != state

	switch {
	case stateChanged && state == lifecycle.Completed:
		if err := s.createEndEvents(ctx, pl, tripID, current.Packages()); err != nil {
			return SideEffects{}, err
		}
	case stateChanged:
		if err := s.syncState(ctx, pl, tripID, state, current.Packages()); err != nil {
			return SideEffects{}, err
		}
	case len(added) > 0:
		if err := s.syncState(ctx, pl, tripID, state, added); err != nil {
			return SideEffects{}, err
		}
	}

	if err := s.deleteEventsForRemoved(ctx, pl, current, removed); err != nil {
		return SideEffects{}, err
	}

	return pl.effects(), nil
}

// Resync brings the parcels of t back in line with its current state: a
// missing event of the state is appended and trip events of later states or
// duplicates are dropped. Events already in place keep their date, so a trip
// in sync yields no side effects. Completed trips are left alone.
func (s *EventSynchronizer) Resync(ctx context.Context, t *trip.Trip, packages PackageReader) (SideEffects, error) {
	if t.State() == lifecycle.Completed {
		return SideEffects{}, nil
	}
	stage, ok := t.State().Stage()
	if !ok {
		return SideEffects{}, fmt.Errorf("trip state %s has no package stage", t.State())
	}

	pl := newPlanner(packages)
	date := s.now()
	for _, l := range t.Packages() {
		ledger, err := pl.ledger(ctx, l.PackageID())
		if err != nil {
			return SideEffects{}, err
		}
		existing, err := s.prune(ledger, t.ID(), stage)
		if err != nil {
			return SideEffects{}, err
		}
		if existing != nil {
			continue
		}
		if err = s.appendEvent(ledger, t.ID(), stage, EventOptions{Date: date}); err != nil {
			return SideEffects{}, err
		}
	}
	return pl.effects(), nil
}

// CreateOrUpdateEvent plans, for the parcel of every line, one trip-owned
// event of the given stage: trip events of higher stages are pruned, an
// existing event of the stage is rewritten in place, otherwise one is
// appended. Re-running it with the same arguments leaves a single event.
func (s *EventSynchronizer) CreateOrUpdateEvent(
	ctx context.Context,
	tripID kernel.UUID,
	lines []*trip.PackageLine,
	stage lifecycle.Stage,
	opts EventOptions,
	packages PackageReader,
) (SideEffects, error) {
	pl := newPlanner(packages)
	for _, l := range lines {
		ledger, err := pl.ledger(ctx, l.PackageID())
		if err != nil {
			return SideEffects{}, err
		}
		if err := s.upsertEvent(ledger, tripID, stage, opts); err != nil {
			return SideEffects{}, err
		}
	}
	return pl.effects(), nil
}

func (s *EventSynchronizer) syncState(
	ctx context.Context,
	pl *planner,
	tripID kernel.UUID,
	state lifecycle.TripState,
	lines []*trip.PackageLine,
) error {
	stage, ok := state.Stage()
	if !ok {
		return fmt.Errorf("trip state %s has no package stage", state)
	}
	date := s.now()
	for _, l := range lines {
		ledger, err := pl.ledger(ctx, l.PackageID())
		if err != nil {
			return err
		}
		if err := s.upsertEvent(ledger, tripID, stage, EventOptions{Date: date}); err != nil {
			return err
		}
	}
	return nil
}

func (s *EventSynchronizer) upsertEvent(
	ledger EventLedger,
	tripID kernel.UUID,
	stage lifecycle.Stage,
	opts EventOptions,
) error {
	existing, err := s.prune(ledger, tripID, stage)
	if err != nil {
		return err
	}
	if existing == nil {
		return s.appendEvent(ledger, tripID, stage, opts)
	}

	origin, destination, date := s.defaults(ledger, opts)
	return ledger.UpdateEvent(existing.ID(), parcel.EventPatch{
		Origin:      origin,
		Destination: destination,
		Date:        date,
		TripID:      &tripID,
	})
}

// prune removes the trip events ranked above stage and all but the first
// trip event of stage, which it returns.
func (s *EventSynchronizer) prune(ledger EventLedger, tripID kernel.UUID, stage lifecycle.Stage) (*parcel.Event, error) {
	var existing *parcel.Event
	for _, e := range ledger.EventsForTrip(tripID) {
		switch {
		case s.ranking.IsAbove(e.Stage(), stage):
			if err := ledger.RemoveEvent(e.ID()); err != nil {
				return nil, err
			}
		case e.Stage() == stage && existing == nil:
			existing = e
		case e.Stage() == stage:
			if err := ledger.RemoveEvent(e.ID()); err != nil {
				return nil, err
			}
		}
	}
	return existing, nil
}

func (s *EventSynchronizer) appendEvent(
	ledger EventLedger,
	tripID kernel.UUID,
	stage lifecycle.Stage,
	opts EventOptions,
) error {
	origin, destination, date := s.defaults(ledger, opts)
	e, err := parcel.NewEvent(stage, origin, destination, date, &tripID)
	if err != nil {
		return err
	}
	return ledger.AppendEvent(e)
}

// defaults resolves opts against the parcel and the clock.
func (s *EventSynchronizer) defaults(ledger EventLedger, opts EventOptions) (origin, destination kernel.Destination, date time.Time) {
	date = opts.Date
	if date.IsZero() {
		date = s.now()
	}
	return opts.Origin.Or(ledger.Origin()), opts.Destination.Or(ledger.Destination()), date
}

func (s *EventSynchronizer) createEndEvents(
	ctx context.Context,
	pl *planner,
	tripID kernel.UUID,
	lines []*trip.PackageLine,
) error {
	date := s.now()
	for _, l := range lines {
		if !l.HasEndEvent() {
			continue
		}
		ledger, err := pl.ledger(ctx, l.PackageID())
		if err != nil {
			return err
		}
		e, err := parcel.NewEvent(
			l.EndEvent(),
			ledger.Origin(),
			l.EndDestination().Or(ledger.Destination()),
			date,
			&tripID,
		)
		if err != nil {
			return err
		}
		if err := ledger.AppendEvent(e); err != nil {
			return err
		}
	}
	return nil
}

// deleteEventsForRemoved drops every event the trip owns on removed parcels.
// A parcel still carried by another line of current keeps its events.
func (s *EventSynchronizer) deleteEventsForRemoved(
	ctx context.Context,
	pl *planner,
	current *trip.Trip,
	removed []*trip.PackageLine,
) error {
	for _, l := range removed {
		if l.PackageID().IsZero() || current.HasPackage(l.PackageID()) {
			continue
		}
		ledger, err := pl.ledger(ctx, l.PackageID())
		if err != nil {
			return err
		}
		if err := removeTripEvents(ledger, current.ID()); err != nil {
			return err
		}
	}
	return nil
}

func removeTripEvents(ledger EventLedger, tripID kernel.UUID) error {
	for _, e := range ledger.EventsForTrip(tripID) {
		if err := ledger.RemoveEvent(e.ID()); err != nil {
			return err
		}
	}
	return nil
}
