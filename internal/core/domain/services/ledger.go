package services

import (
	"context"

	"transportation/internal/core/domain/model/kernel"
	"transportation/internal/core/domain/model/lifecycle"
	"transportation/internal/core/domain/model/parcel"
)

// EventLedger is the part of a parcel the synchronizer works with: the
// parcel's defaults and its ordered, trip-scoped event history.
type EventLedger interface {
	ID() kernel.UUID
	Origin() kernel.Destination
	Destination() kernel.Destination
	EventsForTrip(tripID kernel.UUID) []*parcel.Event
	AppendEvent(e *parcel.Event) error
	UpdateEvent(eventID kernel.UUID, patch parcel.EventPatch) error
	RemoveEvent(eventID kernel.UUID) error
}

var _ EventLedger = (*parcel.Parcel)(nil)

// PackageReader loads parcels by id. A missing parcel is reported as
// errs.ObjectNotFoundError.
type PackageReader interface {
	Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error)
}

// PackageWriter persists a changed parcel together with its ledger.
type PackageWriter interface {
	Update(ctx context.Context, p *parcel.Parcel) error
}

// TripEventFinder lists the events owned by a trip across all parcels.
type TripEventFinder interface {
	FindTripEvents(ctx context.Context, tripID kernel.UUID, excluded []lifecycle.Stage) ([]parcel.EventRef, error)
}

// recordingLedger forwards to a parcel and records every mutation in change.
type recordingLedger struct {
	EventLedger
	change *PackageChange
}

func (l recordingLedger) AppendEvent(e *parcel.Event) error {
	if err := l.EventLedger.AppendEvent(e); err != nil {
		return err
	}
	l.change.record(MutationAppend, e.ID(), e.Stage())
	return nil
}

func (l recordingLedger) UpdateEvent(eventID kernel.UUID, patch parcel.EventPatch) error {
	stage := l.stageOf(eventID)
	if err := l.EventLedger.UpdateEvent(eventID, patch); err != nil {
		return err
	}
	l.change.record(MutationUpdate, eventID, stage)
	return nil
}

func (l recordingLedger) RemoveEvent(eventID kernel.UUID) error {
	stage := l.stageOf(eventID)
	if err := l.EventLedger.RemoveEvent(eventID); err != nil {
		return err
	}
	l.change.record(MutationRemove, eventID, stage)
	return nil
}

func (l recordingLedger) stageOf(eventID kernel.UUID) lifecycle.Stage {
	for _, e := range l.change.Parcel.Events() {
		if e.ID().IsEqual(eventID) {
			return e.Stage()
		}
	}
	return ""
}
