package parcel

import (
	"errors"
	"time"

	"transportation/internal/core/domain/model/kernel"
	"transportation/internal/core/domain/model/lifecycle"
	"transportation/internal/pkg/errs"
)

var (
	ErrEventIsNotConstructed = errors.New("Event must be created via NewEvent or RestoreEvent")
	ErrEventDateIsRequired   = errs.NewValueIsRequiredError("event date")
)

// Event is one row of a parcel's history.
type Event struct {
	id          kernel.UUID
	stage       lifecycle.Stage
	origin      kernel.Destination
	destination kernel.Destination
	date        time.Time

	// tripID is nil for events that no trip created.
	tripID *kernel.UUID

	isConstructed bool
}

// NewEvent creates an event with a fresh id. tripID may be nil.
func NewEvent(
	stage lifecycle.Stage,
	origin, destination kernel.Destination,
	date time.Time,
	tripID *kernel.UUID,
) (*Event, error) {
	if stage == "" {
		return nil, lifecycle.ErrStageIsRequired
	}
	if date.IsZero() {
		return nil, ErrEventDateIsRequired
	}
	if tripID != nil {
		if err := tripID.Validate(); err != nil {
			return nil, err
		}
	}

	return &Event{
		id:            kernel.NewUUID(),
		stage:         stage,
		origin:        origin,
		destination:   destination,
		date:          date,
		tripID:        cloneID(tripID),
		isConstructed: true,
	}, nil
}

// RestoreEvent rebuilds a persisted event without validation.
func RestoreEvent(
	id kernel.UUID,
	stage lifecycle.Stage,
	origin, destination kernel.Destination,
	date time.Time,
	tripID *kernel.UUID,
) *Event {
	return &Event{
		id:            id,
		stage:         stage,
		origin:        origin,
		destination:   destination,
		date:          date,
		tripID:        cloneID(tripID),
		isConstructed: true,
	}
}

func (e *Event) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEventIsNotConstructed
	}
	return nil
}

func (e *Event) ID() kernel.UUID                 { return e.id }
func (e *Event) Stage() lifecycle.Stage          { return e.stage }
func (e *Event) Origin() kernel.Destination      { return e.origin }
func (e *Event) Destination() kernel.Destination { return e.destination }
func (e *Event) Date() time.Time                 { return e.date }

// TripID returns the owning trip, or nil.
func (e *Event) TripID() *kernel.UUID {
	return cloneID(e.tripID)
}

// IsOwnedBy reports whether the event was created by trip tripID.
func (e *Event) IsOwnedBy(tripID kernel.UUID) bool {
	return e.tripID != nil && e.tripID.IsEqual(tripID)
}

func (e *Event) clone() *Event {
	c := *e
	c.tripID = cloneID(e.tripID)
	return &c
}

func cloneID(id *kernel.UUID) *kernel.UUID {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}

// EventRef points at one event of one parcel, as listed by a store query
// across parcels.
type EventRef struct {
	PackageID kernel.UUID
	EventID   kernel.UUID
	Stage     lifecycle.Stage
}
