package parcel

import (
	"errors"
	"fmt"
	"time"

	"transportation/internal/core/domain/model/kernel"
	"transportation/internal/core/domain/model/lifecycle"
	"transportation/internal/pkg/errs"
)

var (
	// ErrParcelIsNotConstructed is returned when a Parcel was not created through
	// NewParcel or RestoreParcel.
	ErrParcelIsNotConstructed = errors.New("Parcel must be created via NewParcel or RestoreParcel")
)

// Parcel is the package aggregate: a shipment with an origin, a destination
// and an ordered event history.
//
// Parcel follows these invariants:
//   - Must have a valid unique identifier
//   - Must have a destination
//   - State is the stage of the latest event, or received without events
//   - Event ids are unique within the ledger
type Parcel struct {
	id          kernel.UUID
	origin      kernel.Destination
	destination kernel.Destination
	toCollect   bool
	state       lifecycle.Stage
	events      []*Event

	isConstructed bool
}

// NewParcel registers a parcel in the received state with an empty ledger.
// The origin may be empty; the destination may not.
func NewParcel(id kernel.UUID, origin, destination kernel.Destination) (*Parcel, error) {
	p := &Parcel{
		origin:        origin,
		state:         lifecycle.StageReceived,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setDestination(destination),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestoreParcel rebuilds a persisted parcel. The stored state is kept as-is
// until the ledger is next mutated.
func RestoreParcel(
	id kernel.UUID,
	origin, destination kernel.Destination,
	toCollect bool,
	state lifecycle.Stage,
	events []*Event,
) *Parcel {
	return &Parcel{
		id:            id,
		origin:        origin,
		destination:   destination,
		toCollect:     toCollect,
		state:         state,
		events:        append([]*Event(nil), events...),
		isConstructed: true,
	}
}

// Validate ensures the Parcel was built by one of the constructors.
func (p *Parcel) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrParcelIsNotConstructed
	}
	return nil
}

// IsEqual compares parcels by id.
func (p *Parcel) IsEqual(other *Parcel) bool {
	return other != nil && p.id.IsEqual(other.id)
}

func (p *Parcel) ID() kernel.UUID                 { return p.id }
func (p *Parcel) Origin() kernel.Destination      { return p.origin }
func (p *Parcel) Destination() kernel.Destination { return p.destination }
func (p *Parcel) ToCollect() bool                 { return p.toCollect }
func (p *Parcel) State() lifecycle.Stage          { return p.state }

// Events returns the ledger in order. The returned events are copies.
func (p *Parcel) Events() []*Event {
	out := make([]*Event, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.clone())
	}
	return out
}

// EventsForTrip returns copies of the events owned by tripID, in ledger order.
func (p *Parcel) EventsForTrip(tripID kernel.UUID) []*Event {
	var out []*Event
	for _, e := range p.events {
		if e.IsOwnedBy(tripID) {
			out = append(out, e.clone())
		}
	}
	return out
}

// UpdateDestination sets a new destination. Empty or unchanged destinations
// are ignored. It reports whether the parcel changed.
func (p *Parcel) UpdateDestination(destination kernel.Destination) bool {
	if destination.IsEmpty() || destination.IsEqual(p.destination) {
		return false
	}
	p.destination = destination
	return true
}

// SetToCollect reports whether the flag changed.
func (p *Parcel) SetToCollect(toCollect bool) bool {
	if p.toCollect == toCollect {
		return false
	}
	p.toCollect = toCollect
	return true
}

// AppendEvent adds e at the end of the ledger.
func (p *Parcel) AppendEvent(e *Event) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if p.indexOf(e.ID()) >= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"event is invalid",
			fmt.Errorf("event %s is already in the ledger of %s", e.ID(), p.id),
		)
	}

	p.events = append(p.events, e.clone())
	p.refreshState()
	return nil
}

// EventPatch carries the fields an in-place update rewrites.
type EventPatch struct {
	Origin      kernel.Destination
	Destination kernel.Destination
	Date        time.Time
	TripID      *kernel.UUID
}

// UpdateEvent rewrites origin, destination, date and trip reference of the
// event eventID, keeping its position and stage.
func (p *Parcel) UpdateEvent(eventID kernel.UUID, patch EventPatch) error {
	i := p.indexOf(eventID)
	if i < 0 {
		return errs.NewObjectNotFoundError("eventID", eventID)
	}
	if patch.Date.IsZero() {
		return ErrEventDateIsRequired
	}

	e := p.events[i]
	e.origin = patch.Origin
	e.destination = patch.Destination
	e.date = patch.Date
	e.tripID = cloneID(patch.TripID)

	p.refreshState()
	return nil
}

// RemoveEvent deletes the event eventID from the ledger.
func (p *Parcel) RemoveEvent(eventID kernel.UUID) error {
	i := p.indexOf(eventID)
	if i < 0 {
		return errs.NewObjectNotFoundError("eventID", eventID)
	}

	p.events = append(p.events[:i], p.events[i+1:]...)
	p.refreshState()
	return nil
}

func (p *Parcel) indexOf(eventID kernel.UUID) int {
	for i, e := range p.events {
		if e.id.IsEqual(eventID) {
			return i
		}
	}
	return -1
}

// refreshState derives state from the latest event. Ties on date go to the
// later ledger position.
func (p *Parcel) refreshState() {
	if len(p.events) == 0 {
		p.state = lifecycle.StageReceived
		return
	}

	latest := p.events[0]
	for _, e := range p.events[1:] {
		if !e.date.Before(latest.date) {
			latest = e
		}
	}
	p.state = latest.stage
}

func (p *Parcel) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Parcel) setDestination(destination kernel.Destination) error {
	if destination.IsEmpty() {
		return kernel.ErrDestinationIsRequired
	}
	p.destination = destination
	return nil
}
