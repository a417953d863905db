package trip

import (
	"errors"

	"transportation/internal/core/domain/model/kernel"
	"transportation/internal/core/domain/model/lifecycle"
)

var (
	// ErrTripIsNotConstructed is returned when a Trip was not created through
	// NewTrip or RestoreTrip.
	ErrTripIsNotConstructed = errors.New("Trip must be created via NewTrip or RestoreTrip")
)

// Trip is the transportation trip aggregate root.
//
// Trip follows these invariants:
//   - Must have a valid unique identifier
//   - State is one of planned, loaded, transit, completed
//   - Line ids are unique; a line id always refers to the same package
//
// Package and stop rules (no duplicates, destinations set) are checked by
// the validation pipeline before a save, not by the aggregate.
type Trip struct {
	id       kernel.UUID
	state    lifecycle.TripState
	packages []*PackageLine
	stops    []*StopLine

	// persisted is set for trips rebuilt from storage. Until then no stored
	// line can claim an id, so client ids are kept as sent.
	persisted     bool
	isConstructed bool
}

// NewTrip creates an empty trip in the given state.
func NewTrip(id kernel.UUID, state lifecycle.TripState) (*Trip, error) {
	t := &Trip{isConstructed: true}

	if err := errors.Join(
		t.setID(id),
		t.SetState(state),
	); err != nil {
		return nil, err
	}

	return t, nil
}

// RestoreTrip rebuilds a persisted trip without validation.
func RestoreTrip(id kernel.UUID, state lifecycle.TripState, packages []*PackageLine, stops []*StopLine) *Trip {
	return &Trip{
		id:            id,
		state:         state,
		packages:      append([]*PackageLine(nil), packages...),
		stops:         append([]*StopLine(nil), stops...),
		persisted:     true,
		isConstructed: true,
	}
}

// Validate ensures the Trip was built by one of the constructors.
func (t *Trip) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTripIsNotConstructed
	}
	return nil
}

// IsEqual compares trips by id.
func (t *Trip) IsEqual(other *Trip) bool {
	return other != nil && t.id.IsEqual(other.id)
}

func (t *Trip) ID() kernel.UUID            { return t.id }
func (t *Trip) State() lifecycle.TripState { return t.state }

// Packages returns the package lines in order.
func (t *Trip) Packages() []*PackageLine {
	return append([]*PackageLine(nil), t.packages...)
}

// Stops returns the stop lines in order.
func (t *Trip) Stops() []*StopLine {
	return append([]*StopLine(nil), t.stops...)
}

// PackageIDs returns the distinct non-empty package ids of the lines, in
// first-seen order.
func (t *Trip) PackageIDs() []kernel.UUID {
	seen := make(map[kernel.UUID]struct{}, len(t.packages))
	ids := make([]kernel.UUID, 0, len(t.packages))
	for _, l := range t.packages {
		if l.packageID.IsZero() {
			continue
		}
		if _, ok := seen[l.packageID]; ok {
			continue
		}
		seen[l.packageID] = struct{}{}
		ids = append(ids, l.packageID)
	}
	return ids
}

// HasPackage reports whether any line carries packageID.
func (t *Trip) HasPackage(packageID kernel.UUID) bool {
	for _, l := range t.packages {
		if l.packageID.IsEqual(packageID) {
			return true
		}
	}
	return false
}

// SetState moves the trip to state. Any valid state may follow any other.
func (t *Trip) SetState(state lifecycle.TripState) error {
	if err := state.Validate(); err != nil {
		return err
	}
	t.state = state
	return nil
}

// ReplacePackages swaps the package list for specs.
//
// On a persisted trip a spec keeps its line id only if the trip already has a
// line with that id for the same package. Otherwise a fresh id is minted, so
// a line that now points to another package counts as one removal plus one
// addition. A trip that was never persisted keeps the ids it is given.
// Repeated ids are always re-minted.
func (t *Trip) ReplacePackages(specs []PackageLineSpec) {
	current := make(map[kernel.UUID]kernel.UUID, len(t.packages))
	for _, l := range t.packages {
		current[l.id] = l.packageID
	}

	used := make(map[kernel.UUID]struct{}, len(specs))
	lines := make([]*PackageLine, 0, len(specs))
	for _, spec := range specs {
		packageID, known := current[spec.ID]
		_, taken := used[spec.ID]
		switch {
		case taken:
			spec.ID = kernel.UUID{}
		case known && !packageID.IsEqual(spec.PackageID):
			spec.ID = kernel.UUID{}
		case !known && t.persisted:
			spec.ID = kernel.UUID{}
		}
		line := NewPackageLine(spec)
		used[line.id] = struct{}{}
		lines = append(lines, line)
	}
	t.packages = lines
}

// ReplaceStops swaps the stop list. Repeated ids, and on a persisted trip ids
// the trip does not have, are re-minted.
func (t *Trip) ReplaceStops(stops []*StopLine) {
	current := make(map[kernel.UUID]struct{}, len(t.stops))
	for _, s := range t.stops {
		current[s.id] = struct{}{}
	}

	used := make(map[kernel.UUID]struct{}, len(stops))
	lines := make([]*StopLine, 0, len(stops))
	for _, s := range stops {
		id := s.id
		_, known := current[id]
		_, taken := used[id]
		if taken || (!known && t.persisted) {
			id = kernel.UUID{}
		}
		line := NewStopLine(id, s.stop)
		used[line.id] = struct{}{}
		lines = append(lines, line)
	}
	t.stops = lines
}

// AppendStop adds a stop at the end of the stop list and returns it.
func (t *Trip) AppendStop(stop kernel.Destination) *StopLine {
	line := NewStopLine(kernel.UUID{}, stop)
	t.stops = append(t.stops, line)
	return line
}

// Snapshot returns a deep copy that later edits of t do not affect.
func (t *Trip) Snapshot() *Trip {
	c := &Trip{
		id:            t.id,
		state:         t.state,
		packages:      make([]*PackageLine, 0, len(t.packages)),
		stops:         make([]*StopLine, 0, len(t.stops)),
		persisted:     t.persisted,
		isConstructed: t.isConstructed,
	}
	for _, l := range t.packages {
		c.packages = append(c.packages, l.clone())
	}
	for _, s := range t.stops {
		c.stops = append(c.stops, s.clone())
	}
	return c
}

func (t *Trip) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.id = id
	return nil
}
