package lifecycle

import (
	"fmt"
	"strings"

	"transportation/internal/pkg/errs"
)

// TripState is the progress of a transportation trip.
//
// Any state may be set from any other: moving backwards (e.g. transit back to
// loaded) is allowed and rolls back the package events of the later states.
type TripState int

const (
	// UnknownTripState is the zero value and is never valid.
	UnknownTripState TripState = iota

	// Planned means the trip and its package list are being prepared.
	Planned

	// Loaded means the packages are on the vehicle.
	Loaded

	// Transit means the vehicle is on the road.
	Transit

	// Completed means the trip is finished; package end events are recorded.
	Completed
)

var tripStateNames = map[TripState]string{
	Planned:   "planned",
	Loaded:    "loaded",
	Transit:   "transit",
	Completed: "completed",
}

// ParseTripState converts the persisted/wire name of a state.
// Matching is case-insensitive and ignores surrounding whitespace.
func ParseTripState(s string) (TripState, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for state, name := range tripStateNames {
		if name == normalized {
			return state, nil
		}
	}
	return UnknownTripState, errs.NewValueIsInvalidErrorWithCause(
		"trip state is invalid",
		fmt.Errorf("%q is not a valid trip state", s),
	)
}

// Validate rejects UnknownTripState and out-of-range values.
func (s TripState) Validate() error {
	if _, ok := tripStateNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"trip state is invalid",
			fmt.Errorf("%d is not a valid trip state", s),
		)
	}
	return nil
}

// String returns the lowercase name, or "unknown".
func (s TripState) String() string {
	if name, ok := tripStateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Stage returns the package event stage that mirrors this state.
// Completed has no mirrored stage: completion records per-line end events.
func (s TripState) Stage() (Stage, bool) {
	switch s {
	case Planned:
		return StagePlanned, true
	case Loaded:
		return StageLoaded, true
	case Transit:
		return StageTransit, true
	default:
		return "", false
	}
}

// ReportsStopMismatches reports whether stop/destination mismatches are still
// worth warning about, i.e. the stop list can still be changed before leaving.
func (s TripState) ReportsStopMismatches() bool {
	return s == Planned || s == Loaded
}
