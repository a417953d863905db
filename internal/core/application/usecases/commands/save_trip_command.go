package commands

import (
	"errors"

	"transportation/internal/core/domain/model/kernel"
	"transportation/internal/core/domain/model/lifecycle"
	"transportation/internal/core/domain/model/trip"
	"transportation/internal/pkg/guard"
)

var (
	ErrSaveTripCommandIsNotConstructed = errors.New(
		"SaveTripCommand must be created via NewSaveTripCommand constructor",
	)
)

// StopSpec is one stop of a SaveTripCommand. ID is zero for new stops.
type StopSpec struct {
	ID   kernel.UUID
	Stop kernel.Destination
}

// SaveTripCommand creates or updates a trip with its full package and stop
// lists. Lines sent back with their ids keep their identity, which is what
// tells added and removed packages apart.
//
// Example:
//
//	cmd, err := NewSaveTripCommand(kernel.UUID{}, lifecycle.Planned, []trip.PackageLineSpec{
//	    {PackageID: p1, Destination: kernel.ParseDestination("X")},
//	}, nil)
//	if err != nil {
//	    return fmt.Errorf("invalid command: %w", err)
//	}
//	result, err := handler.Handle(ctx, cmd)
type SaveTripCommand struct { //nolint:recvcheck //using for validation
	tripID   kernel.UUID
	state    lifecycle.TripState
	packages []trip.PackageLineSpec
	stops    []StopSpec

	guard guard.ConstructorGuard
}

// NewSaveTripCommand builds the command. A zero tripID creates a new trip.
// Package and stop contents are checked by the validation pipeline, not here.
func NewSaveTripCommand(
	tripID kernel.UUID,
	state lifecycle.TripState,
	packages []trip.PackageLineSpec,
	stops []StopSpec,
) (SaveTripCommand, error) {
	command := SaveTripCommand{
		tripID:   tripID,
		packages: append([]trip.PackageLineSpec(nil), packages...),
		stops:    append([]StopSpec(nil), stops...),
		guard:    guard.NewConstructorGuard(),
	}

	if err := command.setState(state); err != nil {
		return SaveTripCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c SaveTripCommand) Validate() error {
	return c.guard.Validate(ErrSaveTripCommandIsNotConstructed)
}

// TripID returns the trip to update, or the zero UUID for a new trip.
func (c SaveTripCommand) TripID() kernel.UUID {
	return c.tripID
}

func (c SaveTripCommand) State() lifecycle.TripState {
	return c.state
}

func (c SaveTripCommand) Packages() []trip.PackageLineSpec {
	return append([]trip.PackageLineSpec(nil), c.packages...)
}

func (c SaveTripCommand) Stops() []StopSpec {
	return append([]StopSpec(nil), c.stops...)
}

func (c *SaveTripCommand) setState(state lifecycle.TripState) error {
	if err := state.Validate(); err != nil {
		return err
	}
	c.state = state
	return nil
}
