package commands

import (
	"errors"

	"transportation/internal/pkg/guard"
)

var (
	ErrResyncTripEventsCommandIsNotConstructed = errors.New(
		"ResyncTripEventsCommand must be created via NewResyncTripEventsCommand constructor",
	)
)

// ResyncTripEventsCommand re-runs the full event sync of every trip that is
// still planned, loaded or in transit.
type ResyncTripEventsCommand struct {
	guard guard.ConstructorGuard
}

func NewResyncTripEventsCommand() ResyncTripEventsCommand {
	return ResyncTripEventsCommand{guard: guard.NewConstructorGuard()}
}

// Validate ensures the command was created through the constructor.
func (c ResyncTripEventsCommand) Validate() error {
	return c.guard.Validate(ErrResyncTripEventsCommandIsNotConstructed)
}
