package commands

import (
	"errors"

	"transportation/internal/core/domain/model/kernel"
	"transportation/internal/pkg/guard"
)

var (
	ErrCreatePackageCommandIsNotConstructed = errors.New(
		"CreatePackageCommand must be created via NewCreatePackageCommand constructor",
	)
)

// CreatePackageCommand registers a package in the received state.
//
// Example:
//
//	destination, _ := kernel.NewDestination("Warehouse 7")
//	cmd, err := NewCreatePackageCommand(kernel.NewUUID(), kernel.ParseDestination("Depot"), destination)
//	if err != nil {
//	    return fmt.Errorf("invalid command: %w", err)
//	}
type CreatePackageCommand struct { //nolint:recvcheck //using for validation
	packageID   kernel.UUID
	origin      kernel.Destination
	destination kernel.Destination

	guard guard.ConstructorGuard
}

// NewCreatePackageCommand validates the package id and destination.
// The origin may be empty.
func NewCreatePackageCommand(
	packageID kernel.UUID,
	origin, destination kernel.Destination,
) (CreatePackageCommand, error) {
	command := CreatePackageCommand{
		origin: origin,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setPackageID(packageID),
		command.setDestination(destination),
	); err != nil {
		return CreatePackageCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CreatePackageCommand) Validate() error {
	return c.guard.Validate(ErrCreatePackageCommandIsNotConstructed)
}

func (c CreatePackageCommand) PackageID() kernel.UUID          { return c.packageID }
func (c CreatePackageCommand) Origin() kernel.Destination      { return c.origin }
func (c CreatePackageCommand) Destination() kernel.Destination { return c.destination }

func (c *CreatePackageCommand) setPackageID(packageID kernel.UUID) error {
	if err := packageID.Validate(); err != nil {
		return err
	}
	c.packageID = packageID
	return nil
}

func (c *CreatePackageCommand) setDestination(destination kernel.Destination) error {
	if destination.IsEmpty() {
		return kernel.ErrDestinationIsRequired
	}
	c.destination = destination
	return nil
}
