package commands

import (
	"errors"
	"fmt"

	"transportation/internal/core/domain/model/kernel"
	"transportation/internal/pkg/errs"
	"transportation/internal/pkg/guard"
)

var (
	ErrUpdatePackageFieldsCommandIsNotConstructed = errors.New(
		"UpdatePackageFieldsCommand must be created via NewUpdatePackageFieldsCommand constructor",
	)
	ErrPackageFieldsBatchIsRequired = errs.NewValueIsRequiredError("package fields batch")
)

// PackageFields is one item of a batch: the destination and to-collect flag
// a trip line holds for its package.
type PackageFields struct {
	PackageID   kernel.UUID
	Destination kernel.Destination
	ToCollect   bool
}

// UpdatePackageFieldsCommand copies trip line fields back onto packages.
// An empty destination leaves the package destination untouched.
type UpdatePackageFieldsCommand struct { //nolint:recvcheck //using for validation
	items []PackageFields

	guard guard.ConstructorGuard
}

func NewUpdatePackageFieldsCommand(items []PackageFields) (UpdatePackageFieldsCommand, error) {
	if len(items) == 0 {
		return UpdatePackageFieldsCommand{}, ErrPackageFieldsBatchIsRequired
	}

	var problems []error
	for i, item := range items {
		if err := item.PackageID.Validate(); err != nil {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
				fmt.Sprintf("item %d", i+1), err))
		}
	}
	if err := errors.Join(problems...); err != nil {
		return UpdatePackageFieldsCommand{}, err
	}

	return UpdatePackageFieldsCommand{
		items: append([]PackageFields(nil), items...),
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdatePackageFieldsCommand) Validate() error {
	return c.guard.Validate(ErrUpdatePackageFieldsCommandIsNotConstructed)
}

func (c UpdatePackageFieldsCommand) Items() []PackageFields {
	return append([]PackageFields(nil), c.items...)
}
