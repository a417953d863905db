package commands

import (
	"context"

	"transportation/internal/core/domain/model/kernel"
)

// UpdatePackageFieldsCommandHandler applies a batch of package field
// updates. A package is saved only when one of its fields actually changed,
// so re-applying the same batch saves nothing.
type UpdatePackageFieldsCommandHandler struct {
	uowFactory PackageUoWFactory
}

func NewUpdatePackageFieldsCommandHandler(uowFactory PackageUoWFactory) UpdatePackageFieldsCommandHandler {
	return UpdatePackageFieldsCommandHandler{uowFactory: uowFactory}
}

// Handle returns the ids of the packages that were saved.
func (h *UpdatePackageFieldsCommandHandler) Handle(ctx context.Context, cmd UpdatePackageFieldsCommand) ([]kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	packageRepo := uow.PackageRepository()

	saved := make([]kernel.UUID, 0)
	for _, item := range cmd.Items() {
		p, err := packageRepo.Get(ctx, item.PackageID)
		if err != nil {
			return nil, err
		}

		destinationChanged := p.UpdateDestination(item.Destination)
		toCollectChanged := p.SetToCollect(item.ToCollect)
		if !destinationChanged && !toCollectChanged {
			continue
		}

		if err = packageRepo.Update(ctx, p); err != nil {
			return nil, err
		}
		saved = append(saved, p.ID())
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	return saved, nil
}
