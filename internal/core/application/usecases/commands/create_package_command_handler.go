package commands

import (
	"context"

	"transportation/internal/core/domain/model/parcel"
)

// CreatePackageCommandHandler registers new packages.
type CreatePackageCommandHandler struct {
	uowFactory PackageUoWFactory
}

func NewCreatePackageCommandHandler(uowFactory PackageUoWFactory) CreatePackageCommandHandler {
	return CreatePackageCommandHandler{uowFactory: uowFactory}
}

func (h *CreatePackageCommandHandler) Handle(ctx context.Context, cmd CreatePackageCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	p, err := parcel.NewParcel(cmd.PackageID(), cmd.Origin(), cmd.Destination())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.PackageRepository().Add(ctx, p); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
