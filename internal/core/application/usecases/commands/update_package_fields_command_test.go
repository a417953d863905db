package commands_test

import (
	"testing"

	"transportation/internal/core/application/usecases/commands"
	"transportation/internal/core/domain/model/kernel"
	"transportation/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUpdatePackageFieldsCommand_ValidInput(t *testing.T) {
	items := []commands.PackageFields{{PackageID: kernel.NewUUID(), Destination: kernel.ParseDestination("X"), ToCollect: true}}
	cmd, err := commands.NewUpdatePackageFieldsCommand(items)
	require.NoError(t, err)
	assert.Equal(t, items, cmd.Items())
}

func TestNewUpdatePackageFieldsCommand_EmptyBatch(t *testing.T) {
	_, err := commands.NewUpdatePackageFieldsCommand(nil)
	assert.ErrorIs(t, err, commands.ErrPackageFieldsBatchIsRequired)
}

func TestNewUpdatePackageFieldsCommand_InvalidItem(t *testing.T) {
	_, err := commands.NewUpdatePackageFieldsCommand([]commands.PackageFields{
		{PackageID: kernel.NewUUID()},
		{},
	})
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Contains(t, err.Error(), "item 2")
}

func TestUpdatePackageFieldsCommandHandler(t *testing.T) {
	w := newWorld(t, nil)
	p1, p2 := w.newPackage(t, "X"), w.newPackage(t, "Y")

	cmd, err := commands.NewUpdatePackageFieldsCommand([]commands.PackageFields{
		{PackageID: p1, Destination: kernel.ParseDestination("Z")},
		{PackageID: p2, Destination: kernel.Destination{}, ToCollect: true},
	})
	require.NoError(t, err)

	saved, err := w.fields.Handle(t.Context(), cmd)
	require.NoError(t, err)
	assert.Equal(t, []kernel.UUID{p1, p2}, saved)
	assert.Equal(t, "Z", w.parcel(t, p1).Destination().String())
	assert.Equal(t, "Y", w.parcel(t, p2).Destination().String(), "an empty destination is ignored")
	assert.True(t, w.parcel(t, p2).ToCollect())

	saved, err = w.fields.Handle(t.Context(), cmd)
	require.NoError(t, err)
	assert.Empty(t, saved, "re-applying the same batch saves nothing")
}

func TestUpdatePackageFieldsCommandHandler_UnknownPackage(t *testing.T) {
	w := newWorld(t, nil)
	cmd, err := commands.NewUpdatePackageFieldsCommand([]commands.PackageFields{{PackageID: kernel.NewUUID(), ToCollect: true}})
	require.NoError(t, err)

	_, err = w.fields.Handle(t.Context(), cmd)

	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}
