package commands_test

import (
	"context"
	"testing"
	"time"

	"transportation/internal/adapters/out/memory"
	"transportation/internal/core/application/usecases/commands"
	"transportation/internal/core/domain/model/kernel"
	"transportation/internal/core/domain/model/lifecycle"
	"transportation/internal/core/domain/model/parcel"
	"transportation/internal/core/domain/model/trip"
	"transportation/internal/core/domain/services"
	"transportation/internal/core/ports"

	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

type uowFactory func() commands.UoW

func (f uowFactory) Create() commands.UoW { return f() }

type packageUoWFactory func() commands.PackageUoW

func (f packageUoWFactory) Create() commands.PackageUoW { return f() }

// world wires the command handlers to one in-memory store.
type world struct {
	store    *memory.Store
	packages ports.PackageRepository
	trips    ports.TripRepository
	save     commands.SaveTripCommandHandler
	remove   commands.DeleteTripCommandHandler
	fields   commands.UpdatePackageFieldsCommandHandler
	create   commands.CreatePackageCommandHandler
	resync   commands.ResyncTripEventsCommandHandler
}

func newWorld(t *testing.T, notifier ports.Notifier) *world {
	t.Helper()

	store := memory.NewStore()
	factory := memory.NewUnitOfWorkFactory(store)
	uows := uowFactory(func() commands.UoW { return factory.Create() })
	packageUoWs := packageUoWFactory(func() commands.PackageUoW { return factory.Create() })

	ranking := lifecycle.DefaultRanking()
	validator, err := services.NewTripValidator(ranking)
	require.NoError(t, err)
	next := t0
	synchronizer, err := services.NewEventSynchronizer(ranking, func() time.Time {
		next = next.Add(time.Minute)
		return next
	})
	require.NoError(t, err)
	guard, err := services.NewDeletionGuard(ranking)
	require.NoError(t, err)

	if notifier == nil {
		notifier = silentNotifier{}
	}

	return &world{
		store:    store,
		packages: memory.NewPackageRepository(store),
		trips:    memory.NewTripRepository(store),
		save:     commands.NewSaveTripCommandHandler(uows, validator, synchronizer, notifier),
		remove:   commands.NewDeleteTripCommandHandler(uows, guard),
		fields:   commands.NewUpdatePackageFieldsCommandHandler(packageUoWs),
		create:   commands.NewCreatePackageCommandHandler(packageUoWs),
		resync:   commands.NewResyncTripEventsCommandHandler(uows, synchronizer),
	}
}

func newSynchronizer(t *testing.T) *services.EventSynchronizer {
	t.Helper()
	s, err := services.NewEventSynchronizer(lifecycle.DefaultRanking(), func() time.Time { return t0 })
	require.NoError(t, err)
	return s
}

type silentNotifier struct{}

func (silentNotifier) Warn(_ context.Context, _, _ string) {}

func (w *world) newPackage(t *testing.T, destination string) kernel.UUID {
	t.Helper()
	id := kernel.NewUUID()
	cmd, err := commands.NewCreatePackageCommand(id, kernel.ParseDestination("Depot"), kernel.ParseDestination(destination))
	require.NoError(t, err)
	require.NoError(t, w.create.Handle(t.Context(), cmd))
	return id
}

func (w *world) parcel(t *testing.T, id kernel.UUID) *parcel.Parcel {
	t.Helper()
	p, err := w.packages.Get(t.Context(), id)
	require.NoError(t, err)
	return p
}

func (w *world) trip(t *testing.T, id kernel.UUID) *trip.Trip {
	t.Helper()
	tr, err := w.trips.Get(t.Context(), id)
	require.NoError(t, err)
	return tr
}

func (w *world) saveTrip(
	t *testing.T,
	id kernel.UUID,
	state lifecycle.TripState,
	lines []trip.PackageLineSpec,
	stops []commands.StopSpec,
) commands.SaveTripResult {
	t.Helper()
	cmd, err := commands.NewSaveTripCommand(id, state, lines, stops)
	require.NoError(t, err)
	result, err := w.save.Handle(t.Context(), cmd)
	require.NoError(t, err)
	return result
}

func line(packageID kernel.UUID, destination string) trip.PackageLineSpec {
	return trip.PackageLineSpec{PackageID: packageID, Destination: kernel.ParseDestination(destination)}
}

func lineSpecs(tr *trip.Trip) []trip.PackageLineSpec {
	var out []trip.PackageLineSpec
	for _, l := range tr.Packages() {
		out = append(out, l.Spec())
	}
	return out
}

func stopSpecs(tr *trip.Trip) []commands.StopSpec {
	var out []commands.StopSpec
	for _, s := range tr.Stops() {
		out = append(out, commands.StopSpec{ID: s.ID(), Stop: s.Stop()})
	}
	return out
}

func tripStages(p *parcel.Parcel, tripID kernel.UUID) []lifecycle.Stage {
	var out []lifecycle.Stage
	for _, e := range p.EventsForTrip(tripID) {
		out = append(out, e.Stage())
	}
	return out
}
