package services_test

import (
	"context"
	"testing"
	"time"

	"transportation/internal/core/domain/model/kernel"
	"transportation/internal/core/domain/model/lifecycle"
	"transportation/internal/core/domain/model/parcel"
	"transportation/internal/core/domain/model/trip"
	"transportation/internal/core/domain/services"
	"transportation/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// save plans and applies the side effects of moving previous to current,
// the way the save command chains the services.
func save(t *testing.T, s *services.EventSynchronizer, store *packageStore, previous, current *trip.Trip) services.SideEffects {
	t.Helper()
	ctx := context.Background()
	added, removed := services.DiffPackageLines(previous, current.Packages())
	effects, err := s.Plan(ctx, previous, current, added, removed, store)
	require.NoError(t, err)
	require.NoError(t, services.Apply(ctx, effects, store))
	return effects
}

func TestNewEventSynchronizer(t *testing.T) {
	_, err := services.NewEventSynchronizer(lifecycle.Ranking{}, time.Now)
	assert.ErrorIs(t, err, lifecycle.ErrRankingIsNotConstructed)

	_, err = services.NewEventSynchronizer(lifecycle.DefaultRanking(), nil)
	assert.ErrorIs(t, err, services.ErrClockIsRequired)
}

func TestEventSynchronizer_NewPlannedTrip(t *testing.T) {
	s := newSynchronizer(t)
	p1, p2 := newParcel(t, "X"), newParcel(t, "Y")
	store := newPackageStore(p1, p2)
	tr := newTrip(t, lifecycle.Planned, carry(p1, "X"), carry(p2, "Y"))

	services.ReconcileStops(tr)
	effects := save(t, s, store, nil, tr)

	assert.Equal(t, []string{"X", "Y"}, stopLabels(tr))
	assert.Equal(t, []kernel.UUID{p1.ID(), p2.ID()}, effects.PackageIDs())
	for _, p := range []*parcel.Parcel{p1, p2} {
		owned := p.EventsForTrip(tr.ID())
		require.Len(t, owned, 1)
		assert.Equal(t, lifecycle.StagePlanned, owned[0].Stage())
		assert.Equal(t, "Depot", owned[0].Origin().String())
		assert.Equal(t, p.Destination(), owned[0].Destination())
		assert.Equal(t, t0, owned[0].Date())
		assert.Equal(t, lifecycle.StagePlanned, p.State())
	}
}

func TestEventSynchronizer_PlannedToLoaded(t *testing.T) {
	s := newSynchronizer(t)
	p1, p2 := newParcel(t, "X"), newParcel(t, "Y")
	store := newPackageStore(p1, p2)
	tr := newTrip(t, lifecycle.Planned, carry(p1, "X"), carry(p2, "Y"))
	save(t, s, store, nil, tr)

	previous := tr.Snapshot()
	require.NoError(t, tr.SetState(lifecycle.Loaded))
	save(t, s, store, previous, tr)

	for _, p := range []*parcel.Parcel{p1, p2} {
		owned := p.EventsForTrip(tr.ID())
		assert.Equal(t, []lifecycle.Stage{lifecycle.StagePlanned, lifecycle.StageLoaded}, stages(owned))
		assert.Equal(t, lifecycle.StageLoaded, p.State())
	}

	// Saving again in the same state must not add another loaded event.
	save(t, s, store, tr.Snapshot(), tr)
	for _, p := range []*parcel.Parcel{p1, p2} {
		assert.Len(t, p.EventsForTrip(tr.ID()), 2)
	}
}

func TestEventSynchronizer_StateRegressionPrunesLaterEvents(t *testing.T) {
	s := newSynchronizer(t)
	p1 := newParcel(t, "X")
	store := newPackageStore(p1)
	tr := newTrip(t, lifecycle.Loaded, carry(p1, "X"))
	save(t, s, store, nil, tr)

	previous := tr.Snapshot()
	require.NoError(t, tr.SetState(lifecycle.Transit))
	save(t, s, store, previous, tr)
	require.Equal(t, lifecycle.StageTransit, p1.State())

	previous = tr.Snapshot()
	require.NoError(t, tr.SetState(lifecycle.Loaded))
	effects := save(t, s, store, previous, tr)

	owned := p1.EventsForTrip(tr.ID())
	assert.Equal(t, []lifecycle.Stage{lifecycle.StageLoaded}, stages(owned))
	assert.Equal(t, lifecycle.StageLoaded, p1.State())

	change := effects.Change(p1.ID())
	require.NotNil(t, change)
	require.Len(t, change.Mutations, 2)
	assert.Equal(t, services.MutationRemove, change.Mutations[0].Kind)
	assert.Equal(t, lifecycle.StageTransit, change.Mutations[0].Stage)
	assert.Equal(t, services.MutationUpdate, change.Mutations[1].Kind)
	assert.Equal(t, lifecycle.StageLoaded, change.Mutations[1].Stage)
}

func TestEventSynchronizer_RegressionLeavesForeignEventsAlone(t *testing.T) {
	s := newSynchronizer(t)
	p1 := newParcel(t, "X")
	otherTrip := kernel.NewUUID()
	manual := withEvent(t, p1, lifecycle.StageDelivered, t0.Add(-time.Hour), nil)
	foreign := withEvent(t, p1, lifecycle.StageTransit, t0.Add(-time.Hour), &otherTrip)
	store := newPackageStore(p1)

	tr := newTrip(t, lifecycle.Planned, carry(p1, "X"))
	save(t, s, store, nil, tr)

	events := p1.Events()
	require.Len(t, events, 3)
	assert.True(t, events[0].ID().IsEqual(manual.ID()))
	assert.True(t, events[1].ID().IsEqual(foreign.ID()))
	assert.Equal(t, lifecycle.StagePlanned, events[2].Stage())
}

func TestEventSynchronizer_CompletionCreatesEndEvents(t *testing.T) {
	s := newSynchronizer(t)
	p1, p2 := newParcel(t, "X"), newParcel(t, "Y")
	store := newPackageStore(p1, p2)
	tr := newTrip(t, lifecycle.Transit, carry(p1, "X"), carry(p2, "Y"))
	save(t, s, store, nil, tr)
	p2Before := p2.Events()

	previous := tr.Snapshot()
	lines := specs(tr)
	lines[0].EndEvent = lifecycle.StageDelivered
	lines[0].EndDestination = kernel.ParseDestination("Z")
	tr.ReplacePackages(lines)
	require.NoError(t, tr.SetState(lifecycle.Completed))
	effects := save(t, s, store, previous, tr)

	assert.Equal(t, []kernel.UUID{p1.ID()}, effects.PackageIDs())

	owned := p1.EventsForTrip(tr.ID())
	require.Len(t, owned, 2)
	end := owned[1]
	assert.Equal(t, lifecycle.StageDelivered, end.Stage())
	assert.Equal(t, "Z", end.Destination().String())
	assert.Equal(t, p1.Origin(), end.Origin())
	assert.True(t, end.IsOwnedBy(tr.ID()))
	assert.Equal(t, lifecycle.StageDelivered, p1.State())

	assert.Equal(t, p2Before, p2.Events(), "packages without an end event are untouched")
}

func TestEventSynchronizer_EndEventDefaultsToPackageDestination(t *testing.T) {
	s := newSynchronizer(t)
	p1 := newParcel(t, "X")
	store := newPackageStore(p1)
	tr := newTrip(t, lifecycle.Transit, carry(p1, "Elsewhere"))
	save(t, s, store, nil, tr)

	previous := tr.Snapshot()
	lines := specs(tr)
	lines[0].EndEvent = lifecycle.StageReturned
	tr.ReplacePackages(lines)
	require.NoError(t, tr.SetState(lifecycle.Completed))
	save(t, s, store, previous, tr)

	owned := p1.EventsForTrip(tr.ID())
	require.Len(t, owned, 2)
	assert.Equal(t, "X", owned[1].Destination().String())
}

func TestEventSynchronizer_AddedPackagesCatchUp(t *testing.T) {
	s := newSynchronizer(t)
	p1, p2 := newParcel(t, "X"), newParcel(t, "Y")
	store := newPackageStore(p1, p2)
	tr := newTrip(t, lifecycle.Loaded, carry(p1, "X"))
	save(t, s, store, nil, tr)
	p1Before := p1.Events()
	store.gets = map[kernel.UUID]int{}

	previous := tr.Snapshot()
	tr.ReplacePackages(append(specs(tr), carry(p2, "Y")))
	effects := save(t, s, store, previous, tr)

	assert.Equal(t, []kernel.UUID{p2.ID()}, effects.PackageIDs())
	assert.Equal(t, p1Before, p1.Events())
	assert.Zero(t, store.gets[p1.ID()], "unchanged packages are not loaded")
	assert.Equal(t, []lifecycle.Stage{lifecycle.StageLoaded}, stages(p2.EventsForTrip(tr.ID())))
}

func TestEventSynchronizer_RemovedPackagesLoseTripEvents(t *testing.T) {
	s := newSynchronizer(t)
	p1, p2 := newParcel(t, "X"), newParcel(t, "Y")
	manual := withEvent(t, p2, lifecycle.StageTransferred, t0.Add(-time.Hour), nil)
	store := newPackageStore(p1, p2)
	tr := newTrip(t, lifecycle.Planned, carry(p1, "X"), carry(p2, "Y"))
	save(t, s, store, nil, tr)

	previous := tr.Snapshot()
	require.NoError(t, tr.SetState(lifecycle.Loaded))
	save(t, s, store, previous, tr)

	previous = tr.Snapshot()
	tr.ReplacePackages(specs(tr)[:1])
	save(t, s, store, previous, tr)

	assert.Empty(t, p2.EventsForTrip(tr.ID()))
	events := p2.Events()
	require.Len(t, events, 1)
	assert.True(t, events[0].ID().IsEqual(manual.ID()))
	assert.Equal(t, lifecycle.StageTransferred, p2.State())
	assert.Len(t, p1.EventsForTrip(tr.ID()), 2)
}

func TestEventSynchronizer_MovedPackageKeepsEvents(t *testing.T) {
	s := newSynchronizer(t)
	p1 := newParcel(t, "X")
	store := newPackageStore(p1)
	tr := newTrip(t, lifecycle.Loaded, carry(p1, "X"))
	save(t, s, store, nil, tr)

	// Drop the line and carry the same package on a brand new line.
	previous := tr.Snapshot()
	tr.ReplacePackages([]trip.PackageLineSpec{carry(p1, "X")})
	effects := save(t, s, store, previous, tr)

	owned := p1.EventsForTrip(tr.ID())
	require.Len(t, owned, 1)
	assert.Equal(t, lifecycle.StageLoaded, owned[0].Stage())
	for _, m := range effects.Change(p1.ID()).Mutations {
		assert.NotEqual(t, services.MutationRemove, m.Kind)
	}
}

func TestEventSynchronizer_CreateOrUpdateEventIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := newSynchronizer(t)
	p1 := newParcel(t, "X")
	store := newPackageStore(p1)
	tr := newTrip(t, lifecycle.Transit, carry(p1, "X"))

	first := services.EventOptions{
		Origin:      kernel.ParseDestination("A"),
		Destination: kernel.ParseDestination("B"),
		Date:        t0,
	}
	second := services.EventOptions{
		Origin:      kernel.ParseDestination("C"),
		Destination: kernel.ParseDestination("D"),
		Date:        t0.Add(time.Hour),
	}

	_, err := s.CreateOrUpdateEvent(ctx, tr.ID(), tr.Packages(), lifecycle.StageTransit, first, store)
	require.NoError(t, err)
	_, err = s.CreateOrUpdateEvent(ctx, tr.ID(), tr.Packages(), lifecycle.StageTransit, second, store)
	require.NoError(t, err)

	owned := p1.EventsForTrip(tr.ID())
	require.Len(t, owned, 1)
	assert.Equal(t, "C", owned[0].Origin().String())
	assert.Equal(t, "D", owned[0].Destination().String())
	assert.Equal(t, t0.Add(time.Hour), owned[0].Date())
}

func TestEventSynchronizer_CollapsesDuplicateStageEvents(t *testing.T) {
	ctx := context.Background()
	s := newSynchronizer(t)
	p1 := newParcel(t, "X")
	tr := newTrip(t, lifecycle.Planned, carry(p1, "X"))
	tripID := tr.ID()
	withEvent(t, p1, lifecycle.StagePlanned, t0, &tripID)
	withEvent(t, p1, lifecycle.StagePlanned, t0, &tripID)
	store := newPackageStore(p1)

	_, err := s.CreateOrUpdateEvent(ctx, tripID, tr.Packages(), lifecycle.StagePlanned, services.EventOptions{}, store)
	require.NoError(t, err)

	assert.Len(t, p1.EventsForTrip(tripID), 1)
}

func TestEventSynchronizer_UnknownTripStagesArePruned(t *testing.T) {
	ctx := context.Background()
	s := newSynchronizer(t)
	p1 := newParcel(t, "X")
	tr := newTrip(t, lifecycle.Loaded, carry(p1, "X"))
	tripID := tr.ID()
	withEvent(t, p1, "lost", t0, &tripID)
	store := newPackageStore(p1)

	effects, err := s.Resync(ctx, tr, store)
	require.NoError(t, err)

	assert.Equal(t, []lifecycle.Stage{lifecycle.StageLoaded}, stages(p1.EventsForTrip(tripID)))
	assert.False(t, effects.IsEmpty())
}

func TestEventSynchronizer_Resync(t *testing.T) {
	ctx := context.Background()

	t.Run("heals a missing event", func(t *testing.T) {
		s := newSynchronizer(t)
		p1, p2 := newParcel(t, "X"), newParcel(t, "Y")
		store := newPackageStore(p1, p2)
		tr := newTrip(t, lifecycle.Transit, carry(p1, "X"), carry(p2, "Y"))
		save(t, s, store, nil, tr)
		for _, e := range p2.EventsForTrip(tr.ID()) {
			require.NoError(t, p2.RemoveEvent(e.ID()))
		}

		effects, err := s.Resync(ctx, tr, store)
		require.NoError(t, err)
		require.NoError(t, services.Apply(ctx, effects, store))

		assert.Equal(t, []lifecycle.Stage{lifecycle.StageTransit}, stages(p2.EventsForTrip(tr.ID())))
		assert.Len(t, p1.EventsForTrip(tr.ID()), 1)
	})

	t.Run("keeps events already in place", func(t *testing.T) {
		s := newSynchronizer(t)
		p1 := newParcel(t, "X")
		store := newPackageStore(p1)
		tr := newTrip(t, lifecycle.Loaded, carry(p1, "X"))
		save(t, s, store, nil, tr)
		before := p1.EventsForTrip(tr.ID())

		effects, err := s.Resync(ctx, tr, store)

		require.NoError(t, err)
		assert.True(t, effects.IsEmpty())
		assert.Equal(t, before, p1.EventsForTrip(tr.ID()))
	})

	t.Run("ignores completed trips", func(t *testing.T) {
		s := newSynchronizer(t)
		p1 := newParcel(t, "X")
		store := newPackageStore(p1)
		tr := newTrip(t, lifecycle.Completed, carry(p1, "X"))

		effects, err := s.Resync(ctx, tr, store)

		require.NoError(t, err)
		assert.True(t, effects.IsEmpty())
		assert.Zero(t, store.gets[p1.ID()])
	})
}

func TestEventSynchronizer_Plan_PropagatesMissingPackages(t *testing.T) {
	ctx := context.Background()
	s := newSynchronizer(t)
	p1, ghost := newParcel(t, "X"), newParcel(t, "Y")
	store := newPackageStore(p1)
	tr := newTrip(t, lifecycle.Planned, carry(p1, "X"), carry(ghost, "Y"))

	_, err := s.Plan(ctx, nil, tr, tr.Packages(), nil, store)

	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.Empty(t, store.updated)
}

func TestEventSynchronizer_LoadsEachPackageOnce(t *testing.T) {
	s := newSynchronizer(t)
	p1, p2 := newParcel(t, "X"), newParcel(t, "Y")
	store := newPackageStore(p1, p2)
	tr := newTrip(t, lifecycle.Planned, carry(p1, "X"))
	save(t, s, store, nil, tr)
	store.gets = map[kernel.UUID]int{}

	// The state changes while p1 moves to a new line and p2 joins.
	previous := tr.Snapshot()
	tr.ReplacePackages([]trip.PackageLineSpec{carry(p1, "X"), carry(p2, "Y")})
	require.NoError(t, tr.SetState(lifecycle.Loaded))
	save(t, s, store, previous, tr)

	assert.Equal(t, 1, store.gets[p1.ID()])
	assert.Equal(t, 1, store.gets[p2.ID()])
}
