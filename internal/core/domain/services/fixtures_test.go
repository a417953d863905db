package services_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"transportation/internal/core/domain/model/kernel"
	"transportation/internal/core/domain/model/lifecycle"
	"transportation/internal/core/domain/model/parcel"
	"transportation/internal/core/domain/model/trip"
	"transportation/internal/core/domain/services"
	"transportation/internal/pkg/errs"

	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

// packageStore is an in-memory PackageReader, PackageWriter and
// TripEventFinder.
type packageStore struct {
	parcels    map[kernel.UUID]*parcel.Parcel
	gets       map[kernel.UUID]int
	failUpdate map[kernel.UUID]error
	updated    []kernel.UUID
}

func newPackageStore(parcels ...*parcel.Parcel) *packageStore {
	s := &packageStore{
		parcels:    make(map[kernel.UUID]*parcel.Parcel),
		gets:       make(map[kernel.UUID]int),
		failUpdate: make(map[kernel.UUID]error),
	}
	for _, p := range parcels {
		s.parcels[p.ID()] = p
	}
	return s
}

func (s *packageStore) Get(_ context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	s.gets[id]++
	p, ok := s.parcels[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("packageID", id)
	}
	return p, nil
}

func (s *packageStore) Update(_ context.Context, p *parcel.Parcel) error {
	if err := s.failUpdate[p.ID()]; err != nil {
		return err
	}
	s.parcels[p.ID()] = p
	s.updated = append(s.updated, p.ID())
	return nil
}

func (s *packageStore) FindTripEvents(_ context.Context, tripID kernel.UUID, excluded []lifecycle.Stage) ([]parcel.EventRef, error) {
	skip := make(map[lifecycle.Stage]bool, len(excluded))
	for _, stage := range excluded {
		skip[stage] = true
	}

	ids := make([]kernel.UUID, 0, len(s.parcels))
	for id := range s.parcels {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })

	var refs []parcel.EventRef
	for _, id := range ids {
		for _, e := range s.parcels[id].EventsForTrip(tripID) {
			if !skip[e.Stage()] {
				refs = append(refs, parcel.EventRef{PackageID: id, EventID: e.ID(), Stage: e.Stage()})
			}
		}
	}
	return refs, nil
}

func newParcel(t *testing.T, destination string) *parcel.Parcel {
	t.Helper()
	p, err := parcel.NewParcel(kernel.NewUUID(), kernel.ParseDestination("Depot"), kernel.ParseDestination(destination))
	require.NoError(t, err)
	return p
}

func withEvent(t *testing.T, p *parcel.Parcel, stage lifecycle.Stage, date time.Time, tripID *kernel.UUID) *parcel.Event {
	t.Helper()
	e, err := parcel.NewEvent(stage, p.Origin(), p.Destination(), date, tripID)
	require.NoError(t, err)
	require.NoError(t, p.AppendEvent(e))
	return e
}

func newTrip(t *testing.T, state lifecycle.TripState, lines ...trip.PackageLineSpec) *trip.Trip {
	t.Helper()
	tr, err := trip.NewTrip(kernel.NewUUID(), state)
	require.NoError(t, err)
	tr.ReplacePackages(lines)
	return tr
}

func carry(p *parcel.Parcel, destination string) trip.PackageLineSpec {
	return trip.PackageLineSpec{PackageID: p.ID(), Destination: kernel.ParseDestination(destination)}
}

func specs(tr *trip.Trip) []trip.PackageLineSpec {
	var out []trip.PackageLineSpec
	for _, l := range tr.Packages() {
		out = append(out, l.Spec())
	}
	return out
}

func stages(events []*parcel.Event) []lifecycle.Stage {
	out := make([]lifecycle.Stage, 0, len(events))
	for _, e := range events {
		out = append(out, e.Stage())
	}
	return out
}

// tickingClock returns t0, t0+1m, t0+2m...
func tickingClock() func() time.Time {
	next := t0
	return func() time.Time {
		now := next
		next = next.Add(time.Minute)
		return now
	}
}

func newSynchronizer(t *testing.T) *services.EventSynchronizer {
	t.Helper()
	s, err := services.NewEventSynchronizer(lifecycle.DefaultRanking(), tickingClock())
	require.NoError(t, err)
	return s
}
