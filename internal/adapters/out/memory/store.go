// Package memory is an in-process store for trips and packages, used by the
// memory store driver and by tests.
//
// It has no transactions: Begin, Commit and Rollback do nothing and every
// write is visible immediately. A save that fails halfway keeps the packages
// written before the failure, which is exactly the partial application the
// side effect batch reports through services.ApplyError.
package memory

import (
	"context"
	"sort"
	"sync"

	"transportation/internal/core/domain/model/kernel"
	"transportation/internal/core/domain/model/lifecycle"
	"transportation/internal/core/domain/model/parcel"
	"transportation/internal/core/domain/model/trip"
	"transportation/internal/core/ports"
	"transportation/internal/pkg/errs"
)

// Store holds copies of the saved aggregates. Reads return fresh copies, so
// callers must save to make changes visible.
type Store struct {
	mu        sync.RWMutex
	trips     map[kernel.UUID]*trip.Trip
	parcels   map[kernel.UUID]*parcel.Parcel
	tripSeq   []kernel.UUID
	parcelSeq []kernel.UUID
}

func NewStore() *Store {
	return &Store{
		trips:   make(map[kernel.UUID]*trip.Trip),
		parcels: make(map[kernel.UUID]*parcel.Parcel),
	}
}

// UnitOfWorkFactory creates units of work over one Store.
type UnitOfWorkFactory struct {
	store *Store
}

func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store}
}

// UnitOfWork satisfies ports.UnitOfWork without transactions.
type UnitOfWork struct {
	store *Store
}

func (u *UnitOfWork) Begin(context.Context) error    { return nil }
func (u *UnitOfWork) Commit(context.Context) error   { return nil }
func (u *UnitOfWork) Rollback(context.Context) error { return nil }

func (u *UnitOfWork) TripRepository() ports.TripRepository {
	return &TripRepository{store: u.store}
}

func (u *UnitOfWork) PackageRepository() ports.PackageRepository {
	return &PackageRepository{store: u.store}
}

// TripRepository implements ports.TripRepository on a Store.
type TripRepository struct {
	store *Store
}

func NewTripRepository(store *Store) *TripRepository {
	return &TripRepository{store: store}
}

func (r *TripRepository) Add(_ context.Context, aggregate *trip.Trip) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.trips[aggregate.ID()]; ok {
		return errs.NewValueIsInvalidError("trip " + aggregate.ID().String() + " already exists")
	}
	r.store.trips[aggregate.ID()] = stored(aggregate)
	r.store.tripSeq = append(r.store.tripSeq, aggregate.ID())
	return nil
}

func (r *TripRepository) Update(_ context.Context, aggregate *trip.Trip) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.trips[aggregate.ID()]; !ok {
		return errs.NewObjectNotFoundError("tripID", aggregate.ID())
	}
	r.store.trips[aggregate.ID()] = stored(aggregate)
	return nil
}

func (r *TripRepository) Get(_ context.Context, id kernel.UUID) (*trip.Trip, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	t, ok := r.store.trips[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("tripID", id)
	}
	return t.Snapshot(), nil
}

func (r *TripRepository) Delete(_ context.Context, id kernel.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.trips[id]; !ok {
		return errs.NewObjectNotFoundError("tripID", id)
	}
	delete(r.store.trips, id)
	r.store.tripSeq = without(r.store.tripSeq, id)
	return nil
}

// stored copies t the way it would come back from a database.
func stored(t *trip.Trip) *trip.Trip {
	c := t.Snapshot()
	return trip.RestoreTrip(c.ID(), c.State(), c.Packages(), c.Stops())
}

// ListByStates returns matching trips in insertion order.
func (r *TripRepository) ListByStates(_ context.Context, states ...lifecycle.TripState) ([]*trip.Trip, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	wanted := make(map[lifecycle.TripState]bool, len(states))
	for _, s := range states {
		wanted[s] = true
	}

	out := make([]*trip.Trip, 0)
	for _, id := range r.store.tripSeq {
		if t := r.store.trips[id]; wanted[t.State()] {
			out = append(out, t.Snapshot())
		}
	}
	return out, nil
}

// PackageRepository implements ports.PackageRepository on a Store.
type PackageRepository struct {
	store *Store
}

func NewPackageRepository(store *Store) *PackageRepository {
	return &PackageRepository{store: store}
}

func (r *PackageRepository) Add(_ context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.parcels[aggregate.ID()]; ok {
		return errs.NewValueIsInvalidError("package " + aggregate.ID().String() + " already exists")
	}
	r.store.parcels[aggregate.ID()] = copyParcel(aggregate)
	r.store.parcelSeq = append(r.store.parcelSeq, aggregate.ID())
	return nil
}

func (r *PackageRepository) Update(_ context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.parcels[aggregate.ID()]; !ok {
		return errs.NewObjectNotFoundError("packageID", aggregate.ID())
	}
	r.store.parcels[aggregate.ID()] = copyParcel(aggregate)
	return nil
}

func (r *PackageRepository) Get(_ context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	p, ok := r.store.parcels[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("packageID", id)
	}
	return copyParcel(p), nil
}

func (r *PackageRepository) FindTripEvents(
	_ context.Context,
	tripID kernel.UUID,
	excluded []lifecycle.Stage,
) ([]parcel.EventRef, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	skip := make(map[lifecycle.Stage]bool, len(excluded))
	for _, s := range excluded {
		skip[s] = true
	}

	refs := make([]parcel.EventRef, 0)
	for _, id := range r.store.parcelSeq {
		for _, e := range r.store.parcels[id].EventsForTrip(tripID) {
			if skip[e.Stage()] {
				continue
			}
			refs = append(refs, parcel.EventRef{PackageID: id, EventID: e.ID(), Stage: e.Stage()})
		}
	}
	sort.SliceStable(refs, func(i, j int) bool {
		return refs[i].PackageID.String() < refs[j].PackageID.String()
	})
	return refs, nil
}

func copyParcel(p *parcel.Parcel) *parcel.Parcel {
	return parcel.RestoreParcel(p.ID(), p.Origin(), p.Destination(), p.ToCollect(), p.State(), p.Events())
}

func without(ids []kernel.UUID, id kernel.UUID) []kernel.UUID {
	out := ids[:0]
	for _, other := range ids {
		if !other.IsEqual(id) {
			out = append(out, other)
		}
	}
	return out
}
