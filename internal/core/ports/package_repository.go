package ports

import (
	"context"

	"transportation/internal/core/domain/model/kernel"
	"transportation/internal/core/domain/model/lifecycle"
	"transportation/internal/core/domain/model/parcel"
)

// PackageRepository defines the persistence contract for parcels and their
// event ledgers.
type PackageRepository interface {
	// Add persists a new parcel.
	Add(ctx context.Context, aggregate *parcel.Parcel) error

	// Update persists the parcel fields and replaces its stored ledger with
	// the in-memory one.
	Update(ctx context.Context, aggregate *parcel.Parcel) error

	// Get retrieves a parcel with its events in ledger order.
	// Returns errs.ObjectNotFoundError if the parcel does not exist.
	Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error)

	// FindTripEvents lists the events owned by tripID across all parcels
	// whose stage is not in excluded, ordered by parcel and ledger position.
	FindTripEvents(ctx context.Context, tripID kernel.UUID, excluded []lifecycle.Stage) ([]parcel.EventRef, error)
}
