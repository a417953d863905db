// Package ports defines the contracts between the trip domain and the
// infrastructure that stores trips and parcels or delivers messages.
package ports

import (
	"context"

	"transportation/internal/core/domain/model/kernel"
	"transportation/internal/core/domain/model/lifecycle"
	"transportation/internal/core/domain/model/trip"
)

// TripRepository defines the persistence contract for trip aggregates.
// Trips are stored with their package and stop lines, in order.
type TripRepository interface {
	// Add persists a new trip with its lines.
	Add(ctx context.Context, aggregate *trip.Trip) error

	// Update replaces the stored revision of the trip, lines included.
	Update(ctx context.Context, aggregate *trip.Trip) error

	// Get retrieves a trip with its lines.
	// Returns errs.ObjectNotFoundError if the trip does not exist.
	Get(ctx context.Context, id kernel.UUID) (*trip.Trip, error)

	// Delete removes the trip and its lines.
	// Returns errs.ObjectNotFoundError if the trip does not exist.
	Delete(ctx context.Context, id kernel.UUID) error

	// ListByStates retrieves every trip in one of the given states.
	ListByStates(ctx context.Context, states ...lifecycle.TripState) ([]*trip.Trip, error)
}
