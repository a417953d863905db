// Package queries contains read operations that never modify system state.
// Handlers read through the repository ports and return flat read models
// ready to be rendered by the HTTP layer.
package queries

import (
	"context"

	"transportation/internal/core/domain/model/kernel"
	"transportation/internal/core/domain/model/parcel"
	"transportation/internal/core/domain/model/trip"
)

type (
	// TripReader loads a trip by id.
	TripReader interface {
		Get(ctx context.Context, id kernel.UUID) (*trip.Trip, error)
	}

	// PackageReader loads a package by id.
	PackageReader interface {
		Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error)
	}
)
