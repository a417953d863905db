package queries

import (
	"errors"

	"transportation/internal/core/domain/model/kernel"
	"transportation/internal/pkg/guard"
)

var (
	ErrGetTripQueryIsNotConstructed = errors.New(
		"GetTripQuery must be created via NewGetTripQuery constructor",
	)
)

// GetTripQuery retrieves one trip with its package lines and stops.
//
// Example:
//
//	query, err := NewGetTripQuery(tripID)
//	if err != nil {
//	    return fmt.Errorf("invalid query: %w", err)
//	}
//	resp, err := handler.Handle(ctx, query)
type GetTripQuery struct {
	tripID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetTripQuery(tripID kernel.UUID) (GetTripQuery, error) {
	if err := tripID.Validate(); err != nil {
		return GetTripQuery{}, err
	}
	return GetTripQuery{tripID: tripID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetTripQuery) Validate() error {
	return q.guard.Validate(ErrGetTripQueryIsNotConstructed)
}

func (q GetTripQuery) TripID() kernel.UUID {
	return q.tripID
}

// GetTripQueryResponse is the read model of a trip. Lines and stops keep
// their stored order; their ids must be sent back on save to keep identity.
type GetTripQueryResponse struct {
	ID       kernel.UUID
	State    string
	Packages []TripPackageLine
	Stops    []TripStop
}

type TripPackageLine struct {
	ID             kernel.UUID
	PackageID      kernel.UUID
	Destination    string
	ToCollect      bool
	EndEvent       string
	EndDestination string
}

type TripStop struct {
	ID   kernel.UUID
	Stop string
}
