package queries

import (
	"errors"
	"time"

	"transportation/internal/core/domain/model/kernel"
	"transportation/internal/pkg/guard"
)

var (
	ErrGetPackageQueryIsNotConstructed = errors.New(
		"GetPackageQuery must be created via NewGetPackageQuery constructor",
	)
)

// GetPackageQuery retrieves a package with its full event history.
type GetPackageQuery struct {
	packageID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetPackageQuery(packageID kernel.UUID) (GetPackageQuery, error) {
	if err := packageID.Validate(); err != nil {
		return GetPackageQuery{}, err
	}
	return GetPackageQuery{packageID: packageID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetPackageQuery) Validate() error {
	return q.guard.Validate(ErrGetPackageQueryIsNotConstructed)
}

func (q GetPackageQuery) PackageID() kernel.UUID {
	return q.packageID
}

// GetPackageQueryResponse is the read model of a package. Events are in
// ledger order.
type GetPackageQueryResponse struct {
	ID          kernel.UUID
	Origin      string
	Destination string
	ToCollect   bool
	State       string
	Events      []PackageEvent
}

// PackageEvent is one ledger entry. TripID is nil for events not created by
// a trip.
type PackageEvent struct {
	ID          kernel.UUID
	Stage       string
	Origin      string
	Destination string
	Date        time.Time
	TripID      *kernel.UUID
}
