// Package triprepo persists trip aggregates with GORM. A trip is stored as
// one trips row plus its ordered package lines and stops.
package triprepo

import (
	"transportation/internal/core/domain/model/kernel"
	"transportation/internal/core/domain/model/lifecycle"
	"transportation/internal/core/domain/model/trip"

	"github.com/google/uuid"
)

// TripDTO is the trips row with its child rows.
type TripDTO struct {
	ID       uuid.UUID        `gorm:"type:uuid;primaryKey"`
	State    int              `gorm:"type:smallint;not null;index"`
	Packages []PackageLineDTO `gorm:"foreignKey:TripID;constraint:OnDelete:CASCADE"`
	Stops    []StopLineDTO    `gorm:"foreignKey:TripID;constraint:OnDelete:CASCADE"`
}

func (TripDTO) TableName() string {
	return "trips"
}

// PackageLineDTO is one package line. Position keeps the line order. Line
// ids are unique per trip only.
type PackageLineDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	TripID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position       int       `gorm:"not null"`
	PackageID      uuid.UUID `gorm:"type:uuid;not null"`
	Destination    string    `gorm:"not null;default:''"`
	ToCollect      bool      `gorm:"not null;default:false"`
	EndEvent       string    `gorm:"not null;default:''"`
	EndDestination string    `gorm:"not null;default:''"`
}

func (PackageLineDTO) TableName() string {
	return "trip_package_lines"
}

// StopLineDTO is one stop of a trip, keyed like PackageLineDTO.
type StopLineDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	TripID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position int       `gorm:"not null"`
	Stop     string    `gorm:"not null;default:''"`
}

func (StopLineDTO) TableName() string {
	return "trip_stops"
}

func fromDomain(t *trip.Trip) TripDTO {
	tripID := t.ID().Bytes()

	packages := make([]PackageLineDTO, 0, len(t.Packages()))
	for i, l := range t.Packages() {
		packages = append(packages, PackageLineDTO{
			ID:             l.ID().Bytes(),
			TripID:         tripID,
			Position:       i,
			PackageID:      l.PackageID().Bytes(),
			Destination:    l.Destination().String(),
			ToCollect:      l.ToCollect(),
			EndEvent:       string(l.EndEvent()),
			EndDestination: l.EndDestination().String(),
		})
	}

	stops := make([]StopLineDTO, 0, len(t.Stops()))
	for i, s := range t.Stops() {
		stops = append(stops, StopLineDTO{
			ID:       s.ID().Bytes(),
			TripID:   tripID,
			Position: i,
			Stop:     s.Stop().String(),
		})
	}

	return TripDTO{
		ID:       tripID,
		State:    int(t.State()),
		Packages: packages,
		Stops:    stops,
	}
}

func toDomain(dto TripDTO) (*trip.Trip, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	state := lifecycle.TripState(dto.State)
	if err = state.Validate(); err != nil {
		return nil, err
	}

	packages := make([]*trip.PackageLine, 0, len(dto.Packages))
	for _, p := range dto.Packages {
		line, lineErr := packageLineToDomain(p)
		if lineErr != nil {
			return nil, lineErr
		}
		packages = append(packages, line)
	}

	stops := make([]*trip.StopLine, 0, len(dto.Stops))
	for _, s := range dto.Stops {
		stopID, stopErr := kernel.UUIDFromBytes(s.ID[:])
		if stopErr != nil {
			return nil, stopErr
		}
		stops = append(stops, trip.NewStopLine(stopID, kernel.ParseDestination(s.Stop)))
	}

	return trip.RestoreTrip(id, state, packages, stops), nil
}

func packageLineToDomain(dto PackageLineDTO) (*trip.PackageLine, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	packageID, err := kernel.UUIDFromBytes(dto.PackageID[:])
	if err != nil {
		return nil, err
	}

	return trip.NewPackageLine(trip.PackageLineSpec{
		ID:             id,
		PackageID:      packageID,
		Destination:    kernel.ParseDestination(dto.Destination),
		ToCollect:      dto.ToCollect,
		EndEvent:       lifecycle.Stage(dto.EndEvent),
		EndDestination: kernel.ParseDestination(dto.EndDestination),
	}), nil
}
