// Package packagerepo persists package aggregates and their event ledger
// with GORM.
package packagerepo

import (
	"time"

	"transportation/internal/core/domain/model/kernel"
	"transportation/internal/core/domain/model/lifecycle"
	"transportation/internal/core/domain/model/parcel"

	"github.com/google/uuid"
)

// PackageDTO is the packages row with its ledger.
type PackageDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Origin      string     `gorm:"not null;default:''"`
	Destination string     `gorm:"not null"`
	ToCollect   bool       `gorm:"not null;default:false"`
	State       string     `gorm:"not null"`
	Events      []EventDTO `gorm:"foreignKey:PackageID;constraint:OnDelete:CASCADE"`
}

func (PackageDTO) TableName() string {
	return "packages"
}

// EventDTO is one ledger entry. Position keeps the ledger order, which
// breaks date ties when the package state is derived.
type EventDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	PackageID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	Position    int        `gorm:"not null"`
	Stage       string     `gorm:"not null"`
	Origin      string     `gorm:"not null;default:''"`
	Destination string     `gorm:"not null;default:''"`
	Date        time.Time  `gorm:"type:timestamptz;not null"`
	TripID      *uuid.UUID `gorm:"type:uuid;index"`
}

func (EventDTO) TableName() string {
	return "package_events"
}

func fromDomain(p *parcel.Parcel) PackageDTO {
	packageID := p.ID().Bytes()

	events := make([]EventDTO, 0, len(p.Events()))
	for i, e := range p.Events() {
		var tripID *uuid.UUID
		if id := e.TripID(); id != nil {
			raw := id.Bytes()
			tripID = &raw
		}

		events = append(events, EventDTO{
			ID:          e.ID().Bytes(),
			PackageID:   packageID,
			Position:    i,
			Stage:       string(e.Stage()),
			Origin:      e.Origin().String(),
			Destination: e.Destination().String(),
			Date:        e.Date(),
			TripID:      tripID,
		})
	}

	return PackageDTO{
		ID:          packageID,
		Origin:      p.Origin().String(),
		Destination: p.Destination().String(),
		ToCollect:   p.ToCollect(),
		State:       string(p.State()),
		Events:      events,
	}
}

func toDomain(dto PackageDTO) (*parcel.Parcel, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	events := make([]*parcel.Event, 0, len(dto.Events))
	for _, e := range dto.Events {
		event, eventErr := eventToDomain(e)
		if eventErr != nil {
			return nil, eventErr
		}
		events = append(events, event)
	}

	return parcel.RestoreParcel(
		id,
		kernel.ParseDestination(dto.Origin),
		kernel.ParseDestination(dto.Destination),
		dto.ToCollect,
		lifecycle.Stage(dto.State),
		events,
	), nil
}

func eventToDomain(dto EventDTO) (*parcel.Event, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var tripID *kernel.UUID
	if dto.TripID != nil {
		tID, tripErr := kernel.UUIDFromBytes((*dto.TripID)[:])
		if tripErr != nil {
			return nil, tripErr
		}
		tripID = &tID
	}

	return parcel.RestoreEvent(
		id,
		lifecycle.Stage(dto.Stage),
		kernel.ParseDestination(dto.Origin),
		kernel.ParseDestination(dto.Destination),
		dto.Date,
		tripID,
	), nil
}
