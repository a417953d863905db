package triprepo

import (
	"context"
	"errors"

	"transportation/internal/core/domain/model/kernel"
	"transportation/internal/core/domain/model/lifecycle"
	"transportation/internal/core/domain/model/trip"
	"transportation/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormTripRepository implements ports.TripRepository using GORM.
type GormTripRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormTripRepository(db *gorm.DB, tracker aggregateTracker) *GormTripRepository {
	return &GormTripRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new trip with its lines and stops.
func (r *GormTripRepository) Add(ctx context.Context, aggregate *trip.Trip) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing trip. Lines and stops no longer on the trip are
// deleted, the others are upserted.
func (r *GormTripRepository) Update(ctx context.Context, aggregate *trip.Trip) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&TripDTO{}).Where("id = ?", dto.ID).Update("state", dto.State)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("trip", aggregate.ID().String())
	}

	lineIDs := make([]uuid.UUID, 0, len(dto.Packages))
	for _, l := range dto.Packages {
		lineIDs = append(lineIDs, l.ID)
	}
	if err := deleteOrphans(db, &PackageLineDTO{}, dto.ID, lineIDs); err != nil {
		return err
	}

	stopIDs := make([]uuid.UUID, 0, len(dto.Stops))
	for _, s := range dto.Stops {
		stopIDs = append(stopIDs, s.ID)
	}
	if err := deleteOrphans(db, &StopLineDTO{}, dto.ID, stopIDs); err != nil {
		return err
	}

	// Use Session with FullSaveAssociations to upsert the child rows
	if err := db.Session(&gorm.Session{FullSaveAssociations: true}).Save(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a trip with its lines and stops in saved order.
func (r *GormTripRepository) Get(ctx context.Context, id kernel.UUID) (*trip.Trip, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto TripDTO
	err := r.preloaded(ctx).First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("trip", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Delete removes the trip; its lines and stops go with it.
func (r *GormTripRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&TripDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("trip", id.String())
	}
	return nil
}

// ListByStates returns the trips in any of the given states, ordered by id.
func (r *GormTripRepository) ListByStates(ctx context.Context, states ...lifecycle.TripState) ([]*trip.Trip, error) {
	if len(states) == 0 {
		return []*trip.Trip{}, nil
	}

	values := make([]int, 0, len(states))
	for _, s := range states {
		values = append(values, int(s))
	}

	var dtos []TripDTO
	if err := r.preloaded(ctx).Where("state IN ?", values).Order("id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	trips := make([]*trip.Trip, 0, len(dtos))
	for _, dto := range dtos {
		t, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		trips = append(trips, t)
	}
	return trips, nil
}

func (r *GormTripRepository) preloaded(ctx context.Context) *gorm.DB {
	byPosition := func(db *gorm.DB) *gorm.DB { return db.Order("position") }
	return r.db.WithContext(ctx).
		Preload("Packages", byPosition).
		Preload("Stops", byPosition)
}

// deleteOrphans deletes the child rows of tripID whose id is not in keep.
func deleteOrphans(db *gorm.DB, model any, tripID uuid.UUID, keep []uuid.UUID) error {
	query := db.Where("trip_id = ?", tripID)
	if len(keep) > 0 {
		query = query.Where("id NOT IN ?", keep)
	}
	return query.Delete(model).Error
}
