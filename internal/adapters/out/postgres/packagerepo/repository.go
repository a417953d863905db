package packagerepo

import (
	"context"
	"errors"

	"transportation/internal/core/domain/model/kernel"
	"transportation/internal/core/domain/model/lifecycle"
	"transportation/internal/core/domain/model/parcel"
	"transportation/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GormPackageRepository implements ports.PackageRepository using GORM.
type GormPackageRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormPackageRepository(db *gorm.DB, tracker aggregateTracker) *GormPackageRepository {
	return &GormPackageRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new package with its ledger.
func (r *GormPackageRepository) Add(ctx context.Context, aggregate *parcel.Parcel) error {
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

// Update saves the package fields and replaces its ledger: removed events
// are deleted, the rest are upserted with their new positions.
func (r *GormPackageRepository) Update(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&PackageDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"origin":      dto.Origin,
		"destination": dto.Destination,
		"to_collect":  dto.ToCollect,
		"state":       dto.State,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("package", aggregate.ID().String())
	}

	keep := make([]uuid.UUID, 0, len(dto.Events))
	for _, e := range dto.Events {
		keep = append(keep, e.ID)
	}
	orphans := db.Where("package_id = ?", dto.ID)
	if len(keep) > 0 {
		orphans = orphans.Where("id NOT IN ?", keep)
	}
	if err := orphans.Delete(&EventDTO{}).Error; err != nil {
		return err
	}

	// Use Session with FullSaveAssociations to upsert the ledger rows
	if err := db.Session(&gorm.Session{FullSaveAssociations: true}).Save(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a package with its ledger in order.
func (r *GormPackageRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PackageDTO
	err := r.db.WithContext(ctx).
		Preload("Events", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("package", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

type tripEventRow struct {
	PackageID uuid.UUID
	ID        uuid.UUID
	Stage     string
}

// FindTripEvents lists the events owned by tripID whose stage is not in
// excluded, ordered by package and ledger position.
func (r *GormPackageRepository) FindTripEvents(
	ctx context.Context,
	tripID kernel.UUID,
	excluded []lifecycle.Stage,
) ([]parcel.EventRef, error) {
	if err := tripID.Validate(); err != nil {
		return nil, err
	}

	stages := make([]string, 0, len(excluded))
	for _, s := range excluded {
		stages = append(stages, string(s))
	}

	var rows []tripEventRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			package_id,
			id,
			stage
		FROM package_events
		WHERE trip_id = ? AND stage <> ALL(?::text[])
		ORDER BY package_id, position
	`, tripID.Bytes(), pq.Array(stages)).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	refs := make([]parcel.EventRef, 0, len(rows))
	for _, row := range rows {
		packageID, idErr := kernel.UUIDFromBytes(row.PackageID[:])
		if idErr != nil {
			return nil, idErr
		}
		eventID, idErr := kernel.UUIDFromBytes(row.ID[:])
		if idErr != nil {
			return nil, idErr
		}
		refs = append(refs, parcel.EventRef{
			PackageID: packageID,
			EventID:   eventID,
			Stage:     lifecycle.Stage(row.Stage),
		})
	}
	return refs, nil
}
