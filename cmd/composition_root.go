package cmd

import (
	"context"
	"log/slog"
	"time"

	"transportation/internal/adapters/in/http"
	"transportation/internal/adapters/out/memory"
	"transportation/internal/adapters/out/notify"
	"transportation/internal/adapters/out/postgres"
	"transportation/internal/core/application/usecases/commands"
	"transportation/internal/core/application/usecases/queries"
	"transportation/internal/core/domain/model/kernel"
	"transportation/internal/core/domain/model/lifecycle"
	"transportation/internal/core/domain/model/parcel"
	"transportation/internal/core/domain/model/trip"
	"transportation/internal/core/domain/services"
	"transportation/internal/core/ports"
	"transportation/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	logger     *slog.Logger
	uowFactory ports.UnitOfWorkFactory

	validator    *services.TripValidator
	synchronizer *services.EventSynchronizer
	guard        *services.DeletionGuard
}

// NewCompositionRoot wires the domain services to the store selected by
// config. gormDB is only used by the postgres driver and may be nil for the
// memory driver.
func NewCompositionRoot(config Config, ranking lifecycle.Ranking, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	validator, err := services.NewTripValidator(ranking)
	if err != nil {
		return CompositionRoot{}, err
	}
	synchronizer, err := services.NewEventSynchronizer(ranking, time.Now)
	if err != nil {
		return CompositionRoot{}, err
	}
	guard, err := services.NewDeletionGuard(ranking)
	if err != nil {
		return CompositionRoot{}, err
	}

	var uowFactory ports.UnitOfWorkFactory
	if config.StoreDriver == StoreDriverMemory {
		uowFactory = memory.NewUnitOfWorkFactory(memory.NewStore())
	} else {
		uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB)
	}

	return CompositionRoot{
		config:       config,
		logger:       logger,
		uowFactory:   uowFactory,
		validator:    validator,
		synchronizer: synchronizer,
		guard:        guard,
	}, nil
}

func (c *CompositionRoot) CreateSaveTripCommandHandler() commands.SaveTripCommandHandler {
	return commands.NewSaveTripCommandHandler(c.uows(), c.validator, c.synchronizer, notify.NewSlogNotifier(c.logger))
}

func (c *CompositionRoot) CreateDeleteTripCommandHandler() commands.DeleteTripCommandHandler {
	return commands.NewDeleteTripCommandHandler(c.uows(), c.guard)
}

func (c *CompositionRoot) CreateCreatePackageCommandHandler() commands.CreatePackageCommandHandler {
	return commands.NewCreatePackageCommandHandler(c.packageUoWs())
}

func (c *CompositionRoot) CreateUpdatePackageFieldsCommandHandler() commands.UpdatePackageFieldsCommandHandler {
	return commands.NewUpdatePackageFieldsCommandHandler(c.packageUoWs())
}

func (c *CompositionRoot) CreateResyncTripEventsCommandHandler() commands.ResyncTripEventsCommandHandler {
	return commands.NewResyncTripEventsCommandHandler(c.uows(), c.synchronizer)
}

func (c *CompositionRoot) CreateGetTripQueryHandler() queries.GetTripQueryHandler {
	return queries.NewGetTripQueryHandler(UoWTripReader{factory: c.uowFactory})
}

func (c *CompositionRoot) CreateGetPackageQueryHandler() queries.GetPackageQueryHandler {
	return queries.NewGetPackageQueryHandler(UoWPackageReader{factory: c.uowFactory})
}

func (c *CompositionRoot) CreateServer() *http.Server {
	return http.NewServer(
		c.CreateSaveTripCommandHandler(),
		c.CreateDeleteTripCommandHandler(),
		c.CreateCreatePackageCommandHandler(),
		c.CreateUpdatePackageFieldsCommandHandler(),
		c.CreateGetTripQueryHandler(),
		c.CreateGetPackageQueryHandler(),
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateResyncTripEventsCommandHandler(), c.config.ResyncSchedule, c.logger)
}

func (c *CompositionRoot) uows() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) packageUoWs() commands.PackageUoWFactory {
	return FuncPackageUoWFactory(func() commands.PackageUoW {
		return c.uowFactory.Create()
	})
}

type FuncPackageUoWFactory func() commands.PackageUoW

func (f FuncPackageUoWFactory) Create() commands.PackageUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

// UoWTripReader reads trips outside of any transaction, one unit of work
// per call.
type UoWTripReader struct {
	factory ports.UnitOfWorkFactory
}

func (r UoWTripReader) Get(ctx context.Context, id kernel.UUID) (*trip.Trip, error) {
	return r.factory.Create().TripRepository().Get(ctx, id)
}

// UoWPackageReader reads packages outside of any transaction, one unit of
// work per call.
type UoWPackageReader struct {
	factory ports.UnitOfWorkFactory
}

func (r UoWPackageReader) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	return r.factory.Create().PackageRepository().Get(ctx, id)
}
