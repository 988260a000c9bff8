package cmd

import (
	"context"
	"log/slog"

	"lockers/internal/adapters/out/accesscode"
	"lockers/internal/adapters/out/notification"
	"lockers/internal/adapters/out/postgres"
	"lockers/internal/core/application/usecases/commands"
	"lockers/internal/core/application/usecases/queries"
	"lockers/internal/core/domain/services"
	"lockers/internal/core/ports"
	"lockers/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot assembles the object graph: adapters, the in-memory
// locker registry, and the command/query handlers wired on top of them.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	registry   *services.LockerRegistry
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewCompositionRoot builds the shared collaborators and loads every
// persisted location into the registry so allocation can start serving
// immediately.
func NewCompositionRoot(
	ctx context.Context, config Config, gormDB *gorm.DB, logger *slog.Logger,
) (*CompositionRoot, error) {
	issuer, err := accesscode.NewRandomCodeIssuer(config.AccessCodeLength)
	if err != nil {
		return nil, err
	}

	registry, err := services.NewLockerRegistry(issuer)
	if err != nil {
		return nil, err
	}

	root := &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		registry:   registry,
		notifier:   notification.NewLogNotifier(logger),
		logger:     logger,
	}

	if err = root.loadRegistry(ctx); err != nil {
		return nil, err
	}

	return root, nil
}

// loadRegistry populates the in-memory registry from storage.
func (c *CompositionRoot) loadRegistry(ctx context.Context) error {
	locations, err := c.uowFactory.Create().LocationRepository().GetAll(ctx)
	if err != nil {
		return err
	}

	for _, loc := range locations {
		if err = c.registry.AddLocation(loc); err != nil {
			return err
		}
	}

	c.logger.InfoContext(ctx, "locker registry loaded", "locations", len(locations))
	return nil
}

// Registry returns the shared locker registry.
func (c *CompositionRoot) Registry() *services.LockerRegistry {
	return c.registry
}

// UnitOfWorkFactory returns the shared unit of work factory.
func (c *CompositionRoot) UnitOfWorkFactory() ports.UnitOfWorkFactory {
	return c.uowFactory
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateAllocateLockerCommandHandler() commands.AllocateLockerCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAllocateLockerCommandHandler(
		f, c.registry, c.notifier, c.config.ReservationTTL, c.logger,
	)
}

func (c *CompositionRoot) CreateCompletePickupCommandHandler() commands.CompletePickupCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompletePickupCommandHandler(f, c.registry)
}

func (c *CompositionRoot) CreateReleaseExpiredReservationsCommandHandler() commands.ReleaseExpiredReservationsCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewReleaseExpiredReservationsCommandHandler(f, c.registry)
}

func (c *CompositionRoot) CreateGetLocationCapacityQueryHandler() queries.GetLocationCapacityQueryHandler {
	return queries.NewGetLocationCapacityQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveOrdersQueryHandler() queries.GetActiveOrdersQueryHandler {
	return queries.NewGetActiveOrdersQueryHandler(c.gormDB)
}

// CreateJobManager wires the background jobs against the shared handlers.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateReleaseExpiredReservationsCommandHandler(),
		c.config.SweepSchedule,
		c.logger,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
