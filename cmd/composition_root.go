package cmd

import (
	"log/slog"
	"time"

	"shipping/internal/adapters/out/postgres"
	"shipping/internal/adapters/out/postgres/orderrepo"
	"shipping/internal/adapters/out/postgres/refrepo"
	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"
	"shipping/internal/core/domain/services"
	"shipping/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires the application together: repositories, pricing
// services, command and query handlers and background jobs.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
}

// NewCompositionRoot creates the composition root over an open database
// connection.
func NewCompositionRoot(config Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
	}
}

// BoardPolicy resolves the configured board policy, defaulting to
// lifecycle enforcement.
func (c *CompositionRoot) BoardPolicy() order.BoardPolicy {
	if c.config.BoardPolicy == "free" {
		return order.BoardFreeMove
	}
	return order.BoardEnforceLifecycle
}

func (c *CompositionRoot) pricer() services.OrderPricer {
	return services.NewOrderPricer(services.PricingPolicy{
		DisallowNegativeGrandTotal: c.config.DisallowNegativeGrandTotal,
	})
}

func (c *CompositionRoot) createUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) createOrderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateShippingOrderCommandHandler() commands.CreateShippingOrderCommandHandler {
	return commands.NewCreateShippingOrderCommandHandler(c.createUoWFactory(), c.pricer())
}

func (c *CompositionRoot) CreateRepriceShippingOrderCommandHandler() commands.RepriceShippingOrderCommandHandler {
	return commands.NewRepriceShippingOrderCommandHandler(c.createUoWFactory(), c.pricer())
}

func (c *CompositionRoot) CreateTransitionShippingOrderCommandHandler() commands.TransitionShippingOrderCommandHandler {
	return commands.NewTransitionShippingOrderCommandHandler(c.createOrderUoWFactory())
}

func (c *CompositionRoot) CreateMoveOrderOnBoardCommandHandler() commands.MoveOrderOnBoardCommandHandler {
	return commands.NewMoveOrderOnBoardCommandHandler(c.createOrderUoWFactory(), c.BoardPolicy())
}

func (c *CompositionRoot) CreateGetShippingOrderQueryHandler() queries.GetShippingOrderQueryHandler {
	return queries.NewGetShippingOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderBoardQueryHandler() queries.GetOrderBoardQueryHandler {
	return queries.NewGetOrderBoardQueryHandler(c.gormDB)
}

// CreateJobManager wires the background jobs: rate card auditing and stale
// draft cancellation.
func (c *CompositionRoot) CreateJobManager(logger *slog.Logger) (*jobs.JobManager, error) {
	systemUserID, err := kernel.UUIDFromString(c.config.SystemUserID)
	if err != nil {
		return nil, err
	}

	auditJob := jobs.NewRateCardAuditJob(
		refrepo.NewGormReferenceRepository(c.gormDB),
		c.config.RateCardAuditCronSpec,
		logger,
	)

	staleDraftJob := jobs.NewStaleDraftCancellationJob(
		orderrepo.NewGormOrderRepository(c.gormDB, noopTracker{}),
		c.CreateTransitionShippingOrderCommandHandler(),
		time.Duration(c.config.StaleDraftMaxAgeHours)*time.Hour,
		systemUserID,
		c.config.StaleDraftCronSpec,
		logger,
	)

	return jobs.NewJobManager(auditJob, staleDraftJob), nil
}

// noopTracker satisfies the repository's tracker dependency for read-only
// repository use outside a unit of work.
type noopTracker struct{}

func (noopTracker) TrackAggregate(_ kernel.UUID, _ any) {}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
