package cmd

import (
	"log/slog"

	adapterhttp "storefront/internal/adapters/in/http"
	"storefront/internal/adapters/out/eventlog"
	"storefront/internal/adapters/out/postgres"
	"storefront/internal/adapters/out/postgres/eventrepo"
	"storefront/internal/adapters/out/postgres/orderrepo"
	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	logger     *slog.Logger
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdateOrdersStatusCommandHandler() commands.UpdateOrdersStatusCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateOrdersStatusCommandHandler(f)
}

func (c *CompositionRoot) CreateBatchEditOrdersCommandHandler() commands.BatchEditOrdersCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewBatchEditOrdersCommandHandler(f)
}

func (c *CompositionRoot) CreateBulkDeleteOrdersCommandHandler() commands.BulkDeleteOrdersCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewBulkDeleteOrdersCommandHandler(f)
}

func (c *CompositionRoot) CreateImportOrdersCommandHandler() commands.ImportOrdersCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewImportOrdersCommandHandler(f)
}

func (c *CompositionRoot) CreateGetOrdersForExportQueryHandler() queries.GetOrdersForExportQueryHandler {
	repo := orderrepo.NewGormOrderRepository(c.gormDB, noopAggregateTracker{})
	return queries.NewGetOrdersForExportQueryHandler(repo)
}

func (c *CompositionRoot) CreateHTTPServer() *adapterhttp.Server {
	return adapterhttp.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateUpdateOrdersStatusCommandHandler(),
		c.CreateBatchEditOrdersCommandHandler(),
		c.CreateBulkDeleteOrdersCommandHandler(),
		c.CreateImportOrdersCommandHandler(),
		c.CreateGetOrdersForExportQueryHandler(),
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	eventRepository := eventrepo.NewGormEventRepository(c.gormDB)
	publisher := eventlog.NewSlogEventPublisher(c.logger)
	return jobs.NewJobManager(eventRepository, publisher, c.logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

// noopAggregateTracker satisfies the repository's tracker dependency on the
// read path, where nothing mutates and there is no unit of work to notify.
type noopAggregateTracker struct{}

func (noopAggregateTracker) TrackAggregate(kernel.UUID, any) {}
