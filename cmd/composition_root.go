package cmd

import (
	"log/slog"

	"storefront/internal/adapters/in/http"
	"storefront/internal/adapters/out/postgres"
	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/pricing"
	"storefront/internal/core/domain/services"
	"storefront/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	checkout   services.Checkout
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB, postgres.LogCommits(logger)),
		checkout:   services.NewCheckout(pricing.NewEngine(config.PricingPolicy())),
		logger:     logger,
	}
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewPlaceOrderCommandHandler(f, c.checkout, c.config.TaxRate)
}

func (c *CompositionRoot) CreateAdvanceOrderStatusCommandHandler() commands.AdvanceOrderStatusCommandHandler {
	return commands.NewAdvanceOrderStatusCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateChangeShippingAddressCommandHandler() commands.ChangeShippingAddressCommandHandler {
	return commands.NewChangeShippingAddressCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateRequestCancellationCommandHandler() commands.RequestCancellationCommandHandler {
	return commands.NewRequestCancellationCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateCreateCategoryCommandHandler() commands.CreateCategoryCommandHandler {
	return commands.NewCreateCategoryCommandHandler(c.catalogUoWFactory())
}

func (c *CompositionRoot) CreateCreateProductCommandHandler() commands.CreateProductCommandHandler {
	return commands.NewCreateProductCommandHandler(c.catalogUoWFactory())
}

func (c *CompositionRoot) CreateAddProductReviewCommandHandler() commands.AddProductReviewCommandHandler {
	return commands.NewAddProductReviewCommandHandler(c.catalogUoWFactory())
}

// CreateQuoteCartQueryHandler reads products outside a transaction; the
// repository falls back to the plain connection until Begin is called.
func (c *CompositionRoot) CreateQuoteCartQueryHandler() queries.QuoteCartQueryHandler {
	return queries.NewQuoteCartQueryHandler(c.uowFactory.Create().ProductRepository(), c.checkout, c.config.TaxRate)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetProductQueryHandler() queries.GetProductQueryHandler {
	return queries.NewGetProductQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetStalledOrdersQueryHandler() queries.GetStalledOrdersQueryHandler {
	return queries.NewGetStalledOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *http.Server {
	return http.NewServer(http.Handlers{
		QuoteCart:             c.CreateQuoteCartQueryHandler(),
		PlaceOrder:            c.CreatePlaceOrderCommandHandler(),
		GetOrder:              c.CreateGetOrderQueryHandler(),
		AdvanceOrderStatus:    c.CreateAdvanceOrderStatusCommandHandler(),
		ChangeShippingAddress: c.CreateChangeShippingAddressCommandHandler(),
		RequestCancellation:   c.CreateRequestCancellationCommandHandler(),
		CreateCategory:        c.CreateCreateCategoryCommandHandler(),
		CreateProduct:         c.CreateCreateProductCommandHandler(),
		GetProduct:            c.CreateGetProductQueryHandler(),
		AddProductReview:      c.CreateAddProductReviewCommandHandler(),
	}, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateGetStalledOrdersQueryHandler(),
		c.config.StalledOrderSchedule,
		c.config.StalledOrderAfter,
		c.logger,
	)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) catalogUoWFactory() commands.CatalogUoWFactory {
	return FuncCatalogUoWFactory(func() commands.CatalogUoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncCatalogUoWFactory func() commands.CatalogUoW

func (f FuncCatalogUoWFactory) Create() commands.CatalogUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
