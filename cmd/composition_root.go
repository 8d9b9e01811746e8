package cmd

import (
	"log/slog"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	httpin "mealroute/internal/adapters/in/http"
	"mealroute/internal/adapters/out/httpclient"
	"mealroute/internal/adapters/out/postgres"
	"mealroute/internal/adapters/out/rabbitmq"
	"mealroute/internal/adapters/out/rediscache"
	"mealroute/internal/core/application/usecases/commands"
	"mealroute/internal/core/application/usecases/queries"
	"mealroute/internal/core/ports"
)

// CompositionRoot wires adapters into use case handlers. Outbound
// collaborators are created once and shared between handlers.
type CompositionRoot struct {
	gormDB    *gorm.DB
	customers ports.CustomerDirectory
	catalog   ports.CatalogDirectory
	ledger    ports.OrderLedger
	publisher ports.OrderEventPublisher
	logger    *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	uowFactory := postgres.NewGormUnitOfWorkFactory(gormDB)

	var catalogDirectory ports.CatalogDirectory = httpclient.NewCatalogDirectory(
		config.CatalogServiceURL, config.RemoteCallTimeout)
	if config.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: config.RedisAddr})
		catalogDirectory = rediscache.NewCachedCatalogDirectory(
			catalogDirectory, redisClient, config.BranchCacheTTL, logger)
	}

	var publisher ports.OrderEventPublisher
	if config.AmqpURL != "" {
		conn, err := rabbitmq.Dial(config.AmqpURL)
		if err != nil {
			// Event publishing is best-effort; the service runs without it.
			logger.Warn("RabbitMQ unavailable, status events disabled", "error", err)
		} else {
			publisher = rabbitmq.NewPublisher(conn)
		}
	}

	return CompositionRoot{
		gormDB:    gormDB,
		customers: httpclient.NewCustomerDirectory(config.CustomerServiceURL, config.RemoteCallTimeout),
		catalog:   catalogDirectory,
		ledger:    postgres.NewGormOrderLedger(uowFactory),
		publisher: publisher,
		logger:    logger,
	}
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	return commands.NewPlaceOrderCommandHandler(c.customers, c.catalog, c.ledger, c.publisher)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(c.ledger, c.publisher)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.ledger, c.publisher)
}

func (c *CompositionRoot) CreatePlanRoutesCommandHandler() commands.PlanRoutesCommandHandler {
	return commands.NewPlanRoutesCommandHandler(c.ledger, c.catalog)
}

func (c *CompositionRoot) CreateGetOrderHistoryQueryHandler() queries.GetOrderHistoryQueryHandler {
	return queries.NewGetOrderHistoryQueryHandler(c.ledger)
}

func (c *CompositionRoot) CreateGetNearestBranchQueryHandler() queries.GetNearestBranchQueryHandler {
	return queries.NewGetNearestBranchQueryHandler(c.catalog)
}

func (c *CompositionRoot) CreateGetNearbyBranchesQueryHandler() queries.GetNearbyBranchesQueryHandler {
	return queries.NewGetNearbyBranchesQueryHandler(c.catalog)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreatePlaceOrderCommandHandler(),
		c.CreateUpdateOrderStatusCommandHandler(),
		c.CreateCancelOrderCommandHandler(),
		c.CreateGetOrderHistoryQueryHandler(),
		c.CreateGetNearestBranchQueryHandler(),
		c.CreateGetNearbyBranchesQueryHandler(),
	)
}

// Close releases long-lived outbound resources.
func (c *CompositionRoot) Close() {
	if c.publisher != nil {
		if err := c.publisher.Close(); err != nil {
			c.logger.Warn("Failed to close event publisher", "error", err)
		}
	}
}
