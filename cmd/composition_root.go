package cmd

import (
	"context"
	"log/slog"

	httpadapter "ewaste/internal/adapters/in/http"
	"ewaste/internal/adapters/out/geocoding"
	"ewaste/internal/adapters/out/postgres"
	"ewaste/internal/adapters/out/rabbitmq"
	rediscache "ewaste/internal/adapters/out/redis"
	"ewaste/internal/core/application/orchestrator"
	"ewaste/internal/core/application/usecases/commands"
	"ewaste/internal/core/application/usecases/queries"
	"ewaste/internal/core/domain/services"
	"ewaste/internal/core/ports"
	"ewaste/internal/jobs"

	"github.com/labstack/echo/v4"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	logger     *slog.Logger
	uowFactory *postgres.GormUnitOfWorkFactory
	engine     *services.DistanceEngine
	counter    queries.AssignmentCounter

	closers []func()
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) *CompositionRoot {
	c := &CompositionRoot{
		configs: configs,
		gormDB:  gormDB,
		logger:  logger,
	}

	c.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB, c.newPublisher(), logger)
	c.engine = services.NewDistanceEngine(c.newGeoOracle(), configs.GeocodeTimeout)
	c.counter = queries.NewAssignmentCounter(gormDB, c.assignmentScope())
	return c
}

// Close releases the broker and cache connections.
func (c *CompositionRoot) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

func (c *CompositionRoot) assignmentScope() ports.AssignmentScope {
	if c.configs.AssignmentCountOpenOnly {
		return ports.OpenAssignments
	}
	return ports.AllAssignments
}

func (c *CompositionRoot) newPublisher() ports.EventPublisher {
	if c.configs.RabbitMQURL == "" {
		return rabbitmq.NewNopPublisher()
	}

	publisher, err := rabbitmq.Dial(c.configs.RabbitMQURL, rabbitmq.DefaultExchange)
	if err != nil {
		c.logger.Warn("rabbitmq unavailable, lifecycle events will not be published", "error", err)
		return rabbitmq.NewNopPublisher()
	}
	c.closers = append(c.closers, publisher.Close)
	return publisher
}

func (c *CompositionRoot) newGeoOracle() ports.GeoOracle {
	var oracle ports.GeoOracle = geocoding.NewStaticOracle()
	if c.configs.GoogleMapsAPIKey != "" {
		google, err := geocoding.NewGooglePlacesOracle(
			c.configs.GoogleMapsAPIKey, c.configs.GeocodeBaseURL, c.configs.GeocodeTimeout)
		if err != nil {
			c.logger.Warn("google geocoding disabled", "error", err)
		} else {
			oracle = google
		}
	}

	if c.configs.RedisAddr == "" {
		return oracle
	}

	client := goredis.NewClient(&goredis.Options{Addr: c.configs.RedisAddr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		c.logger.Warn("redis unavailable, geocoding is not cached", "error", err)
		_ = client.Close()
		return oracle
	}
	c.closers = append(c.closers, func() { _ = client.Close() })

	return geocoding.NewCachedOracle(oracle, rediscache.NewGeocodeCache(client, c.configs.GeocodeCacheTTL), c.logger)
}

func (c *CompositionRoot) CreateAssignmentPlanner() *services.AssignmentPlanner {
	return services.NewAssignmentPlanner(c.engine, c.counter)
}

func (c *CompositionRoot) CreateCreatePickupCommandHandler() commands.CreatePickupCommandHandler {
	var f commands.PickupUoWFactory = FuncPickupUoWFactory(func() commands.PickupUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreatePickupCommandHandler(f)
}

func (c *CompositionRoot) CreateRegisterWorkerCommandHandler() commands.RegisterWorkerCommandHandler {
	var f commands.WorkerUoWFactory = FuncWorkerUoWFactory(func() commands.WorkerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRegisterWorkerCommandHandler(f)
}

func (c *CompositionRoot) CreateAssignWorkerCommandHandler() commands.AssignWorkerCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignWorkerCommandHandler(f)
}

func (c *CompositionRoot) CreateAutoAssignCommandHandler() commands.AutoAssignCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAutoAssignCommandHandler(f, c.CreateAssignmentPlanner(), c.assignmentScope())
}

func (c *CompositionRoot) CreateUpdateStatusCommandHandler() commands.UpdateStatusCommandHandler {
	var f commands.LifecycleUoWFactory = FuncLifecycleUoWFactory(func() commands.LifecycleUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateStatusCommandHandler(f)
}

func (c *CompositionRoot) CreateMarkReachedCommandHandler() commands.MarkReachedCommandHandler {
	var f commands.LifecycleUoWFactory = FuncLifecycleUoWFactory(func() commands.LifecycleUoW {
		return c.uowFactory.Create()
	})
	return commands.NewMarkReachedCommandHandler(f)
}

func (c *CompositionRoot) CreateRescheduleCommandHandler() commands.RescheduleCommandHandler {
	var f commands.LifecycleUoWFactory = FuncLifecycleUoWFactory(func() commands.LifecycleUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRescheduleCommandHandler(f)
}

func (c *CompositionRoot) CreateGetUnassignedPickupsQueryHandler() queries.GetUnassignedPickupsQueryHandler {
	return queries.NewGetUnassignedPickupsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetWorkerPickupsQueryHandler() queries.GetWorkerPickupsQueryHandler {
	return queries.NewGetWorkerPickupsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPickupHistoryQueryHandler() queries.GetPickupHistoryQueryHandler {
	return queries.NewGetPickupHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetNearbyWorkersQueryHandler() queries.GetNearbyWorkersQueryHandler {
	return queries.NewGetNearbyWorkersQueryHandler(c.uowFactory.Create().WorkerRepository(), c.engine)
}

func (c *CompositionRoot) CreateGetAssignmentCountQueryHandler() queries.GetAssignmentCountQueryHandler {
	return queries.NewGetAssignmentCountQueryHandler(c.gormDB, c.counter)
}

func (c *CompositionRoot) CreateGetWorkerAvailabilityQueryHandler() queries.GetWorkerAvailabilityQueryHandler {
	return queries.NewGetWorkerAvailabilityQueryHandler(c.gormDB, c.counter)
}

func (c *CompositionRoot) CreateOrchestrator() *orchestrator.Orchestrator {
	return orchestrator.New(orchestrator.Handlers{
		CreatePickup:       c.CreateCreatePickupCommandHandler(),
		RegisterWorker:     c.CreateRegisterWorkerCommandHandler(),
		AssignWorker:       c.CreateAssignWorkerCommandHandler(),
		AutoAssign:         c.CreateAutoAssignCommandHandler(),
		UpdateStatus:       c.CreateUpdateStatusCommandHandler(),
		MarkReached:        c.CreateMarkReachedCommandHandler(),
		Reschedule:         c.CreateRescheduleCommandHandler(),
		UnassignedPickups:  c.CreateGetUnassignedPickupsQueryHandler(),
		NearbyWorkers:      c.CreateGetNearbyWorkersQueryHandler(),
		AssignmentCount:    c.CreateGetAssignmentCountQueryHandler(),
		WorkerAvailability: c.CreateGetWorkerAvailabilityQueryHandler(),
	}, orchestrator.Config{
		MaxAssignmentsPerWorker: c.configs.MaxAssignmentsPerWorker,
	}, c.logger)
}

func (c *CompositionRoot) CreateJobManager(assigner jobs.BulkAssigner) *jobs.JobManager {
	return jobs.NewJobManager(assigner, c.configs.AssignmentJobSchedule, c.logger)
}

func (c *CompositionRoot) CreateEcho(service httpadapter.PickupService) *echo.Echo {
	server := httpadapter.NewServer(
		service,
		c.CreateGetUnassignedPickupsQueryHandler(),
		c.CreateGetWorkerPickupsQueryHandler(),
		c.CreateGetPickupHistoryQueryHandler(),
		c.configs.NearbyDefaultRadiusKm,
	)
	return httpadapter.NewEcho(server, c.logger)
}

type FuncPickupUoWFactory func() commands.PickupUoW

func (f FuncPickupUoWFactory) Create() commands.PickupUoW {
	return f()
}

type FuncWorkerUoWFactory func() commands.WorkerUoW

func (f FuncWorkerUoWFactory) Create() commands.WorkerUoW {
	return f()
}

type FuncLifecycleUoWFactory func() commands.LifecycleUoW

func (f FuncLifecycleUoWFactory) Create() commands.LifecycleUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
