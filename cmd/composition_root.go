package cmd

import (
	"log/slog"
	"time"

	httpadapter "orderflow/internal/adapters/in/http"
	"orderflow/internal/adapters/out/inmemory"
	"orderflow/internal/adapters/out/postgres"
	"orderflow/internal/adapters/out/postgres/orderrepo"
	"orderflow/internal/adapters/out/rabbitmq"
	"orderflow/internal/core/application/eventhandlers"
	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/otp"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/core/ports"
	"orderflow/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires the application graph. With a database connection it
// uses the postgres adapters for persistence and role views; without one it
// runs entirely on the in-memory store. The event bus, OTP gate, and
// notification inboxes are in-process in both modes.
type CompositionRoot struct {
	config Config
	logger *slog.Logger

	uowFactory ports.UnitOfWorkFactory
	orders     ports.OrderRepository
	index      ports.ProjectionIndex
	bus        ports.EventBus
	notifier   ports.Notifier

	gate      *otp.Gate
	publisher *commands.EventPublisher
	assigner  *commands.WorkerAssigner

	relay *rabbitmq.Publisher
}

// noopTracker satisfies the postgres repository's tracker dependency for
// standalone reads outside a unit of work.
type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.UUID, any) {}

// NewCompositionRoot builds the graph. gormDB may be nil for in-memory mode.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) *CompositionRoot {
	root := &CompositionRoot{
		config: config,
		logger: logger,
	}

	store := inmemory.NewStore()
	if gormDB != nil {
		root.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB)
		root.orders = orderrepo.NewGormOrderRepository(gormDB, noopTracker{})
		root.index = orderrepo.NewGormProjectionIndex(gormDB)
	} else {
		root.uowFactory = inmemory.NewUnitOfWorkFactory(store)
		root.orders = inmemory.NewRepository(store)
		root.index = store
	}

	root.bus = inmemory.NewEventBus()
	root.notifier = inmemory.NewInboxStore(config.InboxCapacity)

	policy := otp.DefaultPolicy()
	if config.OtpTTLMinutes > 0 {
		policy.TTL = time.Duration(config.OtpTTLMinutes) * time.Minute
	}
	if config.OtpMaxAttempts > 0 {
		policy.MaxAttempts = config.OtpMaxAttempts
	}
	root.gate = otp.NewGate(policy)

	root.publisher = commands.NewEventPublisher(root.bus, logger)
	strategy := services.NewRoundRobinStrategy(config.Pickers, config.Packers, config.Riders)
	root.assigner = commands.NewWorkerAssigner(root.uowFactory, strategy, root.publisher, logger)

	return root
}

// RegisterEventHandlers subscribes the notification fan-out and, when a
// broker is configured, the RabbitMQ relay. Returns an error only when the
// configured broker is unreachable.
func (c *CompositionRoot) RegisterEventHandlers() error {
	fanout := eventhandlers.NewNotificationFanout(c.orders, c.notifier, c.logger)
	fanout.Register(c.bus)

	if c.config.AmqpURL != "" {
		relay, err := rabbitmq.Dial(rabbitmq.Config{
			URL:      c.config.AmqpURL,
			Exchange: c.config.AmqpExchange,
		}, c.logger)
		if err != nil {
			return err
		}
		c.relay = relay
		relay.Register(c.bus)
	}
	return nil
}

// Close releases external connections.
func (c *CompositionRoot) Close() {
	if c.relay != nil {
		c.relay.Close()
	}
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	return commands.NewPlaceOrderCommandHandler(c.uowFactory, c.publisher)
}

func (c *CompositionRoot) CreateAcceptOrderCommandHandler() commands.AcceptOrderCommandHandler {
	return commands.NewAcceptOrderCommandHandler(c.uowFactory, c.publisher, c.assigner)
}

func (c *CompositionRoot) CreateRejectOrderCommandHandler() commands.RejectOrderCommandHandler {
	return commands.NewRejectOrderCommandHandler(c.uowFactory, c.publisher)
}

func (c *CompositionRoot) CreateAssignPickerCommandHandler() commands.AssignPickerCommandHandler {
	return commands.NewAssignPickerCommandHandler(c.uowFactory, c.publisher)
}

func (c *CompositionRoot) CreateScanItemCommandHandler() commands.ScanItemCommandHandler {
	return commands.NewScanItemCommandHandler(c.uowFactory, c.publisher)
}

func (c *CompositionRoot) CreateMarkOutOfStockCommandHandler() commands.MarkOutOfStockCommandHandler {
	return commands.NewMarkOutOfStockCommandHandler(c.uowFactory, c.publisher)
}

func (c *CompositionRoot) CreateCompletePickingCommandHandler() commands.CompletePickingCommandHandler {
	return commands.NewCompletePickingCommandHandler(c.uowFactory, c.publisher, c.assigner)
}

func (c *CompositionRoot) CreateAssignPackerCommandHandler() commands.AssignPackerCommandHandler {
	return commands.NewAssignPackerCommandHandler(c.uowFactory, c.publisher)
}

func (c *CompositionRoot) CreateMarkPackedCommandHandler() commands.MarkPackedCommandHandler {
	return commands.NewMarkPackedCommandHandler(c.uowFactory, c.publisher)
}

func (c *CompositionRoot) CreateCompletePackingCommandHandler() commands.CompletePackingCommandHandler {
	return commands.NewCompletePackingCommandHandler(c.uowFactory, c.publisher, c.assigner)
}

func (c *CompositionRoot) CreateAssignRiderCommandHandler() commands.AssignRiderCommandHandler {
	return commands.NewAssignRiderCommandHandler(c.uowFactory, c.publisher)
}

func (c *CompositionRoot) CreatePickupOrderCommandHandler() commands.PickupOrderCommandHandler {
	return commands.NewPickupOrderCommandHandler(c.uowFactory, c.publisher, c.gate)
}

func (c *CompositionRoot) CreateVerifyDeliveryCommandHandler() commands.VerifyDeliveryCommandHandler {
	return commands.NewVerifyDeliveryCommandHandler(c.uowFactory, c.publisher, c.gate)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.orders)
}

func (c *CompositionRoot) CreateGetAllOrdersQueryHandler() queries.GetAllOrdersQueryHandler {
	return queries.NewGetAllOrdersQueryHandler(c.index)
}

func (c *CompositionRoot) CreateGetActorOrdersQueryHandler() queries.GetActorOrdersQueryHandler {
	return queries.NewGetActorOrdersQueryHandler(c.index)
}

func (c *CompositionRoot) CreateGetNotificationsQueryHandler() queries.GetNotificationsQueryHandler {
	return queries.NewGetNotificationsQueryHandler(c.notifier)
}

// CreateServer builds the HTTP server over all command and query handlers.
func (c *CompositionRoot) CreateServer() *httpadapter.Server {
	return httpadapter.NewServer(
		c.CreatePlaceOrderCommandHandler(),
		c.CreateAcceptOrderCommandHandler(),
		c.CreateRejectOrderCommandHandler(),
		c.CreateAssignPickerCommandHandler(),
		c.CreateScanItemCommandHandler(),
		c.CreateMarkOutOfStockCommandHandler(),
		c.CreateCompletePickingCommandHandler(),
		c.CreateAssignPackerCommandHandler(),
		c.CreateMarkPackedCommandHandler(),
		c.CreateCompletePackingCommandHandler(),
		c.CreateAssignRiderCommandHandler(),
		c.CreatePickupOrderCommandHandler(),
		c.CreateVerifyDeliveryCommandHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateGetAllOrdersQueryHandler(),
		c.CreateGetActorOrdersQueryHandler(),
		c.CreateGetNotificationsQueryHandler(),
	)
}

// CreateJobManager builds the scheduled jobs.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	sweep := jobs.NewAssignmentSweepJob(c.orders, c.assigner, c.config.SweepSchedule, c.logger)
	return jobs.NewJobManager(sweep)
}
