package cmd

import (
	"time"

	feedin "sellerconsole/internal/adapters/in/feed"
	httpadapter "sellerconsole/internal/adapters/in/http"
	"sellerconsole/internal/adapters/out/export"
	"sellerconsole/internal/adapters/out/feed/memory"
	"sellerconsole/internal/adapters/out/feed/redisfeed"
	"sellerconsole/internal/adapters/out/postgres"
	"sellerconsole/internal/adapters/out/postgres/deliveryrepo"
	"sellerconsole/internal/adapters/out/postgres/orderrepo"
	"sellerconsole/internal/core/application/usecases/commands"
	"sellerconsole/internal/core/application/usecases/queries"
	"sellerconsole/internal/core/domain/model/kernel"
	"sellerconsole/internal/core/domain/services"
	"sellerconsole/internal/core/ports"
	"sellerconsole/internal/jobs"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	redis      *redis.Client
	logger     logrus.FieldLogger
	uowFactory *postgres.GormUnitOfWorkFactory
	clock      kernel.Clock
	location   *time.Location

	feed       ports.ChangeFeed
	redisFeed  *redisfeed.Feed
	dispatcher *feedin.Dispatcher
}

// NewCompositionRoot wires the adapters. A nil redisClient selects the
// in-process change feed.
func NewCompositionRoot(cfg Config, gormDB *gorm.DB, redisClient *redis.Client, logger logrus.FieldLogger) *CompositionRoot {
	c := &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		redis:      redisClient,
		logger:     logger,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		clock:      kernel.SystemClock{},
	}

	location, err := cfg.Location()
	if err != nil {
		logger.WithError(err).Warn("falling back to UTC for metrics buckets")
		location = time.UTC
	}
	c.location = location

	if redisClient != nil {
		c.redisFeed = redisfeed.NewFeed(redisClient, logger)
		c.feed = c.redisFeed
	} else {
		c.feed = memory.NewFeed(logger)
	}

	c.dispatcher = feedin.NewDispatcher(c.feed, c.CreateDispatchNotificationsCommandHandler(), logger)
	return c
}

func (c *CompositionRoot) ChangeFeed() ports.ChangeFeed { return c.feed }

// Dispatcher is the standing notification subscriber; it is also the seller activator.
func (c *CompositionRoot) Dispatcher() *feedin.Dispatcher { return c.dispatcher }

// Close releases the Redis subscriptions of the change feed.
func (c *CompositionRoot) Close() error {
	if c.redisFeed != nil {
		return c.redisFeed.Close()
	}
	return nil
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.feed, c.dispatcher, c.clock)
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewTransitionOrderCommandHandler(f, c.feed, c.clock)
}

func (c *CompositionRoot) CreateCreateDeliveryCommandHandler() commands.CreateDeliveryCommandHandler {
	var f commands.DeliveryUoWFactory = FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateDeliveryCommandHandler(f, c.feed, c.dispatcher, c.clock)
}

func (c *CompositionRoot) CreateTransitionDeliveryCommandHandler() commands.TransitionDeliveryCommandHandler {
	var f commands.DeliveryUoWFactory = FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewTransitionDeliveryCommandHandler(f, c.feed, c.clock)
}

func (c *CompositionRoot) CreateDispatchNotificationsCommandHandler() commands.DispatchNotificationsCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewDispatchNotificationsCommandHandler(f, c.feed, services.NewRecipientResolver(), c.clock)
}

func (c *CompositionRoot) CreateReconcileNotificationsCommandHandler() commands.ReconcileNotificationsCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewReconcileNotificationsCommandHandler(
		f, c.CreateDispatchNotificationsCommandHandler(), c.dispatcher, c.feed, c.clock)
}

func (c *CompositionRoot) notificationUoWFactory() commands.NotificationUoWFactory {
	return FuncNotificationUoWFactory(func() commands.NotificationUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateMarkNotificationReadCommandHandler() commands.MarkNotificationReadCommandHandler {
	return commands.NewMarkNotificationReadCommandHandler(c.notificationUoWFactory())
}

func (c *CompositionRoot) CreateMarkAllReadCommandHandler() commands.MarkAllReadCommandHandler {
	return commands.NewMarkAllReadCommandHandler(c.notificationUoWFactory())
}

func (c *CompositionRoot) CreateDeleteNotificationCommandHandler() commands.DeleteNotificationCommandHandler {
	return commands.NewDeleteNotificationCommandHandler(c.notificationUoWFactory())
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(orderrepo.NewGormOrderRepository(c.gormDB))
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(orderrepo.NewGormOrderRepository(c.gormDB))
}

func (c *CompositionRoot) CreateGetDeliveryQueryHandler() queries.GetDeliveryQueryHandler {
	return queries.NewGetDeliveryQueryHandler(deliveryrepo.NewGormDeliveryRepository(c.gormDB))
}

func (c *CompositionRoot) CreateListDeliveriesQueryHandler() queries.ListDeliveriesQueryHandler {
	return queries.NewListDeliveriesQueryHandler(deliveryrepo.NewGormDeliveryRepository(c.gormDB))
}

func (c *CompositionRoot) CreateListNotificationsQueryHandler() queries.ListNotificationsQueryHandler {
	return queries.NewListNotificationsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateUnreadCountQueryHandler() queries.UnreadCountQueryHandler {
	return queries.NewUnreadCountQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateComputeMetricsQueryHandler() queries.ComputeMetricsQueryHandler {
	return queries.NewComputeMetricsQueryHandler(
		orderrepo.NewGormOrderRepository(c.gormDB),
		services.NewMetricsAggregator(c.location),
		c.clock,
	)
}

func (c *CompositionRoot) CreateExportMetricsQueryHandler() queries.ExportMetricsQueryHandler {
	return queries.NewExportMetricsQueryHandler(c.CreateComputeMetricsQueryHandler(), export.NewXLSXExporter())
}

func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(httpadapter.Handlers{
		CreateOrder:        c.CreateCreateOrderCommandHandler(),
		TransitionOrder:    c.CreateTransitionOrderCommandHandler(),
		GetOrder:           c.CreateGetOrderQueryHandler(),
		ListOrders:         c.CreateListOrdersQueryHandler(),
		CreateDelivery:     c.CreateCreateDeliveryCommandHandler(),
		TransitionDelivery: c.CreateTransitionDeliveryCommandHandler(),
		GetDelivery:        c.CreateGetDeliveryQueryHandler(),
		ListDeliveries:     c.CreateListDeliveriesQueryHandler(),
		ListNotifications:  c.CreateListNotificationsQueryHandler(),
		UnreadCount:        c.CreateUnreadCountQueryHandler(),
		MarkRead:           c.CreateMarkNotificationReadCommandHandler(),
		MarkAllRead:        c.CreateMarkAllReadCommandHandler(),
		DeleteNotification: c.CreateDeleteNotificationCommandHandler(),
		ComputeMetrics:     c.CreateComputeMetricsQueryHandler(),
		ExportMetrics:      c.CreateExportMetricsQueryHandler(),
	}, c.feed, c.cfg.PhoneRegion, c.logger)
}

func (c *CompositionRoot) CreateReconciliationJob() *jobs.ReconciliationJob {
	var locker jobs.Locker = jobs.LocalLocker{}
	if c.redis != nil {
		locker = jobs.NewRedisLocker(c.redis)
	}
	return jobs.NewReconciliationJob(
		c.CreateReconcileNotificationsCommandHandler(),
		c.cfg.ReconcileSchedule,
		c.cfg.ReconcileLookback,
		locker,
		c.logger,
	)
}

func (c *CompositionRoot) CreateJobManager(reconciliation *jobs.ReconciliationJob) *jobs.JobManager {
	return jobs.NewJobManager(reconciliation)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}

type FuncNotificationUoWFactory func() commands.NotificationUoW

func (f FuncNotificationUoWFactory) Create() commands.NotificationUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
