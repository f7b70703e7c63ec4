package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "sellerconsole/internal/adapters/out/postgres"
	"sellerconsole/internal/core/domain/model/delivery"
	"sellerconsole/internal/core/domain/model/kernel"
	"sellerconsole/internal/core/domain/model/notification"
	"sellerconsole/internal/core/domain/model/order"
	"sellerconsole/internal/core/ports"
	"sellerconsole/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite exercises the GORM Unit of Work against a
// real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
	now       time.Time
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(30*time.Second)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres_adapter.Migrate(db))
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE order_items, orders, deliveries, notifications").Error)
	suite.now = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")
	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow1.DeliveryRepository())
	suite.NotNil(uow1.NotificationRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "Multiple begin calls should be safe")
	suite.Require().NoError(uow.Commit(ctx))

	// the deferred rollback that follows a commit in every handler
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().Error(uow.Commit(ctx), "Should error when committing without active transaction")
	suite.Require().Error(uow.Rollback(ctx), "Should error when rolling back without active transaction")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_MultiRepositoryCommit() {
	ctx := context.Background()
	uow := suite.factory.Create()
	o := suite.newOrder()
	d := suite.newDelivery()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.DeliveryRepository().Add(ctx, d))
	suite.Require().NoError(uow.Commit(ctx))

	reader := suite.factory.Create()
	_, err := reader.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	_, err = reader.DeliveryRepository().Get(ctx, d.ID())
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionRollback() {
	ctx := context.Background()
	uow := suite.factory.Create()
	o := suite.newOrder()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))

	_, err := uow.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err, "Order should be visible inside the transaction")

	suite.Require().NoError(uow.Rollback(ctx))

	_, err = suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_ConcurrentTransitions_OneWins() {
	ctx := context.Background()
	o := suite.newOrder()
	suite.Require().NoError(suite.factory.Create().OrderRepository().Add(ctx, o))

	first := suite.factory.Create()
	second := suite.factory.Create()

	firstCopy, err := first.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	secondCopy, err := second.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(firstCopy.Transition(order.Confirmed, 0, suite.now))
	suite.Require().NoError(secondCopy.Transition(order.Cancelled, 0, suite.now))

	suite.Require().NoError(first.Begin(ctx))
	suite.Require().NoError(first.OrderRepository().Update(ctx, firstCopy, 0))
	suite.Require().NoError(first.Commit(ctx))

	suite.Require().NoError(second.Begin(ctx))
	err = second.OrderRepository().Update(ctx, secondCopy, 0)
	suite.Require().ErrorIs(err, errs.ErrConflict)
	suite.Require().NoError(second.Rollback(ctx))

	stored, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Confirmed, stored.Status())
	suite.Equal(int64(1), stored.Version())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_WithoutTransaction_NotificationDedup() {
	ctx := context.Background()
	o := suite.newOrder()
	uow := suite.factory.Create()

	recipient := notification.Recipient{UserID: kernel.NewUUID(), Role: notification.RoleSeller}
	for range 2 {
		n, err := notification.NewFromChange(kernel.NewUUID(), recipient, o.ChangeEvent(), suite.now)
		suite.Require().NoError(err)
		_, err = uow.NotificationRepository().AddIfAbsent(ctx, n)
		suite.Require().NoError(err)
	}

	var count int64
	suite.Require().NoError(suite.db.Table("notifications").Count(&count).Error)
	suite.Equal(int64(1), count)
}

func (suite *UnitOfWorkIntegrationTestSuite) newOrder() *order.Order {
	retailerID := kernel.NewUUID()
	item, err := order.NewItem("sku-1", "Basmati 5kg", 2, kernel.MustMoney("100"))
	suite.Require().NoError(err)
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), &retailerID, "Sharma Stores",
		[]order.Item{item}, suite.now)
	suite.Require().NoError(err)
	return o
}

func (suite *UnitOfWorkIntegrationTestSuite) newDelivery() *delivery.Delivery {
	recipient, err := delivery.NewManualRecipient("Ravi Kumar", "12 MG Road, Pune", "", "")
	suite.Require().NoError(err)
	d, err := delivery.NewDelivery(kernel.NewUUID(), kernel.NewUUID(), recipient,
		suite.now.Add(24*time.Hour), nil, suite.now)
	suite.Require().NoError(err)
	return d
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
