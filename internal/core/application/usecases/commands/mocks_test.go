package commands_test

import (
	"context"
	"sync"
	"time"

	"sellerconsole/internal/core/application/usecases/commands"
	"sellerconsole/internal/core/domain/model/delivery"
	"sellerconsole/internal/core/domain/model/event"
	"sellerconsole/internal/core/domain/model/kernel"
	"sellerconsole/internal/core/domain/model/notification"
	"sellerconsole/internal/core/domain/model/order"
	"sellerconsole/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

var fixedNow = time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order, expectedVersion int64) error {
	args := m.Called(ctx, o, expectedVersion)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) ListBySeller(
	ctx context.Context,
	sellerID kernel.UUID,
	status *order.Status,
) ([]*order.Order, error) {
	args := m.Called(ctx, sellerID, status)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

func (m *MockOrderRepository) ListCreatedSince(
	ctx context.Context,
	sellerID kernel.UUID,
	since time.Time,
) ([]*order.Order, error) {
	args := m.Called(ctx, sellerID, since)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

func (m *MockOrderRepository) ListUpdatedSince(ctx context.Context, since time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, since)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

func (m *MockOrderRepository) ListSellerIDs(ctx context.Context) ([]kernel.UUID, error) {
	args := m.Called(ctx)
	ids, _ := args.Get(0).([]kernel.UUID)
	return ids, args.Error(1)
}

type MockDeliveryRepository struct{ mock.Mock }

func (m *MockDeliveryRepository) Add(ctx context.Context, d *delivery.Delivery) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDeliveryRepository) Update(ctx context.Context, d *delivery.Delivery, expectedVersion int64) error {
	args := m.Called(ctx, d, expectedVersion)
	return args.Error(0)
}

func (m *MockDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	args := m.Called(ctx, id)
	d, _ := args.Get(0).(*delivery.Delivery)
	return d, args.Error(1)
}

func (m *MockDeliveryRepository) ListBySeller(
	ctx context.Context,
	sellerID kernel.UUID,
	status *delivery.Status,
) ([]*delivery.Delivery, error) {
	args := m.Called(ctx, sellerID, status)
	deliveries, _ := args.Get(0).([]*delivery.Delivery)
	return deliveries, args.Error(1)
}

func (m *MockDeliveryRepository) ListUpdatedSince(ctx context.Context, since time.Time) ([]*delivery.Delivery, error) {
	args := m.Called(ctx, since)
	deliveries, _ := args.Get(0).([]*delivery.Delivery)
	return deliveries, args.Error(1)
}

func (m *MockDeliveryRepository) ListOverdue(ctx context.Context, now time.Time) ([]*delivery.Delivery, error) {
	args := m.Called(ctx, now)
	deliveries, _ := args.Get(0).([]*delivery.Delivery)
	return deliveries, args.Error(1)
}

func (m *MockDeliveryRepository) ListSellerIDs(ctx context.Context) ([]kernel.UUID, error) {
	args := m.Called(ctx)
	ids, _ := args.Get(0).([]kernel.UUID)
	return ids, args.Error(1)
}

type MockNotificationRepository struct{ mock.Mock }

func (m *MockNotificationRepository) AddIfAbsent(ctx context.Context, n *notification.Notification) (bool, error) {
	args := m.Called(ctx, n)
	return args.Bool(0), args.Error(1)
}

func (m *MockNotificationRepository) Get(ctx context.Context, id kernel.UUID) (*notification.Notification, error) {
	args := m.Called(ctx, id)
	n, _ := args.Get(0).(*notification.Notification)
	return n, args.Error(1)
}

func (m *MockNotificationRepository) Update(ctx context.Context, n *notification.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockNotificationRepository) MarkAllRead(ctx context.Context, userID kernel.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockUoW satisfies every unit of work flavour used by the handlers.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) DeliveryRepository() ports.DeliveryRepository {
	args := m.Called()
	return args.Get(0).(ports.DeliveryRepository)
}

func (m *MockUoW) NotificationRepository() ports.NotificationRepository {
	args := m.Called()
	return args.Get(0).(ports.NotificationRepository)
}

type MockOrderUoWFactory struct{ uow *MockUoW }

func (f MockOrderUoWFactory) Create() commands.OrderUoW { return f.uow }

type MockDeliveryUoWFactory struct{ uow *MockUoW }

func (f MockDeliveryUoWFactory) Create() commands.DeliveryUoW { return f.uow }

type MockNotificationUoWFactory struct{ uow *MockUoW }

func (f MockNotificationUoWFactory) Create() commands.NotificationUoW { return f.uow }

type MockUoWFactory struct{ uow *MockUoW }

func (f MockUoWFactory) Create() commands.UoW { return f.uow }

// recordingFeed captures published events.
type recordingFeed struct {
	mu     sync.Mutex
	events []event.ChangeEvent
}

func (f *recordingFeed) Publish(_ context.Context, e event.ChangeEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, e)
}

func (f *recordingFeed) Subscribe(_ kernel.UUID, _ ports.EventHandler) (ports.Subscription, error) {
	return nil, nil
}

func (f *recordingFeed) Published() []event.ChangeEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]event.ChangeEvent, len(f.events))
	copy(out, f.events)
	return out
}

type MockSellerActivator struct{ mock.Mock }

func (m *MockSellerActivator) Activate(ctx context.Context, sellerID kernel.UUID) error {
	args := m.Called(ctx, sellerID)
	return args.Error(0)
}

type MockDispatcher struct{ mock.Mock }

func (m *MockDispatcher) Handle(
	ctx context.Context,
	cmd commands.DispatchNotificationsCommand,
) (commands.DispatchResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.DispatchResult), args.Error(1)
}
