package http_test

import (
	"context"
	"time"

	"sellerconsole/internal/core/application/usecases/commands"
	"sellerconsole/internal/core/application/usecases/queries"
	"sellerconsole/internal/core/domain/model/delivery"
	"sellerconsole/internal/core/domain/model/metrics"
	"sellerconsole/internal/core/domain/model/order"

	"github.com/stretchr/testify/mock"
)

var fixedNow = time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC)

type MockUseCase[Q any, R any] struct{ mock.Mock }

func (m *MockUseCase[Q, R]) Handle(ctx context.Context, q Q) (R, error) {
	args := m.Called(ctx, q)
	var result R
	if v := args.Get(0); v != nil {
		result = v.(R)
	}
	return result, args.Error(1)
}

type MockAction[C any] struct{ mock.Mock }

func (m *MockAction[C]) Handle(ctx context.Context, cmd C) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

type mocks struct {
	createOrder        *MockUseCase[commands.CreateOrderCommand, *order.Order]
	transitionOrder    *MockUseCase[commands.TransitionOrderCommand, *order.Order]
	getOrder           *MockUseCase[queries.GetOrderQuery, *order.Order]
	listOrders         *MockUseCase[queries.ListOrdersQuery, []*order.Order]
	createDelivery     *MockUseCase[commands.CreateDeliveryCommand, *delivery.Delivery]
	transitionDelivery *MockUseCase[commands.TransitionDeliveryCommand, *delivery.Delivery]
	getDelivery        *MockUseCase[queries.GetDeliveryQuery, *delivery.Delivery]
	listDeliveries     *MockUseCase[queries.ListDeliveriesQuery, []*delivery.Delivery]
	listNotifications  *MockUseCase[queries.ListNotificationsQuery, []queries.NotificationView]
	unreadCount        *MockUseCase[queries.UnreadCountQuery, int64]
	markRead           *MockAction[commands.MarkNotificationReadCommand]
	markAllRead        *MockUseCase[commands.MarkAllReadCommand, int64]
	deleteNotification *MockAction[commands.DeleteNotificationCommand]
	computeMetrics     *MockUseCase[queries.ComputeMetricsQuery, *metrics.Snapshot]
	exportMetrics      *MockUseCase[queries.ComputeMetricsQuery, *queries.ExportedMetrics]
}
