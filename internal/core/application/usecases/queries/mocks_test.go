package queries_test

import (
	"context"
	"io"
	"time"

	"sellerconsole/internal/core/domain/model/delivery"
	"sellerconsole/internal/core/domain/model/kernel"
	"sellerconsole/internal/core/domain/model/metrics"
	"sellerconsole/internal/core/domain/model/order"

	"github.com/stretchr/testify/mock"
)

var fixedNow = time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type MockOrderReader struct{ mock.Mock }

func (m *MockOrderReader) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderReader) ListBySeller(
	ctx context.Context,
	sellerID kernel.UUID,
	status *order.Status,
) ([]*order.Order, error) {
	args := m.Called(ctx, sellerID, status)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

func (m *MockOrderReader) ListCreatedSince(
	ctx context.Context,
	sellerID kernel.UUID,
	since time.Time,
) ([]*order.Order, error) {
	args := m.Called(ctx, sellerID, since)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

type MockDeliveryReader struct{ mock.Mock }

func (m *MockDeliveryReader) Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	args := m.Called(ctx, id)
	d, _ := args.Get(0).(*delivery.Delivery)
	return d, args.Error(1)
}

func (m *MockDeliveryReader) ListBySeller(
	ctx context.Context,
	sellerID kernel.UUID,
	status *delivery.Status,
) ([]*delivery.Delivery, error) {
	args := m.Called(ctx, sellerID, status)
	deliveries, _ := args.Get(0).([]*delivery.Delivery)
	return deliveries, args.Error(1)
}

type MockExporter struct{ mock.Mock }

func (m *MockExporter) ContentType() string { return "text/plain" }

func (m *MockExporter) FileExtension() string { return "txt" }

func (m *MockExporter) Export(ctx context.Context, snapshot *metrics.Snapshot, w io.Writer) error {
	args := m.Called(ctx, snapshot)
	if args.Error(0) == nil {
		_, _ = io.WriteString(w, snapshot.TotalRevenue.String())
	}
	return args.Error(0)
}
