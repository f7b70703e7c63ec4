package queries

import (
	"context"
	"time"

	"sellerconsole/internal/core/domain/model/delivery"
	"sellerconsole/internal/core/domain/model/kernel"
	"sellerconsole/internal/core/domain/model/order"
)

// OrderReader is the read side of ports.OrderRepository.
type OrderReader interface {
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
	ListBySeller(ctx context.Context, sellerID kernel.UUID, status *order.Status) ([]*order.Order, error)
	ListCreatedSince(ctx context.Context, sellerID kernel.UUID, since time.Time) ([]*order.Order, error)
}

// DeliveryReader is the read side of ports.DeliveryRepository.
type DeliveryReader interface {
	Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)
	ListBySeller(ctx context.Context, sellerID kernel.UUID, status *delivery.Status) ([]*delivery.Delivery, error)
}

type GetOrderQueryHandler struct {
	orders OrderReader
}

func NewGetOrderQueryHandler(orders OrderReader) GetOrderQueryHandler {
	return GetOrderQueryHandler{orders: orders}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return h.orders.Get(ctx, query.OrderID())
}

type ListOrdersQueryHandler struct {
	orders OrderReader
}

func NewListOrdersQueryHandler(orders OrderReader) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{orders: orders}
}

// Handle returns the orders newest first.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return h.orders.ListBySeller(ctx, query.SellerID(), query.Status())
}

type GetDeliveryQueryHandler struct {
	deliveries DeliveryReader
}

func NewGetDeliveryQueryHandler(deliveries DeliveryReader) GetDeliveryQueryHandler {
	return GetDeliveryQueryHandler{deliveries: deliveries}
}

func (h GetDeliveryQueryHandler) Handle(ctx context.Context, query GetDeliveryQuery) (*delivery.Delivery, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return h.deliveries.Get(ctx, query.DeliveryID())
}

type ListDeliveriesQueryHandler struct {
	deliveries DeliveryReader
}

func NewListDeliveriesQueryHandler(deliveries DeliveryReader) ListDeliveriesQueryHandler {
	return ListDeliveriesQueryHandler{deliveries: deliveries}
}

func (h ListDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query ListDeliveriesQuery,
) ([]*delivery.Delivery, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return h.deliveries.ListBySeller(ctx, query.SellerID(), query.Status())
}
