package queries

import (
	"errors"

	"sellerconsole/internal/core/domain/model/delivery"
	"sellerconsole/internal/core/domain/model/kernel"
	"sellerconsole/internal/core/domain/model/order"
	"sellerconsole/internal/pkg/errs"
	"sellerconsole/internal/pkg/guard"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
	ErrListOrdersQueryIsNotConstructed = errors.New(
		"ListOrdersQuery must be created via NewListOrdersQuery constructor",
	)
	ErrGetDeliveryQueryIsNotConstructed = errors.New(
		"GetDeliveryQuery must be created via NewGetDeliveryQuery constructor",
	)
	ErrListDeliveriesQueryIsNotConstructed = errors.New(
		"ListDeliveriesQuery must be created via NewListDeliveriesQuery constructor",
	)
)

// GetOrderQuery fetches one order, typically to refresh after a change event
// or a version conflict.
type GetOrderQuery struct {
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, errs.NewValueIsRequiredErrorWithCause("orderId", err)
	}
	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() kernel.UUID { return q.orderID }

// ListOrdersQuery lists a seller's orders, optionally filtered by status.
type ListOrdersQuery struct {
	sellerID kernel.UUID
	status   *order.Status
	guard    guard.ConstructorGuard
}

func NewListOrdersQuery(sellerID kernel.UUID, status *order.Status) (ListOrdersQuery, error) {
	var sellerErr, statusErr error
	if err := sellerID.Validate(); err != nil {
		sellerErr = errs.NewValueIsRequiredErrorWithCause("sellerId", err)
	}
	if status != nil {
		statusErr = status.Validate()
	}
	if err := errors.Join(sellerErr, statusErr); err != nil {
		return ListOrdersQuery{}, err
	}

	q := ListOrdersQuery{sellerID: sellerID, guard: guard.NewConstructorGuard()}
	if status != nil {
		s := *status
		q.status = &s
	}
	return q, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) SellerID() kernel.UUID { return q.sellerID }

func (q ListOrdersQuery) Status() *order.Status { return q.status }

// GetDeliveryQuery fetches one delivery.
type GetDeliveryQuery struct {
	deliveryID kernel.UUID
	guard      guard.ConstructorGuard
}

func NewGetDeliveryQuery(deliveryID kernel.UUID) (GetDeliveryQuery, error) {
	if err := deliveryID.Validate(); err != nil {
		return GetDeliveryQuery{}, errs.NewValueIsRequiredErrorWithCause("deliveryId", err)
	}
	return GetDeliveryQuery{deliveryID: deliveryID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetDeliveryQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryQueryIsNotConstructed)
}

func (q GetDeliveryQuery) DeliveryID() kernel.UUID { return q.deliveryID }

// ListDeliveriesQuery lists a seller's deliveries, optionally filtered by status.
type ListDeliveriesQuery struct {
	sellerID kernel.UUID
	status   *delivery.Status
	guard    guard.ConstructorGuard
}

func NewListDeliveriesQuery(sellerID kernel.UUID, status *delivery.Status) (ListDeliveriesQuery, error) {
	var sellerErr, statusErr error
	if err := sellerID.Validate(); err != nil {
		sellerErr = errs.NewValueIsRequiredErrorWithCause("sellerId", err)
	}
	if status != nil {
		statusErr = status.Validate()
	}
	if err := errors.Join(sellerErr, statusErr); err != nil {
		return ListDeliveriesQuery{}, err
	}

	q := ListDeliveriesQuery{sellerID: sellerID, guard: guard.NewConstructorGuard()}
	if status != nil {
		s := *status
		q.status = &s
	}
	return q, nil
}

func (q ListDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrListDeliveriesQueryIsNotConstructed)
}

func (q ListDeliveriesQuery) SellerID() kernel.UUID { return q.sellerID }

func (q ListDeliveriesQuery) Status() *delivery.Status { return q.status }
