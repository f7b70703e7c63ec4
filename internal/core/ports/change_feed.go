package ports

import (
	"context"

	"sellerconsole/internal/core/domain/model/event"
	"sellerconsole/internal/core/domain/model/kernel"
)

// EventHandler consumes change events of one seller. A handler may observe the
// same event more than once and must tolerate that.
type EventHandler func(ctx context.Context, e event.ChangeEvent)

// Subscription is a live registration on the change feed.
type Subscription interface {
	// Unsubscribe stops further deliveries. It is idempotent and safe to call
	// while a delivery to the same handler is in flight.
	Unsubscribe()
}

// ChangeFeed is the per-seller publish/subscribe transport.
//
// Publish never blocks on consumers and never fails the caller: delivery is
// best effort and consumers reconcile by refetching. Events for one entity
// reach each subscriber in non-decreasing version order; there is no ordering
// across entities.
type ChangeFeed interface {
	Publish(ctx context.Context, e event.ChangeEvent)
	Subscribe(sellerID kernel.UUID, handler EventHandler) (Subscription, error)
}

// SellerActivator starts the standing notification subscriber for a seller.
// Activate is idempotent.
type SellerActivator interface {
	Activate(ctx context.Context, sellerID kernel.UUID) error
}
