package commands

import (
	"context"
	"errors"
	"time"

	"sellerconsole/internal/core/domain/model/event"
	"sellerconsole/internal/core/domain/model/kernel"
	"sellerconsole/internal/core/domain/model/notification"
	"sellerconsole/internal/core/ports"
)

// NotificationDispatcher is the dispatch step reconciliation replays events through.
type NotificationDispatcher interface {
	Handle(ctx context.Context, cmd DispatchNotificationsCommand) (DispatchResult, error)
}

// ReconcileResult summarizes one reconciliation pass.
type ReconcileResult struct {
	Sellers    int
	Entities   int
	Created    int
	Duplicates int
	// Alerts counts overdue delivery notifications raised by the pass.
	Alerts int
	Errors []error
}

// ReconcileNotificationsCommandHandler rebuilds the change event of every
// order and delivery updated within the lookback and dispatches it again.
// Events lost by the best-effort feed are recovered this way; dedup keeps
// already-dispatched events from producing a second notification. Only the
// current state of each entity is replayed.
//
// Every seller with orders or deliveries is activated on each pass, so
// subscribers missed at creation time are started.
//
// The pass also raises a system notification to the seller for every pending
// or in-transit delivery past its estimated delivery time. The alert is keyed
// by delivery and version, so it is raised once per delivery state.
type ReconcileNotificationsCommandHandler struct {
	uowFactory UoWFactory
	dispatcher NotificationDispatcher
	activator  ports.SellerActivator
	feed       ports.ChangeFeed
	clock      kernel.Clock
}

func NewReconcileNotificationsCommandHandler(
	uowFactory UoWFactory,
	dispatcher NotificationDispatcher,
	activator ports.SellerActivator,
	feed ports.ChangeFeed,
	clock kernel.Clock,
) ReconcileNotificationsCommandHandler {
	return ReconcileNotificationsCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		activator:  activator,
		feed:       feed,
		clock:      clock,
	}
}

func (h ReconcileNotificationsCommandHandler) Handle(
	ctx context.Context,
	cmd ReconcileNotificationsCommand,
) (ReconcileResult, error) {
	if err := cmd.Validate(); err != nil {
		return ReconcileResult{}, err
	}

	now := h.clock.Now()
	since := now.Add(-cmd.Lookback())
	uow := h.uowFactory.Create()

	var result ReconcileResult

	sellers, err := h.sellerIDs(ctx, uow)
	if err != nil {
		return ReconcileResult{}, err
	}
	for _, sellerID := range sellers {
		if err = h.activator.Activate(ctx, sellerID); err != nil {
			result.Errors = append(result.Errors, err)
			continue
		}
		result.Sellers++
	}

	orders, err := uow.OrderRepository().ListUpdatedSince(ctx, since)
	if err != nil {
		return result, err
	}
	deliveries, err := uow.DeliveryRepository().ListUpdatedSince(ctx, since)
	if err != nil {
		return result, err
	}

	events := make([]event.ChangeEvent, 0, len(orders)+len(deliveries))
	for _, o := range orders {
		events = append(events, o.ChangeEvent())
	}
	for _, d := range deliveries {
		events = append(events, d.ChangeEvent())
	}

	for _, e := range events {
		if err = ctx.Err(); err != nil {
			return result, err
		}

		result.Entities++
		dispatchCmd, err := NewDispatchNotificationsCommand(e)
		if err != nil {
			result.Errors = append(result.Errors, err)
			continue
		}

		dispatched, err := h.dispatcher.Handle(ctx, dispatchCmd)
		if err != nil {
			result.Errors = append(result.Errors, err)
			continue
		}
		result.Created += len(dispatched.Created)
		result.Duplicates += dispatched.Duplicates
		result.Errors = append(result.Errors, dispatched.Failed...)
	}

	if err = h.raiseOverdueAlerts(ctx, uow, now, &result); err != nil {
		return result, err
	}

	return result, nil
}

func (h ReconcileNotificationsCommandHandler) raiseOverdueAlerts(
	ctx context.Context,
	uow UoW,
	now time.Time,
	result *ReconcileResult,
) error {
	overdue, err := uow.DeliveryRepository().ListOverdue(ctx, now)
	if err != nil {
		return err
	}

	repo := uow.NotificationRepository()
	for _, d := range overdue {
		if err = ctx.Err(); err != nil {
			return err
		}

		alert, err := notification.NewOverdueDeliveryAlert(
			kernel.NewUUID(), d.SellerID(), d.ID(), d.Version(), d.EstimatedDeliveryTime(), now)
		if err != nil {
			result.Errors = append(result.Errors, err)
			continue
		}

		inserted, err := repo.AddIfAbsent(ctx, alert)
		if err != nil {
			result.Errors = append(result.Errors, &RecipientError{UserID: d.SellerID(), Err: err})
			continue
		}
		if !inserted {
			result.Duplicates++
			continue
		}

		result.Alerts++
		h.feed.Publish(ctx, alert.CreatedEvent())
	}

	return nil
}

func (h ReconcileNotificationsCommandHandler) sellerIDs(ctx context.Context, uow UoW) ([]kernel.UUID, error) {
	fromOrders, orderErr := uow.OrderRepository().ListSellerIDs(ctx)
	fromDeliveries, deliveryErr := uow.DeliveryRepository().ListSellerIDs(ctx)
	if err := errors.Join(orderErr, deliveryErr); err != nil {
		return nil, err
	}

	seen := make(map[kernel.UUID]struct{}, len(fromOrders)+len(fromDeliveries))
	out := make([]kernel.UUID, 0, len(fromOrders)+len(fromDeliveries))
	for _, id := range append(fromOrders, fromDeliveries...) {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out, nil
}
