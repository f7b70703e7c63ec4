package commands

import (
	"context"
	"fmt"

	"sellerconsole/internal/core/domain/model/event"
	"sellerconsole/internal/core/domain/model/kernel"
	"sellerconsole/internal/core/domain/model/notification"
	"sellerconsole/internal/core/domain/services"
	"sellerconsole/internal/core/ports"
)

// DispatchResult reports what happened to each recipient of an event.
type DispatchResult struct {
	Ignored    bool
	Created    []*notification.Notification
	Duplicates int
	// Unresolved holds RecipientUnresolvable errors, one per skipped role.
	Unresolved []error
	// Failed holds one *RecipientError per recipient that could not be stored.
	Failed []error
}

// RecipientError is a failure confined to one recipient of an event.
type RecipientError struct {
	UserID kernel.UUID
	Err    error
}

func (e *RecipientError) Error() string {
	return fmt.Sprintf("recipient %s: %v", e.UserID, e.Err)
}

func (e *RecipientError) Unwrap() error {
	return e.Err
}

// DispatchNotificationsCommandHandler creates at most one notification per
// (event, recipient).
//
// Steps:
//   - notification events are ignored
//   - the retailer on the order or delivery is loaded and the recipients resolved
//   - each recipient's notification is inserted on its own; an existing row with
//     the same (sourceEventId, recipientUserId) counts as a duplicate
//   - every inserted notification is announced on the change feed
//
// A failing recipient never prevents the others from being notified, and
// nothing here affects the status transition that produced the event.
type DispatchNotificationsCommandHandler struct {
	uowFactory UoWFactory
	feed       ports.ChangeFeed
	resolver   services.RecipientResolver
	clock      kernel.Clock
}

func NewDispatchNotificationsCommandHandler(
	uowFactory UoWFactory,
	feed ports.ChangeFeed,
	resolver services.RecipientResolver,
	clock kernel.Clock,
) DispatchNotificationsCommandHandler {
	return DispatchNotificationsCommandHandler{
		uowFactory: uowFactory,
		feed:       feed,
		resolver:   resolver,
		clock:      clock,
	}
}

// Handle returns an error only when the event as a whole cannot be processed,
// for instance when the entity cannot be loaded. Per-recipient outcomes are in
// the result.
func (h DispatchNotificationsCommandHandler) Handle(
	ctx context.Context,
	cmd DispatchNotificationsCommand,
) (DispatchResult, error) {
	if err := cmd.Validate(); err != nil {
		return DispatchResult{}, err
	}

	e := cmd.Event()
	if e.IsNotification() {
		return DispatchResult{Ignored: true}, nil
	}

	uow := h.uowFactory.Create()

	retailerID, err := h.counterparty(ctx, uow, e)
	if err != nil {
		return DispatchResult{}, err
	}

	recipients, unresolved := h.resolver.Resolve(e, retailerID)
	result := DispatchResult{Unresolved: unresolved}

	repo := uow.NotificationRepository()
	for _, recipient := range recipients {
		n, err := notification.NewFromChange(kernel.NewUUID(), recipient, e, h.clock.Now())
		if err != nil {
			result.Failed = append(result.Failed, &RecipientError{UserID: recipient.UserID, Err: err})
			continue
		}

		inserted, err := repo.AddIfAbsent(ctx, n)
		if err != nil {
			result.Failed = append(result.Failed, &RecipientError{UserID: recipient.UserID, Err: err})
			continue
		}
		if !inserted {
			result.Duplicates++
			continue
		}

		result.Created = append(result.Created, n)
		h.feed.Publish(ctx, n.CreatedEvent())
	}

	return result, nil
}

func (h DispatchNotificationsCommandHandler) counterparty(
	ctx context.Context,
	uow UoW,
	e event.ChangeEvent,
) (*kernel.UUID, error) {
	switch e.EntityType {
	case event.EntityOrder:
		o, err := uow.OrderRepository().Get(ctx, e.EntityID)
		if err != nil {
			return nil, err
		}
		return o.RetailerID(), nil
	case event.EntityDelivery:
		d, err := uow.DeliveryRepository().Get(ctx, e.EntityID)
		if err != nil {
			return nil, err
		}
		return d.RetailerID(), nil
	case event.EntityNotification:
	}
	return nil, nil
}
