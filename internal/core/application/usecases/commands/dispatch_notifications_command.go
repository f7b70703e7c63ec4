package commands

import (
	"errors"

	"sellerconsole/internal/core/domain/model/event"
	"sellerconsole/internal/pkg/errs"
	"sellerconsole/internal/pkg/guard"
)

var ErrDispatchNotificationsCommandIsNotConstructed = errors.New(
	"DispatchNotificationsCommand must be created via NewDispatchNotificationsCommand constructor",
)

// DispatchNotificationsCommand turns one change event into notifications.
type DispatchNotificationsCommand struct { //nolint:recvcheck //using for validation
	event event.ChangeEvent

	guard guard.ConstructorGuard
}

func NewDispatchNotificationsCommand(e event.ChangeEvent) (DispatchNotificationsCommand, error) {
	var typeErr error
	switch e.EntityType {
	case event.EntityOrder, event.EntityDelivery, event.EntityNotification:
	default:
		typeErr = errs.NewValueIsInvalidError("entityType")
	}

	if err := errors.Join(
		typeErr,
		e.EntityID.Validate(),
		e.SellerID.Validate(),
	); err != nil {
		return DispatchNotificationsCommand{}, err
	}

	return DispatchNotificationsCommand{event: e, guard: guard.NewConstructorGuard()}, nil
}

func (c DispatchNotificationsCommand) Validate() error {
	return c.guard.Validate(ErrDispatchNotificationsCommandIsNotConstructed)
}

func (c DispatchNotificationsCommand) Event() event.ChangeEvent { return c.event }
