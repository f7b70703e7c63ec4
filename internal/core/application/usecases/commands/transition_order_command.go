package commands

import (
	"errors"

	"sellerconsole/internal/core/domain/model/kernel"
	"sellerconsole/internal/core/domain/model/order"
	"sellerconsole/internal/pkg/errs"
	"sellerconsole/internal/pkg/guard"
)

var ErrTransitionOrderCommandIsNotConstructed = errors.New(
	"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
)

// TransitionOrderCommand moves an order to a target status, provided the
// caller's copy is still at expectedVersion.
type TransitionOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	target          order.Status
	expectedVersion int64

	guard guard.ConstructorGuard
}

func NewTransitionOrderCommand(
	orderID kernel.UUID,
	target order.Status,
	expectedVersion int64,
) (TransitionOrderCommand, error) {
	cmd := TransitionOrderCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTarget(target),
		cmd.setExpectedVersion(expectedVersion),
	); err != nil {
		return TransitionOrderCommand{}, err
	}

	return cmd, nil
}

func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

func (c TransitionOrderCommand) OrderID() kernel.UUID { return c.orderID }

func (c TransitionOrderCommand) Target() order.Status { return c.target }

func (c TransitionOrderCommand) ExpectedVersion() int64 { return c.expectedVersion }

func (c *TransitionOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderId", err)
	}
	c.orderID = orderID
	return nil
}

func (c *TransitionOrderCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}
	c.target = target
	return nil
}

func (c *TransitionOrderCommand) setExpectedVersion(version int64) error {
	if version < 0 {
		return errs.NewValueIsOutOfRangeError("expectedVersion", version, 0, "unbounded")
	}
	c.expectedVersion = version
	return nil
}
