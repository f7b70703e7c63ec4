package commands

import (
	"errors"

	"sellerconsole/internal/core/domain/model/delivery"
	"sellerconsole/internal/core/domain/model/kernel"
	"sellerconsole/internal/pkg/errs"
	"sellerconsole/internal/pkg/guard"
)

var ErrTransitionDeliveryCommandIsNotConstructed = errors.New(
	"TransitionDeliveryCommand must be created via NewTransitionDeliveryCommand constructor",
)

// TransitionDeliveryCommand moves a delivery to a target status.
type TransitionDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID      kernel.UUID
	target          delivery.Status
	expectedVersion int64

	guard guard.ConstructorGuard
}

func NewTransitionDeliveryCommand(
	deliveryID kernel.UUID,
	target delivery.Status,
	expectedVersion int64,
) (TransitionDeliveryCommand, error) {
	cmd := TransitionDeliveryCommand{guard: guard.NewConstructorGuard()}

	var idErr, versionErr error
	if err := deliveryID.Validate(); err != nil {
		idErr = errs.NewValueIsRequiredErrorWithCause("deliveryId", err)
	}
	if expectedVersion < 0 {
		versionErr = errs.NewValueIsOutOfRangeError("expectedVersion", expectedVersion, 0, "unbounded")
	}

	if err := errors.Join(idErr, target.Validate(), versionErr); err != nil {
		return TransitionDeliveryCommand{}, err
	}

	cmd.deliveryID = deliveryID
	cmd.target = target
	cmd.expectedVersion = expectedVersion
	return cmd, nil
}

func (c TransitionDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrTransitionDeliveryCommandIsNotConstructed)
}

func (c TransitionDeliveryCommand) DeliveryID() kernel.UUID { return c.deliveryID }

func (c TransitionDeliveryCommand) Target() delivery.Status { return c.target }

func (c TransitionDeliveryCommand) ExpectedVersion() int64 { return c.expectedVersion }
