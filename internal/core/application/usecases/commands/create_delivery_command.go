package commands

import (
	"errors"
	"time"

	"sellerconsole/internal/core/domain/model/delivery"
	"sellerconsole/internal/core/domain/model/kernel"
	"sellerconsole/internal/pkg/errs"
	"sellerconsole/internal/pkg/guard"
)

var ErrCreateDeliveryCommandIsNotConstructed = errors.New(
	"CreateDeliveryCommand must be created via NewCreateDeliveryCommand constructor",
)

// CreateDeliveryCommand schedules a delivery to a retailer or a manual recipient.
// Build the recipient with delivery.RetailerRecipient or delivery.NewManualRecipient;
// a manual recipient missing a name or address is rejected there, before any write.
type CreateDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID            kernel.UUID
	sellerID              kernel.UUID
	recipient             delivery.Recipient
	estimatedDeliveryTime time.Time
	amountToCollect       *kernel.Money

	guard guard.ConstructorGuard
}

func NewCreateDeliveryCommand(
	sellerID kernel.UUID,
	recipient delivery.Recipient,
	estimatedDeliveryTime time.Time,
	amountToCollect *kernel.Money,
) (CreateDeliveryCommand, error) {
	cmd := CreateDeliveryCommand{
		deliveryID:            kernel.NewUUID(),
		estimatedDeliveryTime: estimatedDeliveryTime,
		guard:                 guard.NewConstructorGuard(),
	}

	var etaErr error
	if estimatedDeliveryTime.IsZero() {
		etaErr = errs.NewValueIsRequiredError("estimatedDeliveryTime")
	}

	if err := errors.Join(
		cmd.setSellerID(sellerID),
		cmd.setRecipient(recipient),
		cmd.setAmountToCollect(amountToCollect),
		etaErr,
	); err != nil {
		return CreateDeliveryCommand{}, err
	}

	return cmd, nil
}

func (c CreateDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCreateDeliveryCommandIsNotConstructed)
}

func (c CreateDeliveryCommand) DeliveryID() kernel.UUID { return c.deliveryID }

func (c CreateDeliveryCommand) SellerID() kernel.UUID { return c.sellerID }

func (c CreateDeliveryCommand) Recipient() delivery.Recipient { return c.recipient }

func (c CreateDeliveryCommand) EstimatedDeliveryTime() time.Time { return c.estimatedDeliveryTime }

func (c CreateDeliveryCommand) AmountToCollect() *kernel.Money { return c.amountToCollect }

func (c *CreateDeliveryCommand) setSellerID(sellerID kernel.UUID) error {
	if err := sellerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("sellerId", err)
	}
	c.sellerID = sellerID
	return nil
}

func (c *CreateDeliveryCommand) setRecipient(recipient delivery.Recipient) error {
	if err := recipient.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("recipient", err)
	}
	c.recipient = recipient
	return nil
}

func (c *CreateDeliveryCommand) setAmountToCollect(amount *kernel.Money) error {
	if amount == nil {
		return nil
	}
	if err := amount.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("amountToCollect", err)
	}
	m := *amount
	c.amountToCollect = &m
	return nil
}
