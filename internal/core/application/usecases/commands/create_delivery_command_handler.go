package commands

import (
	"context"

	"sellerconsole/internal/core/domain/model/delivery"
	"sellerconsole/internal/core/domain/model/kernel"
	"sellerconsole/internal/core/ports"
)

// CreateDeliveryCommandHandler persists a new pending delivery and announces it
// at version 0.
type CreateDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	feed       ports.ChangeFeed
	activator  ports.SellerActivator
	clock      kernel.Clock
}

func NewCreateDeliveryCommandHandler(
	uowFactory DeliveryUoWFactory,
	feed ports.ChangeFeed,
	activator ports.SellerActivator,
	clock kernel.Clock,
) CreateDeliveryCommandHandler {
	return CreateDeliveryCommandHandler{
		uowFactory: uowFactory,
		feed:       feed,
		activator:  activator,
		clock:      clock,
	}
}

func (h CreateDeliveryCommandHandler) Handle(
	ctx context.Context,
	cmd CreateDeliveryCommand,
) (*delivery.Delivery, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	aggregate, err := delivery.NewDelivery(
		cmd.DeliveryID(),
		cmd.SellerID(),
		cmd.Recipient(),
		cmd.EstimatedDeliveryTime(),
		cmd.AmountToCollect(),
		h.clock.Now(),
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.DeliveryRepository().Add(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	_ = h.activator.Activate(ctx, aggregate.SellerID())
	h.feed.Publish(ctx, aggregate.ChangeEvent())

	return aggregate, nil
}
