package commands

import (
	"context"

	"sellerconsole/internal/core/domain/model/delivery"
	"sellerconsole/internal/core/domain/model/kernel"
	"sellerconsole/internal/core/ports"
)

// TransitionDeliveryCommandHandler is the only write path for delivery status.
// Reaching delivered stamps actualDeliveryTime with the handler's clock.
type TransitionDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	feed       ports.ChangeFeed
	clock      kernel.Clock
}

func NewTransitionDeliveryCommandHandler(
	uowFactory DeliveryUoWFactory,
	feed ports.ChangeFeed,
	clock kernel.Clock,
) TransitionDeliveryCommandHandler {
	return TransitionDeliveryCommandHandler{
		uowFactory: uowFactory,
		feed:       feed,
		clock:      clock,
	}
}

func (h TransitionDeliveryCommandHandler) Handle(
	ctx context.Context,
	cmd TransitionDeliveryCommand,
) (*delivery.Delivery, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.DeliveryRepository()
	aggregate, err := repo.Get(ctx, cmd.DeliveryID())
	if err != nil {
		return nil, err
	}

	if err = aggregate.Transition(cmd.Target(), cmd.ExpectedVersion(), h.clock.Now()); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, aggregate, cmd.ExpectedVersion()); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.feed.Publish(ctx, aggregate.ChangeEvent())

	return aggregate, nil
}
