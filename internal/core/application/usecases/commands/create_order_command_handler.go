package commands

import (
	"context"

	"sellerconsole/internal/core/domain/model/kernel"
	"sellerconsole/internal/core/domain/model/order"
	"sellerconsole/internal/core/ports"
)

// CreateOrderCommandHandler persists a new pending order, activates the
// seller's notification subscriber and announces the order at version 0.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	feed       ports.ChangeFeed
	activator  ports.SellerActivator
	clock      kernel.Clock
}

func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	feed ports.ChangeFeed,
	activator ports.SellerActivator,
	clock kernel.Clock,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		feed:       feed,
		activator:  activator,
		clock:      clock,
	}
}

// Handle creates the order and returns it at version 0.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	aggregate, err := order.NewOrder(
		cmd.OrderID(),
		cmd.SellerID(),
		cmd.RetailerID(),
		cmd.CustomerName(),
		cmd.Items(),
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

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	// the activator logs its own failures and reconciliation activates the seller later
	_ = h.activator.Activate(ctx, aggregate.SellerID())
	h.feed.Publish(ctx, aggregate.ChangeEvent())

	return aggregate, nil
}
