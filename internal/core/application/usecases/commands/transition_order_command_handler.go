package commands

import (
	"context"

	"sellerconsole/internal/core/domain/model/kernel"
	"sellerconsole/internal/core/domain/model/order"
	"sellerconsole/internal/core/ports"
)

// TransitionOrderCommandHandler is the only write path for order status.
//
// The aggregate checks the transition table, then the version; the repository
// repeats the version check in its UPDATE so that of two concurrent transitions
// on the same order exactly one commits. The event is published after commit.
//
// Example:
//
//	cmd, _ := NewTransitionOrderCommand(orderID, order.Confirmed, 0)
//	o, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrConflict):
//	    // refetch and retry
//	case errors.Is(err, errs.ErrInvalidTransition):
//	    // the move is not allowed from the current status
//	}
type TransitionOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	feed       ports.ChangeFeed
	clock      kernel.Clock
}

func NewTransitionOrderCommandHandler(
	uowFactory OrderUoWFactory,
	feed ports.ChangeFeed,
	clock kernel.Clock,
) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
		feed:       feed,
		clock:      clock,
	}
}

func (h TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) (*order.Order, error) {
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

	repo := uow.OrderRepository()
	aggregate, err := repo.Get(ctx, cmd.OrderID())
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
