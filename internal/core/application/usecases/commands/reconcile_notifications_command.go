package commands

import (
	"errors"
	"time"

	"sellerconsole/internal/pkg/errs"
	"sellerconsole/internal/pkg/guard"
)

var ErrReconcileNotificationsCommandIsNotConstructed = errors.New(
	"ReconcileNotificationsCommand must be created via NewReconcileNotificationsCommand constructor",
)

// ReconcileNotificationsCommand re-dispatches every entity changed within the
// lookback period before now.
type ReconcileNotificationsCommand struct { //nolint:recvcheck //using for validation
	lookback time.Duration

	guard guard.ConstructorGuard
}

func NewReconcileNotificationsCommand(lookback time.Duration) (ReconcileNotificationsCommand, error) {
	if lookback <= 0 {
		return ReconcileNotificationsCommand{}, errs.NewValueIsOutOfRangeError("lookback", lookback, "1ns", "unbounded")
	}
	return ReconcileNotificationsCommand{lookback: lookback, guard: guard.NewConstructorGuard()}, nil
}

func (c ReconcileNotificationsCommand) Validate() error {
	return c.guard.Validate(ErrReconcileNotificationsCommandIsNotConstructed)
}

func (c ReconcileNotificationsCommand) Lookback() time.Duration { return c.lookback }
