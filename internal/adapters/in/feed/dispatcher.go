// Package feed holds the standing change feed subscribers of the process.
package feed

import (
	"context"
	"errors"
	"sync"

	"sellerconsole/internal/core/application/usecases/commands"
	"sellerconsole/internal/core/domain/model/event"
	"sellerconsole/internal/core/domain/model/kernel"
	"sellerconsole/internal/core/ports"
	"sellerconsole/internal/pkg/errs"

	"github.com/sirupsen/logrus"
)

var ErrDispatcherStopped = errors.New("notification dispatcher is stopped")

// Dispatcher subscribes once per active seller and turns every order and
// delivery change into a DispatchNotificationsCommand. Its own notification
// events are skipped. It implements ports.SellerActivator.
type Dispatcher struct {
	feed    ports.ChangeFeed
	handler commands.NotificationDispatcher
	logger  logrus.FieldLogger

	mu      sync.Mutex
	subs    map[kernel.UUID]ports.Subscription
	stopped bool
}

func NewDispatcher(
	feed ports.ChangeFeed,
	handler commands.NotificationDispatcher,
	logger logrus.FieldLogger,
) *Dispatcher {
	return &Dispatcher{
		feed:    feed,
		handler: handler,
		logger:  logger.WithField("component", "notification_dispatcher"),
		subs:    make(map[kernel.UUID]ports.Subscription),
	}
}

// Activate subscribes to sellerID's feed unless already subscribed.
func (d *Dispatcher) Activate(_ context.Context, sellerID kernel.UUID) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return ErrDispatcherStopped
	}
	if _, ok := d.subs[sellerID]; ok {
		return nil
	}

	sub, err := d.feed.Subscribe(sellerID, d.handle)
	if err != nil {
		d.logger.WithError(err).WithField("seller_id", sellerID.String()).Error("failed to activate seller")
		return err
	}

	d.subs[sellerID] = sub
	d.logger.WithField("seller_id", sellerID.String()).Info("seller activated")
	return nil
}

// ActiveSellers reports how many sellers are subscribed.
func (d *Dispatcher) ActiveSellers() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.subs)
}

// Run blocks until ctx is done, then unsubscribes from every seller.
func (d *Dispatcher) Run(ctx context.Context) error {
	<-ctx.Done()
	d.Stop()
	return nil
}

// Stop unsubscribes from every seller; later activations fail.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for sellerID, sub := range d.subs {
		sub.Unsubscribe()
		delete(d.subs, sellerID)
	}
	d.stopped = true
}

func (d *Dispatcher) handle(ctx context.Context, e event.ChangeEvent) {
	if e.IsNotification() {
		return
	}

	log := d.logger.WithFields(logrus.Fields{
		"event_id":    e.SourceEventID().String(),
		"entity_type": e.EntityType,
		"entity_id":   e.EntityID.String(),
		"version":     e.Version,
	})

	cmd, err := commands.NewDispatchNotificationsCommand(e)
	if err != nil {
		log.WithError(err).Warn("discarding malformed change event")
		return
	}

	result, err := d.handler.Handle(ctx, cmd)
	if err != nil {
		log.WithError(err).Error("failed to dispatch notifications")
		return
	}

	for _, n := range result.Created {
		log.WithField("recipient_id", n.RecipientUserID().String()).Debug("notification created")
	}
	if result.Duplicates > 0 {
		log.WithField("duplicates", result.Duplicates).Debug("notifications already existed")
	}
	for _, unresolved := range result.Unresolved {
		entry := log.WithError(unresolved)
		var unresolvable *errs.RecipientUnresolvableError
		if errors.As(unresolved, &unresolvable) {
			entry = entry.WithField("recipient_role", unresolvable.Role)
		}
		entry.Warn("notification recipient skipped")
	}
	for _, failed := range result.Failed {
		entry := log.WithError(failed)
		var recipientErr *commands.RecipientError
		if errors.As(failed, &recipientErr) {
			entry = entry.WithField("recipient_id", recipientErr.UserID.String())
		}
		entry.Error("notification not stored")
	}
}
