// Package redisfeed carries change events between processes over Redis Pub/Sub.
//
// Events are published to one channel per seller. A process holds a single
// Redis subscription per seller, shared by all of its local subscribers and
// bridged into an in-process memory feed for fan-out.
package redisfeed

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"sellerconsole/internal/adapters/out/feed/memory"
	"sellerconsole/internal/core/domain/model/event"
	"sellerconsole/internal/core/domain/model/kernel"
	"sellerconsole/internal/core/ports"
	"sellerconsole/internal/pkg/errs"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	channelPrefix = "sellerconsole:seller:"
	channelSuffix = ":changes"

	defaultOperationTimeout = 5 * time.Second
)

// Channel returns the Pub/Sub channel of sellerID.
func Channel(sellerID kernel.UUID) string {
	return channelPrefix + sellerID.String() + channelSuffix
}

// Feed is a ports.ChangeFeed backed by Redis Pub/Sub.
type Feed struct {
	client  *redis.Client
	local   *memory.Feed
	logger  logrus.FieldLogger
	timeout time.Duration

	mu      sync.Mutex
	bridges map[kernel.UUID]*bridge

	// bridgeOpened runs once the Redis subscription of a seller is confirmed.
	bridgeOpened func(sellerID kernel.UUID)
}

type bridge struct {
	pubsub *redis.PubSub
	refs   int
	done   chan struct{}
}

func NewFeed(client *redis.Client, logger logrus.FieldLogger) *Feed {
	return &Feed{
		client:  client,
		local:   memory.NewFeed(logger),
		logger:  logger.WithField("component", "redis_change_feed"),
		timeout: defaultOperationTimeout,
		bridges: make(map[kernel.UUID]*bridge),
	}
}

// Publish sends e to the seller channel. Failures are logged; subscribers
// recover missed events by refetching.
func (f *Feed) Publish(ctx context.Context, e event.ChangeEvent) {
	payload, err := json.Marshal(e)
	if err != nil {
		f.logger.WithError(err).Error("failed to encode change event")
		return
	}

	// the caller's request may end right after the commit
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), f.timeout)
	defer cancel()

	if err = f.client.Publish(ctx, Channel(e.SellerID), payload).Err(); err != nil {
		f.logger.WithError(err).WithFields(logrus.Fields{
			"seller_id":   e.SellerID.String(),
			"entity_type": e.EntityType,
			"entity_id":   e.EntityID.String(),
		}).Warn("failed to publish change event")
	}
}

// Subscribe registers handler for sellerID, opening the seller's Redis
// subscription if this process has none yet. The handler is registered
// locally before the Redis subscription is opened, so the first event the
// bridge forwards already has somewhere to go.
func (f *Feed) Subscribe(sellerID kernel.UUID, handler ports.EventHandler) (ports.Subscription, error) {
	if err := sellerID.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("sellerId", err)
	}

	sub, err := f.local.Subscribe(sellerID, handler)
	if err != nil {
		return nil, err
	}

	if err = f.acquire(sellerID); err != nil {
		sub.Unsubscribe()
		return nil, err
	}

	return &subscription{inner: sub, release: func() { f.release(sellerID) }}, nil
}

// Close drops every Redis subscription held by the process.
func (f *Feed) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	var closeErr error
	for sellerID, b := range f.bridges {
		if err := b.pubsub.Close(); err != nil && closeErr == nil {
			closeErr = errors.Wrap(err, "failed to close redis subscription")
		}
		<-b.done
		delete(f.bridges, sellerID)
	}
	return closeErr
}

func (f *Feed) acquire(sellerID kernel.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if b, ok := f.bridges[sellerID]; ok {
		b.refs++
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), f.timeout)
	defer cancel()

	pubsub := f.client.Subscribe(ctx, Channel(sellerID))
	// wait for the subscription to be confirmed so no event published after
	// Subscribe returns is missed
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return errors.Wrap(err, fmt.Sprintf("failed to subscribe to %s", Channel(sellerID)))
	}

	b := &bridge{pubsub: pubsub, refs: 1, done: make(chan struct{})}
	f.bridges[sellerID] = b
	go f.pump(sellerID, b)
	if f.bridgeOpened != nil {
		f.bridgeOpened(sellerID)
	}
	return nil
}

func (f *Feed) release(sellerID kernel.UUID) {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, ok := f.bridges[sellerID]
	if !ok {
		return
	}
	b.refs--
	if b.refs > 0 {
		return
	}

	delete(f.bridges, sellerID)
	if err := b.pubsub.Close(); err != nil {
		f.logger.WithError(err).WithField("seller_id", sellerID.String()).Warn("failed to close redis subscription")
	}
}

func (f *Feed) pump(sellerID kernel.UUID, b *bridge) {
	defer close(b.done)

	for msg := range b.pubsub.Channel() {
		var e event.ChangeEvent
		if err := json.Unmarshal([]byte(msg.Payload), &e); err != nil {
			f.logger.WithError(err).WithField("channel", msg.Channel).Warn("discarding malformed change event")
			continue
		}
		if !e.SellerID.IsEqual(sellerID) {
			continue
		}
		f.local.Publish(context.Background(), e)
	}
}

type subscription struct {
	inner   ports.Subscription
	release func()
	once    sync.Once
}

func (s *subscription) Unsubscribe() {
	s.once.Do(func() {
		s.inner.Unsubscribe()
		s.release()
	})
}
