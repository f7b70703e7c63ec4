// Package memory implements the change feed as an in-process fan-out.
//
// Every subscription owns an unbounded mailbox drained by its own goroutine,
// so Publish only appends and never waits for a handler. Per entity, events
// reach a handler in non-decreasing version order: a version older than one
// already delivered to that subscription is dropped. The last delivered
// version is remembered for the most recently delivered entities only; an
// entity evicted from that window is treated as unseen.
package memory

import (
	"context"
	"errors"
	"sync"

	"sellerconsole/internal/core/domain/model/event"
	"sellerconsole/internal/core/domain/model/kernel"
	"sellerconsole/internal/core/ports"
	"sellerconsole/internal/pkg/errs"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"
)

// DefaultTrackedEntities bounds the per-subscription version memory.
const DefaultTrackedEntities = 10000

var ErrHandlerIsRequired = errors.New("event handler is required")

// Feed is a ports.ChangeFeed scoped to one process.
type Feed struct {
	mu      sync.RWMutex
	subs    map[kernel.UUID]map[uint64]*subscription
	nextID  uint64
	tracked int
	logger  logrus.FieldLogger
}

// Option configures a Feed.
type Option func(*Feed)

// WithTrackedEntities sets how many entities each subscription remembers the
// last delivered version of. Values below 1 keep the default.
func WithTrackedEntities(n int) Option {
	return func(f *Feed) {
		if n > 0 {
			f.tracked = n
		}
	}
}

func NewFeed(logger logrus.FieldLogger, opts ...Option) *Feed {
	f := &Feed{
		subs:    make(map[kernel.UUID]map[uint64]*subscription),
		tracked: DefaultTrackedEntities,
		logger:  logger.WithField("component", "change_feed"),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Publish enqueues e for every current subscriber of e.SellerID.
func (f *Feed) Publish(_ context.Context, e event.ChangeEvent) {
	f.mu.RLock()
	targets := make([]*subscription, 0, len(f.subs[e.SellerID]))
	for _, s := range f.subs[e.SellerID] {
		targets = append(targets, s)
	}
	f.mu.RUnlock()

	for _, s := range targets {
		s.enqueue(e)
	}
}

// Subscribe registers handler for sellerID. The handler runs on a goroutine
// owned by the subscription and receives a context cancelled by Unsubscribe.
func (f *Feed) Subscribe(sellerID kernel.UUID, handler ports.EventHandler) (ports.Subscription, error) {
	if err := sellerID.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("sellerId", err)
	}
	if handler == nil {
		return nil, ErrHandlerIsRequired
	}

	lastVersion, err := lru.New[string, int64](f.tracked)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())

	f.mu.Lock()
	f.nextID++
	s := &subscription{
		feed:        f,
		id:          f.nextID,
		sellerID:    sellerID,
		handler:     handler,
		ctx:         ctx,
		cancel:      cancel,
		signal:      make(chan struct{}, 1),
		lastVersion: lastVersion,
		logger:      f.logger.WithField("seller_id", sellerID.String()),
	}
	if f.subs[sellerID] == nil {
		f.subs[sellerID] = make(map[uint64]*subscription)
	}
	f.subs[sellerID][s.id] = s
	f.mu.Unlock()

	go s.run()
	return s, nil
}

// SubscriberCount reports the live subscriptions of sellerID.
func (f *Feed) SubscriberCount(sellerID kernel.UUID) int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.subs[sellerID])
}

func (f *Feed) remove(s *subscription) {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.subs[s.sellerID], s.id)
	if len(f.subs[s.sellerID]) == 0 {
		delete(f.subs, s.sellerID)
	}
}

type subscription struct {
	feed     *Feed
	id       uint64
	sellerID kernel.UUID
	handler  ports.EventHandler
	ctx      context.Context //nolint:containedctx // lives exactly as long as the subscription
	cancel   context.CancelFunc
	logger   logrus.FieldLogger

	mu     sync.Mutex
	queue  []event.ChangeEvent
	signal chan struct{}
	once   sync.Once

	// least recently delivered entities are evicted first
	lastVersion *lru.Cache[string, int64]
}

func (s *subscription) Unsubscribe() {
	s.once.Do(func() {
		s.cancel()
		s.feed.remove(s)
	})
}

func (s *subscription) enqueue(e event.ChangeEvent) {
	if s.ctx.Err() != nil {
		return
	}

	s.mu.Lock()
	s.queue = append(s.queue, e)
	s.mu.Unlock()

	select {
	case s.signal <- struct{}{}:
	default:
	}
}

func (s *subscription) run() {
	for {
		select {
		case <-s.ctx.Done():
			return
		case <-s.signal:
		}

		for {
			s.mu.Lock()
			batch := s.queue
			s.queue = nil
			s.mu.Unlock()

			if len(batch) == 0 {
				break
			}
			for _, e := range batch {
				if s.ctx.Err() != nil {
					return
				}
				s.deliver(e)
			}
		}
	}
}

func (s *subscription) deliver(e event.ChangeEvent) {
	key := e.Key()
	if last, seen := s.lastVersion.Get(key); seen && e.Version < last {
		s.logger.WithFields(logrus.Fields{
			"entity_type": e.EntityType,
			"entity_id":   e.EntityID.String(),
			"version":     e.Version,
			"delivered":   last,
		}).Debug("dropping stale change event")
		return
	}
	s.lastVersion.Add(key, e.Version)

	defer func() {
		if r := recover(); r != nil {
			s.logger.WithFields(logrus.Fields{
				"entity_type": e.EntityType,
				"entity_id":   e.EntityID.String(),
				"panic":       r,
			}).Error("change feed handler panicked")
		}
	}()
	s.handler(s.ctx, e)
}
