package jobs

import (
	"context"
	"time"

	"github.com/bsm/redislock"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// Locker grants a named lease to at most one runner at a time.
// TryLock reports ok=false without error when another runner holds the lease.
type Locker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (release func(), ok bool, err error)
}

// LocalLocker is used when no Redis is configured: the process is the only runner.
type LocalLocker struct{}

func (LocalLocker) TryLock(context.Context, string, time.Duration) (func(), bool, error) {
	return func() {}, true, nil
}

// RedisLocker leases job runs through redislock so that one instance runs a
// job per tick across a fleet sharing the same Redis.
type RedisLocker struct {
	client *redislock.Client
}

func NewRedisLocker(client redis.UniversalClient) *RedisLocker {
	return &RedisLocker{client: redislock.New(client)}
}

func (l *RedisLocker) TryLock(ctx context.Context, key string, ttl time.Duration) (func(), bool, error) {
	lock, err := l.client.Obtain(ctx, key, ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrapf(err, "obtain lock %s", key)
	}

	release := func() {
		// The lease may already have expired; nothing to undo then.
		_ = lock.Release(context.WithoutCancel(ctx))
	}
	return release, true, nil
}
