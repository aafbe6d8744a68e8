package cron

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	lockKeyFormat = "cofoundr:cron-worker:lock:%s"

	// lockGrace is removed from the cycle interval so a lock left behind by a
	// crashed worker expires before the next tick.
	lockGrace  = 5 * time.Minute
	minLockTTL = time.Minute
)

// Lock keeps two cron workers from running the same cycle.
type Lock interface {
	Acquire(ctx context.Context) (bool, error)
	Release(ctx context.Context) error
}

// redisStore is the slice of pkg/redis.Client the cycle lock needs.
type redisStore interface {
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

// RedisLock is a per-environment cycle lock held with SETNX and a TTL.
type RedisLock struct {
	client redisStore
	key    string
	ttl    time.Duration
	owner  string
}

// LockKey names the cycle lock for an environment. Each environment gets its
// own key so staging and production workers never block each other.
func LockKey(env string) string {
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf(lockKeyFormat, env)
}

// LockTTLFor sizes the lock to one cycle interval minus a grace period.
func LockTTLFor(interval time.Duration) time.Duration {
	if interval <= 0 {
		interval = defaultInterval
	}
	ttl := interval - lockGrace
	if ttl < minLockTTL {
		ttl = minLockTTL
	}
	return ttl
}

// NewRedisLock builds a cycle lock. A non-positive ttl uses LockTTLFor the
// default interval.
func NewRedisLock(client redisStore, key string, ttl time.Duration) (*RedisLock, error) {
	if client == nil {
		return nil, errors.New("redis client required for cron lock")
	}
	if key == "" {
		return nil, errors.New("cron lock key is required")
	}
	if ttl <= 0 {
		ttl = LockTTLFor(defaultInterval)
	}
	return &RedisLock{client: client, key: key, ttl: ttl}, nil
}

// Acquire claims the cycle under a fresh owner token.
func (l *RedisLock) Acquire(ctx context.Context) (bool, error) {
	owner := uuid.NewString()
	ok, err := l.client.SetNX(ctx, l.key, owner, l.ttl)
	if err != nil {
		return false, fmt.Errorf("claim cron lock %s: %w", l.key, err)
	}
	if ok {
		l.owner = owner
	}
	return ok, nil
}

// Release drops the lock if this worker still owns it. A lock that expired
// and was claimed by another worker is left alone.
func (l *RedisLock) Release(ctx context.Context) error {
	if l.owner == "" {
		return nil
	}
	defer func() { l.owner = "" }()

	value, err := l.client.Get(ctx, l.key)
	switch {
	case errors.Is(err, redis.Nil):
		return nil
	case err != nil:
		return fmt.Errorf("read cron lock owner: %w", err)
	case value != l.owner:
		return nil
	}
	if err := l.client.Del(ctx, l.key); err != nil {
		return fmt.Errorf("delete cron lock: %w", err)
	}
	return nil
}
