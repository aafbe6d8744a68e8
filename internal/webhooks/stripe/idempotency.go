package stripewebhook

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cofoundr/cofoundr-backend/pkg/redis"
)

// Scope namespaces Stripe event ids in the idempotency keyspace.
const Scope = "stripe-webhook"

// IdempotencyGuard remembers Stripe event ids so replays are acknowledged
// without being handled twice.
type IdempotencyGuard struct {
	store redis.IdempotencyStore
	ttl   time.Duration
	scope string
}

// NewIdempotencyGuard builds a guard over the given store. A zero ttl keeps marks forever.
func NewIdempotencyGuard(store redis.IdempotencyStore, ttl time.Duration, scope string) (*IdempotencyGuard, error) {
	switch {
	case store == nil:
		return nil, errors.New("idempotency store is required")
	case ttl < 0:
		return nil, errors.New("ttl must be non-negative")
	case scope == "":
		return nil, errors.New("scope is required")
	}
	return &IdempotencyGuard{store: store, ttl: ttl, scope: scope}, nil
}

// CheckAndMark claims the event id. It reports true when another delivery
// already claimed it.
func (g *IdempotencyGuard) CheckAndMark(ctx context.Context, eventID string) (bool, error) {
	if eventID == "" {
		return false, errors.New("event id is required")
	}
	claimed, err := g.store.SetNX(ctx, g.store.IdempotencyKey(g.scope, eventID), "1", g.ttl)
	if err != nil {
		return false, fmt.Errorf("claim stripe event: %w", err)
	}
	return !claimed, nil
}

// Release drops the claim so Stripe's retry is processed.
func (g *IdempotencyGuard) Release(ctx context.Context, eventID string) error {
	if eventID == "" {
		return errors.New("event id is required")
	}
	return g.store.Del(ctx, g.store.IdempotencyKey(g.scope, eventID))
}
