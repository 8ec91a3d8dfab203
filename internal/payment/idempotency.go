package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

const idempotencyPrefix = "payments:idempotency:v1:"

// Cache binds idempotency keys to the payment produced on their first
// successful processing. A bound key is never rebound: the cached payment is
// authoritative for every later submission of the same key, whatever the
// request body, and the bank is not called again for it.
type Cache interface {
	// Find returns the payment bound to the key, if any.
	Find(ctx context.Context, key string) (Payment, bool, error)
	// Bind atomically binds the key to p unless it is already bound, and
	// returns whichever payment holds the binding afterwards. Two first-time
	// requests racing on one key therefore converge on a single outcome.
	Bind(ctx context.Context, key string, p Payment) (Payment, error)
}

// RedisCache stores idempotency bindings in Redis under a versioned prefix.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache builds a Redis-backed idempotency cache. A zero ttl keeps
// bindings until Redis evicts them.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl < 0 {
		ttl = 0
	}
	return &RedisCache{client: client, ttl: ttl}
}

// Find looks up the binding for key.
func (c *RedisCache) Find(ctx context.Context, key string) (Payment, bool, error) {
	cached, err := c.client.Get(ctx, idempotencyPrefix+key).Result()
	if err == redis.Nil {
		return Payment{}, false, nil
	}
	if err != nil {
		return Payment{}, false, fmt.Errorf("idempotency lookup: %w", err)
	}

	var p Payment
	if err := json.Unmarshal([]byte(cached), &p); err != nil {
		return Payment{}, false, fmt.Errorf("decode idempotency entry: %w", err)
	}
	return p, true, nil
}

// Bind writes the binding with SETNX so an existing binding wins.
func (c *RedisCache) Bind(ctx context.Context, key string, p Payment) (Payment, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return Payment{}, fmt.Errorf("encode idempotency entry: %w", err)
	}

	stored, err := c.client.SetNX(ctx, idempotencyPrefix+key, payload, c.ttl).Result()
	if err != nil {
		return Payment{}, fmt.Errorf("idempotency bind: %w", err)
	}
	if stored {
		return p, nil
	}

	existing, found, err := c.Find(ctx, key)
	if err != nil {
		return Payment{}, err
	}
	if !found {
		// The racing binding expired between SETNX and the read.
		return p, nil
	}
	return existing, nil
}

// MemoryCache keeps idempotency bindings in process memory. Used in tests and
// when no Redis is configured.
type MemoryCache struct {
	entries *gocache.Cache
}

// NewMemoryCache builds an in-memory idempotency cache. A zero ttl disables
// expiry.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	expiration := ttl
	cleanup := 10 * time.Minute
	if ttl <= 0 {
		expiration = gocache.NoExpiration
		cleanup = 0
	}
	return &MemoryCache{entries: gocache.New(expiration, cleanup)}
}

// Find looks up the binding for key.
func (c *MemoryCache) Find(_ context.Context, key string) (Payment, bool, error) {
	v, ok := c.entries.Get(key)
	if !ok {
		return Payment{}, false, nil
	}
	return v.(Payment), true, nil
}

// Bind binds the key to p unless already bound; Add is atomic so concurrent
// first-time binds resolve to one winner.
func (c *MemoryCache) Bind(_ context.Context, key string, p Payment) (Payment, error) {
	if err := c.entries.Add(key, p, gocache.DefaultExpiration); err != nil {
		if existing, ok := c.entries.Get(key); ok {
			return existing.(Payment), nil
		}
		return p, nil
	}
	return p, nil
}
