package payment

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func setupRedisCache(t *testing.T, ttl time.Duration) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return NewRedisCache(client, ttl), mr
}

func samplePayment(id string) Payment {
	return Payment{
		ID:                 id,
		Status:             StatusAuthorized,
		CardNumberLastFour: "1234",
		ExpiryMonth:        4,
		ExpiryYear:         2030,
		Currency:           "GBP",
		Amount:             100,
	}
}

func runCacheContract(t *testing.T, cache Cache) {
	t.Helper()
	ctx := context.Background()

	if _, found, err := cache.Find(ctx, "missing"); err != nil || found {
		t.Fatalf("expected clean miss, got found=%v err=%v", found, err)
	}

	first := samplePayment("payment-1")
	bound, err := cache.Bind(ctx, "key-1", first)
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	if bound != first {
		t.Fatalf("first bind should win: %+v", bound)
	}

	got, found, err := cache.Find(ctx, "key-1")
	if err != nil || !found {
		t.Fatalf("expected hit, got found=%v err=%v", found, err)
	}
	if got != first {
		t.Fatalf("cached payment mutated: %+v vs %+v", got, first)
	}

	// A bound key is permanent: a second bind with a different payment loses
	// and observes the original.
	second := samplePayment("payment-2")
	bound, err = cache.Bind(ctx, "key-1", second)
	if err != nil {
		t.Fatalf("rebind: %v", err)
	}
	if bound != first {
		t.Fatalf("rebind overwrote the binding: %+v", bound)
	}

	got, _, _ = cache.Find(ctx, "key-1")
	if got != first {
		t.Fatalf("binding changed after losing bind: %+v", got)
	}

	// Other keys are independent.
	if bound, err = cache.Bind(ctx, "key-2", second); err != nil || bound != second {
		t.Fatalf("independent key: %+v err=%v", bound, err)
	}
}

func TestRedisCacheContract(t *testing.T) {
	cache, _ := setupRedisCache(t, 0)
	runCacheContract(t, cache)
}

func TestMemoryCacheContract(t *testing.T) {
	runCacheContract(t, NewMemoryCache(0))
}

func TestRedisCacheTTLExpiresBinding(t *testing.T) {
	cache, mr := setupRedisCache(t, time.Minute)
	ctx := context.Background()

	if _, err := cache.Bind(ctx, "key-1", samplePayment("payment-1")); err != nil {
		t.Fatalf("bind: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	if _, found, err := cache.Find(ctx, "key-1"); err != nil || found {
		t.Fatalf("expected expired binding, got found=%v err=%v", found, err)
	}
}
