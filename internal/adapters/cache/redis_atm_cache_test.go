package cache

import (
	"atm-locator-service/internal/domain"
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T) (*RedisATMCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisATMCache(client), mr
}

func TestRedisATMCacheRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	center := domain.Coordinates{Lat: 14.5995, Lon: 120.9842}

	if _, ok, err := c.Get(ctx, center, 1000); err != nil || ok {
		t.Fatalf("empty cache: ok=%v err=%v", ok, err)
	}

	atms := []domain.ATM{
		domain.NewATM(domain.Coordinates{Lat: 14.6, Lon: 120.98}, "BDO Ermita", "BDO Unibank"),
		domain.NewATM(domain.Coordinates{Lat: 14.61, Lon: 120.99}, "", ""),
	}
	if err := c.Put(ctx, center, 1000, atms, time.Minute); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok, err := c.Get(ctx, domain.Coordinates{Lat: 14.59951, Lon: 120.98419}, 1000)
	if err != nil || !ok {
		t.Fatalf("Get near center: ok=%v err=%v", ok, err)
	}
	if len(got) != 2 || got[0] != atms[0] || got[1].Bank != domain.DefaultATMBank {
		t.Fatalf("got %+v, want %+v", got, atms)
	}

	if _, ok, _ := c.Get(ctx, center, 500); ok {
		t.Fatalf("different radius must not share an entry")
	}
}

func TestRedisATMCacheExpires(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	center := domain.Coordinates{Lat: 14.5995, Lon: 120.9842}

	if err := c.Put(ctx, center, 1000, nil, 30*time.Second); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if _, ok, _ := c.Get(ctx, center, 1000); !ok {
		t.Fatalf("expected hit before expiry")
	}

	mr.FastForward(31 * time.Second)

	if _, ok, _ := c.Get(ctx, center, 1000); ok {
		t.Fatalf("expected miss after expiry")
	}
}

func TestRedisATMCacheCorruptEntry(t *testing.T) {
	c, mr := newTestCache(t)
	center := domain.Coordinates{Lat: 14.5995, Lon: 120.9842}

	mr.Set(c.key(center, 1000), "not json")

	if _, _, err := c.Get(context.Background(), center, 1000); err == nil {
		t.Fatalf("expected decode error")
	}
}
