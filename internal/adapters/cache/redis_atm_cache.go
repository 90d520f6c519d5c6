package cache

import (
	"atm-locator-service/internal/domain"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisATMCache keeps raw nearby-ATM results for a short time.
// Centers are rounded to 4 decimals (about 11 m) so nearby lookups share an entry.
type RedisATMCache struct {
	Client *redis.Client
	Prefix string
}

func NewRedisATMCache(client *redis.Client) *RedisATMCache {
	return &RedisATMCache{Client: client, Prefix: "atms"}
}

type cachedATM struct {
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Name string  `json:"name"`
	Bank string  `json:"bank"`
}

func (c *RedisATMCache) key(center domain.Coordinates, radiusMeters int) string {
	return fmt.Sprintf("%s:%d:%.4f:%.4f", c.Prefix, radiusMeters, round4(center.Lat), round4(center.Lon))
}

func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}

func (c *RedisATMCache) Get(ctx context.Context, center domain.Coordinates, radiusMeters int) ([]domain.ATM, bool, error) {
	if c.Client == nil {
		return nil, false, errors.New("atm cache: redis client is nil")
	}

	raw, err := c.Client.Get(ctx, c.key(center, radiusMeters)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get atm cache: %w", err)
	}

	var cached []cachedATM
	if err := json.Unmarshal(raw, &cached); err != nil {
		return nil, false, fmt.Errorf("get atm cache: decode entry: %w", err)
	}

	atms := make([]domain.ATM, 0, len(cached))
	for _, a := range cached {
		atms = append(atms, domain.NewATM(domain.Coordinates{Lat: a.Lat, Lon: a.Lon}, a.Name, a.Bank))
	}
	return atms, true, nil
}

func (c *RedisATMCache) Put(
	ctx context.Context,
	center domain.Coordinates,
	radiusMeters int,
	atms []domain.ATM,
	ttl time.Duration,
) error {
	if c.Client == nil {
		return errors.New("atm cache: redis client is nil")
	}

	cached := make([]cachedATM, 0, len(atms))
	for _, a := range atms {
		cached = append(cached, cachedATM{Lat: a.Location.Lat, Lon: a.Location.Lon, Name: a.Name, Bank: a.Bank})
	}

	raw, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("put atm cache: encode entry: %w", err)
	}

	if err := c.Client.Set(ctx, c.key(center, radiusMeters), raw, ttl).Err(); err != nil {
		return fmt.Errorf("put atm cache: %w", err)
	}
	return nil
}
