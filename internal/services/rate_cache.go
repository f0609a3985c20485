package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	mem "tripdeck/pkg/memcache"
)

// RateTable is a cached snapshot of base-currency rates.
type RateTable struct {
	Base      string             `json:"base"`
	Rates     map[string]float64 `json:"rates"` // base units per one unit of the key
	FetchedAt int64              `json:"fetched_at"`
}

type RateCache interface {
	Get(ctx context.Context, base string) (*RateTable, bool)
	Set(ctx context.Context, table *RateTable, ttl time.Duration) error
}

func rateKey(base string) string { return "fx:" + base }

type memoryRateCache struct {
	store mem.TTLStore
}

func NewMemoryRateCache(store mem.TTLStore) RateCache {
	return &memoryRateCache{store: store}
}

func (c *memoryRateCache) Get(ctx context.Context, base string) (*RateTable, bool) {
	raw, ok := c.store.Get(rateKey(base))
	if !ok {
		return nil, false
	}
	var t RateTable
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil, false
	}
	return &t, true
}

func (c *memoryRateCache) Set(ctx context.Context, table *RateTable, ttl time.Duration) error {
	raw, err := json.Marshal(table)
	if err != nil {
		return err
	}
	c.store.Set(rateKey(table.Base), raw, ttl)
	return nil
}

type redisRateCache struct {
	client *redis.Client
	prefix string
}

func NewRedisRateCache(client *redis.Client, prefix string) RateCache {
	return &redisRateCache{client: client, prefix: prefix}
}

func (c *redisRateCache) key(base string) string {
	if c.prefix == "" {
		return rateKey(base)
	}
	return c.prefix + ":" + rateKey(base)
}

func (c *redisRateCache) Get(ctx context.Context, base string) (*RateTable, bool) {
	raw, err := c.client.Get(ctx, c.key(base)).Bytes()
	if err != nil {
		// redis.Nil is a plain miss; other errors degrade to a miss too
		return nil, false
	}
	var t RateTable
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil, false
	}
	return &t, true
}

func (c *redisRateCache) Set(ctx context.Context, table *RateTable, ttl time.Duration) error {
	if table == nil {
		return errors.New("nil rate table")
	}
	raw, err := json.Marshal(table)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(table.Base), raw, ttl).Err()
}
