package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TTLs
const (
	TTLStats   = 1 * time.Minute
	TTLEntry   = 10 * time.Minute
	TTLDefault = 5 * time.Minute
)

// Key prefixes. Stats and entry keys embed the current generation.
const (
	PrefixStats   = "dictionary:stats:"
	PrefixEntry   = "dictionary:entry:"
	KeyGeneration = "dictionary:generation"
)

// ErrMiss is returned when a key is absent or Redis is not configured
var ErrMiss = errors.New("cache miss")

// Service is the dictionary read cache.
//
// Readers take the generation before loading from the database and fill
// under that generation. InvalidateDictionary bumps it, so a fill that
// raced an invalidation lands on a key nobody reads and expires.
type Service interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error

	Generation(ctx context.Context) (int64, error)
	GetStats(ctx context.Context, gen int64, dest interface{}) error
	SetStats(ctx context.Context, gen int64, stats interface{}) error
	GetEntry(ctx context.Context, gen int64, ref string, dest interface{}) error
	SetEntry(ctx context.Context, gen int64, ref string, entry interface{}) error

	// InvalidateDictionary retires every cached entry and stats snapshot
	InvalidateDictionary(ctx context.Context) error

	IsAvailable() bool
}

type redisCache struct {
	client *redis.Client
}

// NewService creates a cache service. A nil client yields a no-op cache
// where every read is a miss.
func NewService(client *redis.Client) Service {
	return &redisCache{client: client}
}

func (c *redisCache) IsAvailable() bool {
	return c.client != nil
}

func (c *redisCache) Get(ctx context.Context, key string, dest interface{}) error {
	if c.client == nil {
		return ErrMiss
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrMiss
	}
	if err != nil {
		return err
	}

	return json.Unmarshal(data, dest)
}

func (c *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c.client == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if ttl <= 0 {
		ttl = TTLDefault
	}

	return c.client.Set(ctx, key, data, ttl).Err()
}

func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if c.client == nil || len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// Generation returns the current dictionary generation (0 before the first invalidation)
func (c *redisCache) Generation(ctx context.Context) (int64, error) {
	if c.client == nil {
		return 0, nil
	}
	gen, err := c.client.Get(ctx, KeyGeneration).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func statsKey(gen int64) string {
	return fmt.Sprintf("%s%d", PrefixStats, gen)
}

func entryKey(gen int64, ref string) string {
	return fmt.Sprintf("%s%d:%s", PrefixEntry, gen, ref)
}

func (c *redisCache) GetStats(ctx context.Context, gen int64, dest interface{}) error {
	return c.Get(ctx, statsKey(gen), dest)
}

func (c *redisCache) SetStats(ctx context.Context, gen int64, stats interface{}) error {
	return c.Set(ctx, statsKey(gen), stats, TTLStats)
}

func (c *redisCache) GetEntry(ctx context.Context, gen int64, ref string, dest interface{}) error {
	return c.Get(ctx, entryKey(gen, ref), dest)
}

func (c *redisCache) SetEntry(ctx context.Context, gen int64, ref string, entry interface{}) error {
	return c.Set(ctx, entryKey(gen, ref), entry, TTLEntry)
}

// InvalidateDictionary bumps the generation; keys of older generations expire on their TTL
func (c *redisCache) InvalidateDictionary(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	return c.client.Incr(ctx, KeyGeneration).Err()
}
