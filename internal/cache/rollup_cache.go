package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
	"github.com/straye-as/sales-target-api/internal/config"
)

const (
	rollupKeyPrefix  = "rollup"
	scanBatchSize    = 100
	defaultRollupTTL = 5 * time.Minute
)

// RollupCache stores computed performance roll-ups keyed by request
type RollupCache interface {
	// Get decodes a cached value into dest and reports whether it was found
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
	InvalidateAll(ctx context.Context) error
	Ping(ctx context.Context) error
	Enabled() bool
	// TryLock takes a cluster-wide lock; ok is false when another holder has it
	TryLock(ctx context.Context, name string, ttl time.Duration) (unlock func(), ok bool, err error)
}

type redisRollupCache struct {
	client *redis.Client
	locker *redislock.Client
	ttl    time.Duration
	prefix string
	// lockPrefix sits outside prefix so InvalidateAll never drops a held lock
	lockPrefix string
}

type noopRollupCache struct{}

// NewRollupCache connects to redis when the cache is enabled and returns a
// no-op cache otherwise
func NewRollupCache(cfg config.CacheConfig) (RollupCache, error) {
	if !cfg.Enabled {
		return NewNoopRollupCache(), nil
	}

	opts, err := buildRedisOptions(cfg)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return newRedisRollupCache(client, cfg), nil
}

func newRedisRollupCache(client *redis.Client, cfg config.CacheConfig) *redisRollupCache {
	ttl := cfg.TTLDuration()
	if ttl <= 0 {
		ttl = defaultRollupTTL
	}
	return &redisRollupCache{
		client: client,
		locker: redislock.New(client),
		ttl:    ttl,
		prefix: keyPrefix(cfg.KeyPrefix),

		lockPrefix: lockPrefix(cfg.KeyPrefix),
	}
}

func NewNoopRollupCache() RollupCache {
	return &noopRollupCache{}
}

func buildRedisOptions(cfg config.CacheConfig) (*redis.Options, error) {
	if cfg.URL != "" {
		opt, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		return opt, nil
	}

	host := cfg.Host
	if host == "" {
		host = "127.0.0.1"
	}
	port := cfg.Port
	if port == 0 {
		port = 6379
	}

	return &redis.Options{
		Addr:     fmt.Sprintf("%s:%d", host, port),
		Password: cfg.Password,
		DB:       cfg.DB,
	}, nil
}

func keyPrefix(namespace string) string {
	if namespace == "" {
		return rollupKeyPrefix + ":"
	}
	return namespace + ":" + rollupKeyPrefix + ":"
}

func lockPrefix(namespace string) string {
	if namespace == "" {
		return "lock:"
	}
	return namespace + ":lock:"
}

// BuildKey derives a stable cache key from the roll-up kind, mode and query
func BuildKey(kind, mode string, query interface{}) string {
	payload, err := json.Marshal(query)
	if err != nil {
		payload = []byte(fmt.Sprintf("%+v", query))
	}
	sum := sha1.Sum(payload)
	return fmt.Sprintf("%s:%s:%s", kind, mode, hex.EncodeToString(sum[:]))
}

func (c *redisRollupCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	payload, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get failed: %w", err)
	}

	if err := json.Unmarshal(payload, dest); err != nil {
		return false, fmt.Errorf("decode rollup cache: %w", err)
	}
	return true, nil
}

func (c *redisRollupCache) Set(ctx context.Context, key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode rollup cache: %w", err)
	}
	if err := c.client.Set(ctx, c.prefix+key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisRollupCache) InvalidateAll(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, c.prefix+"*", scanBatchSize).Result()
		if err != nil {
			return fmt.Errorf("redis scan failed: %w", err)
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("redis delete failed: %w", err)
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

func (c *redisRollupCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *redisRollupCache) Enabled() bool { return true }

func (c *redisRollupCache) TryLock(ctx context.Context, name string, ttl time.Duration) (func(), bool, error) {
	lock, err := c.locker.Obtain(ctx, c.lockPrefix+name, ttl, nil)
	if err == redislock.ErrNotObtained {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis lock failed: %w", err)
	}
	return func() {
		_ = lock.Release(context.Background())
	}, true, nil
}

func (c *noopRollupCache) Get(context.Context, string, interface{}) (bool, error) {
	return false, nil
}

func (c *noopRollupCache) Set(context.Context, string, interface{}) error { return nil }

func (c *noopRollupCache) InvalidateAll(context.Context) error { return nil }

func (c *noopRollupCache) Ping(context.Context) error { return nil }

func (c *noopRollupCache) Enabled() bool { return false }

func (c *noopRollupCache) TryLock(context.Context, string, time.Duration) (func(), bool, error) {
	return func() {}, true, nil
}
