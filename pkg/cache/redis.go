package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/matzehuels/shapescatter/pkg/errors"
)

// RedisConfig configures a RedisCache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	// Scope is the prefix the runner's [ScopedKeyer] puts on every key.
	// Clear only removes artifact keys under it.
	Scope string
	// DialTimeout bounds the initial connection check.
	DialTimeout time.Duration
}

// RedisCache stores entries in Redis with native expiry. Keys are stored
// as given; namespacing is the keyer's job.
type RedisCache struct {
	client *redis.Client
	match  string // SCAN pattern of the keys Clear removes
}

// NewRedisCache connects to Redis and verifies the connection with PING,
// retrying transient failures.
func NewRedisCache(ctx context.Context, cfg RedisConfig) (*RedisCache, error) {
	if cfg.Addr == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidConfig, "redis address is required")
	}
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = 5 * time.Second
	}
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
	})

	err := RetryWithBackoff(ctx, DefaultBackoff, func() error {
		pingCtx, cancel := context.WithTimeout(ctx, cfg.DialTimeout)
		defer cancel()
		return Retryable(client.Ping(pingCtx).Err())
	})
	if err != nil {
		client.Close()
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, err, "connect to redis at %s", cfg.Addr)
	}
	return newRedisCache(client, cfg.Scope), nil
}

func newRedisCache(client *redis.Client, scope string) *RedisCache {
	return &RedisCache{client: client, match: ArtifactPattern(scope)}
}

// Get retrieves a value from Redis.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set stores a value in Redis. A zero ttl stores the entry without expiry.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, data, ttl).Err()
}

// Delete removes a value from Redis.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

// Clear deletes every artifact key in the cache's scope. Other keys in the
// database are left alone.
func (c *RedisCache) Clear(ctx context.Context) (int, error) {
	count := 0
	iter := c.client.Scan(ctx, 0, c.match, 100).Iterator()
	for iter.Next(ctx) {
		n, err := c.client.Del(ctx, iter.Val()).Result()
		if err != nil {
			return count, err
		}
		count += int(n)
	}
	return count, iter.Err()
}

// Close closes the Redis client.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

var (
	_ Cache   = (*RedisCache)(nil)
	_ Clearer = (*RedisCache)(nil)
)
