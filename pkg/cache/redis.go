package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ghuser/equipstore/pkg/config"
)

// ErrRedisDisabled is returned by NewRedisClient when no Redis URL is configured.
var ErrRedisDisabled = errors.New("cache: redis disabled")

// connectTimeout bounds the startup Ping.
const connectTimeout = 2 * time.Second

// RedisClient holds the connection pool behind the equipment read model.
// The registry never reads from it, so a small pool is enough.
type RedisClient struct {
	client *redis.Client
}

// NewRedisClient connects to cfg.RedisURL and pings it once.
func NewRedisClient(cfg *config.Config) (*RedisClient, error) {
	if cfg.RedisURL == "" {
		return nil, ErrRedisDisabled
	}
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("cache: parse redis url: %w", err)
	}
	tunePool(opts)

	rdb := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("cache: connect %s: %w", opts.Addr, err)
	}
	return &RedisClient{client: rdb}, nil
}

// tunePool sizes the pool for a single projection writer plus health checks.
// Values present in the URL query (e.g. ?pool_size=20) are left alone.
func tunePool(o *redis.Options) {
	setDefault(&o.PoolSize, 10)
	setDefault(&o.MinIdleConns, 1)
	setDefault(&o.MaxRetries, 3)
	setDefault(&o.DialTimeout, 5*time.Second)
	setDefault(&o.ReadTimeout, 3*time.Second)
	setDefault(&o.WriteTimeout, 3*time.Second)
	setDefault(&o.PoolTimeout, 4*time.Second)
}

func setDefault[T int | time.Duration](field *T, v T) {
	if *field == 0 {
		*field = v
	}
}

// Ping reports whether Redis answers; used by the health endpoint.
func (r *RedisClient) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

// Close releases the pool. It is safe on a nil client.
func (r *RedisClient) Close() error {
	if r == nil || r.client == nil {
		return nil
	}
	if err := r.client.Close(); err != nil {
		return fmt.Errorf("redis close: %w", err)
	}
	return nil
}

// Client exposes the go-redis client to the read-model store.
func (r *RedisClient) Client() *redis.Client {
	return r.client
}
