package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lloydngcobo/PCO/internal/core/ports"
)

// RedisBackend stores entries in Redis and relies on its native TTL, so
// no sweeping is needed. Construction pings the server and fails fast,
// letting the caller fall back to the in-memory backend.
type RedisBackend struct {
	client *redis.Client
}

func NewRedisBackend(ctx context.Context, address, password string, db int) (*RedisBackend, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisBackend{client: client}, nil
}

func (b *RedisBackend) Get(ctx context.Context, key string) ([]byte, error) {
	result, err := b.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ports.ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (b *RedisBackend) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return b.client.Set(ctx, key, value, ttl).Err()
}

func (b *RedisBackend) Delete(ctx context.Context, key string) error {
	return b.client.Del(ctx, key).Err()
}

// Clear flushes the configured database index, not the whole server.
func (b *RedisBackend) Clear(ctx context.Context) error {
	return b.client.FlushDB(ctx).Err()
}

func (b *RedisBackend) Exists(ctx context.Context, key string) (bool, error) {
	n, err := b.client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (b *RedisBackend) Close() error {
	return b.client.Close()
}

var _ ports.CacheBackend = (*RedisBackend)(nil)
