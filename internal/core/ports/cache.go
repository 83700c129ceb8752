package ports

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by a backend when a key is absent or expired.
var ErrCacheMiss = errors.New("cache: key not found")

// CacheBackend is the storage contract shared by the memory, redis and
// postgres variants. Values cross the boundary as raw bytes; encoding is
// owned by the manager so every backend round-trips identically.
type CacheBackend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Exists(ctx context.Context, key string) (bool, error)
}

// CachePort is the contract the services program against. Backend faults
// never escape it: Get reports a miss, Set and Delete report false.
type CachePort interface {
	GenerateKey(prefix string, args ...any) string

	Get(ctx context.Context, key string, dest any) bool
	Set(ctx context.Context, key string, value any, ttl time.Duration) bool
	SetTagged(ctx context.Context, key string, value any, ttl time.Duration, tags ...string) bool
	Delete(ctx context.Context, key string) bool
	Exists(ctx context.Context, key string) bool
	Clear(ctx context.Context) bool

	Invalidate(ctx context.Context, prefix string, args ...any) bool
	InvalidateTags(ctx context.Context, tags ...string) int

	Enable()
	Disable()
	Enabled() bool
}
