package cache

import (
	"context"
	"time"

	"github.com/lloydngcobo/PCO/internal/core/ports"
)

// GetOrFetch memoizes fetch under the key derived from prefix and args.
// A cached value is returned without invoking fetch. On a miss the
// result is stored for ttl unless it is nil: absent resources are
// re-checked on every call so a "not found" can turn into a "found"
// without waiting out a TTL. Concurrent callers with the same key may
// all miss and all invoke fetch; the duplicate upstream work is
// accepted.
func GetOrFetch[T any](ctx context.Context, c ports.CachePort, prefix string, ttl time.Duration, fetch func(context.Context) (*T, error), args ...any) (*T, error) {
	return fetchWithTags[T](ctx, c, prefix, ttl, nil, fetch, args...)
}

// GetOrFetchTagged is GetOrFetch with dependency tags attached to the
// stored entry, enabling bulk eviction via InvalidateTags.
func GetOrFetchTagged[T any](ctx context.Context, c ports.CachePort, prefix string, ttl time.Duration, tags []string, fetch func(context.Context) (*T, error), args ...any) (*T, error) {
	return fetchWithTags[T](ctx, c, prefix, ttl, tags, fetch, args...)
}

func fetchWithTags[T any](ctx context.Context, c ports.CachePort, prefix string, ttl time.Duration, tags []string, fetch func(context.Context) (*T, error), args ...any) (*T, error) {
	key := c.GenerateKey(prefix, args...)

	var cached T
	if c.Get(ctx, key, &cached) {
		return &cached, nil
	}

	result, err := fetch(ctx)
	if err != nil {
		return nil, err
	}

	if result != nil {
		store(ctx, c, key, result, ttl, tags)
	}
	return result, nil
}

// GetOrFetchSlice is the list-shaped variant. An empty slice is a valid
// cacheable result; only a nil slice counts as the absent sentinel.
func GetOrFetchSlice[T any](ctx context.Context, c ports.CachePort, prefix string, ttl time.Duration, tags []string, fetch func(context.Context) ([]T, error), args ...any) ([]T, error) {
	key := c.GenerateKey(prefix, args...)

	var cached []T
	if c.Get(ctx, key, &cached) {
		return cached, nil
	}

	result, err := fetch(ctx)
	if err != nil {
		return nil, err
	}

	if result != nil {
		store(ctx, c, key, result, ttl, tags)
	}
	return result, nil
}

func store(ctx context.Context, c ports.CachePort, key string, value any, ttl time.Duration, tags []string) {
	if len(tags) > 0 {
		c.SetTagged(ctx, key, value, ttl, tags...)
		return
	}
	c.Set(ctx, key, value, ttl)
}
