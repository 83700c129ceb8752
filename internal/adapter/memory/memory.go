package memory

import (
	"context"
	"time"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/lloydngcobo/PCO/internal/core/ports"
)

type entry struct {
	value     []byte
	expiresAt time.Time
}

func (e entry) expired(now time.Time) bool {
	return now.After(e.expiresAt)
}

// MemoryBackend stores entries in-process with per-entry expiry.
// Expired entries behave as absent and are purged lazily on access;
// Sweep scans the whole map. The store is safe for concurrent readers
// and writers, with no ordering guarantee across keys.
type MemoryBackend struct {
	entries *xsync.MapOf[string, entry]
	now     func() time.Time
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		entries: xsync.NewMapOf[string, entry](),
		now:     time.Now,
	}
}

func (b *MemoryBackend) Get(ctx context.Context, key string) ([]byte, error) {
	e, ok := b.entries.Load(key)
	if !ok {
		return nil, ports.ErrCacheMiss
	}
	if e.expired(b.now()) {
		b.purge(key, e)
		return nil, ports.ErrCacheMiss
	}
	return e.value, nil
}

// purge removes key only while it still holds the observed expired
// entry. A Set racing the cleanup replaces the deadline, so the fresh
// entry must survive.
func (b *MemoryBackend) purge(key string, observed entry) bool {
	removed := false
	b.entries.Compute(key, func(cur entry, loaded bool) (entry, bool) {
		if loaded && cur.expiresAt.Equal(observed.expiresAt) {
			removed = true
			return entry{}, true
		}
		return cur, !loaded
	})
	return removed
}

func (b *MemoryBackend) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	b.entries.Store(key, entry{
		value:     value,
		expiresAt: b.now().Add(ttl),
	})
	return nil
}

func (b *MemoryBackend) Delete(ctx context.Context, key string) error {
	b.entries.Delete(key)
	return nil
}

func (b *MemoryBackend) Clear(ctx context.Context) error {
	b.entries.Clear()
	return nil
}

func (b *MemoryBackend) Exists(ctx context.Context, key string) (bool, error) {
	_, err := b.Get(ctx, key)
	if err != nil {
		return false, nil
	}
	return true, nil
}

// Sweep removes every entry past its expiry and returns the count.
// The scan is not atomic with concurrent sets: an entry stored while
// the sweep runs may or may not be visited, but is never corrupted.
func (b *MemoryBackend) Sweep() int {
	now := b.now()
	removed := 0
	b.entries.Range(func(key string, e entry) bool {
		if e.expired(now) && b.purge(key, e) {
			removed++
		}
		return true
	})
	return removed
}

// StartJanitor sweeps on the given interval until ctx is cancelled.
func (b *MemoryBackend) StartJanitor(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				b.Sweep()
			}
		}
	}()
}

// Len reports the number of live entries, expired ones included until
// they are purged.
func (b *MemoryBackend) Len() int {
	return b.entries.Size()
}

var _ ports.CacheBackend = (*MemoryBackend)(nil)
