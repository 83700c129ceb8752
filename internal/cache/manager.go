package cache

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"time"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/lloydngcobo/PCO/internal/core/ports"
)

// Manager wraps a single backend. Disabling the manager makes every Get
// miss and every Set fail without touching stored entries; Delete and
// Clear keep working so invalidation is never silently dropped.
type Manager struct {
	backend ports.CacheBackend
	logger  ports.LoggerPort
	metrics ports.MetricsPort
	enabled atomic.Bool

	// tag -> set of keys stored under that tag. Process-local: tag
	// invalidation only covers entries written through this manager.
	tags *xsync.MapOf[string, *xsync.MapOf[string, struct{}]]
}

func NewManager(backend ports.CacheBackend, logger ports.LoggerPort, metrics ports.MetricsPort) *Manager {
	m := &Manager{
		backend: backend,
		logger:  logger,
		metrics: metrics,
		tags:    xsync.NewMapOf[string, *xsync.MapOf[string, struct{}]](),
	}
	m.enabled.Store(true)
	return m
}

func (m *Manager) GenerateKey(prefix string, args ...any) string {
	return GenerateKey(prefix, args...)
}

// Get decodes the entry for key into dest and reports whether it was a
// hit. Backend and decode failures are misses.
func (m *Manager) Get(ctx context.Context, key string, dest any) bool {
	if !m.enabled.Load() {
		return false
	}

	data, err := m.backend.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ports.ErrCacheMiss) {
			m.debug("Cache get failed", key, err)
		}
		m.countMiss(key)
		return false
	}

	if err := json.Unmarshal(data, dest); err != nil {
		m.debug("Cache decode failed", key, err)
		m.countMiss(key)
		return false
	}

	m.countHit(key)
	return true
}

// Set encodes value and stores it for ttl. Returns false when the
// manager is disabled or the backend rejects the write.
func (m *Manager) Set(ctx context.Context, key string, value any, ttl time.Duration) bool {
	if !m.enabled.Load() {
		return false
	}

	data, err := json.Marshal(value)
	if err != nil {
		m.debug("Cache encode failed", key, err)
		return false
	}

	if err := m.backend.Set(ctx, key, data, ttl); err != nil {
		m.debug("Cache set failed", key, err)
		return false
	}

	m.countSet(key)
	return true
}

// SetTagged stores value like Set and registers key under each tag so a
// later InvalidateTags can evict it without recomputing the exact call
// signature.
func (m *Manager) SetTagged(ctx context.Context, key string, value any, ttl time.Duration, tags ...string) bool {
	if !m.Set(ctx, key, value, ttl) {
		return false
	}
	for _, tag := range tags {
		keys, _ := m.tags.LoadOrStore(tag, xsync.NewMapOf[string, struct{}]())
		keys.Store(key, struct{}{})
	}
	return true
}

// Delete always reaches the backend, enabled or not. Idempotent.
func (m *Manager) Delete(ctx context.Context, key string) bool {
	if err := m.backend.Delete(ctx, key); err != nil {
		m.debug("Cache delete failed", key, err)
		return false
	}
	return true
}

func (m *Manager) Exists(ctx context.Context, key string) bool {
	if !m.enabled.Load() {
		return false
	}
	found, err := m.backend.Exists(ctx, key)
	if err != nil {
		m.debug("Cache exists check failed", key, err)
		return false
	}
	return found
}

// Clear drops every entry in the backend's namespace along with the tag
// index. Always delegates regardless of the enabled flag.
func (m *Manager) Clear(ctx context.Context) bool {
	if err := m.backend.Clear(ctx); err != nil {
		m.debug("Cache clear failed", "", err)
		return false
	}
	m.tags.Clear()
	return true
}

// Invalidate recomputes the key a memoized read would use for this
// exact call signature and deletes it.
func (m *Manager) Invalidate(ctx context.Context, prefix string, args ...any) bool {
	return m.Delete(ctx, m.GenerateKey(prefix, args...))
}

// InvalidateTags evicts every entry registered under the given tags and
// returns how many keys were deleted.
func (m *Manager) InvalidateTags(ctx context.Context, tags ...string) int {
	deleted := 0
	for _, tag := range tags {
		keys, ok := m.tags.LoadAndDelete(tag)
		if !ok {
			continue
		}
		keys.Range(func(key string, _ struct{}) bool {
			if m.Delete(ctx, key) {
				deleted++
				m.countEviction(key)
			}
			return true
		})
	}
	return deleted
}

func (m *Manager) Enable()  { m.enabled.Store(true) }
func (m *Manager) Disable() { m.enabled.Store(false) }

func (m *Manager) Enabled() bool { return m.enabled.Load() }

func (m *Manager) debug(msg, key string, err error) {
	if m.logger == nil {
		return
	}
	m.logger.Debug(msg, map[string]interface{}{
		"key":   key,
		"error": err.Error(),
	})
}

func (m *Manager) countHit(key string) {
	if m.metrics != nil {
		m.metrics.CacheHit(KeyPrefix(key))
	}
}

func (m *Manager) countMiss(key string) {
	if m.metrics != nil {
		m.metrics.CacheMiss(KeyPrefix(key))
	}
}

func (m *Manager) countSet(key string) {
	if m.metrics != nil {
		m.metrics.CacheSet(KeyPrefix(key))
	}
}

func (m *Manager) countEviction(key string) {
	if m.metrics != nil {
		m.metrics.CacheEviction(KeyPrefix(key))
	}
}

var _ ports.CachePort = (*Manager)(nil)
