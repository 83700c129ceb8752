package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/lloydngcobo/PCO/internal/adapter/memory"
	"github.com/lloydngcobo/PCO/internal/cache"
)

func newTestManager() *cache.Manager {
	return cache.NewManager(memory.NewMemoryBackend(), nil, nil)
}

func TestManager_RoundTrip(t *testing.T) {
	ctx := context.Background()
	m := newTestManager()

	type nested struct {
		Name  string            `json:"name"`
		Tags  []string          `json:"tags"`
		Attrs map[string]string `json:"attrs"`
	}
	want := nested{
		Name:  "Sunday Service",
		Tags:  []string{"music", "welcome"},
		Attrs: map[string]string{"campus": "main"},
	}

	if !m.Set(ctx, "k", want, time.Minute) {
		t.Fatal("Set() = false, want true")
	}

	var got nested
	if !m.Get(ctx, "k", &got) {
		t.Fatal("Get() missed immediately after Set")
	}
	if got.Name != want.Name || len(got.Tags) != 2 || got.Attrs["campus"] != "main" {
		t.Errorf("round trip mutated value: got %+v", got)
	}
}

func TestManager_Expiry(t *testing.T) {
	ctx := context.Background()
	m := newTestManager()

	m.Set(ctx, "k", "v", 50*time.Millisecond)

	var got string
	if !m.Get(ctx, "k", &got) {
		t.Fatal("value missing before expiry")
	}

	time.Sleep(80 * time.Millisecond)

	if m.Get(ctx, "k", &got) {
		t.Error("value still present after TTL elapsed")
	}
}

func TestManager_DisableEnable(t *testing.T) {
	ctx := context.Background()
	m := newTestManager()

	if !m.Set(ctx, "k", "v", time.Minute) {
		t.Fatal("Set() failed while enabled")
	}

	m.Disable()

	var got string
	if m.Get(ctx, "k", &got) {
		t.Error("Get() hit while disabled")
	}
	if m.Exists(ctx, "k") {
		t.Error("Exists() true while disabled")
	}
	if m.Set(ctx, "other", "v", time.Minute) {
		t.Error("Set() succeeded while disabled")
	}

	// Disabling does not clear entries.
	m.Enable()
	if !m.Get(ctx, "k", &got) || got != "v" {
		t.Error("entry set before disable not visible after re-enable")
	}
}

func TestManager_DeleteWorksWhileDisabled(t *testing.T) {
	ctx := context.Background()
	m := newTestManager()

	m.Set(ctx, "k", "v", time.Minute)
	m.Disable()

	if !m.Delete(ctx, "k") {
		t.Error("Delete() failed while disabled")
	}

	m.Enable()
	var got string
	if m.Get(ctx, "k", &got) {
		t.Error("deleted entry reappeared after re-enable")
	}
}

func TestManager_DeleteIdempotent(t *testing.T) {
	ctx := context.Background()
	m := newTestManager()

	if !m.Delete(ctx, "never-set") {
		t.Error("Delete() of absent key reported failure")
	}
}

func TestManager_Clear(t *testing.T) {
	ctx := context.Background()
	m := newTestManager()

	m.Set(ctx, "a", 1, time.Minute)
	m.Set(ctx, "b", 2, time.Minute)

	if !m.Clear(ctx) {
		t.Fatal("Clear() = false")
	}

	var got int
	if m.Get(ctx, "a", &got) || m.Get(ctx, "b", &got) {
		t.Error("entries survived Clear()")
	}
}

func TestManager_Invalidate(t *testing.T) {
	ctx := context.Background()
	m := newTestManager()

	key := m.GenerateKey("get_person_by_id", "42")
	m.Set(ctx, key, "cached", time.Minute)

	m.Invalidate(ctx, "get_person_by_id", "42")

	var got string
	if m.Get(ctx, key, &got) {
		t.Error("entry still cached after Invalidate with same signature")
	}
}

func TestManager_InvalidateTags(t *testing.T) {
	ctx := context.Background()
	m := newTestManager()

	m.SetTagged(ctx, "k1", "v1", time.Minute, "person:42")
	m.SetTagged(ctx, "k2", "v2", time.Minute, "person:42", "person:43")
	m.Set(ctx, "k3", "v3", time.Minute)

	deleted := m.InvalidateTags(ctx, "person:42")
	if deleted != 2 {
		t.Errorf("InvalidateTags() deleted %d keys, want 2", deleted)
	}

	var got string
	if m.Get(ctx, "k1", &got) || m.Get(ctx, "k2", &got) {
		t.Error("tagged entries survived tag invalidation")
	}
	if !m.Get(ctx, "k3", &got) {
		t.Error("untagged entry was evicted")
	}
}

func TestManager_InvalidateUnknownTag(t *testing.T) {
	ctx := context.Background()
	m := newTestManager()

	if deleted := m.InvalidateTags(ctx, "no-such-tag"); deleted != 0 {
		t.Errorf("InvalidateTags() = %d, want 0", deleted)
	}
}

func TestManager_DecodeMismatchIsMiss(t *testing.T) {
	ctx := context.Background()
	m := newTestManager()

	m.Set(ctx, "k", "a string", time.Minute)

	var got struct{ N int }
	if m.Get(ctx, "k", &got) {
		t.Error("Get() reported hit despite undecodable value")
	}
}
