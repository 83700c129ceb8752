package cache

import (
	"strings"
	"testing"
)

func TestGenerateKey_Deterministic(t *testing.T) {
	a := GenerateKey("get_person_by_id", "12345")
	b := GenerateKey("get_person_by_id", "12345")

	if a != b {
		t.Errorf("identical inputs produced different keys: %q vs %q", a, b)
	}
}

func TestGenerateKey_PrefixAndDigest(t *testing.T) {
	key := GenerateKey("find_person_by_name", "John", "Doe")

	if !strings.HasPrefix(key, "find_person_by_name:") {
		t.Errorf("key %q missing prefix", key)
	}
	digest := strings.TrimPrefix(key, "find_person_by_name:")
	if len(digest) != 32 {
		t.Errorf("digest %q is not a 128-bit hex digest", digest)
	}
}

func TestGenerateKey_KwargOrderIndependent(t *testing.T) {
	a := GenerateKey("get_plans", 1, 2, KV{"a": 3, "b": 4})
	b := GenerateKey("get_plans", 1, 2, KV{"b": 4, "a": 3})

	if a != b {
		t.Errorf("kwarg order changed the key: %q vs %q", a, b)
	}
}

func TestGenerateKey_PositionalOrderMatters(t *testing.T) {
	a := GenerateKey("get_plans", 1, 2)
	b := GenerateKey("get_plans", 2, 1)

	if a == b {
		t.Errorf("swapped positional args produced the same key %q", a)
	}
}

func TestGenerateKey_DistinctArgsDistinctKeys(t *testing.T) {
	tests := []struct {
		name  string
		left  []any
		right []any
	}{
		{
			name:  "different strings",
			left:  []any{"John", "Doe"},
			right: []any{"Jane", "Doe"},
		},
		{
			name:  "different kwarg values",
			left:  []any{KV{"filter": "future"}},
			right: []any{KV{"filter": "past"}},
		},
		{
			name:  "arg count",
			left:  []any{"1"},
			right: []any{"1", "2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := GenerateKey("p", tt.left...)
			b := GenerateKey("p", tt.right...)
			if a == b {
				t.Errorf("distinct args produced the same key %q", a)
			}
		})
	}
}

func TestGenerateKey_StructuredArgs(t *testing.T) {
	type filter struct {
		Status string
		Limit  int
	}

	a := GenerateKey("search", filter{Status: "active", Limit: 10})
	b := GenerateKey("search", filter{Status: "active", Limit: 10})
	c := GenerateKey("search", filter{Status: "inactive", Limit: 10})

	if a != b {
		t.Errorf("structurally equal args produced different keys")
	}
	if a == c {
		t.Errorf("structurally distinct args collided on key %q", a)
	}
}

func TestKeyPrefix(t *testing.T) {
	key := GenerateKey("get_person_by_id", "42")
	if got := KeyPrefix(key); got != "get_person_by_id" {
		t.Errorf("KeyPrefix() = %q, want %q", got, "get_person_by_id")
	}
}
