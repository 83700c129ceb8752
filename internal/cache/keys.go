package cache

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

const keySeparator = ":"

// KV carries keyword-style arguments for key generation. Pairs are
// serialized in lexicographic key order, so the same logical call
// produces the same key regardless of how the call site lists them.
type KV map[string]any

// GenerateKey builds a deterministic cache key from a prefix and the
// arguments of the call being cached. Positional arguments are
// stringified in order; KV arguments expand to sorted k=v pairs. The
// canonical string is hashed and the final key is "prefix:digest", so
// keys stay a fixed length no matter how large the arguments are.
func GenerateKey(prefix string, args ...any) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, prefix)

	for _, arg := range args {
		if kv, ok := arg.(KV); ok {
			parts = append(parts, kv.pairs()...)
			continue
		}
		parts = append(parts, stringify(arg))
	}

	sum := md5.Sum([]byte(strings.Join(parts, keySeparator)))
	return prefix + keySeparator + hex.EncodeToString(sum[:])
}

// KeyPrefix extracts the prefix segment of a generated key. Used for
// metrics labelling.
func KeyPrefix(key string) string {
	if i := strings.LastIndex(key, keySeparator); i >= 0 {
		return key[:i]
	}
	return key
}

func (kv KV) pairs() []string {
	names := make([]string, 0, len(kv))
	for name := range kv {
		names = append(names, name)
	}
	sort.Strings(names)

	pairs := make([]string, len(names))
	for i, name := range names {
		pairs[i] = name + "=" + stringify(kv[name])
	}
	return pairs
}

// stringify renders a single argument. Basic types use their natural
// text form; everything else is serialized to canonical JSON so that
// structurally equal arguments share a key and structurally distinct
// ones do not collide on an ad-hoc string representation.
func stringify(v any) string {
	switch v := v.(type) {
	case nil:
		return "nil"
	case string:
		return v
	case bool, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return fmt.Sprintf("%v", v)
	case fmt.Stringer:
		return v.String()
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%T", v)
	}
	return string(data)
}
