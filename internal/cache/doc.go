// Package cache implements the function-result cache used to memoize
// calls to the Planning Center API. A Manager wraps exactly one storage
// backend and adds deterministic key generation, an enable/disable
// toggle, metrics and tag-based invalidation. The generic GetOrFetch
// helpers provide transparent memoization of upstream reads.
//
// Backend faults are absorbed here: a failing Get is a miss, a failing
// Set or Delete reports false. Callers never see storage errors.
package cache
