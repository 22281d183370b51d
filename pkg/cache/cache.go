// Package cache provides the fingerprint-keyed store of completed validation
// outcomes, plus the fingerprinting itself.
//
// The store is process-wide for the lifetime of an engine: entries are
// written once per fingerprint, read many times, never expire, and are
// dropped only by an explicit Reset. Writing the same fingerprint twice is
// idempotent; values for a given fingerprint are expected to be identical, so
// last-writer-wins is safe.
package cache

import (
	"sync"

	"github.com/javascriptjoey/cloudlint/pkg/logger"
)

var storeLog = logger.New("cache:store")

// Store is a concurrency-safe fingerprint-keyed cache of values of type V.
type Store[V any] struct {
	mu      sync.RWMutex
	entries map[string]V

	// valid optionally shape-checks entries on read. A stored value that
	// fails the check is treated as a miss and recomputed by the caller.
	valid func(V) bool
}

// NewStore creates an empty Store. The optional valid function guards
// against corrupted entries; pass nil to accept every stored value.
func NewStore[V any](valid func(V) bool) *Store[V] {
	return &Store[V]{
		entries: make(map[string]V),
		valid:   valid,
	}
}

// Get returns the value for the fingerprint, if present and well-formed.
func (s *Store[V]) Get(fingerprint string) (V, bool) {
	s.mu.RLock()
	value, ok := s.entries[fingerprint]
	s.mu.RUnlock()

	if !ok {
		return value, false
	}
	if s.valid != nil && !s.valid(value) {
		storeLog.Printf("Discarding malformed cache entry: %s", fingerprint)
		var zero V
		return zero, false
	}
	return value, true
}

// Set stores the value under the fingerprint. Overwriting an existing
// fingerprint is allowed and idempotent.
func (s *Store[V]) Set(fingerprint string, value V) {
	s.mu.Lock()
	s.entries[fingerprint] = value
	s.mu.Unlock()
	storeLog.Printf("Cached entry: %s", fingerprint)
}

// Len returns the number of cached entries.
func (s *Store[V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Reset drops every entry.
func (s *Store[V]) Reset() {
	s.mu.Lock()
	s.entries = make(map[string]V)
	s.mu.Unlock()
	storeLog.Print("Cache reset")
}
