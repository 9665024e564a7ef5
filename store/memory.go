package store

import (
	"sort"
	"strings"
	"sync"

	"github.com/kikitte/settingstree/variant"
)

// MemoryStore is a map-backed Store. It is safe for concurrent use.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]variant.Variant
	origin Origin
}

// NewMemoryStore creates an empty in-memory store answering OriginLocal
// for present keys.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values: make(map[string]variant.Variant),
		origin: OriginLocal,
	}
}

// NewMemoryStoreWithOrigin creates an in-memory store answering the given
// origin for present keys. Useful as a layer in a LayeredStore.
func NewMemoryStoreWithOrigin(origin Origin) *MemoryStore {
	return &MemoryStore{
		values: make(map[string]variant.Variant),
		origin: origin,
	}
}

// Get returns the value at key.
func (s *MemoryStore) Get(key string) (variant.Variant, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]
	if !ok {
		return variant.Invalid(), false
	}
	return v, true
}

// Set stores value at key. Invalid variants are rejected.
func (s *MemoryStore) Set(key string, value variant.Variant) bool {
	if !value.IsValid() {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return true
}

// Remove deletes the key.
func (s *MemoryStore) Remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
}

// Contains reports whether the key is present.
func (s *MemoryStore) Contains(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.values[key]
	return ok
}

// KeysWithPrefix returns all keys starting with prefix, sorted.
func (s *MemoryStore) KeysWithPrefix(prefix string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var keys []string
	for k := range s.values {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// Origin reports the store's origin for present keys.
func (s *MemoryStore) Origin(key string) Origin {
	if s.Contains(key) {
		return s.origin
	}
	return OriginAny
}

// Len returns the number of stored keys.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}
