package store

import (
	"sort"

	"github.com/kikitte/settingstree/variant"
)

// Layer is one source inside a LayeredStore.
type Layer struct {
	// Name identifies the layer (e.g., "user", "system").
	Name string

	// Origin is reported for keys this layer services.
	Origin Origin

	// ReadOnly prevents writes and removals from reaching the layer.
	ReadOnly bool

	// Store holds the layer's values.
	Store Store
}

// LayeredStore combines ordered layers into one Store. Reads are
// first-hit-wins in layer order; writes and removals go to the first
// writable layer. The usual arrangement is a writable local layer in
// front of read-only global layers.
type LayeredStore struct {
	layers []Layer
}

// NewLayeredStore creates a layered store. Earlier layers take
// precedence on reads.
func NewLayeredStore(layers ...Layer) *LayeredStore {
	return &LayeredStore{layers: layers}
}

// Layers returns a copy of the layer list in precedence order.
func (s *LayeredStore) Layers() []Layer {
	out := make([]Layer, len(s.layers))
	copy(out, s.layers)
	return out
}

// Get returns the value from the first layer containing the key.
func (s *LayeredStore) Get(key string) (variant.Variant, bool) {
	for _, layer := range s.layers {
		if v, ok := layer.Store.Get(key); ok {
			return v, true
		}
	}
	return variant.Invalid(), false
}

// Set writes to the first writable layer. It returns false when no
// writable layer exists or the layer's write failed.
func (s *LayeredStore) Set(key string, value variant.Variant) bool {
	for _, layer := range s.layers {
		if layer.ReadOnly {
			continue
		}
		return layer.Store.Set(key, value)
	}
	return false
}

// Remove deletes the key from every writable layer. Read-only layers may
// still service the key afterwards, exactly like a local override being
// cleared to reveal the global default.
func (s *LayeredStore) Remove(key string) {
	for _, layer := range s.layers {
		if layer.ReadOnly {
			continue
		}
		layer.Store.Remove(key)
	}
}

// Contains reports whether any layer contains the key.
func (s *LayeredStore) Contains(key string) bool {
	for _, layer := range s.layers {
		if layer.Store.Contains(key) {
			return true
		}
	}
	return false
}

// KeysWithPrefix returns the union of all layers' matching keys, sorted
// and deduplicated.
func (s *LayeredStore) KeysWithPrefix(prefix string) []string {
	seen := make(map[string]struct{})
	var keys []string
	for _, layer := range s.layers {
		for _, k := range layer.Store.KeysWithPrefix(prefix) {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// Origin reports the origin of the first layer servicing the key, or
// OriginAny when absent everywhere.
func (s *LayeredStore) Origin(key string) Origin {
	for _, layer := range s.layers {
		if layer.Store.Contains(key) {
			return layer.Origin
		}
	}
	return OriginAny
}
