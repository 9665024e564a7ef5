// Package store provides the flat key/value persistence collaborators the
// settings tree reads and writes through.
//
// The Store interface is the minimal contract the settings core depends
// on. Implementations in this package cover in-memory state, TOML/YAML
// file persistence, read-only environment variables and a layered
// combination of stores with origin tracking.
package store

import "github.com/kikitte/settingstree/variant"

// Origin identifies which layer of a (possibly layered) store currently
// supplies a key's value.
type Origin uint8

const (
	// OriginAny means the key is absent, or the store is not layered.
	OriginAny Origin = iota
	// OriginLocal means the key is serviced by a local (user) layer.
	OriginLocal
	// OriginGlobal means the key is serviced by a global (system) layer.
	OriginGlobal
)

// String returns the origin name.
func (o Origin) String() string {
	switch o {
	case OriginLocal:
		return "local"
	case OriginGlobal:
		return "global"
	default:
		return "any"
	}
}

// Store is a flat string-keyed value store.
//
// Set reports failure as a boolean since a failed persistence write is a
// recoverable condition callers check, not an exceptional one.
type Store interface {
	// Get returns the value at key, or an invalid variant if absent.
	Get(key string) (variant.Variant, bool)

	// Set stores value at key. It returns false if the write failed.
	Set(key string, value variant.Variant) bool

	// Remove deletes the key. Removing an absent key is a no-op.
	Remove(key string)

	// Contains reports whether the key is present.
	Contains(key string) bool

	// KeysWithPrefix returns all present keys starting with prefix,
	// sorted lexically.
	KeysWithPrefix(prefix string) []string

	// Origin reports which layer services the key. Non-layered stores
	// answer their own origin for present keys and OriginAny otherwise.
	Origin(key string) Origin
}
