package settings

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry is a flat index of entries keyed by their definition key. It
// serves lookup by resolved key, enumeration and search, independent of
// the tree structure the entries live in.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Entry)}
}

// Register adds an entry to the registry. It fails with
// ErrAlreadyRegistered when another entry with the same definition key
// is present; registering the same entry twice is a no-op.
func (r *Registry) Register(e Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := e.DefinitionKey()
	if existing, ok := r.entries[key]; ok {
		if existing == e {
			return nil
		}
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, key)
	}
	r.entries[key] = e
	return nil
}

// MustRegister adds an entry, panicking on a duplicate definition key.
func (r *Registry) MustRegister(e Entry) {
	if err := r.Register(e); err != nil {
		panic(err)
	}
}

// RegisterTree adds every entry reachable from the node, itself
// included.
func (r *Registry) RegisterTree(n *Node) error {
	for _, e := range n.Entries() {
		if err := r.Register(e); err != nil {
			return err
		}
	}
	for _, c := range n.Nodes() {
		if err := r.RegisterTree(c); err != nil {
			return err
		}
	}
	return nil
}

// EntryForDefinitionKey returns the entry with the exact definition key,
// or nil.
func (r *Registry) EntryForDefinitionKey(key string) Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.entries[key]
}

// EntryForKey returns the entry whose key template could have produced
// the fully resolved key, or nil. An exact definition key match wins
// over template matching.
func (r *Registry) EntryForKey(key string) Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if e, ok := r.entries[key]; ok {
		return e
	}
	for template, e := range r.entries {
		if MatchesTemplate(template, key) {
			return e
		}
	}
	return nil
}

// All returns every registered entry, sorted by definition key.
func (r *Registry) All() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.entries))
	for k := range r.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]Entry, 0, len(keys))
	for _, k := range keys {
		out = append(out, r.entries[k])
	}
	return out
}

// Search returns the entries whose definition key or description
// contains the query, case insensitively, sorted by definition key.
func (r *Registry) Search(query string) []Entry {
	query = strings.ToLower(query)
	var out []Entry
	for _, e := range r.All() {
		if strings.Contains(strings.ToLower(e.DefinitionKey()), query) ||
			strings.Contains(strings.ToLower(e.Description()), query) {
			out = append(out, e)
		}
	}
	return out
}
