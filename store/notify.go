package store

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/kikitte/settingstree/variant"
)

// ChangeType represents the type of store change.
type ChangeType int

const (
	// ChangeSet indicates a value was set or updated.
	ChangeSet ChangeType = iota

	// ChangeRemove indicates a value was removed.
	ChangeRemove

	// ChangeReload indicates the whole store was reloaded.
	ChangeReload
)

// String returns the change type name.
func (c ChangeType) String() string {
	switch c {
	case ChangeSet:
		return "set"
	case ChangeRemove:
		return "remove"
	case ChangeReload:
		return "reload"
	default:
		return "unknown"
	}
}

// Change describes a single store mutation. For reload events Key is
// empty and both values are invalid.
type Change struct {
	Key      string
	Type     ChangeType
	OldValue variant.Variant
	NewValue variant.Variant
}

// Observer is called synchronously when a change occurs.
type Observer func(change Change)

// Subscription represents an active observer registration.
type Subscription struct {
	id       string
	prefix   string
	observer Observer
	notifier *Notifier
}

// ID returns the subscription token.
func (s *Subscription) ID() string {
	return s.id
}

// Unsubscribe removes this subscription. It is safe to call twice.
func (s *Subscription) Unsubscribe() {
	if s.notifier != nil {
		s.notifier.unsubscribe(s.id)
		s.notifier = nil
	}
}

// Notifier dispatches store changes to subscribed observers.
type Notifier struct {
	mu   sync.RWMutex
	subs map[string]*Subscription
}

// NewNotifier creates an empty notifier.
func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[string]*Subscription)}
}

// Subscribe registers an observer for changes to keys under prefix.
// An empty prefix observes every change. Reload events reach all
// observers regardless of prefix.
func (n *Notifier) Subscribe(prefix string, observer Observer) *Subscription {
	sub := &Subscription{
		id:       uuid.New().String(),
		prefix:   prefix,
		observer: observer,
		notifier: n,
	}

	n.mu.Lock()
	n.subs[sub.id] = sub
	n.mu.Unlock()
	return sub
}

// Publish delivers a change to matching observers, synchronously on the
// calling goroutine.
func (n *Notifier) Publish(change Change) {
	n.mu.RLock()
	subs := make([]*Subscription, 0, len(n.subs))
	for _, sub := range n.subs {
		if change.Type == ChangeReload || strings.HasPrefix(change.Key, sub.prefix) {
			subs = append(subs, sub)
		}
	}
	n.mu.RUnlock()

	for _, sub := range subs {
		sub.observer(change)
	}
}

func (n *Notifier) unsubscribe(id string) {
	n.mu.Lock()
	delete(n.subs, id)
	n.mu.Unlock()
}

// NotifyingStore wraps a Store and publishes a Change for every
// successful mutation.
type NotifyingStore struct {
	inner    Store
	notifier *Notifier
}

// NewNotifyingStore wraps inner with change notification.
func NewNotifyingStore(inner Store) *NotifyingStore {
	return &NotifyingStore{
		inner:    inner,
		notifier: NewNotifier(),
	}
}

// Notifier returns the notifier observers subscribe on.
func (s *NotifyingStore) Notifier() *Notifier {
	return s.notifier
}

// Get returns the value at key.
func (s *NotifyingStore) Get(key string) (variant.Variant, bool) {
	return s.inner.Get(key)
}

// Set stores the value and publishes a ChangeSet on success.
func (s *NotifyingStore) Set(key string, value variant.Variant) bool {
	old, _ := s.inner.Get(key)
	if !s.inner.Set(key, value) {
		return false
	}
	s.notifier.Publish(Change{
		Key:      key,
		Type:     ChangeSet,
		OldValue: old,
		NewValue: value,
	})
	return true
}

// Remove deletes the key and publishes a ChangeRemove if it was present.
func (s *NotifyingStore) Remove(key string) {
	old, existed := s.inner.Get(key)
	s.inner.Remove(key)
	if !existed {
		return
	}
	s.notifier.Publish(Change{
		Key:      key,
		Type:     ChangeRemove,
		OldValue: old,
	})
}

// Contains reports whether the key is present.
func (s *NotifyingStore) Contains(key string) bool {
	return s.inner.Contains(key)
}

// KeysWithPrefix returns the inner store's matching keys.
func (s *NotifyingStore) KeysWithPrefix(prefix string) []string {
	return s.inner.KeysWithPrefix(prefix)
}

// Origin returns the inner store's origin for the key.
func (s *NotifyingStore) Origin(key string) Origin {
	return s.inner.Origin(key)
}
