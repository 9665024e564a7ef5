package settings

import (
	"github.com/kikitte/settingstree/store"
	"github.com/kikitte/settingstree/variant"
)

// SettingType identifies the value type an entry stores.
type SettingType uint8

const (
	TypeCustom SettingType = iota
	TypeBool
	TypeInteger
	TypeDouble
	TypeString
	TypeStringList
	TypeVariantMap
	TypeColor
	TypeEnum
)

// String returns the type name.
func (t SettingType) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeInteger:
		return "integer"
	case TypeDouble:
		return "double"
	case TypeString:
		return "string"
	case TypeStringList:
		return "stringlist"
	case TypeVariantMap:
		return "variantmap"
	case TypeColor:
		return "color"
	case TypeEnum:
		return "enum"
	default:
		return "custom"
	}
}

// Entry is the type-erased view of a registered setting. Typed access
// goes through the concrete entry types, Entry is what tree nodes and
// registries hold.
type Entry interface {
	// DefinitionKey returns the unresolved key template, placeholders
	// included.
	DefinitionKey() string
	// Key resolves the key template with the given dynamic parts.
	Key(dynamicParts ...string) (string, error)
	// HasDynamicKey reports whether the key template contains
	// placeholders.
	HasDynamicKey() bool
	// Description returns the human readable description.
	Description() string
	// Options returns the entry behavior flags.
	Options() Options
	// SettingType returns the value type of the entry.
	SettingType() SettingType
	// Parent returns the tree node the entry is registered under, or nil
	// for entries constructed from a raw section key.
	Parent() *Node
	// Exists reports whether a value is present in the store.
	Exists(dynamicParts ...string) (bool, error)
	// OriginOf reports which layer the current value comes from.
	OriginOf(dynamicParts ...string) (store.Origin, error)
	// Remove deletes the stored value, reverting reads to the default.
	Remove(dynamicParts ...string) error
	// ValueAsVariant returns the stored value, or the default when none
	// is stored.
	ValueAsVariant(dynamicParts ...string) (variant.Variant, error)
	// ValueAsVariantWithDefaultOverride returns the stored value, the
	// override when none is stored and the override is valid, and the
	// default otherwise.
	ValueAsVariantWithDefaultOverride(override variant.Variant, dynamicParts ...string) (variant.Variant, error)
	// DefaultAsVariant returns the default value.
	DefaultAsVariant() variant.Variant
	// FormerValueAsVariant returns the backed up previous value when
	// OptionSaveFormerValue is set and a backup exists, and the current
	// value otherwise.
	FormerValueAsVariant(dynamicParts ...string) (variant.Variant, error)
	// CopyValueFromKey copies the value stored at a raw key into this
	// entry, optionally removing the original. It reports whether a
	// value was copied.
	CopyValueFromKey(rawKey string, removeOriginal bool, dynamicParts ...string) (bool, error)
	// CopyValueToKey copies this entry's stored value to a raw key.
	CopyValueToKey(rawKey string, dynamicParts ...string) error
}

// Base carries the state and behavior shared by every entry type: the
// key template, the default value, the description, the behavior flags
// and the binding to a store through the owning tree.
type Base struct {
	keyTemplate  string
	parent       *Node
	st           store.Store
	defaultValue variant.Variant
	description  string
	options      Options
}

// newBase builds the shared entry state for an entry registered under a
// tree node. The local key must not embed the separator or a
// placeholder.
func newBase(key string, parent *Node, defaultValue variant.Variant, cfg entryConfig) (*Base, error) {
	if err := validateLocalKey(key); err != nil {
		return nil, err
	}
	b := &Base{
		keyTemplate:  JoinKey(parent.CompleteKey(), key),
		parent:       parent,
		defaultValue: defaultValue,
		description:  cfg.description,
		options:      cfg.options,
	}
	return b, nil
}

// newBaseWithSection builds the shared entry state for an entry bound
// directly to a store under a raw section key. The key may embed
// separators and placeholders, it is joined to the section verbatim.
func newBaseWithSection(key, section string, st store.Store, defaultValue variant.Variant, cfg entryConfig) (*Base, error) {
	if key == "" {
		return nil, &InvalidKeyError{Key: key, Reason: "empty"}
	}
	return &Base{
		keyTemplate:  JoinKey(section, key),
		st:           st,
		defaultValue: defaultValue,
		description:  cfg.description,
		options:      cfg.options,
	}, nil
}

// store returns the store the entry reads and writes, resolved through
// the owning tree's root for node-registered entries.
func (b *Base) store() store.Store {
	if b.parent != nil {
		return b.parent.Store()
	}
	return b.st
}

// DefinitionKey returns the unresolved key template.
func (b *Base) DefinitionKey() string { return b.keyTemplate }

// Key resolves the key template with the given dynamic parts.
func (b *Base) Key(dynamicParts ...string) (string, error) {
	return SubstituteKey(b.keyTemplate, dynamicParts...)
}

// HasDynamicKey reports whether the key template contains placeholders.
func (b *Base) HasDynamicKey() bool { return PlaceholderCount(b.keyTemplate) > 0 }

// Description returns the human readable description.
func (b *Base) Description() string { return b.description }

// Options returns the entry behavior flags.
func (b *Base) Options() Options { return b.options }

// Parent returns the tree node the entry is registered under, or nil.
func (b *Base) Parent() *Node { return b.parent }

// SettingType returns TypeCustom. Concrete entry types shadow this with
// their own type.
func (b *Base) SettingType() SettingType { return TypeCustom }

// Exists reports whether a value is present in the store.
func (b *Base) Exists(dynamicParts ...string) (bool, error) {
	key, err := b.Key(dynamicParts...)
	if err != nil {
		return false, err
	}
	return b.store().Contains(key), nil
}

// OriginOf reports which layer the current value comes from.
func (b *Base) OriginOf(dynamicParts ...string) (store.Origin, error) {
	key, err := b.Key(dynamicParts...)
	if err != nil {
		return store.OriginAny, err
	}
	return b.store().Origin(key), nil
}

// Remove deletes the stored value, reverting reads to the default. The
// former value backup, if any, is left in place.
func (b *Base) Remove(dynamicParts ...string) error {
	key, err := b.Key(dynamicParts...)
	if err != nil {
		return err
	}
	b.store().Remove(key)
	return nil
}

// ValueAsVariant returns the stored value, or the default when none is
// stored.
func (b *Base) ValueAsVariant(dynamicParts ...string) (variant.Variant, error) {
	key, err := b.Key(dynamicParts...)
	if err != nil {
		return variant.Invalid(), err
	}
	if v, ok := b.store().Get(key); ok {
		return v, nil
	}
	return b.defaultValue, nil
}

// ValueAsVariantWithDefaultOverride returns the stored value when one is
// present. When none is stored it returns the override if valid, and
// the entry default otherwise.
func (b *Base) ValueAsVariantWithDefaultOverride(override variant.Variant, dynamicParts ...string) (variant.Variant, error) {
	key, err := b.Key(dynamicParts...)
	if err != nil {
		return variant.Invalid(), err
	}
	if v, ok := b.store().Get(key); ok {
		return v, nil
	}
	if override.IsValid() {
		return override, nil
	}
	return b.defaultValue, nil
}

// DefaultAsVariant returns the default value.
func (b *Base) DefaultAsVariant() variant.Variant { return b.defaultValue }

// FormerValueAsVariant returns the backed up previous value when
// OptionSaveFormerValue is set and a backup exists, and the current
// value otherwise.
func (b *Base) FormerValueAsVariant(dynamicParts ...string) (variant.Variant, error) {
	key, err := b.Key(dynamicParts...)
	if err != nil {
		return variant.Invalid(), err
	}
	if b.options.Has(OptionSaveFormerValue) {
		if v, ok := b.store().Get(key + formerValueSuffix); ok {
			return v, nil
		}
	}
	return b.ValueAsVariant(dynamicParts...)
}

// setVariantValue writes a value, backing up the previous one first when
// OptionSaveFormerValue is set and the value actually changes. It
// reports whether the store accepted the write.
func (b *Base) setVariantValue(value variant.Variant, dynamicParts []string) (bool, error) {
	key, err := b.Key(dynamicParts...)
	if err != nil {
		return false, err
	}
	st := b.store()
	if b.options.Has(OptionSaveFormerValue) {
		if cur, ok := st.Get(key); ok && !cur.Equal(value) {
			st.Set(key+formerValueSuffix, cur)
		}
	}
	return st.Set(key, value), nil
}

// CopyValueFromKey copies the value stored at a raw key into this entry,
// optionally removing the original. The raw key may itself be a template
// resolved with the same dynamic parts; a static raw key is used as-is.
// Nothing happens when no value is stored at the source.
func (b *Base) CopyValueFromKey(rawKey string, removeOriginal bool, dynamicParts ...string) (bool, error) {
	srcKey := rawKey
	if PlaceholderCount(rawKey) > 0 {
		var err error
		srcKey, err = SubstituteKey(rawKey, dynamicParts...)
		if err != nil {
			return false, err
		}
	}
	dstKey, err := b.Key(dynamicParts...)
	if err != nil {
		return false, err
	}
	st := b.store()
	v, ok := st.Get(srcKey)
	if !ok {
		return false, nil
	}
	if !st.Set(dstKey, v) {
		return false, nil
	}
	if removeOriginal {
		st.Remove(srcKey)
	}
	return true, nil
}

// CopyValueToKey copies this entry's stored value to a raw key. Nothing
// happens when no value is stored.
func (b *Base) CopyValueToKey(rawKey string, dynamicParts ...string) error {
	dstKey := rawKey
	if PlaceholderCount(rawKey) > 0 {
		var err error
		dstKey, err = SubstituteKey(rawKey, dynamicParts...)
		if err != nil {
			return err
		}
	}
	srcKey, err := b.Key(dynamicParts...)
	if err != nil {
		return err
	}
	st := b.store()
	if v, ok := st.Get(srcKey); ok {
		st.Set(dstKey, v)
	}
	return nil
}
