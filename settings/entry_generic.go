package settings

import (
	"github.com/kikitte/settingstree/variant"
)

// conversions bundles the per-type value plumbing a generic wrapper
// delegates to. fromVariant must always produce a usable value, falling
// back to the entry default on kind mismatch. checkValue is optional and
// gates SetValue.
type conversions[T any] struct {
	fromVariant func(variant.Variant) T
	toVariant   func(T) variant.Variant
	checkValue  func(T) bool
}

// ByValue is the generic wrapper for entries whose value type has value
// semantics. It layers typed accessors over the variant-level Base.
type ByValue[T any] struct {
	*Base
	conv conversions[T]
}

// Value returns the stored value, or the typed default when none is
// stored.
func (e *ByValue[T]) Value(dynamicParts ...string) (T, error) {
	v, err := e.ValueAsVariant(dynamicParts...)
	if err != nil {
		var zero T
		return zero, err
	}
	return e.conv.fromVariant(v), nil
}

// ValueWithDefaultOverride returns the stored value when one is present,
// and the override otherwise. Unlike the variant-level override, the
// typed override is used unconditionally.
func (e *ByValue[T]) ValueWithDefaultOverride(override T, dynamicParts ...string) (T, error) {
	ok, err := e.Exists(dynamicParts...)
	if err != nil {
		var zero T
		return zero, err
	}
	if ok {
		return e.Value(dynamicParts...)
	}
	return override, nil
}

// SetValue writes the value. It reports false without error when the
// value fails the entry's constraints or the store rejects the write.
func (e *ByValue[T]) SetValue(value T, dynamicParts ...string) (bool, error) {
	if e.conv.checkValue != nil && !e.conv.checkValue(value) {
		return false, nil
	}
	return e.setVariantValue(e.conv.toVariant(value), dynamicParts)
}

// DefaultValue returns the typed default.
func (e *ByValue[T]) DefaultValue() T {
	return e.conv.fromVariant(e.DefaultAsVariant())
}

// FormerValue returns the typed backed up previous value, falling back
// to the current value when no backup exists.
func (e *ByValue[T]) FormerValue(dynamicParts ...string) (T, error) {
	v, err := e.FormerValueAsVariant(dynamicParts...)
	if err != nil {
		var zero T
		return zero, err
	}
	return e.conv.fromVariant(v), nil
}

// ByReference is the generic wrapper for entries whose value type has
// reference semantics. Its conversions copy on the way in and out so a
// caller can never alias state held by the entry or the store.
type ByReference[T any] struct {
	*Base
	conv conversions[T]
}

// Value returns a copy of the stored value, or of the typed default when
// none is stored.
func (e *ByReference[T]) Value(dynamicParts ...string) (T, error) {
	v, err := e.ValueAsVariant(dynamicParts...)
	if err != nil {
		var zero T
		return zero, err
	}
	return e.conv.fromVariant(v), nil
}

// ValueWithDefaultOverride returns the stored value when one is present,
// and the override otherwise.
func (e *ByReference[T]) ValueWithDefaultOverride(override T, dynamicParts ...string) (T, error) {
	ok, err := e.Exists(dynamicParts...)
	if err != nil {
		var zero T
		return zero, err
	}
	if ok {
		return e.Value(dynamicParts...)
	}
	return override, nil
}

// SetValue writes a copy of the value. It reports false without error
// when the value fails the entry's constraints or the store rejects the
// write.
func (e *ByReference[T]) SetValue(value T, dynamicParts ...string) (bool, error) {
	if e.conv.checkValue != nil && !e.conv.checkValue(value) {
		return false, nil
	}
	return e.setVariantValue(e.conv.toVariant(value), dynamicParts)
}

// DefaultValue returns a copy of the typed default.
func (e *ByReference[T]) DefaultValue() T {
	return e.conv.fromVariant(e.DefaultAsVariant())
}

// FormerValue returns the typed backed up previous value, falling back
// to the current value when no backup exists.
func (e *ByReference[T]) FormerValue(dynamicParts ...string) (T, error) {
	v, err := e.FormerValueAsVariant(dynamicParts...)
	if err != nil {
		var zero T
		return zero, err
	}
	return e.conv.fromVariant(v), nil
}

// Must unwraps a (value, error) pair, panicking on error. It is meant
// for accesses whose key arity is statically known to be correct.
func Must[T any](value T, err error) T {
	if err != nil {
		panic(err)
	}
	return value
}
