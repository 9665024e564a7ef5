// Package variant provides the type-erased value container used to move
// settings values across the store boundary.
//
// A Variant holds one of the supported settings value types (bool, integer,
// float, string, string list, string-keyed map, color) or is invalid.
// Invalid is distinct from any legitimate zero value, so callers can tell
// "absent" apart from false/0/"".
package variant

import (
	"fmt"
	"sort"
	"strings"
)

// Kind identifies the type held by a Variant.
type Kind uint8

const (
	// KindInvalid represents an absent or unsupported value.
	KindInvalid Kind = iota
	// KindBool represents a boolean value.
	KindBool
	// KindInt represents an integer value (stored as int64).
	KindInt
	// KindFloat represents a floating-point value (stored as float64).
	KindFloat
	// KindString represents a string value.
	KindString
	// KindStringList represents an ordered list of strings.
	KindStringList
	// KindMap represents a string-keyed map of variants.
	KindMap
	// KindColor represents an RGBA color.
	KindColor
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindStringList:
		return "stringlist"
	case KindMap:
		return "map"
	case KindColor:
		return "color"
	default:
		return "invalid"
	}
}

// Variant is a type-erased settings value.
// The zero value is invalid.
type Variant struct {
	kind  Kind
	b     bool
	i     int64
	f     float64
	s     string
	list  []string
	m     map[string]Variant
	color Color
}

// Invalid returns an invalid Variant.
func Invalid() Variant {
	return Variant{}
}

// New creates a Variant from a Go value, normalizing numeric types so that
// round-trips are type-stable (every integer width becomes int64, float32
// becomes float64). Unsupported types yield an invalid Variant.
func New(value any) Variant {
	switch v := value.(type) {
	case nil:
		return Variant{}
	case Variant:
		return v
	case bool:
		return Variant{kind: KindBool, b: v}
	case int:
		return Variant{kind: KindInt, i: int64(v)}
	case int8:
		return Variant{kind: KindInt, i: int64(v)}
	case int16:
		return Variant{kind: KindInt, i: int64(v)}
	case int32:
		return Variant{kind: KindInt, i: int64(v)}
	case int64:
		return Variant{kind: KindInt, i: v}
	case uint:
		return Variant{kind: KindInt, i: int64(v)}
	case uint8:
		return Variant{kind: KindInt, i: int64(v)}
	case uint16:
		return Variant{kind: KindInt, i: int64(v)}
	case uint32:
		return Variant{kind: KindInt, i: int64(v)}
	case uint64:
		return Variant{kind: KindInt, i: int64(v)}
	case float32:
		return Variant{kind: KindFloat, f: float64(v)}
	case float64:
		return Variant{kind: KindFloat, f: v}
	case string:
		return Variant{kind: KindString, s: v}
	case []string:
		return Variant{kind: KindStringList, list: cloneList(v)}
	case map[string]Variant:
		return Variant{kind: KindMap, m: cloneVariantMap(v)}
	case Color:
		return Variant{kind: KindColor, color: v}
	default:
		return Variant{}
	}
}

// IsValid reports whether the variant holds a value.
func (v Variant) IsValid() bool {
	return v.kind != KindInvalid
}

// Kind returns the kind of the held value.
func (v Variant) Kind() Kind {
	return v.kind
}

// Bool returns the boolean value. The second return is false if the
// variant does not hold a bool.
func (v Variant) Bool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// Int returns the integer value. Floats are truncated, matching the
// coercions typed accessors commonly perform.
func (v Variant) Int() (int64, bool) {
	switch v.kind {
	case KindInt:
		return v.i, true
	case KindFloat:
		return int64(v.f), true
	default:
		return 0, false
	}
}

// Float returns the floating-point value. Integers are widened.
func (v Variant) Float() (float64, bool) {
	switch v.kind {
	case KindFloat:
		return v.f, true
	case KindInt:
		return float64(v.i), true
	default:
		return 0, false
	}
}

// Str returns the string value.
func (v Variant) Str() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.s, true
}

// StringList returns a copy of the string list value.
func (v Variant) StringList() ([]string, bool) {
	if v.kind != KindStringList {
		return nil, false
	}
	return cloneList(v.list), true
}

// Map returns a copy of the map value.
func (v Variant) Map() (map[string]Variant, bool) {
	if v.kind != KindMap {
		return nil, false
	}
	return cloneVariantMap(v.m), true
}

// AsColor returns the color value. A string variant holding a hex color
// is accepted, since colors persist as hex strings in file stores.
func (v Variant) AsColor() (Color, bool) {
	switch v.kind {
	case KindColor:
		return v.color, true
	case KindString:
		c, err := ParseColor(v.s)
		if err != nil {
			return Color{}, false
		}
		return c, true
	default:
		return Color{}, false
	}
}

// Equal reports whether two variants hold the same kind and value.
func (v Variant) Equal(other Variant) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindInvalid:
		return true
	case KindBool:
		return v.b == other.b
	case KindInt:
		return v.i == other.i
	case KindFloat:
		return v.f == other.f
	case KindString:
		return v.s == other.s
	case KindStringList:
		if len(v.list) != len(other.list) {
			return false
		}
		for i := range v.list {
			if v.list[i] != other.list[i] {
				return false
			}
		}
		return true
	case KindMap:
		if len(v.m) != len(other.m) {
			return false
		}
		for k, val := range v.m {
			o, ok := other.m[k]
			if !ok || !val.Equal(o) {
				return false
			}
		}
		return true
	case KindColor:
		return v.color.Equal(other.color)
	default:
		return false
	}
}

// String returns a debug representation.
func (v Variant) String() string {
	switch v.kind {
	case KindBool:
		return fmt.Sprintf("bool(%t)", v.b)
	case KindInt:
		return fmt.Sprintf("int(%d)", v.i)
	case KindFloat:
		return fmt.Sprintf("float(%g)", v.f)
	case KindString:
		return fmt.Sprintf("string(%q)", v.s)
	case KindStringList:
		return fmt.Sprintf("stringlist(%s)", strings.Join(v.list, ","))
	case KindMap:
		keys := make([]string, 0, len(v.m))
		for k := range v.m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return fmt.Sprintf("map(%s)", strings.Join(keys, ","))
	case KindColor:
		return fmt.Sprintf("color(%s)", v.color.Hex())
	default:
		return "invalid"
	}
}

// ToAny converts the variant to a plain Go value suitable for document
// codecs (TOML, YAML). Colors encode as hex strings, maps recurse.
// Invalid variants convert to nil.
func (v Variant) ToAny() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindString:
		return v.s
	case KindStringList:
		return cloneList(v.list)
	case KindMap:
		out := make(map[string]any, len(v.m))
		for k, val := range v.m {
			out[k] = val.ToAny()
		}
		return out
	case KindColor:
		return v.color.Hex()
	default:
		return nil
	}
}

// FromAny converts a decoded document value back into a Variant.
// []any lists of strings become string lists, map[string]any recurses.
func FromAny(value any) Variant {
	switch v := value.(type) {
	case []any:
		list := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return Variant{}
			}
			list = append(list, s)
		}
		return Variant{kind: KindStringList, list: list}
	case map[string]any:
		m := make(map[string]Variant, len(v))
		for k, val := range v {
			m[k] = FromAny(val)
		}
		return Variant{kind: KindMap, m: m}
	default:
		return New(value)
	}
}

func cloneList(list []string) []string {
	if list == nil {
		return nil
	}
	out := make([]string, len(list))
	copy(out, list)
	return out
}

func cloneVariantMap(m map[string]Variant) map[string]Variant {
	if m == nil {
		return nil
	}
	out := make(map[string]Variant, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
