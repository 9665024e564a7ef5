package settings

import (
	"slices"

	"github.com/kikitte/settingstree/store"
	"github.com/kikitte/settingstree/variant"
)

// BoolEntry stores a boolean setting.
type BoolEntry struct {
	ByValue[bool]
}

// SettingType returns TypeBool.
func (e *BoolEntry) SettingType() SettingType { return TypeBool }

func boolConversions(defaultValue bool) conversions[bool] {
	return conversions[bool]{
		fromVariant: func(v variant.Variant) bool {
			if b, ok := v.Bool(); ok {
				return b
			}
			return defaultValue
		},
		toVariant: func(b bool) variant.Variant { return variant.New(b) },
	}
}

// NewBoolEntry creates a boolean entry registered under parent.
func NewBoolEntry(key string, parent *Node, defaultValue bool, opts ...EntryOption) (*BoolEntry, error) {
	cfg := newEntryConfig(opts)
	base, err := newBase(key, parent, variant.New(defaultValue), cfg)
	if err != nil {
		return nil, err
	}
	e := &BoolEntry{ByValue[bool]{Base: base, conv: boolConversions(defaultValue)}}
	if err := parent.registerChildEntry(e, key); err != nil {
		return nil, err
	}
	return e, nil
}

// NewBoolEntryWithSection creates a boolean entry bound directly to a
// store under a raw section key.
func NewBoolEntryWithSection(key, section string, st store.Store, defaultValue bool, opts ...EntryOption) (*BoolEntry, error) {
	cfg := newEntryConfig(opts)
	base, err := newBaseWithSection(key, section, st, variant.New(defaultValue), cfg)
	if err != nil {
		return nil, err
	}
	return &BoolEntry{ByValue[bool]{Base: base, conv: boolConversions(defaultValue)}}, nil
}

// IntegerEntry stores an integer setting, with optional bounds.
type IntegerEntry struct {
	ByValue[int64]
}

// SettingType returns TypeInteger.
func (e *IntegerEntry) SettingType() SettingType { return TypeInteger }

func integerConversions(defaultValue int64, cfg entryConfig) conversions[int64] {
	return conversions[int64]{
		fromVariant: func(v variant.Variant) int64 {
			if i, ok := v.Int(); ok {
				return i
			}
			return defaultValue
		},
		toVariant: func(i int64) variant.Variant { return variant.New(i) },
		checkValue: func(i int64) bool {
			if cfg.minimum != nil && float64(i) < *cfg.minimum {
				return false
			}
			if cfg.maximum != nil && float64(i) > *cfg.maximum {
				return false
			}
			return true
		},
	}
}

// NewIntegerEntry creates an integer entry registered under parent.
func NewIntegerEntry(key string, parent *Node, defaultValue int64, opts ...EntryOption) (*IntegerEntry, error) {
	cfg := newEntryConfig(opts)
	base, err := newBase(key, parent, variant.New(defaultValue), cfg)
	if err != nil {
		return nil, err
	}
	e := &IntegerEntry{ByValue[int64]{Base: base, conv: integerConversions(defaultValue, cfg)}}
	if err := parent.registerChildEntry(e, key); err != nil {
		return nil, err
	}
	return e, nil
}

// NewIntegerEntryWithSection creates an integer entry bound directly to
// a store under a raw section key.
func NewIntegerEntryWithSection(key, section string, st store.Store, defaultValue int64, opts ...EntryOption) (*IntegerEntry, error) {
	cfg := newEntryConfig(opts)
	base, err := newBaseWithSection(key, section, st, variant.New(defaultValue), cfg)
	if err != nil {
		return nil, err
	}
	return &IntegerEntry{ByValue[int64]{Base: base, conv: integerConversions(defaultValue, cfg)}}, nil
}

// DoubleEntry stores a floating point setting, with optional bounds.
type DoubleEntry struct {
	ByValue[float64]
}

// SettingType returns TypeDouble.
func (e *DoubleEntry) SettingType() SettingType { return TypeDouble }

func doubleConversions(defaultValue float64, cfg entryConfig) conversions[float64] {
	return conversions[float64]{
		fromVariant: func(v variant.Variant) float64 {
			if f, ok := v.Float(); ok {
				return f
			}
			return defaultValue
		},
		toVariant: func(f float64) variant.Variant { return variant.New(f) },
		checkValue: func(f float64) bool {
			if cfg.minimum != nil && f < *cfg.minimum {
				return false
			}
			if cfg.maximum != nil && f > *cfg.maximum {
				return false
			}
			return true
		},
	}
}

// NewDoubleEntry creates a double entry registered under parent.
func NewDoubleEntry(key string, parent *Node, defaultValue float64, opts ...EntryOption) (*DoubleEntry, error) {
	cfg := newEntryConfig(opts)
	base, err := newBase(key, parent, variant.New(defaultValue), cfg)
	if err != nil {
		return nil, err
	}
	e := &DoubleEntry{ByValue[float64]{Base: base, conv: doubleConversions(defaultValue, cfg)}}
	if err := parent.registerChildEntry(e, key); err != nil {
		return nil, err
	}
	return e, nil
}

// NewDoubleEntryWithSection creates a double entry bound directly to a
// store under a raw section key.
func NewDoubleEntryWithSection(key, section string, st store.Store, defaultValue float64, opts ...EntryOption) (*DoubleEntry, error) {
	cfg := newEntryConfig(opts)
	base, err := newBaseWithSection(key, section, st, variant.New(defaultValue), cfg)
	if err != nil {
		return nil, err
	}
	return &DoubleEntry{ByValue[float64]{Base: base, conv: doubleConversions(defaultValue, cfg)}}, nil
}

// StringEntry stores a string setting, with optional length bounds.
type StringEntry struct {
	ByValue[string]
}

// SettingType returns TypeString.
func (e *StringEntry) SettingType() SettingType { return TypeString }

func stringConversions(defaultValue string, cfg entryConfig) conversions[string] {
	return conversions[string]{
		fromVariant: func(v variant.Variant) string {
			if s, ok := v.Str(); ok {
				return s
			}
			return defaultValue
		},
		toVariant: func(s string) variant.Variant { return variant.New(s) },
		checkValue: func(s string) bool {
			if cfg.minLength != nil && len(s) < *cfg.minLength {
				return false
			}
			if cfg.maxLength != nil && len(s) > *cfg.maxLength {
				return false
			}
			return true
		},
	}
}

// NewStringEntry creates a string entry registered under parent.
func NewStringEntry(key string, parent *Node, defaultValue string, opts ...EntryOption) (*StringEntry, error) {
	cfg := newEntryConfig(opts)
	base, err := newBase(key, parent, variant.New(defaultValue), cfg)
	if err != nil {
		return nil, err
	}
	e := &StringEntry{ByValue[string]{Base: base, conv: stringConversions(defaultValue, cfg)}}
	if err := parent.registerChildEntry(e, key); err != nil {
		return nil, err
	}
	return e, nil
}

// NewStringEntryWithSection creates a string entry bound directly to a
// store under a raw section key.
func NewStringEntryWithSection(key, section string, st store.Store, defaultValue string, opts ...EntryOption) (*StringEntry, error) {
	cfg := newEntryConfig(opts)
	base, err := newBaseWithSection(key, section, st, variant.New(defaultValue), cfg)
	if err != nil {
		return nil, err
	}
	return &StringEntry{ByValue[string]{Base: base, conv: stringConversions(defaultValue, cfg)}}, nil
}

// EnumEntry stores one value out of a fixed set of string-kinded
// constants. Stored values outside the set read back as the default.
type EnumEntry[E ~string] struct {
	ByValue[E]
	allowed []E
}

// SettingType returns TypeEnum.
func (e *EnumEntry[E]) SettingType() SettingType { return TypeEnum }

// AllowedValues returns the accepted enum values.
func (e *EnumEntry[E]) AllowedValues() []E { return slices.Clone(e.allowed) }

func enumConversions[E ~string](defaultValue E, allowed []E) conversions[E] {
	return conversions[E]{
		fromVariant: func(v variant.Variant) E {
			if s, ok := v.Str(); ok && slices.Contains(allowed, E(s)) {
				return E(s)
			}
			return defaultValue
		},
		toVariant: func(e E) variant.Variant { return variant.New(string(e)) },
		checkValue: func(e E) bool {
			return slices.Contains(allowed, e)
		},
	}
}

// NewEnumEntry creates an enum entry registered under parent. The
// default must be one of the allowed values.
func NewEnumEntry[E ~string](key string, parent *Node, defaultValue E, allowed []E, opts ...EntryOption) (*EnumEntry[E], error) {
	if !slices.Contains(allowed, defaultValue) {
		return nil, &InvalidKeyError{Key: key, Reason: "enum default not among allowed values"}
	}
	cfg := newEntryConfig(opts)
	base, err := newBase(key, parent, variant.New(string(defaultValue)), cfg)
	if err != nil {
		return nil, err
	}
	allowed = slices.Clone(allowed)
	e := &EnumEntry[E]{ByValue[E]{Base: base, conv: enumConversions(defaultValue, allowed)}, allowed}
	if err := parent.registerChildEntry(e, key); err != nil {
		return nil, err
	}
	return e, nil
}

// NewEnumEntryWithSection creates an enum entry bound directly to a
// store under a raw section key.
func NewEnumEntryWithSection[E ~string](key, section string, st store.Store, defaultValue E, allowed []E, opts ...EntryOption) (*EnumEntry[E], error) {
	if !slices.Contains(allowed, defaultValue) {
		return nil, &InvalidKeyError{Key: key, Reason: "enum default not among allowed values"}
	}
	cfg := newEntryConfig(opts)
	base, err := newBaseWithSection(key, section, st, variant.New(string(defaultValue)), cfg)
	if err != nil {
		return nil, err
	}
	allowed = slices.Clone(allowed)
	return &EnumEntry[E]{ByValue[E]{Base: base, conv: enumConversions(defaultValue, allowed)}, allowed}, nil
}

// ColorEntry stores a color setting, encoded as a #rrggbbaa hex string.
type ColorEntry struct {
	ByValue[variant.Color]
}

// SettingType returns TypeColor.
func (e *ColorEntry) SettingType() SettingType { return TypeColor }

func colorConversions(defaultValue variant.Color, cfg entryConfig) conversions[variant.Color] {
	return conversions[variant.Color]{
		fromVariant: func(v variant.Variant) variant.Color {
			if c, ok := v.AsColor(); ok {
				return c
			}
			return defaultValue
		},
		toVariant: func(c variant.Color) variant.Variant { return variant.New(c) },
		checkValue: func(c variant.Color) bool {
			return cfg.allowAlpha || c.Alpha >= 1
		},
	}
}

// NewColorEntry creates a color entry registered under parent.
func NewColorEntry(key string, parent *Node, defaultValue variant.Color, opts ...EntryOption) (*ColorEntry, error) {
	cfg := newEntryConfig(opts)
	base, err := newBase(key, parent, variant.New(defaultValue), cfg)
	if err != nil {
		return nil, err
	}
	e := &ColorEntry{ByValue[variant.Color]{Base: base, conv: colorConversions(defaultValue, cfg)}}
	if err := parent.registerChildEntry(e, key); err != nil {
		return nil, err
	}
	return e, nil
}

// NewColorEntryWithSection creates a color entry bound directly to a
// store under a raw section key.
func NewColorEntryWithSection(key, section string, st store.Store, defaultValue variant.Color, opts ...EntryOption) (*ColorEntry, error) {
	cfg := newEntryConfig(opts)
	base, err := newBaseWithSection(key, section, st, variant.New(defaultValue), cfg)
	if err != nil {
		return nil, err
	}
	return &ColorEntry{ByValue[variant.Color]{Base: base, conv: colorConversions(defaultValue, cfg)}}, nil
}

// StringListEntry stores a list of strings. Values are copied on the way
// in and out.
type StringListEntry struct {
	ByReference[[]string]
}

// SettingType returns TypeStringList.
func (e *StringListEntry) SettingType() SettingType { return TypeStringList }

func stringListConversions(defaultValue []string) conversions[[]string] {
	return conversions[[]string]{
		fromVariant: func(v variant.Variant) []string {
			if l, ok := v.StringList(); ok {
				return l
			}
			return slices.Clone(defaultValue)
		},
		toVariant: func(l []string) variant.Variant { return variant.New(l) },
	}
}

// NewStringListEntry creates a string list entry registered under
// parent.
func NewStringListEntry(key string, parent *Node, defaultValue []string, opts ...EntryOption) (*StringListEntry, error) {
	cfg := newEntryConfig(opts)
	base, err := newBase(key, parent, variant.New(defaultValue), cfg)
	if err != nil {
		return nil, err
	}
	e := &StringListEntry{ByReference[[]string]{Base: base, conv: stringListConversions(defaultValue)}}
	if err := parent.registerChildEntry(e, key); err != nil {
		return nil, err
	}
	return e, nil
}

// NewStringListEntryWithSection creates a string list entry bound
// directly to a store under a raw section key.
func NewStringListEntryWithSection(key, section string, st store.Store, defaultValue []string, opts ...EntryOption) (*StringListEntry, error) {
	cfg := newEntryConfig(opts)
	base, err := newBaseWithSection(key, section, st, variant.New(defaultValue), cfg)
	if err != nil {
		return nil, err
	}
	return &StringListEntry{ByReference[[]string]{Base: base, conv: stringListConversions(defaultValue)}}, nil
}

// VariantMapEntry stores a free-form map of variants. Values are copied
// on the way in and out.
type VariantMapEntry struct {
	ByReference[map[string]variant.Variant]
}

// SettingType returns TypeVariantMap.
func (e *VariantMapEntry) SettingType() SettingType { return TypeVariantMap }

func variantMapConversions(defaultValue map[string]variant.Variant) conversions[map[string]variant.Variant] {
	return conversions[map[string]variant.Variant]{
		fromVariant: func(v variant.Variant) map[string]variant.Variant {
			if m, ok := v.Map(); ok {
				return m
			}
			// copy through the variant layer to avoid aliasing
			d, _ := variant.New(defaultValue).Map()
			return d
		},
		toVariant: func(m map[string]variant.Variant) variant.Variant { return variant.New(m) },
	}
}

// NewVariantMapEntry creates a variant map entry registered under
// parent.
func NewVariantMapEntry(key string, parent *Node, defaultValue map[string]variant.Variant, opts ...EntryOption) (*VariantMapEntry, error) {
	cfg := newEntryConfig(opts)
	base, err := newBase(key, parent, variant.New(defaultValue), cfg)
	if err != nil {
		return nil, err
	}
	e := &VariantMapEntry{ByReference[map[string]variant.Variant]{Base: base, conv: variantMapConversions(defaultValue)}}
	if err := parent.registerChildEntry(e, key); err != nil {
		return nil, err
	}
	return e, nil
}

// NewVariantMapEntryWithSection creates a variant map entry bound
// directly to a store under a raw section key.
func NewVariantMapEntryWithSection(key, section string, st store.Store, defaultValue map[string]variant.Variant, opts ...EntryOption) (*VariantMapEntry, error) {
	cfg := newEntryConfig(opts)
	base, err := newBaseWithSection(key, section, st, variant.New(defaultValue), cfg)
	if err != nil {
		return nil, err
	}
	return &VariantMapEntry{ByReference[map[string]variant.Variant]{Base: base, conv: variantMapConversions(defaultValue)}}, nil
}
