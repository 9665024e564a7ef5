package settings

// Options is a bit set of entry behavior flags.
type Options uint8

const (
	// OptionSaveFormerValue keeps a backup of the previous value each
	// time the setting changes to a different value. The backup is
	// retrievable through FormerValueAsVariant and the typed FormerValue
	// accessors.
	OptionSaveFormerValue Options = 1 << iota
)

// Has reports whether all flags in o are set.
func (o Options) Has(flag Options) bool { return o&flag == flag }

// NodeOptions is a bit set of tree node behavior flags.
type NodeOptions uint8

const (
	// NodeOptionSelectedItem equips a named list node with an owned
	// string entry tracking which item is currently selected.
	NodeOptionSelectedItem NodeOptions = 1 << iota
)

// Has reports whether all flags in o are set.
func (o NodeOptions) Has(flag NodeOptions) bool { return o&flag == flag }

// entryConfig collects the optional knobs an entry constructor accepts.
// Constraint fields only apply to the entry types that understand them,
// irrelevant options are ignored.
type entryConfig struct {
	description string
	options     Options
	minimum     *float64
	maximum     *float64
	minLength   *int
	maxLength   *int
	allowAlpha  bool
}

func newEntryConfig(opts []EntryOption) entryConfig {
	cfg := entryConfig{allowAlpha: true}
	for _, o := range opts {
		o(&cfg)
	}
	return cfg
}

// EntryOption configures an entry at construction time.
type EntryOption func(*entryConfig)

// WithDescription sets the human readable description of the entry.
func WithDescription(s string) EntryOption {
	return func(c *entryConfig) { c.description = s }
}

// WithOptions sets the entry behavior flags.
func WithOptions(o Options) EntryOption {
	return func(c *entryConfig) { c.options = o }
}

// WithSaveFormerValue enables OptionSaveFormerValue on the entry.
func WithSaveFormerValue() EntryOption {
	return func(c *entryConfig) { c.options |= OptionSaveFormerValue }
}

// WithMinimum sets the lowest accepted value for integer and double
// entries. SetValue rejects smaller values.
func WithMinimum(v float64) EntryOption {
	return func(c *entryConfig) { c.minimum = &v }
}

// WithMaximum sets the highest accepted value for integer and double
// entries. SetValue rejects larger values.
func WithMaximum(v float64) EntryOption {
	return func(c *entryConfig) { c.maximum = &v }
}

// WithMinLength sets the shortest accepted string for string entries.
func WithMinLength(n int) EntryOption {
	return func(c *entryConfig) { c.minLength = &n }
}

// WithMaxLength sets the longest accepted string for string entries.
func WithMaxLength(n int) EntryOption {
	return func(c *entryConfig) { c.maxLength = &n }
}

// WithoutAlpha makes a color entry reject colors with an alpha channel
// other than fully opaque.
func WithoutAlpha() EntryOption {
	return func(c *entryConfig) { c.allowAlpha = false }
}
