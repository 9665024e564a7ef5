// Package settings implements a hierarchical registry of typed
// application settings.
//
// Settings are declared once as entries, each carrying a key template, a
// typed default, an optional description and behavior flags. Entries
// hang off a tree of nodes whose root owns the backing store; named list
// nodes introduce dynamic key placeholders so a declared entry can exist
// once per named item. Reads fall back to the default when no value is
// stored, writes validate against the entry's constraints, and a flat
// Registry serves lookup of any entry from a fully resolved key.
package settings
