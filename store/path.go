package store

import (
	"strings"

	"github.com/kikitte/settingstree/variant"
)

// Nested document helpers for the file store. Flat store keys use "/" as
// separator; on disk they are laid out as nested tables so the persisted
// document stays readable.

// mapLeafKey marks a nested table that is a stored map value rather than
// a group of child keys. Settings key segments never start with "!", so
// the marker cannot collide with a real group name.
const mapLeafKey = "!map"

// encodeLeaf converts a stored value to its on-disk form. Map values are
// wrapped under the leaf marker so flattening can tell them apart from
// nested groups.
func encodeLeaf(v variant.Variant) any {
	if v.Kind() == variant.KindMap {
		return map[string]any{mapLeafKey: v.ToAny()}
	}
	return v.ToAny()
}

// setByPath sets a value in a nested map, creating intermediate maps as
// needed. A scalar in the middle of the path is replaced by a map.
func setByPath(doc map[string]any, path string, value any) {
	parts := strings.Split(path, "/")
	current := doc

	for i := 0; i < len(parts)-1; i++ {
		part := parts[i]
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}

	current[parts[len(parts)-1]] = value
}

// flattenDoc converts a nested document into flat separator-joined keys.
// Leaf values are anything that is not a map[string]any, plus tables
// wrapped under the leaf marker, which flatten to a single map-valued
// key; empty maps produce no keys.
func flattenDoc(doc map[string]any) map[string]any {
	flat := make(map[string]any)
	flattenInto(flat, "", doc)
	return flat
}

func flattenInto(flat map[string]any, prefix string, doc map[string]any) {
	for key, val := range doc {
		full := key
		if prefix != "" {
			full = prefix + "/" + key
		}

		if m, ok := val.(map[string]any); ok {
			if inner, leaf := m[mapLeafKey]; leaf && len(m) == 1 {
				flat[full] = inner
				continue
			}
			flattenInto(flat, full, m)
			continue
		}
		flat[full] = val
	}
}
