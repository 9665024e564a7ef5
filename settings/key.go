package settings

import (
	"regexp"
	"strconv"
	"strings"
)

// Separator joins key segments in a settings key.
const Separator = "/"

// formerValueSuffix is appended to a resolved key to address the backup
// slot holding the value a setting had before its last change.
const formerValueSuffix = "_formervalue"

// placeholderRe matches dynamic key placeholders %1 through %99.
var placeholderRe = regexp.MustCompile(`%[1-9][0-9]?`)

// JoinKey joins key segments with the separator, skipping empty segments.
// Segments are joined verbatim, no normalization is applied.
func JoinKey(segments ...string) string {
	parts := segments[:0:0]
	for _, s := range segments {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, Separator)
}

// PlaceholderCount returns the highest placeholder index present in the
// key template, or zero when the template is static.
func PlaceholderCount(template string) int {
	max := 0
	for _, m := range placeholderRe.FindAllString(template, -1) {
		n, _ := strconv.Atoi(m[1:])
		if n > max {
			max = n
		}
	}
	return max
}

// SubstituteKey resolves a key template by substituting each placeholder
// %N with dynamicParts[N-1]. The number of parts must exactly match the
// highest placeholder index, otherwise an ArityError is returned. A
// skipped index still counts toward arity: "a/%2" requires two parts,
// with the first unused.
func SubstituteKey(template string, dynamicParts ...string) (string, error) {
	want := PlaceholderCount(template)
	if len(dynamicParts) != want {
		return "", &ArityError{Template: template, Want: want, Got: len(dynamicParts)}
	}
	if want == 0 {
		return template, nil
	}
	return placeholderRe.ReplaceAllStringFunc(template, func(m string) string {
		n, _ := strconv.Atoi(m[1:])
		return dynamicParts[n-1]
	}), nil
}

// MatchesTemplate reports whether a fully resolved key could have been
// produced by the template, treating each placeholder as a wildcard for
// one non-empty segment-free run of characters.
func MatchesTemplate(template, key string) bool {
	quoted := regexp.QuoteMeta(template)
	pattern := placeholderRe.ReplaceAllLiteralString(quoted, `[^/]+`)
	re, err := regexp.Compile("^" + pattern + "$")
	if err != nil {
		return false
	}
	return re.MatchString(key)
}

// DynamicPartsFromString splits a raw string on the separator, dropping
// empty segments. It is a convenience for turning a stored path into the
// dynamic parts of a key template.
func DynamicPartsFromString(s string) []string {
	var parts []string
	for _, p := range strings.Split(s, Separator) {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// validateLocalKey checks a local key used to name a child node or entry
// under a tree node. Local keys must be non-empty and must not embed the
// separator or a placeholder.
func validateLocalKey(key string) error {
	if key == "" {
		return &InvalidKeyError{Key: key, Reason: "empty"}
	}
	if strings.Contains(key, Separator) {
		return &InvalidKeyError{Key: key, Reason: "contains separator"}
	}
	if placeholderRe.MatchString(key) {
		return &InvalidKeyError{Key: key, Reason: "contains placeholder"}
	}
	return nil
}
