package store

import (
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/kikitte/settingstree/variant"
)

// EnvStore is a read-only Store over environment variables. A key maps
// to an environment variable either through a name derived from a
// configured prefix ("network/timeoutMs" with prefix "MYAPP" reads
// MYAPP_NETWORK_TIMEOUTMS) or through an explicit binding, which wins
// over derivation and stays lossless in both directions.
//
// Values parse as bool, integer or float when they look like one,
// otherwise they are strings. An EnvStore answers OriginGlobal, its usual
// role being a read-only override layer in a LayeredStore.
type EnvStore struct {
	prefix  string
	mapping map[string]string // env var -> settings key
	reverse map[string]string // settings key -> env var
}

// NewEnvStore creates a store over the given environment variable
// mapping (env var name to settings key).
func NewEnvStore(mapping map[string]string) *EnvStore {
	reverse := make(map[string]string, len(mapping))
	for env, key := range mapping {
		reverse[key] = env
	}
	return &EnvStore{
		mapping: mapping,
		reverse: reverse,
	}
}

// NewEnvStoreWithPrefix creates a store deriving environment variable
// names from settings keys: the key is uppercased, every non-alphanumeric
// character becomes an underscore, and the prefix is prepended. The
// derivation is one-way, so KeysWithPrefix only enumerates explicitly
// bound keys.
func NewEnvStoreWithPrefix(prefix string) *EnvStore {
	s := NewEnvStore(map[string]string{})
	s.prefix = prefix
	return s
}

// Bind adds a mapping from an environment variable to a settings key.
func (s *EnvStore) Bind(envVar, key string) {
	s.mapping[envVar] = key
	s.reverse[key] = envVar
}

// envFor returns the environment variable name serving a settings key.
func (s *EnvStore) envFor(key string) (string, bool) {
	if env, ok := s.reverse[key]; ok {
		return env, true
	}
	if s.prefix == "" {
		return "", false
	}
	return deriveEnvName(s.prefix, key), true
}

// deriveEnvName builds the environment variable name for a key under a
// prefix: MYAPP + "network/timeoutMs" -> MYAPP_NETWORK_TIMEOUTMS.
func deriveEnvName(prefix, key string) string {
	var b strings.Builder
	b.WriteString(prefix)
	b.WriteByte('_')
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r - 'a' + 'A')
		case (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// Get returns the parsed value of the mapped environment variable.
// An empty string value counts as set.
func (s *EnvStore) Get(key string) (variant.Variant, bool) {
	env, ok := s.envFor(key)
	if !ok {
		return variant.Invalid(), false
	}
	raw, ok := os.LookupEnv(env)
	if !ok {
		return variant.Invalid(), false
	}
	return parseEnvValue(raw), true
}

// Set always fails: environment variables are read-only here.
func (s *EnvStore) Set(string, variant.Variant) bool {
	return false
}

// Remove is a no-op.
func (s *EnvStore) Remove(string) {}

// Contains reports whether the key maps to a set environment variable.
func (s *EnvStore) Contains(key string) bool {
	env, ok := s.envFor(key)
	if !ok {
		return false
	}
	_, set := os.LookupEnv(env)
	return set
}

// KeysWithPrefix returns all explicitly bound keys with set environment
// variables starting with prefix, sorted. Derived names are not
// enumerable, since an uppercase variable name cannot be turned back
// into its settings key.
func (s *EnvStore) KeysWithPrefix(prefix string) []string {
	var keys []string
	for key, env := range s.reverse {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		if _, set := os.LookupEnv(env); set {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

// Origin answers OriginGlobal for present keys.
func (s *EnvStore) Origin(key string) Origin {
	if s.Contains(key) {
		return OriginGlobal
	}
	return OriginAny
}

// parseEnvValue converts an environment string to the narrowest settings
// value type it parses as.
func parseEnvValue(raw string) variant.Variant {
	if b, err := strconv.ParseBool(raw); err == nil && isBoolWord(raw) {
		return variant.New(b)
	}
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return variant.New(i)
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return variant.New(f)
	}
	return variant.New(raw)
}

// isBoolWord restricts bool parsing to spelled-out forms so "1" and "0"
// stay integers.
func isBoolWord(raw string) bool {
	switch strings.ToLower(raw) {
	case "true", "false":
		return true
	default:
		return false
	}
}
