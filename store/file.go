package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/kikitte/settingstree/variant"
)

// FileStore is a Store persisted to a single TOML or YAML file. The file
// holds a nested document; keys nest on the "/" separator. Writes go
// through to disk with an atomic replace. It is safe for concurrent use.
//
// A key that is a strict prefix of another key (a value at "a" alongside
// values under "a/") cannot be represented in a nested document; the
// settings tree never produces such layouts.
type FileStore struct {
	mu     sync.RWMutex
	path   string
	codec  codec
	values map[string]variant.Variant
	origin Origin
}

// FileOption configures a FileStore.
type FileOption func(*FileStore)

// WithFileOrigin sets the origin the store answers for present keys.
// The default is OriginLocal; a system-wide defaults file would use
// OriginGlobal.
func WithFileOrigin(origin Origin) FileOption {
	return func(s *FileStore) {
		s.origin = origin
	}
}

// NewFileStore opens a file store at path. The codec is chosen by
// extension: ".toml", ".yaml" or ".yml". A missing file is not an error;
// the store starts empty and the file is created on first write.
func NewFileStore(path string, opts ...FileOption) (*FileStore, error) {
	c, err := codecForPath(path)
	if err != nil {
		return nil, err
	}

	s := &FileStore{
		path:   path,
		codec:  c,
		values: make(map[string]variant.Variant),
		origin: OriginLocal,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Reload re-reads the backing file, replacing in-memory state. A missing
// file loads as empty.
func (s *FileStore) Reload() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.mu.Lock()
			s.values = make(map[string]variant.Variant)
			s.mu.Unlock()
			return nil
		}
		return fmt.Errorf("reading settings file %s: %w", s.path, err)
	}

	var doc map[string]any
	if err := s.codec.unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing settings file %s: %w", s.path, err)
	}

	values := make(map[string]variant.Variant)
	for key, raw := range flattenDoc(doc) {
		v := variant.FromAny(raw)
		if v.IsValid() {
			values[key] = v
		}
	}

	s.mu.Lock()
	s.values = values
	s.mu.Unlock()
	return nil
}

// Get returns the value at key.
func (s *FileStore) Get(key string) (variant.Variant, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]
	if !ok {
		return variant.Invalid(), false
	}
	return v, true
}

// Set stores value at key and writes the file. It returns false if the
// value is invalid or the file write failed.
func (s *FileStore) Set(key string, value variant.Variant) bool {
	if !value.IsValid() {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev, hadPrev := s.values[key]
	s.values[key] = value
	if err := s.saveLocked(); err != nil {
		// Roll back so memory and disk stay consistent.
		if hadPrev {
			s.values[key] = prev
		} else {
			delete(s.values, key)
		}
		return false
	}
	return true
}

// Remove deletes the key and writes the file. Removal of an absent key
// does not touch the file.
func (s *FileStore) Remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.values[key]; !ok {
		return
	}
	delete(s.values, key)
	_ = s.saveLocked()
}

// Contains reports whether the key is present.
func (s *FileStore) Contains(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.values[key]
	return ok
}

// KeysWithPrefix returns all keys starting with prefix, sorted.
func (s *FileStore) KeysWithPrefix(prefix string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var keys []string
	for k := range s.values {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// Origin reports the store's origin for present keys.
func (s *FileStore) Origin(key string) Origin {
	if s.Contains(key) {
		return s.origin
	}
	return OriginAny
}

// saveLocked marshals current state and atomically replaces the file.
// Callers must hold the write lock.
func (s *FileStore) saveLocked() error {
	doc := make(map[string]any)
	for key, v := range s.values {
		setByPath(doc, key, encodeLeaf(v))
	}

	data, err := s.codec.marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding settings file %s: %w", s.path, err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// codec marshals nested documents.
type codec interface {
	marshal(doc map[string]any) ([]byte, error)
	unmarshal(data []byte, doc *map[string]any) error
}

func codecForPath(path string) (codec, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		return tomlCodec{}, nil
	case ".yaml", ".yml":
		return yamlCodec{}, nil
	default:
		return nil, fmt.Errorf("unsupported settings file extension %q (want .toml, .yaml or .yml)", ext)
	}
}

type tomlCodec struct{}

func (tomlCodec) marshal(doc map[string]any) ([]byte, error) {
	return toml.Marshal(doc)
}

func (tomlCodec) unmarshal(data []byte, doc *map[string]any) error {
	return toml.Unmarshal(data, doc)
}

type yamlCodec struct{}

func (yamlCodec) marshal(doc map[string]any) ([]byte, error) {
	return yaml.Marshal(doc)
}

func (yamlCodec) unmarshal(data []byte, doc *map[string]any) error {
	return yaml.Unmarshal(data, doc)
}
