package store

import (
	"testing"

	"github.com/kikitte/settingstree/variant"
)

func newTestEnvStore(t *testing.T) *EnvStore {
	t.Helper()
	t.Setenv("APP_TIMEOUT", "500")
	t.Setenv("APP_DEBUG", "true")
	t.Setenv("APP_RATIO", "1.25")
	t.Setenv("APP_NAME", "demo")

	return NewEnvStore(map[string]string{
		"APP_TIMEOUT": "net/timeoutMs",
		"APP_DEBUG":   "app/debug",
		"APP_RATIO":   "app/ratio",
		"APP_NAME":    "app/name",
		"APP_UNSET":   "app/unset",
	})
}

func TestEnvStore_TypedParsing(t *testing.T) {
	s := newTestEnvStore(t)

	v, ok := s.Get("net/timeoutMs")
	if !ok {
		t.Fatal("timeout not found")
	}
	if i, _ := v.Int(); i != 500 {
		t.Errorf("timeout = %d, want 500", i)
	}

	v, _ = s.Get("app/debug")
	if b, _ := v.Bool(); !b {
		t.Error("debug should parse as bool true")
	}

	v, _ = s.Get("app/ratio")
	if f, _ := v.Float(); f != 1.25 {
		t.Errorf("ratio = %v, want 1.25", f)
	}

	v, _ = s.Get("app/name")
	if str, _ := v.Str(); str != "demo" {
		t.Errorf("name = %q, want demo", str)
	}
}

func TestEnvStore_NumericStringsStayNumeric(t *testing.T) {
	t.Setenv("APP_ONE", "1")
	s := NewEnvStore(map[string]string{"APP_ONE": "one"})

	v, _ := s.Get("one")
	if v.Kind() != variant.KindInt {
		t.Errorf("kind = %v, want int (not bool)", v.Kind())
	}
}

func TestEnvStore_ReadOnly(t *testing.T) {
	s := newTestEnvStore(t)

	if s.Set("net/timeoutMs", variant.New(1)) {
		t.Error("Set should fail on an env store")
	}
	s.Remove("net/timeoutMs") // no-op
	if !s.Contains("net/timeoutMs") {
		t.Error("Remove should not remove anything")
	}
}

func TestEnvStore_AbsentAndUnmapped(t *testing.T) {
	s := newTestEnvStore(t)

	if s.Contains("app/unset") {
		t.Error("unset env var reported present")
	}
	if _, ok := s.Get("not/mapped"); ok {
		t.Error("unmapped key reported present")
	}
	if o := s.Origin("net/timeoutMs"); o != OriginGlobal {
		t.Errorf("Origin = %v, want global", o)
	}
	if o := s.Origin("app/unset"); o != OriginAny {
		t.Errorf("Origin of unset = %v, want any", o)
	}
}

func TestEnvStore_PrefixDerivedNames(t *testing.T) {
	t.Setenv("MYAPP_NETWORK_TIMEOUTMS", "2500")
	t.Setenv("MYAPP_UI_RECENT_FILES", "a.txt")
	s := NewEnvStoreWithPrefix("MYAPP")

	v, ok := s.Get("network/timeoutMs")
	if !ok {
		t.Fatal("derived name not found")
	}
	if i, _ := v.Int(); i != 2500 {
		t.Errorf("timeoutMs = %d, want 2500", i)
	}

	// every non-alphanumeric character maps to an underscore
	if !s.Contains("ui/recent-files") {
		t.Error("dashed key not derived")
	}
	if s.Contains("network/absent") {
		t.Error("unset derived variable reported present")
	}
	if o := s.Origin("network/timeoutMs"); o != OriginGlobal {
		t.Errorf("Origin = %v, want global", o)
	}

	// derived names are not enumerable, explicit bindings are
	if keys := s.KeysWithPrefix(""); len(keys) != 0 {
		t.Errorf("KeysWithPrefix = %v, want empty", keys)
	}
	s.Bind("MYAPP_NETWORK_TIMEOUTMS", "network/timeoutMs")
	if keys := s.KeysWithPrefix("network/"); len(keys) != 1 || keys[0] != "network/timeoutMs" {
		t.Errorf("KeysWithPrefix after Bind = %v", keys)
	}
}

func TestEnvStore_ExplicitBindingWinsOverDerivation(t *testing.T) {
	t.Setenv("MYAPP_NET_TIMEOUTMS", "1")
	t.Setenv("LEGACY_TIMEOUT", "2")
	s := NewEnvStoreWithPrefix("MYAPP")
	s.Bind("LEGACY_TIMEOUT", "net/timeoutMs")

	v, ok := s.Get("net/timeoutMs")
	if !ok {
		t.Fatal("bound key not found")
	}
	if i, _ := v.Int(); i != 2 {
		t.Errorf("bound value = %d, want 2 (explicit binding)", i)
	}
}

func TestEnvStore_KeysWithPrefix(t *testing.T) {
	s := newTestEnvStore(t)

	got := s.KeysWithPrefix("app/")
	want := []string{"app/debug", "app/name", "app/ratio"}
	if len(got) != len(want) {
		t.Fatalf("KeysWithPrefix = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("KeysWithPrefix[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
