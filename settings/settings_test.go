package settings

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/kikitte/settingstree/store"
	"github.com/kikitte/settingstree/variant"
)

// buildAppTree declares a small application settings tree on the store.
func buildAppTree(t *testing.T, st store.Store) (*Node, *IntegerEntry, *StringEntry) {
	t.Helper()
	root := NewTree(st)
	network := Must(root.CreateChildNode("network"))
	timeout := Must(NewIntegerEntry("timeoutMs", network, 5000,
		WithMinimum(0), WithDescription("Request timeout in milliseconds")))
	repos := Must(root.CreateNamedListNode("repositories", NodeOptionSelectedItem))
	url := Must(NewStringEntry("url", &repos.Node, ""))
	return root, timeout, url
}

func TestEndToEndFileBacked(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	st, err := store.NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	root, timeout, url := buildAppTree(t, st)

	if got := Must(timeout.Value()); got != 5000 {
		t.Errorf("unset Value() = %d, want default", got)
	}
	if ok, _ := timeout.SetValue(2500); !ok {
		t.Fatal("SetValue() rejected")
	}
	url.SetValue("https://plugins.example", "official")
	repos := root.ChildNode("repositories").AsNamedList()
	if ok, err := repos.SetSelectedItem("official"); err != nil || !ok {
		t.Fatalf("SetSelectedItem() = %v, %v", ok, err)
	}

	// a fresh store over the same file sees everything
	st2, err := store.NewFileStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	root2, timeout2, url2 := buildAppTree(t, st2)
	if got := Must(timeout2.Value()); got != 2500 {
		t.Errorf("reloaded Value() = %d, want 2500", got)
	}
	if got := Must(url2.Value("official")); got != "https://plugins.example" {
		t.Errorf("reloaded url = %q", got)
	}
	repos2 := root2.ChildNode("repositories").AsNamedList()
	if items := Must(repos2.Items()); !reflect.DeepEqual(items, []string{"official"}) {
		t.Errorf("reloaded Items() = %v", items)
	}
	if got := Must(repos2.SelectedItem()); got != "official" {
		t.Errorf("reloaded SelectedItem() = %q", got)
	}
}

func TestEndToEndLayered(t *testing.T) {
	localPath := filepath.Join(t.TempDir(), "local.yaml")
	local, err := store.NewFileStore(localPath)
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	global := store.NewMemoryStoreWithOrigin(store.OriginGlobal)
	layered := store.NewLayeredStore(
		store.Layer{Name: "local", Origin: store.OriginLocal, Store: local},
		store.Layer{Name: "global", Origin: store.OriginGlobal, ReadOnly: true, Store: global},
	)
	_, timeout, _ := buildAppTree(t, layered)

	// administrator default in the global layer
	if gk, err := timeout.Key(); err != nil || gk != "network/timeoutMs" {
		t.Fatalf("Key() = %q, %v", gk, err)
	}
	global.Set("network/timeoutMs", variant.New(int64(10000)))

	if got := Must(timeout.Value()); got != 10000 {
		t.Errorf("global value not visible: %d", got)
	}
	if origin := Must(timeout.OriginOf()); origin != store.OriginGlobal {
		t.Errorf("OriginOf() = %v", origin)
	}

	// a user write lands in the local layer and shadows the global value
	timeout.SetValue(2500)
	if got := Must(timeout.Value()); got != 2500 {
		t.Errorf("local value not preferred: %d", got)
	}
	if origin := Must(timeout.OriginOf()); origin != store.OriginLocal {
		t.Errorf("OriginOf() after write = %v", origin)
	}

	// removing the local value reveals the global one again
	timeout.Remove()
	if got := Must(timeout.Value()); got != 10000 {
		t.Errorf("Value() after Remove = %d, want global", got)
	}
}
