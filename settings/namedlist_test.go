package settings

import (
	"errors"
	"reflect"
	"testing"

	"github.com/kikitte/settingstree/store"
	"github.com/kikitte/settingstree/variant"
)

func TestNamedListCompleteKey(t *testing.T) {
	root, _ := newTestTree(t)
	plugins := Must(root.CreateChildNode("plugins"))
	repos := Must(plugins.CreateNamedListNode("repositories", 0))

	if got := repos.CompleteKey(); got != "plugins/repositories/items/%1" {
		t.Errorf("CompleteKey() = %q", got)
	}
	if got := repos.NamedNodesCount(); got != 1 {
		t.Errorf("NamedNodesCount() = %d", got)
	}
	if repos.Type() != NodeTypeNamedList {
		t.Errorf("Type() = %v", repos.Type())
	}
	if repos.AsNamedList() != repos {
		t.Error("AsNamedList() does not round trip")
	}
	if plugins.ChildNode("repositories").AsNamedList() != repos {
		t.Error("named list not reachable through ChildNode")
	}
}

func TestNamedListChildEntryKey(t *testing.T) {
	root, _ := newTestTree(t)
	plugins := Must(root.CreateChildNode("plugins"))
	repos := Must(plugins.CreateNamedListNode("repositories", 0))
	url := Must(NewStringEntry("url", &repos.Node, ""))

	if got := url.DefinitionKey(); got != "plugins/repositories/items/%1/url" {
		t.Errorf("DefinitionKey() = %q", got)
	}
	key, err := url.Key("official")
	if err != nil || key != "plugins/repositories/items/official/url" {
		t.Errorf("Key() = %q, %v", key, err)
	}
	if _, err := url.Key(); !errors.Is(err, ErrArityMismatch) {
		t.Errorf("missing part: error = %v, want ErrArityMismatch", err)
	}
	if _, err := url.Key("a", "b"); !errors.Is(err, ErrArityMismatch) {
		t.Errorf("extra part: error = %v, want ErrArityMismatch", err)
	}
}

func TestNamedListItemsLifecycle(t *testing.T) {
	root, _ := newTestTree(t)
	plugins := Must(root.CreateChildNode("plugins"))
	repos := Must(plugins.CreateNamedListNode("repositories", 0))
	url := Must(NewStringEntry("url", &repos.Node, ""))
	enabled := Must(NewBoolEntry("enabled", &repos.Node, true))

	if items := Must(repos.Items()); len(items) != 0 {
		t.Errorf("Items() on empty store = %v", items)
	}

	url.SetValue("https://a.example", "a")
	enabled.SetValue(false, "a")
	url.SetValue("https://b.example", "b")

	items := Must(repos.Items())
	if !reflect.DeepEqual(items, []string{"a", "b"}) {
		t.Errorf("Items() = %v, want [a b]", items)
	}

	if err := repos.DeleteItem("a"); err != nil {
		t.Fatalf("DeleteItem() error = %v", err)
	}
	items = Must(repos.Items())
	if !reflect.DeepEqual(items, []string{"b"}) {
		t.Errorf("Items() after DeleteItem = %v, want [b]", items)
	}
	if got := Must(url.Value("b")); got != "https://b.example" {
		t.Errorf("surviving item value = %q", got)
	}
	if got := Must(enabled.Value("a")); got != true {
		t.Errorf("deleted item reads %v, want default", got)
	}
}

func TestDeleteAllItems(t *testing.T) {
	root, _ := newTestTree(t)
	plugins := Must(root.CreateChildNode("plugins"))
	repos := Must(plugins.CreateNamedListNode("repositories", 0))
	url := Must(NewStringEntry("url", &repos.Node, ""))

	url.SetValue("https://a.example", "a")
	url.SetValue("https://b.example", "b")
	if err := repos.DeleteAllItems(); err != nil {
		t.Fatalf("DeleteAllItems() error = %v", err)
	}
	if items := Must(repos.Items()); len(items) != 0 {
		t.Errorf("Items() = %v, want empty", items)
	}
}

func TestSelectedItem(t *testing.T) {
	root, st := newTestTree(t)
	plugins := Must(root.CreateChildNode("plugins"))
	repos := Must(plugins.CreateNamedListNode("repositories", NodeOptionSelectedItem))

	if repos.SelectedItemEntry() == nil {
		t.Fatal("SelectedItemEntry() = nil with option set")
	}
	ok, err := repos.SetSelectedItem("official")
	if err != nil || !ok {
		t.Fatalf("SetSelectedItem() = %v, %v", ok, err)
	}
	if got := Must(repos.SelectedItem()); got != "official" {
		t.Errorf("SelectedItem() = %q", got)
	}
	if !st.Contains("plugins/repositories/selected") {
		t.Error("selected item not stored under the list base key")
	}
}

func TestSelectedItemUnsupported(t *testing.T) {
	root, _ := newTestTree(t)
	plugins := Must(root.CreateChildNode("plugins"))
	repos := Must(plugins.CreateNamedListNode("repositories", 0))

	if repos.SelectedItemEntry() != nil {
		t.Error("SelectedItemEntry() != nil without option")
	}
	if _, err := repos.SetSelectedItem("x"); !errors.Is(err, ErrUnsupportedOperation) {
		t.Errorf("SetSelectedItem() error = %v, want ErrUnsupportedOperation", err)
	}
	if _, err := repos.SelectedItem(); !errors.Is(err, ErrUnsupportedOperation) {
		t.Errorf("SelectedItem() error = %v, want ErrUnsupportedOperation", err)
	}
}

func TestNestedNamedLists(t *testing.T) {
	root, _ := newTestTree(t)
	layers := Must(root.CreateNamedListNode("layers", 0))
	styles := Must(layers.CreateNamedListNode("styles", 0))
	opacity := Must(NewDoubleEntry("opacity", &styles.Node, 1.0))

	if got := styles.NamedNodesCount(); got != 2 {
		t.Errorf("NamedNodesCount() = %d", got)
	}
	if got := opacity.DefinitionKey(); got != "layers/items/%1/styles/items/%2/opacity" {
		t.Errorf("DefinitionKey() = %q", got)
	}

	opacity.SetValue(0.5, "roads", "dashed")
	if got := Must(opacity.Value("roads", "dashed")); got != 0.5 {
		t.Errorf("Value() = %v", got)
	}

	// the inner list enumerates items per outer item
	items, err := styles.Items("roads")
	if err != nil {
		t.Fatalf("Items() error = %v", err)
	}
	if !reflect.DeepEqual(items, []string{"dashed"}) {
		t.Errorf("Items() = %v", items)
	}
	if _, err := styles.Items(); !errors.Is(err, ErrArityMismatch) {
		t.Errorf("Items() without part: error = %v, want ErrArityMismatch", err)
	}
	if items := Must(layers.Items()); !reflect.DeepEqual(items, []string{"roads"}) {
		t.Errorf("outer Items() = %v", items)
	}
}

func TestCreateNamedListNodeRedeclare(t *testing.T) {
	root, _ := newTestTree(t)
	a := Must(root.CreateNamedListNode("repositories", NodeOptionSelectedItem))
	b := Must(root.CreateNamedListNode("repositories", NodeOptionSelectedItem))
	if a != b {
		t.Error("re-declaration with same options returned a different node")
	}
	if _, err := root.CreateNamedListNode("repositories", 0); !errors.Is(err, ErrKeyCollision) {
		t.Errorf("re-declaration with different options: error = %v, want ErrKeyCollision", err)
	}
	if _, err := root.CreateChildNode("repositories"); !errors.Is(err, ErrKeyCollision) {
		t.Errorf("standard node over named list: error = %v, want ErrKeyCollision", err)
	}
}

func TestItemsWithOrigin(t *testing.T) {
	local := store.NewMemoryStore()
	global := store.NewMemoryStoreWithOrigin(store.OriginGlobal)
	layered := store.NewLayeredStore(
		store.Layer{Name: "local", Origin: store.OriginLocal, Store: local},
		store.Layer{Name: "global", Origin: store.OriginGlobal, ReadOnly: true, Store: global},
	)
	root := NewTree(layered)
	repos := Must(root.CreateNamedListNode("repositories", 0))
	Must(NewStringEntry("url", &repos.Node, ""))

	global.Set("repositories/items/builtin/url", variant.New("https://builtin.example"))
	local.Set("repositories/items/mine/url", variant.New("https://mine.example"))

	all := Must(repos.Items())
	if !reflect.DeepEqual(all, []string{"builtin", "mine"}) {
		t.Errorf("Items() = %v", all)
	}
	localOnly := Must(repos.ItemsWithOrigin(store.OriginLocal))
	if !reflect.DeepEqual(localOnly, []string{"mine"}) {
		t.Errorf("ItemsWithOrigin(local) = %v", localOnly)
	}
	globalOnly := Must(repos.ItemsWithOrigin(store.OriginGlobal))
	if !reflect.DeepEqual(globalOnly, []string{"builtin"}) {
		t.Errorf("ItemsWithOrigin(global) = %v", globalOnly)
	}
}
