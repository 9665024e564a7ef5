package settings

import (
	"strings"

	"github.com/kikitte/settingstree/store"
)

// NamedListNode is a tree node whose children exist once per named item.
// Child entries registered under it gain a dynamic key placeholder that
// resolves to the item name, and the node enumerates the items present
// in the store.
type NamedListNode struct {
	Node

	options NodeOptions
	// itemsKey is the key template addressing the items group, ending
	// with the separator. It carries the placeholders of ancestor named
	// lists but not this node's own item placeholder.
	itemsKey     string
	selectedItem *StringEntry
}

// NodeOptions returns the behavior flags the node was created with.
func (n *NamedListNode) NodeOptions() NodeOptions { return n.options }

// SelectedItemEntry returns the entry tracking the selected item, or nil
// when the node was created without NodeOptionSelectedItem.
func (n *NamedListNode) SelectedItemEntry() *StringEntry { return n.selectedItem }

// Items returns the sorted names of the items present in the store. The
// dynamic parts resolve the ancestor named lists, not this node's own
// placeholder.
func (n *NamedListNode) Items(dynamicParts ...string) ([]string, error) {
	return n.ItemsWithOrigin(store.OriginAny, dynamicParts...)
}

// ItemsWithOrigin returns the sorted names of the items at least one of
// whose keys comes from the given origin.
func (n *NamedListNode) ItemsWithOrigin(origin store.Origin, dynamicParts ...string) ([]string, error) {
	prefix, err := SubstituteKey(n.itemsKey, dynamicParts...)
	if err != nil {
		return nil, err
	}
	st := n.Store()
	var items []string
	seen := map[string]bool{}
	for _, key := range st.KeysWithPrefix(prefix) {
		rest := key[len(prefix):]
		name := rest
		if i := strings.Index(rest, Separator); i >= 0 {
			name = rest[:i]
		}
		if name == "" || seen[name] {
			continue
		}
		if origin != store.OriginAny && st.Origin(key) != origin {
			continue
		}
		seen[name] = true
		items = append(items, name)
	}
	return items, nil
}

// SetSelectedItem records which item is currently selected. It reports
// false without error when the store rejects the write, and fails with
// ErrUnsupportedOperation when the node was created without
// NodeOptionSelectedItem.
func (n *NamedListNode) SetSelectedItem(item string, dynamicParts ...string) (bool, error) {
	if n.selectedItem == nil {
		return false, &UnsupportedOperationError{NodeKey: n.completeKey, Operation: "selected item tracking"}
	}
	return n.selectedItem.SetValue(item, dynamicParts...)
}

// SelectedItem returns the currently selected item, empty when none was
// recorded. It fails with ErrUnsupportedOperation when the node was
// created without NodeOptionSelectedItem.
func (n *NamedListNode) SelectedItem(dynamicParts ...string) (string, error) {
	if n.selectedItem == nil {
		return "", &UnsupportedOperationError{NodeKey: n.completeKey, Operation: "selected item tracking"}
	}
	return n.selectedItem.Value(dynamicParts...)
}

// DeleteItem removes every stored key of one item. Other items are left
// untouched.
func (n *NamedListNode) DeleteItem(item string, dynamicParts ...string) error {
	prefix, err := SubstituteKey(n.itemsKey, dynamicParts...)
	if err != nil {
		return err
	}
	st := n.Store()
	itemPrefix := prefix + item + Separator
	keys := st.KeysWithPrefix(itemPrefix)
	for _, key := range keys {
		st.Remove(key)
	}
	st.Remove(prefix + item)
	return nil
}

// DeleteAllItems removes every stored key of every item.
func (n *NamedListNode) DeleteAllItems(dynamicParts ...string) error {
	prefix, err := SubstituteKey(n.itemsKey, dynamicParts...)
	if err != nil {
		return err
	}
	st := n.Store()
	for _, key := range st.KeysWithPrefix(prefix) {
		st.Remove(key)
	}
	return nil
}
