package settings

import (
	"strconv"

	"github.com/kikitte/settingstree/store"
	"github.com/kikitte/settingstree/variant"
)

// NodeType identifies the kind of a tree node.
type NodeType uint8

const (
	// NodeTypeRoot is the single store-owning root of a tree.
	NodeTypeRoot NodeType = iota
	// NodeTypeStandard is a plain named group of children.
	NodeTypeStandard
	// NodeTypeNamedList is a group whose children exist once per named
	// item, addressed through a dynamic key placeholder.
	NodeTypeNamedList
)

// String returns the node type name.
func (t NodeType) String() string {
	switch t {
	case NodeTypeRoot:
		return "root"
	case NodeTypeStandard:
		return "standard"
	default:
		return "namedlist"
	}
}

type childEntry struct {
	key   string
	entry Entry
}

// Node is a node of the settings tree. The root node owns the store all
// entries of the tree resolve to; inner nodes contribute a segment to
// the complete key of everything below them. Nodes are built once at
// startup and are not safe for concurrent mutation.
type Node struct {
	typ             NodeType
	key             string
	completeKey     string
	namedNodesCount int
	parent          *Node
	st              store.Store
	namedList       *NamedListNode

	childNodes   []*Node
	childEntries []childEntry
}

// NewTree creates the root node of a settings tree bound to a store.
func NewTree(st store.Store) *Node {
	return &Node{typ: NodeTypeRoot, st: st}
}

// Type returns the node kind.
func (n *Node) Type() NodeType { return n.typ }

// Key returns the node's own key segment, empty for the root.
func (n *Node) Key() string { return n.key }

// CompleteKey returns the key template from the root down to this node,
// placeholders included.
func (n *Node) CompleteKey() string { return n.completeKey }

// Parent returns the parent node, nil for the root.
func (n *Node) Parent() *Node { return n.parent }

// NamedNodesCount returns the number of named list levels between the
// root and this node, this node included when it is a named list. It
// equals the number of dynamic parts child entries require.
func (n *Node) NamedNodesCount() int { return n.namedNodesCount }

// Store returns the store owned by the tree's root.
func (n *Node) Store() store.Store {
	r := n
	for r.parent != nil {
		r = r.parent
	}
	return r.st
}

// AsNamedList returns the named list view of the node, or nil when the
// node is not a named list.
func (n *Node) AsNamedList() *NamedListNode { return n.namedList }

func (n *Node) childNodeAt(key string) *Node {
	for _, c := range n.childNodes {
		if c.key == key {
			return c
		}
	}
	return nil
}

func (n *Node) childEntryAt(key string) Entry {
	for _, c := range n.childEntries {
		if c.key == key {
			return c.entry
		}
	}
	return nil
}

// CreateChildNode returns the child node with the given key, creating it
// when absent. Asking again with the same key returns the same node.
// It fails when the key already names a child entry or a named list.
func (n *Node) CreateChildNode(key string) (*Node, error) {
	if err := validateLocalKey(key); err != nil {
		return nil, err
	}
	if existing := n.childNodeAt(key); existing != nil {
		if existing.typ == NodeTypeStandard {
			return existing, nil
		}
		return nil, &KeyCollisionError{ParentKey: n.completeKey, Key: key, Existing: "a named list node"}
	}
	if n.childEntryAt(key) != nil {
		return nil, &KeyCollisionError{ParentKey: n.completeKey, Key: key, Existing: "an entry"}
	}
	child := &Node{
		typ:             NodeTypeStandard,
		key:             key,
		completeKey:     JoinKey(n.completeKey, key),
		namedNodesCount: n.namedNodesCount,
		parent:          n,
	}
	n.childNodes = append(n.childNodes, child)
	return child, nil
}

// ChildNode returns the child node with the given key, or nil.
func (n *Node) ChildNode(key string) *Node { return n.childNodeAt(key) }

// ChildEntry returns the child entry with the given key, or nil.
func (n *Node) ChildEntry(key string) Entry { return n.childEntryAt(key) }

// Nodes returns the child nodes in registration order.
func (n *Node) Nodes() []*Node {
	out := make([]*Node, len(n.childNodes))
	copy(out, n.childNodes)
	return out
}

// Entries returns the child entries in registration order.
func (n *Node) Entries() []Entry {
	out := make([]Entry, 0, len(n.childEntries))
	for _, c := range n.childEntries {
		out = append(out, c.entry)
	}
	return out
}

// registerChildEntry records an entry under its local key. Registering
// the same entry twice is a no-op; any other occupant of the key is a
// collision.
func (n *Node) registerChildEntry(e Entry, key string) error {
	if n.childNodeAt(key) != nil {
		return &KeyCollisionError{ParentKey: n.completeKey, Key: key, Existing: "a node"}
	}
	if existing := n.childEntryAt(key); existing != nil {
		if existing == e {
			return nil
		}
		return &KeyCollisionError{ParentKey: n.completeKey, Key: key, Existing: "an entry"}
	}
	n.childEntries = append(n.childEntries, childEntry{key: key, entry: e})
	return nil
}

// UnregisterOptions controls what UnregisterChildEntry does with the
// stored values of the entry being removed.
type UnregisterOptions struct {
	// DeleteValues removes the stored value of the entry.
	DeleteValues bool
	// ParentsNamedItems are the dynamic parts resolving the entry's key
	// when DeleteValues is set and the key is dynamic.
	ParentsNamedItems []string
}

// UnregisterChildEntry detaches an entry from the tree, optionally
// deleting its stored value. Detaching an entry that is not a child is a
// no-op.
func (n *Node) UnregisterChildEntry(e Entry, opts UnregisterOptions) error {
	idx := -1
	for i, c := range n.childEntries {
		if c.entry == e {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}
	if opts.DeleteValues {
		if err := e.Remove(opts.ParentsNamedItems...); err != nil {
			return err
		}
	}
	n.childEntries = append(n.childEntries[:idx], n.childEntries[idx+1:]...)
	return nil
}

// UnregisterChildNode detaches a child node and everything below it from
// the tree. Stored values are left untouched.
func (n *Node) UnregisterChildNode(child *Node) {
	for i, c := range n.childNodes {
		if c == child {
			n.childNodes = append(n.childNodes[:i], n.childNodes[i+1:]...)
			c.parent = nil
			return
		}
	}
}

// CreateNamedListNode returns the named list child with the given key,
// creating it when absent. Asking again with the same key and the same
// options returns the same node; asking with different options fails.
func (n *Node) CreateNamedListNode(key string, opts NodeOptions) (*NamedListNode, error) {
	if err := validateLocalKey(key); err != nil {
		return nil, err
	}
	if existing := n.childNodeAt(key); existing != nil {
		if existing.typ != NodeTypeNamedList {
			return nil, &KeyCollisionError{ParentKey: n.completeKey, Key: key, Existing: "a standard node"}
		}
		nl := existing.namedList
		if nl.options != opts {
			return nil, &KeyCollisionError{ParentKey: n.completeKey, Key: key, Existing: "a named list with different options"}
		}
		return nl, nil
	}
	if n.childEntryAt(key) != nil {
		return nil, &KeyCollisionError{ParentKey: n.completeKey, Key: key, Existing: "an entry"}
	}

	baseKey := JoinKey(n.completeKey, key)
	count := n.namedNodesCount + 1
	itemsKey := JoinKey(baseKey, "items") + Separator
	nl := &NamedListNode{
		Node: Node{
			typ:             NodeTypeNamedList,
			key:             key,
			completeKey:     itemsKey + "%" + strconv.Itoa(count),
			namedNodesCount: count,
			parent:          n,
		},
		options:  opts,
		itemsKey: itemsKey,
	}
	nl.Node.namedList = nl
	if opts.Has(NodeOptionSelectedItem) {
		cfg := newEntryConfig(nil)
		base, err := newBaseWithSection(JoinKey(baseKey, "selected"), "", n.Store(), variant.New(""), cfg)
		if err != nil {
			return nil, err
		}
		nl.selectedItem = &StringEntry{ByValue[string]{Base: base, conv: stringConversions("", cfg)}}
	}
	n.childNodes = append(n.childNodes, &nl.Node)
	return nl, nil
}
