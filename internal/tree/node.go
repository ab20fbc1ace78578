package tree

import "slices"

// Kind classifies a node as a menu (Internal) or a display terminal (Leaf).
type Kind uint8

const (
	Internal Kind = iota + 1
	Leaf
)

func (k Kind) String() string {
	switch k {
	case Internal:
		return "internal"
	case Leaf:
		return "leaf"
	default:
		return "unknown"
	}
}

// Node is the single entity of the content tree.
// Fields are set once by Load and never change afterwards.
type Node struct {
	id        string
	parentID  string
	hasParent bool
	title     string
	kind      Kind
	keys      []string // Internal only
	content   string   // Leaf only
	link      string
	seq       uint32 // dense declaration-order number, used for bitmap indexes
}

// ID returns the node's stable identifier.
func (n *Node) ID() string { return n.id }

// ParentID returns the owning node's ID. ok is false for the root.
func (n *Node) ParentID() (id string, ok bool) { return n.parentID, n.hasParent }

// IsRoot reports whether n has no parent.
func (n *Node) IsRoot() bool { return !n.hasParent }

// Title returns the display label.
func (n *Node) Title() string { return n.title }

// Kind returns Internal or Leaf.
func (n *Node) Kind() Kind { return n.kind }

// IsLeaf reports whether n displays content rather than a menu.
func (n *Node) IsLeaf() bool { return n.kind == Leaf }

// Keys returns a copy of the menu labels of an internal node, in display
// order. Leaves return nil.
func (n *Node) Keys() []string { return slices.Clone(n.keys) }

// Content returns the opaque payload of a leaf. Internal nodes return "".
func (n *Node) Content() string { return n.content }

// Link returns the optional opaque URL attached to the node.
func (n *Node) Link() string { return n.link }
