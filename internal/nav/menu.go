package nav

import "github.com/agentic-research/folio/internal/tree"

// KeyState tells the presentation layer how to draw a menu entry.
type KeyState uint8

const (
	Live KeyState = iota
	DeadKey
	AmbiguousKey
)

func (s KeyState) String() string {
	switch s {
	case DeadKey:
		return "dead"
	case AmbiguousKey:
		return "ambiguous"
	default:
		return "live"
	}
}

// MenuEntry is one key of the current node with what selecting it would do.
type MenuEntry struct {
	Key    string
	Target *tree.Node // nil unless Live
	State  KeyState
}

// Menu lists the current node's keys in display order. Leaves have no menu.
func (n *Navigator) Menu() []MenuEntry {
	keys := n.current.Keys()
	entries := make([]MenuEntry, 0, len(keys))
	for _, key := range keys {
		e := MenuEntry{Key: key}
		r := Resolve(n.tree, n.current, key)
		switch r.Outcome {
		case Dead:
			e.State = DeadKey
		case Ambiguous:
			e.State = AmbiguousKey
		default:
			e.Target = r.Node
		}
		entries = append(entries, e)
	}
	return entries
}
