// Package nav turns key selections into moves over a loaded content tree.
//
// A Navigator is always at some node; the only state is "the current
// node". Selections that do not resolve leave it where it is. Navigators
// are not safe for concurrent use; the presentation layer drives one
// selection at a time.
package nav

import (
	"github.com/agentic-research/folio/internal/tree"
	"go.uber.org/zap"
)

// Tree is the read surface a Navigator needs. *tree.Store and
// *tree.HotSwap implement it.
type Tree interface {
	Root() *tree.Node
	GetNode(id string) (*tree.Node, error)
	Parent(id string) (*tree.Node, bool)
	Ancestors(id string) ([]*tree.Node, error)
	ChildByTitle(parentID, title string) (*tree.Node, int)
}

// Resolve computes the result of selecting key while at from, without
// any state. Matching is exact and case-sensitive against child titles.
func Resolve(t Tree, from *tree.Node, key string) Result {
	if from.IsLeaf() {
		return Result{Outcome: Dead, Key: key}
	}
	child, count := t.ChildByTitle(from.ID(), key)
	switch {
	case count == 0:
		return Result{Outcome: Dead, Key: key}
	case count > 1:
		return Result{
			Outcome: Ambiguous,
			Key:     key,
			Err:     &AmbiguousKeyError{ParentID: from.ID(), Key: key, Count: count},
		}
	}
	return arrive(child, key)
}

// Navigator tracks the current node over one Tree.
type Navigator struct {
	tree    Tree
	current *tree.Node
	logger  *zap.Logger
}

// Option configures a Navigator.
type Option func(*Navigator)

// WithLogger sets the logger for transitions and rejected keys.
func WithLogger(l *zap.Logger) Option {
	return func(n *Navigator) {
		if l != nil {
			n.logger = l
		}
	}
}

// New returns a Navigator at the root of t.
func New(t Tree, opts ...Option) *Navigator {
	n := &Navigator{tree: t, current: t.Root(), logger: zap.NewNop()}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Current returns the node the navigator is at.
func (n *Navigator) Current() *tree.Node { return n.current }

// Peek reports what selecting key would do, without moving or logging.
func (n *Navigator) Peek(key string) Result {
	return Resolve(n.tree, n.current, key)
}

// Select resolves key against the current node and moves on success.
func (n *Navigator) Select(key string) Result {
	from := n.current
	r := Resolve(n.tree, from, key)
	switch r.Outcome {
	case Dead:
		n.logger.Info("dead key", zap.String("at", from.ID()), zap.String("key", key))
	case Ambiguous:
		n.logger.Info("ambiguous key", zap.String("at", from.ID()), zap.Error(r.Err))
	default:
		n.current = r.Node
		n.logger.Debug("navigated",
			zap.String("from", from.ID()),
			zap.String("to", r.Node.ID()),
			zap.Stringer("outcome", r.Outcome))
	}
	return r
}

// SelectPath applies keys in order and stops at the first one that does
// not move. The returned result is that failure, or the last move. Moves
// made before a failure are kept. An empty path classifies the current
// node.
func (n *Navigator) SelectPath(keys ...string) Result {
	r := arrive(n.current, "")
	for _, key := range keys {
		r = n.Select(key)
		if !r.Moved() {
			break
		}
	}
	return r
}

// Up moves to the parent of the current node. It reports false at the root.
func (n *Navigator) Up() bool {
	p, ok := n.tree.Parent(n.current.ID())
	if !ok {
		return false
	}
	n.current = p
	return true
}

// Reset moves back to the root.
func (n *Navigator) Reset() {
	n.current = n.tree.Root()
}

// Breadcrumb returns the titles from the root down to the current node.
func (n *Navigator) Breadcrumb() []string {
	path, err := n.tree.Ancestors(n.current.ID())
	if err != nil {
		return nil
	}
	titles := make([]string, len(path))
	for i, p := range path {
		titles[i] = p.Title()
	}
	return titles
}

// Rebind moves the navigator onto a freshly loaded tree, staying at the
// same node id when it still exists there and falling back to the root
// otherwise. It reports whether the node id survived. A navigator reading
// through a *tree.HotSwap is rebound to the same holder after each Swap,
// so the current node comes from the new store.
func (n *Navigator) Rebind(t Tree) bool {
	id := n.current.ID()
	n.tree = t
	if next, err := t.GetNode(id); err == nil {
		n.current = next
		return true
	}
	n.logger.Info("current node gone after reload; back to root", zap.String("id", id))
	n.current = t.Root()
	return false
}
