package tree

import (
	"errors"
	"fmt"
	"slices"

	"github.com/RoaringBitmap/roaring"
	"github.com/agentic-research/folio/api"
	"go.uber.org/zap"
)

// Reader is the read side shared by Store and HotSwap.
type Reader interface {
	Root() *Node
	GetNode(id string) (*Node, error)
	Children(id string) []*Node
}

// Store is the validated, immutable index over one declaration.
type Store struct {
	nodes    map[string]*Node
	order    []*Node // declaration order; order[i].seq == i
	root     *Node
	children map[string][]*Node            // parent id -> children in declaration order
	titles   map[string]map[string][]*Node // parent id -> title -> children
	diags    []Diagnostic
}

type loadOptions struct {
	logger *zap.Logger
}

// Option configures Load.
type Option func(*loadOptions)

// WithLogger routes load diagnostics and summary to l.
func WithLogger(l *zap.Logger) Option {
	return func(o *loadOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// Load validates decls and builds a Store. Checks run in a fixed order and
// the first failure is returned: duplicate ids, dangling parents, root
// count, kind consistency, then reachability from the root.
func Load(decls []api.Declaration, opts ...Option) (*Store, error) {
	o := loadOptions{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	declared := make(map[string]struct{}, len(decls))
	for _, d := range decls {
		if _, dup := declared[d.ID]; dup {
			return nil, &DuplicateIDError{ID: d.ID}
		}
		declared[d.ID] = struct{}{}
	}

	var roots []string
	for _, d := range decls {
		if d.Parent == nil {
			roots = append(roots, d.ID)
			continue
		}
		if _, ok := declared[*d.Parent]; !ok {
			return nil, &DanglingParentError{ID: d.ID, Parent: *d.Parent}
		}
	}
	if len(roots) != 1 {
		return nil, &RootCardinalityError{Roots: roots}
	}

	s := &Store{
		nodes:    make(map[string]*Node, len(decls)),
		order:    make([]*Node, 0, len(decls)),
		children: make(map[string][]*Node),
		titles:   make(map[string]map[string][]*Node),
	}
	for i, d := range decls {
		kind, err := resolveKind(d)
		if err != nil {
			return nil, err
		}
		n := &Node{
			id:    d.ID,
			title: d.Title,
			kind:  kind,
			link:  d.Link,
			seq:   uint32(i),
		}
		if d.Parent != nil {
			n.parentID, n.hasParent = *d.Parent, true
		}
		switch kind {
		case Internal:
			n.keys = slices.Clone(d.Keys)
		case Leaf:
			n.content = *d.Content
		}
		s.nodes[n.id] = n
		s.order = append(s.order, n)
	}

	for _, n := range s.order {
		if !n.hasParent {
			s.root = n
			continue
		}
		s.children[n.parentID] = append(s.children[n.parentID], n)
		byTitle, ok := s.titles[n.parentID]
		if !ok {
			byTitle = make(map[string][]*Node)
			s.titles[n.parentID] = byTitle
		}
		byTitle[n.title] = append(byTitle[n.title], n)
	}

	if err := s.checkReachable(); err != nil {
		return nil, err
	}

	s.diags = s.diagnose()
	for _, d := range s.diags {
		o.logger.Warn("tree diagnostic",
			zap.String("node", d.NodeID),
			zap.String("key", d.Key),
			zap.String("code", string(d.Code)),
			zap.String("message", d.Message))
	}
	o.logger.Debug("tree loaded",
		zap.Int("nodes", len(s.order)),
		zap.String("root", s.root.id),
		zap.Int("diagnostics", len(s.diags)))

	return s, nil
}

// resolveKind checks that a declaration carries exactly what its kind
// allows, inferring the kind when it is left empty.
func resolveKind(d api.Declaration) (Kind, error) {
	hasKeys, hasContent := d.Keys != nil, d.Content != nil
	if hasKeys && hasContent {
		return 0, &KindMismatchError{ID: d.ID, Reason: "carries both keys and content"}
	}
	switch d.Kind {
	case api.KindInternal:
		if hasContent {
			return 0, &KindMismatchError{ID: d.ID, Reason: "internal node carries content"}
		}
		return Internal, nil
	case api.KindLeaf:
		if hasKeys {
			return 0, &KindMismatchError{ID: d.ID, Reason: "leaf node carries keys"}
		}
		if !hasContent {
			return 0, &KindMismatchError{ID: d.ID, Reason: "leaf node carries no content"}
		}
		return Leaf, nil
	case "":
		switch {
		case hasKeys:
			return Internal, nil
		case hasContent:
			return Leaf, nil
		default:
			return 0, &KindMismatchError{ID: d.ID, Reason: "carries neither keys nor content"}
		}
	default:
		return 0, &KindMismatchError{ID: d.ID, Reason: fmt.Sprintf("unknown kind %q", d.Kind)}
	}
}

// checkReachable marks every node reachable from the root in a bitmap.
// With one root and resolved parents, anything left unmarked hangs off a
// parent cycle.
func (s *Store) checkReachable() error {
	reached := roaring.New()
	stack := []*Node{s.root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !reached.CheckedAdd(n.seq) {
			continue
		}
		stack = append(stack, s.children[n.id]...)
	}
	if reached.GetCardinality() == uint64(len(s.order)) {
		return nil
	}

	unreached := roaring.Flip(reached, 0, uint64(len(s.order)))
	n := s.order[unreached.Minimum()]
	// Climb until a node repeats; the repeat is on the cycle.
	visited := roaring.New()
	for visited.CheckedAdd(n.seq) {
		n = s.nodes[n.parentID]
	}
	return &CycleError{ID: n.id}
}

// GetNode returns the node with the given id.
func (s *Store) GetNode(id string) (*Node, error) {
	n, ok := s.nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return n, nil
}

// Children returns the nodes whose parent is id, in declaration order.
// Leaves, childless nodes and unknown ids yield an empty slice.
func (s *Store) Children(id string) []*Node {
	return slices.Clone(s.children[id])
}

// ChildByTitle resolves a key against the children of parentID.
// count is the number of children carrying that title; the node is
// returned only when count is exactly 1.
func (s *Store) ChildByTitle(parentID, title string) (n *Node, count int) {
	matches := s.titles[parentID][title]
	if len(matches) == 1 {
		return matches[0], 1
	}
	return nil, len(matches)
}

// Root returns the single parentless node.
func (s *Store) Root() *Node { return s.root }

// Parent returns the owning node of id. ok is false for the root and for
// unknown ids.
func (s *Store) Parent(id string) (*Node, bool) {
	n, ok := s.nodes[id]
	if !ok || !n.hasParent {
		return nil, false
	}
	return s.nodes[n.parentID], true
}

// Len returns the number of nodes.
func (s *Store) Len() int { return len(s.order) }

// Diagnostics returns the non-fatal findings recorded at load.
func (s *Store) Diagnostics() []Diagnostic { return slices.Clone(s.diags) }

// Ancestors returns the path from the root down to id, inclusive.
func (s *Store) Ancestors(id string) ([]*Node, error) {
	n, err := s.GetNode(id)
	if err != nil {
		return nil, err
	}
	var path []*Node
	for {
		path = append(path, n)
		if !n.hasParent {
			break
		}
		n = s.nodes[n.parentID]
	}
	slices.Reverse(path)
	return path, nil
}

// SkipChildren may be returned by a WalkFunc to skip a node's subtree.
var SkipChildren = errors.New("skip children")

// WalkFunc is called for each node with its depth below the root.
type WalkFunc func(n *Node, depth int) error

// Walk visits every node depth-first in pre-order, children in
// declaration order. Any error other than SkipChildren stops the walk.
func (s *Store) Walk(fn WalkFunc) error {
	return s.walk(s.root, 0, fn)
}

func (s *Store) walk(n *Node, depth int, fn WalkFunc) error {
	if err := fn(n, depth); err != nil {
		if errors.Is(err, SkipChildren) {
			return nil
		}
		return err
	}
	for _, c := range s.children[n.id] {
		if err := s.walk(c, depth+1, fn); err != nil {
			return err
		}
	}
	return nil
}

// Leaves returns every leaf in walk order.
func (s *Store) Leaves() []*Node {
	var leaves []*Node
	_ = s.Walk(func(n *Node, _ int) error { // fn never fails
		if n.kind == Leaf {
			leaves = append(leaves, n)
		}
		return nil
	})
	return leaves
}
