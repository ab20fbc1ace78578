package nav

import (
	"fmt"

	"github.com/agentic-research/folio/internal/tree"
)

// Outcome is what a selection asks the presentation layer to do.
type Outcome uint8

const (
	// Traverse: the new current node is internal; render its keys as the menu.
	Traverse Outcome = iota + 1
	// ShowContent: the new current node is a leaf; display its content.
	ShowContent
	// Dead: the key resolves to nothing. State is unchanged.
	Dead
	// Ambiguous: the key names several children. State is unchanged and
	// Result.Err holds an *AmbiguousKeyError.
	Ambiguous
)

func (o Outcome) String() string {
	switch o {
	case Traverse:
		return "traverse"
	case ShowContent:
		return "show-content"
	case Dead:
		return "dead"
	case Ambiguous:
		return "ambiguous"
	default:
		return fmt.Sprintf("outcome(%d)", uint8(o))
	}
}

// Result is the value returned for every selection.
type Result struct {
	Outcome Outcome
	Node    *tree.Node // destination for Traverse/ShowContent, nil otherwise
	Key     string
	Err     error // set only for Ambiguous
}

// Moved reports whether the selection changed the current node.
func (r Result) Moved() bool {
	return r.Outcome == Traverse || r.Outcome == ShowContent
}

// AmbiguousKeyError reports a key matching the titles of several children.
type AmbiguousKeyError struct {
	ParentID string
	Key      string
	Count    int
}

func (e *AmbiguousKeyError) Error() string {
	return fmt.Sprintf("key %q under %q matches %d children", e.Key, e.ParentID, e.Count)
}

// arrive classifies a node reached by a selection.
func arrive(n *tree.Node, key string) Result {
	if n.IsLeaf() {
		return Result{Outcome: ShowContent, Node: n, Key: key}
	}
	return Result{Outcome: Traverse, Node: n, Key: key}
}
