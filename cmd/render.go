package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/agentic-research/folio/internal/nav"
)

// render prints the navigator's current node: a breadcrumb, then either
// the leaf's content or the numbered menu of an internal node.
func render(w io.Writer, n *nav.Navigator) {
	cur := n.Current()
	fmt.Fprintf(w, "[ %s ]\n", strings.Join(n.Breadcrumb(), " > "))

	if cur.IsLeaf() {
		fmt.Fprintln(w, cur.Content())
		if cur.Link() != "" {
			fmt.Fprintf(w, "-> %s\n", cur.Link())
		}
		return
	}

	menu := n.Menu()
	if len(menu) == 0 {
		fmt.Fprintln(w, "  (empty)")
		return
	}
	for i, e := range menu {
		switch e.State {
		case nav.Live:
			fmt.Fprintf(w, "  %d) %s\n", i+1, e.Key)
		default:
			fmt.Fprintf(w, "  %d) %s (%s)\n", i+1, e.Key, e.State)
		}
	}
}

// describe turns a non-moving result into a one-line message.
func describe(r nav.Result) string {
	if r.Outcome == nav.Ambiguous {
		return r.Err.Error()
	}
	return fmt.Sprintf("key %q leads nowhere", r.Key)
}
