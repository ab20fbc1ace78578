package tree

import "fmt"

// Code identifies a class of non-fatal load finding.
type Code string

const (
	CodeDeadKey       Code = "dead-key"       // key names no child
	CodeAmbiguousKey  Code = "ambiguous-key"  // key names several children
	CodeUnlistedChild Code = "unlisted-child" // child named by no key
	CodeLeafChildren  Code = "leaf-children"  // leaf has unreachable children
)

// Diagnostic is a defect in the declaration that does not fail Load.
// Navigation degrades around it: dead keys go inert, ambiguous keys are
// reported per selection.
type Diagnostic struct {
	NodeID  string
	Key     string
	Code    Code
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s [%s]: %s", d.NodeID, d.Code, d.Message)
}

func (s *Store) diagnose() []Diagnostic {
	var diags []Diagnostic
	for _, n := range s.order {
		kids := s.children[n.id]
		if n.kind == Leaf {
			if len(kids) > 0 {
				diags = append(diags, Diagnostic{
					NodeID:  n.id,
					Code:    CodeLeafChildren,
					Message: fmt.Sprintf("leaf has %d children that cannot be navigated to", len(kids)),
				})
			}
			continue
		}

		listed := make(map[string]bool, len(n.keys))
		for _, key := range n.keys {
			listed[key] = true
			switch matches := len(s.titles[n.id][key]); {
			case matches == 0:
				diags = append(diags, Diagnostic{
					NodeID:  n.id,
					Key:     key,
					Code:    CodeDeadKey,
					Message: fmt.Sprintf("key %q names no child", key),
				})
			case matches > 1:
				diags = append(diags, Diagnostic{
					NodeID:  n.id,
					Key:     key,
					Code:    CodeAmbiguousKey,
					Message: fmt.Sprintf("key %q names %d children", key, matches),
				})
			}
		}
		for _, c := range kids {
			if !listed[c.title] {
				diags = append(diags, Diagnostic{
					NodeID:  n.id,
					Key:     c.title,
					Code:    CodeUnlistedChild,
					Message: fmt.Sprintf("child %q is not named by any key", c.id),
				})
			}
		}
	}
	return diags
}
