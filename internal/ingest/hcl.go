package ingest

import (
	"path/filepath"

	"github.com/hashicorp/hcl/v2/hclsimple"

	"github.com/agentic-research/folio/api"
)

// hclFile is the HCL shape:
//
//	node "projects" {
//	  parent = "root"
//	  title  = "Projects"
//	  keys   = ["Vector Database"]
//	}
type hclFile struct {
	Nodes []hclNode `hcl:"node,block"`
}

type hclNode struct {
	ID      string   `hcl:"id,label"`
	Parent  *string  `hcl:"parent,optional"`
	Title   string   `hcl:"title"`
	Kind    string   `hcl:"kind,optional"`
	Keys    []string `hcl:"keys,optional"`
	Content *string  `hcl:"content,optional"`
	Link    string   `hcl:"link,optional"`
}

// DecodeHCL decodes node blocks in file order. name only feeds diagnostics
// and syntax selection, so a non-.hcl name is given the .hcl suffix.
func DecodeHCL(name string, data []byte) ([]api.Declaration, error) {
	if filepath.Ext(name) != ".hcl" {
		name += ".hcl"
	}
	var f hclFile
	if err := hclsimple.Decode(name, data, nil, &f); err != nil {
		return nil, err
	}
	decls := make([]api.Declaration, 0, len(f.Nodes))
	for _, n := range f.Nodes {
		decls = append(decls, api.Declaration{
			ID:      n.ID,
			Parent:  n.Parent,
			Title:   n.Title,
			Kind:    n.Kind,
			Keys:    n.Keys,
			Content: n.Content,
			Link:    n.Link,
		})
	}
	return decls, nil
}
