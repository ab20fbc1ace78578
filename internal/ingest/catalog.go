package ingest

import (
	"fmt"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/agentic-research/folio/api"
)

const (
	catalogRootID    = "root"
	catalogRootTitle = "Portfolio"
)

// DecodeCatalog reads the nested category/items shape. YAML is a superset
// of JSON, so both .catalog.json and .catalog.yaml go through here.
func DecodeCatalog(data []byte) (*api.Catalog, error) {
	var cat api.Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

// FlattenCatalog turns a catalog into declarations: one root, one internal
// node per category, one leaf per item. Category ids are slugs of the
// category name and item ids are "<category>/<item>" slugs, so two names
// that slug alike collide as duplicate ids at load.
func FlattenCatalog(cat *api.Catalog) []api.Declaration {
	title := cat.Title
	if title == "" {
		title = catalogRootTitle
	}
	root := api.Declaration{ID: catalogRootID, Title: title, Kind: api.KindInternal, Keys: []string{}}
	decls := []api.Declaration{root}

	for _, c := range cat.Categories {
		catID := Slug(c.Category)
		decls[0].Keys = append(decls[0].Keys, c.Category)

		node := api.Declaration{
			ID:     catID,
			Parent: api.String(catalogRootID),
			Title:  c.Category,
			Kind:   api.KindInternal,
			Keys:   make([]string, 0, len(c.Items)),
		}
		items := make([]api.Declaration, 0, len(c.Items))
		for _, it := range c.Items {
			node.Keys = append(node.Keys, it.Name)
			items = append(items, api.Declaration{
				ID:      fmt.Sprintf("%s/%s", catID, Slug(it.Name)),
				Parent:  api.String(catID),
				Title:   it.Name,
				Kind:    api.KindLeaf,
				Content: api.String(it.Description),
				Link:    it.URL,
			})
		}
		decls = append(decls, node)
		decls = append(decls, items...)
	}
	return decls
}

// Slug lower-cases s and joins its alphanumeric runs with hyphens:
// "QuadTrees / B+ Trees" -> "quadtrees-b-trees".
func Slug(s string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}
	return b.String()
}
