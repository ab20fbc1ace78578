package api

// Kind values accepted in a Declaration. An empty Kind is inferred from
// whether the declaration carries Keys or Content.
const (
	KindInternal = "internal"
	KindLeaf     = "leaf"
)

// Declaration is one node record as it appears in a source document.
// It is the input to tree.Load; nothing here is validated yet.
type Declaration struct {
	// ID is the stable identifier of the node.
	ID string `json:"id" yaml:"id"`
	// Parent is the owning node's ID. Nil marks the root.
	Parent *string `json:"parent,omitempty" yaml:"parent,omitempty"`
	// Title is the display label. Keys on the parent match against it.
	Title string `json:"title" yaml:"title"`
	// Kind is "internal", "leaf", or empty to infer.
	Kind string `json:"kind,omitempty" yaml:"kind,omitempty"`
	// Keys is the menu of an internal node. Nil means not carried.
	Keys []string `json:"keys,omitempty" yaml:"keys,omitempty"`
	// Content is the payload of a leaf. Nil means not carried.
	Content *string `json:"content,omitempty" yaml:"content,omitempty"`
	// Link is an opaque URL shown alongside the node (optional).
	Link string `json:"link,omitempty" yaml:"link,omitempty"`
}

// Record is the body of a Declaration in the keyed document shape
// ({"<id>": {...}}), where the ID is the mapping key.
type Record struct {
	Parent  *string  `json:"parent,omitempty" yaml:"parent,omitempty"`
	Title   string   `json:"title" yaml:"title"`
	Kind    string   `json:"kind,omitempty" yaml:"kind,omitempty"`
	Keys    []string `json:"keys,omitempty" yaml:"keys,omitempty"`
	Content *string  `json:"content,omitempty" yaml:"content,omitempty"`
	Link    string   `json:"link,omitempty" yaml:"link,omitempty"`
}

// Declare attaches an ID to a Record.
func (r Record) Declare(id string) Declaration {
	return Declaration{
		ID:      id,
		Parent:  r.Parent,
		Title:   r.Title,
		Kind:    r.Kind,
		Keys:    r.Keys,
		Content: r.Content,
		Link:    r.Link,
	}
}

// Catalog is the nested category/items document shape. It is flattened
// into Declarations by ingest.
type Catalog struct {
	// Title of the root node. Defaults to "Portfolio".
	Title      string     `json:"title,omitempty" yaml:"title,omitempty"`
	Categories []Category `json:"categories" yaml:"categories"`
}

// Category is one internal node of a Catalog.
type Category struct {
	Category string `json:"category" yaml:"category"`
	Items    []Item `json:"items" yaml:"items"`
}

// Item is one leaf of a Catalog.
type Item struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	URL         string `json:"url,omitempty" yaml:"url,omitempty"`
}

// String returns a pointer to s. Handy for Parent and Content literals.
func String(s string) *string { return &s }
