package ingest

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/agentic-research/folio/api"
)

// DecodeYAML accepts the same two shapes as DecodeJSON. Decoding walks the
// yaml.Node tree instead of a map so mapping order and repeated ids are
// kept.
func DecodeYAML(data []byte) ([]api.Declaration, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return nil, nil // empty document
	}

	root := doc.Content[0]
	var decls []api.Declaration
	switch root.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(root.Content); i += 2 {
			key, val := root.Content[i], root.Content[i+1]
			var rec api.Record
			if err := val.Decode(&rec); err != nil {
				return nil, fmt.Errorf("node %q (line %d): %w", key.Value, key.Line, err)
			}
			decls = append(decls, rec.Declare(key.Value))
		}
	case yaml.SequenceNode:
		for i, item := range root.Content {
			var d api.Declaration
			if err := item.Decode(&d); err != nil {
				return nil, fmt.Errorf("entry %d (line %d): %w", i, item.Line, err)
			}
			decls = append(decls, d)
		}
	default:
		return nil, fmt.Errorf("line %d: want a mapping or sequence of nodes", root.Line)
	}
	return decls, nil
}
