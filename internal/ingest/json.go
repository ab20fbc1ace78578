package ingest

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"

	"github.com/agentic-research/folio/api"
)

// DecodeJSON accepts either a keyed object ({"<id>": record, ...}) or an
// array of declarations carrying their own "id". The object form is read
// token by token so member order and repeated ids survive.
func DecodeJSON(data []byte) ([]api.Declaration, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("read opening token: %w", err)
	}

	var decls []api.Declaration
	switch tok {
	case json.Delim('{'):
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, fmt.Errorf("read node id: %w", err)
			}
			id := keyTok.(string) // object keys are always strings
			var rec api.Record
			if err := dec.Decode(&rec); err != nil {
				return nil, fmt.Errorf("node %q: %w", id, err)
			}
			decls = append(decls, rec.Declare(id))
		}
	case json.Delim('['):
		for i := 0; dec.More(); i++ {
			var d api.Declaration
			if err := dec.Decode(&d); err != nil {
				return nil, fmt.Errorf("entry %d: %w", i, err)
			}
			decls = append(decls, d)
		}
	default:
		return nil, fmt.Errorf("want an object or array of nodes, got %v", tok)
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("read closing token: %w", err)
	}
	return decls, nil
}

// DecodeJSONSelect evaluates a JSONPath over the document and decodes the
// first match as DecodeJSON would. The match passes through a generic
// map, so members of a keyed object come out sorted by id and repeated
// ids collapse to the last one.
func DecodeJSONSelect(data []byte, selector string) ([]api.Declaration, error) {
	x, err := jp.ParseString(selector)
	if err != nil {
		return nil, fmt.Errorf("invalid jsonpath '%s': %w", selector, err)
	}
	doc, err := oj.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	sub := x.First(doc)
	if sub == nil {
		return nil, fmt.Errorf("jsonpath '%s' matched nothing", selector)
	}
	raw, err := json.Marshal(sub)
	if err != nil {
		return nil, fmt.Errorf("re-encode selection: %w", err)
	}
	return DecodeJSON(raw)
}
