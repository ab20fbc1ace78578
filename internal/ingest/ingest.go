// Package ingest decodes node declarations from source documents.
//
// Every format produces the same ordered []api.Declaration; validation is
// left to tree.Load. Declaration order and repeated ids are preserved
// where the format allows it, so duplicates surface as load errors rather
// than being silently merged.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"go.uber.org/zap"

	"github.com/agentic-research/folio/api"
)

// Format names a declaration document format.
type Format string

const (
	FormatAuto    Format = "auto"
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatHCL     Format = "hcl"
	FormatSQLite  Format = "sqlite"
	FormatCatalog Format = "catalog"
)

// ErrUnknownFormat is returned when a format cannot be detected from a path.
var ErrUnknownFormat = errors.New("unknown declaration format")

// DetectFormat picks a format from the file name.
func DetectFormat(path string) (Format, error) {
	name := strings.ToLower(filepath.Base(path))
	for _, suffix := range []string{".catalog.json", ".catalog.yaml", ".catalog.yml"} {
		if strings.HasSuffix(name, suffix) {
			return FormatCatalog, nil
		}
	}
	switch filepath.Ext(name) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".hcl":
		return FormatHCL, nil
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
}

// Options controls Load.
type Options struct {
	// Format overrides detection when set to anything but FormatAuto or "".
	Format Format
	// Selector is a JSONPath picking the declaration document out of a
	// larger JSON file. JSON only.
	Selector string
	Logger   *zap.Logger
}

// Load reads path from fsys and decodes it into declarations.
// SQLite sources need a real file, so they are opened at fsys.Root()/path.
func Load(ctx context.Context, fsys billy.Filesystem, path string, opts Options) ([]api.Declaration, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	format := opts.Format
	if format == "" || format == FormatAuto {
		var err error
		if format, err = DetectFormat(path); err != nil {
			return nil, err
		}
	}
	if opts.Selector != "" && format != FormatJSON {
		return nil, fmt.Errorf("selector %q: only supported for %s sources, not %s", opts.Selector, FormatJSON, format)
	}

	var (
		decls []api.Declaration
		err   error
	)
	if format == FormatSQLite {
		decls, err = LoadSQLite(ctx, filepath.Join(fsys.Root(), path))
	} else {
		var data []byte
		data, err = util.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		decls, err = decode(format, path, data, opts.Selector)
	}
	if err != nil {
		return nil, err
	}

	logger.Debug("declarations decoded",
		zap.String("path", path),
		zap.String("format", string(format)),
		zap.Int("count", len(decls)))
	return decls, nil
}

func decode(format Format, path string, data []byte, selector string) ([]api.Declaration, error) {
	var (
		decls []api.Declaration
		err   error
	)
	switch format {
	case FormatJSON:
		if selector != "" {
			decls, err = DecodeJSONSelect(data, selector)
		} else {
			decls, err = DecodeJSON(data)
		}
	case FormatYAML:
		decls, err = DecodeYAML(data)
	case FormatHCL:
		decls, err = DecodeHCL(path, data)
	case FormatCatalog:
		var cat *api.Catalog
		if cat, err = DecodeCatalog(data); err == nil {
			decls = FlattenCatalog(cat)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s %s: %w", format, path, err)
	}
	return decls, nil
}
