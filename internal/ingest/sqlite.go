package ingest

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ohler55/ojg/oj"
	_ "modernc.org/sqlite"

	"github.com/agentic-research/folio/api"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS nodes (
	id TEXT PRIMARY KEY,
	parent_id TEXT,
	title TEXT NOT NULL,
	kind TEXT NOT NULL DEFAULT '',
	keys TEXT,
	content TEXT,
	link TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_nodes_parent ON nodes(parent_id);
`

// LoadSQLite reads every row of the nodes table in insertion order.
// NULL parent_id marks the root; NULL keys and content mean "not carried".
// The database is opened read-only and must already exist.
func LoadSQLite(ctx context.Context, dbPath string) ([]api.Declaration, error) {
	if _, err := os.Stat(dbPath); err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}
	defer func() { _ = db.Close() }() // safe to ignore

	rows, err := db.QueryContext(ctx,
		"SELECT id, parent_id, title, kind, keys, content, link FROM nodes ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("query nodes: %w", err)
	}
	defer func() { _ = rows.Close() }() // safe to ignore

	var decls []api.Declaration
	for rows.Next() {
		var (
			d                     api.Declaration
			parent, keys, content sql.NullString
		)
		if err := rows.Scan(&d.ID, &parent, &d.Title, &d.Kind, &keys, &content, &d.Link); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		if parent.Valid {
			d.Parent = api.String(parent.String)
		}
		if content.Valid {
			d.Content = api.String(content.String)
		}
		if keys.Valid {
			if d.Keys, err = parseKeys(keys.String); err != nil {
				return nil, fmt.Errorf("node %q: keys: %w", d.ID, err)
			}
		}
		decls = append(decls, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return decls, nil
}

// parseKeys decodes a JSON array of strings. An empty array yields an
// empty, non-nil slice.
func parseKeys(raw string) ([]string, error) {
	v, err := oj.ParseString(raw)
	if err != nil {
		return nil, err
	}
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("want a JSON array, got %T", v)
	}
	keys := make([]string, 0, len(list))
	for i, item := range list {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("entry %d: want a string, got %T", i, item)
		}
		keys = append(keys, s)
	}
	return keys, nil
}

// WriteSQLite stores decls in a nodes table at dbPath, creating it if
// needed. Rows keep declaration order. Repeated ids fail the write.
func WriteSQLite(ctx context.Context, dbPath string, decls []api.Declaration) error {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}
	defer func() { _ = db.Close() }() // safe to ignore

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }() // no-op after commit

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO nodes (id, parent_id, title, kind, keys, content, link)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }() // safe to ignore

	for _, d := range decls {
		var parent, keys, content sql.NullString
		if d.Parent != nil {
			parent = sql.NullString{String: *d.Parent, Valid: true}
		}
		if d.Content != nil {
			content = sql.NullString{String: *d.Content, Valid: true}
		}
		if d.Keys != nil {
			b, err := json.Marshal(d.Keys)
			if err != nil {
				return fmt.Errorf("node %q: encode keys: %w", d.ID, err)
			}
			keys = sql.NullString{String: string(b), Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, d.ID, parent, d.Title, d.Kind, keys, content, d.Link); err != nil {
			return fmt.Errorf("insert %q: %w", d.ID, err)
		}
	}
	return tx.Commit()
}
