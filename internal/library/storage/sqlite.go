package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/example/dvd-catalog/internal/library"
)

// SQLite stores library documents in a local SQLite file, one row per
// library id. This is the default driver for single-user deployments.
type SQLite struct {
	db *sql.DB
	id string
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS documents (
	id         TEXT PRIMARY KEY,
	version    INTEGER NOT NULL,
	payload    BLOB NOT NULL,
	updated_at TEXT NOT NULL DEFAULT (datetime('now'))
)`

// OpenSQLite opens or creates the catalog database at path.
func OpenSQLite(path, libraryID string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &SQLite{db: db, id: libraryID}, nil
}

func (s *SQLite) Load(ctx context.Context) ([]library.Item, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM documents WHERE id = ?`, s.id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var doc document
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("decode library document %s: %w", s.id, err)
	}
	return doc.Items, nil
}

func (s *SQLite) Save(ctx context.Context, items []library.Item) error {
	payload, err := json.Marshal(document{Version: docVersion, Items: items})
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO documents (id, version, payload, updated_at)
VALUES (?, ?, ?, datetime('now'))
ON CONFLICT (id) DO UPDATE SET
	version    = excluded.version,
	payload    = excluded.payload,
	updated_at = excluded.updated_at`,
		s.id, docVersion, payload)
	return err
}

func (s *SQLite) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
