package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/example/dvd-catalog/internal/library"
)

// Postgres stores library documents in a Postgres table, one row per
// library id.
type Postgres struct {
	pool *pgxpool.Pool
	id   string
}

func NewPostgres(pool *pgxpool.Pool, libraryID string) *Postgres {
	return &Postgres{pool: pool, id: libraryID}
}

// EnsureSchema creates the documents table if it does not exist.
func (s *Postgres) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS library_documents (
	id         TEXT PRIMARY KEY,
	version    INT NOT NULL,
	payload    JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`)
	return err
}

func (s *Postgres) Load(ctx context.Context) ([]library.Item, error) {
	var payload []byte
	err := s.pool.QueryRow(ctx, `SELECT payload FROM library_documents WHERE id = $1`, s.id).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
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

func (s *Postgres) Save(ctx context.Context, items []library.Item) error {
	payload, err := json.Marshal(document{Version: docVersion, Items: items})
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, `
INSERT INTO library_documents (id, version, payload, updated_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (id) DO UPDATE SET
	version    = EXCLUDED.version,
	payload    = EXCLUDED.payload,
	updated_at = now()`,
		s.id, docVersion, payload)
	return err
}
