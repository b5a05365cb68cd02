// Package postgres is the Postgres implementation of the durable project
// backend: one jsonb document per project with a merge upsert, matching the
// Firestore backend's semantics.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wedding-seating/go-seating-backend/internal/seating/domain"
)

// Backend stores project documents in a jsonb table.
type Backend struct {
	pool *pgxpool.Pool
}

// Open connects the pool, pings it and ensures the schema exists.
func Open(ctx context.Context, dsn string) (*Backend, error) {
	if dsn == "" {
		return nil, fmt.Errorf("DB_DSN is not set")
	}

	cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(cctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}

	pctx, pcancel := context.WithTimeout(ctx, 2*time.Second)
	defer pcancel()

	if err := pool.Ping(pctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}

	b := &Backend{pool: pool}
	if err := b.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return b, nil
}

func (b *Backend) ensureSchema(ctx context.Context) error {
	const q = `
CREATE TABLE IF NOT EXISTS wedding_seating_projects (
    project_id TEXT PRIMARY KEY,
    doc        JSONB NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`
	if _, err := b.pool.Exec(ctx, q); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

func (b *Backend) Get(ctx context.Context, projectID string) (domain.Project, bool, error) {
	const q = `SELECT doc FROM wedding_seating_projects WHERE project_id = $1;`

	var raw []byte
	err := b.pool.QueryRow(ctx, q, projectID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Project{}, false, nil
	}
	if err != nil {
		return domain.Project{}, false, fmt.Errorf("select project: %w", err)
	}

	var p domain.Project
	if err := json.Unmarshal(raw, &p); err != nil {
		return domain.Project{}, false, fmt.Errorf("decode project: %w", err)
	}
	return p, true, nil
}

// Set upserts the document. The jsonb concatenation keeps merge semantics:
// top-level fields missing from the new payload survive from the stored doc.
func (b *Backend) Set(ctx context.Context, projectID string, p domain.Project) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode project: %w", err)
	}

	const q = `
INSERT INTO wedding_seating_projects (project_id, doc, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (project_id)
DO UPDATE SET doc = wedding_seating_projects.doc || EXCLUDED.doc, updated_at = now();
`
	if _, err := b.pool.Exec(ctx, q, projectID, raw); err != nil {
		return fmt.Errorf("upsert project: %w", err)
	}
	return nil
}

func (b *Backend) Close() error {
	b.pool.Close()
	return nil
}
