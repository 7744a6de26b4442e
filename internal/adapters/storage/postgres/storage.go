package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	createDocumentsTable = `CREATE TABLE IF NOT EXISTS documents (
	name       TEXT PRIMARY KEY,
	body       JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

	loadDocument = `SELECT body FROM documents WHERE name = $1`

	saveDocument = `INSERT INTO documents (name, body, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (name) DO UPDATE SET body = EXCLUDED.body, updated_at = now()`
)

// DBTX is the subset of pgx used by the store, satisfied by *pgxpool.Pool.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, arguments ...any) pgx.Row
}

type PostgresStore struct {
	pool *pgxpool.Pool
	db   DBTX
}

func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	store := &PostgresStore{pool: pool, db: pool}
	if err := store.Migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return store, nil
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, createDocumentsTable); err != nil {
		return fmt.Errorf("create documents table: %w", err)
	}
	return nil
}

func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *PostgresStore) Load(ctx context.Context, name string) ([]byte, error) {
	var body []byte
	err := s.db.QueryRow(ctx, loadDocument, name).Scan(&body)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load document %s: %w", name, err)
	}
	return body, nil
}

func (s *PostgresStore) Save(ctx context.Context, name string, data []byte) error {
	if _, err := s.db.Exec(ctx, saveDocument, name, data); err != nil {
		return fmt.Errorf("save document %s: %w", name, err)
	}
	return nil
}
