package kv

import (
	"context"
	"database/sql"
	"fmt"

	"newsdesk/internal/dbx"
)

// PostgresRepository implements Repository on a shared Postgres instance,
// for newsroom workstations that keep local editorial state on a central
// database instead of a per-machine file.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// EnsureSchema creates the backing table when it does not exist yet.
func EnsureSchema(ctx context.Context, db dbx.DBTX) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS local_state (
			key   TEXT PRIMARY KEY,
			value BYTEA NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to ensure local_state schema: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM local_state WHERE key = $1`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get local_state[%s]: %w", key, err)
	}
	return value, nil
}

func (r *PostgresRepository) Set(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO local_state (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set local_state[%s]: %w", key, err)
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM local_state WHERE key = $1`, key)
	if err != nil {
		return fmt.Errorf("failed to delete local_state[%s]: %w", key, err)
	}
	return nil
}

func (r *PostgresRepository) ListPrefix(ctx context.Context, prefix string) (map[string][]byte, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT key, value FROM local_state WHERE key LIKE $1 ESCAPE '\'`, likePattern(prefix))
	if err != nil {
		return nil, fmt.Errorf("failed to list local_state: %w", err)
	}
	defer rows.Close()

	return collectPairs(rows)
}
