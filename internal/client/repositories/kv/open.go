package kv

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pressly/goose/v3"

	"newsdesk/internal/client/migrations"
	"newsdesk/internal/dbx"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Open connects the local state database and returns a ready Repository.
// A postgres:// (or postgresql://) DSN selects the shared Postgres backend;
// anything else is treated as a SQLite file path.
func Open(ctx context.Context, dsn string) (*sql.DB, Repository, error) {
	if isPostgresDSN(dsn) {
		db, err := sql.Open("pgx", dsn)
		if err != nil {
			return nil, nil, fmt.Errorf("opening postgres state db: %w", err)
		}
		err = dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
			return EnsureSchema(ctx, tx)
		})
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return db, NewPostgresRepository(db), nil
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("opening sqlite state db: %w", err)
	}
	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return db, NewSQLiteRepository(db), nil
}

func isPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("setting goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}
