// Package storage bootstraps the local SQLite database for the CLI, wiring
// repositories and applying embedded goose migrations.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"gitreadme/internal/client/migrations"
	"gitreadme/internal/client/repositories/drafts"
	"gitreadme/internal/client/repositories/tokens"
)

// Repositories bundles the local stores backed by one database handle.
type Repositories struct {
	Tokens tokens.Repository
	Drafts drafts.Repository
	DB     *sql.DB
}

// RunMigrations applies all embedded migrations to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens (creating if needed) the local database at dsn, applies
// migrations, and returns wired repositories.
func InitDatabase(ctx context.Context, dsn string) (*Repositories, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Repositories{
		Tokens: tokens.NewSQLiteRepository(db),
		Drafts: drafts.NewSQLiteRepository(db),
		DB:     db,
	}, nil
}

// Close releases the underlying database handle.
func (r *Repositories) Close() error {
	return r.DB.Close()
}
