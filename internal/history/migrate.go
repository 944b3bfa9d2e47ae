package history

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var schemaFiles embed.FS

// migrateSchema applies every pending migration to db. Each migration file runs inside
// its own transaction (NoTxWrap stays false).
//
// The sqlite driver closes the *sql.DB it wraps when the migrator is closed, and db
// belongs to the Repository, so only the embedded source is released here.
func migrateSchema(db *sql.DB) error {
	source, err := iofs.New(schemaFiles, "migrations")
	if err != nil {
		return fmt.Errorf("load embedded migrations: %w", err)
	}
	defer source.Close()

	target, err := sqlite.WithInstance(db, &sqlite.Config{NoTxWrap: false})
	if err != nil {
		return fmt.Errorf("prepare history schema: %w", err)
	}

	migrator, err := migrate.NewWithInstance("iofs", source, "sqlite", target)
	if err != nil {
		return fmt.Errorf("prepare history schema: %w", err)
	}

	if err := migrator.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("upgrade history schema: %w", err)
	}
	return nil
}
