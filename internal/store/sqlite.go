package store

import (
	"database/sql"
	"embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var clientMigrations embed.FS

// openClientDB opens (or creates) the client-side SQLite database at path
// and applies the embedded sync-state migrations. ":memory:" is accepted
// for tests.
//
// WAL journaling plus a busy timeout keeps the single-row state table
// usable when a background sync cycle and a foreground mutation commit at
// nearly the same time.
func openClientDB(path string) (*sql.DB, error) {
	if path == "" {
		path = ":memory:"
	}

	dsn := fmt.Sprintf("file:%s?_journal=WAL&_busy_timeout=5000&_fk=1", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	// The single-row table is mutated by concurrent goroutines; a single
	// connection serialises writes at the driver level.
	db.SetMaxOpenConns(1)

	if err := migrateClientDB(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

func migrateClientDB(db *sql.DB) error {
	goose.SetBaseFS(clientMigrations)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("migration error setting dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
