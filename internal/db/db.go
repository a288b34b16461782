package db

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/AdamBeresnev/tournament-registration/migrations"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// Immediate tx locking makes BEGIN take the write lock, so guard-then-write sequences
// inside one transaction are serialized against each other.
const dsnOptions = "_journal_mode=WAL&_foreign_keys=on&_busy_timeout=5000&_txlock=immediate"

func DSN(path string) string {
	return fmt.Sprintf("file:%s?%s", path, dsnOptions)
}

func InitDB(path string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite3", DSN(path))
	if err != nil {
		return nil, fmt.Errorf("connect to db: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	slog.Info("database connected", "path", path)
	return db, nil
}

// InitMemoryDB opens a private in-memory database. SQLite gives every connection its
// own memory database, so the pool is pinned to a single connection.
func InitMemoryDB() (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite3", "file::memory:?_foreign_keys=on&_txlock=immediate")
	if err != nil {
		return nil, fmt.Errorf("connect to in-memory db: %w", err)
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

// RunMigrations applies every embedded migration that has not been applied yet.
// The migrate instance is not closed, closing it would close db as well.
func RunMigrations(db *sql.DB) error {
	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("open migration source: %w", err)
	}

	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("create migrate driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("read migration version: %w", err)
	}
	slog.Info("migrations applied", "version", version, "dirty", dirty)
	return nil
}
