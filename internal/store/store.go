// Package store keeps the install ledger: one row per `install` run and one
// per file that run fetched, in a local SQLite database.
package store

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"

	"github.com/previoip/srcds-resource-manager/internal/domain"
	"github.com/previoip/srcds-resource-manager/internal/log"
	"github.com/previoip/srcds-resource-manager/internal/paths"
	"github.com/previoip/srcds-resource-manager/internal/store/migrations"
)

// Store wraps a SQLite database connection for the install ledger.
// It implements domain.Ledger.
type Store struct {
	db     *sql.DB
	path   string
	logger domain.Logger
}

// DBPath is the default ledger location.
func DBPath() string {
	return paths.LedgerPath()
}

// New opens the database at path and runs any pending migrations.
func New(path string, logger domain.Logger) (*Store, error) {
	if logger == nil {
		logger = log.NopLogger{}
	}
	logger.Debug("store: opening database at %s", path)

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err = configureSQLite(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("configure database: %w", err)
	}

	setDBPermissions(path)

	if err = migrations.Run(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	logger.Debug("store: database ready")
	return &Store{db: db, path: path, logger: logger}, nil
}

// NewWithDB creates a Store from an existing, migrated connection.
func NewWithDB(db *sql.DB) *Store {
	return &Store{db: db, logger: log.NopLogger{}}
}

// DB returns the underlying database connection.
func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// configureSQLite pins the pool to one connection so ":memory:" databases
// and PRAGMAs stay consistent, and turns on foreign keys.
func configureSQLite(db *sql.DB) error {
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA journal_mode = WAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("%s: %w", pragma, err)
		}
	}
	return nil
}

// setDBPermissions sets restrictive file permissions on the database and its WAL/SHM files.
func setDBPermissions(path string) {
	if path == ":memory:" {
		return
	}
	_ = os.Chmod(path, 0600)
	_ = os.Chmod(path+"-wal", 0600)
	_ = os.Chmod(path+"-shm", 0600)
}
