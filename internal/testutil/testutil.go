// Package testutil holds helpers shared by package tests.
package testutil

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/previoip/srcds-resource-manager/internal/domain"
	"github.com/previoip/srcds-resource-manager/internal/store"
	"github.com/previoip/srcds-resource-manager/internal/store/migrations"
)

// NewTestDB creates an in-memory SQLite database with migrations applied.
// The database is automatically closed when the test finishes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err, "failed to open in-memory database")
	db.SetMaxOpenConns(1)

	t.Cleanup(func() {
		_ = db.Close()
	})

	_, err = db.Exec("PRAGMA foreign_keys = ON")
	require.NoError(t, err)

	err = migrations.Run(db)
	require.NoError(t, err, "failed to run migrations")

	return db
}

// NewTestLedger wraps NewTestDB in a store.Store.
func NewTestLedger(t *testing.T) *store.Store {
	t.Helper()
	return store.NewWithDB(NewTestDB(t))
}

// SeedRun inserts a finished run holding files and returns it.
func SeedRun(t *testing.T, l domain.Ledger, platform string, status domain.RunStatus, files ...domain.InstalledFile) domain.InstallRun {
	t.Helper()

	run, err := l.BeginRun(platform)
	require.NoError(t, err)

	for _, f := range files {
		f.RunID = run.ID
		require.NoError(t, l.RecordFile(f), "failed to seed file: %+v", f)
	}

	require.NoError(t, l.FinishRun(run.ID, status))
	return run
}
