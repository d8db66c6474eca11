package migrations_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/previoip/srcds-resource-manager/internal/store/migrations"
)

func openMemory(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestLoad(t *testing.T) {
	all, err := migrations.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if len(all) < 2 {
		t.Fatalf("expected at least 2 migrations, got %d", len(all))
	}

	for i := 1; i < len(all); i++ {
		if all[i].Version <= all[i-1].Version {
			t.Errorf("migration %d (v%d) not after %d (v%d)",
				i, all[i].Version, i-1, all[i-1].Version)
		}
	}

	if all[0].Description != "install_runs" {
		t.Errorf("first migration = %q, want install_runs", all[0].Description)
	}
}

func TestRunIdempotent(t *testing.T) {
	db := openMemory(t)

	if err := migrations.Run(db); err != nil {
		t.Fatalf("first run: %v", err)
	}

	v1, err := migrations.CurrentVersion(db)
	if err != nil {
		t.Fatalf("get version: %v", err)
	}

	if err := migrations.Run(db); err != nil {
		t.Fatalf("second run: %v", err)
	}

	v2, err := migrations.CurrentVersion(db)
	if err != nil {
		t.Fatalf("get version: %v", err)
	}

	if v1 != v2 {
		t.Errorf("version changed: %d -> %d", v1, v2)
	}
}

func TestPending(t *testing.T) {
	db := openMemory(t)

	all, _ := migrations.Load()

	pending, err := migrations.Pending(db)
	if err != nil {
		t.Fatalf("pending before: %v", err)
	}
	if len(pending) != len(all) {
		t.Errorf("expected %d pending, got %d", len(all), len(pending))
	}

	if err := migrations.Run(db); err != nil {
		t.Fatalf("run: %v", err)
	}
	pending, _ = migrations.Pending(db)
	if len(pending) != 0 {
		t.Errorf("expected 0 pending, got %d", len(pending))
	}
}

func TestTablesCreated(t *testing.T) {
	db := openMemory(t)

	if err := migrations.Run(db); err != nil {
		t.Fatalf("run: %v", err)
	}

	tables := []string{"schema_migrations", "install_runs", "installed_files"}
	for _, table := range tables {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err == sql.ErrNoRows {
			t.Errorf("table %s not created", table)
		} else if err != nil {
			t.Errorf("check %s: %v", table, err)
		}
	}
}

func TestInstalledFilesColumns(t *testing.T) {
	db := openMemory(t)

	if err := migrations.Run(db); err != nil {
		t.Fatalf("run: %v", err)
	}

	for _, col := range []string{"run_id", "entity_id", "kind", "size_bytes", "error"} {
		var count int
		err := db.QueryRow(`
			SELECT COUNT(*) FROM pragma_table_info('installed_files') WHERE name = ?
		`, col).Scan(&count)
		if err != nil {
			t.Fatalf("check %s: %v", col, err)
		}
		if count != 1 {
			t.Errorf("%s column should exist", col)
		}
	}
}
