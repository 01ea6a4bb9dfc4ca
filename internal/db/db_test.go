package db

import (
	"database/sql"
	"path/filepath"
	"testing"
)

func tableExists(t *testing.T, conn *sql.DB, name string) bool {
	t.Helper()
	var count int
	if err := conn.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", name).Scan(&count); err != nil {
		t.Fatalf("failed to query sqlite_master: %v", err)
	}
	return count > 0
}

func schemaVersion(t *testing.T, conn *sql.DB) int {
	t.Helper()
	var v int
	if err := conn.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&v); err != nil {
		t.Fatalf("failed to read schema version: %v", err)
	}
	return v
}

func TestOpen_FreshInstall(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tesseract.db")

	conn, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer conn.Close()

	for _, table := range []string{"kv", "mission_logs", "schema_version"} {
		if !tableExists(t, conn, table) {
			t.Errorf("expected table %s to exist", table)
		}
	}
	if v := schemaVersion(t, conn); v != len(migrations) {
		t.Errorf("expected schema version %d, got %d", len(migrations), v)
	}
}

func TestOpen_MigratesOlderDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tesseract.db")

	// Simulate a database created before the lifecycle log existed.
	old, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("failed to open: %v", err)
	}
	if err := createVersionTable(old); err != nil {
		t.Fatalf("createVersionTable failed: %v", err)
	}
	tx, _ := old.Begin()
	if err := migrationV1(tx); err != nil {
		t.Fatalf("migrationV1 failed: %v", err)
	}
	tx.Exec("INSERT INTO schema_version (version) VALUES (1)")
	tx.Exec("INSERT INTO kv (key, value) VALUES ('token', 'abc')")
	if err := tx.Commit(); err != nil {
		t.Fatalf("commit failed: %v", err)
	}
	old.Close()

	conn, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer conn.Close()

	if !tableExists(t, conn, "mission_logs") {
		t.Error("expected mission_logs to be created by migration")
	}
	var token string
	if err := conn.QueryRow("SELECT value FROM kv WHERE key='token'").Scan(&token); err != nil || token != "abc" {
		t.Errorf("expected existing kv rows to survive, got %q (%v)", token, err)
	}
	if v := schemaVersion(t, conn); v != 2 {
		t.Errorf("expected schema version 2, got %d", v)
	}
}

func TestGetDB_ReusesConnection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tesseract.db")
	t.Cleanup(func() { Close() })

	first, err := GetDB(path)
	if err != nil {
		t.Fatalf("GetDB failed: %v", err)
	}
	second, err := GetDB(path)
	if err != nil {
		t.Fatalf("GetDB failed: %v", err)
	}
	if first != second {
		t.Error("expected the same connection")
	}

	if _, err := GetDB(filepath.Join(t.TempDir(), "other.db")); err == nil {
		t.Error("expected error opening a second path")
	}
}
