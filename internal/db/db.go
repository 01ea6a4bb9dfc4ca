package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

var (
	db     *sql.DB
	dbPath string
	dbMu   sync.Mutex
)

// GetDB returns the database connection for path, opening it and applying
// the schema on first use. Later calls return the same connection.
func GetDB(path string) (*sql.DB, error) {
	dbMu.Lock()
	defer dbMu.Unlock()

	if db != nil {
		if path != dbPath {
			return nil, fmt.Errorf("database already open at %s", dbPath)
		}
		return db, nil
	}

	conn, err := Open(path)
	if err != nil {
		return nil, err
	}
	db, dbPath = conn, path
	return db, nil
}

// Open opens the database at path and applies the schema. The caller owns
// the returned connection.
func Open(path string) (*sql.DB, error) {
	// Ensure the storage directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One writer at a time; the kv table is tiny
	conn.SetMaxOpenConns(1)

	if err := InitSchema(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return conn, nil
}

// Close closes the database connection
func Close() error {
	dbMu.Lock()
	defer dbMu.Unlock()

	if db == nil {
		return nil
	}
	err := db.Close()
	db, dbPath = nil, ""
	return err
}
