// Package store opens connections to the embedded SQLite database.
//
// Unlike a server database there is no pool to manage: each request gets a
// fresh connection to the single database file and closes it before the
// response is returned. SQLite serializes concurrent writers itself; the
// busy_timeout pragma makes contending writers wait instead of failing
// immediately.
package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Provider hands out per-request connections to a fixed database path.
type Provider struct {
	path string
}

// NewProvider creates a provider bound to the given SQLite file path.
func NewProvider(path string) *Provider {
	return &Provider{path: path}
}

// Connect opens a fresh connection for one request.
// The caller owns the connection and must close it on every exit path.
func (p *Provider) Connect() (*sql.DB, error) {
	return Open(p.path)
}

// Open creates or opens a SQLite database at the given path.
//
// The connection is configured with:
//   - a single open connection (SQLite supports one writer at a time)
//   - 5-second busy timeout for lock contention
//   - foreign key enforcement
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Verify connection works
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	return db, nil
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}
