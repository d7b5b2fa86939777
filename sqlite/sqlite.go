// Package sqlite provides SQLite-based storage implementations for mdubot services.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DB represents a SQLite database connection.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB creates a new DB instance with the given path.
// Use ":memory:" for an in-memory database.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open opens the database connection and creates the schema if needed.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit to one connection.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Wait 5 seconds before failing on lock contention instead of returning
	// "database is locked" immediately.
	if _, err := conn.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}

	// WAL mode for file-based databases: faster writes and concurrent reads
	// during a crawl. Not supported for in-memory databases.
	if db.path != ":memory:" {
		if _, err := conn.Exec("PRAGMA journal_mode = WAL"); err != nil {
			conn.Close()
			return fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	db.db = conn

	if err := db.createSchema(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext executes a statement that doesn't return rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// Stats returns database statistics.
func (db *DB) Stats() sql.DBStats {
	return db.db.Stats()
}

// createSchema creates the database tables if they don't exist.
// Chunks reference their owner by ID without a foreign key because the owner
// can live in either the courses or the programs table.
func (db *DB) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS courses (
			id TEXT PRIMARY KEY,
			source_id INTEGER NOT NULL,
			code TEXT NOT NULL DEFAULT '',
			name TEXT NOT NULL DEFAULT '',
			active INTEGER NOT NULL DEFAULT 1,
			valid_from TEXT NOT NULL DEFAULT '',
			url TEXT NOT NULL,
			details TEXT NOT NULL DEFAULT '{}',
			sections TEXT NOT NULL DEFAULT '{}',
			content_hash TEXT NOT NULL DEFAULT '',
			crawled_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_courses_code ON courses(code);
		CREATE INDEX IF NOT EXISTS idx_courses_source_id ON courses(source_id);

		CREATE TABLE IF NOT EXISTS programs (
			id TEXT PRIMARY KEY,
			source_id INTEGER NOT NULL,
			code TEXT NOT NULL DEFAULT '',
			name TEXT NOT NULL DEFAULT '',
			active INTEGER NOT NULL DEFAULT 1,
			valid_from TEXT NOT NULL DEFAULT '',
			url TEXT NOT NULL,
			languages TEXT NOT NULL DEFAULT '[]',
			details TEXT NOT NULL DEFAULT '{}',
			sections TEXT NOT NULL DEFAULT '{}',
			goals TEXT NOT NULL DEFAULT '{}',
			years TEXT NOT NULL DEFAULT '{}',
			content_hash TEXT NOT NULL DEFAULT '',
			crawled_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_programs_code ON programs(code);
		CREATE INDEX IF NOT EXISTS idx_programs_source_id ON programs(source_id);

		CREATE TABLE IF NOT EXISTS chunks (
			id TEXT PRIMARY KEY,
			owner_id TEXT NOT NULL,
			kind TEXT NOT NULL,
			code TEXT NOT NULL DEFAULT '',
			name TEXT NOT NULL DEFAULT '',
			content TEXT NOT NULL,
			embedding BLOB,
			source_url TEXT NOT NULL DEFAULT '',
			position INTEGER NOT NULL DEFAULT 0
		);

		CREATE INDEX IF NOT EXISTS idx_chunks_owner_id ON chunks(owner_id);
		CREATE INDEX IF NOT EXISTS idx_chunks_code ON chunks(code);
	`

	_, err := db.db.Exec(schema)
	return err
}
