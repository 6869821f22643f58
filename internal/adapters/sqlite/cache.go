// Package sqlite persists fetched content documents in a SQLite database.
// It is the persistent tier of the content cache.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"scriptorium/internal/ports"
)

const schemaVersion = "1"

// DatabaseName is the file created inside the data directory
const DatabaseName = "content-cache.db"

// CacheTier implements ports.CacheTier using SQLite
type CacheTier struct {
	db     *sql.DB
	dbPath string
}

// Ensure CacheTier implements ports.CacheTier
var _ ports.CacheTier = (*CacheTier)(nil)

// Open opens (or creates) the cache database inside dataDir
func Open(dataDir string) (*CacheTier, error) {
	dbPath := filepath.Join(dataDir, DatabaseName)

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	// WAL lets the TUI and the CLI share the cache
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA temp_store = MEMORY;

		CREATE TABLE IF NOT EXISTS entries (
			path TEXT PRIMARY KEY,
			data BLOB NOT NULL,
			timestamp INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	c := &CacheTier{db: db, dbPath: dbPath}
	if err := c.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to update metadata: %w", err)
	}
	return c, nil
}

// Close closes the database connection
func (c *CacheTier) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// Path returns the database file path
func (c *CacheTier) Path() string {
	return c.dbPath
}

// migrate drops every entry written by another schema version
func (c *CacheTier) migrate() error {
	var version string
	err := c.db.QueryRow("SELECT value FROM meta WHERE key = 'schema_version'").Scan(&version)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	if version == schemaVersion {
		return nil
	}

	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM entries`); err != nil {
		tx.Rollback()
		return err
	}
	if _, err := tx.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)`, schemaVersion); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// Load returns the entry stored for path, or ports.ErrCacheMiss
func (c *CacheTier) Load(ctx context.Context, path string) (ports.CacheEntry, error) {
	var e ports.CacheEntry
	err := c.db.QueryRowContext(ctx, `
		SELECT data, timestamp FROM entries WHERE path = ?
	`, path).Scan(&e.Data, &e.Timestamp)

	if errors.Is(err, sql.ErrNoRows) {
		return ports.CacheEntry{}, ports.ErrCacheMiss
	}
	if err != nil {
		return ports.CacheEntry{}, err
	}
	return e, nil
}

// Save inserts or replaces the entry for path
func (c *CacheTier) Save(ctx context.Context, path string, entry ports.CacheEntry) error {
	_, err := c.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO entries (path, data, timestamp)
		VALUES (?, ?, ?)
	`, path, entry.Data, entry.Timestamp)
	return err
}

// Delete removes the entry for path
func (c *CacheTier) Delete(ctx context.Context, path string) error {
	_, err := c.db.ExecContext(ctx, `DELETE FROM entries WHERE path = ?`, path)
	return err
}

// Stats describes the stored entries
type Stats struct {
	Entries int
	Bytes   int64
	Oldest  int64
	Newest  int64
}

// Stats counts the stored entries
func (c *CacheTier) Stats(ctx context.Context) (Stats, error) {
	var (
		s              Stats
		bytes          sql.NullInt64
		oldest, newest sql.NullInt64
	)
	err := c.db.QueryRowContext(ctx, `
		SELECT COUNT(*), SUM(LENGTH(data)), MIN(timestamp), MAX(timestamp) FROM entries
	`).Scan(&s.Entries, &bytes, &oldest, &newest)
	if err != nil {
		return Stats{}, err
	}
	s.Bytes = bytes.Int64
	s.Oldest = oldest.Int64
	s.Newest = newest.Int64
	return s, nil
}

// Clear removes every entry
func (c *CacheTier) Clear(ctx context.Context) (int64, error) {
	res, err := c.db.ExecContext(ctx, `DELETE FROM entries`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
