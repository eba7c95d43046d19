package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"docsorter/internal/ports"

	_ "modernc.org/sqlite"
)

const schemaVersion = "1"

// Cache implements ports.TextCache using SQLite
type Cache struct {
	db     *sql.DB
	dbPath string
}

// Ensure Cache implements TextCache
var _ ports.TextCache = (*Cache)(nil)

// DefaultPath returns the cache location under the XDG data directory.
func DefaultPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "docsorter", "text-cache.db")
}

// Open opens or creates the cache database at dbPath. An empty path means
// DefaultPath. Entries written under another schema version are discarded.
func Open(dbPath string) (*Cache, error) {
	if dbPath == "" {
		dbPath = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Workers share one connection; SQLite serializes writers anyway.
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA temp_store = MEMORY;

		CREATE TABLE IF NOT EXISTS texts (
			fingerprint TEXT PRIMARY KEY,
			lines TEXT NOT NULL,
			created INTEGER NOT NULL
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

	c := &Cache{db: db, dbPath: dbPath}
	if err := c.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to update metadata: %w", err)
	}
	return c, nil
}

// Path returns the database file location
func (c *Cache) Path() string {
	return c.dbPath
}

// Close closes the database connection
func (c *Cache) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// Lookup returns the lines stored for fingerprint.
func (c *Cache) Lookup(ctx context.Context, fingerprint string) ([]string, bool, error) {
	var raw string
	err := c.db.QueryRowContext(ctx, "SELECT lines FROM texts WHERE fingerprint = ?", fingerprint).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to query cache: %w", err)
	}

	var lines []string
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		return nil, false, fmt.Errorf("corrupt cache entry %s: %w", fingerprint, err)
	}
	return lines, true, nil
}

// Store records lines for fingerprint, replacing any previous entry.
func (c *Cache) Store(ctx context.Context, fingerprint string, lines []string) error {
	if lines == nil {
		lines = []string{}
	}
	raw, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("failed to encode lines: %w", err)
	}
	_, err = c.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO texts (fingerprint, lines, created) VALUES (?, ?, ?)",
		fingerprint, string(raw), time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to store cache entry: %w", err)
	}
	return nil
}

// Count returns the number of cached documents
func (c *Cache) Count(ctx context.Context) (int, error) {
	var n int
	if err := c.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM texts").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count cache entries: %w", err)
	}
	return n, nil
}

// Clear removes every cached document and returns how many were dropped.
func (c *Cache) Clear(ctx context.Context) (int64, error) {
	res, err := c.db.ExecContext(ctx, "DELETE FROM texts")
	if err != nil {
		return 0, fmt.Errorf("failed to clear cache: %w", err)
	}
	return res.RowsAffected()
}

// migrate drops entries written under another schema version
func (c *Cache) migrate() error {
	var version string
	err := c.db.QueryRow("SELECT value FROM meta WHERE key = 'schema_version'").Scan(&version)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	if version == schemaVersion {
		return nil
	}
	if _, err := c.db.Exec("DELETE FROM texts"); err != nil {
		return err
	}
	_, err = c.db.Exec("INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)", schemaVersion)
	return err
}
