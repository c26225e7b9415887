// Package cache persists parse summaries in a SQLite database so unchanged
// files skip tree-sitter parsing on the next run. Entries are keyed by file
// path and validated by content hash.
package cache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/deadwoodhq/deadwood/internal/source"
)

// DefaultPath is the cache location relative to the project root.
const DefaultPath = ".deadwood/cache.db"

// Cache is a SQLite-backed summary store. Safe for concurrent use; the
// underlying connection pool is capped at one connection so parallel parse
// workers serialize their writes.
type Cache struct {
	db   *sql.DB
	path string
}

// Open opens (creating if needed) the cache database at path. A database
// with an unknown schema version is dropped and recreated rather than
// migrated: summaries are cheap to rebuild.
func Open(path string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	if err := ensureSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Cache{db: db, path: path}, nil
}

// Get returns the cached summary for path when its stored hash matches.
// A stale hash or undecodable row is a miss.
func (c *Cache) Get(path, hash string) (*source.FileSummary, bool) {
	var storedHash, payload string
	err := c.db.QueryRow(
		"SELECT file_hash, summary FROM summaries WHERE file_path = ?", path,
	).Scan(&storedHash, &payload)
	if err != nil || storedHash != hash {
		return nil, false
	}

	var summary source.FileSummary
	if err := json.Unmarshal([]byte(payload), &summary); err != nil {
		return nil, false
	}
	return &summary, true
}

// Put stores or replaces the summary for path.
func (c *Cache) Put(path, hash string, summary *source.FileSummary) error {
	payload, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to encode summary for %s: %w", path, err)
	}

	_, err = c.db.Exec(
		"INSERT OR REPLACE INTO summaries (file_path, file_hash, summary, updated_at) VALUES (?, ?, ?, ?)",
		path, hash, string(payload), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to store summary for %s: %w", path, err)
	}
	return nil
}

// Prune removes entries for files no longer in the project. Returns the
// number of rows deleted.
func (c *Cache) Prune(keep []string) (int, error) {
	keepSet := make(map[string]struct{}, len(keep))
	for _, p := range keep {
		keepSet[p] = struct{}{}
	}

	rows, err := c.db.Query("SELECT file_path FROM summaries")
	if err != nil {
		return 0, fmt.Errorf("failed to list cached paths: %w", err)
	}
	defer rows.Close()

	var stale []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return 0, err
		}
		if _, ok := keepSet[path]; !ok {
			stale = append(stale, path)
		}
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}

	for _, path := range stale {
		if _, err := c.db.Exec("DELETE FROM summaries WHERE file_path = ?", path); err != nil {
			return 0, fmt.Errorf("failed to prune %s: %w", path, err)
		}
	}
	return len(stale), nil
}

// Count returns the number of cached summaries.
func (c *Cache) Count() (int, error) {
	var n int
	if err := c.db.QueryRow("SELECT COUNT(*) FROM summaries").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count summaries: %w", err)
	}
	return n, nil
}

// Path returns the database file location.
func (c *Cache) Path() string {
	return c.path
}

// Close releases the database handle.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Clear deletes the cache database file. A missing file is not an error.
func Clear(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove cache: %w", err)
	}
	return nil
}

var _ source.SummaryCache = (*Cache)(nil)
