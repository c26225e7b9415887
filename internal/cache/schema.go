package cache

import (
	"database/sql"
	"fmt"
	"time"
)

// schemaVersion identifies the current cache layout. Bumped whenever the
// summary encoding or table shape changes; old caches are discarded, not
// migrated.
const schemaVersion = "1.0"

const createSummariesTable = `
CREATE TABLE IF NOT EXISTS summaries (
	file_path  TEXT PRIMARY KEY,
	file_hash  TEXT NOT NULL,
	summary    TEXT NOT NULL,
	updated_at TEXT NOT NULL
)`

const createMetadataTable = `
CREATE TABLE IF NOT EXISTS cache_metadata (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TEXT NOT NULL
)`

// ensureSchema creates the schema on a fresh database and resets it when the
// stored version does not match the current one.
func ensureSchema(db *sql.DB) error {
	version, err := getSchemaVersion(db)
	if err != nil {
		return err
	}

	switch version {
	case schemaVersion:
		return nil
	case "0":
		return createSchema(db)
	default:
		if err := dropSchema(db); err != nil {
			return err
		}
		return createSchema(db)
	}
}

// createSchema creates all tables in one transaction and records the schema
// version.
func createSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin schema transaction: %w", err)
	}
	defer tx.Rollback() // Safe to call even after commit

	for _, ddl := range []string{createSummariesTable, createMetadataTable} {
		if _, err := tx.Exec(ddl); err != nil {
			return fmt.Errorf("failed to create cache schema: %w", err)
		}
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := tx.Exec(
		"INSERT OR REPLACE INTO cache_metadata (key, value, updated_at) VALUES ('schema_version', ?, ?)",
		schemaVersion, now,
	); err != nil {
		return fmt.Errorf("failed to record schema version: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit schema transaction: %w", err)
	}
	return nil
}

func dropSchema(db *sql.DB) error {
	for _, table := range []string{"summaries", "cache_metadata"} {
		if _, err := db.Exec("DROP TABLE IF EXISTS " + table); err != nil {
			return fmt.Errorf("failed to drop stale cache table %s: %w", table, err)
		}
	}
	return nil
}

// getSchemaVersion reads the stored schema version. Returns "0" for a fresh
// database with no metadata table.
func getSchemaVersion(db *sql.DB) (string, error) {
	var tableExists int
	err := db.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='cache_metadata'",
	).Scan(&tableExists)
	if err != nil {
		return "", fmt.Errorf("failed to check cache_metadata existence: %w", err)
	}
	if tableExists == 0 {
		return "0", nil
	}

	var version string
	err = db.QueryRow("SELECT value FROM cache_metadata WHERE key = 'schema_version'").Scan(&version)
	if err == sql.ErrNoRows {
		return "0", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}
