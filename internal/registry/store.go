// Package registry implements the persistent record store for STARLOG.
//
// It exposes a small collection/key/value contract (Store) and a SQLite
// implementation of it. Records cross the boundary as structured JSON,
// never as pre-rendered text, so callers decode into their own types and
// rendering stays a presentation concern.
package registry

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DBFileName is the SQLite file every collection lives in, under DataDir.
const DBFileName = "registry.db"

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// ErrNotFound is returned when a record or collection does not exist.
var ErrNotFound = errors.New("registry: not found")

// ─── Contract ────────────────────────────────────────────────────────────────

// Store is the persistence contract the rest of STARLOG programs against.
//
// Collections are cheap named buckets (one per project registry plus the
// global ones). Reading a collection that was never created yields the
// empty state, not an error; reading a missing record yields ErrNotFound.
type Store interface {
	// CreateCollection ensures the named collection exists. Idempotent.
	CreateCollection(name string) error
	// CollectionExists reports whether the named collection was created.
	CollectionExists(name string) (bool, error)
	// Put upserts a record, marshaling value to JSON. The collection is
	// created on demand.
	Put(collection, key string, value any) error
	// Get unmarshals the record stored under key into out.
	// Returns ErrNotFound when the record does not exist.
	Get(collection, key string, out any) error
	// GetAll returns every record in the collection keyed by record key.
	// A missing collection yields an empty map.
	GetAll(collection string) (map[string]json.RawMessage, error)
	// Delete removes a record. Returns ErrNotFound when it does not exist.
	Delete(collection, key string) error
	// Count reports the number of records in the collection.
	Count(collection string) (int, error)
	// Close releases the underlying storage.
	Close() error
}

// ─── Config ──────────────────────────────────────────────────────────────────

// Config holds store configuration.
type Config struct {
	DataDir string
}

// DefaultConfig returns the default store configuration.
// The data directory can be overridden with STARLOG_DATA_DIR.
func DefaultConfig() Config {
	if dir := os.Getenv("STARLOG_DATA_DIR"); dir != "" {
		return Config{DataDir: dir}
	}
	home, _ := os.UserHomeDir()
	return Config{DataDir: filepath.Join(home, ".starlog")}
}

// ─── SQLite store ────────────────────────────────────────────────────────────

// SQLiteStore is the Store implementation backed by a single SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// New opens (creating if needed) the registry database under cfg.DataDir,
// applies the SQLite pragmas, and runs migrations.
func New(cfg Config) (*SQLiteStore, error) {
	if err := os.MkdirAll(cfg.DataDir, 0700); err != nil {
		return nil, fmt.Errorf("registry: create data dir: %w", err)
	}

	dbPath := filepath.Join(cfg.DataDir, DBFileName)
	db, err := openDB("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("registry: open database: %w", err)
	}

	// SQLite performance pragmas
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return nil, fmt.Errorf("registry: pragma %q: %w", p, err)
		}
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("registry: migration: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS collections (
			name       TEXT PRIMARY KEY,
			created_at TEXT NOT NULL DEFAULT (datetime('now'))
		);

		CREATE TABLE IF NOT EXISTS records (
			collection TEXT NOT NULL,
			key        TEXT NOT NULL,
			value      TEXT NOT NULL,
			created_at TEXT NOT NULL DEFAULT (datetime('now')),
			updated_at TEXT NOT NULL DEFAULT (datetime('now')),
			PRIMARY KEY (collection, key),
			FOREIGN KEY (collection) REFERENCES collections(name) ON DELETE CASCADE
		);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return err
	}
	return nil
}

// ─── Operations ──────────────────────────────────────────────────────────────

// CreateCollection ensures the named collection exists.
func (s *SQLiteStore) CreateCollection(name string) error {
	if name == "" {
		return fmt.Errorf("registry: empty collection name")
	}
	_, err := s.db.Exec(`INSERT OR IGNORE INTO collections (name) VALUES (?)`, name)
	if err != nil {
		return fmt.Errorf("registry: create collection %q: %w", name, err)
	}
	return nil
}

// CollectionExists reports whether the named collection was created.
func (s *SQLiteStore) CollectionExists(name string) (bool, error) {
	var one int
	err := s.db.QueryRow(`SELECT 1 FROM collections WHERE name = ?`, name).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("registry: check collection %q: %w", name, err)
	}
	return true, nil
}

// Put upserts a record, creating the collection on demand.
func (s *SQLiteStore) Put(collection, key string, value any) error {
	if err := s.CreateCollection(collection); err != nil {
		return err
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("registry: marshal record %s/%s: %w", collection, key, err)
	}
	_, err = s.db.Exec(`
		INSERT INTO records (collection, key, value)
		VALUES (?, ?, ?)
		ON CONFLICT (collection, key) DO UPDATE SET
			value      = excluded.value,
			updated_at = datetime('now')
	`, collection, key, string(data))
	if err != nil {
		return fmt.Errorf("registry: put record %s/%s: %w", collection, key, err)
	}
	return nil
}

// Get unmarshals the record stored under key into out.
func (s *SQLiteStore) Get(collection, key string, out any) error {
	var data string
	err := s.db.QueryRow(
		`SELECT value FROM records WHERE collection = ? AND key = ?`,
		collection, key,
	).Scan(&data)
	if err == sql.ErrNoRows {
		return fmt.Errorf("registry: record %s/%s: %w", collection, key, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("registry: get record %s/%s: %w", collection, key, err)
	}
	if err := json.Unmarshal([]byte(data), out); err != nil {
		return fmt.Errorf("registry: unmarshal record %s/%s: %w", collection, key, err)
	}
	return nil
}

// GetAll returns every record in the collection keyed by record key.
func (s *SQLiteStore) GetAll(collection string) (map[string]json.RawMessage, error) {
	rows, err := s.db.Query(
		`SELECT key, value FROM records WHERE collection = ? ORDER BY key`,
		collection,
	)
	if err != nil {
		return nil, fmt.Errorf("registry: list collection %q: %w", collection, err)
	}
	defer rows.Close()

	out := make(map[string]json.RawMessage)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("registry: scan collection %q: %w", collection, err)
		}
		out[key] = json.RawMessage(value)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("registry: iterate collection %q: %w", collection, err)
	}
	return out, nil
}

// Delete removes a record.
func (s *SQLiteStore) Delete(collection, key string) error {
	res, err := s.db.Exec(
		`DELETE FROM records WHERE collection = ? AND key = ?`,
		collection, key,
	)
	if err != nil {
		return fmt.Errorf("registry: delete record %s/%s: %w", collection, key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("registry: delete record %s/%s: %w", collection, key, err)
	}
	if n == 0 {
		return fmt.Errorf("registry: record %s/%s: %w", collection, key, ErrNotFound)
	}
	return nil
}

// Count reports the number of records in the collection.
func (s *SQLiteStore) Count(collection string) (int, error) {
	var n int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM records WHERE collection = ?`,
		collection,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("registry: count collection %q: %w", collection, err)
	}
	return n, nil
}
