package snapshot

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore is the durable snapshot backend: one row per family, the
// field list stored as a JSON array. Timestamps are RFC3339 strings,
// which round-trip reliably under SQLite's TEXT affinity.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (and if needed creates) the snapshot database at
// path. The caller owns the returned store and must Close it.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping snapshot db: %w", err)
	}

	const ddl = `CREATE TABLE IF NOT EXISTS header_snapshots (
		family     TEXT PRIMARY KEY,
		fields     TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create snapshot table: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Load returns the stored field names for a family; absence is a normal
// condition, not an error.
func (s *SQLiteStore) Load(ctx context.Context, family string) ([]string, bool, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT fields FROM header_snapshots WHERE family = ?`, family).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load snapshot %q: %w", family, err)
	}

	var fields []string
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return nil, false, fmt.Errorf("decode snapshot %q: %w", family, err)
	}
	return fields, true, nil
}

// Save upserts the family's snapshot, replacing any prior field list.
func (s *SQLiteStore) Save(ctx context.Context, family string, fields []string) error {
	raw, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encode snapshot %q: %w", family, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO header_snapshots (family, fields, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(family) DO UPDATE SET fields = excluded.fields, updated_at = excluded.updated_at`,
		family, string(raw), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("save snapshot %q: %w", family, err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
