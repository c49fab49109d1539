package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite" // pure-Go sqlite driver
)

// recordsSchema creates the append-only records table. The (user_id,
// collection) index matches the per-user, per-feature access pattern of the
// companion frontend; this backend itself only ever inserts.
const recordsSchema = `
CREATE TABLE IF NOT EXISTS records (
	id          TEXT PRIMARY KEY,
	user_id     TEXT NOT NULL,
	collection  TEXT NOT NULL,
	fields      TEXT NOT NULL,
	created_at  TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_records_user_collection
	ON records(user_id, collection);
`

// SQLiteStore persists records in a local SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the database at path and ensures
// the records schema exists. Use ":memory:" for an ephemeral store.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	// SQLite allows a single writer; serialize access through one
	// connection rather than surfacing SQLITE_BUSY to callers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(recordsSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create records schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Append inserts one record.
func (s *SQLiteStore) Append(ctx context.Context, rec Record) error {
	fields, err := json.Marshal(rec.Fields)
	if err != nil {
		return fmt.Errorf("marshal record fields: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO records (id, user_id, collection, fields, created_at) VALUES (?, ?, ?, ?, ?)`,
		rec.ID, rec.UserID, rec.Collection, string(fields), rec.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("insert record: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Count returns how many records a user holds in a collection. Exposed for
// tests and operational checks; the request path never reads.
func (s *SQLiteStore) Count(ctx context.Context, userID, collection string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM records WHERE user_id = ? AND collection = ?`,
		userID, collection).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return n, nil
}
