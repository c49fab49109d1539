// Package store provides the per-user, per-feature document store the
// assistant appends interaction records to. Records are append-only: this
// backend never updates or deletes them, and the core never reads them back.
package store

import (
	"context"
	"time"
)

// Record is one interaction record handed off to the store, which owns its
// durability from then on.
type Record struct {
	// ID is the record identifier, minted by the caller before the write.
	ID string `json:"id"`

	// UserID is the authenticated caller the record belongs to.
	UserID string `json:"user_id"`

	// Collection is the per-feature collection name (e.g. "firs",
	// "chat_history").
	Collection string `json:"collection"`

	// Fields is the document body: input and output snapshots plus any
	// task-specific metadata.
	Fields map[string]any `json:"fields"`

	// CreatedAt is the record creation timestamp.
	CreatedAt time.Time `json:"created_at"`
}

// Store appends interaction records. Implementations must be safe for
// concurrent use.
type Store interface {
	// Append writes one record. The write is best-effort from the
	// caller's perspective; the recorder decides what a failure means.
	Append(ctx context.Context, rec Record) error

	// Close releases backend resources.
	Close() error
}
