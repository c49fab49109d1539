// Package record writes best-effort interaction records to the per-user
// store. A failed audit write never fails the user-facing request: the
// outcome makes "not recorded" explicit instead of being silently swallowed.
package record

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/shubhamrsharma28/Lawgorythm-Legal-Assistant/metrics"
	"github.com/shubhamrsharma28/Lawgorythm-Legal-Assistant/store"
)

// Outcome reports what happened to one record attempt.
type Outcome struct {
	// RecordID is the record identifier. It is minted locally before the
	// write, so callers that surface it (fir_id) always get a stable id
	// regardless of store health.
	RecordID string

	// Recorded is false when the store write failed and the record only
	// exists as a log line.
	Recorded bool
}

// Recorder appends interaction records to a store.
type Recorder struct {
	store  store.Store
	logger *slog.Logger
	now    func() time.Time
}

// RecorderOption configures a Recorder.
type RecorderOption func(*Recorder)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) RecorderOption {
	return func(r *Recorder) {
		r.logger = logger
	}
}

// WithClock overrides the timestamp source, for tests.
func WithClock(now func() time.Time) RecorderOption {
	return func(r *Recorder) {
		r.now = now
	}
}

// NewRecorder creates a recorder over the given store.
func NewRecorder(s store.Store, opts ...RecorderOption) *Recorder {
	r := &Recorder{
		store:  s,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Record appends one interaction record. Store failures are logged and
// counted, never propagated; the caller proceeds with the locally minted id.
func (r *Recorder) Record(ctx context.Context, userID, collection string, fields map[string]any) Outcome {
	out := Outcome{RecordID: uuid.New().String()}

	rec := store.Record{
		ID:         out.RecordID,
		UserID:     userID,
		Collection: collection,
		Fields:     fields,
		CreatedAt:  r.now().UTC(),
	}

	if err := r.store.Append(ctx, rec); err != nil {
		metrics.RecordFailuresTotal.Inc()
		r.logger.Warn("Failed to write interaction record",
			"record_id", rec.ID,
			"user_id", userID,
			"collection", collection,
			"error", err)
		return out
	}

	out.Recorded = true
	r.logger.Debug("Interaction record written",
		"record_id", rec.ID,
		"collection", collection)
	return out
}
