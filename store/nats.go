package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

const (
	// recordStreamName is the JetStream stream holding interaction records.
	recordStreamName = "ARGUMATE_RECORDS"

	// recordSubjectPrefix prefixes per-collection subjects, e.g.
	// records.chat_history.
	recordSubjectPrefix = "records."
)

// NATSStore publishes records to a JetStream stream, one subject per
// collection. Durability is delegated to the stream's retention settings.
type NATSStore struct {
	nc *nats.Conn
	js jetstream.JetStream
}

// NewNATSStore connects to the given NATS URL and ensures the records
// stream exists.
func NewNATSStore(ctx context.Context, url string) (*NATSStore, error) {
	nc, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("create jetstream context: %w", err)
	}

	_, err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     recordStreamName,
		Subjects: []string{recordSubjectPrefix + ">"},
		Storage:  jetstream.FileStorage,
	})
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("ensure records stream: %w", err)
	}

	return &NATSStore{nc: nc, js: js}, nil
}

// Append publishes one record with JetStream acknowledgement.
func (s *NATSStore) Append(ctx context.Context, rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	if _, err := s.js.Publish(ctx, recordSubjectPrefix+rec.Collection, data); err != nil {
		return fmt.Errorf("publish record: %w", err)
	}
	return nil
}

// Close drains the connection, flushing pending publishes.
func (s *NATSStore) Close() error {
	return s.nc.Drain()
}
