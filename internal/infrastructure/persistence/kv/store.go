// Package kv provides the key-value store abstraction that backs every
// workshop entity (sessions, the current simulation, attack records, scores).
package kv

import (
	"context"
	"encoding/json"
	"errors"
)

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("kv: key not found")

// Entry is a raw key-value pair returned by prefix scans.
type Entry struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

// Store is the persistence contract for all workshop state. Values are JSON
// documents; callers own the key namespace (session:, user:, attack:, score:,
// current_simulation). Implementations do not provide transactions: every
// mutation is an independent read-then-write.
type Store interface {
	// Get unmarshals the value stored at key into dest. Returns ErrNotFound
	// when the key is absent.
	Get(ctx context.Context, key string, dest any) error

	// Set marshals value to JSON and stores it at key, replacing any
	// previous value.
	Set(ctx context.Context, key string, value any) error

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// GetByPrefix returns every entry whose key starts with prefix, in
	// unspecified order.
	GetByPrefix(ctx context.Context, prefix string) ([]Entry, error)

	// Ping verifies the store is reachable.
	Ping(ctx context.Context) error

	// Close releases underlying resources.
	Close() error
}
