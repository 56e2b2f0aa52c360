// Package kv provides the key-value persistence collaborator backing
// the store. Values are opaque serialized strings; absence of a key is
// not an error.
package kv

import "context"

// Store is a minimal get/set/remove surface over a persistence
// backend.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set writes the value for key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
	// Remove deletes the key entirely. Removing an absent key is a
	// no-op.
	Remove(ctx context.Context, key string) error
	Close() error
}
