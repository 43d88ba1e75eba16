// Package kv implements the persisted key-value layer backing all local
// client state: overrides, tombstones, featured-confirmation tokens and
// cache snapshots. Values are opaque byte slices; key layout is owned by the
// typed stores built on top.
package kv

import "context"

// Repository is a durable string-keyed byte store.
type Repository interface {
	// Get returns the value for key, or (nil, nil) when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set writes or replaces the value for key.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// ListPrefix returns all pairs whose key starts with prefix.
	ListPrefix(ctx context.Context, prefix string) (map[string][]byte, error)
}
