package ports

import (
	"context"
)

// KVStore abstracts the key-value persistence the application state lives in.
// The statistics and synthesis core never depends on it directly; only the
// repository adapters do.
type KVStore interface {
	// Get returns the stored value for key. found is false when the key does
	// not exist; that is not an error.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is a no-op.
	Delete(ctx context.Context, key string) error

	// Keys lists all stored keys with the given prefix.
	Keys(ctx context.Context, prefix string) ([]string, error)
}
