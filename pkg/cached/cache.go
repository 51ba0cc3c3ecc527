package cached

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// Cache is a generic key-value cache with TTL support, the storage behind
// the repository decorator.
type Cache[V any] interface {
	// Get retrieves a value by key. Returns ErrNotFound if the key does
	// not exist or has expired.
	Get(ctx context.Context, key string) (V, error)

	// Set stores a value. A zero TTL uses the cache's default.
	Set(ctx context.Context, key string, value V, ttl time.Duration) error

	// Delete removes a key.
	Delete(ctx context.Context, key string) error

	// Clear removes all entries.
	Clear(ctx context.Context) error

	// Close releases resources.
	Close() error
}

func marshalJSON[V any](v V) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Join(ErrMarshal, err)
	}
	return data, nil
}

func unmarshalJSON[V any](data []byte) (V, error) {
	var v V
	if err := json.Unmarshal(data, &v); err != nil {
		return v, errors.Join(ErrUnmarshal, err)
	}
	return v, nil
}
