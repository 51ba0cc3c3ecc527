package cached

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a Cache backed by Redis, serializing values as JSON. All keys
// are namespaced under the given prefix so Clear only touches this cache's
// entries.
type Redis[V any] struct {
	client     redis.UniversalClient
	prefix     string
	defaultTTL time.Duration
}

// NewRedis creates a Redis-backed cache. The client lifecycle stays with
// the caller. A zero defaultTTL means entries without an explicit TTL never
// expire.
func NewRedis[V any](client redis.UniversalClient, prefix string, defaultTTL time.Duration) *Redis[V] {
	return &Redis[V]{client: client, prefix: prefix, defaultTTL: defaultTTL}
}

// Get retrieves a value by key.
func (r *Redis[V]) Get(ctx context.Context, key string) (V, error) {
	var zero V
	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return zero, ErrNotFound
		}
		return zero, err
	}
	return unmarshalJSON[V](data)
}

// Set stores a value. A zero TTL uses the cache default; Redis interprets
// the resulting zero as "no expiration".
func (r *Redis[V]) Set(ctx context.Context, key string, value V, ttl time.Duration) error {
	data, err := marshalJSON(value)
	if err != nil {
		return err
	}
	if ttl == 0 {
		ttl = r.defaultTTL
	}
	return r.client.Set(ctx, r.key(key), data, max(ttl, 0)).Err()
}

// Delete removes a key.
func (r *Redis[V]) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.key(key)).Err()
}

// Clear removes every key under the cache's prefix using SCAN, which does
// not block the server.
func (r *Redis[V]) Clear(ctx context.Context) error {
	pattern := r.key("*")
	var cursor uint64
	for {
		keys, next, err := r.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := r.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

// Close is a no-op; the Redis client is managed by the caller.
func (r *Redis[V]) Close() error {
	return nil
}

func (r *Redis[V]) key(key string) string {
	if r.prefix == "" {
		return key
	}
	return r.prefix + ":" + key
}

var _ Cache[any] = (*Redis[any])(nil)
