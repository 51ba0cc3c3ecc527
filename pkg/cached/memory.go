package cached

import (
	"context"
	"sync"
	"time"
)

type memoryEntry[V any] struct {
	value     V
	expiresAt time.Time
}

func (e memoryEntry[V]) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// Memory is an in-memory Cache with TTL-based expiration. Expired entries
// are dropped lazily on access and swept by a background janitor.
type Memory[V any] struct {
	mu      sync.Mutex
	entries map[string]memoryEntry[V]

	defaultTTL time.Duration
	stop       chan struct{}
	stopOnce   sync.Once
}

// NewMemory creates an in-memory cache. A zero defaultTTL means entries
// without an explicit TTL never expire. A positive cleanupInterval starts a
// janitor goroutine sweeping expired entries; zero disables it.
func NewMemory[V any](defaultTTL, cleanupInterval time.Duration) *Memory[V] {
	m := &Memory[V]{
		entries:    make(map[string]memoryEntry[V]),
		defaultTTL: defaultTTL,
		stop:       make(chan struct{}),
	}
	if cleanupInterval > 0 {
		go m.janitor(cleanupInterval)
	}
	return m
}

// Get retrieves a value by key.
func (m *Memory[V]) Get(_ context.Context, key string) (V, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[key]
	if !ok {
		var zero V
		return zero, ErrNotFound
	}
	if entry.expired(time.Now()) {
		delete(m.entries, key)
		var zero V
		return zero, ErrNotFound
	}
	return entry.value, nil
}

// Set stores a value. A zero TTL uses the cache default; with a zero
// default too, the entry never expires.
func (m *Memory[V]) Set(_ context.Context, key string, value V, ttl time.Duration) error {
	if ttl == 0 {
		ttl = m.defaultTTL
	}
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = memoryEntry[V]{value: value, expiresAt: expiresAt}
	return nil
}

// Delete removes a key.
func (m *Memory[V]) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

// Clear removes all entries.
func (m *Memory[V]) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]memoryEntry[V])
	return nil
}

// Close stops the janitor goroutine.
func (m *Memory[V]) Close() error {
	m.stopOnce.Do(func() { close(m.stop) })
	return nil
}

func (m *Memory[V]) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			now := time.Now()
			m.mu.Lock()
			for key, entry := range m.entries {
				if entry.expired(now) {
					delete(m.entries, key)
				}
			}
			m.mu.Unlock()
		}
	}
}

var _ Cache[any] = (*Memory[any])(nil)
