package cached

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	translatable "github.com/mewebstudio/go-translatable"
)

// Option configures the repository decorator.
type Option[TR translatable.Translation[ID], ID comparable] func(*config[TR, ID])

type config[TR translatable.Translation[ID], ID comparable] struct {
	ttl             time.Duration
	cleanupInterval time.Duration
	single          Cache[TR]
	list            Cache[[]TR]
	redisClient     redis.UniversalClient
	redisPrefix     string
	bypass          func(context.Context) bool
}

// WithTTL sets the cache TTL for stored results.
// Default: 1 minute.
func WithTTL[TR translatable.Translation[ID], ID comparable](ttl time.Duration) Option[TR, ID] {
	return func(c *config[TR, ID]) {
		c.ttl = ttl
	}
}

// WithCaches supplies custom cache backends, overriding the defaults.
func WithCaches[TR translatable.Translation[ID], ID comparable](single Cache[TR], list Cache[[]TR]) Option[TR, ID] {
	return func(c *config[TR, ID]) {
		c.single = single
		c.list = list
	}
}

// WithRedis stores cache entries in Redis under the given prefix instead of
// process memory, so instances sharing the database share the cache too.
func WithRedis[TR translatable.Translation[ID], ID comparable](client redis.UniversalClient, prefix string) Option[TR, ID] {
	return func(c *config[TR, ID]) {
		c.redisClient = client
		c.redisPrefix = prefix
	}
}

// WithTransactionBypass makes reads skip the cache when fn reports that the
// context carries an open transaction. Wire it to the storage package's
// detector, e.g. postgres.InTransaction.
func WithTransactionBypass[TR translatable.Translation[ID], ID comparable](fn func(context.Context) bool) Option[TR, ID] {
	return func(c *config[TR, ID]) {
		c.bypass = fn
	}
}

// Repository decorates a translatable.TranslationRepository with
// read-through caching for FindByOwnerID and FindByOwnerIDAndLocale.
// Misses are not cached, so a not-found result always re-queries the base
// repository.
//
// Writes that re-key an existing row (changing its owner or locale) leave
// the entry under the old key cached until it expires; call Invalidate or
// InvalidateAll after such updates.
type Repository[TR translatable.Translation[ID], ID comparable] struct {
	base   translatable.TranslationRepository[TR, ID]
	single Cache[TR]
	list   Cache[[]TR]
	ttl    time.Duration
	bypass func(context.Context) bool
	group  singleflight.Group
}

// New decorates base with read-through caching. Without options it uses
// in-memory caches with a 1 minute TTL.
func New[TR translatable.Translation[ID], ID comparable](
	base translatable.TranslationRepository[TR, ID],
	opts ...Option[TR, ID],
) *Repository[TR, ID] {
	c := &config[TR, ID]{
		ttl:             time.Minute,
		cleanupInterval: time.Minute,
	}
	for _, opt := range opts {
		opt(c)
	}

	single, list := c.single, c.list
	switch {
	case single != nil && list != nil:
		// caller-supplied backends
	case c.redisClient != nil:
		single = NewRedis[TR](c.redisClient, c.redisPrefix+":one", c.ttl)
		list = NewRedis[[]TR](c.redisClient, c.redisPrefix+":all", c.ttl)
	default:
		single = NewMemory[TR](c.ttl, c.cleanupInterval)
		list = NewMemory[[]TR](c.ttl, c.cleanupInterval)
	}

	return &Repository[TR, ID]{
		base:   base,
		single: single,
		list:   list,
		ttl:    c.ttl,
		bypass: c.bypass,
	}
}

// Close releases the cache backends.
func (r *Repository[TR, ID]) Close() error {
	if err := r.single.Close(); err != nil {
		return err
	}
	return r.list.Close()
}

func (r *Repository[TR, ID]) skipCache(ctx context.Context) bool {
	return r.bypass != nil && r.bypass(ctx)
}

func singleKey[ID comparable](ownerID ID, locale string) string {
	return fmt.Sprintf("%v:%s", ownerID, locale)
}

func listKey[ID comparable](ownerID ID) string {
	return fmt.Sprintf("%v", ownerID)
}

// Invalidate drops the cached entries for one owner and locale.
func (r *Repository[TR, ID]) Invalidate(ctx context.Context, ownerID ID, locale string) {
	_ = r.single.Delete(ctx, singleKey(ownerID, locale))
	_ = r.list.Delete(ctx, listKey(ownerID))
}

// InvalidateAll drops every cached entry.
func (r *Repository[TR, ID]) InvalidateAll(ctx context.Context) {
	_ = r.single.Clear(ctx)
	_ = r.list.Clear(ctx)
}

// FindByOwnerIDAndLocale returns the owner's translation for the given
// locale, from cache when possible.
func (r *Repository[TR, ID]) FindByOwnerIDAndLocale(ctx context.Context, ownerID ID, locale string) (TR, error) {
	if r.skipCache(ctx) {
		return r.base.FindByOwnerIDAndLocale(ctx, ownerID, locale)
	}

	key := singleKey(ownerID, locale)
	if v, err := r.single.Get(ctx, key); err == nil {
		return v, nil
	}

	v, err, _ := r.group.Do("one:"+key, func() (any, error) {
		tr, err := r.base.FindByOwnerIDAndLocale(ctx, ownerID, locale)
		if err != nil {
			return nil, err
		}
		_ = r.single.Set(ctx, key, tr, r.ttl)
		return tr, nil
	})
	if err != nil {
		var zero TR
		return zero, err
	}
	return v.(TR), nil
}

// FindByOwnerID returns every translation of the owner, from cache when
// possible.
func (r *Repository[TR, ID]) FindByOwnerID(ctx context.Context, ownerID ID) ([]TR, error) {
	if r.skipCache(ctx) {
		return r.base.FindByOwnerID(ctx, ownerID)
	}

	key := listKey(ownerID)
	if v, err := r.list.Get(ctx, key); err == nil {
		return v, nil
	}

	v, err, _ := r.group.Do("all:"+key, func() (any, error) {
		trs, err := r.base.FindByOwnerID(ctx, ownerID)
		if err != nil {
			return nil, err
		}
		_ = r.list.Set(ctx, key, trs, r.ttl)
		return trs, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]TR), nil
}

// Save persists the translation through the base repository and invalidates
// the owner's cached entries.
func (r *Repository[TR, ID]) Save(ctx context.Context, translation TR) (TR, error) {
	saved, err := r.base.Save(ctx, translation)
	if err != nil {
		var zero TR
		return zero, err
	}
	r.Invalidate(ctx, saved.OwnerID(), saved.Locale())
	return saved, nil
}

// DeleteByOwnerIDAndLocale removes the owner's translation for the given
// locale and invalidates the owner's cached entries.
func (r *Repository[TR, ID]) DeleteByOwnerIDAndLocale(ctx context.Context, ownerID ID, locale string) (int64, error) {
	n, err := r.base.DeleteByOwnerIDAndLocale(ctx, ownerID, locale)
	if err != nil {
		return 0, err
	}
	r.Invalidate(ctx, ownerID, locale)
	return n, nil
}

// DeleteByLocale removes every translation with the given locale. The
// affected owners are unknown here, so the whole cache is cleared.
func (r *Repository[TR, ID]) DeleteByLocale(ctx context.Context, locale string) (int64, error) {
	n, err := r.base.DeleteByLocale(ctx, locale)
	if err != nil {
		return 0, err
	}
	r.InvalidateAll(ctx)
	return n, nil
}

// DeleteByID removes the translation with the given identifier. The owner
// is unknown here, so the whole cache is cleared.
func (r *Repository[TR, ID]) DeleteByID(ctx context.Context, id ID) error {
	if err := r.base.DeleteByID(ctx, id); err != nil {
		return err
	}
	r.InvalidateAll(ctx)
	return nil
}

// FindByID passes through to the base repository.
func (r *Repository[TR, ID]) FindByID(ctx context.Context, id ID) (TR, error) {
	return r.base.FindByID(ctx, id)
}

// Count passes through to the base repository.
func (r *Repository[TR, ID]) Count(ctx context.Context) (int64, error) {
	return r.base.Count(ctx)
}

// ExistsByLocale passes through to the base repository.
func (r *Repository[TR, ID]) ExistsByLocale(ctx context.Context, locale string) (bool, error) {
	return r.base.ExistsByLocale(ctx, locale)
}

// ExistsByOwnerID passes through to the base repository.
func (r *Repository[TR, ID]) ExistsByOwnerID(ctx context.Context, ownerID ID) (bool, error) {
	return r.base.ExistsByOwnerID(ctx, ownerID)
}

// ExistsByOwnerIDAndLocale passes through to the base repository.
func (r *Repository[TR, ID]) ExistsByOwnerIDAndLocale(ctx context.Context, ownerID ID, locale string) (bool, error) {
	return r.base.ExistsByOwnerIDAndLocale(ctx, ownerID, locale)
}

// FindPageByOwnerID passes through to the base repository; page shapes are
// too variable to cache profitably.
func (r *Repository[TR, ID]) FindPageByOwnerID(ctx context.Context, ownerID ID, page translatable.PageRequest) (translatable.Page[TR], error) {
	return r.base.FindPageByOwnerID(ctx, ownerID, page)
}

// FindByNameAndLocale forwards to the base repository when it supports name
// lookups, uncached. Returns translatable.ErrNameLookupUnsupported otherwise.
func (r *Repository[TR, ID]) FindByNameAndLocale(ctx context.Context, name, locale string) ([]TR, error) {
	named, ok := r.base.(translatable.NamedTranslationRepository[TR, ID])
	if !ok {
		return nil, translatable.ErrNameLookupUnsupported
	}
	return named.FindByNameAndLocale(ctx, name, locale)
}
