// Package cached provides a read-through caching decorator for the
// translation repository contract.
//
// The decorator wraps a base [translatable.TranslationRepository] and caches
// the two lookup shapes that dominate read traffic: FindByOwnerID and
// FindByOwnerIDAndLocale. Existence checks, counts and id lookups pass
// through, as do all writes. A write invalidates the affected owner's cached
// entries; locale-wide and id-keyed deletes, whose owners are unknown at
// call time, clear the whole cache.
//
// Concurrent misses for the same key are collapsed with
// [golang.org/x/sync/singleflight], so the base repository sees one query
// per key regardless of fan-in.
//
// # Backends
//
// The [Cache] interface has an in-memory implementation ([NewMemory]) for
// single-process use and a Redis one ([NewRedis], JSON-serialized) for
// sharing across instances. By default the decorator builds in-memory
// caches; pass [WithRedis] to use Redis.
//
//	repo := cached.New[PostTranslation, uuid.UUID](base,
//	    cached.WithTTL(5*time.Minute),
//	    cached.WithRedis(client, "posts"),
//	    cached.WithTransactionBypass(postgres.InTransaction),
//	)
//
// # Transactions
//
// Reads made inside a transaction must not observe stale cache state, and
// uncommitted reads must not poison the cache. Wire
// [WithTransactionBypass] to the storage package's transaction detector
// (e.g. postgres.InTransaction) so transactional calls go straight to the
// base repository.
package cached
