// Package translatable provides generic scaffolding for persisting
// translatable entities: domain objects that own zero or more locale-keyed
// translation records.
//
// The package defines two entity contracts ([Translatable], [Translation]),
// two repository contracts ([TranslatableRepository], [TranslationRepository])
// with locale-scoped queries, and two service types that wrap the repositories
// with transactional boundaries and guard checks. Storage concerns (query
// execution, pooling, constraints) belong to the repository implementation;
// see [github.com/mewebstudio/go-translatable/pkg/postgres] for the
// PostgreSQL one.
//
// # Data Model
//
// A translatable entity owns many translations; each translation belongs to
// exactly one owner and names its language variant with a locale string
// ("en", "tr"). At most one translation per owner and locale should exist.
// That uniqueness is not enforced here: it is the backing schema's job
// (a unique index on the owner/locale pair).
//
// # Usage
//
// Define concrete types satisfying the entity contracts, then wire them
// through a repository implementation:
//
//	type Post struct {
//		PostID       uuid.UUID `db:"id"`
//		translations []PostTranslation
//	}
//
//	func (p Post) ID() uuid.UUID                   { return p.PostID }
//	func (p Post) Translations() []PostTranslation { return p.translations }
//
//	type PostTranslation struct {
//		TranslationID uuid.UUID `db:"id"`
//		PostID        uuid.UUID `db:"post_id"`
//		Lang          string    `db:"locale"`
//		Title         string    `db:"title"`
//	}
//
//	func (t PostTranslation) ID() uuid.UUID      { return t.TranslationID }
//	func (t PostTranslation) OwnerID() uuid.UUID { return t.PostID }
//	func (t PostTranslation) Locale() string     { return t.Lang }
//
//	svc := translatable.NewTranslationService(repo, tx)
//	tr, err := svc.FindByOwnerIDAndLocale(ctx, postID, "en")
//
// # Error Handling
//
// Single-row lookups return [ErrNotFound] when nothing matches. Delete
// operations on the translatable service return a zero count without error
// when nothing matches; the translation service's guarded deletes instead
// fail with [ErrNotFound] or [ErrNoLocale] before any mutation happens.
// Backing-store errors propagate unchanged.
//
// # Transactions
//
// Mutating service methods run inside [Transactor.InTx]: the guard check and
// the delete commit or roll back as one unit. Pass [NopTransactor] when the
// repository implementation needs no transactional scope (tests, in-memory
// stores).
package translatable
