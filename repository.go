package translatable

import "context"

// TranslationRepository is the storage contract for translation records.
//
// Single-row lookups return ErrNotFound (possibly wrapped) when no row
// matches. Delete operations return the number of rows removed and never
// treat zero as an error.
type TranslationRepository[TR Translation[ID], ID comparable] interface {
	// Save inserts the translation, or updates it when a row with the same
	// identifier already exists, and returns the persisted value.
	Save(ctx context.Context, translation TR) (TR, error)

	// FindByID returns the translation with the given identifier.
	FindByID(ctx context.Context, id ID) (TR, error)

	// DeleteByID removes the translation with the given identifier.
	// Removing a missing row is not an error.
	DeleteByID(ctx context.Context, id ID) error

	// Count returns the total number of translation rows.
	Count(ctx context.Context) (int64, error)

	// ExistsByLocale reports whether at least one translation with the
	// given locale exists, across all owners.
	ExistsByLocale(ctx context.Context, locale string) (bool, error)

	// ExistsByOwnerID reports whether the owner has at least one
	// translation, in any locale.
	ExistsByOwnerID(ctx context.Context, ownerID ID) (bool, error)

	// ExistsByOwnerIDAndLocale reports whether the owner has a translation
	// with the given locale.
	ExistsByOwnerIDAndLocale(ctx context.Context, ownerID ID, locale string) (bool, error)

	// FindByOwnerID returns every translation of the owner, ordered by
	// locale.
	FindByOwnerID(ctx context.Context, ownerID ID) ([]TR, error)

	// FindPageByOwnerID returns one page of the owner's translations plus
	// the total count.
	FindPageByOwnerID(ctx context.Context, ownerID ID, page PageRequest) (Page[TR], error)

	// FindByOwnerIDAndLocale returns the owner's translation for the given
	// locale, or ErrNotFound. At most one row should match; if the backing
	// store holds duplicates in violation of the uniqueness invariant,
	// implementations return one deterministic row and document which.
	FindByOwnerIDAndLocale(ctx context.Context, ownerID ID, locale string) (TR, error)

	// DeleteByLocale removes every translation with the given locale and
	// returns the number of rows removed.
	DeleteByLocale(ctx context.Context, locale string) (int64, error)

	// DeleteByOwnerIDAndLocale removes the owner's translation for the
	// given locale and returns the number of rows removed (0 or 1 under
	// the uniqueness invariant).
	DeleteByOwnerIDAndLocale(ctx context.Context, ownerID ID, locale string) (int64, error)
}

// NamedTranslationRepository extends TranslationRepository for translation
// types that carry a name-like field. It is an optional capability, not part
// of the generic contract: implement it only when the concrete translation
// type actually has such a field.
type NamedTranslationRepository[TR Translation[ID], ID comparable] interface {
	TranslationRepository[TR, ID]

	// FindByNameAndLocale returns every translation whose name and locale
	// match exactly.
	FindByNameAndLocale(ctx context.Context, name, locale string) ([]TR, error)
}

// TranslatableRepository is the storage contract for owning entities.
//
// Single-row lookups return ErrNotFound (possibly wrapped) when no row
// matches. Delete operations return the number of owners removed and never
// treat zero as an error.
type TranslatableRepository[T Translatable[ID, TR], ID comparable, TR Translation[ID]] interface {
	// Save inserts the entity, or updates it when a row with the same
	// identifier already exists, and returns the persisted value.
	Save(ctx context.Context, entity T) (T, error)

	// FindByID returns the entity with the given identifier.
	FindByID(ctx context.Context, id ID) (T, error)

	// DeleteByID removes the entity with the given identifier. Removing a
	// missing row is not an error.
	DeleteByID(ctx context.Context, id ID) error

	// Count returns the total number of entities.
	Count(ctx context.Context) (int64, error)

	// ExistsByIDAndLocale reports whether the entity exists and has a
	// translation with the given locale.
	ExistsByIDAndLocale(ctx context.Context, id ID, locale string) (bool, error)

	// FindByIDAndLocale returns the entity only if it has a translation
	// with the given locale, or ErrNotFound.
	FindByIDAndLocale(ctx context.Context, id ID, locale string) (T, error)

	// FindAllByLocale returns every entity that has a translation with the
	// given locale. Each entity appears exactly once even when duplicate
	// translation rows exist for the locale.
	FindAllByLocale(ctx context.Context, locale string) ([]T, error)

	// FindPageByLocale returns one page of FindAllByLocale's result set
	// plus the total count of distinct matching entities.
	FindPageByLocale(ctx context.Context, locale string, page PageRequest) (Page[T], error)

	// FindTranslationsByID returns every translation of the entity, in any
	// locale.
	FindTranslationsByID(ctx context.Context, id ID) ([]TR, error)

	// FindPageOfTranslationsByID returns one page of the entity's
	// translations plus the total count.
	FindPageOfTranslationsByID(ctx context.Context, id ID, page PageRequest) (Page[TR], error)

	// DeleteByLocale removes every entity that has at least one translation
	// with the given locale, and returns the number of entities removed.
	// This deletes the owner itself, not just the translation row; sibling
	// translations in other locales go with it.
	DeleteByLocale(ctx context.Context, locale string) (int64, error)

	// DeleteByIDAndLocale removes the entity only if it has a translation
	// with the given locale, and returns the number of entities removed
	// (0 or 1).
	DeleteByIDAndLocale(ctx context.Context, id ID, locale string) (int64, error)
}
