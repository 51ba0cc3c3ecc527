package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	translatable "github.com/mewebstudio/go-translatable"
)

// TranslationRepository implements translatable.TranslationRepository for a
// concrete translation type TR, driven by a TranslationMapping.
//
// TR must be a struct whose fields carry `db` tags matching the mapped
// columns; rows are scanned with pgx.RowToStructByName.
type TranslationRepository[TR translatable.Translation[ID], ID comparable] struct {
	pool   *pgxpool.Pool
	m      TranslationMapping
	encode func(TR) []any
}

// NewTranslationRepository creates a repository over pool. The encoder
// returns the values of a translation in mapping column order; it is used
// for writes.
func NewTranslationRepository[TR translatable.Translation[ID], ID comparable](
	pool *pgxpool.Pool,
	mapping TranslationMapping,
	encode func(TR) []any,
) (*TranslationRepository[TR, ID], error) {
	if pool == nil {
		return nil, ErrNilPool
	}
	if encode == nil {
		return nil, ErrNilEncoder
	}
	m := mapping.withDefaults()
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &TranslationRepository[TR, ID]{pool: pool, m: m, encode: encode}, nil
}

// Mapping returns the effective mapping, defaults applied.
func (r *TranslationRepository[TR, ID]) Mapping() TranslationMapping {
	return r.m
}

func (r *TranslationRepository[TR, ID]) q(ctx context.Context) querier {
	return queryEngine(ctx, r.pool)
}

// Save inserts the translation, or updates the row with the same identifier,
// and returns the persisted value.
func (r *TranslationRepository[TR, ID]) Save(ctx context.Context, translation TR) (TR, error) {
	args := r.encode(translation)
	if len(args) != len(r.m.Columns) {
		var zero TR
		return zero, fmt.Errorf("%w: encoder returned %d values for %d columns",
			ErrInvalidMapping, len(args), len(r.m.Columns))
	}
	rows, err := r.q(ctx).Query(ctx, r.m.upsertSQL(), args...)
	if err != nil {
		var zero TR
		return zero, err
	}
	return pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[TR])
}

// FindByID returns the translation with the given identifier, or
// translatable.ErrNotFound.
func (r *TranslationRepository[TR, ID]) FindByID(ctx context.Context, id ID) (TR, error) {
	rows, err := r.q(ctx).Query(ctx, r.m.selectByIDSQL(), id)
	if err != nil {
		var zero TR
		return zero, err
	}
	return collectOne[TR](rows)
}

// DeleteByID removes the translation with the given identifier. Removing a
// missing row is not an error.
func (r *TranslationRepository[TR, ID]) DeleteByID(ctx context.Context, id ID) error {
	_, err := r.q(ctx).Exec(ctx, r.m.deleteByIDSQL(), id)
	return err
}

// Count returns the total number of translation rows.
func (r *TranslationRepository[TR, ID]) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.q(ctx).QueryRow(ctx, r.m.countSQL()).Scan(&n)
	return n, err
}

// ExistsByLocale reports whether at least one translation with the given
// locale exists, across all owners.
func (r *TranslationRepository[TR, ID]) ExistsByLocale(ctx context.Context, locale string) (bool, error) {
	var exists bool
	err := r.q(ctx).QueryRow(ctx, r.m.existsByLocaleSQL(), locale).Scan(&exists)
	return exists, err
}

// ExistsByOwnerID reports whether the owner has at least one translation,
// in any locale.
func (r *TranslationRepository[TR, ID]) ExistsByOwnerID(ctx context.Context, ownerID ID) (bool, error) {
	var exists bool
	err := r.q(ctx).QueryRow(ctx, r.m.existsByOwnerSQL(), ownerID).Scan(&exists)
	return exists, err
}

// ExistsByOwnerIDAndLocale reports whether the owner has a translation with
// the given locale.
func (r *TranslationRepository[TR, ID]) ExistsByOwnerIDAndLocale(ctx context.Context, ownerID ID, locale string) (bool, error) {
	var exists bool
	err := r.q(ctx).QueryRow(ctx, r.m.existsByOwnerAndLocaleSQL(), ownerID, locale).Scan(&exists)
	return exists, err
}

// FindByOwnerID returns every translation of the owner, ordered by locale.
func (r *TranslationRepository[TR, ID]) FindByOwnerID(ctx context.Context, ownerID ID) ([]TR, error) {
	rows, err := r.q(ctx).Query(ctx, r.m.selectByOwnerSQL(), ownerID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[TR])
}

// FindPageByOwnerID returns one page of the owner's translations plus the
// total count.
func (r *TranslationRepository[TR, ID]) FindPageByOwnerID(ctx context.Context, ownerID ID, page translatable.PageRequest) (translatable.Page[TR], error) {
	var zero translatable.Page[TR]
	if err := page.Validate(); err != nil {
		return zero, err
	}
	var total int64
	if err := r.q(ctx).QueryRow(ctx, r.m.countByOwnerSQL(), ownerID).Scan(&total); err != nil {
		return zero, err
	}
	rows, err := r.q(ctx).Query(ctx, r.m.selectPageByOwnerSQL(), ownerID, page.Size, page.Offset())
	if err != nil {
		return zero, err
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[TR])
	if err != nil {
		return zero, err
	}
	return translatable.Page[TR]{Items: items, TotalCount: total, Page: page.Page, Size: page.Size}, nil
}

// FindByOwnerIDAndLocale returns the owner's translation for the given
// locale, or translatable.ErrNotFound. If duplicate rows violate the
// owner+locale uniqueness invariant, the row with the lowest id is
// returned.
func (r *TranslationRepository[TR, ID]) FindByOwnerIDAndLocale(ctx context.Context, ownerID ID, locale string) (TR, error) {
	rows, err := r.q(ctx).Query(ctx, r.m.selectByOwnerAndLocaleSQL(), ownerID, locale)
	if err != nil {
		var zero TR
		return zero, err
	}
	return collectOne[TR](rows)
}

// DeleteByLocale removes every translation with the given locale and
// returns the number of rows removed.
func (r *TranslationRepository[TR, ID]) DeleteByLocale(ctx context.Context, locale string) (int64, error) {
	tag, err := r.q(ctx).Exec(ctx, r.m.deleteByLocaleSQL(), locale)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// DeleteByOwnerIDAndLocale removes the owner's translation for the given
// locale and returns the number of rows removed.
func (r *TranslationRepository[TR, ID]) DeleteByOwnerIDAndLocale(ctx context.Context, ownerID ID, locale string) (int64, error) {
	tag, err := r.q(ctx).Exec(ctx, r.m.deleteByOwnerAndLocaleSQL(), ownerID, locale)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// NamedTranslationRepository extends TranslationRepository with exact-match
// name lookups. Construct it only for translation types that map a name-like
// column.
type NamedTranslationRepository[TR translatable.Translation[ID], ID comparable] struct {
	*TranslationRepository[TR, ID]
}

// NewNamedTranslationRepository creates a repository whose mapping must set
// NameColumn.
func NewNamedTranslationRepository[TR translatable.Translation[ID], ID comparable](
	pool *pgxpool.Pool,
	mapping TranslationMapping,
	encode func(TR) []any,
) (*NamedTranslationRepository[TR, ID], error) {
	if mapping.NameColumn == "" {
		return nil, fmt.Errorf("%w: name column is required", ErrInvalidMapping)
	}
	base, err := NewTranslationRepository[TR, ID](pool, mapping, encode)
	if err != nil {
		return nil, err
	}
	return &NamedTranslationRepository[TR, ID]{TranslationRepository: base}, nil
}

// FindByNameAndLocale returns every translation whose name and locale match
// exactly, ordered by id.
func (r *NamedTranslationRepository[TR, ID]) FindByNameAndLocale(ctx context.Context, name, locale string) ([]TR, error) {
	rows, err := r.q(ctx).Query(ctx, r.m.selectByNameAndLocaleSQL(), name, locale)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[TR])
}

// collectOne scans the first row into V, mapping pgx.ErrNoRows to
// translatable.ErrNotFound.
func collectOne[V any](rows pgx.Rows) (V, error) {
	v, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[V])
	if err != nil {
		var zero V
		if errors.Is(err, pgx.ErrNoRows) {
			return zero, translatable.ErrNotFound
		}
		return zero, err
	}
	return v, nil
}
