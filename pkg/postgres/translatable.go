package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	translatable "github.com/mewebstudio/go-translatable"
)

// TranslatableRepository implements translatable.TranslatableRepository for
// a concrete owner type T and its translation type TR, driven by a
// TranslatableMapping.
//
// T and TR must be structs whose fields carry `db` tags matching the mapped
// columns. List queries return owners without their translation collections
// loaded; single-owner lookups hydrate them when WithTranslationLoading is
// set.
type TranslatableRepository[T translatable.Translatable[ID, TR], ID comparable, TR translatable.Translation[ID]] struct {
	pool   *pgxpool.Pool
	m      TranslatableMapping
	encode func(T) []any
	attach func(T, []TR) T
}

// TranslatableOption configures a TranslatableRepository.
type TranslatableOption[T translatable.Translatable[ID, TR], ID comparable, TR translatable.Translation[ID]] func(*TranslatableRepository[T, ID, TR])

// WithTranslationLoading enables translation hydration on FindByID and
// FindByIDAndLocale: the owner's translations are loaded and attached via
// the given function. List queries stay unhydrated regardless.
func WithTranslationLoading[T translatable.Translatable[ID, TR], ID comparable, TR translatable.Translation[ID]](
	attach func(T, []TR) T,
) TranslatableOption[T, ID, TR] {
	return func(r *TranslatableRepository[T, ID, TR]) {
		r.attach = attach
	}
}

// NewTranslatableRepository creates a repository over pool. The encoder
// returns the values of an owner row in mapping column order; it is used
// for writes.
func NewTranslatableRepository[T translatable.Translatable[ID, TR], ID comparable, TR translatable.Translation[ID]](
	pool *pgxpool.Pool,
	mapping TranslatableMapping,
	encode func(T) []any,
	opts ...TranslatableOption[T, ID, TR],
) (*TranslatableRepository[T, ID, TR], error) {
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
	r := &TranslatableRepository[T, ID, TR]{pool: pool, m: m, encode: encode}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Mapping returns the effective mapping, defaults applied.
func (r *TranslatableRepository[T, ID, TR]) Mapping() TranslatableMapping {
	return r.m
}

func (r *TranslatableRepository[T, ID, TR]) q(ctx context.Context) querier {
	return queryEngine(ctx, r.pool)
}

func (r *TranslatableRepository[T, ID, TR]) hydrate(ctx context.Context, entity T) (T, error) {
	if r.attach == nil {
		return entity, nil
	}
	translations, err := r.FindTranslationsByID(ctx, entity.ID())
	if err != nil {
		var zero T
		return zero, err
	}
	return r.attach(entity, translations), nil
}

// Save inserts the entity, or updates the row with the same identifier, and
// returns the persisted value. The returned entity is not hydrated; its
// translation rows are unaffected by the write.
func (r *TranslatableRepository[T, ID, TR]) Save(ctx context.Context, entity T) (T, error) {
	args := r.encode(entity)
	if len(args) != len(r.m.Columns) {
		var zero T
		return zero, fmt.Errorf("%w: encoder returned %d values for %d columns",
			ErrInvalidMapping, len(args), len(r.m.Columns))
	}
	rows, err := r.q(ctx).Query(ctx, r.m.upsertSQL(), args...)
	if err != nil {
		var zero T
		return zero, err
	}
	return pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[T])
}

// FindByID returns the entity with the given identifier, or
// translatable.ErrNotFound.
func (r *TranslatableRepository[T, ID, TR]) FindByID(ctx context.Context, id ID) (T, error) {
	rows, err := r.q(ctx).Query(ctx, r.m.selectByIDSQL(), id)
	if err != nil {
		var zero T
		return zero, err
	}
	entity, err := collectOne[T](rows)
	if err != nil {
		var zero T
		return zero, err
	}
	return r.hydrate(ctx, entity)
}

// DeleteByID removes the entity with the given identifier. Sibling
// translation rows go with it through the schema's cascading foreign key.
func (r *TranslatableRepository[T, ID, TR]) DeleteByID(ctx context.Context, id ID) error {
	_, err := r.q(ctx).Exec(ctx, r.m.deleteByIDSQL(), id)
	return err
}

// Count returns the total number of entities.
func (r *TranslatableRepository[T, ID, TR]) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.q(ctx).QueryRow(ctx, r.m.countSQL()).Scan(&n)
	return n, err
}

// ExistsByIDAndLocale reports whether the entity exists and has a
// translation with the given locale.
func (r *TranslatableRepository[T, ID, TR]) ExistsByIDAndLocale(ctx context.Context, id ID, locale string) (bool, error) {
	var exists bool
	err := r.q(ctx).QueryRow(ctx, r.m.existsByIDAndLocaleSQL(), id, locale).Scan(&exists)
	return exists, err
}

// FindByIDAndLocale returns the entity only if it has a translation with
// the given locale, or translatable.ErrNotFound.
func (r *TranslatableRepository[T, ID, TR]) FindByIDAndLocale(ctx context.Context, id ID, locale string) (T, error) {
	rows, err := r.q(ctx).Query(ctx, r.m.selectByIDAndLocaleSQL(), id, locale)
	if err != nil {
		var zero T
		return zero, err
	}
	entity, err := collectOne[T](rows)
	if err != nil {
		var zero T
		return zero, err
	}
	return r.hydrate(ctx, entity)
}

// FindAllByLocale returns every entity that has a translation with the
// given locale, ordered by id. The correlated EXISTS match guarantees each
// entity appears exactly once even when duplicate translation rows exist.
func (r *TranslatableRepository[T, ID, TR]) FindAllByLocale(ctx context.Context, locale string) ([]T, error) {
	rows, err := r.q(ctx).Query(ctx, r.m.selectAllByLocaleSQL(), locale)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[T])
}

// FindPageByLocale returns one page of FindAllByLocale's result set plus
// the total count of distinct matching entities.
func (r *TranslatableRepository[T, ID, TR]) FindPageByLocale(ctx context.Context, locale string, page translatable.PageRequest) (translatable.Page[T], error) {
	var zero translatable.Page[T]
	if err := page.Validate(); err != nil {
		return zero, err
	}
	var total int64
	if err := r.q(ctx).QueryRow(ctx, r.m.countByLocaleSQL(), locale).Scan(&total); err != nil {
		return zero, err
	}
	rows, err := r.q(ctx).Query(ctx, r.m.selectPageByLocaleSQL(), locale, page.Size, page.Offset())
	if err != nil {
		return zero, err
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		return zero, err
	}
	return translatable.Page[T]{Items: items, TotalCount: total, Page: page.Page, Size: page.Size}, nil
}

// FindTranslationsByID returns every translation of the entity, ordered by
// locale.
func (r *TranslatableRepository[T, ID, TR]) FindTranslationsByID(ctx context.Context, id ID) ([]TR, error) {
	rows, err := r.q(ctx).Query(ctx, r.m.Translation.selectByOwnerSQL(), id)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[TR])
}

// FindPageOfTranslationsByID returns one page of the entity's translations
// plus the total count.
func (r *TranslatableRepository[T, ID, TR]) FindPageOfTranslationsByID(ctx context.Context, id ID, page translatable.PageRequest) (translatable.Page[TR], error) {
	var zero translatable.Page[TR]
	if err := page.Validate(); err != nil {
		return zero, err
	}
	var total int64
	if err := r.q(ctx).QueryRow(ctx, r.m.Translation.countByOwnerSQL(), id).Scan(&total); err != nil {
		return zero, err
	}
	rows, err := r.q(ctx).Query(ctx, r.m.Translation.selectPageByOwnerSQL(), id, page.Size, page.Offset())
	if err != nil {
		return zero, err
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[TR])
	if err != nil {
		return zero, err
	}
	return translatable.Page[TR]{Items: items, TotalCount: total, Page: page.Page, Size: page.Size}, nil
}

// DeleteByLocale removes every entity that has at least one translation
// with the given locale and returns the number of entities removed. The
// entities' translation rows, in every locale, are removed by the schema's
// cascading foreign key.
func (r *TranslatableRepository[T, ID, TR]) DeleteByLocale(ctx context.Context, locale string) (int64, error) {
	tag, err := r.q(ctx).Exec(ctx, r.m.deleteByLocaleSQL(), locale)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// DeleteByIDAndLocale removes the entity only if it has a translation with
// the given locale, and returns the number of entities removed (0 or 1).
func (r *TranslatableRepository[T, ID, TR]) DeleteByIDAndLocale(ctx context.Context, id ID, locale string) (int64, error) {
	tag, err := r.q(ctx).Exec(ctx, r.m.deleteByIDAndLocaleSQL(), id, locale)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
