package translatable

import (
	"context"
	"log/slog"
)

// TranslatableService wraps a TranslatableRepository with transactional
// boundaries around its mutating operations.
//
// Its delete operations follow the silent-zero policy: when nothing matches
// they return a zero count without error. Callers that need a hard failure
// on "nothing matched" should check the returned count.
type TranslatableService[T Translatable[ID, TR], ID comparable, TR Translation[ID]] struct {
	repo TranslatableRepository[T, ID, TR]
	tx   Transactor
	log  *slog.Logger
}

// NewTranslatableService creates a service over the given repository. All
// mutating methods run inside tx.
func NewTranslatableService[T Translatable[ID, TR], ID comparable, TR Translation[ID]](
	repo TranslatableRepository[T, ID, TR],
	tx Transactor,
	opts ...ServiceOption,
) *TranslatableService[T, ID, TR] {
	o := defaultServiceOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &TranslatableService[T, ID, TR]{repo: repo, tx: tx, log: o.log}
}

// Repository returns the wrapped repository, for callers that need queries
// beyond the service surface.
func (s *TranslatableService[T, ID, TR]) Repository() TranslatableRepository[T, ID, TR] {
	return s.repo
}

// ExistsByIDAndLocale reports whether the entity exists and has a
// translation with the given locale.
func (s *TranslatableService[T, ID, TR]) ExistsByIDAndLocale(ctx context.Context, id ID, locale string) (bool, error) {
	return s.repo.ExistsByIDAndLocale(ctx, id, locale)
}

// FindByIDAndLocale returns the entity only if it has a translation with the
// given locale, or ErrNotFound.
func (s *TranslatableService[T, ID, TR]) FindByIDAndLocale(ctx context.Context, id ID, locale string) (T, error) {
	return s.repo.FindByIDAndLocale(ctx, id, locale)
}

// FindAllByLocale returns every entity that has a translation with the given
// locale, each exactly once.
func (s *TranslatableService[T, ID, TR]) FindAllByLocale(ctx context.Context, locale string) ([]T, error) {
	return s.repo.FindAllByLocale(ctx, locale)
}

// FindPageByLocale returns one page of FindAllByLocale's result set.
func (s *TranslatableService[T, ID, TR]) FindPageByLocale(ctx context.Context, locale string, page PageRequest) (Page[T], error) {
	return s.repo.FindPageByLocale(ctx, locale, page)
}

// FindTranslationsByID returns every translation of the entity.
func (s *TranslatableService[T, ID, TR]) FindTranslationsByID(ctx context.Context, id ID) ([]TR, error) {
	return s.repo.FindTranslationsByID(ctx, id)
}

// FindPageOfTranslationsByID returns one page of the entity's translations.
func (s *TranslatableService[T, ID, TR]) FindPageOfTranslationsByID(ctx context.Context, id ID, page PageRequest) (Page[TR], error) {
	return s.repo.FindPageOfTranslationsByID(ctx, id, page)
}

// Save persists the entity inside a transaction and returns the persisted
// value.
func (s *TranslatableService[T, ID, TR]) Save(ctx context.Context, entity T) (T, error) {
	var saved T
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		var err error
		saved, err = s.repo.Save(ctx, entity)
		return err
	})
	if err != nil {
		var zero T
		return zero, err
	}
	s.log.DebugContext(ctx, "saved entity", slog.Any("id", saved.ID()))
	return saved, nil
}

// DeleteByLocale removes every entity that has at least one translation with
// the given locale and returns the number of entities removed. It deletes
// the owner rows themselves; sibling translations in other locales go with
// them. Returns 0 without error when nothing matches.
func (s *TranslatableService[T, ID, TR]) DeleteByLocale(ctx context.Context, locale string) (int64, error) {
	var deleted int64
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		var err error
		deleted, err = s.repo.DeleteByLocale(ctx, locale)
		return err
	})
	if err != nil {
		return 0, err
	}
	s.log.DebugContext(ctx, "deleted entities by locale",
		slog.String("locale", locale),
		slog.Int64("count", deleted))
	return deleted, nil
}

// DeleteByIDAndLocale removes the entity only if it has a translation with
// the given locale. Returns 0 without error when nothing matches.
func (s *TranslatableService[T, ID, TR]) DeleteByIDAndLocale(ctx context.Context, id ID, locale string) (int64, error) {
	var deleted int64
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		var err error
		deleted, err = s.repo.DeleteByIDAndLocale(ctx, id, locale)
		return err
	})
	if err != nil {
		return 0, err
	}
	s.log.DebugContext(ctx, "deleted entity by id and locale",
		slog.Any("id", id),
		slog.String("locale", locale),
		slog.Int64("count", deleted))
	return deleted, nil
}
