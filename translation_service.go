package translatable

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// TranslationService wraps a TranslationRepository with transactional
// boundaries and guard checks.
//
// Unlike TranslatableService, the guarded delete operations here fail fast:
// DeleteByOwnerIDAndLocale returns ErrNotFound and DeleteByLocale returns
// ErrNoLocale when nothing matches, before any mutation happens. The guard
// and the delete run in one transaction.
type TranslationService[TR Translation[ID], ID comparable] struct {
	repo TranslationRepository[TR, ID]
	tx   Transactor
	log  *slog.Logger
}

// NewTranslationService creates a service over the given repository. All
// mutating methods run inside tx.
func NewTranslationService[TR Translation[ID], ID comparable](
	repo TranslationRepository[TR, ID],
	tx Transactor,
	opts ...ServiceOption,
) *TranslationService[TR, ID] {
	o := defaultServiceOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &TranslationService[TR, ID]{repo: repo, tx: tx, log: o.log}
}

// Repository returns the wrapped repository, for callers that need queries
// beyond the service surface.
func (s *TranslationService[TR, ID]) Repository() TranslationRepository[TR, ID] {
	return s.repo
}

// ExistsByLocale reports whether at least one translation with the given
// locale exists, across all owners.
func (s *TranslationService[TR, ID]) ExistsByLocale(ctx context.Context, locale string) (bool, error) {
	return s.repo.ExistsByLocale(ctx, locale)
}

// ExistsByOwnerID reports whether the owner has at least one translation.
func (s *TranslationService[TR, ID]) ExistsByOwnerID(ctx context.Context, ownerID ID) (bool, error) {
	return s.repo.ExistsByOwnerID(ctx, ownerID)
}

// ExistsByOwnerIDAndLocale reports whether the owner has a translation with
// the given locale.
func (s *TranslationService[TR, ID]) ExistsByOwnerIDAndLocale(ctx context.Context, ownerID ID, locale string) (bool, error) {
	return s.repo.ExistsByOwnerIDAndLocale(ctx, ownerID, locale)
}

// FindByOwnerID returns every translation of the owner.
func (s *TranslationService[TR, ID]) FindByOwnerID(ctx context.Context, ownerID ID) ([]TR, error) {
	return s.repo.FindByOwnerID(ctx, ownerID)
}

// FindPageByOwnerID returns one page of the owner's translations.
func (s *TranslationService[TR, ID]) FindPageByOwnerID(ctx context.Context, ownerID ID, page PageRequest) (Page[TR], error) {
	return s.repo.FindPageByOwnerID(ctx, ownerID, page)
}

// FindByOwnerIDAndLocale returns the owner's translation for the given
// locale, or ErrNotFound.
func (s *TranslationService[TR, ID]) FindByOwnerIDAndLocale(ctx context.Context, ownerID ID, locale string) (TR, error) {
	return s.repo.FindByOwnerIDAndLocale(ctx, ownerID, locale)
}

// FindByNameAndLocale returns every translation whose name and locale match.
// It requires the repository to implement NamedTranslationRepository and
// returns ErrNameLookupUnsupported otherwise.
func (s *TranslationService[TR, ID]) FindByNameAndLocale(ctx context.Context, name, locale string) ([]TR, error) {
	named, ok := s.repo.(NamedTranslationRepository[TR, ID])
	if !ok {
		return nil, ErrNameLookupUnsupported
	}
	return named.FindByNameAndLocale(ctx, name, locale)
}

// Save persists the translation inside a transaction and returns the
// persisted value.
func (s *TranslationService[TR, ID]) Save(ctx context.Context, translation TR) (TR, error) {
	var saved TR
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		var err error
		saved, err = s.repo.Save(ctx, translation)
		return err
	})
	if err != nil {
		var zero TR
		return zero, err
	}
	s.log.DebugContext(ctx, "saved translation",
		slog.Any("owner_id", saved.OwnerID()),
		slog.String("locale", saved.Locale()))
	return saved, nil
}

// DeleteByOwnerIDAndLocale removes the owner's translation for the given
// locale. It fails with ErrNotFound, leaving all rows unchanged, when no
// such translation exists.
func (s *TranslationService[TR, ID]) DeleteByOwnerIDAndLocale(ctx context.Context, ownerID ID, locale string) (int64, error) {
	var deleted int64
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		if _, err := s.repo.FindByOwnerIDAndLocale(ctx, ownerID, locale); err != nil {
			if errors.Is(err, ErrNotFound) {
				return fmt.Errorf("translation for owner id %v and locale %q: %w", ownerID, locale, err)
			}
			return err
		}
		var err error
		deleted, err = s.repo.DeleteByOwnerIDAndLocale(ctx, ownerID, locale)
		return err
	})
	if err != nil {
		return 0, err
	}
	s.log.DebugContext(ctx, "deleted translation",
		slog.Any("owner_id", ownerID),
		slog.String("locale", locale),
		slog.Int64("count", deleted))
	return deleted, nil
}

// DeleteByLocale removes every translation with the given locale. It fails
// with ErrNoLocale, leaving all rows unchanged, when no translation for the
// locale exists.
func (s *TranslationService[TR, ID]) DeleteByLocale(ctx context.Context, locale string) (int64, error) {
	var deleted int64
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		exists, err := s.repo.ExistsByLocale(ctx, locale)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("%w: %q", ErrNoLocale, locale)
		}
		deleted, err = s.repo.DeleteByLocale(ctx, locale)
		return err
	})
	if err != nil {
		return 0, err
	}
	s.log.DebugContext(ctx, "deleted translations by locale",
		slog.String("locale", locale),
		slog.Int64("count", deleted))
	return deleted, nil
}
