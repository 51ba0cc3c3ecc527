package translatable

import "errors"

// Sentinel errors returned by repositories and services.
var (
	// ErrNotFound is returned by single-row lookups when no row matches,
	// and by TranslationService.DeleteByOwnerIDAndLocale when the guarded
	// translation does not exist.
	ErrNotFound = errors.New("translatable: not found")

	// ErrNoLocale is returned by TranslationService.DeleteByLocale when no
	// translation exists for the given locale.
	ErrNoLocale = errors.New("translatable: no translations for locale")

	// ErrInvalidPage is returned when a page request has a negative page
	// index or a non-positive size.
	ErrInvalidPage = errors.New("translatable: invalid page request")

	// ErrNameLookupUnsupported is returned by
	// TranslationService.FindByNameAndLocale when the underlying repository
	// does not implement NamedTranslationRepository.
	ErrNameLookupUnsupported = errors.New("translatable: repository does not support name lookups")
)
