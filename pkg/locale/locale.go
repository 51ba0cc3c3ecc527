package locale

import (
	"errors"
	"fmt"

	"golang.org/x/text/language"
)

// ErrInvalidLocale is returned when a string cannot be parsed as a BCP 47
// language tag.
var ErrInvalidLocale = errors.New("locale: invalid locale")

// Normalize parses a locale string and returns its canonical BCP 47 form:
// "EN_us" becomes "en-US", "Tr" becomes "tr".
func Normalize(locale string) (string, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrInvalidLocale, locale, err)
	}
	return tag.String(), nil
}

// IsValid reports whether the string parses as a BCP 47 language tag.
func IsValid(locale string) bool {
	_, err := language.Parse(locale)
	return err == nil
}

// Match returns the entry of available that best serves the caller's
// preferred locales, in preference order. Unparseable entries are skipped.
// When nothing matches, the first available locale is returned; when
// available is empty, the empty string.
func Match(preferred, available []string) string {
	if len(available) == 0 {
		return ""
	}

	tags := make([]language.Tag, 0, len(available))
	indexes := make([]int, 0, len(available))
	for i, a := range available {
		tag, err := language.Parse(a)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
		indexes = append(indexes, i)
	}
	if len(tags) == 0 {
		return available[0]
	}

	wanted := make([]language.Tag, 0, len(preferred))
	for _, p := range preferred {
		if tag, err := language.Parse(p); err == nil {
			wanted = append(wanted, tag)
		}
	}
	if len(wanted) == 0 {
		return available[0]
	}

	matcher := language.NewMatcher(tags)
	_, idx, conf := matcher.Match(wanted...)
	if conf == language.No {
		return available[0]
	}
	return available[indexes[idx]]
}
