// Package locale provides helpers for working with the locale strings used
// as translation keys.
//
// The core library treats locales as opaque strings and compares them
// exactly; these helpers are for consuming applications that want to
// canonicalize user input before it reaches a repository, or to pick the
// best available translation for a requested language.
//
//	loc, err := locale.Normalize("EN_us") // "en-US"
//	best := locale.Match([]string{"en-US", "de"}, []string{"tr", "en"}) // "en"
package locale
