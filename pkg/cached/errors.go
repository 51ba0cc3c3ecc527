package cached

import "errors"

var (
	// ErrNotFound is returned by Cache.Get when a key does not exist or
	// has expired.
	ErrNotFound = errors.New("cached: entry not found")

	// ErrMarshal is returned when value serialization fails.
	ErrMarshal = errors.New("cached: failed to marshal value")

	// ErrUnmarshal is returned when value deserialization fails.
	ErrUnmarshal = errors.New("cached: failed to unmarshal value")
)
