package translatable

import "fmt"

// PageRequest describes one page of a result set. Page indexes are
// zero-based.
type PageRequest struct {
	Page int
	Size int
}

// Validate reports whether the request can be executed.
func (p PageRequest) Validate() error {
	if p.Page < 0 {
		return fmt.Errorf("%w: page index %d", ErrInvalidPage, p.Page)
	}
	if p.Size <= 0 {
		return fmt.Errorf("%w: page size %d", ErrInvalidPage, p.Size)
	}
	return nil
}

// Offset returns the number of rows preceding this page.
func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// Page is an ordered subset of a result set plus total-count metadata.
type Page[T any] struct {
	// Items holds the rows of this page, in the repository's
	// deterministic order.
	Items []T

	// TotalCount is the number of rows across all pages at query time.
	TotalCount int64

	// Page and Size echo the request that produced this page.
	Page int
	Size int
}

// TotalPages returns the number of pages needed to cover TotalCount rows.
func (p Page[T]) TotalPages() int {
	if p.Size <= 0 {
		return 0
	}
	return int((p.TotalCount + int64(p.Size) - 1) / int64(p.Size))
}

// HasNext reports whether a page follows this one.
func (p Page[T]) HasNext() bool {
	return p.Page+1 < p.TotalPages()
}
