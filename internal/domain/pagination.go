package domain

// PageRequest is a page-aligned window over a result set.
//
// The boundary supplies an element offset `from` and a page size; the page
// index is from/size with integer division, so a `from` that is not a multiple
// of `size` rounds down to the page boundary. That coercion is part of the
// API contract, not an accident.
type PageRequest struct {
	Page int
	Size int
}

// NewPageRequest validates the from/size pair and maps it onto a page index.
func NewPageRequest(from, size int) (PageRequest, error) {
	if from < 0 {
		return PageRequest{}, NewValidationError("from must not be negative")
	}
	if size <= 0 {
		return PageRequest{}, NewValidationError("size must be positive")
	}
	return PageRequest{Page: from / size, Size: size}, nil
}

// Offset returns the element offset of the page start.
func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// Limit returns the maximum number of elements in the page.
func (p PageRequest) Limit() int {
	return p.Size
}

// PaginatedResult wraps a page of items together with the total count.
type PaginatedResult[T any] struct {
	Items []T
	Total int64
	Page  int
	Limit int
}

// NewPaginatedResult creates a PaginatedResult from a page of items.
func NewPaginatedResult[T any](items []T, total int64, page, limit int) PaginatedResult[T] {
	return PaginatedResult[T]{Items: items, Total: total, Page: page, Limit: limit}
}
