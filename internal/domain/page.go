package domain

// PaginationParams carries page/limit values from the HTTP layer down to the
// list operation. Page is 1-indexed. Limit is capped at 100 by NewPaginationParams.
type PaginationParams struct {
	// Page is the current page number, starting at 1.
	Page int
	// Limit is the maximum number of items to return.
	Limit int
}

// NewPaginationParams builds a PaginationParams from optional HTTP query params.
// Nil pointers fall back to sane defaults (page=1, limit=20).
// The limit is capped at 100.
func NewPaginationParams(page, limit *int) PaginationParams {
	p := PaginationParams{Page: 1, Limit: 20}
	if page != nil && *page >= 1 {
		p.Page = *page
	}
	if limit != nil && *limit >= 1 {
		p.Limit = *limit
		if p.Limit > 100 {
			p.Limit = 100
		}
	}
	return p
}

// Offset returns the zero-based index of the first item on the page.
func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Paginate returns the window of trips selected by p, preserving order.
// A page past the end yields an empty, non-nil slice.
func Paginate(trips []Trip, p PaginationParams) []Trip {
	start := p.Offset()
	if start >= len(trips) {
		return []Trip{}
	}
	end := start + p.Limit
	if end > len(trips) {
		end = len(trips)
	}
	return trips[start:end]
}
