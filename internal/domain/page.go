package domain

// Catalog browsing page sizes.
const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// PaginationParams selects one page of catalog results.
// Page is 1-indexed; Limit is between 1 and MaxPageLimit.
type PaginationParams struct {
	Page  int
	Limit int
}

// NewPaginationParams builds a PaginationParams from optional query values.
// Missing or non-positive values fall back to page 1 and DefaultPageLimit;
// a larger limit is capped at MaxPageLimit.
func NewPaginationParams(page, limit *int) PaginationParams {
	p := PaginationParams{Page: 1, Limit: DefaultPageLimit}
	if page != nil && *page >= 1 {
		p.Page = *page
	}
	if limit != nil && *limit >= 1 {
		p.Limit = min(*limit, MaxPageLimit)
	}
	return p
}

// Window returns the [start, end) bounds of the page within a list of n items.
// A page past the end of the list, however large its number, is empty.
func (p PaginationParams) Window(n int) (int, int) {
	if p.Page < 1 || p.Limit < 1 || n <= 0 {
		return 0, 0
	}
	// Compare in page units so (Page-1)*Limit is only computed when it fits in n.
	if p.Page-1 >= (n+p.Limit-1)/p.Limit {
		return n, n
	}
	start := (p.Page - 1) * p.Limit
	return start, start + min(p.Limit, n-start)
}
