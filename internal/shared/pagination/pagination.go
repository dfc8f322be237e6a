package pagination

// PageSize is the fixed page size used across all list endpoints.
const PageSize = 10

// Page is the external shape of one page of results.
type Page[T any] struct {
	IsLastPage   bool  `json:"is_last_page"`
	CurrentPage  int   `json:"current_page"`
	TotalPages   int   `json:"total_pages"`
	PerPage      int   `json:"per_page"`
	TotalItems   int64 `json:"total_items"`
	Items        []T   `json:"lists"`
	NextPage     *int  `json:"next_page"`
	PreviousPage *int  `json:"previous_page"`
	FirstPage    int   `json:"first_page"`
	LastPage     int   `json:"last_page"`
}

// Normalize clamps a requested page number to a minimum of 1.
func Normalize(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// Offset returns the row offset for a page.
func Offset(page int) int {
	return (Normalize(page) - 1) * PageSize
}

// Shape builds the page envelope around already-fetched items. It is pure:
// repeated calls with the same inputs produce the same result.
func Shape[T any](items []T, page int, total int64) Page[T] {
	page = Normalize(page)
	totalPages := int((total + PageSize - 1) / PageSize)
	if totalPages < 1 {
		totalPages = 1
	}
	if items == nil {
		items = []T{}
	}
	p := Page[T]{
		IsLastPage:  page >= totalPages,
		CurrentPage: page,
		TotalPages:  totalPages,
		PerPage:     PageSize,
		TotalItems:  total,
		Items:       items,
		FirstPage:   1,
		LastPage:    totalPages,
	}
	if page < totalPages {
		next := page + 1
		p.NextPage = &next
	}
	if page > 1 {
		prev := page - 1
		p.PreviousPage = &prev
	}
	return p
}
