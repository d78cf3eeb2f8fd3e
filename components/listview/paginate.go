package listview

// PageMode selects how non-positive page numbers are handled.
type PageMode int

const (
	// ClampPage treats page < 1 as page 1.
	ClampPage PageMode = iota
	// StrictPage rejects page < 1 with InvalidPageError.
	StrictPage
)

// PageRequest asks for one 1-based page of Size items.
type PageRequest struct {
	Page int      `json:"page" yaml:"page"`
	Size int      `json:"page_size" yaml:"page_size"`
	Mode PageMode `json:"-" yaml:"-"`
}

// PageResult is one page of items plus pagination metadata.
type PageResult[T any] struct {
	Items       []T  `json:"items" yaml:"items"`
	TotalItems  int  `json:"total_items" yaml:"total_items"`
	TotalPages  int  `json:"total_pages" yaml:"total_pages"`
	CurrentPage int  `json:"current_page" yaml:"current_page"`
	PageSize    int  `json:"page_size" yaml:"page_size"`
	HasPrev     bool `json:"has_prev" yaml:"has_prev"`
	HasNext     bool `json:"has_next" yaml:"has_next"`
}

// Paginate slices items into the requested page. An empty input still has
// one (empty) page. Pages past the end clamp to the last page.
func Paginate[T any](items []T, req PageRequest) (PageResult[T], error) {
	if req.Size < 1 {
		return PageResult[T]{}, &InvalidPageSizeError{Size: req.Size}
	}
	if req.Page < 1 && req.Mode == StrictPage {
		return PageResult[T]{}, &InvalidPageError{Page: req.Page}
	}

	total := len(items)
	pages := total / req.Size
	if total%req.Size != 0 {
		pages++
	}
	if pages < 1 {
		pages = 1
	}
	page := min(max(req.Page, 1), pages)

	start := (page - 1) * req.Size
	end := min(start+req.Size, total)
	pageItems := make([]T, end-start)
	copy(pageItems, items[start:end])

	return PageResult[T]{
		Items:       pageItems,
		TotalItems:  total,
		TotalPages:  pages,
		CurrentPage: page,
		PageSize:    req.Size,
		HasPrev:     page > 1,
		HasNext:     page < pages,
	}, nil
}

// Window returns the page numbers to show around the current page.
func (p PageResult[T]) Window(span int) []int {
	return PageWindow(p.CurrentPage, p.TotalPages, span)
}

// PageWindow returns up to span consecutive page numbers centered on current
// and kept inside [1, totalPages]. span <= 0 uses 5.
func PageWindow(current, totalPages, span int) []int {
	if span <= 0 {
		span = 5
	}
	if totalPages < 1 {
		totalPages = 1
	}
	current = min(max(current, 1), totalPages)

	start := max(current-span/2, 1)
	end := start + span - 1
	if end > totalPages {
		end = totalPages
		start = max(end-span+1, 1)
	}
	pages := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		pages = append(pages, i)
	}
	return pages
}
