package paging

// PaginatedData is one page of a remote collection as returned by the API.
type PaginatedData[T any] struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	Size        int `json:"size"`
	TotalItems  int `json:"totalItems"`
	Items       []T `json:"items"`
}

// Normalize repairs a decoded page so that 1 <= CurrentPage, counts are
// non-negative, Size is positive and len(Items) <= Size.
func (d PaginatedData[T]) Normalize() PaginatedData[T] {
	if d.TotalPages < 0 {
		d.TotalPages = 0
	}
	if d.TotalItems < 0 {
		d.TotalItems = 0
	}
	if d.Size <= 0 {
		d.Size = DefaultSize
	}
	if d.CurrentPage < 1 {
		d.CurrentPage = 1
	}
	if d.TotalPages > 0 && d.CurrentPage > d.TotalPages {
		d.CurrentPage = d.TotalPages
	}
	if len(d.Items) > d.Size {
		d.Items = d.Items[:d.Size]
	}
	if d.Items == nil {
		d.Items = []T{}
	}
	return d
}

// HasPrevious reports whether a page precedes the current one.
func (d PaginatedData[T]) HasPrevious() bool {
	return d.CurrentPage > 1
}

// HasNext reports whether a page follows the current one.
func (d PaginatedData[T]) HasNext() bool {
	return d.CurrentPage < d.TotalPages
}

// PageCount returns TotalPages, or 1 for an empty collection.
func (d PaginatedData[T]) PageCount() int {
	if d.TotalPages < 1 {
		return 1
	}
	return d.TotalPages
}

// PageWindow returns consecutive page numbers centered on current, at most
// 2*radius+1 wide and clipped to [1, total].
func PageWindow(current, total, radius int) []int {
	if total < 1 {
		return []int{1}
	}
	if radius < 0 {
		radius = 0
	}
	current = min(max(current, 1), total)
	start := max(1, current-radius)
	end := min(total, current+radius)
	for end-start < 2*radius && (start > 1 || end < total) {
		if start > 1 {
			start--
		} else {
			end++
		}
	}
	pages := make([]int, 0, end-start+1)
	for n := start; n <= end; n++ {
		pages = append(pages, n)
	}
	return pages
}
