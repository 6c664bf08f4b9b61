package listview

// DefaultPageSize is the number of records per page
const DefaultPageSize = 50

// Page is one slice of a paginated collection
type Page[T any] struct {
	Items      []T
	Number     int // effective 1-based page after clamping
	TotalPages int // 0 when the collection is empty
	Offset     int // index of Items[0] within the collection
	TotalItems int
}

// HasPrevious reports whether a page precedes this one
func (p Page[T]) HasPrevious() bool {
	return p.Number > 1
}

// HasNext reports whether a page follows this one
func (p Page[T]) HasNext() bool {
	return p.Number < p.TotalPages
}

// TotalPages returns ceil(count / pageSize), 0 for an empty collection
func TotalPages(count, pageSize int) int {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if count <= 0 {
		return 0
	}
	return (count + pageSize - 1) / pageSize
}

// ClampPage bounds requested to [1, max(1, totalPages)]
func ClampPage(requested, totalPages int) int {
	if requested < 1 {
		return 1
	}
	if totalPages < 1 {
		return 1
	}
	if requested > totalPages {
		return totalPages
	}
	return requested
}

// Paginate slices items into the requested page.
// Out-of-range requests are clamped rather than rejected.
func Paginate[T any](items []T, pageSize, requested int) Page[T] {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	total := TotalPages(len(items), pageSize)
	number := ClampPage(requested, total)

	start := (number - 1) * pageSize
	if start > len(items) {
		start = len(items)
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}

	return Page[T]{
		Items:      items[start:end],
		Number:     number,
		TotalPages: total,
		Offset:     start,
		TotalItems: len(items),
	}
}
