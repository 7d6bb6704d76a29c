package api

// The console filters and paginates list results locally; these helpers keep
// that logic out of the command layer.

type Page[T any] struct {
	Items []T
	Total int
	Page  int
	Limit int
}

// Paginate slices items for a 1-based page of the given size. An out-of-range
// page yields an empty item list with the totals intact.
func Paginate[T any](items []T, page, limit int) Page[T] {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = len(items)
		if limit == 0 {
			limit = 1
		}
	}

	start := (page - 1) * limit
	end := start + limit
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}

	return Page[T]{
		Items: items[start:end],
		Total: len(items),
		Page:  page,
		Limit: limit,
	}
}

// Filter returns the items keep accepts, preserving order.
func Filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}
