package catalog

// Paginate slices items into the requested fixed-size page and reports the
// total page count: max(1, ceil(len(items)/pageSize)). The page number is
// clamped into [1, pageCount], so a stale index from before a filter
// change can never point past the end of a shrunk list. An empty list
// yields no items and a page count of one.
func Paginate[T any](items []T, pageSize, page int) ([]T, int) {
	if pageSize <= 0 {
		pageSize = 1
	}
	pageCount := (len(items) + pageSize - 1) / pageSize
	if pageCount < 1 {
		pageCount = 1
	}
	if page < 1 {
		page = 1
	}
	if page > pageCount {
		page = pageCount
	}

	start := (page - 1) * pageSize
	if start >= len(items) {
		return nil, pageCount
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], pageCount
}
