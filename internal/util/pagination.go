package util

// NormalizePage clamps page/size query values to sane bounds.
func NormalizePage(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return page, size
}

// PageOffset converts a 1-based page into a row offset.
func PageOffset(page, size int) int {
	return (page - 1) * size
}

// EstimateTotalPages computes the page count for a result set.
func EstimateTotalPages(count int64, size int) int {
	if size <= 0 || count <= 0 {
		return 0
	}
	pages := int(count) / size
	if int(count)%size != 0 {
		pages++
	}
	return pages
}
