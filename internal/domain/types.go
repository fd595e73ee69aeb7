package domain

// DefaultPageSize matches the page size of the travel log and average tables.
const DefaultPageSize = 10

// Pagination carries paging params and totals.
type Pagination struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
	Total    int `json:"total"`
}

// Normalize fills missing or invalid paging params with defaults.
func (p Pagination) Normalize(defaultSize int) Pagination {
	if defaultSize <= 0 {
		defaultSize = DefaultPageSize
	}
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = defaultSize
	}
	return p
}

// Window returns the [start,end) slice bounds of the current page for total items
// and records total on the returned Pagination.
func (p Pagination) Window(total int) (Pagination, int, int) {
	p = p.Normalize(0)
	p.Total = total
	start := (p.Page - 1) * p.PageSize
	if start > total {
		start = total
	}
	end := start + p.PageSize
	if end > total {
		end = total
	}
	return p, start, end
}
