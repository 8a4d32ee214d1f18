package response

type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int64 `json:"total_pages"`
	TotalItems int64 `json:"total_items"`
	HasMore    bool  `json:"has_more"`
	From       int   `json:"from"`
	To         int   `json:"to"`
}

// NewPagination describes page (1-based) of pageSize items out of total.
// From and To are 1-based item positions, both zero for an empty page.
func NewPagination(page, pageSize int, total int64) *Pagination {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}
	p := &Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	start := int64((page - 1) * pageSize)
	if start < total {
		end := min(start+int64(pageSize), total)
		p.From = int(start) + 1
		p.To = int(end)
		p.HasMore = end < total
	}
	return p
}

// Bounds returns the slice bounds of the page within a result of n items.
func (p *Pagination) Bounds(n int) (int, int) {
	if p.From == 0 {
		return n, n
	}
	return min(p.From-1, n), min(p.To, n)
}
