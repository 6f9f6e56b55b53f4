package repository

// Pagination holds pagination parameters for listing entities. PageNo is
// 1-based; a zero PageSize means no limit.
type Pagination struct {
	PageNo   int32
	PageSize int32
}

// Offset is the number of rows to skip, never negative.
func (p *Pagination) Offset() int32 {
	if p.PageNo <= 1 || p.PageSize <= 0 {
		return 0
	}
	return (p.PageNo - 1) * p.PageSize
}

// Window returns the [start, end) bounds of the page within n items.
func (p *Pagination) Window(n int) (start, end int) {
	start = min(int(p.Offset()), n)
	end = n
	if p.PageSize > 0 {
		end = min(start+int(p.PageSize), n)
	}
	return start, end
}

// FilterOrder carries the raw CEL filter and order_by of a list request.
type FilterOrder struct {
	Filter  string
	OrderBy string
}

func (fo *FilterOrder) GetFilter() string { return fo.Filter }

func (fo *FilterOrder) GetOrderBy() string { return fo.OrderBy }
