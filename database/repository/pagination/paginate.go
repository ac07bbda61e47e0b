package pagination

const MinPage = 1
const DefaultLimit = 10
const MaxLimit = 100

type Paginate struct {
	Page  int
	Limit int
	// Offset overrides the page-derived offset when zero or positive.
	Offset   int
	NumItems int64
}

func MakePaginate(page, limit int) Paginate {
	if page < MinPage {
		page = MinPage
	}

	if limit < 1 || limit > MaxLimit {
		limit = DefaultLimit
	}

	return Paginate{Page: page, Limit: limit, Offset: -1}
}

func (a *Paginate) SetNumItems(number int64) {
	a.NumItems = number
}

func (a *Paginate) GetNumItemsAsInt() int64 {
	return a.NumItems
}

func (a *Paginate) GetLimit() int {
	return a.Limit
}

func (a *Paginate) GetOffset() int {
	if a.Offset >= 0 {
		return a.Offset
	}

	return (a.Page - MinPage) * a.Limit
}

// HasMore reports whether another page exists past the current window.
// The boundary case offset+limit == total yields false.
func (a *Paginate) HasMore() bool {
	return int64(a.GetOffset()+a.Limit) < a.NumItems
}
