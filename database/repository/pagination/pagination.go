package pagination

// Pagination holds the data for a single page along with all pagination metadata.
// It's generic and can be used for any data type.
type Pagination[T any] struct {
	Data    []T   `json:"data"`
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	Limit   int   `json:"limit"`
	HasMore bool  `json:"has_more"`
}

func MakePagination[T any](data []T, paginate Paginate) *Pagination[T] {
	return &Pagination[T]{
		Data:    data,
		Total:   paginate.GetNumItemsAsInt(),
		Page:    paginate.Page,
		Limit:   paginate.Limit,
		HasMore: paginate.HasMore(),
	}
}

// HydratePagination transforms a paginated result containing items of a source
// type (S) into a new result containing items of a destination type (D),
// preserving the pagination metadata.
func HydratePagination[S any, D any](source *Pagination[S], mapper func(S) D) *Pagination[D] {
	mappedData := make([]D, len(source.Data))

	for i, item := range source.Data {
		mappedData[i] = mapper(item)
	}

	return &Pagination[D]{
		Data:    mappedData,
		Total:   source.Total,
		Page:    source.Page,
		Limit:   source.Limit,
		HasMore: source.HasMore,
	}
}
