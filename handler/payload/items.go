package payload

import (
	baseHttp "net/http"
	"strconv"
	"strings"

	"github.com/webfolio/api/database"
	"github.com/webfolio/api/database/repository/pagination"
	"github.com/webfolio/api/database/repository/queries"
	"github.com/webfolio/api/feed"
)

// PageMeta is the pagination block of list envelopes.
type PageMeta struct {
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	Limit   int   `json:"limit"`
	HasMore bool  `json:"has_more"`
}

func MakePageMeta[T any](page *pagination.Pagination[T]) PageMeta {
	return PageMeta{
		Total:   page.Total,
		Page:    page.Page,
		Limit:   page.Limit,
		HasMore: page.HasMore,
	}
}

// ParseItemsQuery reads the feed query string. Free text arrives as q, with
// search kept as an alias. Unknown type tokens are kept as-is so the service
// can reject them.
func ParseItemsQuery(r *baseHttp.Request, publicOnly bool) feed.Query {
	values := r.URL.Query()

	text := values.Get("q")
	if text == "" {
		text = values.Get("search")
	}

	published := publicOnly
	if raw := strings.TrimSpace(values.Get("published")); raw != "" {
		published = raw == "true" || raw == "1"
	}

	filters := queries.ItemFilters{
		Text:      text,
		Tag:       values.Get("tag"),
		Category:  values.Get("category"),
		Published: published,
	}

	if status := strings.TrimSpace(values.Get("status")); status != "" {
		filters.Status = database.NormaliseStatus(status)
	}

	if featured := strings.TrimSpace(values.Get("featured")); featured != "" {
		flag := featured == "true" || featured == "1"
		filters.Featured = &flag
	}

	page, _ := strconv.Atoi(values.Get("page"))
	limit, _ := strconv.Atoi(values.Get("limit"))

	paginate := pagination.MakePaginate(page, limit)

	// An explicit offset beats the page-derived one.
	if raw := strings.TrimSpace(values.Get("offset")); raw != "" {
		if offset, err := strconv.Atoi(raw); err == nil && offset >= 0 {
			paginate.Offset = offset
		}
	}

	return feed.Query{
		Kind:     feed.Kind(strings.ToLower(strings.TrimSpace(values.Get("type")))),
		Filters:  filters,
		Paginate: paginate,
	}
}
