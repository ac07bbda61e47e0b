package client

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/webfolio/api/database/repository/pagination"
	"github.com/webfolio/api/feed"
)

//go:embed fallback.json
var fallbackData []byte

// Fallback is the bundled snapshot of the feed, served when the backend
// cannot be reached. It is read-only.
type Fallback struct {
	items []feed.Item
}

func LoadFallback() (*Fallback, error) {
	var items []feed.Item

	if err := json.Unmarshal(fallbackData, &items); err != nil {
		return nil, fmt.Errorf("issue parsing the bundled snapshot: %w", err)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Date > items[j].Date
	})

	return &Fallback{items: items}, nil
}

// Items filters and windows the snapshot. Search only inspects the title, the
// excerpt and the description; snapshot content is not searched.
func (f *Fallback) Items(query ItemsQuery) *ItemsPage {
	matched := make([]feed.Item, 0, len(f.items))
	needle := strings.ToLower(strings.TrimSpace(query.Search))

	for _, item := range f.items {
		if query.Kind != "" && item.Kind != query.Kind {
			continue
		}

		if needle != "" && !matchesSearch(item, needle) {
			continue
		}

		matched = append(matched, item)
	}

	paginate := pagination.MakePaginate(query.Page, query.Limit)
	paginate.SetNumItems(int64(len(matched)))

	offset := paginate.GetOffset()
	if offset > len(matched) {
		offset = len(matched)
	}

	end := offset + paginate.GetLimit()
	if end > len(matched) {
		end = len(matched)
	}

	return &ItemsPage{
		Items:    matched[offset:end],
		Total:    paginate.GetNumItemsAsInt(),
		Page:     paginate.Page,
		Limit:    paginate.Limit,
		HasMore:  paginate.HasMore(),
		Degraded: true,
	}
}

// Item resolves a snapshot entry by identifier, trying a numeric id first,
// then the exact slug, then a case-insensitive slug match.
func (f *Fallback) Item(key string) (*feed.Item, error) {
	trimmed := strings.TrimSpace(key)

	if id, err := strconv.ParseUint(trimmed, 10, 64); err == nil {
		for _, item := range f.items {
			if item.ID == id {
				return &item, nil
			}
		}
	}

	for _, item := range f.items {
		if item.Slug == trimmed {
			return &item, nil
		}
	}

	lowered := strings.ToLower(trimmed)
	for _, item := range f.items {
		if strings.ToLower(item.Slug) == lowered {
			return &item, nil
		}
	}

	return nil, fmt.Errorf("no snapshot item with key [%s]: %w", key, ErrNotFound)
}

func matchesSearch(item feed.Item, needle string) bool {
	return strings.Contains(strings.ToLower(item.Title), needle) ||
		strings.Contains(strings.ToLower(item.Excerpt), needle) ||
		strings.Contains(strings.ToLower(item.Description), needle)
}
