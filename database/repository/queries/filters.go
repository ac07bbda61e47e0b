package queries

import (
	"strings"

	"github.com/webfolio/api/database"
	"github.com/webfolio/api/pkg/portal"
)

// ItemFilters narrows both posts and projects listings. All string filters
// perform a case-insensitive partial match.
type ItemFilters struct {
	Text     string
	Tag      string
	Category string
	// Status only applies to projects.
	Status database.ProjectStatus
	// Featured is a tri-state: nil means "any".
	Featured  *bool
	Published bool
}

func (f ItemFilters) GetText() string {
	return f.sanitiseString(f.Text)
}

func (f ItemFilters) GetTag() string {
	return f.sanitiseString(f.Tag)
}

func (f ItemFilters) GetCategory() string {
	return f.sanitiseString(f.Category)
}

func (f ItemFilters) sanitiseString(seed string) string {
	str := portal.MakeStringable(seed)

	return strings.TrimSpace(str.ToLower())
}
