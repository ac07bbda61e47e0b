package feed

import (
	"fmt"
	"sort"

	"github.com/webfolio/api/database/repository"
	"github.com/webfolio/api/database/repository/pagination"
	"github.com/webfolio/api/database/repository/queries"
)

// Service merges posts and projects into a single feed and resolves slugs
// across both kinds.
type Service struct {
	Posts    *repository.Posts
	Projects *repository.Projects
}

func MakeService(posts *repository.Posts, projects *repository.Projects) *Service {
	return &Service{Posts: posts, Projects: projects}
}

type Query struct {
	// Kind restricts the feed to one item kind. Empty means both.
	Kind     Kind
	Filters  queries.ItemFilters
	Paginate pagination.Paginate
}

// ListItems returns one page of the feed, newest first. Kind-restricted
// queries page in the database. The unrestricted feed has no single table to
// page over, so both kinds are fetched in full, merged and windowed here.
func (s Service) ListItems(query Query) (*pagination.Pagination[Item], error) {
	switch query.Kind {
	case KindBlog:
		page, err := s.Posts.GetAll(&query.Filters, query.Paginate)
		if err != nil {
			return nil, err
		}

		return pagination.HydratePagination(page, MakePostItem), nil
	case KindProject:
		page, err := s.Projects.GetAll(&query.Filters, query.Paginate)
		if err != nil {
			return nil, err
		}

		return pagination.HydratePagination(page, MakeProjectItem), nil
	case "":
		return s.listMerged(query)
	default:
		return nil, fmt.Errorf("unknown item kind [%s]: %w", query.Kind, repository.ErrValidation)
	}
}

func (s Service) listMerged(query Query) (*pagination.Pagination[Item], error) {
	posts, err := s.Posts.GetMatching(&query.Filters)
	if err != nil {
		return nil, err
	}

	projects, err := s.Projects.GetMatching(&query.Filters)
	if err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(posts)+len(projects))

	for _, post := range posts {
		items = append(items, MakePostItem(post))
	}

	for _, project := range projects {
		items = append(items, MakeProjectItem(project))
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].createdAt.After(items[j].createdAt)
	})

	paginate := query.Paginate
	paginate.SetNumItems(int64(len(items)))

	return pagination.MakePagination(window(items, paginate), paginate), nil
}

// Resolve finds the published item behind a slug, posts first. A slug living
// in both tables resolves to the post.
func (s Service) Resolve(slug string) (*Item, error) {
	if post := s.Posts.FindBy(slug, true); post != nil {
		item := MakePostItem(*post)

		return &item, nil
	}

	if project := s.Projects.FindBy(slug, true); project != nil {
		item := MakeProjectItem(*project)

		return &item, nil
	}

	return nil, fmt.Errorf("no item with slug [%s]: %w", slug, repository.ErrNotFound)
}

func window(items []Item, paginate pagination.Paginate) []Item {
	offset := paginate.GetOffset()
	if offset >= len(items) {
		return []Item{}
	}

	end := offset + paginate.GetLimit()
	if end > len(items) {
		end = len(items)
	}

	return items[offset:end]
}
