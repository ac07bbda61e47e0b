package queries

import (
	"gorm.io/gorm"
)

// ApplyPostsFilters The given query master table is "posts"
func ApplyPostsFilters(filters *ItemFilters, query *gorm.DB) {
	if filters == nil {
		return
	}

	query.Where("posts.published = ?", filters.Published)

	if filters.Featured != nil {
		query.Where("posts.featured = ?", *filters.Featured)
	}

	if filters.GetText() != "" {
		needle := "%" + filters.GetText() + "%"

		query.
			Where("LOWER(posts.title) LIKE ? OR LOWER(posts.excerpt) LIKE ? OR LOWER(posts.content) LIKE ? OR LOWER(posts.author) LIKE ?",
				needle,
				needle,
				needle,
				needle,
			)
	}

	if filters.GetCategory() != "" {
		query.Where("LOWER(posts.category) LIKE ?", "%"+filters.GetCategory()+"%")
	}

	if filters.GetTag() != "" {
		query.
			Joins("JOIN post_tags ON post_tags.post_id = posts.id").
			Joins("JOIN tags ON tags.id = post_tags.tag_id").
			Where("tags.deleted_at IS NULL").
			Where("LOWER(tags.name) LIKE ?", "%"+filters.GetTag()+"%")
	}
}

// ApplyProjectsFilters The given query master table is "projects"
func ApplyProjectsFilters(filters *ItemFilters, query *gorm.DB) {
	if filters == nil {
		return
	}

	query.Where("projects.published = ?", filters.Published)

	if filters.Featured != nil {
		query.Where("projects.featured = ?", *filters.Featured)
	}

	if filters.Status != "" {
		query.Where("projects.status = ?", string(filters.Status))
	}

	if filters.GetText() != "" {
		needle := "%" + filters.GetText() + "%"

		query.
			Where("LOWER(projects.title) LIKE ? OR LOWER(projects.description) LIKE ? OR LOWER(projects.content) LIKE ?",
				needle,
				needle,
				needle,
			)
	}

	if filters.GetCategory() != "" {
		query.Where("LOWER(projects.category) LIKE ?", "%"+filters.GetCategory()+"%")
	}

	if filters.GetTag() != "" {
		query.
			Joins("JOIN project_tags ON project_tags.project_id = projects.id").
			Joins("JOIN tags ON tags.id = project_tags.tag_id").
			Where("tags.deleted_at IS NULL").
			Where("LOWER(tags.name) LIKE ?", "%"+filters.GetTag()+"%")
	}
}
