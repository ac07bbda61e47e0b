package repository

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	stdgorm "gorm.io/gorm"

	"github.com/webfolio/api/database"
	"github.com/webfolio/api/database/repository/pagination"
	"github.com/webfolio/api/database/repository/queries"
	"github.com/webfolio/api/pkg/gorm"
	"github.com/webfolio/api/pkg/portal"
)

type Projects struct {
	DB   *database.Connection
	Tags *Tags
}

func (p Projects) Create(attrs database.ProjectsAttrs) (*database.Project, error) {
	if err := validateProjectAttrs(attrs); err != nil {
		return nil, err
	}

	var project database.Project

	err := p.DB.Transaction(func(tx *stdgorm.DB) error {
		slug, err := uniqueSlug(tx, &database.Project{}, attrs.Title, 0)
		if err != nil {
			return err
		}

		project = database.Project{
			UUID:        uuid.NewString(),
			UserID:      attrs.UserID,
			Slug:        slug,
			Title:       attrs.Title,
			Description: attrs.Description,
			Content:     attrs.Content,
			Category:    attrs.Category,
			Status:      attrs.Status,
			DemoURL:     attrs.DemoURL,
			GithubURL:   attrs.GithubURL,
			Featured:    attrs.Featured,
			Published:   attrs.Published,
		}

		if result := tx.Create(&project); gorm.HasDbIssues(result.Error) {
			if gorm.IsDuplicated(result.Error) {
				return fmt.Errorf("slug [%s] was taken concurrently: %w", slug, ErrConflict)
			}

			return fmt.Errorf("issue creating project [%s]: %s", slug, result.Error)
		}

		return p.linkTechnologies(tx, project.ID, attrs.Technologies)
	})

	if err != nil {
		return nil, err
	}

	return p.findByID(project.ID)
}

func (p Projects) Update(ownerID, id uint64, patch database.ProjectsPatch) (*database.Project, error) {
	err := p.DB.Transaction(func(tx *stdgorm.DB) error {
		project := database.Project{}

		if result := tx.First(&project, id); gorm.HasDbIssues(result.Error) {
			if gorm.IsNotFound(result.Error) {
				return fmt.Errorf("project [%d]: %w", id, ErrNotFound)
			}

			return fmt.Errorf("issue finding project [%d]: %s", id, result.Error)
		}

		if project.UserID != ownerID {
			return fmt.Errorf("project [%d] does not belong to user [%d]: %w", id, ownerID, ErrForbidden)
		}

		if patch.Title != nil && *patch.Title != project.Title {
			slug, err := uniqueSlug(tx, &database.Project{}, *patch.Title, project.ID)
			if err != nil {
				return err
			}

			project.Title = *patch.Title
			project.Slug = slug
		}

		if patch.Description != nil {
			project.Description = *patch.Description
		}

		if patch.Content != nil {
			project.Content = *patch.Content
		}

		if patch.Category != nil {
			project.Category = *patch.Category
		}

		if patch.Status != nil {
			if !patch.Status.IsValid() {
				return fmt.Errorf("unknown project status [%s]: %w", *patch.Status, ErrValidation)
			}

			project.Status = *patch.Status
		}

		if patch.DemoURL != nil {
			project.DemoURL = *patch.DemoURL
		}

		if patch.GithubURL != nil {
			project.GithubURL = *patch.GithubURL
		}

		if patch.Featured != nil {
			project.Featured = *patch.Featured
		}

		if patch.Published != nil {
			project.Published = *patch.Published
		}

		if result := tx.Save(&project); gorm.HasDbIssues(result.Error) {
			if gorm.IsDuplicated(result.Error) {
				return fmt.Errorf("slug [%s] was taken concurrently: %w", project.Slug, ErrConflict)
			}

			return fmt.Errorf("issue updating project [%d]: %s", id, result.Error)
		}

		if patch.Technologies != nil {
			if result := tx.Where("project_id = ?", project.ID).Delete(&database.ProjectTag{}); gorm.HasDbIssues(result.Error) {
				return fmt.Errorf("issue clearing technologies for project [%d]: %s", id, result.Error)
			}

			return p.linkTechnologies(tx, project.ID, *patch.Technologies)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return p.findByID(id)
}

func (p Projects) Delete(ownerID, id uint64) error {
	return p.DB.Transaction(func(tx *stdgorm.DB) error {
		project := database.Project{}

		if result := tx.First(&project, id); gorm.HasDbIssues(result.Error) {
			if gorm.IsNotFound(result.Error) {
				return fmt.Errorf("project [%d]: %w", id, ErrNotFound)
			}

			return fmt.Errorf("issue finding project [%d]: %s", id, result.Error)
		}

		if project.UserID != ownerID {
			return fmt.Errorf("project [%d] does not belong to user [%d]: %w", id, ownerID, ErrForbidden)
		}

		if result := tx.Where("project_id = ?", project.ID).Delete(&database.ProjectTag{}); gorm.HasDbIssues(result.Error) {
			return fmt.Errorf("issue clearing technologies for project [%d]: %s", id, result.Error)
		}

		if result := tx.Where("project_id = ?", project.ID).Delete(&database.Image{}); gorm.HasDbIssues(result.Error) {
			return fmt.Errorf("issue clearing images for project [%d]: %s", id, result.Error)
		}

		if result := tx.Delete(&project); gorm.HasDbIssues(result.Error) {
			return fmt.Errorf("issue deleting project [%d]: %s", id, result.Error)
		}

		return nil
	})
}

func (p Projects) FindBy(slug string, publicOnly bool) *database.Project {
	project := database.Project{}

	query := p.DB.Sql().
		Where("LOWER(projects.slug) = ?", strings.ToLower(strings.TrimSpace(slug)))

	if publicOnly {
		query = query.Where("projects.published = ?", true)
	}

	result := query.
		Preload("Technologies").
		Preload("Images").
		First(&project)

	if gorm.HasDbIssues(result.Error) {
		return nil
	}

	return &project
}

func (p Projects) GetAll(filters *queries.ItemFilters, paginate pagination.Paginate) (*pagination.Pagination[database.Project], error) {
	var numItems int64
	var projects []database.Project

	query := p.DB.Sql().
		Model(&database.Project{}).
		Where("projects.deleted_at IS NULL")

	queries.ApplyProjectsFilters(filters, query)

	if err := pagination.Count[*int64](&numItems, query, p.DB.GetSession(), "projects.id"); err != nil {
		return nil, err
	}

	err := query.
		Preload("Technologies").
		Preload("Images").
		Order("projects.created_at DESC, projects.id ASC").
		Limit(paginate.GetLimit()).
		Offset(paginate.GetOffset()).
		Distinct().
		Find(&projects).Error

	if err != nil {
		return nil, err
	}

	paginate.SetNumItems(numItems)

	return pagination.MakePagination[database.Project](projects, paginate), nil
}

func (p Projects) GetMatching(filters *queries.ItemFilters) ([]database.Project, error) {
	var projects []database.Project

	query := p.DB.Sql().
		Model(&database.Project{}).
		Where("projects.deleted_at IS NULL")

	queries.ApplyProjectsFilters(filters, query)

	err := query.
		Preload("Technologies").
		Preload("Images").
		Order("projects.created_at DESC, projects.id ASC").
		Distinct().
		Find(&projects).Error

	if err != nil {
		return nil, err
	}

	return projects, nil
}

func (p Projects) findByID(id uint64) (*database.Project, error) {
	project := database.Project{}

	result := p.DB.Sql().
		Preload("Technologies").
		Preload("Images").
		First(&project, id)

	if gorm.HasDbIssues(result.Error) {
		return nil, fmt.Errorf("issue reloading project [%d]: %s", id, result.Error)
	}

	return &project, nil
}

func (p Projects) linkTechnologies(tx *stdgorm.DB, projectID uint64, names []string) error {
	tags := Tags{DB: p.DB}

	for _, name := range portal.FilterNonEmpty(names) {
		tag, err := tags.Upsert(tx, name)
		if err != nil {
			return err
		}

		trace := database.ProjectTag{
			ProjectID: projectID,
			TagID:     tag.ID,
		}

		if result := tx.Create(&trace); gorm.HasDbIssues(result.Error) {
			return fmt.Errorf("error linking technology [%s] to project [%d]: %s", name, projectID, result.Error)
		}
	}

	return nil
}

func validateProjectAttrs(attrs database.ProjectsAttrs) error {
	missing := make([]string, 0, 4)

	if strings.TrimSpace(attrs.Title) == "" {
		missing = append(missing, "title")
	}

	if strings.TrimSpace(attrs.Description) == "" {
		missing = append(missing, "description")
	}

	if strings.TrimSpace(attrs.Content) == "" {
		missing = append(missing, "content")
	}

	if strings.TrimSpace(attrs.Category) == "" {
		missing = append(missing, "category")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required fields: %s: %w", strings.Join(missing, ", "), ErrValidation)
	}

	if !attrs.Status.IsValid() {
		return fmt.Errorf("unknown project status [%s]: %w", attrs.Status, ErrValidation)
	}

	return nil
}
