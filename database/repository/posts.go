package repository

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	stdgorm "gorm.io/gorm"

	"github.com/webfolio/api/database"
	"github.com/webfolio/api/database/repository/pagination"
	"github.com/webfolio/api/database/repository/queries"
	"github.com/webfolio/api/pkg/gorm"
	"github.com/webfolio/api/pkg/portal"
)

type Posts struct {
	DB   *database.Connection
	Tags *Tags
}

// Create persists a post and its tag associations in a single transaction so
// the slug collision check, the insert, and the tag linkage cannot interleave
// with a concurrent writer.
func (p Posts) Create(attrs database.PostsAttrs) (*database.Post, error) {
	if err := validatePostAttrs(attrs); err != nil {
		return nil, err
	}

	var post database.Post

	err := p.DB.Transaction(func(tx *stdgorm.DB) error {
		slug, err := uniqueSlug(tx, &database.Post{}, attrs.Title, 0)
		if err != nil {
			return err
		}

		readTime := strings.TrimSpace(attrs.ReadTime)
		if readTime == "" {
			readTime = portal.EstimateReadTime(attrs.Content)
		}

		post = database.Post{
			UUID:      uuid.NewString(),
			UserID:    attrs.UserID,
			Slug:      slug,
			Title:     attrs.Title,
			Excerpt:   attrs.Excerpt,
			Content:   attrs.Content,
			Author:    attrs.Author,
			ReadTime:  readTime,
			Category:  attrs.Category,
			Featured:  attrs.Featured,
			Published: attrs.Published,
		}

		if result := tx.Create(&post); gorm.HasDbIssues(result.Error) {
			if gorm.IsDuplicated(result.Error) {
				return fmt.Errorf("slug [%s] was taken concurrently: %w", slug, ErrConflict)
			}

			return fmt.Errorf("issue creating post [%s]: %s", slug, result.Error)
		}

		return p.linkTags(tx, post.ID, attrs.Tags)
	})

	if err != nil {
		return nil, err
	}

	return p.findByID(post.ID)
}

// Update applies the patch after the ownership check. The slug is regenerated
// only when the title changes, and the read time only when the content changes
// without an explicit read time. A present Tags slice replaces the whole
// association set; the replacement shares the update's transaction.
func (p Posts) Update(ownerID, id uint64, patch database.PostsPatch) (*database.Post, error) {
	err := p.DB.Transaction(func(tx *stdgorm.DB) error {
		post := database.Post{}

		if result := tx.First(&post, id); gorm.HasDbIssues(result.Error) {
			if gorm.IsNotFound(result.Error) {
				return fmt.Errorf("post [%d]: %w", id, ErrNotFound)
			}

			return fmt.Errorf("issue finding post [%d]: %s", id, result.Error)
		}

		if post.UserID != ownerID {
			return fmt.Errorf("post [%d] does not belong to user [%d]: %w", id, ownerID, ErrForbidden)
		}

		if patch.Title != nil && *patch.Title != post.Title {
			slug, err := uniqueSlug(tx, &database.Post{}, *patch.Title, post.ID)
			if err != nil {
				return err
			}

			post.Title = *patch.Title
			post.Slug = slug
		}

		if patch.Content != nil && *patch.Content != post.Content {
			post.Content = *patch.Content

			if patch.ReadTime == nil {
				post.ReadTime = portal.EstimateReadTime(post.Content)
			}
		}

		if patch.ReadTime != nil {
			post.ReadTime = *patch.ReadTime
		}

		if patch.Excerpt != nil {
			post.Excerpt = *patch.Excerpt
		}

		if patch.Author != nil {
			post.Author = *patch.Author
		}

		if patch.Category != nil {
			post.Category = *patch.Category
		}

		if patch.Featured != nil {
			post.Featured = *patch.Featured
		}

		if patch.Published != nil {
			post.Published = *patch.Published
		}

		if result := tx.Save(&post); gorm.HasDbIssues(result.Error) {
			if gorm.IsDuplicated(result.Error) {
				return fmt.Errorf("slug [%s] was taken concurrently: %w", post.Slug, ErrConflict)
			}

			return fmt.Errorf("issue updating post [%d]: %s", id, result.Error)
		}

		if patch.Tags != nil {
			if result := tx.Where("post_id = ?", post.ID).Delete(&database.PostTag{}); gorm.HasDbIssues(result.Error) {
				return fmt.Errorf("issue clearing tags for post [%d]: %s", id, result.Error)
			}

			return p.linkTags(tx, post.ID, *patch.Tags)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return p.findByID(id)
}

// Delete removes the post along with its tag associations and images.
func (p Posts) Delete(ownerID, id uint64) error {
	return p.DB.Transaction(func(tx *stdgorm.DB) error {
		post := database.Post{}

		if result := tx.First(&post, id); gorm.HasDbIssues(result.Error) {
			if gorm.IsNotFound(result.Error) {
				return fmt.Errorf("post [%d]: %w", id, ErrNotFound)
			}

			return fmt.Errorf("issue finding post [%d]: %s", id, result.Error)
		}

		if post.UserID != ownerID {
			return fmt.Errorf("post [%d] does not belong to user [%d]: %w", id, ownerID, ErrForbidden)
		}

		if result := tx.Where("post_id = ?", post.ID).Delete(&database.PostTag{}); gorm.HasDbIssues(result.Error) {
			return fmt.Errorf("issue clearing tags for post [%d]: %s", id, result.Error)
		}

		if result := tx.Where("post_id = ?", post.ID).Delete(&database.Image{}); gorm.HasDbIssues(result.Error) {
			return fmt.Errorf("issue clearing images for post [%d]: %s", id, result.Error)
		}

		if result := tx.Delete(&post); gorm.HasDbIssues(result.Error) {
			return fmt.Errorf("issue deleting post [%d]: %s", id, result.Error)
		}

		return nil
	})
}

func (p Posts) FindBy(slug string, publicOnly bool) *database.Post {
	post := database.Post{}

	query := p.DB.Sql().
		Where("LOWER(posts.slug) = ?", strings.ToLower(strings.TrimSpace(slug)))

	if publicOnly {
		query = query.Where("posts.published = ?", true)
	}

	result := query.
		Preload("Tags").
		Preload("Images").
		First(&post)

	if gorm.HasDbIssues(result.Error) {
		return nil
	}

	return &post
}

// GetAll returns one page of posts matching the filters, newest first, with
// the exact matching count.
func (p Posts) GetAll(filters *queries.ItemFilters, paginate pagination.Paginate) (*pagination.Pagination[database.Post], error) {
	var numItems int64
	var posts []database.Post

	query := p.DB.Sql().
		Model(&database.Post{}).
		Where("posts.deleted_at IS NULL")

	queries.ApplyPostsFilters(filters, query)

	if err := pagination.Count[*int64](&numItems, query, p.DB.GetSession(), "posts.id"); err != nil {
		return nil, err
	}

	err := query.
		Preload("Tags").
		Preload("Images").
		Order("posts.created_at DESC, posts.id ASC").
		Limit(paginate.GetLimit()).
		Offset(paginate.GetOffset()).
		Distinct().
		Find(&posts).Error

	if err != nil {
		return nil, err
	}

	paginate.SetNumItems(numItems)

	return pagination.MakePagination[database.Post](posts, paginate), nil
}

// GetMatching returns every post matching the filters, unpaginated. The
// merged feed path sorts and windows the union in memory.
func (p Posts) GetMatching(filters *queries.ItemFilters) ([]database.Post, error) {
	var posts []database.Post

	query := p.DB.Sql().
		Model(&database.Post{}).
		Where("posts.deleted_at IS NULL")

	queries.ApplyPostsFilters(filters, query)

	err := query.
		Preload("Tags").
		Preload("Images").
		Order("posts.created_at DESC, posts.id ASC").
		Distinct().
		Find(&posts).Error

	if err != nil {
		return nil, err
	}

	return posts, nil
}

func (p Posts) findByID(id uint64) (*database.Post, error) {
	post := database.Post{}

	result := p.DB.Sql().
		Preload("Tags").
		Preload("Images").
		First(&post, id)

	if gorm.HasDbIssues(result.Error) {
		return nil, fmt.Errorf("issue reloading post [%d]: %s", id, result.Error)
	}

	return &post, nil
}

func (p Posts) linkTags(tx *stdgorm.DB, postID uint64, names []string) error {
	tags := Tags{DB: p.DB}

	for _, name := range portal.FilterNonEmpty(names) {
		tag, err := tags.Upsert(tx, name)
		if err != nil {
			return err
		}

		trace := database.PostTag{
			PostID: postID,
			TagID:  tag.ID,
		}

		if result := tx.Create(&trace); gorm.HasDbIssues(result.Error) {
			return fmt.Errorf("error linking tag [%s] to post [%d]: %s", name, postID, result.Error)
		}
	}

	return nil
}

func validatePostAttrs(attrs database.PostsAttrs) error {
	missing := make([]string, 0, 5)

	if strings.TrimSpace(attrs.Title) == "" {
		missing = append(missing, "title")
	}

	if strings.TrimSpace(attrs.Excerpt) == "" {
		missing = append(missing, "excerpt")
	}

	if strings.TrimSpace(attrs.Content) == "" {
		missing = append(missing, "content")
	}

	if strings.TrimSpace(attrs.Author) == "" {
		missing = append(missing, "author")
	}

	if strings.TrimSpace(attrs.Category) == "" {
		missing = append(missing, "category")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required fields: %s: %w", strings.Join(missing, ", "), ErrValidation)
	}

	return nil
}

// uniqueSlug derives the slug from the title and disambiguates collisions with
// a unix-time suffix. excludeID keeps an updated row from colliding with
// itself. Callers run this inside the same transaction as the write.
func uniqueSlug(tx *stdgorm.DB, model any, title string, excludeID uint64) (string, error) {
	slug := portal.MakeStringable(title).ToSlug()
	if slug == "" {
		return "", fmt.Errorf("title [%s] yields an empty slug: %w", title, ErrValidation)
	}

	var count int64

	query := tx.Model(model).Where("slug = ?", slug)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}

	if err := query.Count(&count).Error; err != nil {
		return "", fmt.Errorf("issue checking slug [%s]: %s", slug, err)
	}

	if count > 0 {
		slug = fmt.Sprintf("%s-%d", slug, time.Now().UnixMilli())
	}

	return slug, nil
}
