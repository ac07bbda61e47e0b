package repository

import (
	"fmt"

	"github.com/google/uuid"
	stdgorm "gorm.io/gorm"

	"github.com/webfolio/api/database"
	"github.com/webfolio/api/pkg/gorm"
)

type Images struct {
	DB *database.Connection
}

type ImageFilters struct {
	Type      database.ImageType
	PostID    *uint64
	ProjectID *uint64
}

func (i Images) Create(attrs database.ImagesAttrs) (*database.Image, error) {
	if attrs.PostID != nil && attrs.ProjectID != nil {
		return nil, fmt.Errorf("an image references a post or a project, never both: %w", ErrValidation)
	}

	imageType := attrs.Type
	if imageType == "" {
		imageType = database.ImageGeneral
	}

	image := database.Image{
		UUID:         uuid.NewString(),
		Filename:     attrs.Filename,
		OriginalName: attrs.OriginalName,
		MimeType:     attrs.MimeType,
		Size:         attrs.Size,
		Path:         attrs.Path,
		URL:          attrs.URL,
		Alt:          attrs.Alt,
		Type:         imageType,
		PostID:       attrs.PostID,
		ProjectID:    attrs.ProjectID,
	}

	if result := i.DB.Sql().Create(&image); gorm.HasDbIssues(result.Error) {
		return nil, fmt.Errorf("issue creating image [%s]: %s", attrs.Filename, result.Error)
	}

	return &image, nil
}

func (i Images) GetAll(filters ImageFilters) ([]database.Image, error) {
	var images []database.Image

	query := i.DB.Sql().Model(&database.Image{})

	if filters.Type != "" {
		query = query.Where("images.type = ?", string(filters.Type))
	}

	if filters.PostID != nil {
		query = query.Where("images.post_id = ?", *filters.PostID)
	}

	if filters.ProjectID != nil {
		query = query.Where("images.project_id = ?", *filters.ProjectID)
	}

	if err := query.Order("images.created_at DESC").Find(&images).Error; err != nil {
		return nil, err
	}

	return images, nil
}

// Delete removes the image once the caller proves ownership of the item the
// image belongs to. Orphan images (no owning item) can be removed by any
// authenticated writer.
func (i Images) Delete(ownerID, id uint64) error {
	return i.DB.Transaction(func(tx *stdgorm.DB) error {
		image := database.Image{}

		if result := tx.First(&image, id); gorm.HasDbIssues(result.Error) {
			if gorm.IsNotFound(result.Error) {
				return fmt.Errorf("image [%d]: %w", id, ErrNotFound)
			}

			return fmt.Errorf("issue finding image [%d]: %s", id, result.Error)
		}

		if image.PostID != nil {
			post := database.Post{}
			if result := tx.First(&post, *image.PostID); result.Error == nil && post.UserID != ownerID {
				return fmt.Errorf("image [%d] belongs to someone else's post: %w", id, ErrForbidden)
			}
		}

		if image.ProjectID != nil {
			project := database.Project{}
			if result := tx.First(&project, *image.ProjectID); result.Error == nil && project.UserID != ownerID {
				return fmt.Errorf("image [%d] belongs to someone else's project: %w", id, ErrForbidden)
			}
		}

		if result := tx.Delete(&image); gorm.HasDbIssues(result.Error) {
			return fmt.Errorf("issue deleting image [%d]: %s", id, result.Error)
		}

		return nil
	})
}
