package repository

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	stdgorm "gorm.io/gorm"

	"github.com/webfolio/api/database"
	"github.com/webfolio/api/pkg/gorm"
	"github.com/webfolio/api/pkg/portal"
)

type Tags struct {
	DB *database.Connection
}

func (t Tags) FindBy(slug string) *database.Tag {
	tag := database.Tag{}

	result := t.DB.Sql().
		Where("LOWER(slug) = ?", strings.ToLower(slug)).
		First(&tag)

	if gorm.HasDbIssues(result.Error) {
		return nil
	}

	if strings.Trim(tag.UUID, " ") != "" {
		return &tag
	}

	return nil
}

// Upsert finds a tag by exact name or creates it. It runs against the given
// handle so callers can keep it inside their own transaction.
func (t Tags) Upsert(tx *stdgorm.DB, name string) (*database.Tag, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, fmt.Errorf("tag name cannot be empty: %w", ErrValidation)
	}

	tag := database.Tag{}
	result := tx.Where("name = ?", trimmed).First(&tag)

	if result.Error == nil {
		return &tag, nil
	}

	if gorm.IsFoundButHasErrors(result.Error) {
		return nil, fmt.Errorf("issue finding tag [%s]: %s", trimmed, result.Error)
	}

	tag = database.Tag{
		UUID: uuid.NewString(),
		Name: trimmed,
		Slug: portal.MakeStringable(trimmed).ToSlug(),
	}

	if create := tx.Create(&tag); gorm.HasDbIssues(create.Error) {
		if gorm.IsDuplicated(create.Error) {
			return nil, fmt.Errorf("tag [%s] already exists: %w", trimmed, ErrConflict)
		}

		return nil, fmt.Errorf("issue creating tag [%s]: %s", trimmed, create.Error)
	}

	return &tag, nil
}
