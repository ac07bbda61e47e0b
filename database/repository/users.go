package repository

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/webfolio/api/database"
	"github.com/webfolio/api/pkg/gorm"
)

type Users struct {
	DB *database.Connection
}

func (u Users) Create(attrs database.UsersAttrs) (*database.User, error) {
	if strings.TrimSpace(attrs.Username) == "" || strings.TrimSpace(attrs.Email) == "" {
		return nil, fmt.Errorf("username and email are required: %w", ErrValidation)
	}

	role := attrs.Role
	if role == "" {
		role = database.UserRole
	}

	user := database.User{
		UUID:         uuid.NewString(),
		Username:     attrs.Username,
		Email:        attrs.Email,
		PasswordHash: attrs.PasswordHash,
		Role:         role,
	}

	if result := u.DB.Sql().Create(&user); gorm.HasDbIssues(result.Error) {
		if gorm.IsDuplicated(result.Error) {
			return nil, fmt.Errorf("username or email already taken: %w", ErrConflict)
		}

		return nil, fmt.Errorf("issue creating user [%s]: %s", attrs.Username, result.Error)
	}

	return &user, nil
}

func (u Users) FindByEmail(email string) *database.User {
	user := database.User{}

	result := u.DB.Sql().
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user)

	if gorm.HasDbIssues(result.Error) {
		return nil
	}

	return &user
}

func (u Users) FindByUsername(username string) *database.User {
	user := database.User{}

	result := u.DB.Sql().
		Where("LOWER(username) = ?", strings.ToLower(strings.TrimSpace(username))).
		First(&user)

	if gorm.HasDbIssues(result.Error) {
		return nil
	}

	return &user
}

func (u Users) FindByID(id uint64) *database.User {
	user := database.User{}

	if result := u.DB.Sql().First(&user, id); gorm.HasDbIssues(result.Error) {
		return nil
	}

	return &user
}

func (u Users) Count() (int64, error) {
	var total int64

	if err := u.DB.Sql().Model(&database.User{}).Count(&total).Error; err != nil {
		return 0, err
	}

	return total, nil
}
