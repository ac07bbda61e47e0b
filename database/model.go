package database

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

const DriverName = "postgres"

const AdminRole = "ADMIN"
const UserRole = "USER"

// ProjectStatus is the stored form of a project status. The API exchanges the
// lowercase-hyphenated form (`in-progress`); the database keeps the
// uppercase-underscored form (`IN_PROGRESS`).
type ProjectStatus string

const (
	StatusCompleted  ProjectStatus = "COMPLETED"
	StatusInProgress ProjectStatus = "IN_PROGRESS"
	StatusPlanned    ProjectStatus = "PLANNED"
)

// NormaliseStatus converts an API status token into its stored form.
// Unknown tokens come back as-is so the validation layer can reject them.
func NormaliseStatus(api string) ProjectStatus {
	token := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(api), "-", "_"))

	return ProjectStatus(token)
}

// ApiToken returns the public lowercase-hyphenated form of the status.
func (s ProjectStatus) ApiToken() string {
	return strings.ToLower(strings.ReplaceAll(string(s), "_", "-"))
}

func (s ProjectStatus) IsValid() bool {
	switch s {
	case StatusCompleted, StatusInProgress, StatusPlanned:
		return true
	}

	return false
}

// ImageType flags the role an uploaded image plays for its owning item.
type ImageType string

const (
	ImageCover   ImageType = "COVER"
	ImageGeneral ImageType = "GENERAL"
)

type User struct {
	ID           uint64         `gorm:"primaryKey"`
	UUID         string         `gorm:"type:uuid;uniqueIndex;not null"`
	Username     string         `gorm:"size:255;uniqueIndex;not null"`
	Email        string         `gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string         `gorm:"size:255;not null"`
	Role         string         `gorm:"size:32;not null;default:USER"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`

	Posts    []Post    `gorm:"foreignKey:UserID"`
	Projects []Project `gorm:"foreignKey:UserID"`
}

type Post struct {
	ID        uint64         `gorm:"primaryKey"`
	UUID      string         `gorm:"type:uuid;uniqueIndex;not null"`
	UserID    uint64         `gorm:"index;not null"`
	Slug      string         `gorm:"size:255;uniqueIndex;not null"`
	Title     string         `gorm:"size:255;not null"`
	Excerpt   string         `gorm:"type:text;not null"`
	Content   string         `gorm:"type:text;not null"`
	Author    string         `gorm:"size:255;not null"`
	ReadTime  string         `gorm:"size:64;not null"`
	Category  string         `gorm:"size:255;not null"`
	Featured  bool           `gorm:"not null;default:false"`
	// Published carries no column default: gorm drops zero-valued fields
	// that have one, which would turn a draft into a published row.
	Published bool           `gorm:"not null"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`

	Owner  User    `gorm:"foreignKey:UserID"`
	Tags   []Tag   `gorm:"many2many:post_tags;"`
	Images []Image `gorm:"foreignKey:PostID"`
}

type Project struct {
	ID          uint64         `gorm:"primaryKey"`
	UUID        string         `gorm:"type:uuid;uniqueIndex;not null"`
	UserID      uint64         `gorm:"index;not null"`
	Slug        string         `gorm:"size:255;uniqueIndex;not null"`
	Title       string         `gorm:"size:255;not null"`
	Description string         `gorm:"type:text;not null"`
	Content     string         `gorm:"type:text;not null"`
	Category    string         `gorm:"size:255;not null"`
	Status      ProjectStatus  `gorm:"size:32;not null;default:PLANNED"`
	DemoURL     string         `gorm:"size:2048"`
	GithubURL   string         `gorm:"size:2048"`
	Featured    bool           `gorm:"not null;default:false"`
	Published   bool           `gorm:"not null"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`

	Owner        User    `gorm:"foreignKey:UserID"`
	Technologies []Tag   `gorm:"many2many:project_tags;"`
	Images       []Image `gorm:"foreignKey:ProjectID"`
}

// Tag rows are shared between blog tags and project technologies: a tag named
// "React" used in both contexts is the same row.
type Tag struct {
	ID        uint64         `gorm:"primaryKey"`
	UUID      string         `gorm:"type:uuid;uniqueIndex;not null"`
	Name      string         `gorm:"size:255;uniqueIndex;not null"`
	Slug      string         `gorm:"size:255;index;not null"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

type PostTag struct {
	PostID uint64 `gorm:"primaryKey"`
	TagID  uint64 `gorm:"primaryKey"`
}

func (PostTag) TableName() string {
	return "post_tags"
}

type ProjectTag struct {
	ProjectID uint64 `gorm:"primaryKey"`
	TagID     uint64 `gorm:"primaryKey"`
}

func (ProjectTag) TableName() string {
	return "project_tags"
}

// Image references at most one of PostID / ProjectID, never both.
type Image struct {
	ID           uint64         `gorm:"primaryKey"`
	UUID         string         `gorm:"type:uuid;uniqueIndex;not null"`
	Filename     string         `gorm:"size:255;not null"`
	OriginalName string         `gorm:"size:255;not null"`
	MimeType     string         `gorm:"size:128;not null"`
	Size         int64          `gorm:"not null"`
	Path         string         `gorm:"size:2048;not null"`
	URL          string         `gorm:"size:2048;not null"`
	Alt          string         `gorm:"size:255"`
	Type         ImageType      `gorm:"size:32;not null;default:GENERAL"`
	PostID       *uint64        `gorm:"index"`
	ProjectID    *uint64        `gorm:"index"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}
