package feed

import (
	"time"

	"github.com/webfolio/api/database"
)

type Kind string

const (
	KindBlog    Kind = "blog"
	KindProject Kind = "project"
)

func (k Kind) IsValid() bool {
	return k == KindBlog || k == KindProject
}

const blogPlaceholder = "/api/placeholder/800/400"
const projectPlaceholder = "/api/placeholder/800/600"

// Item is the unified read model served by the merged feed. Kind discriminates
// the two shapes: blog items carry the excerpt, author and read time fields,
// project items carry the description, status and link fields.
type Item struct {
	Kind     Kind   `json:"kind"`
	ID       uint64 `json:"id"`
	UUID     string `json:"uuid"`
	Slug     string `json:"slug"`
	Title    string `json:"title"`
	Date     string `json:"date"`
	Content  string `json:"content"`
	Category string `json:"category"`
	Featured bool   `json:"featured"`
	Image    string `json:"image"`

	Excerpt  string   `json:"excerpt,omitempty"`
	Author   string   `json:"author,omitempty"`
	ReadTime string   `json:"readTime,omitempty"`
	Tags     []string `json:"tags,omitempty"`

	Description  string   `json:"description,omitempty"`
	Status       string   `json:"status,omitempty"`
	DemoURL      string   `json:"demoUrl,omitempty"`
	GithubURL    string   `json:"githubUrl,omitempty"`
	Technologies []string `json:"technologies,omitempty"`

	createdAt time.Time
}

func MakePostItem(post database.Post) Item {
	return Item{
		Kind:      KindBlog,
		ID:        post.ID,
		UUID:      post.UUID,
		Slug:      post.Slug,
		Title:     post.Title,
		Date:      post.CreatedAt.Format(time.DateOnly),
		Content:   post.Content,
		Category:  post.Category,
		Featured:  post.Featured,
		Image:     coverImage(post.Images, blogPlaceholder),
		Excerpt:   post.Excerpt,
		Author:    post.Author,
		ReadTime:  post.ReadTime,
		Tags:      tagNames(post.Tags),
		createdAt: post.CreatedAt,
	}
}

func MakeProjectItem(project database.Project) Item {
	return Item{
		Kind:         KindProject,
		ID:           project.ID,
		UUID:         project.UUID,
		Slug:         project.Slug,
		Title:        project.Title,
		Date:         project.CreatedAt.Format(time.DateOnly),
		Content:      project.Content,
		Category:     project.Category,
		Featured:     project.Featured,
		Image:        coverImage(project.Images, projectPlaceholder),
		Description:  project.Description,
		Status:       project.Status.ApiToken(),
		DemoURL:      project.DemoURL,
		GithubURL:    project.GithubURL,
		Technologies: tagNames(project.Technologies),
		createdAt:    project.CreatedAt,
	}
}

func tagNames(tags []database.Tag) []string {
	if len(tags) == 0 {
		return nil
	}

	names := make([]string, len(tags))
	for i, tag := range tags {
		names[i] = tag.Name
	}

	return names
}

// coverImage picks the first cover upload, then the first upload of any kind,
// then the placeholder.
func coverImage(images []database.Image, placeholder string) string {
	for _, image := range images {
		if image.Type == database.ImageCover {
			return image.URL
		}
	}

	if len(images) > 0 {
		return images[0].URL
	}

	return placeholder
}
