package payload

import "github.com/webfolio/api/database"

type PostStoreRequest struct {
	Title     string   `json:"title" validate:"required,max=255"`
	Excerpt   string   `json:"excerpt" validate:"required"`
	Content   string   `json:"content" validate:"required"`
	Author    string   `json:"author" validate:"required,max=255"`
	ReadTime  string   `json:"readTime" validate:"omitempty,max=64"`
	Category  string   `json:"category" validate:"required,max=255"`
	Featured  bool     `json:"featured"`
	Published *bool    `json:"published"`
	Tags      []string `json:"tags" validate:"omitempty,dive,max=255"`
}

func (p PostStoreRequest) ToAttrs(userID uint64) database.PostsAttrs {
	published := true
	if p.Published != nil {
		published = *p.Published
	}

	return database.PostsAttrs{
		UserID:    userID,
		Title:     p.Title,
		Excerpt:   p.Excerpt,
		Content:   p.Content,
		Author:    p.Author,
		ReadTime:  p.ReadTime,
		Category:  p.Category,
		Featured:  p.Featured,
		Published: published,
		Tags:      p.Tags,
	}
}

type PostUpdateRequest struct {
	Title     *string   `json:"title" validate:"omitempty,max=255"`
	Excerpt   *string   `json:"excerpt"`
	Content   *string   `json:"content"`
	Author    *string   `json:"author" validate:"omitempty,max=255"`
	ReadTime  *string   `json:"readTime" validate:"omitempty,max=64"`
	Category  *string   `json:"category" validate:"omitempty,max=255"`
	Featured  *bool     `json:"featured"`
	Published *bool     `json:"published"`
	Tags      *[]string `json:"tags" validate:"omitempty,dive,max=255"`
}

func (p PostUpdateRequest) ToPatch() database.PostsPatch {
	return database.PostsPatch{
		Title:     p.Title,
		Excerpt:   p.Excerpt,
		Content:   p.Content,
		Author:    p.Author,
		ReadTime:  p.ReadTime,
		Category:  p.Category,
		Featured:  p.Featured,
		Published: p.Published,
		Tags:      p.Tags,
	}
}
