package payload

import "github.com/webfolio/api/database"

type ProjectStoreRequest struct {
	Title        string   `json:"title" validate:"required,max=255"`
	Description  string   `json:"description" validate:"required"`
	Content      string   `json:"content" validate:"required"`
	Category     string   `json:"category" validate:"required,max=255"`
	Status       string   `json:"status" validate:"omitempty,max=32"`
	DemoURL      string   `json:"demoUrl" validate:"omitempty,url"`
	GithubURL    string   `json:"githubUrl" validate:"omitempty,url"`
	Featured     bool     `json:"featured"`
	Published    *bool    `json:"published"`
	Technologies []string `json:"technologies" validate:"omitempty,dive,max=255"`
}

func (p ProjectStoreRequest) ToAttrs(userID uint64) database.ProjectsAttrs {
	published := true
	if p.Published != nil {
		published = *p.Published
	}

	status := database.StatusPlanned
	if p.Status != "" {
		status = database.NormaliseStatus(p.Status)
	}

	return database.ProjectsAttrs{
		UserID:       userID,
		Title:        p.Title,
		Description:  p.Description,
		Content:      p.Content,
		Category:     p.Category,
		Status:       status,
		DemoURL:      p.DemoURL,
		GithubURL:    p.GithubURL,
		Featured:     p.Featured,
		Published:    published,
		Technologies: p.Technologies,
	}
}

type ProjectUpdateRequest struct {
	Title        *string   `json:"title" validate:"omitempty,max=255"`
	Description  *string   `json:"description"`
	Content      *string   `json:"content"`
	Category     *string   `json:"category" validate:"omitempty,max=255"`
	Status       *string   `json:"status" validate:"omitempty,max=32"`
	DemoURL      *string   `json:"demoUrl" validate:"omitempty,url"`
	GithubURL    *string   `json:"githubUrl" validate:"omitempty,url"`
	Featured     *bool     `json:"featured"`
	Published    *bool     `json:"published"`
	Technologies *[]string `json:"technologies" validate:"omitempty,dive,max=255"`
}

func (p ProjectUpdateRequest) ToPatch() database.ProjectsPatch {
	patch := database.ProjectsPatch{
		Title:        p.Title,
		Description:  p.Description,
		Content:      p.Content,
		Category:     p.Category,
		DemoURL:      p.DemoURL,
		GithubURL:    p.GithubURL,
		Featured:     p.Featured,
		Published:    p.Published,
		Technologies: p.Technologies,
	}

	if p.Status != nil {
		status := database.NormaliseStatus(*p.Status)
		patch.Status = &status
	}

	return patch
}
