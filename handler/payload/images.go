package payload

import (
	"time"

	"github.com/webfolio/api/database"
)

type ImageResponse struct {
	ID           uint64    `json:"id"`
	UUID         string    `json:"uuid"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"original_name"`
	MimeType     string    `json:"mime_type"`
	Size         int64     `json:"size"`
	URL          string    `json:"url"`
	Alt          string    `json:"alt,omitempty"`
	Type         string    `json:"type"`
	PostID       *uint64   `json:"post_id,omitempty"`
	ProjectID    *uint64   `json:"project_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func MakeImageResponse(image *database.Image) ImageResponse {
	return ImageResponse{
		ID:           image.ID,
		UUID:         image.UUID,
		Filename:     image.Filename,
		OriginalName: image.OriginalName,
		MimeType:     image.MimeType,
		Size:         image.Size,
		URL:          image.URL,
		Alt:          image.Alt,
		Type:         string(image.Type),
		PostID:       image.PostID,
		ProjectID:    image.ProjectID,
		CreatedAt:    image.CreatedAt,
	}
}
