package database

type UsersAttrs struct {
	Username     string
	Email        string
	PasswordHash string
	Role         string
}

type PostsAttrs struct {
	UserID   uint64
	Title    string
	Excerpt  string
	Content  string
	Author   string
	ReadTime string
	Category string
	Featured bool
	// Published defaults to true at the handler boundary.
	Published bool
	Tags      []string
}

// PostsPatch carries the mutable fields of an update. Nil pointers mean
// "leave unchanged"; a non-nil Tags slice replaces the whole association set.
type PostsPatch struct {
	Title     *string
	Excerpt   *string
	Content   *string
	Author    *string
	ReadTime  *string
	Category  *string
	Featured  *bool
	Published *bool
	Tags      *[]string
}

type ProjectsAttrs struct {
	UserID       uint64
	Title        string
	Description  string
	Content      string
	Category     string
	Status       ProjectStatus
	DemoURL      string
	GithubURL    string
	Featured     bool
	Published    bool
	Technologies []string
}

type ProjectsPatch struct {
	Title        *string
	Description  *string
	Content      *string
	Category     *string
	Status       *ProjectStatus
	DemoURL      *string
	GithubURL    *string
	Featured     *bool
	Published    *bool
	Technologies *[]string
}

type ImagesAttrs struct {
	Filename     string
	OriginalName string
	MimeType     string
	Size         int64
	Path         string
	URL          string
	Alt          string
	Type         ImageType
	PostID       *uint64
	ProjectID    *uint64
}
