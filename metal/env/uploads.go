package env

type UploadsEnvironment struct {
	Dir string `validate:"required,min=1"`
	// PublicPath prefixes the URL uploads are served from.
	PublicPath string `validate:"required,min=1"`
}
