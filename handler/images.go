package handler

import (
	"fmt"
	baseHttp "net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/webfolio/api/database"
	"github.com/webfolio/api/database/repository"
	"github.com/webfolio/api/handler/payload"
	"github.com/webfolio/api/pkg/http"
	"github.com/webfolio/api/pkg/image"
)

const maxUploadSize = 10 << 20 // 10MB

// ImagesHandler stores uploads on disk and tracks them in the database.
// Oversized images are scaled down before saving.
type ImagesHandler struct {
	Images *repository.Images
	// Dir is the filesystem directory uploads are written to.
	Dir string
	// PublicPath prefixes the served URL of each upload.
	PublicPath string
}

func MakeImagesHandler(images *repository.Images, dir, publicPath string) ImagesHandler {
	return ImagesHandler{
		Images:     images,
		Dir:        dir,
		PublicPath: strings.TrimRight(publicPath, "/"),
	}
}

func (h ImagesHandler) Store(w baseHttp.ResponseWriter, r *baseHttp.Request) *http.ApiError {
	r.Body = baseHttp.MaxBytesReader(w, r.Body, maxUploadSize)

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return http.LogBadRequestError("the upload is too large or malformed", err)
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		return http.LogBadRequestError("an [image] file field is required", err)
	}
	defer file.Close()

	decoded, format, err := image.Decode(file)
	if err != nil {
		return http.LogBadRequestError("the uploaded file is not a supported image", err)
	}

	decoded = image.Shrink(decoded, image.MaxUploadWidth)

	ext := image.DetermineExtension(header.Filename, format)
	filename := image.BuildFileName(uuid.NewString(), ext, "upload")
	target := filepath.Join(h.Dir, filename)

	if err = os.MkdirAll(h.Dir, 0o755); err != nil {
		return http.LogInternalError("could not prepare the uploads directory", err)
	}

	if err = image.Save(target, decoded, ext, image.DefaultJPEGQuality); err != nil {
		return http.LogInternalError("could not persist the upload", err)
	}

	info, err := os.Stat(target)
	if err != nil {
		return http.LogInternalError("could not inspect the stored upload", err)
	}

	attrs := database.ImagesAttrs{
		Filename:     filename,
		OriginalName: header.Filename,
		MimeType:     image.MIMEFromExtension(ext),
		Size:         info.Size(),
		Path:         target,
		URL:          fmt.Sprintf("%s/%s", h.PublicPath, filename),
		Alt:          strings.TrimSpace(r.FormValue("alt")),
		Type:         parseImageType(r.FormValue("type")),
		PostID:       parseOwnerID(r.FormValue("post_id")),
		ProjectID:    parseOwnerID(r.FormValue("project_id")),
	}

	stored, err := h.Images.Create(attrs)
	if err != nil {
		return asApiError(err)
	}

	resp := http.MakeNoCacheResponse(w, r)
	if err = resp.RespondCreated("image uploaded", payload.MakeImageResponse(stored)); err != nil {
		return http.LogInternalError("could not encode the upload response", err)
	}

	return nil
}

func (h ImagesHandler) Index(w baseHttp.ResponseWriter, r *baseHttp.Request) *http.ApiError {
	filters := repository.ImageFilters{
		PostID:    parseOwnerID(r.URL.Query().Get("post_id")),
		ProjectID: parseOwnerID(r.URL.Query().Get("project_id")),
	}

	if raw := r.URL.Query().Get("type"); raw != "" {
		filters.Type = parseImageType(raw)
	}

	images, err := h.Images.GetAll(filters)
	if err != nil {
		return http.LogInternalError("could not list the uploads", err)
	}

	data := make([]payload.ImageResponse, len(images))
	for i := range images {
		data[i] = payload.MakeImageResponse(&images[i])
	}

	resp := http.MakeNoCacheResponse(w, r)
	if err = resp.RespondOk("images retrieved", data); err != nil {
		return http.LogInternalError("could not encode the images response", err)
	}

	return nil
}

func (h ImagesHandler) Delete(w baseHttp.ResponseWriter, r *baseHttp.Request) *http.ApiError {
	claims, apiErr := authClaims(r)
	if apiErr != nil {
		return apiErr
	}

	id, apiErr := pathID(r)
	if apiErr != nil {
		return apiErr
	}

	if err := h.Images.Delete(claims.UserID, id); err != nil {
		return asApiError(err)
	}

	resp := http.MakeNoCacheResponse(w, r)
	if err := resp.RespondOk("image deleted", nil); err != nil {
		return http.LogInternalError("could not encode the delete response", err)
	}

	return nil
}

func parseImageType(raw string) database.ImageType {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case string(database.ImageCover):
		return database.ImageCover
	default:
		return database.ImageGeneral
	}
}

func parseOwnerID(raw string) *uint64 {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || id == 0 {
		return nil
	}

	return &id
}
