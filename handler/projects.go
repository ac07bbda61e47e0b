package handler

import (
	baseHttp "net/http"

	"github.com/webfolio/api/database/repository"
	"github.com/webfolio/api/feed"
	"github.com/webfolio/api/handler/payload"
	"github.com/webfolio/api/pkg/http"
	"github.com/webfolio/api/pkg/portal"
)

// ProjectsHandler is the authenticated write side of portfolio projects.
type ProjectsHandler struct {
	Projects  *repository.Projects
	Validator *portal.Validator
}

func MakeProjectsHandler(projects *repository.Projects) ProjectsHandler {
	return ProjectsHandler{
		Projects:  projects,
		Validator: portal.GetDefaultValidator(),
	}
}

func (h ProjectsHandler) Store(w baseHttp.ResponseWriter, r *baseHttp.Request) *http.ApiError {
	claims, apiErr := authClaims(r)
	if apiErr != nil {
		return apiErr
	}

	request, closer, err := http.ParseRequestBody[payload.ProjectStoreRequest](r)
	defer closer()

	if err != nil {
		return http.LogBadRequestError("could not parse the project payload", err)
	}

	if rejected, _ := h.Validator.Rejects(request); rejected {
		return validationError(h.Validator)
	}

	project, err := h.Projects.Create(request.ToAttrs(claims.UserID))
	if err != nil {
		return asApiError(err)
	}

	resp := http.MakeNoCacheResponse(w, r)
	if err = resp.RespondCreated("project created", feed.MakeProjectItem(*project)); err != nil {
		return http.LogInternalError("could not encode the created project", err)
	}

	return nil
}

func (h ProjectsHandler) Update(w baseHttp.ResponseWriter, r *baseHttp.Request) *http.ApiError {
	claims, apiErr := authClaims(r)
	if apiErr != nil {
		return apiErr
	}

	id, apiErr := pathID(r)
	if apiErr != nil {
		return apiErr
	}

	request, closer, err := http.ParseRequestBody[payload.ProjectUpdateRequest](r)
	defer closer()

	if err != nil {
		return http.LogBadRequestError("could not parse the project payload", err)
	}

	if rejected, _ := h.Validator.Rejects(request); rejected {
		return validationError(h.Validator)
	}

	project, err := h.Projects.Update(claims.UserID, id, request.ToPatch())
	if err != nil {
		return asApiError(err)
	}

	resp := http.MakeNoCacheResponse(w, r)
	if err = resp.RespondOk("project updated", feed.MakeProjectItem(*project)); err != nil {
		return http.LogInternalError("could not encode the updated project", err)
	}

	return nil
}

func (h ProjectsHandler) Delete(w baseHttp.ResponseWriter, r *baseHttp.Request) *http.ApiError {
	claims, apiErr := authClaims(r)
	if apiErr != nil {
		return apiErr
	}

	id, apiErr := pathID(r)
	if apiErr != nil {
		return apiErr
	}

	if err := h.Projects.Delete(claims.UserID, id); err != nil {
		return asApiError(err)
	}

	resp := http.MakeNoCacheResponse(w, r)
	if err := resp.RespondOk("project deleted", nil); err != nil {
		return http.LogInternalError("could not encode the delete response", err)
	}

	return nil
}
