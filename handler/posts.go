package handler

import (
	baseHttp "net/http"

	"github.com/webfolio/api/database/repository"
	"github.com/webfolio/api/feed"
	"github.com/webfolio/api/handler/payload"
	"github.com/webfolio/api/pkg/http"
	"github.com/webfolio/api/pkg/portal"
)

// PostsHandler is the authenticated write side of blog posts.
type PostsHandler struct {
	Posts     *repository.Posts
	Validator *portal.Validator
}

func MakePostsHandler(posts *repository.Posts) PostsHandler {
	return PostsHandler{
		Posts:     posts,
		Validator: portal.GetDefaultValidator(),
	}
}

func (h PostsHandler) Store(w baseHttp.ResponseWriter, r *baseHttp.Request) *http.ApiError {
	claims, apiErr := authClaims(r)
	if apiErr != nil {
		return apiErr
	}

	request, closer, err := http.ParseRequestBody[payload.PostStoreRequest](r)
	defer closer()

	if err != nil {
		return http.LogBadRequestError("could not parse the post payload", err)
	}

	if rejected, _ := h.Validator.Rejects(request); rejected {
		return validationError(h.Validator)
	}

	post, err := h.Posts.Create(request.ToAttrs(claims.UserID))
	if err != nil {
		return asApiError(err)
	}

	resp := http.MakeNoCacheResponse(w, r)
	if err = resp.RespondCreated("post created", feed.MakePostItem(*post)); err != nil {
		return http.LogInternalError("could not encode the created post", err)
	}

	return nil
}

func (h PostsHandler) Update(w baseHttp.ResponseWriter, r *baseHttp.Request) *http.ApiError {
	claims, apiErr := authClaims(r)
	if apiErr != nil {
		return apiErr
	}

	id, apiErr := pathID(r)
	if apiErr != nil {
		return apiErr
	}

	request, closer, err := http.ParseRequestBody[payload.PostUpdateRequest](r)
	defer closer()

	if err != nil {
		return http.LogBadRequestError("could not parse the post payload", err)
	}

	if rejected, _ := h.Validator.Rejects(request); rejected {
		return validationError(h.Validator)
	}

	post, err := h.Posts.Update(claims.UserID, id, request.ToPatch())
	if err != nil {
		return asApiError(err)
	}

	resp := http.MakeNoCacheResponse(w, r)
	if err = resp.RespondOk("post updated", feed.MakePostItem(*post)); err != nil {
		return http.LogInternalError("could not encode the updated post", err)
	}

	return nil
}

func (h PostsHandler) Delete(w baseHttp.ResponseWriter, r *baseHttp.Request) *http.ApiError {
	claims, apiErr := authClaims(r)
	if apiErr != nil {
		return apiErr
	}

	id, apiErr := pathID(r)
	if apiErr != nil {
		return apiErr
	}

	if err := h.Posts.Delete(claims.UserID, id); err != nil {
		return asApiError(err)
	}

	resp := http.MakeNoCacheResponse(w, r)
	if err := resp.RespondOk("post deleted", nil); err != nil {
		return http.LogInternalError("could not encode the delete response", err)
	}

	return nil
}
