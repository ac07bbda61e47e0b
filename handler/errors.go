package handler

import (
	"errors"
	baseHttp "net/http"
	"strconv"

	"github.com/webfolio/api/database/repository"
	"github.com/webfolio/api/pkg/auth"
	"github.com/webfolio/api/pkg/http"
	"github.com/webfolio/api/pkg/middleware"
	"github.com/webfolio/api/pkg/portal"
)

// asApiError maps repository failures onto HTTP statuses.
func asApiError(err error) *http.ApiError {
	switch {
	case errors.Is(err, repository.ErrValidation):
		return http.UnprocessableEntity(err.Error(), nil)
	case errors.Is(err, repository.ErrNotFound):
		return http.NotFound(err.Error())
	case errors.Is(err, repository.ErrForbidden):
		return http.ForbiddenError(err.Error())
	case errors.Is(err, repository.ErrConflict):
		return http.ConflictError(err.Error())
	default:
		return http.LogInternalError("unexpected failure", err)
	}
}

func validationError(v *portal.Validator) *http.ApiError {
	issues := make(map[string]any, len(v.GetErrors()))

	for field, issue := range v.GetErrors() {
		issues[field] = issue
	}

	return http.UnprocessableEntity("the given data is invalid", issues)
}

// authClaims reads the claims the bearer middleware attached to the request.
func authClaims(r *baseHttp.Request) (*auth.Claims, *http.ApiError) {
	claims, ok := middleware.GetJWTClaims(r.Context())
	if !ok {
		return nil, &http.ApiError{Message: "authentication required", Status: baseHttp.StatusUnauthorized}
	}

	return claims, nil
}

func pathID(r *baseHttp.Request) (uint64, *http.ApiError) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, http.BadRequestError("a numeric id is required")
	}

	return id, nil
}
