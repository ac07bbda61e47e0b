package handler

import (
	"fmt"
	baseHttp "net/http"

	"github.com/webfolio/api/database"
	"github.com/webfolio/api/database/repository"
	"github.com/webfolio/api/handler/payload"
	"github.com/webfolio/api/pkg/auth"
	"github.com/webfolio/api/pkg/http"
	"github.com/webfolio/api/pkg/limiter"
	"github.com/webfolio/api/pkg/portal"
)

// AuthHandler covers registration, login and the authenticated profile.
// Failed logins feed a sliding-window limiter keyed by client IP and email.
type AuthHandler struct {
	Users     *repository.Users
	Jwt       auth.JWTHandler
	Limiter   *limiter.MemoryLimiter
	Validator *portal.Validator
}

func MakeAuthHandler(users *repository.Users, jwt auth.JWTHandler, guard *limiter.MemoryLimiter) AuthHandler {
	return AuthHandler{
		Users:     users,
		Jwt:       jwt,
		Limiter:   guard,
		Validator: portal.GetDefaultValidator(),
	}
}

// Register creates an account. The first account on a fresh database becomes
// the admin.
func (h AuthHandler) Register(w baseHttp.ResponseWriter, r *baseHttp.Request) *http.ApiError {
	request, closer, err := http.ParseRequestBody[payload.RegisterRequest](r)
	defer closer()

	if err != nil {
		return http.LogBadRequestError("could not parse the registration payload", err)
	}

	if rejected, _ := h.Validator.Rejects(request); rejected {
		return validationError(h.Validator)
	}

	password, err := portal.NewPassword(request.Password)
	if err != nil {
		return http.LogInternalError("could not hash the given password", err)
	}

	total, err := h.Users.Count()
	if err != nil {
		return http.LogInternalError("could not inspect the accounts table", err)
	}

	role := database.UserRole
	if total == 0 {
		role = database.AdminRole
	}

	user, err := h.Users.Create(database.UsersAttrs{
		Username:     request.Username,
		Email:        request.Email,
		PasswordHash: password.GetHash(),
		Role:         role,
	})

	if err != nil {
		return asApiError(err)
	}

	token, err := h.Jwt.Generate(user.ID, user.Username, user.Role)
	if err != nil {
		return http.LogInternalError("could not issue a token", err)
	}

	resp := http.MakeNoCacheResponse(w, r)
	data := payload.AuthResponse{Token: token, User: payload.MakeUserData(user)}

	if err = resp.RespondCreated("account created", data); err != nil {
		return http.LogInternalError("could not encode the registration response", err)
	}

	return nil
}

func (h AuthHandler) Login(w baseHttp.ResponseWriter, r *baseHttp.Request) *http.ApiError {
	request, closer, err := http.ParseRequestBody[payload.LoginRequest](r)
	defer closer()

	if err != nil {
		return http.LogBadRequestError("could not parse the login payload", err)
	}

	if rejected, _ := h.Validator.Rejects(request); rejected {
		return validationError(h.Validator)
	}

	key := fmt.Sprintf("%s|%s", portal.ParseClientIP(r), request.Email)
	if h.Limiter.TooMany(key) {
		return http.TooManyRequestsError("too many failed logins, try again later")
	}

	user := h.Users.FindByEmail(request.Email)
	if user == nil {
		h.Limiter.Fail(key)

		return http.LogUnauthorisedError("invalid credentials", fmt.Errorf("unknown account [%s]", request.Email))
	}

	password := portal.PasswordFromHash(user.PasswordHash)
	if !password.Is(request.Password) {
		h.Limiter.Fail(key)

		return http.LogUnauthorisedError("invalid credentials", fmt.Errorf("wrong password for [%s]", request.Email))
	}

	token, err := h.Jwt.Generate(user.ID, user.Username, user.Role)
	if err != nil {
		return http.LogInternalError("could not issue a token", err)
	}

	resp := http.MakeNoCacheResponse(w, r)
	data := payload.AuthResponse{Token: token, User: payload.MakeUserData(user)}

	if err = resp.RespondOk("login successful", data); err != nil {
		return http.LogInternalError("could not encode the login response", err)
	}

	return nil
}

func (h AuthHandler) Profile(w baseHttp.ResponseWriter, r *baseHttp.Request) *http.ApiError {
	claims, apiErr := authClaims(r)
	if apiErr != nil {
		return apiErr
	}

	user := h.Users.FindByID(claims.UserID)
	if user == nil {
		return http.NotFound("the account no longer exists")
	}

	resp := http.MakeNoCacheResponse(w, r)
	if err := resp.RespondOk("profile retrieved", payload.MakeUserData(user)); err != nil {
		return http.LogInternalError("could not encode the profile response", err)
	}

	return nil
}
