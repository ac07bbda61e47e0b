package middleware

import (
	"github.com/webfolio/api/pkg/auth"
	"github.com/webfolio/api/pkg/http"
)

type Pipeline struct {
	Jwt JWTMiddleware
}

func MakePipeline(handler auth.JWTHandler) Pipeline {
	return Pipeline{
		Jwt: JWTMiddleware{Handler: handler},
	}
}

func (m Pipeline) Chain(h http.ApiHandler, handlers ...http.Middleware) http.ApiHandler {
	for i := len(handlers) - 1; i >= 0; i-- {
		h = handlers[i](h)
	}

	return h
}

// Protected wraps a handler with bearer authentication.
func (m Pipeline) Protected(h http.ApiHandler) http.ApiHandler {
	return m.Chain(h, m.Jwt.Handle)
}

// Admin wraps a handler with bearer authentication plus the admin role guard.
func (m Pipeline) Admin(h http.ApiHandler) http.ApiHandler {
	return m.Chain(h, m.Jwt.Handle, m.Jwt.AdminOnly)
}
