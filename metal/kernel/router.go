package kernel

import (
	baseHttp "net/http"

	"github.com/webfolio/api/database"
	"github.com/webfolio/api/database/repository"
	"github.com/webfolio/api/feed"
	"github.com/webfolio/api/handler"
	"github.com/webfolio/api/metal/env"
	"github.com/webfolio/api/pkg/auth"
	"github.com/webfolio/api/pkg/http"
	"github.com/webfolio/api/pkg/limiter"
	"github.com/webfolio/api/pkg/middleware"
)

type Router struct {
	Env          *env.Environment
	Mux          *baseHttp.ServeMux
	Db           *database.Connection
	Jwt          auth.JWTHandler
	LoginLimiter *limiter.MemoryLimiter
	Pipeline     middleware.Pipeline
}

// PublicPipelineFor exposes a handler without authentication.
func (r *Router) PublicPipelineFor(apiHandler http.ApiHandler) baseHttp.HandlerFunc {
	return http.MakeApiHandler(
		r.Pipeline.Chain(apiHandler),
	)
}

// PipelineFor guards a handler with bearer authentication.
func (r *Router) PipelineFor(apiHandler http.ApiHandler) baseHttp.HandlerFunc {
	return http.MakeApiHandler(
		r.Pipeline.Protected(apiHandler),
	)
}

// AdminPipelineFor guards a handler with bearer authentication plus the
// admin role. Every content write goes through here.
func (r *Router) AdminPipelineFor(apiHandler http.ApiHandler) baseHttp.HandlerFunc {
	return http.MakeApiHandler(
		r.Pipeline.Admin(apiHandler),
	)
}

func (r *Router) Ping() {
	abstract := handler.MakePingHandler()

	r.Mux.HandleFunc("GET /ping", r.PublicPipelineFor(abstract.Handle))
}

func (r *Router) Items() {
	service := feed.MakeService(
		&repository.Posts{DB: r.Db},
		&repository.Projects{DB: r.Db},
	)

	abstract := handler.MakeItemsHandler(service)

	r.Mux.HandleFunc("GET /items", r.PublicPipelineFor(abstract.Index))
	r.Mux.HandleFunc("GET /items/{slug}", r.PublicPipelineFor(abstract.Show))
}

func (r *Router) Auth() {
	repo := repository.Users{DB: r.Db}
	abstract := handler.MakeAuthHandler(&repo, r.Jwt, r.LoginLimiter)

	r.Mux.HandleFunc("POST /auth/register", r.PublicPipelineFor(abstract.Register))
	r.Mux.HandleFunc("POST /auth/login", r.PublicPipelineFor(abstract.Login))
	r.Mux.HandleFunc("GET /auth/profile", r.PipelineFor(abstract.Profile))
}

func (r *Router) Posts() {
	repo := repository.Posts{DB: r.Db}
	abstract := handler.MakePostsHandler(&repo)

	r.Mux.HandleFunc("POST /posts", r.AdminPipelineFor(abstract.Store))
	r.Mux.HandleFunc("PUT /posts/{id}", r.AdminPipelineFor(abstract.Update))
	r.Mux.HandleFunc("DELETE /posts/{id}", r.AdminPipelineFor(abstract.Delete))
}

func (r *Router) Projects() {
	repo := repository.Projects{DB: r.Db}
	abstract := handler.MakeProjectsHandler(&repo)

	r.Mux.HandleFunc("POST /projects", r.AdminPipelineFor(abstract.Store))
	r.Mux.HandleFunc("PUT /projects/{id}", r.AdminPipelineFor(abstract.Update))
	r.Mux.HandleFunc("DELETE /projects/{id}", r.AdminPipelineFor(abstract.Delete))
}

func (r *Router) Images() {
	repo := repository.Images{DB: r.Db}
	abstract := handler.MakeImagesHandler(&repo, r.Env.Uploads.Dir, r.Env.Uploads.PublicPath)

	r.Mux.HandleFunc("POST /images", r.AdminPipelineFor(abstract.Store))
	r.Mux.HandleFunc("GET /images", r.PipelineFor(abstract.Index))
	r.Mux.HandleFunc("DELETE /images/{id}", r.AdminPipelineFor(abstract.Delete))
}

// Uploads serves the stored files under their public path.
func (r *Router) Uploads() {
	prefix := r.Env.Uploads.PublicPath + "/"
	files := baseHttp.FileServer(baseHttp.Dir(r.Env.Uploads.Dir))

	r.Mux.Handle("GET "+prefix, baseHttp.StripPrefix(prefix, files))
}
