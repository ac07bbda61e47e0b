package kernel

import (
	"fmt"
	baseHttp "net/http"
	"time"

	"github.com/webfolio/api/database"
	"github.com/webfolio/api/metal/env"
	"github.com/webfolio/api/pkg/auth"
	"github.com/webfolio/api/pkg/limiter"
	"github.com/webfolio/api/pkg/llogs"
	"github.com/webfolio/api/pkg/middleware"
	"github.com/webfolio/api/pkg/portal"
)

const loginWindow = 15 * time.Minute
const loginMaxFails = 5

type App struct {
	router    *Router
	sentry    *portal.Sentry
	logs      llogs.Driver
	validator *portal.Validator
	env       *env.Environment
	db        *database.Connection
}

func MakeApp(env *env.Environment, validator *portal.Validator) (*App, error) {
	jwtHandler, err := auth.MakeJWTHandler([]byte(env.App.MasterKey), time.Hour)
	if err != nil {
		return nil, fmt.Errorf("bootstrapping error > could not create jwt handler: %w", err)
	}

	db := MakeDbConnection(env)

	app := App{
		env:       env,
		validator: validator,
		logs:      MakeLogs(env),
		sentry:    MakeSentry(env),
		db:        db,
	}

	router := Router{
		Env:          env,
		Db:           db,
		Mux:          baseHttp.NewServeMux(),
		Jwt:          jwtHandler,
		LoginLimiter: limiter.NewMemoryLimiter(loginWindow, loginMaxFails),
		Pipeline:     middleware.MakePipeline(jwtHandler),
	}

	app.SetRouter(router)

	return &app, nil
}

func (a *App) Boot() {
	if a == nil || a.router == nil {
		panic("bootstrapping error > Invalid setup")
	}

	router := *a.router

	router.Ping()
	router.Items()
	router.Auth()
	router.Posts()
	router.Projects()
	router.Images()
	router.Uploads()
}
