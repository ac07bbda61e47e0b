package main

import (
	"context"
	"log/slog"
	baseHttp "net/http"
	"time"

	"github.com/getsentry/sentry-go"
	_ "github.com/lib/pq"

	"github.com/webfolio/api/database/backup"
	"github.com/webfolio/api/metal/kernel"
	"github.com/webfolio/api/pkg/portal"
)

var app *kernel.App

func init() {
	validate := portal.GetDefaultValidator()

	secrets, err := kernel.Ignite("./.env", validate)
	if err != nil {
		panic("bootstrapping error > " + err.Error())
	}

	if app, err = kernel.MakeApp(secrets, validate); err != nil {
		panic("bootstrapping error > " + err.Error())
	}
}

func main() {
	defer app.CloseDB()
	defer app.CloseLogs()
	defer sentry.Flush(2 * time.Second)

	app.Boot()
	app.GetDB().Ping()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	scheduler, err := backup.NewScheduler(app.GetEnv())
	if err != nil {
		slog.Error("could not build the backup scheduler", "error", err)
	} else if err = scheduler.Start(ctx); err != nil {
		slog.Error("could not start the backup scheduler", "error", err)
	}

	slog.Info("Starting new server on :" + app.GetEnv().Network.HttpPort)

	if err = baseHttp.ListenAndServe(app.GetEnv().Network.GetHostURL(), app.GetMux()); err != nil {
		slog.Error("Error starting server", "error", err)
		panic("Error starting server." + err.Error())
	}
}
