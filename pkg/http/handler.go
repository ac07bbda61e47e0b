package http

import (
	"encoding/json"
	"log/slog"
	baseHttp "net/http"

	"github.com/getsentry/sentry-go"
)

// MakeApiHandler adapts an ApiHandler into a stdlib handler. Errors become
// envelope responses; server-side failures are also captured in Sentry with
// the request attached.
func MakeApiHandler(fn ApiHandler) baseHttp.HandlerFunc {
	return func(w baseHttp.ResponseWriter, r *baseHttp.Request) {
		err := fn(w, r)
		if err == nil {
			return
		}

		slog.Error("api error", "message", err.Message, "status", err.Status, "cause", err.Err)

		if err.Status >= baseHttp.StatusInternalServerError {
			sentry.WithScope(func(scope *sentry.Scope) {
				NewScopeApiError(scope, r, err).Enrich()

				if err.Err != nil {
					sentry.CaptureException(err.Err)
				} else {
					sentry.CaptureMessage(err.Message)
				}
			})
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(err.Status)

		resp := Envelope{
			Success: false,
			Message: err.Message,
			Errors:  err.Data,
		}

		if issue := json.NewEncoder(w).Encode(resp); issue != nil {
			slog.Error("could not encode error response", "error", issue)
		}
	}
}
