package handler

import (
	baseHttp "net/http"

	"github.com/webfolio/api/feed"
	"github.com/webfolio/api/handler/payload"
	"github.com/webfolio/api/pkg/http"
)

// ItemsHandler serves the public read side: the merged feed and the slug
// lookup across both item kinds.
type ItemsHandler struct {
	Feed *feed.Service
}

func MakeItemsHandler(service *feed.Service) ItemsHandler {
	return ItemsHandler{
		Feed: service,
	}
}

func (h ItemsHandler) Index(w baseHttp.ResponseWriter, r *baseHttp.Request) *http.ApiError {
	query := payload.ParseItemsQuery(r, true)

	page, err := h.Feed.ListItems(query)
	if err != nil {
		return asApiError(err)
	}

	resp := http.MakeNoCacheResponse(w, r)

	if err = resp.RespondPage("items retrieved", page.Data, payload.MakePageMeta(page)); err != nil {
		return http.LogInternalError("could not encode items response", err)
	}

	return nil
}

func (h ItemsHandler) Show(w baseHttp.ResponseWriter, r *baseHttp.Request) *http.ApiError {
	slug := r.PathValue("slug")
	if slug == "" {
		return http.BadRequestError("a slug is required")
	}

	item, err := h.Feed.Resolve(slug)
	if err != nil {
		return asApiError(err)
	}

	resp := http.MakeResponseFrom(item.UUID, w, r)
	if resp.HasCache() {
		resp.RespondWithNotModified()

		return nil
	}

	if err = resp.RespondOk("item retrieved", item); err != nil {
		return http.LogInternalError("could not encode item response", err)
	}

	return nil
}
