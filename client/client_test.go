package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/webfolio/api/feed"
)

func TestGetItemsServesBackendPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"success": true,
			"message": "ok",
			"data": [{"kind":"blog","id":9,"slug":"live-post","title":"Live Post"}],
			"meta": {"total": 1, "page": 1, "limit": 10, "has_more": false}
		}`))
	}))
	defer server.Close()

	c, err := MakeClient(server.URL)
	if err != nil {
		t.Fatalf("make client err: %v", err)
	}

	page, err := c.GetItems(context.Background(), ItemsQuery{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("get items err: %v", err)
	}

	if page.Degraded {
		t.Fatalf("a healthy backend should not degrade")
	}

	if len(page.Items) != 1 || page.Items[0].Slug != "live-post" {
		t.Fatalf("expected the live item, got %+v", page.Items)
	}

	if page.Total != 1 || page.HasMore {
		t.Fatalf("meta mismatch: total=%d hasMore=%v", page.Total, page.HasMore)
	}
}

func TestGetItemsDegradesWhenBackendUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	c, err := MakeClient(server.URL)
	if err != nil {
		t.Fatalf("make client err: %v", err)
	}

	page, err := c.GetItems(context.Background(), ItemsQuery{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("get items err: %v", err)
	}

	if !page.Degraded {
		t.Fatalf("expected the snapshot page")
	}

	if len(page.Items) == 0 {
		t.Fatalf("the snapshot should not be empty")
	}
}

func TestGetItemsCooldownSkipsNetwork(t *testing.T) {
	var hits atomic.Int64

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte("not json at all"))
	}))
	defer server.Close()

	c, err := MakeClient(server.URL)
	if err != nil {
		t.Fatalf("make client err: %v", err)
	}

	first, err := c.GetItems(context.Background(), ItemsQuery{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("first call err: %v", err)
	}

	if !first.Degraded {
		t.Fatalf("a garbled payload should degrade")
	}

	second, err := c.GetItems(context.Background(), ItemsQuery{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("second call err: %v", err)
	}

	if !second.Degraded {
		t.Fatalf("expected the snapshot during the cooldown window")
	}

	if hits.Load() != 1 {
		t.Fatalf("the cooldown should skip the network, saw %d hits", hits.Load())
	}
}

func TestGetItemCleanMissDoesNotDegrade(t *testing.T) {
	var hits atomic.Int64

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success": false, "message": "resource not found"}`))
	}))
	defer server.Close()

	c, err := MakeClient(server.URL)
	if err != nil {
		t.Fatalf("make client err: %v", err)
	}

	if _, err = c.GetItem(context.Background(), "missing-slug"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound got %v", err)
	}

	// A clean miss is a real answer: the next read still goes to the backend.
	if _, err = c.GetItem(context.Background(), "missing-slug"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound got %v", err)
	}

	if hits.Load() != 2 {
		t.Fatalf("a clean miss must not open the cooldown, saw %d hits", hits.Load())
	}
}

func TestGetItemDegradesWhenBackendUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	c, err := MakeClient(server.URL)
	if err != nil {
		t.Fatalf("make client err: %v", err)
	}

	item, err := c.GetItem(context.Background(), "webfolio-api")
	if err != nil {
		t.Fatalf("get item err: %v", err)
	}

	if item.Kind != feed.KindProject || item.Slug != "webfolio-api" {
		t.Fatalf("expected the snapshot project got %+v", item)
	}
}

func TestItemsURLEncodesQuery(t *testing.T) {
	c := &Client{BaseURL: "https://api.example.com"}

	got := c.itemsURL(ItemsQuery{Kind: feed.KindBlog, Search: "go services", Page: 2, Limit: 5})
	want := "https://api.example.com/items?limit=5&page=2&search=go+services&type=blog"

	if got != want {
		t.Fatalf("url mismatch:\n got %s\nwant %s", got, want)
	}

	if got = c.itemsURL(ItemsQuery{}); got != "https://api.example.com/items" {
		t.Fatalf("bare query mismatch: %s", got)
	}
}
