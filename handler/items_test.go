package handler

import (
	"encoding/json"
	baseHttp "net/http"
	"net/http/httptest"
	"testing"

	"gorm.io/driver/sqlite"
	stdgorm "gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/webfolio/api/database"
	"github.com/webfolio/api/database/repository"
	"github.com/webfolio/api/feed"
	"github.com/webfolio/api/pkg/http"
)

func makeHandlerConn(t *testing.T) *database.Connection {
	t.Helper()

	driver, err := stdgorm.Open(sqlite.Open(":memory:"), &stdgorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})

	if err != nil {
		t.Fatalf("open sqlite err: %v", err)
	}

	err = driver.AutoMigrate(
		&database.User{},
		&database.Tag{},
		&database.Post{},
		&database.Project{},
		&database.PostTag{},
		&database.ProjectTag{},
		&database.Image{},
	)

	if err != nil {
		t.Fatalf("migrate err: %v", err)
	}

	return database.NewConnectionFromGorm(driver)
}

func makeItemsMux(t *testing.T) (*baseHttp.ServeMux, *database.Connection, *database.User) {
	t.Helper()

	conn := makeHandlerConn(t)

	user, err := repository.Users{DB: conn}.Create(database.UsersAttrs{
		Username:     "author",
		Email:        "author@example.com",
		PasswordHash: "hash",
	})

	if err != nil {
		t.Fatalf("seed user err: %v", err)
	}

	service := feed.MakeService(
		&repository.Posts{DB: conn},
		&repository.Projects{DB: conn},
	)

	items := MakeItemsHandler(service)

	mux := baseHttp.NewServeMux()
	mux.HandleFunc("GET /items", http.MakeApiHandler(items.Index))
	mux.HandleFunc("GET /items/{slug}", http.MakeApiHandler(items.Show))

	return mux, conn, user
}

func seedHandlerPost(t *testing.T, conn *database.Connection, userID uint64, title string) *database.Post {
	t.Helper()

	post, err := repository.Posts{DB: conn}.Create(database.PostsAttrs{
		UserID:    userID,
		Title:     title,
		Excerpt:   "An excerpt.",
		Content:   "Body content.",
		Author:    "Gus Soto",
		Category:  "engineering",
		Published: true,
	})

	if err != nil {
		t.Fatalf("seed post err: %v", err)
	}

	return post
}

type itemsEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    []feed.Item     `json:"data"`
	Meta    json.RawMessage `json:"meta"`
}

func TestItemsIndex(t *testing.T) {
	mux, conn, user := makeItemsMux(t)

	seedHandlerPost(t, conn, user.ID, "First Post")

	recorder := httptest.NewRecorder()
	mux.ServeHTTP(recorder, httptest.NewRequest("GET", "/items", nil))

	if recorder.Code != baseHttp.StatusOK {
		t.Fatalf("expected 200 got %d", recorder.Code)
	}

	if cache := recorder.Header().Get("Cache-Control"); cache != "no-store" {
		t.Fatalf("the feed must not be cached, got %s", cache)
	}

	envelope := itemsEnvelope{}
	if err := json.Unmarshal(recorder.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode err: %v", err)
	}

	if !envelope.Success || len(envelope.Data) != 1 || envelope.Data[0].Slug != "first-post" {
		t.Fatalf("envelope mismatch: %+v", envelope)
	}

	if len(envelope.Meta) == 0 {
		t.Fatalf("list responses must carry pagination metadata")
	}
}

func TestItemsIndexRejectsUnknownType(t *testing.T) {
	mux, _, _ := makeItemsMux(t)

	recorder := httptest.NewRecorder()
	mux.ServeHTTP(recorder, httptest.NewRequest("GET", "/items?type=podcast", nil))

	if recorder.Code != baseHttp.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d", recorder.Code)
	}
}

func TestItemsShow(t *testing.T) {
	mux, conn, user := makeItemsMux(t)

	post := seedHandlerPost(t, conn, user.ID, "Visible Post")

	recorder := httptest.NewRecorder()
	mux.ServeHTTP(recorder, httptest.NewRequest("GET", "/items/visible-post", nil))

	if recorder.Code != baseHttp.StatusOK {
		t.Fatalf("expected 200 got %d", recorder.Code)
	}

	etag := recorder.Header().Get("ETag")
	if etag != `"`+post.UUID+`"` {
		t.Fatalf("etag mismatch: %s", etag)
	}

	// A revalidation with the same tag short-circuits to 304.
	again := httptest.NewRequest("GET", "/items/visible-post", nil)
	again.Header.Set("If-None-Match", etag)

	recorder = httptest.NewRecorder()
	mux.ServeHTTP(recorder, again)

	if recorder.Code != baseHttp.StatusNotModified {
		t.Fatalf("expected 304 got %d", recorder.Code)
	}
}

func TestItemsShowMissingSlug(t *testing.T) {
	mux, _, _ := makeItemsMux(t)

	recorder := httptest.NewRecorder()
	mux.ServeHTTP(recorder, httptest.NewRequest("GET", "/items/nope", nil))

	if recorder.Code != baseHttp.StatusNotFound {
		t.Fatalf("expected 404 got %d", recorder.Code)
	}
}
