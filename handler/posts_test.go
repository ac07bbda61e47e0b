package handler

import (
	"encoding/json"
	"fmt"
	baseHttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/webfolio/api/database"
	"github.com/webfolio/api/database/repository"
	"github.com/webfolio/api/feed"
	"github.com/webfolio/api/pkg/auth"
	"github.com/webfolio/api/pkg/http"
	"github.com/webfolio/api/pkg/middleware"
)

type writerFixture struct {
	mux  *baseHttp.ServeMux
	conn *database.Connection
	jwt  auth.JWTHandler
}

func makeWriterFixture(t *testing.T) writerFixture {
	t.Helper()

	conn := makeHandlerConn(t)

	jwt, err := auth.MakeJWTHandler([]byte("supersecretkey123"), time.Hour)
	if err != nil {
		t.Fatalf("make jwt err: %v", err)
	}

	pipeline := middleware.MakePipeline(jwt)
	posts := MakePostsHandler(&repository.Posts{DB: conn})

	mux := baseHttp.NewServeMux()
	mux.HandleFunc("POST /posts", http.MakeApiHandler(pipeline.Admin(posts.Store)))
	mux.HandleFunc("PUT /posts/{id}", http.MakeApiHandler(pipeline.Admin(posts.Update)))
	mux.HandleFunc("DELETE /posts/{id}", http.MakeApiHandler(pipeline.Admin(posts.Delete)))

	return writerFixture{mux: mux, conn: conn, jwt: jwt}
}

func (f writerFixture) tokenFor(t *testing.T, username string) (uint64, string) {
	t.Helper()

	return f.tokenWithRole(t, username, database.AdminRole)
}

func (f writerFixture) tokenWithRole(t *testing.T, username, role string) (uint64, string) {
	t.Helper()

	user, err := repository.Users{DB: f.conn}.Create(database.UsersAttrs{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
		Role:         role,
	})

	if err != nil {
		t.Fatalf("seed user err: %v", err)
	}

	token, err := f.jwt.Generate(user.ID, user.Username, user.Role)
	if err != nil {
		t.Fatalf("generate token err: %v", err)
	}

	return user.ID, token
}

func (f writerFixture) do(t *testing.T, method, target, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	r := httptest.NewRequest(method, target, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")

	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	f.mux.ServeHTTP(recorder, r)

	return recorder
}

type postEnvelope struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	Data    feed.Item `json:"data"`
}

const storeBody = `{
	"title": "Shipping It",
	"excerpt": "Notes from a release week.",
	"content": "The long form write-up of the release.",
	"author": "Gus Soto",
	"category": "engineering",
	"tags": ["go", "release"]
}`

func TestPostsStoreRequiresAuth(t *testing.T) {
	fixture := makeWriterFixture(t)

	if recorder := fixture.do(t, "POST", "/posts", "", storeBody); recorder.Code != baseHttp.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", recorder.Code)
	}
}

func TestPostsStore(t *testing.T) {
	fixture := makeWriterFixture(t)
	_, token := fixture.tokenFor(t, "writer")

	recorder := fixture.do(t, "POST", "/posts", token, storeBody)

	if recorder.Code != baseHttp.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", recorder.Code, recorder.Body.String())
	}

	envelope := postEnvelope{}
	if err := json.Unmarshal(recorder.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode err: %v", err)
	}

	if envelope.Data.Slug != "shipping-it" || envelope.Data.Kind != feed.KindBlog {
		t.Fatalf("item mismatch: %+v", envelope.Data)
	}

	if len(envelope.Data.Tags) != 2 {
		t.Fatalf("expected 2 tags got %v", envelope.Data.Tags)
	}
}

func TestPostsStoreRejectsNonAdmin(t *testing.T) {
	fixture := makeWriterFixture(t)
	_, token := fixture.tokenWithRole(t, "regular", database.UserRole)

	if recorder := fixture.do(t, "POST", "/posts", token, storeBody); recorder.Code != baseHttp.StatusForbidden {
		t.Fatalf("expected 403 for a non-admin writer got %d", recorder.Code)
	}
}

func TestPostsStoreRejectsInvalidPayload(t *testing.T) {
	fixture := makeWriterFixture(t)
	_, token := fixture.tokenFor(t, "writer")

	recorder := fixture.do(t, "POST", "/posts", token, `{"title": "Missing Everything"}`)

	if recorder.Code != baseHttp.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d", recorder.Code)
	}
}

func TestPostsUpdate(t *testing.T) {
	fixture := makeWriterFixture(t)
	userID, token := fixture.tokenFor(t, "writer")

	post, err := repository.Posts{DB: fixture.conn}.Create(database.PostsAttrs{
		UserID:    userID,
		Title:     "Before",
		Excerpt:   "An excerpt.",
		Content:   "Body content.",
		Author:    "Gus Soto",
		Category:  "engineering",
		Published: true,
	})

	if err != nil {
		t.Fatalf("seed post err: %v", err)
	}

	target := fmt.Sprintf("/posts/%d", post.ID)
	recorder := fixture.do(t, "PUT", target, token, `{"title": "After"}`)

	if recorder.Code != baseHttp.StatusOK {
		t.Fatalf("expected 200 got %d: %s", recorder.Code, recorder.Body.String())
	}

	envelope := postEnvelope{}
	if err = json.Unmarshal(recorder.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode err: %v", err)
	}

	if envelope.Data.Title != "After" || envelope.Data.Slug != "after" {
		t.Fatalf("update mismatch: %+v", envelope.Data)
	}
}

func TestPostsUpdateForeignPostForbidden(t *testing.T) {
	fixture := makeWriterFixture(t)
	ownerID, _ := fixture.tokenFor(t, "owner")
	_, intruderToken := fixture.tokenFor(t, "intruder")

	post, err := repository.Posts{DB: fixture.conn}.Create(database.PostsAttrs{
		UserID:    ownerID,
		Title:     "Private",
		Excerpt:   "An excerpt.",
		Content:   "Body content.",
		Author:    "Gus Soto",
		Category:  "engineering",
		Published: true,
	})

	if err != nil {
		t.Fatalf("seed post err: %v", err)
	}

	target := fmt.Sprintf("/posts/%d", post.ID)
	recorder := fixture.do(t, "PUT", target, intruderToken, `{"title": "Hijacked"}`)

	if recorder.Code != baseHttp.StatusForbidden {
		t.Fatalf("expected 403 got %d", recorder.Code)
	}
}

func TestPostsDelete(t *testing.T) {
	fixture := makeWriterFixture(t)
	userID, token := fixture.tokenFor(t, "writer")

	post, err := repository.Posts{DB: fixture.conn}.Create(database.PostsAttrs{
		UserID:    userID,
		Title:     "Removable",
		Excerpt:   "An excerpt.",
		Content:   "Body content.",
		Author:    "Gus Soto",
		Category:  "engineering",
		Published: true,
	})

	if err != nil {
		t.Fatalf("seed post err: %v", err)
	}

	target := fmt.Sprintf("/posts/%d", post.ID)

	if recorder := fixture.do(t, "DELETE", target, token, ""); recorder.Code != baseHttp.StatusOK {
		t.Fatalf("expected 200 got %d", recorder.Code)
	}

	if recorder := fixture.do(t, "DELETE", target, token, ""); recorder.Code != baseHttp.StatusNotFound {
		t.Fatalf("expected 404 on the second delete got %d", recorder.Code)
	}
}

func TestPostsUpdateBadID(t *testing.T) {
	fixture := makeWriterFixture(t)
	_, token := fixture.tokenFor(t, "writer")

	if recorder := fixture.do(t, "PUT", "/posts/abc", token, `{"title": "X"}`); recorder.Code != baseHttp.StatusBadRequest {
		t.Fatalf("expected 400 got %d", recorder.Code)
	}
}
