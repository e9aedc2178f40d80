package resources

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yanizio/pcgsite/components/web"
	"github.com/yanizio/pcgsite/internal/auth"
	"github.com/yanizio/pcgsite/internal/component"
	"github.com/yanizio/pcgsite/internal/session"
	"github.com/yanizio/pcgsite/internal/store"
)

type harness struct {
	h      http.Handler
	st     *store.Memory
	cookie *http.Cookie
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	st := store.NewMemory()
	svc := &auth.Service{Store: st, Sessions: session.NewMemoryStore(), Cost: bcrypt.MinCost, TTL: time.Hour}
	ck := session.Cookie{Name: "sid"}

	c := &Component{}
	require.NoError(t, c.Init(component.Deps{Store: st, Auth: svc, Cookie: ck}))
	r := chi.NewRouter()
	r.Use(auth.Authenticate(svc, ck))
	c.Routes(r)

	res, err := svc.Register(context.Background(), "editor", "pw")
	require.NoError(t, err)
	return &harness{h: r, st: st, cookie: &http.Cookie{Name: "sid", Value: res.Token}}
}

func (hs *harness) do(method, path, body string, authed bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if authed {
		req.AddCookie(hs.cookie)
	}
	rec := httptest.NewRecorder()
	hs.h.ServeHTTP(rec, req)
	return rec
}

func list(t *testing.T, hs *harness) []store.Resource {
	t.Helper()
	rec := hs.do(http.MethodGet, "/api/resources", "", false)
	require.Equal(t, http.StatusOK, rec.Code)
	var out []store.Resource
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestCreateListDeleteScenario(t *testing.T) {
	hs := newHarness(t)

	rec := hs.do(http.MethodGet, "/api/resources", "", false)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = hs.do(http.MethodPost, "/api/resources", `{"title":"Guide","description":"A guide"}`, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var created store.Resource
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotZero(t, created.ID)
	require.NotNil(t, created.LinkText)
	assert.Equal(t, "Learn More", *created.LinkText)

	rows := list(t, hs)
	require.Len(t, rows, 1)
	assert.Equal(t, created.ID, rows[0].ID)

	path := "/api/resources/" + jsonNumber(created.ID)
	rec = hs.do(http.MethodDelete, path, "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
	assert.Empty(t, list(t, hs))

	// Second delete of the same id is a no-op success.
	rec = hs.do(http.MethodDelete, path, "", true)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
}

func TestCreateWithoutSessionCreatesNothing(t *testing.T) {
	hs := newHarness(t)

	rec := hs.do(http.MethodPost, "/api/resources", `{"title":"Guide","description":"A guide"}`, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, rec.Body.String())
	assert.Empty(t, list(t, hs))
}

func TestCreateValidation(t *testing.T) {
	hs := newHarness(t)

	rec := hs.do(http.MethodPost, "/api/resources", `{"title":"Guide"}`, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "description")

	rec = hs.do(http.MethodPost, "/api/resources", `{"title":"  ","description":"x"}`, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.Empty(t, list(t, hs))
}

func TestUpdate(t *testing.T) {
	hs := newHarness(t)
	rec := hs.do(http.MethodPost, "/api/resources",
		`{"title":"Guide","description":"A guide","linkUrl":"https://example.com","linkText":"Read"}`, true)
	require.Equal(t, http.StatusOK, rec.Code)
	var created store.Resource
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	path := "/api/resources/" + jsonNumber(created.ID)

	rec = hs.do(http.MethodPut, path, `{"title":"Field Guide"}`, true)
	require.Equal(t, http.StatusOK, rec.Code)
	var updated store.Resource
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "Field Guide", updated.Title)
	assert.Equal(t, "A guide", updated.Description)
	assert.Equal(t, "Read", *updated.LinkText)

	assert.Equal(t, http.StatusUnauthorized, hs.do(http.MethodPut, path, `{"title":"x"}`, false).Code)
	assert.Equal(t, http.StatusNotFound, hs.do(http.MethodPut, "/api/resources/999", `{"title":"x"}`, true).Code)
	assert.Equal(t, http.StatusBadRequest, hs.do(http.MethodPut, "/api/resources/abc", `{"title":"x"}`, true).Code)
	assert.Equal(t, http.StatusBadRequest, hs.do(http.MethodPut, path, `{"description":""}`, true).Code)
}

// resourcesPage renders GET /resources from the harness store.
func resourcesPage(t *testing.T, hs *harness) string {
	t.Helper()
	wc := &web.Component{}
	require.NoError(t, wc.Init(component.Deps{Store: hs.st}))
	r := chi.NewRouter()
	wc.Routes(r)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/resources", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestUpdateClearsOptionalFields(t *testing.T) {
	hs := newHarness(t)
	rec := hs.do(http.MethodPost, "/api/resources",
		`{"title":"Guide","description":"A guide","imageUrl":"https://x.test/a.png","linkUrl":"https://x.test/g.pdf","linkText":"Read"}`, true)
	require.Equal(t, http.StatusOK, rec.Code)
	var created store.Resource
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	path := "/api/resources/" + jsonNumber(created.ID)
	assert.Contains(t, resourcesPage(t, hs), `<img src="https://x.test/a.png"`)

	rec = hs.do(http.MethodPut, path, `{"imageUrl":""}`, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated store.Resource
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Nil(t, updated.ImageURL)
	require.NotNil(t, updated.LinkURL)
	assert.Equal(t, "https://x.test/g.pdf", *updated.LinkURL)

	rows := list(t, hs)
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0].ImageURL)
	assert.NotContains(t, resourcesPage(t, hs), "<img")

	rec = hs.do(http.MethodPut, path, `{"linkUrl":null,"linkText":""}`, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated = store.Resource{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Nil(t, updated.LinkURL)
	require.NotNil(t, updated.LinkText)
	assert.Equal(t, store.DefaultLinkText, *updated.LinkText)
	assert.NotContains(t, resourcesPage(t, hs), `class="button"`)
}

func TestCreateStoresBlankOptionalAsNull(t *testing.T) {
	hs := newHarness(t)
	rec := hs.do(http.MethodPost, "/api/resources",
		`{"title":"Guide","description":"A guide","imageUrl":"","linkUrl":"  ","linkText":""}`, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rows := list(t, hs)
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0].ImageURL)
	assert.Nil(t, rows[0].LinkURL)
	require.NotNil(t, rows[0].LinkText)
	assert.Equal(t, store.DefaultLinkText, *rows[0].LinkText)

	page := resourcesPage(t, hs)
	assert.Contains(t, page, "Guide")
	assert.NotContains(t, page, "<img")
	assert.NotContains(t, page, `class="button"`)
}

func TestDeleteBadIDAndAnonymous(t *testing.T) {
	hs := newHarness(t)
	assert.Equal(t, http.StatusBadRequest, hs.do(http.MethodDelete, "/api/resources/abc", "", true).Code)
	assert.Equal(t, http.StatusUnauthorized, hs.do(http.MethodDelete, "/api/resources/1", "", false).Code)
}

func jsonNumber(id int64) string {
	b, _ := json.Marshal(id)
	return string(b)
}
