package auth

import (
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

	iauth "github.com/yanizio/pcgsite/internal/auth"
	"github.com/yanizio/pcgsite/internal/component"
	"github.com/yanizio/pcgsite/internal/session"
	"github.com/yanizio/pcgsite/internal/store"
)

const cookieName = "sid"

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	svc := &iauth.Service{
		Store:    store.NewMemory(),
		Sessions: session.NewMemoryStore(),
		Cost:     bcrypt.MinCost,
		TTL:      time.Hour,
	}
	ck := session.Cookie{Name: cookieName}

	c := &Component{}
	require.NoError(t, c.Init(component.Deps{Store: svc.Store, Auth: svc, Cookie: ck}))

	r := chi.NewRouter()
	r.Use(iauth.Authenticate(svc, ck))
	c.Routes(r)
	return r
}

func do(h http.Handler, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == cookieName && c.Value != "" {
			return c
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}

func TestRegisterLoginUserLogout(t *testing.T) {
	h := newRouter(t)

	rec := do(h, http.MethodPost, "/api/register", `{"username":"admin","password":"pw"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "password")
	var created map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "admin", created["username"])
	assert.NotEmpty(t, created["id"])
	regCookie := sessionCookie(t, rec)
	assert.True(t, regCookie.HttpOnly)

	rec = do(h, http.MethodGet, "/api/user", "", regCookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"admin"`)

	rec = do(h, http.MethodPost, "/api/login", `{"username":"admin","password":"pw"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	loginCookie := sessionCookie(t, rec)

	rec = do(h, http.MethodPost, "/api/logout", "", loginCookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())

	rec = do(h, http.MethodGet, "/api/user", "", loginCookie)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// The registration session is independent and still valid.
	rec = do(h, http.MethodGet, "/api/user", "", regCookie)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRegisterDuplicateKeepsFirstUser(t *testing.T) {
	h := newRouter(t)

	rec := do(h, http.MethodPost, "/api/register", `{"username":"admin","password":"pw"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(h, http.MethodPost, "/api/register", `{"username":"admin","password":"other"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(h, http.MethodPost, "/api/login", `{"username":"admin","password":"pw"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRegisterValidation(t *testing.T) {
	h := newRouter(t)

	assert.Equal(t, http.StatusBadRequest,
		do(h, http.MethodPost, "/api/register", `{"username":"","password":"pw"}`).Code)
	assert.Equal(t, http.StatusBadRequest,
		do(h, http.MethodPost, "/api/register", `{"username":"a"`).Code)
}

func TestLoginFailuresShareOneShape(t *testing.T) {
	h := newRouter(t)
	require.Equal(t, http.StatusCreated,
		do(h, http.MethodPost, "/api/register", `{"username":"admin","password":"pw"}`).Code)

	wrongPass := do(h, http.MethodPost, "/api/login", `{"username":"admin","password":"nope"}`)
	noUser := do(h, http.MethodPost, "/api/login", `{"username":"ghost","password":"pw"}`)

	assert.Equal(t, http.StatusUnauthorized, wrongPass.Code)
	assert.Equal(t, http.StatusUnauthorized, noUser.Code)
	assert.Equal(t, wrongPass.Body.String(), noUser.Body.String())
	assert.Empty(t, wrongPass.Result().Cookies())
}

func TestGatedRoutesRejectAnonymous(t *testing.T) {
	h := newRouter(t)

	rec := do(h, http.MethodGet, "/api/user", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, rec.Body.String())

	rec = do(h, http.MethodPost, "/api/logout", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
