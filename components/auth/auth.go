// components/auth/auth.go
//
// Authentication component: account registration, login, logout, and the
// "who am I" probe used by the admin client.
//
// Routes
// ------
//
//	POST /api/register  201 user JSON + session cookie, 409 on duplicate
//	POST /api/login     200 user JSON + session cookie, 401 otherwise
//	POST /api/logout    session required, {"success":true}, cookie cleared
//	GET  /api/user      session required, user JSON
//
// Notes
// -----
//   - Unknown username and wrong password produce the same 401 body.
//   - The password hash never leaves the store (json:"-" on store.User).
//   - Oxford commas, two spaces after periods.

package auth

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yanizio/pcgsite/internal/acl"
	iauth "github.com/yanizio/pcgsite/internal/auth"
	"github.com/yanizio/pcgsite/internal/component"
	"github.com/yanizio/pcgsite/internal/httpx"
	"github.com/yanizio/pcgsite/internal/logger"
	"github.com/yanizio/pcgsite/internal/metrics"
	"github.com/yanizio/pcgsite/internal/store"
)

// Compile-time assertion: *Component satisfies component.Component.
var _ component.Component = (*Component)(nil)

// Component encapsulates the session endpoints.
type Component struct {
	deps component.Deps
}

/*────────────────── component.Component methods ───────────────────────────*/

// Name returns the canonical component key.
func (c *Component) Name() string { return "auth" }

// Migrations returns the users table DDL.  The sessions table belongs to
// the session driver and is added by the server when that driver is sql.
func (c *Component) Migrations() []string { return store.UserSchema }

// Init keeps the shared dependencies.
func (c *Component) Init(d component.Deps) error {
	if d.Auth == nil {
		return errors.New("auth component: nil auth service")
	}
	c.deps = d
	return nil
}

// Routes registers the session endpoints.
func (c *Component) Routes(r chi.Router) {
	r.Post("/api/register", c.handleRegister)
	r.Post("/api/login", c.handleLogin)
	r.With(acl.RequireUser).Post("/api/logout", c.handleLogout)
	r.With(acl.RequireUser).Get("/api/user", c.handleUser)
}

// Register component at program start.
func init() { component.Register(&Component{}) }

/*──────────────────────────── Handlers ─────────────────────────────────────*/

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (c *Component) handleRegister(w http.ResponseWriter, r *http.Request) {
	var in credentials
	if err := httpx.Decode(w, r, &in); err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := c.deps.Auth.Register(r.Context(), in.Username, in.Password)
	switch {
	case errors.Is(err, iauth.ErrInvalidInput):
		httpx.Error(w, http.StatusBadRequest, "username and password are required")
		return
	case errors.Is(err, store.ErrUsernameTaken):
		httpx.Error(w, http.StatusConflict, "username already exists")
		return
	case err != nil:
		httpx.Internal(w, r, err, c.deps.ExposeErrors)
		return
	}

	c.deps.Cookie.Set(w, r, res.Token, res.Expires)
	logger.FromContext(r.Context()).Infow("user registered", "user_id", res.User.ID)
	httpx.JSON(w, http.StatusCreated, res.User)
}

func (c *Component) handleLogin(w http.ResponseWriter, r *http.Request) {
	var in credentials
	if err := httpx.Decode(w, r, &in); err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := c.deps.Auth.Login(r.Context(), in.Username, in.Password)
	if errors.Is(err, iauth.ErrInvalidCredentials) {
		metrics.LoginFailuresTotal.Inc()
		logger.FromContext(r.Context()).Infow("login rejected", "username", in.Username)
		httpx.Error(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err != nil {
		httpx.Internal(w, r, err, c.deps.ExposeErrors)
		return
	}

	c.deps.Cookie.Set(w, r, res.Token, res.Expires)
	httpx.JSON(w, http.StatusOK, res.User)
}

func (c *Component) handleLogout(w http.ResponseWriter, r *http.Request) {
	if tok, ok := c.deps.Cookie.Token(r); ok {
		if err := c.deps.Auth.Logout(r.Context(), tok); err != nil {
			httpx.Internal(w, r, err, c.deps.ExposeErrors)
			return
		}
	}
	c.deps.Cookie.Clear(w, r)
	httpx.Success(w)
}

func (c *Component) handleUser(w http.ResponseWriter, r *http.Request) {
	u, _ := iauth.UserFrom(r.Context())
	httpx.JSON(w, http.StatusOK, u)
}
