// components/content/content.go
//
// Site content and theme endpoints.
//
// Routes
// ------
//
//	GET /api/content   public, SiteContent (defaults on first access)
//	PUT /api/content   session, partial SiteContent → merged SiteContent
//	GET /api/theme     public, SiteTheme
//	PUT /api/theme     session, SiteTheme fields → merged SiteTheme
//
// Notes
// -----
//   - Fields left out of a PUT body keep their stored value.  JSON null is
//     treated the same as omission.
//   - Concurrent PUTs are last-writer-wins.
//   - Oxford commas, two spaces after periods.

package content

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yanizio/pcgsite/internal/acl"
	"github.com/yanizio/pcgsite/internal/component"
	"github.com/yanizio/pcgsite/internal/httpx"
	"github.com/yanizio/pcgsite/internal/metrics"
	"github.com/yanizio/pcgsite/internal/site"
	"github.com/yanizio/pcgsite/internal/store"
)

var _ component.Component = (*Component)(nil)

// Component serves the two singleton records.
type Component struct {
	deps component.Deps
}

func (c *Component) Name() string         { return "content" }
func (c *Component) Migrations() []string { return store.SiteSchema }

func (c *Component) Init(d component.Deps) error {
	if d.Store == nil {
		return errors.New("content component: nil store")
	}
	c.deps = d
	return nil
}

func (c *Component) Routes(r chi.Router) {
	r.Get("/api/content", c.getContent)
	r.With(acl.RequireUser).Put("/api/content", c.putContent)
	r.Get("/api/theme", c.getTheme)
	r.With(acl.RequireUser).Put("/api/theme", c.putTheme)
}

func init() { component.Register(&Component{}) }

func (c *Component) getContent(w http.ResponseWriter, r *http.Request) {
	sc, err := c.deps.Store.GetSiteContent(r.Context())
	if err != nil {
		httpx.Internal(w, r, err, c.deps.ExposeErrors)
		return
	}
	httpx.JSON(w, http.StatusOK, sc)
}

func (c *Component) putContent(w http.ResponseWriter, r *http.Request) {
	var p site.ContentPatch
	if err := httpx.Decode(w, r, &p); err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	sc, err := c.deps.Store.UpdateSiteContent(r.Context(), p)
	if err != nil {
		httpx.Internal(w, r, err, c.deps.ExposeErrors)
		return
	}
	metrics.Mutation("content", "update")
	httpx.JSON(w, http.StatusOK, sc)
}

func (c *Component) getTheme(w http.ResponseWriter, r *http.Request) {
	th, err := c.deps.Store.GetSiteTheme(r.Context())
	if err != nil {
		httpx.Internal(w, r, err, c.deps.ExposeErrors)
		return
	}
	httpx.JSON(w, http.StatusOK, th)
}

func (c *Component) putTheme(w http.ResponseWriter, r *http.Request) {
	var p site.ThemePatch
	if err := httpx.Decode(w, r, &p); err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	th, err := c.deps.Store.UpdateSiteTheme(r.Context(), p)
	if err != nil {
		httpx.Internal(w, r, err, c.deps.ExposeErrors)
		return
	}
	metrics.Mutation("theme", "update")
	httpx.JSON(w, http.StatusOK, th)
}
