// components/resources/resources.go
//
// Resource-card endpoints.
//
// Routes
// ------
//
//	GET    /api/resources       public, cards in insertion order
//	POST   /api/resources       session, title and description required
//	PUT    /api/resources/{id}  session, partial update, 404 when absent
//	DELETE /api/resources/{id}  session, {"success":true} even when absent
//
// Notes
// -----
//   - A non-numeric {id} is a 400 before storage is touched.
//   - Oxford commas, two spaces after periods.

package resources

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/yanizio/pcgsite/internal/acl"
	"github.com/yanizio/pcgsite/internal/component"
	"github.com/yanizio/pcgsite/internal/httpx"
	"github.com/yanizio/pcgsite/internal/metrics"
	"github.com/yanizio/pcgsite/internal/store"
)

var _ component.Component = (*Component)(nil)

// Component serves the resource list.
type Component struct {
	deps component.Deps
}

func (c *Component) Name() string         { return "resources" }
func (c *Component) Migrations() []string { return store.ResourceSchema }

func (c *Component) Init(d component.Deps) error {
	if d.Store == nil {
		return errors.New("resources component: nil store")
	}
	c.deps = d
	return nil
}

func (c *Component) Routes(r chi.Router) {
	r.Get("/api/resources", c.list)
	r.Group(func(r chi.Router) {
		r.Use(acl.RequireUser)
		r.Post("/api/resources", c.create)
		r.Put("/api/resources/{id}", c.update)
		r.Delete("/api/resources/{id}", c.delete)
	})
}

func init() { component.Register(&Component{}) }

func (c *Component) list(w http.ResponseWriter, r *http.Request) {
	rows, err := c.deps.Store.GetResources(r.Context())
	if err != nil {
		httpx.Internal(w, r, err, c.deps.ExposeErrors)
		return
	}
	httpx.JSON(w, http.StatusOK, rows)
}

func (c *Component) create(w http.ResponseWriter, r *http.Request) {
	var in store.ResourceInput
	if err := httpx.Decode(w, r, &in); err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := httpx.Validate(in); err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := c.deps.Store.CreateResource(r.Context(), in)
	if errors.Is(err, store.ErrInvalid) {
		httpx.Error(w, http.StatusBadRequest, "title and description are required")
		return
	}
	if err != nil {
		httpx.Internal(w, r, err, c.deps.ExposeErrors)
		return
	}
	metrics.Mutation("resource", "create")
	httpx.JSON(w, http.StatusOK, res)
}

func (c *Component) update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var p store.ResourcePatch
	if err := httpx.Decode(w, r, &p); err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := c.deps.Store.UpdateResource(r.Context(), id, p)
	switch {
	case errors.Is(err, store.ErrNotFound):
		httpx.Error(w, http.StatusNotFound, "resource not found")
		return
	case errors.Is(err, store.ErrInvalid):
		httpx.Error(w, http.StatusBadRequest, "title and description cannot be blank")
		return
	case err != nil:
		httpx.Internal(w, r, err, c.deps.ExposeErrors)
		return
	}
	metrics.Mutation("resource", "update")
	httpx.JSON(w, http.StatusOK, res)
}

func (c *Component) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := c.deps.Store.DeleteResource(r.Context(), id); err != nil {
		httpx.Internal(w, r, err, c.deps.ExposeErrors)
		return
	}
	metrics.Mutation("resource", "delete")
	httpx.Success(w)
}

// parseID writes a 400 and returns false when {id} is not a positive integer.
func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		httpx.Error(w, http.StatusBadRequest, "invalid resource id")
		return 0, false
	}
	return id, true
}
