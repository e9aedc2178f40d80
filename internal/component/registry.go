// internal/component/registry.go
//
// Component registry (cycle-free).
//
// Each concrete component lives under components/<name> and calls
// component.Register() in an init() function.  At boot the server collects
// every component's Migrations() for database.Migrate, calls Init() with the
// shared dependencies, and then lets Routes() attach handlers to the root
// router.  Components share one router because chi panics when "/" is
// mounted twice.

package component

import (
	"sort"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/yanizio/pcgsite/internal/auth"
	"github.com/yanizio/pcgsite/internal/session"
	"github.com/yanizio/pcgsite/internal/store"
)

// Deps is what a component receives in Init.
type Deps struct {
	Store  store.Storage
	Auth   *auth.Service
	Cookie session.Cookie

	// ExposeErrors mirrors http.expose_errors.
	ExposeErrors bool
}

// Component contract.
//
// Migrations() may return nil if the component has no schema.  Routes()
// registers page and API endpoints on r, e.g:
//
//	func (c *Component) Routes(r chi.Router) {
//		r.Get("/api/thing", c.list)
//		r.With(acl.RequireUser).Post("/api/thing", c.create)
//	}
type Component interface {
	Name() string
	Routes(r chi.Router)
	Migrations() []string
	Init(Deps) error
}

var (
	mu       sync.RWMutex
	registry = map[string]Component{}
)

// Register is invoked from component init() functions.  A second component
// with the same name replaces the first.
func Register(c Component) {
	mu.Lock()
	registry[c.Name()] = c
	mu.Unlock()
}

// All returns every registered component sorted by name so migrations and
// route registration run in a stable order.
func All() []Component {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]Component, 0, len(registry))
	for _, c := range registry {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// Migrations concatenates the DDL of every registered component.
func Migrations() []string {
	var out []string
	for _, c := range All() {
		out = append(out, c.Migrations()...)
	}
	return out
}
