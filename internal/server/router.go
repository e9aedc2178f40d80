// internal/server/router.go
//
// Root handler assembly.
//
// Middleware order
// ----------------
//
//  1. chi RequestID and RealIP     – id for logs, client address for geo.
//  2. requestinfo.Enrich           – UA and geo snapshot.
//  3. RequestLogger                – per-request zap logger and access line.
//  4. Recoverer                    – panics become 500s after logging.
//  5. metrics.Instrument           – count and latency per route pattern.
//  6. Security (and ForceHTTPS)    – response headers, optional redirect.
//  7. auth.Authenticate            – attaches the session user, if any.
//
// /metrics is mounted beside the components.  Every registered component
// is initialised with the shared Deps and then attaches its routes.
package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/yanizio/pcgsite/internal/auth"
	"github.com/yanizio/pcgsite/internal/component"
	"github.com/yanizio/pcgsite/internal/httpx"
	"github.com/yanizio/pcgsite/internal/metrics"
	"github.com/yanizio/pcgsite/internal/middleware"
	"github.com/yanizio/pcgsite/internal/requestinfo"
)

// Options configures Router.
type Options struct {
	Log        *zap.SugaredLogger
	Deps       component.Deps
	ForceHTTPS bool

	// Components defaults to component.All().
	Components []component.Component
}

// Router wires middleware, /metrics, and every component onto one chi
// router.  It fails if any component's Init fails.
func Router(o Options) (http.Handler, error) {
	log := o.Log
	if log == nil {
		log = zap.S()
	}
	comps := o.Components
	if comps == nil {
		comps = component.All()
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(requestinfo.Enrich)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimw.Recoverer)
	r.Use(metrics.Instrument)
	r.Use(middleware.Security)
	if o.ForceHTTPS {
		r.Use(middleware.ForceHTTPS)
	}
	r.Use(auth.Authenticate(o.Deps.Auth, o.Deps.Cookie))

	r.Handle("/metrics", promhttp.Handler())
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			httpx.Error(w, http.StatusNotFound, "not found")
			return
		}
		http.NotFound(w, r)
	})

	for _, c := range comps {
		if err := c.Init(o.Deps); err != nil {
			return nil, fmt.Errorf("component %s init: %w", c.Name(), err)
		}
		c.Routes(r)
		log.Debugw("component routes attached", "component", c.Name())
	}
	return r, nil
}
