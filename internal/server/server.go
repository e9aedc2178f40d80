// internal/server/server.go
//
// HTTP server helper with robust timeouts.
//
// Production hardening recommends:
//
//   - ReadTimeout   – abort slow-loris headers (10 s default)
//   - WriteTimeout  – cap total response time (15 s default)
//   - IdleTimeout   – close keep-alives on idle clients (60 s default)
//
// The defaults live in config.applyDefaults; this helper only copies them
// so cmd/web doesn't repeat boilerplate.
package server

import (
	"net/http"

	"github.com/yanizio/pcgsite/internal/config"
)

// New constructs an *http.Server from the http config section.
func New(c config.HTTP, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         c.ListenAddr,
		Handler:      handler,
		ReadTimeout:  c.ReadTimeout,
		WriteTimeout: c.WriteTimeout,
		IdleTimeout:  c.IdleTimeout,
	}
}
