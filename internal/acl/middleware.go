// internal/acl/middleware.go
//
// Chi middleware that gates admin routes on an authenticated session.
//
// The site has a single privilege level: any signed-in user may edit
// content, theme, and resources.  RequireUser therefore only checks that
// auth.Authenticate attached a user to the request context.

package acl

import (
	"net/http"

	"github.com/yanizio/pcgsite/internal/auth"
	"github.com/yanizio/pcgsite/internal/httpx"
	"github.com/yanizio/pcgsite/internal/logger"
)

// RequireUser answers 401 `{"error":"Unauthorized"}` when the request has
// no authenticated user.  The wrapped handler never runs in that case.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := auth.UserID(r.Context()); !ok {
			logger.FromContext(r.Context()).Debugw("unauthenticated write rejected",
				"method", r.Method, "path", r.URL.Path)
			httpx.Error(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}
