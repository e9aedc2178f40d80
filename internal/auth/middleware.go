package auth

import (
	"errors"
	"net/http"

	"github.com/yanizio/pcgsite/internal/logger"
	"github.com/yanizio/pcgsite/internal/session"
)

// Authenticate resolves the session cookie and, when valid, stores the
// user in the request context.  It never rejects a request; route-level
// guards (acl.RequireUser) decide what anonymous callers may do.
func Authenticate(svc *Service, ck session.Cookie) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok, ok := ck.Token(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			u, err := svc.Resolve(r.Context(), tok)
			if err != nil {
				if !errors.Is(err, session.ErrNoSession) {
					logger.FromContext(r.Context()).Warnw("session lookup failed", "err", err)
				}
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
		})
	}
}
