// internal/auth/context.go
//
// Request-scoped user helpers.
//
// Usage
// -----
//
//	// Attach the user after the session cookie resolves.
//	ctx = auth.WithUser(ctx, u)
//
//	// Downstream code retrieves it.
//	u, ok := auth.UserFrom(ctx)
//	id, ok := auth.UserID(ctx)
//
// Notes
// -----
//   - The stored value is a *store.User so handlers can answer GET /api/user
//     without a second lookup.
//   - Oxford commas, two spaces after periods.
package auth

import (
	"context"

	"github.com/yanizio/pcgsite/internal/store"
)

// userKey is unexported to avoid context-key collisions.
type userKey struct{}

// WithUser returns a new context carrying u.
func WithUser(ctx context.Context, u *store.User) context.Context {
	return context.WithValue(ctx, userKey{}, u)
}

// UserFrom returns the authenticated user, or (nil, false).
func UserFrom(ctx context.Context) (*store.User, bool) {
	u, ok := ctx.Value(userKey{}).(*store.User)
	return u, ok && u != nil
}

// UserID returns the authenticated user's id, or ("", false).
func UserID(ctx context.Context) (string, bool) {
	u, ok := UserFrom(ctx)
	if !ok {
		return "", false
	}
	return u.ID, true
}
