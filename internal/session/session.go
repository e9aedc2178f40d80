// internal/session/session.go
//
// Server-side login sessions.
//
// Context
// -------
// A successful login mints an opaque token, hands it to the browser in an
// HttpOnly cookie, and records SHA-256(token) → user id in a Store.  The raw
// token never touches the backing store, so a leaked sessions table cannot
// be replayed.  Logout destroys the record and expires the cookie.
//
// Drivers
// -------
//   - SQLStore    MySQL table `sessions`, survives restarts.
//   - RedisStore  go-redis with native key TTLs.
//   - MemoryStore process-local map for demos and tests.
//
// Notes
// -----
//   - Expired entries are never returned; Lookup reports ErrNoSession.
//   - Oxford commas, two spaces after periods.
package session

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"time"
)

// ErrNoSession is returned by Lookup when the token is unknown or expired.
var ErrNoSession = errors.New("session: not found")

// Store persists sessions keyed by token hash.
type Store interface {
	// Create issues a fresh token for userID valid for ttl.
	Create(ctx context.Context, userID string, ttl time.Duration) (token string, expires time.Time, err error)
	// Lookup resolves a token to its user id.
	Lookup(ctx context.Context, token string) (string, error)
	// Destroy removes the session.  Unknown tokens are not an error.
	Destroy(ctx context.Context, token string) error
}

// NewToken returns 32 random bytes, base64url-encoded without padding.
func NewToken() (string, error) {
	var b [32]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b[:]), nil
}

// hashToken is the storage key for token.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
