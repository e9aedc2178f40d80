// internal/auth/service.go
//
// Username and password authentication backed by server-side sessions.
//
// Context
// -------
// Register and Login both end in a fresh session: the caller receives the
// opaque token and its expiry and writes the cookie.  Logout destroys the
// session record.  Resolve turns a token back into a user for the
// Authenticate middleware.
//
// Notes
// -----
//   - Passwords are bcrypt hashes; the plain text never leaves this file.
//   - Every failed Login runs one bcrypt comparison, against a dummy hash
//     when the username is unknown or the input is rejected, so response
//     time does not reveal whether the account exists.
//   - Oxford commas, two spaces after periods.
package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/yanizio/pcgsite/internal/session"
	"github.com/yanizio/pcgsite/internal/store"
)

// DefaultSessionTTL applies when Service.TTL is zero.
const DefaultSessionTTL = 14 * 24 * time.Hour

// bcrypt ignores bytes past 72; longer input is refused outright.
const maxPasswordBytes = 72

var (
	// ErrInvalidCredentials covers both unknown users and bad passwords.
	ErrInvalidCredentials = errors.New("auth: invalid username or password")
	// ErrInvalidInput is returned when username or password is blank or the
	// password is too long to hash.
	ErrInvalidInput = errors.New("auth: username and password are required")
)

// Service wires user storage to a session store.
type Service struct {
	Store    store.Storage
	Sessions session.Store
	Cost     int           // bcrypt cost; <= 0 selects the library default
	TTL      time.Duration // session lifetime

	dummyOnce sync.Once
	dummyHash string
}

// Result is what a successful Register or Login hands back.
type Result struct {
	User    *store.User
	Token   string
	Expires time.Time
}

func (s *Service) ttl() time.Duration {
	if s.TTL <= 0 {
		return DefaultSessionTTL
	}
	return s.TTL
}

func validInput(username, password string) bool {
	return strings.TrimSpace(username) != "" &&
		password != "" &&
		len(password) <= maxPasswordBytes
}

// Register creates an account and signs it in.
func (s *Service) Register(ctx context.Context, username, password string) (*Result, error) {
	username = strings.TrimSpace(username)
	if !validInput(username, password) {
		return nil, ErrInvalidInput
	}
	hash, err := HashPassword(password, s.Cost)
	if err != nil {
		return nil, err
	}
	u, err := s.Store.CreateUser(ctx, store.NewUser{Username: username, Password: hash})
	if err != nil {
		return nil, err
	}
	return s.startSession(ctx, u)
}

// Login verifies credentials and opens a session.
func (s *Service) Login(ctx context.Context, username, password string) (*Result, error) {
	username = strings.TrimSpace(username)
	if !validInput(username, password) {
		if len(password) > maxPasswordBytes {
			password = password[:maxPasswordBytes]
		}
		CheckPassword(s.dummy(), password)
		return nil, ErrInvalidCredentials
	}
	u, err := s.Store.GetUserByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		CheckPassword(s.dummy(), password)
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !CheckPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return s.startSession(ctx, u)
}

// Logout destroys the session behind token.
func (s *Service) Logout(ctx context.Context, token string) error {
	return s.Sessions.Destroy(ctx, token)
}

// Resolve returns the user a session token belongs to.  Unknown or expired
// tokens, and sessions whose user no longer exists, yield
// session.ErrNoSession.
func (s *Service) Resolve(ctx context.Context, token string) (*store.User, error) {
	uid, err := s.Sessions.Lookup(ctx, token)
	if err != nil {
		return nil, err
	}
	u, err := s.Store.GetUser(ctx, uid)
	if errors.Is(err, store.ErrNotFound) {
		return nil, session.ErrNoSession
	}
	return u, err
}

func (s *Service) startSession(ctx context.Context, u *store.User) (*Result, error) {
	tok, exp, err := s.Sessions.Create(ctx, u.ID, s.ttl())
	if err != nil {
		return nil, err
	}
	return &Result{User: u, Token: tok, Expires: exp}, nil
}

// dummy returns a throwaway hash at the configured cost.
func (s *Service) dummy() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = HashPassword("pcgsite-dummy-password", s.Cost)
	})
	return s.dummyHash
}
