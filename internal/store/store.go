// internal/store/store.go
//
// Storage interface for users, site content, site theme, and resources.
//
// Context
// -------
// Every read and write the HTTP layer performs goes through Storage.  Route
// handlers never issue SQL; they call one of the methods below and map the
// sentinel errors to status codes.
//
// Two implementations ship with the site:
//
//   - SQL     – sqlx over MySQL, the production backend.
//   - Memory  – process-local maps, used for local demos and tests.
//
// Error contract
// --------------
//   - Absence is reported as ErrNotFound, never as a nil record.
//   - A duplicate username is reported as ErrUsernameTaken.
//   - A resource without title or description is rejected with ErrInvalid.
//   - Anything else is an infrastructure failure and is returned wrapped.
//
// Notes
// -----
//   - The singleton rows are created lazily on first read.  Updates merge
//     the supplied fields and the last writer wins; there is no version
//     check.
//   - DeleteResource is idempotent: removing an id that does not exist is
//     a successful no-op.
//   - Oxford commas, two spaces after periods.
package store

import (
	"context"
	"errors"

	"github.com/yanizio/pcgsite/internal/site"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrUsernameTaken = errors.New("store: username already exists")
	ErrInvalid       = errors.New("store: invalid record")
)

// Storage is the single choke point for persistent state.
type Storage interface {
	GetUser(ctx context.Context, id string) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	CreateUser(ctx context.Context, u NewUser) (*User, error)

	GetSiteContent(ctx context.Context) (*site.Content, error)
	UpdateSiteContent(ctx context.Context, p site.ContentPatch) (*site.Content, error)
	GetSiteTheme(ctx context.Context) (*site.Theme, error)
	UpdateSiteTheme(ctx context.Context, p site.ThemePatch) (*site.Theme, error)

	GetResources(ctx context.Context) ([]Resource, error)
	CreateResource(ctx context.Context, in ResourceInput) (*Resource, error)
	UpdateResource(ctx context.Context, id int64, p ResourcePatch) (*Resource, error)
	DeleteResource(ctx context.Context, id int64) error
}
