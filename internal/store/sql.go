// internal/store/sql.go
//
// MySQL-backed Storage.
//
// Context
// -------
// SQL wraps one process-wide *sqlx.DB pool.  Each method runs one or two
// parameterised statements and scans into the structs from model.go and
// internal/site.
//
// Singleton rows
// --------------
// GetSiteContent and GetSiteTheme select id = 1.  On a miss they run
// `INSERT IGNORE` with the Go defaults and select again, so concurrent first
// reads from several processes still converge on one row.  Inside a single
// process concurrent reads share one in-flight load through singleflight.
// The shared load runs detached from the caller's cancellation, so one
// client hanging up does not fail the others waiting on it.
//
// Notes
// -----
//   - Duplicate usernames surface as MySQL error 1062 and are translated to
//     ErrUsernameTaken.
//   - Oxford commas, two spaces after periods.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/sync/singleflight"

	"github.com/yanizio/pcgsite/internal/site"
)

const mysqlDuplicateEntry = 1062

// Compile-time assertion: *SQL satisfies Storage.
var _ Storage = (*SQL)(nil)

// SQL implements Storage on top of sqlx.
type SQL struct {
	db  *sqlx.DB
	sfg singleflight.Group
}

// NewSQL returns a Storage bound to db.
func NewSQL(db *sqlx.DB) *SQL {
	return &SQL{db: db}
}

/*──────────────────────────────── users ───────────────────────────────────*/

func (s *SQL) GetUser(ctx context.Context, id string) (*User, error) {
	const q = `SELECT id, username, password FROM users WHERE id = ? LIMIT 1`
	return s.getUser(ctx, q, id)
}

func (s *SQL) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	const q = `SELECT id, username, password FROM users WHERE username = ? LIMIT 1`
	return s.getUser(ctx, q, username)
}

func (s *SQL) getUser(ctx context.Context, q string, arg any) (*User, error) {
	var u User
	if err := s.db.GetContext(ctx, &u, q, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select user: %w", err)
	}
	return &u, nil
}

func (s *SQL) CreateUser(ctx context.Context, nu NewUser) (*User, error) {
	u := User{ID: uuid.NewString(), Username: nu.Username, Password: nu.Password}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, username, password) VALUES (?, ?, ?)`,
		u.ID, u.Username, u.Password)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == mysqlDuplicateEntry {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return &u, nil
}

/*──────────────────────────── site content ────────────────────────────────*/

const contentColumns = `id, hero_headline, hero_subtext, about_text, services,
	leadership_title, leadership_subtitle, leadership_role, expertise_title,
	expertise_description, transit_title, contact_title, footer_description, logo_url`

func (s *SQL) GetSiteContent(ctx context.Context) (*site.Content, error) {
	v, err, _ := s.sfg.Do("site_content", func() (any, error) {
		return s.loadContent(context.WithoutCancel(ctx))
	})
	if err != nil {
		return nil, err
	}
	c := v.(*site.Content).Clone()
	return &c, nil
}

func (s *SQL) loadContent(ctx context.Context) (*site.Content, error) {
	const sel = `SELECT ` + contentColumns + ` FROM site_content WHERE id = ? LIMIT 1`

	var c site.Content
	err := s.db.GetContext(ctx, &c, sel, site.SingletonID)
	if errors.Is(err, sql.ErrNoRows) {
		d := site.DefaultContent()
		if _, err := s.db.ExecContext(ctx,
			`INSERT IGNORE INTO site_content (`+contentColumns+`)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			d.ID, d.HeroHeadline, d.HeroSubtext, d.AboutText, d.Services,
			d.LeadershipTitle, d.LeadershipSubtitle, d.LeadershipRole, d.ExpertiseTitle,
			d.ExpertiseDescription, d.TransitTitle, d.ContactTitle, d.FooterDescription,
			d.LogoURL,
		); err != nil {
			return nil, fmt.Errorf("insert default site content: %w", err)
		}
		err = s.db.GetContext(ctx, &c, sel, site.SingletonID)
	}
	if err != nil {
		return nil, fmt.Errorf("select site content: %w", err)
	}
	return &c, nil
}

func (s *SQL) UpdateSiteContent(ctx context.Context, p site.ContentPatch) (*site.Content, error) {
	c, err := s.loadContent(ctx)
	if err != nil {
		return nil, err
	}
	p.Apply(c)

	_, err = s.db.ExecContext(ctx, `
		UPDATE site_content
		   SET hero_headline = ?, hero_subtext = ?, about_text = ?, services = ?,
		       leadership_title = ?, leadership_subtitle = ?, leadership_role = ?,
		       expertise_title = ?, expertise_description = ?, transit_title = ?,
		       contact_title = ?, footer_description = ?, logo_url = ?
		 WHERE id = ?`,
		c.HeroHeadline, c.HeroSubtext, c.AboutText, c.Services,
		c.LeadershipTitle, c.LeadershipSubtitle, c.LeadershipRole,
		c.ExpertiseTitle, c.ExpertiseDescription, c.TransitTitle,
		c.ContactTitle, c.FooterDescription, c.LogoURL,
		site.SingletonID,
	)
	if err != nil {
		return nil, fmt.Errorf("update site content: %w", err)
	}
	return c, nil
}

/*───────────────────────────── site theme ─────────────────────────────────*/

func (s *SQL) GetSiteTheme(ctx context.Context) (*site.Theme, error) {
	v, err, _ := s.sfg.Do("site_theme", func() (any, error) {
		return s.loadTheme(context.WithoutCancel(ctx))
	})
	if err != nil {
		return nil, err
	}
	t := *v.(*site.Theme)
	return &t, nil
}

func (s *SQL) loadTheme(ctx context.Context) (*site.Theme, error) {
	const sel = `SELECT id, primary_color, accent_color FROM site_theme WHERE id = ? LIMIT 1`

	var t site.Theme
	err := s.db.GetContext(ctx, &t, sel, site.SingletonID)
	if errors.Is(err, sql.ErrNoRows) {
		d := site.DefaultTheme()
		if _, err := s.db.ExecContext(ctx,
			`INSERT IGNORE INTO site_theme (id, primary_color, accent_color) VALUES (?, ?, ?)`,
			d.ID, d.PrimaryColor, d.AccentColor,
		); err != nil {
			return nil, fmt.Errorf("insert default site theme: %w", err)
		}
		err = s.db.GetContext(ctx, &t, sel, site.SingletonID)
	}
	if err != nil {
		return nil, fmt.Errorf("select site theme: %w", err)
	}
	return &t, nil
}

func (s *SQL) UpdateSiteTheme(ctx context.Context, p site.ThemePatch) (*site.Theme, error) {
	t, err := s.loadTheme(ctx)
	if err != nil {
		return nil, err
	}
	p.Apply(t)

	if _, err := s.db.ExecContext(ctx,
		`UPDATE site_theme SET primary_color = ?, accent_color = ? WHERE id = ?`,
		t.PrimaryColor, t.AccentColor, site.SingletonID,
	); err != nil {
		return nil, fmt.Errorf("update site theme: %w", err)
	}
	return t, nil
}

/*────────────────────────────── resources ─────────────────────────────────*/

const resourceColumns = `id, title, description, image_url, link_url, link_text`

func (s *SQL) GetResources(ctx context.Context) ([]Resource, error) {
	rows := make([]Resource, 0, 8)
	if err := s.db.SelectContext(ctx, &rows,
		`SELECT `+resourceColumns+` FROM resources ORDER BY id`); err != nil {
		return nil, fmt.Errorf("select resources: %w", err)
	}
	return rows, nil
}

func (s *SQL) getResource(ctx context.Context, id int64) (*Resource, error) {
	var r Resource
	err := s.db.GetContext(ctx, &r,
		`SELECT `+resourceColumns+` FROM resources WHERE id = ? LIMIT 1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select resource: %w", err)
	}
	return &r, nil
}

func (s *SQL) CreateResource(ctx context.Context, in ResourceInput) (*Resource, error) {
	r, err := in.record()
	if err != nil {
		return nil, err
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO resources (title, description, image_url, link_url, link_text)
		 VALUES (?, ?, ?, ?, ?)`,
		r.Title, r.Description, r.ImageURL, r.LinkURL, r.LinkText)
	if err != nil {
		return nil, fmt.Errorf("insert resource: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("resource id: %w", err)
	}
	r.ID = id
	return &r, nil
}

func (s *SQL) UpdateResource(ctx context.Context, id int64, p ResourcePatch) (*Resource, error) {
	r, err := s.getResource(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := p.Apply(r); err != nil {
		return nil, err
	}
	if _, err := s.db.ExecContext(ctx, `
		UPDATE resources
		   SET title = ?, description = ?, image_url = ?, link_url = ?, link_text = ?
		 WHERE id = ?`,
		r.Title, r.Description, r.ImageURL, r.LinkURL, r.LinkText, id,
	); err != nil {
		return nil, fmt.Errorf("update resource: %w", err)
	}
	return r, nil
}

func (s *SQL) DeleteResource(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM resources WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete resource: %w", err)
	}
	return nil
}
