package store

import (
	"encoding/json"
	"strings"
)

// DefaultLinkText is stored when a resource is created without link text.
const DefaultLinkText = "Learn More"

// User mirrors one row in `users`.  Password holds the bcrypt hash and is
// never serialised.
type User struct {
	ID       string `db:"id"       json:"id"`
	Username string `db:"username" json:"username"`
	Password string `db:"password" json:"-"`
}

// NewUser is the insert payload.  Password must already be hashed.
type NewUser struct {
	Username string
	Password string
}

// Resource mirrors one row in `resources`.
type Resource struct {
	ID          int64   `db:"id"          json:"id"`
	Title       string  `db:"title"       json:"title"`
	Description string  `db:"description" json:"description"`
	ImageURL    *string `db:"image_url"   json:"imageUrl"`
	LinkURL     *string `db:"link_url"    json:"linkUrl"`
	LinkText    *string `db:"link_text"   json:"linkText"`
}

// ResourceInput is the body accepted by POST /api/resources.
type ResourceInput struct {
	Title       string  `json:"title"       validate:"required"`
	Description string  `json:"description" validate:"required"`
	ImageURL    *string `json:"imageUrl"`
	LinkURL     *string `json:"linkUrl"`
	LinkText    *string `json:"linkText"`
}

// record converts the input to a row.  Blank optional fields are stored as
// NULL, and missing link text gets the default.
func (in ResourceInput) record() (Resource, error) {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Description) == "" {
		return Resource{}, ErrInvalid
	}
	r := Resource{
		Title:       in.Title,
		Description: in.Description,
		ImageURL:    blankToNil(in.ImageURL),
		LinkURL:     blankToNil(in.LinkURL),
		LinkText:    linkTextOrDefault(blankToNil(in.LinkText)),
	}
	return r, nil
}

// Clearable is an optional PUT field.  An absent key leaves Set false; null
// or a blank string sets it with a nil Value, which clears the column.
type Clearable struct {
	Set   bool
	Value *string
}

// ClearableOf returns a set field holding v (nil when v is blank).
func ClearableOf(v string) Clearable {
	return Clearable{Set: true, Value: blankToNil(&v)}
}

// UnmarshalJSON is only called for keys present in the body.
func (c *Clearable) UnmarshalJSON(b []byte) error {
	c.Set = true
	c.Value = nil
	if string(b) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	c.Value = blankToNil(&s)
	return nil
}

// ResourcePatch is the body accepted by PUT /api/resources/{id}.  Nil or
// unset fields keep their stored value.
type ResourcePatch struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	ImageURL    Clearable `json:"imageUrl"`
	LinkURL     Clearable `json:"linkUrl"`
	LinkText    Clearable `json:"linkText"`
}

// Apply merges the patch into r.  Blank title or description is rejected so
// a row never loses its required columns.
func (p ResourcePatch) Apply(r *Resource) error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return ErrInvalid
	}
	if p.Description != nil && strings.TrimSpace(*p.Description) == "" {
		return ErrInvalid
	}
	if p.Title != nil {
		r.Title = *p.Title
	}
	if p.Description != nil {
		r.Description = *p.Description
	}
	if p.ImageURL.Set {
		r.ImageURL = p.ImageURL.Value
	}
	if p.LinkURL.Set {
		r.LinkURL = p.LinkURL.Value
	}
	if p.LinkText.Set {
		r.LinkText = linkTextOrDefault(p.LinkText.Value)
	}
	return nil
}

func blankToNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// linkTextOrDefault mirrors the column default, so a card with a link
// always has button text.
func linkTextOrDefault(s *string) *string {
	if s == nil {
		lt := DefaultLinkText
		return &lt
	}
	return s
}
