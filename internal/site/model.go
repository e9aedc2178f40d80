// internal/site/model.go
//
// Site-wide content and theme records.
//
// Context
// -------
// The marketing site reads two singleton rows, `site_content` and
// `site_theme`, each pinned to id = 1.  They behave like configuration
// records with an init-on-first-access rule: the storage layer inserts the
// defaults below the first time a row is requested and never deletes it.
//
// Schema reference
//
//	CREATE TABLE site_content (
//	    id                    INT  NOT NULL PRIMARY KEY,
//	    hero_headline         TEXT NOT NULL,
//	    hero_subtext          TEXT NOT NULL,
//	    about_text            JSON NOT NULL,
//	    services              JSON NOT NULL,
//	    leadership_title      TEXT NOT NULL,
//	    leadership_subtitle   TEXT NOT NULL,
//	    leadership_role       TEXT NOT NULL,
//	    expertise_title       TEXT NOT NULL,
//	    expertise_description TEXT NOT NULL,
//	    transit_title         TEXT NOT NULL,
//	    contact_title         TEXT NOT NULL,
//	    footer_description    TEXT NOT NULL,
//	    logo_url              TEXT NULL
//	);
//
// Notes
// -----
//   - JSON tags match the admin client payloads (camelCase).
//   - Defaults are returned by constructor functions, never stored in
//     package-level variables, so callers always receive a private copy.
//   - Oxford commas, two spaces after periods.
package site

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// SingletonID is the fixed primary key of both singleton rows.
const SingletonID = 1

//
// Content
//

// Service is one entry in the "Areas of Expertise" grid.
type Service struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Content mirrors the `site_content` row.
type Content struct {
	ID                   int         `db:"id"                    json:"id"`
	HeroHeadline         string      `db:"hero_headline"         json:"heroHeadline"`
	HeroSubtext          string      `db:"hero_subtext"          json:"heroSubtext"`
	AboutText            StringList  `db:"about_text"            json:"aboutText"`
	Services             ServiceList `db:"services"              json:"services"`
	LeadershipTitle      string      `db:"leadership_title"      json:"leadershipTitle"`
	LeadershipSubtitle   string      `db:"leadership_subtitle"   json:"leadershipSubtitle"`
	LeadershipRole       string      `db:"leadership_role"       json:"leadershipRole"`
	ExpertiseTitle       string      `db:"expertise_title"       json:"expertiseTitle"`
	ExpertiseDescription string      `db:"expertise_description" json:"expertiseDescription"`
	TransitTitle         string      `db:"transit_title"         json:"transitTitle"`
	ContactTitle         string      `db:"contact_title"         json:"contactTitle"`
	FooterDescription    string      `db:"footer_description"    json:"footerDescription"`
	LogoURL              *string     `db:"logo_url"              json:"logoUrl"`
}

// DefaultContent returns the values a fresh install starts with.
func DefaultContent() Content {
	return Content{
		ID:           SingletonID,
		HeroHeadline: "Advancing Access & Opportunity in Infrastructure",
		HeroSubtext: "Specializing in Civil Rights Compliance, Small Business Outreach, and " +
			"Workforce Development for major transit projects across the nation.",
		AboutText:            StringList{},
		Services:             ServiceList{},
		LeadershipTitle:      "Leadership",
		LeadershipSubtitle:   "Demarcus Peters",
		LeadershipRole:       "Director of Civil Rights Compliance & Small Business Outreach",
		ExpertiseTitle:       "Areas of Expertise",
		ExpertiseDescription: "We engage our core capabilities to deliver equitable outcomes for local communities and businesses.",
		TransitTitle:         "Transit Specific Practice",
		ContactTitle:         "Get in Touch",
		FooterDescription: "Specializing in Civil Rights Compliance, Small Business Outreach, and " +
			"Workforce Development for major transit projects.",
	}
}

// Clone returns a deep copy so callers may mutate the result freely.
func (c Content) Clone() Content {
	out := c
	out.AboutText = append(StringList{}, c.AboutText...)
	out.Services = append(ServiceList{}, c.Services...)
	if c.LogoURL != nil {
		u := *c.LogoURL
		out.LogoURL = &u
	}
	return out
}

//
// Theme
//

// Theme mirrors the `site_theme` row.  Colors are HSL triples such as
// "215 28% 17%", ready to drop into a CSS custom property.
type Theme struct {
	ID           int    `db:"id"            json:"id"`
	PrimaryColor string `db:"primary_color" json:"primaryColor"`
	AccentColor  string `db:"accent_color"  json:"accentColor"`
}

// DefaultTheme returns the navy / cyan palette the site launched with.
func DefaultTheme() Theme {
	return Theme{
		ID:           SingletonID,
		PrimaryColor: "215 28% 17%",
		AccentColor:  "180 100% 35%",
	}
}

//
// JSON column types
//

// StringList is an ordered list of paragraphs stored in a JSON column.
type StringList []string

// Value implements driver.Valuer.  A nil list is stored as "[]".
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src any) error {
	var out []string
	if err := scanJSON(src, &out); err != nil {
		return err
	}
	if out == nil {
		out = []string{}
	}
	*l = out
	return nil
}

// ServiceList is an ordered list of services stored in a JSON column.
type ServiceList []Service

// Value implements driver.Valuer.  A nil list is stored as "[]".
func (l ServiceList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]Service(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (l *ServiceList) Scan(src any) error {
	var out []Service
	if err := scanJSON(src, &out); err != nil {
		return err
	}
	if out == nil {
		out = []Service{}
	}
	*l = out
	return nil
}

func scanJSON(src any, dst any) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("site: cannot scan %T into JSON column", src)
	}
}
