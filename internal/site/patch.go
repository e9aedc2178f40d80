// internal/site/patch.go
//
// Partial updates for the singleton rows.
//
// A patch carries pointer fields.  A nil pointer means "not supplied" and
// leaves the stored value untouched, so repeated PUTs with partial bodies
// never wipe unrelated fields.  JSON `null` decodes to a nil pointer and is
// therefore treated the same as omission.
package site

import "strings"

// ContentPatch is the body accepted by PUT /api/content.
type ContentPatch struct {
	HeroHeadline         *string      `json:"heroHeadline"`
	HeroSubtext          *string      `json:"heroSubtext"`
	AboutText            *StringList  `json:"aboutText"`
	Services             *ServiceList `json:"services"`
	LeadershipTitle      *string      `json:"leadershipTitle"`
	LeadershipSubtitle   *string      `json:"leadershipSubtitle"`
	LeadershipRole       *string      `json:"leadershipRole"`
	ExpertiseTitle       *string      `json:"expertiseTitle"`
	ExpertiseDescription *string      `json:"expertiseDescription"`
	TransitTitle         *string      `json:"transitTitle"`
	ContactTitle         *string      `json:"contactTitle"`
	FooterDescription    *string      `json:"footerDescription"`

	// LogoURL set to "" clears the logo.
	LogoURL *string `json:"logoUrl"`
}

// Apply merges the supplied fields into c.
func (p ContentPatch) Apply(c *Content) {
	setString(&c.HeroHeadline, p.HeroHeadline)
	setString(&c.HeroSubtext, p.HeroSubtext)
	setString(&c.LeadershipTitle, p.LeadershipTitle)
	setString(&c.LeadershipSubtitle, p.LeadershipSubtitle)
	setString(&c.LeadershipRole, p.LeadershipRole)
	setString(&c.ExpertiseTitle, p.ExpertiseTitle)
	setString(&c.ExpertiseDescription, p.ExpertiseDescription)
	setString(&c.TransitTitle, p.TransitTitle)
	setString(&c.ContactTitle, p.ContactTitle)
	setString(&c.FooterDescription, p.FooterDescription)

	if p.AboutText != nil {
		c.AboutText = append(StringList{}, (*p.AboutText)...)
	}
	if p.Services != nil {
		c.Services = append(ServiceList{}, (*p.Services)...)
	}
	if p.LogoURL != nil {
		if u := strings.TrimSpace(*p.LogoURL); u != "" {
			c.LogoURL = &u
		} else {
			c.LogoURL = nil
		}
	}
}

// ThemePatch is the body accepted by PUT /api/theme.
type ThemePatch struct {
	PrimaryColor *string `json:"primaryColor"`
	AccentColor  *string `json:"accentColor"`
}

// Apply merges the supplied colors into t.
func (p ThemePatch) Apply(t *Theme) {
	setString(&t.PrimaryColor, p.PrimaryColor)
	setString(&t.AccentColor, p.AccentColor)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
