// components/web/web.go
//
// Public, server-rendered pages.
//
// Routes
// ------
//
//	GET /            landing page (hero, leadership, expertise, contact)
//	GET /resources   resource cards
//	GET /assets/*    embedded CSS and images
//	GET /healthz     liveness probe
//
// Context
// -------
// Pages read content, theme, and resources through store.Storage on every
// request.  Theme colors are injected as CSS custom properties so an edit
// through PUT /api/theme shows on the next page load.
//
// Notes
// -----
//   - Templates ship inside the binary (embed.FS).
//   - A render failure is logged and answered with a plain 500; the
//     partially rendered page is discarded.
//   - Oxford commas, two spaces after periods.

package web

import (
	"bytes"
	"embed"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/yanizio/pcgsite/internal/component"
	"github.com/yanizio/pcgsite/internal/head"
	"github.com/yanizio/pcgsite/internal/logger"
	"github.com/yanizio/pcgsite/internal/requestinfo"
	"github.com/yanizio/pcgsite/internal/site"
	"github.com/yanizio/pcgsite/internal/store"
	"github.com/yanizio/pcgsite/internal/theme"
)

//go:embed themes
var themesFS embed.FS

const themeName = "pcg"

var _ component.Component = (*Component)(nil)

// Component renders the public site.
type Component struct {
	deps  component.Deps
	theme *theme.Theme
}

func (c *Component) Name() string         { return "web" }
func (c *Component) Migrations() []string { return nil }

// Init parses the embedded templates.
func (c *Component) Init(d component.Deps) error {
	if d.Store == nil {
		return errors.New("web component: nil store")
	}
	th, err := theme.Load(themesFS, "themes/"+themeName, nil)
	if err != nil {
		return err
	}
	c.deps = d
	c.theme = th
	return nil
}

func (c *Component) Routes(r chi.Router) {
	r.Get("/", c.home)
	r.Get("/resources", c.resources)
	r.Get("/healthz", healthz)

	assets, err := theme.Assets(themesFS, "themes/"+themeName)
	if err == nil {
		r.Handle(theme.AssetPrefix+"*",
			http.StripPrefix(theme.AssetPrefix, http.FileServer(http.FS(assets))))
	}
}

func init() { component.Register(&Component{}) }

/*──────────────────────────── view models ─────────────────────────────────*/

type practice struct {
	Title string
	Icon  site.Icon
}

// fallbackServices is shown until an editor saves a services list.
var fallbackServices = []site.Service{
	{Title: "Contract Compliance", Description: "Ensuring adherence to regulatory requirements and contract stipulations."},
	{Title: "EEO / HR Investigations", Description: "Conducting thorough investigations and training for human resources and equal opportunity."},
	{Title: "Supplier Diversity", Description: "Creating meaningful opportunities for small, disadvantaged, and women-owned businesses."},
	{Title: "Workforce Diversity", Description: "Strategies to increase minority participation in federal contracting programs."},
	{Title: "Change Management", Description: "Guiding organizations through structural and cultural transitions."},
	{Title: "PR / Media Relations", Description: "Managing public perception and communication strategies for major projects."},
}

var transitPractice = []practice{
	{"Sub-Recipient Monitoring", site.IconScale},
	{"Civil Rights Policy", site.IconGavel},
	{"Consultative Process", site.IconUsers},
	{"49 CFR § 21 (Title VI)", site.IconScale},
	{"49 CFR § 26 (DBE)", site.IconBuilding},
	{"Title VII (EEO)", site.IconUsers},
	{"Airport Concessions", site.IconTrain},
}

type page struct {
	Head      *head.Builder
	Content   *site.Content
	Theme     *site.Theme
	Info      *requestinfo.RequestInfo
	Services  []site.Service
	Transit   []practice
	Resources []store.Resource
	Year      int
}

/*──────────────────────────── handlers ────────────────────────────────────*/

func (c *Component) home(w http.ResponseWriter, r *http.Request) {
	p, err := c.basePage(r)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	p.Head.SetTitle("PCG | " + p.Content.HeroHeadline)

	p.Services = p.Content.Services
	if len(p.Services) == 0 {
		p.Services = fallbackServices
	}
	p.Transit = transitPractice

	_ = p.Head.JSONLD(map[string]any{
		"@context":    "https://schema.org",
		"@type":       "Organization",
		"name":        "PCG",
		"description": p.Content.FooterDescription,
		"email":       "Demarcus.Peters@pcgtransit.com",
	})
	c.render(w, r, "home.html", p)
}

func (c *Component) resources(w http.ResponseWriter, r *http.Request) {
	p, err := c.basePage(r)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	p.Head.SetTitle("PCG | Resources")
	if p.Resources, err = c.deps.Store.GetResources(r.Context()); err != nil {
		c.fail(w, r, err)
		return
	}
	c.render(w, r, "resources.html", p)
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

/*──────────────────────────── helpers ─────────────────────────────────────*/

func (c *Component) basePage(r *http.Request) (*page, error) {
	ctx := r.Context()
	sc, err := c.deps.Store.GetSiteContent(ctx)
	if err != nil {
		return nil, err
	}
	th, err := c.deps.Store.GetSiteTheme(ctx)
	if err != nil {
		return nil, err
	}

	h := head.New()
	h.Meta(`<meta charset="utf-8">`)
	h.Meta(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
	h.Link(`<link rel="icon" href="/favicon.ico">`)
	h.Description(sc.HeroSubtext)

	return &page{
		Head:    h,
		Content: sc,
		Theme:   th,
		Info:    requestinfo.FromContext(ctx),
		Year:    time.Now().Year(),
	}, nil
}

func (c *Component) render(w http.ResponseWriter, r *http.Request, name string, p *page) {
	var buf bytes.Buffer
	if err := c.theme.Renderer.ExecuteTemplate(&buf, name, p); err != nil {
		c.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (c *Component) fail(w http.ResponseWriter, r *http.Request, err error) {
	logger.FromContext(r.Context()).Errorw("page render failed", "path", r.URL.Path, "err", err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
