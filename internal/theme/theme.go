// Package theme holds the parsed templates for the public pages.
// A Theme combines:
//
//   - Name      – the theme directory name inside the template FS (for
//     example, "pcg").
//   - Renderer  – parsed templates ready for execution.
//   - AssetFunc – helper injected into templates so they can resolve
//     `{{ asset "css/site.css" }}` to a URL.
//
// Templates and assets ship inside the binary via embed.FS, so a deploy is
// one file.
package theme

import (
	"html/template"
	"path"
)

// Theme is returned by Load once all templates are parsed.
type Theme struct {
	Name      string
	Renderer  *template.Template
	AssetFunc func(string) string
}

// AssetPrefix is the URL prefix assets are served under.
const AssetPrefix = "/assets/"

// New constructs a Theme whose AssetFunc points at AssetPrefix.
func New(name string, tpl *template.Template) *Theme {
	return &Theme{
		Name:     name,
		Renderer: tpl,
		AssetFunc: func(p string) string {
			return path.Join(AssetPrefix, p)
		},
	}
}
