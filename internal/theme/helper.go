//
//  internal/theme/helper.go
//
//  Template functions shared by every page.  Request helpers read the
//  *requestinfo.RequestInfo placed on the context by the Enrich
//  middleware, so HTML authors never poke through nested structs.
//

package theme

import (
	"html/template"

	"github.com/yanizio/pcgsite/internal/requestinfo"
	"github.com/yanizio/pcgsite/internal/site"
)

// FuncMap returns the global template function map.  asset resolves
// static file URLs.
func FuncMap(asset func(string) string) template.FuncMap {
	return template.FuncMap{
		"asset": asset,

		// Content helpers
		"serviceIcon": func(title string) string {
			return string(site.ServiceIcon(title))
		},
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},

		// UA helpers
		"device": func(ri *requestinfo.RequestInfo) string {
			if ri == nil {
				return ""
			}
			return ri.UA.Device
		},
	}
}
