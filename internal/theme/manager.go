package theme

import (
	"fmt"
	"html/template"
	"io/fs"
	"path"
)

// Load parses every template under <name>/templates in fsys.  Sub-templates
// ({{ template "layout" . }}) resolve across files because all files are
// parsed into one set.  extra is merged over the default FuncMap.
func Load(fsys fs.FS, name string, extra template.FuncMap) (*Theme, error) {
	dir := path.Join(name, "templates")
	files, err := CollectHTML(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("theme %s: %w", name, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("theme %s: no templates under %s", name, dir)
	}

	th := New(name, nil)
	tpl := template.New("").Funcs(FuncMap(th.AssetFunc))
	if extra != nil {
		tpl = tpl.Funcs(extra)
	}
	if _, err := tpl.ParseFS(fsys, files...); err != nil {
		return nil, fmt.Errorf("parse theme %s: %w", name, err)
	}
	th.Renderer = tpl
	return th, nil
}

// Assets returns the <name>/assets sub-tree for http.FileServer.
func Assets(fsys fs.FS, name string) (fs.FS, error) {
	return fs.Sub(fsys, path.Join(name, "assets"))
}
