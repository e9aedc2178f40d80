// fs.go holds a tiny helper for walking a template filesystem, since
// template.ParseFS globs do not recurse.  The key export is CollectHTML,
// which returns every .html path under the supplied directory.
package theme

import (
	"io/fs"
	"strings"
)

// CollectHTML walks dir inside fsys recursively and returns a list of
// *.html paths, sorted lexically by fs.WalkDir.  The paths can be fed
// straight into template.ParseFS.
func CollectHTML(fsys fs.FS, dir string) ([]string, error) {
	var files []string

	err := fs.WalkDir(fsys, dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(strings.ToLower(d.Name()), ".html") {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
