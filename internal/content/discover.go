package content

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// DiscoverFiles returns the sorted relative paths of markdown files under
// root. Dotfiles, underscore-prefixed names and their directories are
// skipped (editor state, partials).
func DiscoverFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		hidden := strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
		if d.IsDir() {
			if p != root && hidden {
				return filepath.SkipDir
			}
			return nil
		}
		if hidden || !strings.EqualFold(filepath.Ext(name), ".md") {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// LoadDir discovers and parses every page under root. Draft pages are
// dropped unless includeDrafts is set. Two files mapping to the same
// route is an error.
func LoadDir(root string, includeDrafts bool) ([]*Page, error) {
	files, err := DiscoverFiles(root)
	if err != nil {
		return nil, err
	}

	pages := make([]*Page, 0, len(files))
	byRoute := make(map[string]string, len(files))
	for _, rel := range files {
		page, err := LoadFile(filepath.Join(root, filepath.FromSlash(rel)), root)
		if err != nil {
			return nil, err
		}
		if page.Meta.Draft && !includeDrafts {
			continue
		}
		if prev, dup := byRoute[page.Route]; dup {
			return nil, fmt.Errorf("duplicate route %s: %s and %s", page.Route, prev, page.SourcePath)
		}
		byRoute[page.Route] = page.SourcePath
		pages = append(pages, page)
	}

	sort.Slice(pages, func(i, j int) bool { return pages[i].Route < pages[j].Route })
	return pages, nil
}
