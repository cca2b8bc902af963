package site

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/robworks/opsdocs/internal/helpers"
)

// searchDoc is one entry of the search.json manifest. The excerpt keeps
// the manifest small; full-text search goes through the store's FTS
// index instead.
type searchDoc struct {
	Route   string `json:"route"`
	Title   string `json:"title"`
	Section string `json:"section"`
	Excerpt string `json:"excerpt,omitempty"`
}

const excerptRunes = 240

// writeManifests emits nav.json and search.json next to the built pages.
func (b *Builder) writeManifests(model *Model) error {
	nav, err := json.MarshalIndent(model.Nav, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode nav manifest: %w", err)
	}
	if err := writeFileAtomic(filepath.Join(b.cfg.OutputDir, "nav.json"), nav); err != nil {
		return err
	}

	docs := make([]searchDoc, 0, len(model.Pages))
	for _, pm := range model.Pages {
		docs = append(docs, searchDoc{
			Route:   pm.Page.Route,
			Title:   pm.Page.Title(),
			Section: pm.Page.Section,
			Excerpt: helpers.TruncateRunes(pm.Fragment.Plain, excerptRunes),
		})
	}
	search, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode search manifest: %w", err)
	}
	return writeFileAtomic(filepath.Join(b.cfg.OutputDir, "search.json"), search)
}
