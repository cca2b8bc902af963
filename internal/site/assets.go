package site

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/robworks/opsdocs/internal/render"
)

//go:embed assets
var assetFS embed.FS

// writeAssets copies the embedded front-end assets into <out>/assets and
// generates chroma.css for the configured highlight style.
func (b *Builder) writeAssets() error {
	dir := filepath.Join(b.cfg.OutputDir, "assets")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create assets dir: %w", err)
	}

	entries, err := fs.ReadDir(assetFS, "assets")
	if err != nil {
		return fmt.Errorf("failed to read embedded assets: %w", err)
	}
	for _, entry := range entries {
		data, err := assetFS.ReadFile("assets/" + entry.Name())
		if err != nil {
			return fmt.Errorf("failed to read embedded asset %s: %w", entry.Name(), err)
		}
		if err := writeFileAtomic(filepath.Join(dir, entry.Name()), data); err != nil {
			return err
		}
	}

	css, err := render.HighlightCSS(b.cfg.HighlightStyle)
	if err != nil {
		return fmt.Errorf("failed to generate highlight styles: %w", err)
	}
	return writeFileAtomic(filepath.Join(dir, "chroma.css"), []byte(css))
}
