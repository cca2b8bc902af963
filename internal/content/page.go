// Package content loads the markdown tree: file discovery, front matter,
// route derivation and the navigation tree.
//
// A page's route is derived from its path under the content root:
//
//	docs/linux/file-permissions.md -> /linux/file-permissions/
//	docs/linux/index.md            -> /linux/
//	docs/index.md                  -> /
//
// Routes are unique across the tree; colliding files are a load error.
package content

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/robworks/opsdocs/internal/helpers"
)

// Meta is the YAML front matter of a page.
type Meta struct {
	Title       string   `yaml:"title" json:"title,omitempty"`
	Description string   `yaml:"description" json:"description,omitempty"`
	Section     string   `yaml:"section" json:"section,omitempty"`
	Tags        []string `yaml:"tags" json:"tags,omitempty"`
	Weight      int      `yaml:"weight" json:"weight,omitempty"`
	Draft       bool     `yaml:"draft" json:"draft,omitempty"`
}

// Page is one markdown file of the content tree.
type Page struct {
	// SourcePath is relative to the content root, slash-separated.
	SourcePath string
	// Route is the canonical URL path, with leading and trailing slash.
	Route string
	// Section groups pages for navigation and progress (front matter
	// override, otherwise the first route segment).
	Section string
	Meta    Meta
	// Body is the markdown after front matter, newline-normalized.
	Body []byte
	// BodyLine is the 1-based line of the original file where Body starts.
	BodyLine int
	// Raw is the full newline-normalized source including front matter.
	Raw []byte
}

// Title resolves the page title: front matter, then the first top-level
// heading, then the last route segment with hyphens spaced and words
// capitalized.
func (p *Page) Title() string {
	if p.Meta.Title != "" {
		return p.Meta.Title
	}
	if t := firstHeading(p.Body); t != "" {
		return t
	}
	return fallbackTitle(p.Route)
}

// Parse builds a Page from raw markdown. sourcePath must be relative to
// the content root; it determines the route.
func Parse(src []byte, sourcePath string) (*Page, error) {
	raw := helpers.NormalizeNewlines(src)

	metaBytes, body, bodyLine, err := splitFrontMatter(raw)
	if err != nil {
		return nil, err
	}

	var meta Meta
	if len(metaBytes) > 0 {
		if err := yaml.Unmarshal(metaBytes, &meta); err != nil {
			return nil, fmt.Errorf("front matter: %w", err)
		}
	}

	route := RouteForPath(sourcePath)
	section := meta.Section
	if section == "" {
		section = SectionOf(route)
	}

	return &Page{
		SourcePath: filepath.ToSlash(sourcePath),
		Route:      route,
		Section:    section,
		Meta:       meta,
		Body:       body,
		BodyLine:   bodyLine,
		Raw:        raw,
	}, nil
}

// LoadFile reads and parses one markdown file. root anchors the relative
// source path used for route derivation.
func LoadFile(path, root string) (*Page, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return nil, err
	}
	page, err := Parse(src, rel)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.ToSlash(rel), err)
	}
	return page, nil
}

var fmDelimiter = []byte("---")

// splitFrontMatter separates an optional leading "---" YAML block from the
// body. bodyLine is the 1-based line where the body starts in the source.
func splitFrontMatter(src []byte) (meta, body []byte, bodyLine int, err error) {
	if !bytes.HasPrefix(src, fmDelimiter) {
		return nil, src, 1, nil
	}
	rest := src[len(fmDelimiter):]
	if len(rest) > 0 && rest[0] != '\n' {
		// "---foo" is a thematic break candidate, not front matter.
		return nil, src, 1, nil
	}

	if i := bytes.Index(rest, []byte("\n---\n")); i >= 0 {
		meta = rest[1 : i+1]
		body = rest[i+5:]
		consumed := len(src) - len(body)
		return meta, body, 1 + bytes.Count(src[:consumed], []byte("\n")), nil
	}
	if bytes.HasSuffix(rest, []byte("\n---")) {
		return rest[1 : len(rest)-3], nil, 1 + bytes.Count(src, []byte("\n")), nil
	}
	return nil, nil, 0, fmt.Errorf("unterminated front matter")
}

// firstHeading returns the text of the first "# " heading outside fenced
// code blocks.
func firstHeading(body []byte) string {
	inFence := false
	for _, line := range strings.Split(string(body), "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		if strings.HasPrefix(trimmed, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(trimmed, "# "))
		}
	}
	return ""
}
