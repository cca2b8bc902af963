package content

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/robworks/opsdocs/internal/helpers"
)

// RouteForPath derives the canonical route for a markdown file path
// relative to the content root. The function is pure and independent of
// the OS path separator.
func RouteForPath(rel string) string {
	rel = filepath.ToSlash(rel)
	rel = strings.TrimSuffix(path.Clean(rel), ".md")

	parts := strings.Split(rel, "/")
	segs := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "." || part == "" {
			continue
		}
		if s := helpers.Slugify(part); s != "" {
			segs = append(segs, s)
		}
	}
	// An index file names its directory.
	if n := len(segs); n > 0 && segs[n-1] == "index" {
		segs = segs[:n-1]
	}
	if len(segs) == 0 {
		return "/"
	}
	return "/" + strings.Join(segs, "/") + "/"
}

// SectionOf returns the first segment of a route ("" for root pages).
func SectionOf(route string) string {
	trimmed := strings.Trim(route, "/")
	if trimmed == "" {
		return ""
	}
	if i := strings.IndexByte(trimmed, '/'); i >= 0 {
		return trimmed[:i]
	}
	return trimmed
}

// fallbackTitle turns the last route segment into a display title:
// "/dns/zone-transfers/" becomes "Zone Transfers".
func fallbackTitle(route string) string {
	trimmed := strings.Trim(route, "/")
	if trimmed == "" {
		return "Home"
	}
	seg := trimmed
	if i := strings.LastIndexByte(trimmed, '/'); i >= 0 {
		seg = trimmed[i+1:]
	}
	words := strings.Split(seg, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
