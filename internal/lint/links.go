package lint

import (
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/robworks/opsdocs/internal/content"
	"github.com/robworks/opsdocs/internal/helpers"
)

// internalLinksRule resolves relative markdown links against the content
// tree. A link to a page that does not exist is an error; a link to an
// existing page with an unknown #anchor is a warning (anchors shift when
// headings are reworded).
type internalLinksRule struct{}

func (internalLinksRule) Name() string { return "internal-links" }

var mdLinkRE = regexp.MustCompile(`(!?)\[[^\]]*\]\(([^()\s]+)(?:\s+"[^"]*")?\)`)

// assetExts are link targets served as static files, not pages.
var assetExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".svg": true,
	".webp": true, ".ico": true, ".css": true, ".js": true, ".json": true,
	".txt": true, ".pdf": true, ".zip": true, ".tar": true, ".gz": true,
}

func (internalLinksRule) Check(t *Target, in PageInput, report func(Finding)) {
	src := scanSource(in.Page)
	for _, pl := range src.prose {
		for _, m := range mdLinkRE.FindAllStringSubmatch(pl.Text, -1) {
			if m[1] == "!" {
				continue
			}
			checkLink(t, in.Page, pl.Line, m[2], report)
		}
	}
}

func checkLink(t *Target, page *content.Page, line int, target string, report func(Finding)) {
	if strings.Contains(target, "://") ||
		strings.HasPrefix(target, "mailto:") ||
		strings.HasPrefix(target, "tel:") {
		return
	}

	pathPart, frag, _ := strings.Cut(target, "#")

	// Same-page anchor.
	if pathPart == "" {
		if frag != "" && !t.Anchors[page.Route][frag] {
			report(Finding{
				Rule:     "internal-links",
				Severity: SeverityWarning,
				File:     page.SourcePath,
				Line:     line,
				Message:  fmt.Sprintf("anchor #%s not found on this page", frag),
			})
		}
		return
	}

	if assetExts[strings.ToLower(path.Ext(pathPart))] {
		return
	}

	route := resolveLinkRoute(page, pathPart)
	if !t.Routes[route] {
		report(Finding{
			Rule:     "internal-links",
			Severity: SeverityError,
			File:     page.SourcePath,
			Line:     line,
			Message:  fmt.Sprintf("link %q does not resolve to a page (route %s)", target, route),
		})
		return
	}
	if frag != "" && !t.Anchors[route][frag] {
		report(Finding{
			Rule:     "internal-links",
			Severity: SeverityWarning,
			File:     page.SourcePath,
			Line:     line,
			Message:  fmt.Sprintf("anchor #%s not found on %s", frag, route),
		})
	}
}

// resolveLinkRoute maps a link target to a canonical route. ".md" targets
// resolve relative to the linking file, route-style targets relative to
// the page route; "/..." is site-absolute either way.
func resolveLinkRoute(page *content.Page, target string) string {
	low := strings.ToLower(target)

	if strings.HasSuffix(low, ".md") {
		var file string
		if strings.HasPrefix(target, "/") {
			file = strings.TrimPrefix(target, "/")
		} else {
			file = path.Join(path.Dir(page.SourcePath), target)
		}
		return content.RouteForPath(file)
	}

	// Rendered-output style targets: "../tools/" or "/tools/index.html".
	target = strings.TrimSuffix(target, "index.html")
	if strings.HasSuffix(strings.ToLower(target), ".html") {
		target = target[:len(target)-len(".html")] + "/"
	}

	var route string
	if strings.HasPrefix(target, "/") {
		route = path.Clean(target)
	} else {
		route = path.Clean(path.Join(page.Route, target))
	}
	if route != "/" {
		route += "/"
	}
	return route
}

// uniqueSlugsRule warns when two headings on one page slugify to the same
// anchor. The renderer de-duplicates with numeric suffixes, so links to
// the rewritten anchor keep working, but the suffix changes whenever a
// heading is added above it.
type uniqueSlugsRule struct{}

func (uniqueSlugsRule) Name() string { return "unique-slugs" }

func (uniqueSlugsRule) Check(_ *Target, in PageInput, report func(Finding)) {
	type firstUse struct {
		line int
		text string
	}
	seen := make(map[string]firstUse, len(in.Fragment.Headings))
	for _, h := range in.Fragment.Headings {
		base := helpers.Slugify(h.Text)
		if base == "" {
			base = "section"
		}
		prev, dup := seen[base]
		if !dup {
			seen[base] = firstUse{line: h.Line, text: h.Text}
			continue
		}
		report(Finding{
			Rule:     "unique-slugs",
			Severity: SeverityWarning,
			File:     in.Page.SourcePath,
			Line:     h.Line,
			Message: fmt.Sprintf("heading %q duplicates the anchor of %q (line %d); this one was rewritten to #%s",
				h.Text, prev.text, prev.line, h.ID),
		})
	}
}
