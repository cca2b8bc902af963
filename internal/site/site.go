// Package site builds the static HTML tree from a directory of markdown
// pages and watches the tree for changes.
//
// Build renders every page through internal/render on a bounded worker
// pool, writes <out>/<route>/index.html atomically, copies the embedded
// front-end assets and emits the nav.json and search.json manifests. The
// in-memory Model it returns is what the API serves page details, widget
// grading and search indexing from.
package site

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/renameio/v2"

	"github.com/robworks/opsdocs/internal/config"
	"github.com/robworks/opsdocs/internal/content"
	"github.com/robworks/opsdocs/internal/pool"
	"github.com/robworks/opsdocs/internal/render"
)

// ErrBuildInProgress is returned when a rebuild is requested while another
// build of the same site is still running.
var ErrBuildInProgress = errors.New("a build is already in progress")

// Builder turns a content directory into a static site. It is safe to
// call Build repeatedly from one goroutine; serve mode rebuilds through
// the same Builder on every watcher event.
type Builder struct {
	cfg      config.SiteConfig
	workers  int
	renderer *render.Renderer
	buffers  *pool.BufferPool
	logger   *slog.Logger
}

// NewBuilder creates a Builder. workers bounds render parallelism; zero
// or negative means one worker per CPU.
func NewBuilder(cfg config.SiteConfig, workers int, logger *slog.Logger) *Builder {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{
		cfg:      cfg,
		workers:  workers,
		renderer: render.New(render.Options{HighlightStyle: cfg.HighlightStyle}),
		buffers:  pool.NewBuffers(32<<10, 4<<20),
		logger:   logger,
	}
}

// PageModel pairs a parsed page with its rendered fragment.
type PageModel struct {
	Page     *content.Page
	Fragment *render.Fragment
}

// Model is the in-memory view of the last build: every successfully
// rendered page plus the navigation tree and the content version.
type Model struct {
	Pages   []*PageModel // sorted by route
	ByRoute map[string]*PageModel
	Nav     *content.Node
	Version string
	BuiltAt time.Time
}

// Lookup finds a page by route. Missing slashes are tolerated, so
// "linux/grep" and "/linux/grep/" resolve to the same page.
func (m *Model) Lookup(route string) (*PageModel, bool) {
	pm, ok := m.ByRoute[normalizeRoute(route)]
	return pm, ok
}

// Widget finds a widget instance by page route and ref. The returned
// PageModel is non-nil whenever the page exists, so callers can tell a
// missing page from a missing widget.
func (m *Model) Widget(route, ref string) (*PageModel, *render.WidgetInstance, bool) {
	pm, ok := m.Lookup(route)
	if !ok {
		return nil, nil, false
	}
	for _, w := range pm.Fragment.Widgets {
		if w.Ref == ref {
			return pm, w, true
		}
	}
	return pm, nil, false
}

// WidgetsByKind counts the rendered widget instances per kind.
func (m *Model) WidgetsByKind() map[string]int {
	counts := make(map[string]int)
	for _, pm := range m.Pages {
		for _, w := range pm.Fragment.Widgets {
			counts[string(w.Kind)]++
		}
	}
	return counts
}

// PageError reports one page that could not be loaded or built. The rest
// of the build carries on without it.
type PageError struct {
	Path string `json:"path"`
	Err  error  `json:"-"`
}

func (e PageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// Result summarizes one build.
type Result struct {
	Model    *Model
	Errors   []PageError
	Duration time.Duration
}

// PagesBuilt returns the number of pages written.
func (r *Result) PagesBuilt() int {
	return len(r.Model.Pages)
}

// Build loads, renders and writes the whole site. Page-level failures
// (unparseable front matter, render errors, write errors) are collected
// in the result; only environment failures such as an unreadable content
// directory or an unwritable output directory abort the build.
func (b *Builder) Build(ctx context.Context) (*Result, error) {
	start := time.Now()

	pages, loadErrs := b.loadPages()
	nav := content.BuildTree(pages)
	version := ContentVersion(pages)
	links := orderedLinks(nav)

	if err := os.MkdirAll(b.cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}

	type buildResult struct {
		pm  *PageModel
		err *PageError
	}

	sem := make(chan struct{}, b.workers)
	results := make(chan buildResult, len(pages))
	var wg sync.WaitGroup

	for _, page := range pages {
		p := page
		wg.Go(func() {
			sem <- struct{}{}
			defer func() { <-sem }()

			if ctx.Err() != nil {
				return
			}

			fragment, err := b.renderer.RenderFragment(p)
			if err != nil {
				results <- buildResult{err: &PageError{Path: p.SourcePath, Err: err}}
				return
			}
			pm := &PageModel{Page: p, Fragment: fragment}
			if err := b.writePage(pm, nav, links); err != nil {
				results <- buildResult{err: &PageError{Path: p.SourcePath, Err: err}}
				return
			}
			results <- buildResult{pm: pm}
		})
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	model := &Model{
		ByRoute: make(map[string]*PageModel, len(pages)),
		Nav:     nav,
		Version: version,
		BuiltAt: start.UTC(),
	}
	errs := loadErrs
	for res := range results {
		if res.err != nil {
			b.logger.Warn("page failed", "path", res.err.Path, "error", res.err.Err)
			errs = append(errs, *res.err)
			continue
		}
		model.Pages = append(model.Pages, res.pm)
		model.ByRoute[res.pm.Page.Route] = res.pm
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.Slice(model.Pages, func(i, j int) bool {
		return model.Pages[i].Page.Route < model.Pages[j].Page.Route
	})
	sort.Slice(errs, func(i, j int) bool { return errs[i].Path < errs[j].Path })

	if err := b.writeAssets(); err != nil {
		return nil, err
	}
	if err := b.writeManifests(model); err != nil {
		return nil, err
	}

	result := &Result{Model: model, Errors: errs, Duration: time.Since(start)}
	b.logger.Info("site built",
		"pages", len(model.Pages),
		"errors", len(errs),
		"version", version,
		"workers", b.workers,
		"duration_ms", result.Duration.Milliseconds())
	return result, nil
}

// loadPages discovers and parses every page under the content directory.
// Unlike content.LoadDir it keeps going past bad pages and reports them
// instead, so one broken file can't take the whole site down.
func (b *Builder) loadPages() ([]*content.Page, []PageError) {
	files, err := content.DiscoverFiles(b.cfg.ContentDir)
	if err != nil {
		return nil, []PageError{{Path: b.cfg.ContentDir, Err: err}}
	}

	var (
		pages []*content.Page
		errs  []PageError
	)
	byRoute := make(map[string]string, len(files))
	for _, rel := range files {
		page, err := content.LoadFile(filepath.Join(b.cfg.ContentDir, filepath.FromSlash(rel)), b.cfg.ContentDir)
		if err != nil {
			errs = append(errs, PageError{Path: rel, Err: err})
			continue
		}
		if page.Meta.Draft && !b.cfg.IncludeDrafts {
			continue
		}
		if prev, dup := byRoute[page.Route]; dup {
			errs = append(errs, PageError{Path: rel, Err: fmt.Errorf("route %s already taken by %s", page.Route, prev)})
			continue
		}
		byRoute[page.Route] = rel
		pages = append(pages, page)
	}
	return pages, errs
}

// writePage renders the full document into a pooled buffer and publishes
// it at <out>/<route>/index.html.
func (b *Builder) writePage(pm *PageModel, nav *content.Node, links map[string][2]*render.PageLink) error {
	doc := &render.DocumentData{
		SiteName:    b.cfg.Name,
		Title:       pm.Page.Title(),
		Description: pm.Page.Meta.Description,
		Route:       pm.Page.Route,
		AssetPath:   assetPath(pm.Page.Route),
		Content:     template.HTML(pm.Fragment.HTML),
		TOC:         render.TOCFromHeadings(pm.Fragment.Headings),
		Nav:         nav,
	}
	if pair, ok := links[pm.Page.Route]; ok {
		doc.Prev, doc.Next = pair[0], pair[1]
	}

	buf := b.buffers.Get()
	defer b.buffers.Put(buf)
	if err := render.WriteDocument(buf, doc); err != nil {
		return fmt.Errorf("failed to render document: %w", err)
	}

	path := outputPath(b.cfg.OutputDir, pm.Page.Route)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create page dir: %w", err)
	}
	return writeFileAtomic(path, buf.Bytes())
}

// orderedLinks maps every route to its prev/next neighbours in
// navigation order.
func orderedLinks(nav *content.Node) map[string][2]*render.PageLink {
	ordered := nav.Ordered()
	links := make(map[string][2]*render.PageLink, len(ordered))
	for i, node := range ordered {
		var pair [2]*render.PageLink
		if i > 0 {
			pair[0] = &render.PageLink{Title: ordered[i-1].Title, Route: ordered[i-1].Route}
		}
		if i < len(ordered)-1 {
			pair[1] = &render.PageLink{Title: ordered[i+1].Title, Route: ordered[i+1].Route}
		}
		links[node.Route] = pair
	}
	return links
}

// writeFileAtomic publishes data at path with temp file + fsync + rename,
// so a crashed build never leaves a half-written file behind.
func writeFileAtomic(path string, data []byte) error {
	pf, err := renameio.NewPendingFile(path)
	if err != nil {
		return fmt.Errorf("failed to stage %s: %w", path, err)
	}
	defer func() { _ = pf.Cleanup() }()
	if _, err := pf.Write(data); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := pf.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// outputPath maps a route to its file under outDir; "/linux/grep/"
// becomes outDir/linux/grep/index.html.
func outputPath(outDir, route string) string {
	trimmed := strings.Trim(route, "/")
	if trimmed == "" {
		return filepath.Join(outDir, "index.html")
	}
	return filepath.Join(outDir, filepath.FromSlash(trimmed), "index.html")
}

// assetPath returns the relative path from a route's directory back up
// to the shared assets directory.
func assetPath(route string) string {
	trimmed := strings.Trim(route, "/")
	if trimmed == "" {
		return "assets"
	}
	depth := strings.Count(trimmed, "/") + 1
	return strings.Repeat("../", depth) + "assets"
}

func normalizeRoute(route string) string {
	if route == "" {
		return "/"
	}
	if !strings.HasPrefix(route, "/") {
		route = "/" + route
	}
	if !strings.HasSuffix(route, "/") {
		route += "/"
	}
	return route
}
