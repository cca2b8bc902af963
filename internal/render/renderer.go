// Package render turns markdown pages into HTML: a goldmark pipeline with
// GFM extensions, chroma syntax highlighting, heading anchors, and the
// interactive-fence transform that powers quizzes, terminals, command
// builders, exercises and code walkthroughs.
package render

import (
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	ghtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/robworks/opsdocs/internal/content"
	"github.com/robworks/opsdocs/internal/pool"
)

// Options configures a Renderer.
type Options struct {
	// HighlightStyle is the chroma style backing assets/chroma.css.
	HighlightStyle string
}

// Renderer converts pages to HTML fragments. Safe for concurrent use; the
// site builder shares one across its render workers.
type Renderer struct {
	md      goldmark.Markdown
	buffers *pool.BufferPool
}

// New builds the goldmark pipeline.
func New(opts Options) *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithASTTransformers(
				util.Prioritized(&widgetTransformer{}, 500),
				util.Prioritized(&headingTransformer{}, 600),
			),
		),
		goldmark.WithRendererOptions(
			// Handbook pages may embed raw HTML; content is trusted
			// repository material, not user input.
			ghtml.WithUnsafe(),
			renderer.WithNodeRenderers(
				util.Prioritized(&widgetRenderer{}, 200),
				util.Prioritized(newCodeRenderer(opts.HighlightStyle), 200),
			),
		),
	)
	return &Renderer{
		md:      md,
		buffers: pool.NewBuffers(8<<10, 1<<20),
	}
}

// Fragment is the rendered body of one page plus everything extracted
// along the way.
type Fragment struct {
	HTML     []byte
	Headings []Heading
	Widgets  []*WidgetInstance
	// Plain is the flattened text used for the search index.
	Plain string
}

// RenderFragment renders page.Body. Widget and heading line numbers are
// reported in file coordinates (front matter included).
func (r *Renderer) RenderFragment(page *content.Page) (*Fragment, error) {
	ctx := parser.NewContext()
	coll := newCollector()
	ctx.Set(collectorKey, coll)

	doc := r.md.Parser().Parse(text.NewReader(page.Body), parser.WithContext(ctx))

	buf := r.buffers.Get()
	defer r.buffers.Put(buf)
	if err := r.md.Renderer().Render(buf, page.Body, doc); err != nil {
		return nil, fmt.Errorf("render %s: %w", page.SourcePath, err)
	}

	for _, w := range coll.widgets {
		w.Line += page.BodyLine - 1
	}
	for i := range coll.headings {
		coll.headings[i].Line += page.BodyLine - 1
	}

	html := make([]byte, buf.Len())
	copy(html, buf.Bytes())

	return &Fragment{
		HTML:     html,
		Headings: coll.headings,
		Widgets:  coll.widgets,
		Plain:    plainText(doc, page.Body, coll.widgets),
	}, nil
}
