package render

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/robworks/opsdocs/internal/helpers"
	"github.com/robworks/opsdocs/internal/widget"
)

// Heading is one entry of a page's table of contents, in source order.
// Line is a file coordinate (front matter included), used by lint rules.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
	ID    string `json:"id"`
	Line  int    `json:"-"`
}

// collector accumulates per-parse results; it travels through the parser
// context so the statically-configured transformers can report what they
// found in each page.
type collector struct {
	widgets  []*WidgetInstance
	headings []Heading
	counters map[widget.Kind]int
}

var collectorKey = parser.NewContextKey()

func newCollector() *collector {
	return &collector{counters: make(map[widget.Kind]int)}
}

// collectorFrom fetches the collector installed by RenderFragment; a
// throwaway is returned when the parser runs without one.
func collectorFrom(pc parser.Context) *collector {
	if v := pc.Get(collectorKey); v != nil {
		if c, ok := v.(*collector); ok {
			return c
		}
	}
	return newCollector()
}

// headingTransformer assigns slug anchors to headings and records the
// table of contents. Duplicate slugs get -2, -3, ... suffixes in source
// order.
type headingTransformer struct{}

func (t *headingTransformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	coll := collectorFrom(pc)
	source := reader.Source()
	seen := map[string]int{}

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}

		textContent := nodeText(h, source)
		slug := helpers.Slugify(textContent)
		if slug == "" {
			slug = "section"
		}
		seen[slug]++
		if c := seen[slug]; c > 1 {
			slug = slug + "-" + strconv.Itoa(c)
		}

		line := 1
		if lines := h.Lines(); lines.Len() > 0 {
			line += bytes.Count(source[:lines.At(0).Start], []byte{'\n'})
		}

		h.SetAttributeString("id", []byte(slug))
		coll.headings = append(coll.headings, Heading{Level: h.Level, Text: textContent, ID: slug, Line: line})
		return ast.WalkSkipChildren, nil
	})
}

// nodeText flattens the inline text of a node.
func nodeText(n ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := child.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(source))
		case *ast.String:
			b.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}

// plainText flattens a parsed document for the search index: prose, code
// listings and widget titles, joined with single spaces.
func plainText(doc ast.Node, source []byte, widgets []*WidgetInstance) string {
	var parts []string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := n.(type) {
		case *ast.Text:
			if s := string(t.Segment.Value(source)); strings.TrimSpace(s) != "" {
				parts = append(parts, strings.TrimSpace(s))
			}
		case *ast.String:
			if s := string(t.Value); strings.TrimSpace(s) != "" {
				parts = append(parts, strings.TrimSpace(s))
			}
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			lines := t.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				if s := strings.TrimSpace(string(seg.Value(source))); s != "" {
					parts = append(parts, s)
				}
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	for _, w := range widgets {
		if w.Title != "" {
			parts = append(parts, w.Title)
		}
	}
	return strings.Join(parts, " ")
}
