package render

import (
	"bytes"
	"html"
	"strconv"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/robworks/opsdocs/internal/widget"
)

// WidgetInstance is one interactive fence found in a page, in source
// order. Ref is "<kind>-<n>" with n counting per kind per page, so it is
// stable across rebuilds of unchanged content; the attempts API and the
// hydration script both key on it.
type WidgetInstance struct {
	Ref   string      `json:"ref"`
	Kind  widget.Kind `json:"kind"`
	Title string      `json:"title"`
	// Line is 1-based within the parsed source (the caller offsets it to
	// file coordinates when rendering a page body).
	Line int `json:"line"`
	// Widget is nil when the fence body failed to decode.
	Widget    *widget.Widget `json:"-"`
	DecodeErr error          `json:"-"`
	// Problems holds schema validation findings for decodable widgets.
	Problems []string `json:"problems,omitempty"`
	// Source is the raw YAML fence body; the linter re-decodes it in
	// strict mode to catch misspelled keys.
	Source []byte `json:"-"`
}

// widgetBlock is the AST node that replaces an interactive fence.
type widgetBlock struct {
	ast.BaseBlock
	inst *WidgetInstance
}

var kindWidgetBlock = ast.NewNodeKind("WidgetBlock")

func (n *widgetBlock) Kind() ast.NodeKind { return kindWidgetBlock }

func (n *widgetBlock) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Ref":  n.inst.Ref,
		"Kind": string(n.inst.Kind),
	}, nil)
}

// widgetTransformer rewrites fenced code blocks whose info string names an
// interactive kind into widgetBlock nodes.
type widgetTransformer struct{}

func (t *widgetTransformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	coll := collectorFrom(pc)
	source := reader.Source()

	var fences []*ast.FencedCodeBlock
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if fc, ok := n.(*ast.FencedCodeBlock); ok {
			if _, known := widget.KnownKind(string(fc.Language(source))); known {
				fences = append(fences, fc)
			}
		}
		return ast.WalkContinue, nil
	})

	for _, fc := range fences {
		kind, _ := widget.KnownKind(string(fc.Language(source)))

		var body bytes.Buffer
		lines := fc.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			body.Write(seg.Value(source))
		}

		inst := &WidgetInstance{
			Kind:   kind,
			Line:   lineOf(source, fc),
			Source: body.Bytes(),
		}
		coll.counters[kind]++
		inst.Ref = string(kind) + "-" + strconv.Itoa(coll.counters[kind])

		w, err := widget.Decode(kind, body.Bytes())
		if err != nil {
			inst.DecodeErr = err
			inst.Title = string(kind)
		} else {
			inst.Widget = w
			inst.Title = w.Title()
			inst.Problems = w.Validate()
		}
		coll.widgets = append(coll.widgets, inst)

		block := &widgetBlock{inst: inst}
		parent := fc.Parent()
		parent.ReplaceChild(parent, fc, block)
	}
}

// lineOf returns the 1-based source line of a fenced code block.
func lineOf(source []byte, fc *ast.FencedCodeBlock) int {
	offset := -1
	if fc.Info != nil {
		offset = fc.Info.Segment.Start
	} else if fc.Lines().Len() > 0 {
		offset = fc.Lines().At(0).Start
	}
	if offset < 0 || offset > len(source) {
		return 1
	}
	return 1 + bytes.Count(source[:offset], []byte("\n"))
}

// attrEscaper escapes the data-config payload for embedding in a
// double-quoted HTML attribute. The set is deliberately minimal (&, ', ")
// to keep the emitted attribute identical to what the documentation's
// front-end assets were built against.
var attrEscaper = strings.NewReplacer("&", "&amp;", "'", "&#39;", `"`, "&quot;")

// widgetRenderer emits the interactive div for widgetBlock nodes.
type widgetRenderer struct{}

func (r *widgetRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(kindWidgetBlock, r.render)
}

func (r *widgetRenderer) render(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	wb := node.(*widgetBlock)
	inst := wb.inst

	if inst.DecodeErr != nil {
		_, _ = w.WriteString(`<div class="admonition warning"><p>Invalid interactive component configuration (`)
		_, _ = w.WriteString(string(inst.Kind))
		_, _ = w.WriteString(")</p></div>\n")
		return ast.WalkContinue, nil
	}

	configJSON, err := inst.Widget.ConfigJSON()
	if err != nil {
		return ast.WalkStop, err
	}

	_, _ = w.WriteString(`<div class="interactive-`)
	_, _ = w.WriteString(string(inst.Kind))
	_, _ = w.WriteString(`" data-widget-ref="`)
	_, _ = w.WriteString(inst.Ref)
	_, _ = w.WriteString(`" data-config="`)
	_, _ = w.WriteString(attrEscaper.Replace(configJSON))
	_, _ = w.WriteString(`"><noscript><p><strong>`)
	_, _ = w.WriteString(html.EscapeString(inst.Title))
	_, _ = w.WriteString("</strong> (requires JavaScript)</p></noscript></div>\n")
	return ast.WalkContinue, nil
}
