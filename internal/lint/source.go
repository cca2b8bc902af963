package lint

import (
	"strings"

	"github.com/robworks/opsdocs/internal/content"
)

// fenceBlock is a fenced code block located in a page body, with file
// line coordinates (front matter included in the count).
type fenceBlock struct {
	Lang     string   // first word of the info string, lowercased
	Line     int      // file line of the opening fence
	BodyLine int      // file line of the first body line
	Body     []string // lines between the fences
}

// proseLine is a body line outside any fence.
type proseLine struct {
	Line int
	Text string
}

// paragraph groups consecutive prose lines.
type paragraph struct {
	Line int
	Text string
}

type pageSource struct {
	fences []fenceBlock
	prose  []proseLine
}

// scanSource splits a page body into fenced blocks and prose lines.
// It understands backtick and tilde fences of length three or more and
// tolerates list indentation before the marker.
func scanSource(p *content.Page) pageSource {
	var src pageSource
	lines := strings.Split(string(p.Body), "\n")

	var open *fenceBlock
	var marker byte
	var markerLen int

	for i, line := range lines {
		fileLine := p.BodyLine + i
		trimmed := strings.TrimLeft(line, " \t")

		if open != nil {
			if isFenceClose(trimmed, marker, markerLen) {
				src.fences = append(src.fences, *open)
				open = nil
				continue
			}
			open.Body = append(open.Body, line)
			continue
		}

		if ch, n, info, ok := parseFenceOpen(trimmed); ok {
			marker, markerLen = ch, n
			lang := info
			if sep := strings.IndexAny(lang, " \t"); sep >= 0 {
				lang = lang[:sep]
			}
			open = &fenceBlock{
				Lang:     strings.ToLower(lang),
				Line:     fileLine,
				BodyLine: fileLine + 1,
			}
			continue
		}

		src.prose = append(src.prose, proseLine{Line: fileLine, Text: line})
	}
	// An unterminated fence still counts; authors get findings for its
	// content instead of having it silently vanish.
	if open != nil {
		src.fences = append(src.fences, *open)
	}
	return src
}

func parseFenceOpen(s string) (marker byte, length int, info string, ok bool) {
	if len(s) < 3 {
		return 0, 0, "", false
	}
	ch := s[0]
	if ch != '`' && ch != '~' {
		return 0, 0, "", false
	}
	n := 0
	for n < len(s) && s[n] == ch {
		n++
	}
	if n < 3 {
		return 0, 0, "", false
	}
	info = strings.TrimSpace(s[n:])
	// Backtick info strings cannot contain backticks per CommonMark.
	if ch == '`' && strings.ContainsRune(info, '`') {
		return 0, 0, "", false
	}
	return ch, n, info, true
}

func isFenceClose(s string, marker byte, markerLen int) bool {
	n := 0
	for n < len(s) && s[n] == marker {
		n++
	}
	return n >= markerLen && strings.TrimSpace(s[n:]) == ""
}

// paragraphs groups prose lines separated by blank lines.
func (src pageSource) paragraphs() []paragraph {
	var out []paragraph
	var cur *paragraph
	lastLine := 0
	for _, pl := range src.prose {
		if strings.TrimSpace(pl.Text) == "" {
			cur = nil
			continue
		}
		if cur != nil && pl.Line == lastLine+1 {
			cur.Text += "\n" + pl.Text
		} else {
			out = append(out, paragraph{Line: pl.Line, Text: pl.Text})
			cur = &out[len(out)-1]
		}
		lastLine = pl.Line
	}
	return out
}
