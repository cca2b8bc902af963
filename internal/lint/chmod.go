package lint

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/robworks/opsdocs/internal/widget"
)

// chmodConsistencyRule cross-checks octal chmod invocations against
// symbolic permission masks shown nearby. "chmod 640" followed by
// "-rw-r--r--" is the classic copy-edit slip in permissions docs.
//
// Pairing is positional: inside one scope (a prose paragraph, a terminal
// step, or an exercise body) each chmod mode is compared against the next
// symbolic mask that follows it.
type chmodConsistencyRule struct{}

func (chmodConsistencyRule) Name() string { return "chmod-consistency" }

func (chmodConsistencyRule) Check(_ *Target, in PageInput, report func(Finding)) {
	fail := func(line int, m permMismatch) {
		report(Finding{
			Rule:     "chmod-consistency",
			Severity: SeverityError,
			File:     in.Page.SourcePath,
			Line:     line,
			Message: fmt.Sprintf("chmod %s produces %s but the text shows %s (%s)",
				m.mode, m.want, m.got, maskToMode(m.got)),
		})
	}

	src := scanSource(in.Page)
	for _, para := range src.paragraphs() {
		for _, m := range permMismatches(para.Text) {
			fail(para.Line+strings.Count(para.Text[:m.offset], "\n"), m)
		}
	}

	for _, w := range in.Fragment.Widgets {
		if w.Widget == nil {
			continue
		}
		switch cfg := w.Widget.Config.(type) {
		case *widget.Terminal:
			for _, step := range cfg.Steps {
				scope := step.Command + "\n" + step.Output + "\n" + step.Narration
				for _, m := range permMismatches(scope) {
					fail(w.Line, m)
				}
			}
		case *widget.Exercise:
			scope := cfg.Scenario + "\n" + strings.Join(cfg.Hints, "\n") + "\n" + cfg.Solution
			for _, m := range permMismatches(scope) {
				fail(w.Line, m)
			}
		}
	}
}

var (
	chmodModeRE = regexp.MustCompile(`\bchmod\s+(?:--?[A-Za-z][\w-]*\s+)*([0-7]{3,4})\b`)
	maskRunRE   = regexp.MustCompile(`[rwxsStTdlbcp-]{9,11}`)
)

type permToken struct {
	offset int
	mode   string // set for an octal chmod argument
	mask   string // set for a symbolic mask (normalized to 9 chars)
}

type permMismatch struct {
	offset int
	mode   string
	want   string
	got    string
}

// permMismatches pairs each octal chmod mode with the next symbolic mask
// in the text and returns the pairs that disagree. Unpaired tokens are
// ignored; a mode with no mask (or vice versa) is not an inconsistency.
func permMismatches(text string) []permMismatch {
	var tokens []permToken
	for _, m := range chmodModeRE.FindAllStringSubmatchIndex(text, -1) {
		tokens = append(tokens, permToken{offset: m[2], mode: text[m[2]:m[3]]})
	}
	for _, loc := range maskRunRE.FindAllStringIndex(text, -1) {
		if loc[0] > 0 && strings.IndexByte("rwxsStTdlbcp-", text[loc[0]-1]) >= 0 {
			continue
		}
		if loc[1] < len(text) && strings.IndexByte("rwxsStTdlbcp-", text[loc[1]]) >= 0 {
			continue
		}
		mask, ok := normalizeMask(text[loc[0]:loc[1]])
		if !ok {
			continue
		}
		tokens = append(tokens, permToken{offset: loc[0], mask: mask})
	}
	sort.Slice(tokens, func(i, j int) bool { return tokens[i].offset < tokens[j].offset })

	var out []permMismatch
	pendingMode := ""
	pendingOffset := 0
	for _, tok := range tokens {
		if tok.mode != "" {
			pendingMode = tok.mode
			pendingOffset = tok.offset
			continue
		}
		if pendingMode == "" {
			continue
		}
		want, ok := modeToMask(pendingMode)
		if ok && tok.mask != want {
			out = append(out, permMismatch{
				offset: pendingOffset,
				mode:   pendingMode,
				want:   want,
				got:    tok.mask,
			})
		}
		pendingMode = ""
	}
	return out
}

// normalizeMask validates a candidate symbolic mask and strips an
// optional leading file-type character (the "-d l b c p s" column of
// ls -l output). All-dash runs are rejected: nine dashes in prose are
// far more likely a horizontal rule than a 000 mode.
func normalizeMask(s string) (string, bool) {
	switch len(s) {
	case 9:
	case 10:
		switch s[0] {
		case '-', 'd', 'l', 'b', 'c', 'p', 's':
			s = s[1:]
		default:
			return "", false
		}
	default:
		return "", false
	}
	nonDash := false
	for i := 0; i < 9; i++ {
		c := s[i]
		var ok bool
		switch i % 3 {
		case 0:
			ok = c == 'r' || c == '-'
		case 1:
			ok = c == 'w' || c == '-'
		case 2:
			ok = c == 'x' || c == '-'
			if i == 2 || i == 5 {
				ok = ok || c == 's' || c == 'S'
			}
			if i == 8 {
				ok = ok || c == 't' || c == 'T'
			}
		}
		if !ok {
			return "", false
		}
		if c != '-' {
			nonDash = true
		}
	}
	if !nonDash {
		return "", false
	}
	return s, true
}

// modeToMask renders an octal mode as its 9-character symbolic form. A
// 4-digit mode maps setuid/setgid/sticky onto the execute columns using
// the s/S and t/T conventions.
func modeToMask(mode string) (string, bool) {
	special := 0
	perms := mode
	switch len(mode) {
	case 3:
	case 4:
		special = int(mode[0] - '0')
		perms = mode[1:]
	default:
		return "", false
	}
	if special < 0 || special > 7 {
		return "", false
	}
	var b [9]byte
	for i := 0; i < 3; i++ {
		d := int(perms[i] - '0')
		if d < 0 || d > 7 {
			return "", false
		}
		b[i*3] = '-'
		b[i*3+1] = '-'
		b[i*3+2] = '-'
		if d&4 != 0 {
			b[i*3] = 'r'
		}
		if d&2 != 0 {
			b[i*3+1] = 'w'
		}
		if d&1 != 0 {
			b[i*3+2] = 'x'
		}
	}
	if special&4 != 0 {
		if b[2] == 'x' {
			b[2] = 's'
		} else {
			b[2] = 'S'
		}
	}
	if special&2 != 0 {
		if b[5] == 'x' {
			b[5] = 's'
		} else {
			b[5] = 'S'
		}
	}
	if special&1 != 0 {
		if b[8] == 'x' {
			b[8] = 't'
		} else {
			b[8] = 'T'
		}
	}
	return string(b[:]), true
}

// maskToMode is the inverse of modeToMask, used to phrase findings.
func maskToMode(mask string) string {
	special := 0
	var digits [3]int
	for i := 0; i < 3; i++ {
		d := 0
		if mask[i*3] == 'r' {
			d |= 4
		}
		if mask[i*3+1] == 'w' {
			d |= 2
		}
		switch c := mask[i*3+2]; c {
		case 'x':
			d |= 1
		case 's', 't':
			d |= 1
			fallthrough
		case 'S', 'T':
			switch i {
			case 0:
				special |= 4
			case 1:
				special |= 2
			case 2:
				special |= 1
			}
		}
		digits[i] = d
	}
	if special != 0 {
		return fmt.Sprintf("%d%d%d%d", special, digits[0], digits[1], digits[2])
	}
	return fmt.Sprintf("%d%d%d", digits[0], digits[1], digits[2])
}
