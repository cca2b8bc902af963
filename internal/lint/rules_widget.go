package lint

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/robworks/opsdocs/internal/helpers"
	"github.com/robworks/opsdocs/internal/render"
	"github.com/robworks/opsdocs/internal/widget"
)

// widgetYAMLRule reports interactive fences whose body is not parseable
// YAML. These render as warning admonitions instead of widgets, so they
// are always author mistakes.
type widgetYAMLRule struct{}

func (widgetYAMLRule) Name() string { return "widget-yaml" }

func (widgetYAMLRule) Check(_ *Target, in PageInput, report func(Finding)) {
	for _, w := range in.Fragment.Widgets {
		if w.DecodeErr == nil {
			continue
		}
		report(Finding{
			Rule:     "widget-yaml",
			Severity: SeverityError,
			File:     in.Page.SourcePath,
			Line:     w.Line,
			// yaml.v3 errors can span several lines; findings stay
			// one-line for grep-able CLI output.
			Message: fmt.Sprintf("%s block is not valid YAML: %s", w.Kind, helpers.FirstLine(w.DecodeErr.Error())),
		})
	}
}

var unknownKeyRE = regexp.MustCompile(`line (\d+): field (\S+) not found in type`)

// widgetSchemaRule reports schema violations (missing required fields,
// bad enums) as errors and unrecognized keys as warnings. Unknown keys
// survive rendering but are silently dropped from the config payload,
// which usually means a typo.
type widgetSchemaRule struct{}

func (widgetSchemaRule) Name() string { return "widget-schema" }

func (widgetSchemaRule) Check(_ *Target, in PageInput, report func(Finding)) {
	for _, w := range in.Fragment.Widgets {
		if w.DecodeErr != nil {
			continue
		}
		for _, problem := range w.Problems {
			report(Finding{
				Rule:     "widget-schema",
				Severity: SeverityError,
				File:     in.Page.SourcePath,
				Line:     w.Line,
				Message:  fmt.Sprintf("%s: %s", w.Kind, problem),
			})
		}
		for _, f := range unknownKeys(w, in.Page.SourcePath) {
			report(f)
		}
	}
}

// unknownKeys re-decodes the fence body in strict mode and converts each
// unrecognized key into a warning positioned inside the fence.
func unknownKeys(w *render.WidgetInstance, file string) []Finding {
	if len(w.Source) == 0 {
		return nil
	}
	_, err := widget.DecodeStrict(w.Kind, w.Source)
	if err == nil {
		return nil
	}
	matches := unknownKeyRE.FindAllStringSubmatch(err.Error(), -1)
	if len(matches) == 0 {
		return nil
	}
	findings := make([]Finding, 0, len(matches))
	for _, m := range matches {
		line := w.Line
		if n := atoiSafe(m[1]); n > 0 {
			// YAML reports lines relative to the fence body, which
			// starts one line below the opening fence.
			line = w.Line + n
		}
		findings = append(findings, Finding{
			Rule:     "widget-schema",
			Severity: SeverityWarning,
			File:     file,
			Line:     line,
			Message:  fmt.Sprintf("%s: unknown key %q", w.Kind, strings.Trim(m[2], `"`)),
		})
	}
	sort.SliceStable(findings, func(i, j int) bool { return findings[i].Line < findings[j].Line })
	return findings
}

func atoiSafe(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
		if n > 1<<20 {
			return 0
		}
	}
	return n
}

// quizAnswersRule enforces quiz quality beyond the basic schema: at
// least two options, no duplicated option text, and a sane correct-answer
// count for the question type.
type quizAnswersRule struct{}

func (quizAnswersRule) Name() string { return "quiz-answers" }

func (quizAnswersRule) Check(_ *Target, in PageInput, report func(Finding)) {
	fail := func(w *render.WidgetInstance, msg string) {
		report(Finding{
			Rule:     "quiz-answers",
			Severity: SeverityError,
			File:     in.Page.SourcePath,
			Line:     w.Line,
			Message:  msg,
		})
	}
	for _, w := range in.Fragment.Widgets {
		if w.Widget == nil {
			continue
		}
		quiz, ok := w.Widget.Config.(*widget.Quiz)
		if !ok {
			continue
		}
		if len(quiz.Options) == 1 {
			fail(w, "quiz has a single option; a quiz needs at least 2")
		}
		seen := make(map[string]bool, len(quiz.Options))
		for i, opt := range quiz.Options {
			text := strings.TrimSpace(opt.Text)
			if text == "" {
				continue
			}
			key := strings.ToLower(text)
			if seen[key] {
				fail(w, fmt.Sprintf("quiz option %d duplicates an earlier option text %q", i+1, text))
				continue
			}
			seen[key] = true
		}
	}
}

// exerciseShapeRule requires exercises to end in a verifiable solution
// and flags placeholder hints left empty.
type exerciseShapeRule struct{}

func (exerciseShapeRule) Name() string { return "exercise-shape" }

func (exerciseShapeRule) Check(_ *Target, in PageInput, report func(Finding)) {
	for _, w := range in.Fragment.Widgets {
		if w.Widget == nil {
			continue
		}
		ex, ok := w.Widget.Config.(*widget.Exercise)
		if !ok {
			continue
		}
		if strings.TrimSpace(ex.Solution) == "" {
			report(Finding{
				Rule:     "exercise-shape",
				Severity: SeverityError,
				File:     in.Page.SourcePath,
				Line:     w.Line,
				Message:  fmt.Sprintf("exercise %q has no solution", w.Title),
			})
		}
		for i, hint := range ex.Hints {
			if strings.TrimSpace(hint) != "" {
				continue
			}
			report(Finding{
				Rule:     "exercise-shape",
				Severity: SeverityWarning,
				File:     in.Page.SourcePath,
				Line:     w.Line,
				Message:  fmt.Sprintf("exercise %q hint %d is empty", w.Title, i+1),
			})
		}
	}
}

// terminalStepsRule flags terminal steps whose commands carry a shell
// prompt. The front end renders its own prompt, so "$ ls" would display
// as "$ $ ls".
type terminalStepsRule struct{}

func (terminalStepsRule) Name() string { return "terminal-steps" }

func (terminalStepsRule) Check(_ *Target, in PageInput, report func(Finding)) {
	for _, w := range in.Fragment.Widgets {
		if w.Widget == nil {
			continue
		}
		term, ok := w.Widget.Config.(*widget.Terminal)
		if !ok {
			continue
		}
		for i, step := range term.Steps {
			cmd := strings.TrimSpace(step.Command)
			if strings.HasPrefix(cmd, "$ ") || strings.HasPrefix(cmd, "# ") {
				report(Finding{
					Rule:     "terminal-steps",
					Severity: SeverityWarning,
					File:     in.Page.SourcePath,
					Line:     w.Line,
					Message:  fmt.Sprintf("terminal step %d command starts with a shell prompt (%q); drop it, the prompt is added at render time", i+1, cmd[:1]),
				})
			}
		}
	}
}

// walkthroughLinesRule checks that annotation ranges do not overlap.
// Range bounds against the snippet length are already schema problems;
// overlaps are legal per annotation but confuse the highlighter.
type walkthroughLinesRule struct{}

func (walkthroughLinesRule) Name() string { return "walkthrough-lines" }

func (walkthroughLinesRule) Check(_ *Target, in PageInput, report func(Finding)) {
	for _, w := range in.Fragment.Widgets {
		if w.Widget == nil {
			continue
		}
		cw, ok := w.Widget.Config.(*widget.CodeWalkthrough)
		if !ok {
			continue
		}
		type span struct{ from, to, index int }
		spans := make([]span, 0, len(cw.Annotations))
		for i, a := range cw.Annotations {
			if a.Line < 1 {
				continue
			}
			to := a.Line
			if a.EndLine > a.Line {
				to = a.EndLine
			}
			spans = append(spans, span{from: a.Line, to: to, index: i + 1})
		}
		sort.Slice(spans, func(i, j int) bool {
			if spans[i].from != spans[j].from {
				return spans[i].from < spans[j].from
			}
			return spans[i].to < spans[j].to
		})
		for i := 1; i < len(spans); i++ {
			prev, cur := spans[i-1], spans[i]
			if cur.from <= prev.to {
				report(Finding{
					Rule:     "walkthrough-lines",
					Severity: SeverityWarning,
					File:     in.Page.SourcePath,
					Line:     w.Line,
					Message:  fmt.Sprintf("annotations %d and %d overlap (lines %d-%d and %d-%d)", prev.index, cur.index, prev.from, prev.to, cur.from, cur.to),
				})
			}
		}
	}
}

// builderOptionsRule flags command-builder options that reuse a flag.
// Duplicate flags produce indistinguishable checkboxes in the UI.
type builderOptionsRule struct{}

func (builderOptionsRule) Name() string { return "builder-options" }

func (builderOptionsRule) Check(_ *Target, in PageInput, report func(Finding)) {
	for _, w := range in.Fragment.Widgets {
		if w.Widget == nil {
			continue
		}
		cb, ok := w.Widget.Config.(*widget.CommandBuilder)
		if !ok {
			continue
		}
		seen := make(map[string]bool, len(cb.Options))
		for i, opt := range cb.Options {
			flag := strings.TrimSpace(opt.Flag)
			if flag == "" {
				continue
			}
			if seen[flag] {
				report(Finding{
					Rule:     "builder-options",
					Severity: SeverityError,
					File:     in.Page.SourcePath,
					Line:     w.Line,
					Message:  fmt.Sprintf("command-builder option %d reuses flag %q", i+1, flag),
				})
				continue
			}
			seen[flag] = true
		}
	}
}
