// Package lint checks handbook content for editorial and structural
// problems: broken widget fences, inconsistent chmod examples, invalid
// zone file listings, dead internal links.
//
// Rules operate on parsed pages plus their render analysis, report
// findings with file/line positions, and never mutate content. Errors are
// meant to fail CI; warnings are advisory unless promoted.
package lint

import (
	"sort"

	"github.com/robworks/opsdocs/internal/content"
	"github.com/robworks/opsdocs/internal/render"
)

// Severity classifies a finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Finding is one problem located in the content tree.
type Finding struct {
	Rule     string   `json:"rule"`
	Severity Severity `json:"severity"`
	File     string   `json:"file"`
	Line     int      `json:"line"`
	Message  string   `json:"message"`
}

// PageInput pairs a page with its render analysis.
type PageInput struct {
	Page     *content.Page
	Fragment *render.Fragment
}

// Target is the whole content tree as seen by rules; cross-page rules use
// the route and anchor indexes.
type Target struct {
	Pages   []PageInput
	Routes  map[string]bool
	Anchors map[string]map[string]bool
}

// NewTarget indexes pages for a lint run.
func NewTarget(pages []PageInput) *Target {
	t := &Target{
		Pages:   pages,
		Routes:  make(map[string]bool, len(pages)),
		Anchors: make(map[string]map[string]bool, len(pages)),
	}
	for _, in := range pages {
		t.Routes[in.Page.Route] = true
		anchors := make(map[string]bool, len(in.Fragment.Headings))
		for _, h := range in.Fragment.Headings {
			anchors[h.ID] = true
		}
		t.Anchors[in.Page.Route] = anchors
	}
	return t
}

// Rule checks one page at a time.
type Rule interface {
	Name() string
	Check(t *Target, in PageInput, report func(Finding))
}

// Report is the outcome of a lint run.
type Report struct {
	Findings []Finding `json:"findings"`
	Errors   int       `json:"errors"`
	Warnings int       `json:"warnings"`
}

// Failed reports whether the run should fail the build.
func (r *Report) Failed(warningsAsErrors bool) bool {
	if r.Errors > 0 {
		return true
	}
	return warningsAsErrors && r.Warnings > 0
}

// Runner executes a rule set over a target.
type Runner struct {
	rules []Rule
}

// DefaultRules returns every built-in rule in execution order.
func DefaultRules() []Rule {
	return []Rule{
		widgetYAMLRule{},
		widgetSchemaRule{},
		quizAnswersRule{},
		exerciseShapeRule{},
		terminalStepsRule{},
		walkthroughLinesRule{},
		builderOptionsRule{},
		chmodConsistencyRule{},
		zonefileRule{},
		internalLinksRule{},
		uniqueSlugsRule{},
	}
}

// NewRunner builds a runner with the default rules minus the disabled
// ones (matched by name).
func NewRunner(disabled []string) *Runner {
	off := make(map[string]bool, len(disabled))
	for _, name := range disabled {
		off[name] = true
	}
	var rules []Rule
	for _, rule := range DefaultRules() {
		if !off[rule.Name()] {
			rules = append(rules, rule)
		}
	}
	return &Runner{rules: rules}
}

// RuleNames lists the active rule names in execution order.
func (r *Runner) RuleNames() []string {
	names := make([]string, len(r.rules))
	for i, rule := range r.rules {
		names[i] = rule.Name()
	}
	return names
}

// Run checks every page with every rule and aggregates the findings,
// ordered by file, line, then rule name.
func (r *Runner) Run(t *Target) *Report {
	rep := &Report{}
	report := func(f Finding) {
		rep.Findings = append(rep.Findings, f)
		switch f.Severity {
		case SeverityError:
			rep.Errors++
		case SeverityWarning:
			rep.Warnings++
		}
	}

	for _, in := range t.Pages {
		for _, rule := range r.rules {
			rule.Check(t, in, report)
		}
	}

	sort.SliceStable(rep.Findings, func(i, j int) bool {
		a, b := rep.Findings[i], rep.Findings[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Rule < b.Rule
	})
	return rep
}
