package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/robworks/opsdocs/internal/content"
	"github.com/robworks/opsdocs/internal/lint"
	"github.com/robworks/opsdocs/internal/render"
)

func main() {
	var (
		jsonOut  = flag.Bool("json", false, "Emit the report as JSON")
		strict   = flag.Bool("strict", false, "Treat warnings as errors")
		drafts   = flag.Bool("drafts", true, "Include pages marked draft: true")
		disabled = flag.String("disable", "", "Comma-separated rule names to skip")
		list     = flag.Bool("rules", false, "List the active rule names and exit")
	)
	flag.Parse()

	runner := lint.NewRunner(splitRules(*disabled))
	if *list {
		for _, name := range runner.RuleNames() {
			fmt.Println(name)
		}
		return
	}

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: checkdocs [flags] path/to/content\n")
		flag.PrintDefaults()
		os.Exit(2)
	}
	root := flag.Arg(0)

	files, err := content.DiscoverFiles(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to scan content: %v\n", err)
		os.Exit(1)
	}

	// Pages that fail to parse or render cannot be checked by the rules;
	// they surface as findings of their own.
	var broken []lint.Finding
	renderer := render.New(render.Options{})
	inputs := make([]lint.PageInput, 0, len(files))
	for _, rel := range files {
		page, err := content.LoadFile(filepath.Join(root, filepath.FromSlash(rel)), root)
		if err != nil {
			broken = append(broken, lint.Finding{
				Rule:     "build",
				Severity: lint.SeverityError,
				File:     rel,
				Message:  err.Error(),
			})
			continue
		}
		if page.Meta.Draft && !*drafts {
			continue
		}
		fragment, err := renderer.RenderFragment(page)
		if err != nil {
			broken = append(broken, lint.Finding{
				Rule:     "build",
				Severity: lint.SeverityError,
				File:     rel,
				Message:  err.Error(),
			})
			continue
		}
		inputs = append(inputs, lint.PageInput{Page: page, Fragment: fragment})
	}

	report := runner.Run(lint.NewTarget(inputs))
	if len(broken) > 0 {
		report.Findings = append(broken, report.Findings...)
		report.Errors += len(broken)
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			fmt.Fprintf(os.Stderr, "failed to encode report: %v\n", err)
			os.Exit(1)
		}
	} else {
		for _, f := range report.Findings {
			fmt.Printf("%s:%d: %s: %s [%s]\n", f.File, f.Line, f.Severity, f.Message, f.Rule)
		}
		fmt.Printf("%d error(s), %d warning(s) across %d page(s)\n",
			report.Errors, report.Warnings, len(inputs))
	}

	if report.Failed(*strict) {
		os.Exit(1)
	}
}

func splitRules(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
