package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/robworks/opsdocs/internal/content"
	"github.com/robworks/opsdocs/internal/render"
)

func main() {
	var (
		preview = flag.Bool("render", false, "Render the page to ANSI instead of listing its structure")
		width   = flag.Int("width", 100, "Word-wrap width for -render")
	)
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: print-page [flags] path/to/page.md\n")
		os.Exit(2)
	}
	path := flag.Arg(0)

	page, err := content.LoadFile(path, filepath.Dir(path))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load page: %v\n", err)
		os.Exit(1)
	}

	if *preview {
		out, err := render.Preview(page, *width)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to render page: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(out)
		return
	}

	fragment, err := render.New(render.Options{}).RenderFragment(page)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to render page: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("SOURCE: %s\n", page.SourcePath)
	fmt.Printf("ROUTE: %s\n", page.Route)
	fmt.Printf("TITLE: %s\n", page.Title())
	if page.Meta.Description != "" {
		fmt.Printf("DESCRIPTION: %s\n", page.Meta.Description)
	}
	if len(page.Meta.Tags) > 0 {
		fmt.Printf("TAGS: %s\n", strings.Join(page.Meta.Tags, ", "))
	}

	fmt.Println("HEADINGS:")
	for _, hd := range fragment.Headings {
		indent := strings.Repeat("  ", hd.Level)
		fmt.Printf("%s%s (line %d, #%s)\n", indent, hd.Text, hd.Line, hd.ID)
	}

	fmt.Println("WIDGETS:")
	for _, w := range fragment.Widgets {
		fmt.Printf("  %s %s line %d", w.Ref, w.Kind, w.Line)
		if w.Title != "" {
			fmt.Printf(" %q", w.Title)
		}
		fmt.Println()
		if w.DecodeErr != nil {
			fmt.Printf("    INVALID: %v\n", w.DecodeErr)
		}
		for _, p := range w.Problems {
			fmt.Printf("    PROBLEM: %s\n", p)
		}
	}
}
