package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/robworks/opsdocs/internal/config"
	"github.com/robworks/opsdocs/internal/lint"
	"github.com/robworks/opsdocs/internal/logging"
	"github.com/robworks/opsdocs/internal/site"
)

func main() {
	var (
		configPath = flag.String("config", "", "Path to YAML configuration file (or set OPSDOCS_CONFIG)")
		contentDir = flag.String("content", "", "Override content directory")
		outputDir  = flag.String("out", "", "Override output directory")
		workers    = flag.Int("workers", -1, "Fix the render worker count (-1 means default/auto)")
		drafts     = flag.Bool("drafts", false, "Include pages marked draft: true")
		runLint    = flag.Bool("lint", false, "Lint the content after building and fail on errors")
		jsonLogs   = flag.Bool("json-logs", false, "Enable JSON structured logging")
	)
	flag.Parse()

	cfg, err := config.Load(config.ResolveConfigPath(*configPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if *contentDir != "" {
		cfg.Site.ContentDir = *contentDir
	}
	if *outputDir != "" {
		cfg.Site.OutputDir = *outputDir
	}
	if *drafts {
		cfg.Site.IncludeDrafts = true
	}
	if *workers >= 0 {
		cfg.Server.Workers = config.WorkerSetting{Mode: config.WorkersFixed, Value: *workers}
	}
	if *jsonLogs {
		cfg.Logging.Structured = true
		cfg.Logging.StructuredFormat = "json"
	}

	logger := logging.Configure(cfg.Logging)

	poolSize := runtime.NumCPU()
	if cfg.Server.Workers.Mode == config.WorkersFixed && cfg.Server.Workers.Value > 0 {
		poolSize = cfg.Server.Workers.Value
	}

	builder := site.NewBuilder(cfg.Site, poolSize, logger)
	res, err := builder.Build(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "build failed: %v\n", err)
		os.Exit(1)
	}

	for _, pe := range res.Errors {
		fmt.Fprintf(os.Stderr, "page failed: %s: %v\n", pe.Path, pe.Err)
	}
	fmt.Printf("built %d pages to %s (version %s) in %s\n",
		res.PagesBuilt(), cfg.Site.OutputDir, res.Model.Version, res.Duration.Round(time.Millisecond))

	failed := len(res.Errors) > 0

	if *runLint {
		inputs := make([]lint.PageInput, 0, len(res.Model.Pages))
		for _, pm := range res.Model.Pages {
			inputs = append(inputs, lint.PageInput{Page: pm.Page, Fragment: pm.Fragment})
		}
		report := lint.NewRunner(cfg.Lint.DisabledRules).Run(lint.NewTarget(inputs))
		for _, f := range report.Findings {
			fmt.Fprintf(os.Stderr, "%s:%d: %s: %s [%s]\n", f.File, f.Line, f.Severity, f.Message, f.Rule)
		}
		if report.Errors > 0 || report.Warnings > 0 {
			fmt.Fprintf(os.Stderr, "lint: %d error(s), %d warning(s)\n", report.Errors, report.Warnings)
		}
		if report.Failed(cfg.Lint.WarningsAsErrors) {
			failed = true
		}
	}

	if failed {
		os.Exit(1)
	}
}
