package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/robworks/opsdocs/internal/config"
	"github.com/robworks/opsdocs/internal/logging"
	"github.com/robworks/opsdocs/internal/server"
)

func main() {
	var (
		configPath = flag.String("config", "", "Path to YAML configuration file (or set OPSDOCS_CONFIG)")
		host       = flag.String("host", "", "Override bind host")
		port       = flag.Int("port", 0, "Override bind port")
		contentDir = flag.String("content", "", "Override content directory")
		outputDir  = flag.String("out", "", "Override output directory")
		workers    = flag.Int("workers", -1, "Fix the render worker count (-1 means default/auto)")
		noWatch    = flag.Bool("no-watch", false, "Disable the content file watcher")
		jsonLogs   = flag.Bool("json-logs", false, "Enable JSON structured logging")
		debug      = flag.Bool("debug", false, "Enable debug logging")
	)
	flag.Parse()

	cfg, err := config.Load(config.ResolveConfigPath(*configPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if *host != "" {
		cfg.Server.Host = *host
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *contentDir != "" {
		cfg.Site.ContentDir = *contentDir
	}
	if *outputDir != "" {
		cfg.Site.OutputDir = *outputDir
	}
	if *workers >= 0 {
		cfg.Server.Workers = config.WorkerSetting{Mode: config.WorkersFixed, Value: *workers}
	}
	if *noWatch {
		cfg.Server.Watch = false
	}
	if *jsonLogs {
		cfg.Logging.Structured = true
		cfg.Logging.StructuredFormat = "json"
	}
	if *debug {
		cfg.Logging.Level = "DEBUG"
	}

	logger := logging.Configure(cfg.Logging)
	logger.Info("opsdocs starting",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"content_dir", cfg.Site.ContentDir,
		"workers", cfg.Server.Workers.String(),
		"watch", cfg.Server.Watch,
		"mirror_mode", string(cfg.Mirror.Mode),
	)

	runner := server.NewRunner(logger)
	if err := runner.Run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "server exited with error: %v\n", err)
		os.Exit(1)
	}
}
