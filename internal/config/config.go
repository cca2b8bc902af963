// Package config provides configuration types, loading and validation for
// opsdocs.
//
// Configuration comes from a YAML file (see Load and ResolveConfigPath),
// with OPSDOCS_* environment variables layered on top for container use.
// Validate normalizes the result and fills defaults, so the rest of the
// application never sees a zero-valued section.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Site: SiteConfig{
			Name:           "Ops Handbook",
			ContentDir:     "docs",
			OutputDir:      "public",
			HighlightStyle: "github",
		},
		Server: ServerConfig{
			Host:       "0.0.0.0",
			Port:       8080,
			WorkersRaw: "auto",
			Watch:      true,
		},
		API: APIConfig{
			Enabled:           true,
			AttemptsPerMinute: 60,
		},
		Store: StoreConfig{
			Path: "opsdocs.db",
		},
		Search: SearchConfig{
			Enabled:    true,
			MaxResults: 20,
		},
		Mirror: MirrorConfig{
			Mode:         MirrorStandalone,
			SyncInterval: "60s",
			SyncTimeout:  "10s",
		},
		Logging: LoggingConfig{
			Level:            "INFO",
			StructuredFormat: "json",
		},
	}
}

// Validate validates and normalizes the configuration.
func (cfg *Config) Validate() error {
	// Validate port
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return errors.New("server.port must be 1..65535")
	}

	// Normalize site
	if cfg.Site.Name == "" {
		cfg.Site.Name = "Ops Handbook"
	}
	if cfg.Site.ContentDir == "" {
		cfg.Site.ContentDir = "docs"
	}
	if cfg.Site.OutputDir == "" {
		cfg.Site.OutputDir = "public"
	}
	if cfg.Site.OutputDir == cfg.Site.ContentDir {
		return errors.New("site.output_dir must differ from site.content_dir")
	}
	if cfg.Site.HighlightStyle == "" {
		cfg.Site.HighlightStyle = "github"
	}

	// Parse workers
	workers, err := parseWorkers(cfg.Server.WorkersRaw)
	if err != nil {
		return err
	}
	cfg.Server.Workers = workers

	// Normalize API
	if cfg.API.AttemptsPerMinute <= 0 {
		cfg.API.AttemptsPerMinute = 60
	}

	// Normalize store
	if cfg.Store.Path == "" {
		cfg.Store.Path = "opsdocs.db"
	}

	// Normalize search
	if cfg.Search.MaxResults <= 0 {
		cfg.Search.MaxResults = 20
	}
	if cfg.Search.MaxResults > 100 {
		cfg.Search.MaxResults = 100
	}

	// Normalize lint rule names
	if len(cfg.Lint.DisabledRules) > 0 {
		rules := cfg.Lint.DisabledRules[:0]
		for _, r := range cfg.Lint.DisabledRules {
			r = strings.ToLower(strings.TrimSpace(r))
			if r != "" {
				rules = append(rules, r)
			}
		}
		cfg.Lint.DisabledRules = rules
	}

	// Normalize mirror
	cfg.Mirror.Mode = MirrorMode(strings.ToLower(strings.TrimSpace(string(cfg.Mirror.Mode))))
	switch cfg.Mirror.Mode {
	case "":
		cfg.Mirror.Mode = MirrorStandalone
	case MirrorStandalone, MirrorPrimary, MirrorSecondary:
	default:
		return fmt.Errorf("mirror.mode must be standalone, primary or secondary (got %q)", cfg.Mirror.Mode)
	}
	if cfg.Mirror.SyncInterval == "" {
		cfg.Mirror.SyncInterval = "60s"
	}
	if cfg.Mirror.SyncTimeout == "" {
		cfg.Mirror.SyncTimeout = "10s"
	}
	if _, err := time.ParseDuration(cfg.Mirror.SyncInterval); err != nil {
		return fmt.Errorf("mirror.sync_interval: %w", err)
	}
	if _, err := time.ParseDuration(cfg.Mirror.SyncTimeout); err != nil {
		return fmt.Errorf("mirror.sync_timeout: %w", err)
	}
	if cfg.Mirror.Mode == MirrorSecondary && cfg.Mirror.PrimaryURL == "" {
		return errors.New("mirror.primary_url is required in secondary mode")
	}

	// Normalize logging
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "INFO"
	}
	cfg.Logging.Level = strings.ToUpper(cfg.Logging.Level)
	if cfg.Logging.StructuredFormat == "" {
		cfg.Logging.StructuredFormat = "json"
	}
	if cfg.Logging.ExtraFields == nil {
		cfg.Logging.ExtraFields = map[string]string{}
	}

	return nil
}

// parseWorkers converts the workers string to WorkerSetting.
func parseWorkers(raw string) (WorkerSetting, error) {
	raw = strings.TrimSpace(strings.ToLower(raw))
	if raw == "" || raw == "auto" {
		return WorkerSetting{Mode: WorkersAuto}, nil
	}
	if n, err := strconv.Atoi(raw); err == nil && n > 0 {
		return WorkerSetting{Mode: WorkersFixed, Value: n}, nil
	}
	return WorkerSetting{}, fmt.Errorf("server.workers must be \"auto\" or a positive integer (got %q)", raw)
}
