package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ResolveConfigPath determines the config file path from the given flag
// value and the OPSDOCS_CONFIG environment variable. The flag wins; an
// empty result means "run on built-in defaults".
func ResolveConfigPath(flagValue string) string {
	if v := strings.TrimSpace(flagValue); v != "" {
		return v
	}
	if v := strings.TrimSpace(os.Getenv("OPSDOCS_CONFIG")); v != "" {
		return v
	}
	return ""
}

// Load reads the YAML config at path (defaults only when path is empty),
// applies environment overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv layers OPSDOCS_* environment variables over the loaded config.
func applyEnv(cfg *Config) {
	if v := os.Getenv("OPSDOCS_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("OPSDOCS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("OPSDOCS_WORKERS"); v != "" {
		cfg.Server.WorkersRaw = v
	}
	if v := os.Getenv("OPSDOCS_WATCH"); v != "" {
		cfg.Server.Watch = envBool(v, cfg.Server.Watch)
	}
	if v := os.Getenv("OPSDOCS_SITE_NAME"); v != "" {
		cfg.Site.Name = v
	}
	if v := os.Getenv("OPSDOCS_CONTENT_DIR"); v != "" {
		cfg.Site.ContentDir = v
	}
	if v := os.Getenv("OPSDOCS_OUTPUT_DIR"); v != "" {
		cfg.Site.OutputDir = v
	}
	if v := os.Getenv("OPSDOCS_STORE_PATH"); v != "" {
		cfg.Store.Path = v
	}
	if v := os.Getenv("OPSDOCS_API_ENABLED"); v != "" {
		cfg.API.Enabled = envBool(v, cfg.API.Enabled)
	}
	if v := os.Getenv("OPSDOCS_API_KEY"); v != "" {
		cfg.API.Key = v
	}
	if v := os.Getenv("OPSDOCS_PRIMARY_URL"); v != "" {
		cfg.Mirror.PrimaryURL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// envBool interprets common truthy/falsy spellings, falling back to def.
func envBool(raw string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}
