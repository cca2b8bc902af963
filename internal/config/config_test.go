package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWorkerSettingString(t *testing.T) {
	tests := []struct {
		name string
		ws   WorkerSetting
		want string
	}{
		{"auto mode", WorkerSetting{Mode: WorkersAuto}, "auto"},
		{"fixed mode 4", WorkerSetting{Mode: WorkersFixed, Value: 4}, "4"},
		{"fixed mode 0", WorkerSetting{Mode: WorkersFixed, Value: 0}, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.ws.String()
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveConfigPath(t *testing.T) {
	// Save and restore env
	orig := os.Getenv("OPSDOCS_CONFIG")
	defer os.Setenv("OPSDOCS_CONFIG", orig)

	tests := []struct {
		name     string
		flag     string
		envValue string
		want     string
	}{
		{"flag takes precedence", "/path/from/flag", "/path/from/env", "/path/from/flag"},
		{"env when no flag", "", "/path/from/env", "/path/from/env"},
		{"empty when neither", "", "", ""},
		{"whitespace flag", "  ", "/path/from/env", "/path/from/env"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Setenv("OPSDOCS_CONFIG", tt.envValue)
			got := ResolveConfigPath(tt.flag)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoadDefault(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("expected host 0.0.0.0, got %s", cfg.Server.Host)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Server.Workers.Mode != WorkersAuto {
		t.Errorf("expected workers auto mode")
	}
	if !cfg.Server.Watch {
		t.Error("expected Watch true")
	}
	if cfg.Site.ContentDir != "docs" {
		t.Errorf("expected content dir docs, got %s", cfg.Site.ContentDir)
	}
	if cfg.Site.OutputDir != "public" {
		t.Errorf("expected output dir public, got %s", cfg.Site.OutputDir)
	}
	if !cfg.Search.Enabled || cfg.Search.MaxResults != 20 {
		t.Errorf("unexpected search defaults: %+v", cfg.Search)
	}
	if cfg.Mirror.Mode != MirrorStandalone {
		t.Errorf("expected standalone mirror mode, got %s", cfg.Mirror.Mode)
	}
}

func TestLoadFromFile(t *testing.T) {
	content := `
site:
  name: "DNS Handbook"
  content_dir: "test-docs"
  output_dir: "test-public"
  include_drafts: true

server:
  host: "127.0.0.1"
  port: 5380
  workers: "2"
  watch: false

search:
  enabled: true
  max_results: 5

logging:
  level: "DEBUG"
  structured: true
  structured_format: "keyvalue"
`
	dir := t.TempDir()
	path := filepath.Join(dir, "test-config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Site.Name != "DNS Handbook" {
		t.Errorf("expected site name DNS Handbook, got %s", cfg.Site.Name)
	}
	if cfg.Site.ContentDir != "test-docs" {
		t.Errorf("expected content dir test-docs, got %s", cfg.Site.ContentDir)
	}
	if !cfg.Site.IncludeDrafts {
		t.Error("expected IncludeDrafts true")
	}
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("expected host 127.0.0.1, got %s", cfg.Server.Host)
	}
	if cfg.Server.Port != 5380 {
		t.Errorf("expected port 5380, got %d", cfg.Server.Port)
	}
	if cfg.Server.Workers.Mode != WorkersFixed || cfg.Server.Workers.Value != 2 {
		t.Errorf("expected fixed workers 2, got %v", cfg.Server.Workers)
	}
	if cfg.Server.Watch {
		t.Error("expected Watch false")
	}
	if cfg.Search.MaxResults != 5 {
		t.Errorf("expected max results 5, got %d", cfg.Search.MaxResults)
	}
	if cfg.Logging.Level != "DEBUG" {
		t.Errorf("expected log level DEBUG, got %s", cfg.Logging.Level)
	}
	if !cfg.Logging.Structured {
		t.Error("expected structured logging enabled")
	}
	if cfg.Logging.StructuredFormat != "keyvalue" {
		t.Errorf("expected format keyvalue, got %s", cfg.Logging.StructuredFormat)
	}
}

func TestLoadInvalidPath(t *testing.T) {
	_, err := Load("/nonexistent/path/to/config.yaml")
	if err == nil {
		t.Error("expected error for nonexistent file")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	// Use truly invalid YAML syntax
	if err := os.WriteFile(path, []byte("server:\n  port: [invalid"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestNormalizeInvalidPort(t *testing.T) {
	content := `
server:
  port: 0
`
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if err == nil {
		t.Error("expected error for invalid port")
	}
}

func TestNormalizeInvalidWorkers(t *testing.T) {
	content := `
server:
  workers: "invalid"
`
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if err == nil {
		t.Error("expected error for invalid workers")
	}
}

func TestValidateOutputEqualsContent(t *testing.T) {
	content := `
site:
  content_dir: "docs"
  output_dir: "docs"
`
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if err == nil {
		t.Error("expected error when output_dir equals content_dir")
	}
}

func TestValidateMirror(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr bool
	}{
		{"secondary without primary", "mirror:\n  mode: secondary\n", true},
		{"secondary with primary", "mirror:\n  mode: secondary\n  primary_url: \"http://primary:8080\"\n", false},
		{"unknown mode", "mirror:\n  mode: tertiary\n", true},
		{"mode case normalized", "mirror:\n  mode: PRIMARY\n", false},
		{"bad sync interval", "mirror:\n  mode: primary\n  sync_interval: \"soon\"\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "test.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if (err != nil) != tt.wantErr {
				t.Errorf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	// Save and restore env
	envVars := []string{
		"OPSDOCS_HOST", "OPSDOCS_PORT", "OPSDOCS_WORKERS",
		"OPSDOCS_CONTENT_DIR", "OPSDOCS_OUTPUT_DIR", "OPSDOCS_SITE_NAME",
		"OPSDOCS_WATCH", "OPSDOCS_API_KEY", "LOG_LEVEL",
	}
	origValues := make(map[string]string)
	for _, k := range envVars {
		origValues[k] = os.Getenv(k)
	}
	defer func() {
		for k, v := range origValues {
			os.Setenv(k, v)
		}
	}()

	// Set overrides
	os.Setenv("OPSDOCS_HOST", "192.168.1.1")
	os.Setenv("OPSDOCS_PORT", "9090")
	os.Setenv("OPSDOCS_WORKERS", "8")
	os.Setenv("OPSDOCS_CONTENT_DIR", "/srv/docs")
	os.Setenv("OPSDOCS_OUTPUT_DIR", "/srv/public")
	os.Setenv("OPSDOCS_SITE_NAME", "Team Handbook")
	os.Setenv("OPSDOCS_WATCH", "no")
	os.Setenv("OPSDOCS_API_KEY", "sekrit")
	os.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Host != "192.168.1.1" {
		t.Errorf("expected host 192.168.1.1, got %s", cfg.Server.Host)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Server.Workers.Mode != WorkersFixed || cfg.Server.Workers.Value != 8 {
		t.Errorf("expected workers 8, got %v", cfg.Server.Workers)
	}
	if cfg.Site.ContentDir != "/srv/docs" {
		t.Errorf("expected content dir /srv/docs, got %s", cfg.Site.ContentDir)
	}
	if cfg.Site.OutputDir != "/srv/public" {
		t.Errorf("expected output dir /srv/public, got %s", cfg.Site.OutputDir)
	}
	if cfg.Site.Name != "Team Handbook" {
		t.Errorf("expected site name Team Handbook, got %s", cfg.Site.Name)
	}
	if cfg.Server.Watch {
		t.Error("expected Watch false")
	}
	if cfg.API.Key != "sekrit" {
		t.Errorf("expected api key from env, got %q", cfg.API.Key)
	}
	if cfg.Logging.Level != "DEBUG" {
		t.Errorf("expected log level DEBUG, got %s", cfg.Logging.Level)
	}
}

func TestEnvBool(t *testing.T) {
	tests := []struct {
		raw  string
		def  bool
		want bool
	}{
		{"1", false, true},
		{"true", false, true},
		{"yes", false, true},
		{"y", false, true},
		{"on", false, true},
		{"TRUE", false, true},
		{"0", true, false},
		{"false", true, false},
		{"no", true, false},
		{"n", true, false},
		{"off", true, false},
		{"FALSE", true, false},
		{"invalid", true, true},
		{"invalid", false, false},
		{"", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := envBool(tt.raw, tt.def)
			if got != tt.want {
				t.Errorf("envBool(%q, %v) = %v, want %v", tt.raw, tt.def, got, tt.want)
			}
		})
	}
}
