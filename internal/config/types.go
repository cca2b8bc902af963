package config

import "strconv"

// WorkersMode specifies how the render worker count is determined.
type WorkersMode int

const (
	// WorkersAuto sizes the render pool from the available CPUs.
	WorkersAuto WorkersMode = iota
	// WorkersFixed uses a specific worker count.
	WorkersFixed
)

// WorkerSetting represents the workers configuration.
type WorkerSetting struct {
	Mode  WorkersMode
	Value int
}

// String returns the string representation of the worker setting.
func (w WorkerSetting) String() string {
	if w.Mode == WorkersAuto {
		return "auto"
	}
	return strconv.Itoa(w.Value)
}

// MirrorMode selects how this node participates in content mirroring.
type MirrorMode string

const (
	// MirrorStandalone disables content mirroring.
	MirrorStandalone MirrorMode = "standalone"
	// MirrorPrimary serves the content export feed to secondaries.
	MirrorPrimary MirrorMode = "primary"
	// MirrorSecondary pulls content from a primary node.
	MirrorSecondary MirrorMode = "secondary"
)

// SiteConfig describes the content tree and the build output.
type SiteConfig struct {
	// Name is the site title used in rendered page shells.
	Name string `yaml:"name" json:"name"`
	// ContentDir is the root of the markdown tree.
	ContentDir string `yaml:"content_dir" json:"content_dir"`
	// OutputDir receives the built static site.
	OutputDir string `yaml:"output_dir" json:"output_dir"`
	// BaseURL prefixes absolute links in rendered pages (optional).
	BaseURL string `yaml:"base_url" json:"base_url,omitempty"`
	// IncludeDrafts renders pages marked draft: true in front matter.
	IncludeDrafts bool `yaml:"include_drafts" json:"include_drafts"`
	// HighlightStyle is the chroma style for ordinary code fences.
	HighlightStyle string `yaml:"highlight_style" json:"highlight_style"`
}

// ServerConfig contains preview/management server settings.
type ServerConfig struct {
	Host       string        `yaml:"host" json:"host"`
	Port       int           `yaml:"port" json:"port"`
	Workers    WorkerSetting `yaml:"-" json:"-"`
	WorkersRaw string        `yaml:"workers" json:"workers"`
	// Watch rebuilds the site when content files change.
	Watch bool `yaml:"watch" json:"watch"`
}

// APIConfig contains management API settings.
//
// Note: Key is intentionally treated as a secret and is never returned by
// API endpoints.
type APIConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Key     string `yaml:"key" json:"-"`
	// AttemptsPerMinute rate-limits write endpoints per client IP.
	AttemptsPerMinute int `yaml:"attempts_per_minute" json:"attempts_per_minute"`
}

// StoreConfig locates the progress/search database.
type StoreConfig struct {
	// Path is the SQLite database file. ":memory:" is accepted for tests.
	Path string `yaml:"path" json:"path"`
}

// SearchConfig controls the full-text search endpoint.
type SearchConfig struct {
	Enabled    bool `yaml:"enabled" json:"enabled"`
	MaxResults int  `yaml:"max_results" json:"max_results"`
}

// LintConfig controls the documentation linter.
type LintConfig struct {
	// DisabledRules lists rule names to skip (e.g. "unique-slugs").
	DisabledRules []string `yaml:"disabled_rules,omitempty" json:"disabled_rules,omitempty"`
	// WarningsAsErrors promotes warnings when deciding exit status.
	WarningsAsErrors bool `yaml:"warnings_as_errors" json:"warnings_as_errors"`
}

// MirrorConfig contains content synchronization settings.
//
// A secondary node periodically pulls the content bundle from its primary
// and rebuilds locally; every node serves pages independently.
type MirrorConfig struct {
	Mode         MirrorMode `yaml:"mode" json:"mode"`
	NodeID       string     `yaml:"node_id" json:"node_id,omitempty"`
	PrimaryURL   string     `yaml:"primary_url" json:"primary_url,omitempty"`
	SyncInterval string     `yaml:"sync_interval" json:"sync_interval"` // e.g. "60s"
	SyncTimeout  string     `yaml:"sync_timeout" json:"sync_timeout"`   // e.g. "10s"
	APIKey       string     `yaml:"api_key" json:"-"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level            string            `yaml:"level" json:"level"`
	Structured       bool              `yaml:"structured" json:"structured"`
	StructuredFormat string            `yaml:"structured_format" json:"structured_format"`
	IncludePID       bool              `yaml:"include_pid" json:"include_pid"`
	ExtraFields      map[string]string `yaml:"extra_fields,omitempty" json:"extra_fields,omitempty"`
}

// Config is the root configuration structure.
type Config struct {
	Site    SiteConfig    `yaml:"site" json:"site"`
	Server  ServerConfig  `yaml:"server" json:"server"`
	API     APIConfig     `yaml:"api" json:"api"`
	Store   StoreConfig   `yaml:"store" json:"store"`
	Search  SearchConfig  `yaml:"search" json:"search"`
	Lint    LintConfig    `yaml:"lint" json:"lint"`
	Mirror  MirrorConfig  `yaml:"mirror" json:"mirror"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}
