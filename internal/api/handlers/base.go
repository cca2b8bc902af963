// Package handlers implements the REST API endpoint handlers for opsdocs.
//
// REST API Endpoints:
//
// System Health:
//   - GET /api/v1/health - Health check status
//   - GET /api/v1/stats - Server statistics (uptime, memory, site counters, host gauges)
//   - GET /api/v1/config - Current configuration (sensitive values redacted)
//
// Content:
//   - GET /api/v1/pages - List built pages, optionally filtered by section
//   - GET /api/v1/pages/*route - Page detail with TOC and widget configs
//   - GET /api/v1/search - Full-text search over the built site
//   - GET /api/v1/lint - Run the lint rules against the loaded content
//   - POST /api/v1/rebuild - Trigger a site rebuild
//
// Learner Activity:
//   - POST /api/v1/attempts/quiz - Grade and record a quiz answer
//   - POST /api/v1/attempts/exercise - Record an exercise interaction
//   - GET /api/v1/progress - Per-section progress summary
//
// Mirroring:
//   - GET /api/v1/content/version - Content version of this node
//   - GET /api/v1/content/export - Full content bundle for secondary nodes
//
// Authentication:
//
// All endpoints support optional API key authentication via the X-API-Key
// header. If a key is configured it is required for every /api/v1 route.
//
// Security Considerations:
//
// - Bind to localhost when the handbook is for a single machine
// - Enable firewall rules to restrict access from trusted networks only
// - Use strong API keys (minimum 32 characters recommended)
// - Rotate API keys regularly
// - Log all API access in production
//
// @title opsdocs Management API
// @version 1.0
// @description REST API for the opsdocs handbook server: content structure, search, learner progress and mirroring.
//
// @contact.name opsdocs Support
// @contact.url https://github.com/robworks/opsdocs
//
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
//
// @host localhost:8080
// @BasePath /api/v1
//
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
package handlers

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/robworks/opsdocs/internal/config"
	"github.com/robworks/opsdocs/internal/database"
	"github.com/robworks/opsdocs/internal/mirror"
	"github.com/robworks/opsdocs/internal/site"
)

// SiteStatsSnapshot contains a point-in-time snapshot of build statistics.
type SiteStatsSnapshot struct {
	BuildsTotal   uint64
	BuildFailures uint64
	PageErrors    uint64
	Pages         uint64
	Widgets       uint64
	LastBuildMs   uint64
	LastBuildAt   time.Time
}

// ModelFunc returns the current site model, nil before the first build.
type ModelFunc func() *site.Model

// PageErrorsFunc returns the page errors of the last build.
type PageErrorsFunc func() []site.PageError

// RebuildFunc triggers a site rebuild.
type RebuildFunc func(ctx context.Context) (*site.Result, error)

// SiteStatsFunc returns build statistics.
type SiteStatsFunc func() SiteStatsSnapshot

// Handler contains dependencies for API handlers.
type Handler struct {
	cfg       *config.Config
	db        *database.Store
	logger    *slog.Logger
	startTime time.Time

	// Runtime components (set after the site service starts)
	modelFunc      ModelFunc
	pageErrorsFunc PageErrorsFunc
	rebuildFunc    RebuildFunc
	siteStatsFunc  SiteStatsFunc
	writeAllowFunc func(ip string) bool
	syncer         *mirror.Syncer
	mu             sync.RWMutex
}

// New creates a new Handler with the given configuration and store.
func New(cfg *config.Config, db *database.Store, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		cfg:       cfg,
		db:        db,
		logger:    logger,
		startTime: time.Now(),
	}
}

// DB returns the activity store for handlers that need it.
func (h *Handler) DB() *database.Store {
	return h.db
}

// SetModelFunc sets the function that returns the current site model.
func (h *Handler) SetModelFunc(fn ModelFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.modelFunc = fn
}

// Model returns the current site model, or nil when no build has completed.
func (h *Handler) Model() *site.Model {
	h.mu.RLock()
	fn := h.modelFunc
	h.mu.RUnlock()
	if fn == nil {
		return nil
	}
	return fn()
}

// SetPageErrorsFunc sets the function that returns the last build's page errors.
func (h *Handler) SetPageErrorsFunc(fn PageErrorsFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pageErrorsFunc = fn
}

// PageErrors returns the page errors of the last build.
func (h *Handler) PageErrors() []site.PageError {
	h.mu.RLock()
	fn := h.pageErrorsFunc
	h.mu.RUnlock()
	if fn == nil {
		return nil
	}
	return fn()
}

// SetRebuildFunc sets the callback that triggers a site rebuild.
// This enables the API to rebuild when content changes are pushed.
func (h *Handler) SetRebuildFunc(fn RebuildFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.rebuildFunc = fn
}

// GetRebuildFunc retrieves the rebuild callback.
func (h *Handler) GetRebuildFunc() RebuildFunc {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.rebuildFunc
}

// SetSiteStatsFunc sets the function to retrieve build statistics.
func (h *Handler) SetSiteStatsFunc(fn SiteStatsFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.siteStatsFunc = fn
}

// GetSiteStatsFunc retrieves the build statistics function.
func (h *Handler) GetSiteStatsFunc() SiteStatsFunc {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.siteStatsFunc
}

// SetWriteAllowFunc sets the per-IP budget check for write endpoints.
func (h *Handler) SetWriteAllowFunc(fn func(ip string) bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.writeAllowFunc = fn
}

// AllowWrite reports whether a write request from ip is within budget.
// Requests are unlimited until a limiter is wired.
func (h *Handler) AllowWrite(ip string) bool {
	h.mu.RLock()
	fn := h.writeAllowFunc
	h.mu.RUnlock()
	if fn == nil {
		return true
	}
	return fn(ip)
}

// SetSyncer sets the mirror syncer for secondary mode.
func (h *Handler) SetSyncer(syncer *mirror.Syncer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.syncer = syncer
}

// GetSyncer retrieves the mirror syncer.
func (h *Handler) GetSyncer() *mirror.Syncer {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.syncer
}
