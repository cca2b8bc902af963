package server

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robworks/opsdocs/internal/config"
	"github.com/robworks/opsdocs/internal/database"
	"github.com/robworks/opsdocs/internal/site"
)

// Service owns the live site model and its lifecycle. Rebuild swaps the
// model atomically, refreshes the search index and records build
// metadata; the API reads pages, widgets and counters through it.
type Service struct {
	cfg     *config.Config
	store   *database.Store
	builder *site.Builder
	stats   *SiteStats
	logger  *slog.Logger
	started time.Time

	building atomic.Bool

	mu       sync.RWMutex
	model    *site.Model
	pageErrs []site.PageError
}

// NewService creates a Service around a site builder with the given
// render worker count. store may be nil (one-shot builds without
// progress tracking).
func NewService(cfg *config.Config, store *database.Store, workers int, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		cfg:     cfg,
		store:   store,
		builder: site.NewBuilder(cfg.Site, workers, logger),
		stats:   NewSiteStats(),
		logger:  logger,
		started: time.Now(),
	}
}

// Model returns the current site model; nil before the first build.
func (s *Service) Model() *site.Model {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.model
}

// PageErrors returns the per-page errors of the last completed build.
func (s *Service) PageErrors() []site.PageError {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pageErrs
}

// Stats returns the build statistics collector.
func (s *Service) Stats() *SiteStats {
	return s.stats
}

// Store returns the progress store; may be nil.
func (s *Service) Store() *database.Store {
	return s.store
}

// Uptime returns the time since the service was created.
func (s *Service) Uptime() time.Duration {
	return time.Since(s.started)
}

// Building reports whether a build is currently running.
func (s *Service) Building() bool {
	return s.building.Load()
}

// Rebuild runs one full site build and, on success, swaps the live
// model, refreshes the search index and records the build. Only one
// build runs at a time; concurrent calls get site.ErrBuildInProgress.
func (s *Service) Rebuild(ctx context.Context) (*site.Result, error) {
	if !s.building.CompareAndSwap(false, true) {
		return nil, site.ErrBuildInProgress
	}
	defer s.building.Store(false)

	result, err := s.builder.Build(ctx)
	if err != nil {
		s.stats.RecordBuildFailure()
		return nil, err
	}

	model := result.Model
	widgets := 0
	for _, n := range model.WidgetsByKind() {
		widgets += n
	}

	s.mu.Lock()
	s.model = model
	s.pageErrs = result.Errors
	s.mu.Unlock()

	s.stats.RecordBuild(len(model.Pages), widgets, len(result.Errors), result.Duration)

	// Search and build history are auxiliary; their failures must not
	// undo a build whose pages are already on disk.
	if s.store != nil {
		if err := s.store.ReplaceSearchIndex(searchEntries(model)); err != nil {
			s.logger.Warn("failed to refresh search index", "error", err)
		}
		if err := s.store.RecordBuild(model.Version, len(model.Pages)); err != nil {
			s.logger.Warn("failed to record build", "error", err)
		}
	}

	return result, nil
}

func searchEntries(m *site.Model) []database.SearchEntry {
	entries := make([]database.SearchEntry, 0, len(m.Pages))
	for _, pm := range m.Pages {
		entries = append(entries, database.SearchEntry{
			Route:   pm.Page.Route,
			Title:   pm.Page.Title(),
			Section: pm.Page.Section,
			Body:    pm.Fragment.Plain,
		})
	}
	return entries
}
