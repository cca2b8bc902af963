package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/robworks/opsdocs/internal/api"
	"github.com/robworks/opsdocs/internal/api/handlers"
	"github.com/robworks/opsdocs/internal/config"
	"github.com/robworks/opsdocs/internal/database"
	"github.com/robworks/opsdocs/internal/mirror"
	"github.com/robworks/opsdocs/internal/site"
)

// Runner orchestrates the docs server startup, configuration, and shutdown.
type Runner struct {
	logger *slog.Logger
}

// NewRunner creates a new server runner with the given logger.
func NewRunner(logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{logger: logger}
}

// Run starts the docs server with the given configuration.
//
// Server lifecycle:
//  1. Configure runtime (GOMAXPROCS based on workers setting)
//  2. Open the progress store and apply migrations
//  3. Build the site once (fatal if the build itself fails)
//  4. Watch the content directory and rebuild on changes (if enabled)
//  5. Start the mirror syncer (secondary mode only)
//  6. Serve pages and the API over HTTP
//  7. Wait for shutdown signal (SIGINT/SIGTERM)
//  8. Gracefully stop the HTTP server with timeout
func (r *Runner) Run(cfg *config.Config) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return r.RunWithContext(ctx, cfg)
}

// RunWithContext starts the docs server and blocks until ctx is canceled or
// the HTTP server fails.
//
// Goroutine lifecycle: spawns the HTTP server goroutine, the content
// watcher's event loop and, in secondary mode, the mirror sync loop. All of
// them exit when the context is cancelled.
func (r *Runner) RunWithContext(ctx context.Context, cfg *config.Config) error {
	ctx, cancelRun := context.WithCancel(ctx)
	defer cancelRun()

	// Configure GOMAXPROCS based on worker settings
	desiredProcs := r.configureRuntime(cfg)
	workers := r.calculateBuildWorkers(cfg, desiredProcs)

	store, err := database.Open(cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	svc := NewService(cfg, store, workers, r.logger)

	// First build. Individual pages may fail and are reported; a build
	// that cannot produce a site at all is fatal.
	result, err := svc.Rebuild(ctx)
	if err != nil {
		return fmt.Errorf("initial build: %w", err)
	}
	r.logPageErrors(result.Errors)

	rebuild := func() {
		res, err := svc.Rebuild(ctx)
		switch {
		case errors.Is(err, site.ErrBuildInProgress), errors.Is(err, context.Canceled):
		case err != nil:
			r.logger.Error("rebuild failed", "err", err)
		default:
			r.logPageErrors(res.Errors)
		}
	}

	if cfg.Server.Watch {
		watcher, err := site.WatchContent(ctx, cfg.Site.ContentDir, rebuild, r.logger)
		if err != nil {
			// Serving a stale site beats not serving at all.
			r.logger.Warn("content watcher disabled", "err", err)
		} else {
			defer watcher.Close()
		}
	}

	apiServer := api.New(cfg, store, r.logger)
	r.wireHandlers(apiServer.Handlers(), cfg, svc)

	// Secondary nodes pull content from their primary and rebuild.
	if cfg.Mirror.Mode == config.MirrorSecondary {
		syncer, err := mirror.NewSyncer(cfg.Mirror, cfg.Site.ContentDir, r.logger,
			func() string {
				if m := svc.Model(); m != nil {
					return m.Version
				}
				return ""
			},
			func() error {
				_, err := svc.Rebuild(ctx)
				if errors.Is(err, site.ErrBuildInProgress) {
					// The watcher picked the change up already.
					return nil
				}
				return err
			},
		)
		if err != nil {
			return fmt.Errorf("mirror syncer: %w", err)
		}
		if err := syncer.Start(ctx); err != nil {
			return fmt.Errorf("mirror syncer: %w", err)
		}
		defer syncer.Stop()
		apiServer.Handlers().SetSyncer(syncer)
	}

	r.logStartup(cfg, apiServer.Addr(), workers, result)

	errCh := make(chan error, 1)
	go func() { errCh <- apiServer.ListenAndServe() }()

	// Wait for shutdown or error
	select {
	case <-ctx.Done():
		// shutdown requested via signal
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			cancelRun()
			return err
		}
	}

	// Graceful shutdown
	stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer stopCancel()
	if err := apiServer.Shutdown(stopCtx); err != nil {
		r.logger.Warn("http shutdown incomplete", "err", err)
	}
	return nil
}

// wireHandlers connects the API handlers to the live service. The API
// package never imports this one; everything it needs at runtime arrives
// through these setters.
func (r *Runner) wireHandlers(h *handlers.Handler, cfg *config.Config, svc *Service) {
	h.SetModelFunc(svc.Model)
	h.SetPageErrorsFunc(svc.PageErrors)
	h.SetRebuildFunc(svc.Rebuild)
	h.SetSiteStatsFunc(func() handlers.SiteStatsSnapshot {
		s := svc.Stats().Snapshot()
		return handlers.SiteStatsSnapshot{
			BuildsTotal:   s.BuildsTotal,
			BuildFailures: s.BuildFailures,
			PageErrors:    s.PageErrors,
			Pages:         s.Pages,
			Widgets:       s.Widgets,
			LastBuildMs:   s.LastBuildMs,
			LastBuildAt:   s.LastBuildAt,
		}
	})
	h.SetWriteAllowFunc(NewAttemptLimiter(cfg.API.AttemptsPerMinute).Allow)
}

func (r *Runner) logPageErrors(errs []site.PageError) {
	if r.logger == nil {
		return
	}
	for _, pe := range errs {
		r.logger.Warn("page skipped", "path", pe.Path, "err", pe.Err)
	}
}

// configureRuntime sets GOMAXPROCS based on worker configuration.
// Workers can reduce but never increase parallelism beyond the default.
func (r *Runner) configureRuntime(cfg *config.Config) int {
	baseProcs := runtime.GOMAXPROCS(0)
	if baseProcs <= 0 {
		baseProcs = 1
	}
	desiredProcs := baseProcs

	if cfg.Server.Workers.Mode == config.WorkersFixed {
		w := cfg.Server.Workers.Value
		if w <= 0 {
			w = 1
		}
		if w < desiredProcs {
			desiredProcs = w
		}
	}

	prev := runtime.GOMAXPROCS(desiredProcs)
	actual := runtime.GOMAXPROCS(0)
	if r.logger != nil {
		r.logger.Info("runtime", "gomaxprocs", actual, "prev", prev, "base", baseProcs)
	}
	return actual
}

// calculateBuildWorkers determines the render worker pool size.
func (r *Runner) calculateBuildWorkers(cfg *config.Config, procs int) int {
	if cfg.Server.Workers.Mode == config.WorkersFixed && cfg.Server.Workers.Value > 0 {
		return cfg.Server.Workers.Value
	}
	return max(procs, 1)
}

// logStartup logs server configuration at startup.
func (r *Runner) logStartup(cfg *config.Config, addr string, workers int, result *site.Result) {
	if r.logger != nil {
		r.logger.Info(
			"http listening",
			"addr", addr,
			"pages", result.PagesBuilt(),
			"version", result.Model.Version,
			"build_workers", workers,
			"watch", cfg.Server.Watch,
			"mirror_mode", cfg.Mirror.Mode,
			"api_enabled", cfg.API.Enabled,
		)
	}
}
