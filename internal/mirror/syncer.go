// Package mirror provides primary/secondary content synchronization for opsdocs.
//
// This implements a soft mirroring mode where:
//   - The primary node serves as the source of truth for Markdown content
//   - Secondary nodes periodically poll the primary for content changes
//   - Every node builds and serves its site independently
//
// The synchronization is one-way: secondary nodes pull the content bundle
// from the primary, write it to their local content directory and rebuild.
// This is designed for homelab and small-team setups where simplicity is
// valued over replicated storage.
package mirror

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/renameio/v2"

	"github.com/robworks/opsdocs/internal/config"
)

const (
	versionPath = "/api/v1/content/version"
	exportPath  = "/api/v1/content/export"
)

// ExportFile is a single Markdown source file in a content bundle.
type ExportFile struct {
	// Path is the file's location relative to the content root, slash-separated.
	Path string `json:"path"`

	// Raw is the complete file contents, front matter included.
	Raw string `json:"raw"`
}

// ExportData is the content bundle exchanged during sync.
// This is the payload served by primary nodes to secondaries.
type ExportData struct {
	// Version is the content version of the primary's built site.
	Version string `json:"version"`

	// GeneratedAt is when this export was generated.
	GeneratedAt time.Time `json:"generated_at"`

	// NodeID is the primary node's identifier.
	NodeID string `json:"node_id,omitempty"`

	// Files are the Markdown sources that make up the site.
	Files []ExportFile `json:"files"`
}

// VersionData is the lightweight version probe served by primary nodes.
// Secondaries poll it to decide whether a full bundle fetch is needed.
type VersionData struct {
	// Version is the content version of the primary's built site.
	Version string `json:"version"`

	// BuiltAt is when the primary last built its site.
	BuiltAt time.Time `json:"built_at"`

	// Pages is the number of pages in the primary's site.
	Pages int `json:"pages"`
}

// SyncStatus represents the current synchronization status.
type SyncStatus struct {
	// Mode is the mirror mode (standalone, primary, secondary).
	Mode config.MirrorMode `json:"mode"`

	// NodeID is this node's identifier.
	NodeID string `json:"node_id,omitempty"`

	// PrimaryURL is the URL of the primary node (only for secondary).
	PrimaryURL string `json:"primary_url,omitempty"`

	// LastSyncTime is when the last successful sync occurred.
	LastSyncTime *time.Time `json:"last_sync_time,omitempty"`

	// LastSyncVersion is the content version from the last successful sync.
	LastSyncVersion string `json:"last_sync_version,omitempty"`

	// LastSyncError is the error message from the last sync attempt (if any).
	LastSyncError string `json:"last_sync_error,omitempty"`

	// NextSyncTime is when the next sync is scheduled.
	NextSyncTime *time.Time `json:"next_sync_time,omitempty"`

	// SyncCount is the total number of successful syncs.
	SyncCount int64 `json:"sync_count"`

	// ErrorCount is the total number of sync errors.
	ErrorCount int64 `json:"error_count"`

	// LocalVersion is the content version of the locally built site.
	LocalVersion string `json:"local_version,omitempty"`
}

// VersionFunc is a callback function that returns the content version of the
// locally built site, or "" when no build has completed yet.
type VersionFunc func() string

// UpdateFunc is a callback function invoked after new content has been
// written to disk. It should rebuild the local site.
type UpdateFunc func() error

// Syncer handles content synchronization for secondary nodes.
type Syncer struct {
	cfg         config.MirrorConfig
	contentDir  string
	primaryURL  string
	logger      *slog.Logger
	versionFunc VersionFunc
	updateFunc  UpdateFunc
	httpClient  *http.Client

	mu              sync.RWMutex
	running         bool
	lastSyncTime    *time.Time
	lastSyncVersion string
	lastSyncError   string
	nextSyncTime    *time.Time
	syncCount       int64
	errorCount      int64

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewSyncer creates a new content syncer for secondary nodes.
func NewSyncer(
	cfg config.MirrorConfig,
	contentDir string,
	logger *slog.Logger,
	versionFunc VersionFunc,
	updateFunc UpdateFunc,
) (*Syncer, error) {
	if cfg.Mode != config.MirrorSecondary {
		return nil, fmt.Errorf("syncer can only be created for secondary mode, got: %s", cfg.Mode)
	}

	if cfg.PrimaryURL == "" {
		return nil, fmt.Errorf("primary_url is required for secondary mode")
	}

	if contentDir == "" {
		return nil, fmt.Errorf("content directory is required")
	}

	if logger == nil {
		logger = slog.Default()
	}

	syncTimeout, err := time.ParseDuration(cfg.SyncTimeout)
	if err != nil {
		syncTimeout = 10 * time.Second
	}

	return &Syncer{
		cfg:         cfg,
		contentDir:  contentDir,
		primaryURL:  strings.TrimRight(cfg.PrimaryURL, "/"),
		logger:      logger,
		versionFunc: versionFunc,
		updateFunc:  updateFunc,
		httpClient: &http.Client{
			Timeout: syncTimeout,
		},
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}, nil
}

// Start begins the periodic synchronization process.
func (s *Syncer) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("syncer already running")
	}
	s.running = true
	s.mu.Unlock()

	syncInterval, err := time.ParseDuration(s.cfg.SyncInterval)
	if err != nil {
		syncInterval = time.Minute
	}

	s.logger.Info("mirror syncer starting",
		"primary_url", s.primaryURL,
		"sync_interval", syncInterval,
		"node_id", s.cfg.NodeID,
	)

	// Do an initial sync immediately
	if err := s.doSync(ctx); err != nil {
		s.logger.Warn("initial sync failed, will retry", "err", err)
	}

	go s.runLoop(ctx, syncInterval)

	return nil
}

// Stop stops the synchronization process.
func (s *Syncer) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	close(s.stopCh)
	<-s.doneCh
	s.logger.Info("mirror syncer stopped")
}

// Status returns the current synchronization status.
func (s *Syncer) Status() SyncStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return SyncStatus{
		Mode:            s.cfg.Mode,
		NodeID:          s.cfg.NodeID,
		PrimaryURL:      s.primaryURL,
		LastSyncTime:    s.lastSyncTime,
		LastSyncVersion: s.lastSyncVersion,
		LastSyncError:   s.lastSyncError,
		NextSyncTime:    s.nextSyncTime,
		SyncCount:       s.syncCount,
		ErrorCount:      s.errorCount,
		LocalVersion:    s.localVersion(),
	}
}

// ForceSync triggers an immediate synchronization.
func (s *Syncer) ForceSync(ctx context.Context) error {
	return s.doSync(ctx)
}

func (s *Syncer) runLoop(ctx context.Context, interval time.Duration) {
	defer close(s.doneCh)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		// Update next sync time
		nextSync := time.Now().Add(interval)
		s.mu.Lock()
		s.nextSyncTime = &nextSync
		s.mu.Unlock()

		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		case <-ticker.C:
			if err := s.doSync(ctx); err != nil {
				s.logger.Warn("sync failed", "err", err)
			}
		}
	}
}

func (s *Syncer) doSync(ctx context.Context) error {
	s.logger.Debug("checking primary content version", "primary", s.primaryURL)

	var remote VersionData
	if err := s.getJSON(ctx, versionPath, &remote); err != nil {
		s.recordError(err)
		return fmt.Errorf("fetch version: %w", err)
	}

	// Check if we already have this version
	if local := s.localVersion(); local != "" && local == remote.Version {
		s.logger.Debug("content already up to date", "version", local)
		s.recordSuccess(remote.Version)
		return nil
	}

	s.logger.Info("pulling content from primary",
		"remote_version", remote.Version,
		"remote_pages", remote.Pages,
		"primary", s.primaryURL,
	)

	var bundle ExportData
	if err := s.getJSON(ctx, exportPath, &bundle); err != nil {
		s.recordError(err)
		return fmt.Errorf("fetch export: %w", err)
	}

	written, pruned, err := s.applyBundle(&bundle)
	if err != nil {
		s.recordError(err)
		return fmt.Errorf("apply bundle: %w", err)
	}

	// Trigger a local rebuild
	if s.updateFunc != nil {
		if err := s.updateFunc(); err != nil {
			s.logger.Warn("rebuild after sync failed", "err", err)
			// Don't fail the sync for rebuild errors; the files are on disk.
		}
	}

	s.recordSuccess(bundle.Version)
	s.logger.Info("content sync completed",
		"version", bundle.Version,
		"files_written", written,
		"files_pruned", pruned,
	)

	return nil
}

// applyBundle writes the bundle's files under the content directory and
// removes Markdown files the primary no longer serves. Paths are validated so
// a misbehaving primary cannot write outside the content root.
func (s *Syncer) applyBundle(bundle *ExportData) (written, pruned int, err error) {
	keep := make(map[string]struct{}, len(bundle.Files))
	for _, f := range bundle.Files {
		rel := filepath.FromSlash(f.Path)
		if !filepath.IsLocal(rel) {
			return 0, 0, fmt.Errorf("bundle contains unsafe path %q", f.Path)
		}
		keep[rel] = struct{}{}
	}

	if err := os.MkdirAll(s.contentDir, 0o755); err != nil {
		return 0, 0, fmt.Errorf("failed to create %s: %w", s.contentDir, err)
	}

	for _, f := range bundle.Files {
		dst := filepath.Join(s.contentDir, filepath.FromSlash(f.Path))
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return written, pruned, fmt.Errorf("failed to create %s: %w", filepath.Dir(dst), err)
		}
		if err := renameio.WriteFile(dst, []byte(f.Raw), 0o644); err != nil {
			return written, pruned, fmt.Errorf("failed to write %s: %w", dst, err)
		}
		written++
	}

	pruned, err = s.pruneStale(keep)
	return written, pruned, err
}

// pruneStale removes Markdown files that are no longer part of the bundle.
// Hidden and underscore-prefixed directories are left alone; they are not
// part of the published site and may hold local drafts or notes.
func (s *Syncer) pruneStale(keep map[string]struct{}) (int, error) {
	pruned := 0
	err := filepath.WalkDir(s.contentDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if path != s.contentDir && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) {
				return fs.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(name), ".md") {
			return nil
		}
		rel, err := filepath.Rel(s.contentDir, path)
		if err != nil {
			return err
		}
		if _, ok := keep[rel]; ok {
			return nil
		}
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to remove %s: %w", path, err)
		}
		s.logger.Info("removed stale page", "path", filepath.ToSlash(rel))
		pruned++
		return nil
	})
	return pruned, err
}

func (s *Syncer) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.primaryURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	// Authenticate against the primary's API key, if it has one.
	if s.cfg.APIKey != "" {
		req.Header.Set("X-API-Key", s.cfg.APIKey)
	}
	if s.cfg.NodeID != "" {
		req.Header.Set("X-Node-ID", s.cfg.NodeID)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

func (s *Syncer) localVersion() string {
	if s.versionFunc == nil {
		return ""
	}
	return s.versionFunc()
}

func (s *Syncer) recordSuccess(version string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.lastSyncTime = &now
	s.lastSyncVersion = version
	s.lastSyncError = ""
	s.syncCount++
}

func (s *Syncer) recordError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastSyncError = err.Error()
	s.errorCount++
}
