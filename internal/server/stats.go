package server

import (
	"sync/atomic"
	"time"
)

// SiteStats collects build statistics.
// All methods are safe for concurrent use. Totals accumulate across the
// process lifetime; pages, widgets and the last-build fields reflect the
// most recent completed build.
type SiteStats struct {
	buildsTotal   atomic.Uint64
	buildFailures atomic.Uint64
	pageErrors    atomic.Uint64

	pagesCurrent   atomic.Uint64
	widgetsCurrent atomic.Uint64
	lastBuildMs    atomic.Uint64
	lastBuildUnix  atomic.Int64
}

// NewSiteStats creates a new build statistics collector.
func NewSiteStats() *SiteStats {
	return &SiteStats{}
}

// RecordBuild records a completed build.
func (s *SiteStats) RecordBuild(pages, widgets, pageErrors int, duration time.Duration) {
	s.buildsTotal.Add(1)
	s.pageErrors.Add(uint64(pageErrors))
	s.pagesCurrent.Store(uint64(pages))
	s.widgetsCurrent.Store(uint64(widgets))
	s.lastBuildMs.Store(uint64(duration.Milliseconds()))
	s.lastBuildUnix.Store(time.Now().Unix())
}

// RecordBuildFailure records a build that aborted before producing a site.
func (s *SiteStats) RecordBuildFailure() {
	s.buildFailures.Add(1)
}

// SiteStatsSnapshot is a point-in-time snapshot of build statistics.
type SiteStatsSnapshot struct {
	BuildsTotal   uint64
	BuildFailures uint64
	PageErrors    uint64
	Pages         uint64
	Widgets       uint64
	LastBuildMs   uint64
	LastBuildAt   time.Time
}

// Snapshot returns the current statistics.
func (s *SiteStats) Snapshot() SiteStatsSnapshot {
	snap := SiteStatsSnapshot{
		BuildsTotal:   s.buildsTotal.Load(),
		BuildFailures: s.buildFailures.Load(),
		PageErrors:    s.pageErrors.Load(),
		Pages:         s.pagesCurrent.Load(),
		Widgets:       s.widgetsCurrent.Load(),
		LastBuildMs:   s.lastBuildMs.Load(),
	}
	if unix := s.lastBuildUnix.Load(); unix > 0 {
		snap.LastBuildAt = time.Unix(unix, 0).UTC()
	}
	return snap
}
