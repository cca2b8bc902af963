package models

import "time"

// ServerStatsResponse contains server runtime statistics.
type ServerStatsResponse struct {
	Uptime        string                `json:"uptime"`
	UptimeSeconds int64                 `json:"uptime_seconds"`
	StartTime     time.Time             `json:"start_time"`
	GoRoutines    int                   `json:"goroutines"`
	MemoryAllocMB float64               `json:"memory_alloc_mb"`
	NumCPU        int                   `json:"num_cpu"`
	Site          SiteStatsResponse     `json:"site"`
	Widgets       map[string]int        `json:"widgets,omitempty"`
	Activity      *ActivityResponse     `json:"activity,omitempty"`
	Host          *HostStatsResponse    `json:"host,omitempty"`
	Mirror        *MirrorStatusResponse `json:"mirror,omitempty"`
}

// SiteStatsResponse contains build pipeline statistics.
type SiteStatsResponse struct {
	BuildsTotal   uint64    `json:"builds_total"`
	BuildFailures uint64    `json:"build_failures"`
	PageErrors    uint64    `json:"page_errors"`
	Pages         uint64    `json:"pages"`
	Widgets       uint64    `json:"widgets"`
	LastBuildMs   uint64    `json:"last_build_ms"`
	LastBuildAt   time.Time `json:"last_build_at"`
}

// ActivityResponse contains learner activity totals from the store.
type ActivityResponse struct {
	QuizAttempts   int64 `json:"quiz_attempts"`
	ExerciseEvents int64 `json:"exercise_events"`
	PageVisits     int64 `json:"page_visits"`
}

// HostStatsResponse contains host machine gauges. Fields are best-effort;
// a probe that fails on the running platform is reported as zero.
type HostStatsResponse struct {
	CPUPercent        float64 `json:"cpu_percent"`
	MemoryUsedPercent float64 `json:"memory_used_percent"`
	MemoryTotalMB     float64 `json:"memory_total_mb"`
	DiskUsedPercent   float64 `json:"disk_used_percent"`
	DiskFreeMB        float64 `json:"disk_free_mb"`
}

// MirrorStatusResponse describes the content sync state of a secondary node.
type MirrorStatusResponse struct {
	Mode            string     `json:"mode"`
	NodeID          string     `json:"node_id,omitempty"`
	PrimaryURL      string     `json:"primary_url,omitempty"`
	LastSyncTime    *time.Time `json:"last_sync_time,omitempty"`
	LastSyncVersion string     `json:"last_sync_version,omitempty"`
	LastSyncError   string     `json:"last_sync_error,omitempty"`
	NextSyncTime    *time.Time `json:"next_sync_time,omitempty"`
	SyncCount       int64      `json:"sync_count"`
	ErrorCount      int64      `json:"error_count"`
	LocalVersion    string     `json:"local_version,omitempty"`
}
