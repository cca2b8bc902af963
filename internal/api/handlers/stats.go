package handlers

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/robworks/opsdocs/internal/api/models"
)

// Stats godoc
// @Summary Server statistics
// @Description Returns runtime statistics including memory, goroutines, build counters, learner activity and host gauges
// @Tags system
// @Produce json
// @Success 200 {object} models.ServerStatsResponse
// @Security ApiKeyAuth
// @Router /stats [get]
func (h *Handler) Stats(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	uptime := time.Since(h.startTime)

	resp := models.ServerStatsResponse{
		Uptime:        uptime.Round(time.Second).String(),
		UptimeSeconds: int64(uptime.Seconds()),
		StartTime:     h.startTime,
		GoRoutines:    runtime.NumGoroutine(),
		MemoryAllocMB: float64(m.Alloc) / 1024 / 1024,
		NumCPU:        runtime.NumCPU(),
	}

	if fn := h.GetSiteStatsFunc(); fn != nil {
		snap := fn()
		resp.Site = models.SiteStatsResponse{
			BuildsTotal:   snap.BuildsTotal,
			BuildFailures: snap.BuildFailures,
			PageErrors:    snap.PageErrors,
			Pages:         snap.Pages,
			Widgets:       snap.Widgets,
			LastBuildMs:   snap.LastBuildMs,
			LastBuildAt:   snap.LastBuildAt,
		}
	}

	if model := h.Model(); model != nil {
		resp.Widgets = model.WidgetsByKind()
	}

	if h.db != nil {
		totals, err := h.db.Activity()
		if err != nil {
			h.logger.Warn("activity totals unavailable", "error", err)
		} else {
			resp.Activity = &models.ActivityResponse{
				QuizAttempts:   totals.QuizAttempts,
				ExerciseEvents: totals.ExerciseEvents,
				PageVisits:     totals.PageVisits,
			}
		}
	}

	resp.Host = h.hostStats()

	if syncer := h.GetSyncer(); syncer != nil {
		status := syncer.Status()
		resp.Mirror = &models.MirrorStatusResponse{
			Mode:            string(status.Mode),
			NodeID:          status.NodeID,
			PrimaryURL:      status.PrimaryURL,
			LastSyncTime:    status.LastSyncTime,
			LastSyncVersion: status.LastSyncVersion,
			LastSyncError:   status.LastSyncError,
			NextSyncTime:    status.NextSyncTime,
			SyncCount:       status.SyncCount,
			ErrorCount:      status.ErrorCount,
			LocalVersion:    status.LocalVersion,
		}
	}

	c.JSON(http.StatusOK, resp)
}

// hostStats probes the host machine. Each gauge is best-effort; probes
// that fail on the running platform stay zero.
func (h *Handler) hostStats() *models.HostStatsResponse {
	host := &models.HostStatsResponse{}

	// Interval zero measures against the previous call instead of blocking.
	if pct, err := cpu.Percent(0, false); err == nil && len(pct) > 0 {
		host.CPUPercent = pct[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		host.MemoryUsedPercent = vm.UsedPercent
		host.MemoryTotalMB = float64(vm.Total) / 1024 / 1024
	}

	diskPath := "/"
	if h.cfg != nil && h.cfg.Site.ContentDir != "" {
		diskPath = h.cfg.Site.ContentDir
	}
	if du, err := disk.Usage(diskPath); err == nil {
		host.DiskUsedPercent = du.UsedPercent
		host.DiskFreeMB = float64(du.Free) / 1024 / 1024
	}

	return host
}
