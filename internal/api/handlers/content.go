package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/robworks/opsdocs/internal/api/models"
	"github.com/robworks/opsdocs/internal/config"
	"github.com/robworks/opsdocs/internal/mirror"
	"github.com/robworks/opsdocs/internal/site"
)

// GetContentVersion godoc
// @Summary Content version
// @Description Returns the version hash of the currently built site, used by secondaries to detect changes
// @Tags mirror
// @Produce json
// @Success 200 {object} mirror.VersionData
// @Failure 503 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /content/version [get]
func (h *Handler) GetContentVersion(c *gin.Context) {
	model := h.Model()
	if model == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: "site not built yet"})
		return
	}
	c.JSON(http.StatusOK, mirror.VersionData{
		Version: model.Version,
		BuiltAt: model.BuiltAt,
		Pages:   len(model.Pages),
	})
}

// GetContentExport godoc
// @Summary Content bundle export
// @Description Returns every source page of the built site for secondary nodes to mirror
// @Tags mirror
// @Produce json
// @Success 200 {object} mirror.ExportData
// @Failure 403 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /content/export [get]
func (h *Handler) GetContentExport(c *gin.Context) {
	if h.cfg != nil && h.cfg.Mirror.Mode == config.MirrorSecondary {
		c.JSON(http.StatusForbidden, models.ErrorResponse{Error: "export not allowed from secondary node"})
		return
	}
	model := h.Model()
	if model == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: "site not built yet"})
		return
	}

	if nodeID := c.GetHeader("X-Node-ID"); nodeID != "" {
		h.logger.Info("content export requested", "node_id", nodeID, "client_ip", c.ClientIP())
	}

	var selfID string
	if h.cfg != nil {
		selfID = h.cfg.Mirror.NodeID
	}

	files := make([]mirror.ExportFile, 0, len(model.Pages))
	for _, pm := range model.Pages {
		files = append(files, mirror.ExportFile{
			Path: pm.Page.SourcePath,
			Raw:  string(pm.Page.Raw),
		})
	}

	c.JSON(http.StatusOK, mirror.ExportData{
		Version:     model.Version,
		GeneratedAt: time.Now().UTC(),
		NodeID:      selfID,
		Files:       files,
	})
}

// TriggerRebuild godoc
// @Summary Rebuild the site
// @Description Reloads the content tree and rebuilds every page. Returns 409 when a build is already running.
// @Tags content
// @Produce json
// @Success 200 {object} models.RebuildResponse
// @Failure 409 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /rebuild [post]
func (h *Handler) TriggerRebuild(c *gin.Context) {
	fn := h.GetRebuildFunc()
	if fn == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: "rebuild unavailable"})
		return
	}

	res, err := fn(c.Request.Context())
	if err != nil {
		if errors.Is(err, site.ErrBuildInProgress) {
			c.JSON(http.StatusConflict, models.ErrorResponse{Error: err.Error()})
			return
		}
		h.logger.Error("rebuild failed", "error", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "rebuild failed"})
		return
	}

	c.JSON(http.StatusOK, models.RebuildResponse{
		Status:     "ok",
		Pages:      res.PagesBuilt(),
		PageErrors: len(res.Errors),
		Version:    res.Model.Version,
		DurationMs: res.Duration.Milliseconds(),
	})
}
