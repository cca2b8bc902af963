package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/robworks/opsdocs/internal/api/models"
)

// Health godoc
// @Summary Health check
// @Description Returns server health status, including a store ping
// @Tags system
// @Produce json
// @Success 200 {object} models.StatusResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /health [get]
func (h *Handler) Health(c *gin.Context) {
	if h.db != nil {
		if err := h.db.Health(); err != nil {
			h.logger.Warn("health check failed", "error", err)
			c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: "store unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, models.StatusResponse{Status: "ok"})
}
