package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/robworks/opsdocs/internal/api/models"
	"github.com/robworks/opsdocs/internal/database"
	"github.com/robworks/opsdocs/internal/helpers"
)

// Search godoc
// @Summary Full-text search
// @Description Searches the indexed site content and returns ranked results with snippets
// @Tags content
// @Produce json
// @Param q query string true "Search query"
// @Param limit query int false "Maximum results (capped at the configured maximum)"
// @Success 200 {object} models.SearchResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /search [get]
func (h *Handler) Search(c *gin.Context) {
	if h.cfg != nil && !h.cfg.Search.Enabled {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: "search is disabled"})
		return
	}
	if h.db == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: "search unavailable"})
		return
	}

	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "query parameter q is required"})
		return
	}

	limit := 20
	if h.cfg != nil && h.cfg.Search.MaxResults > 0 {
		limit = h.cfg.Search.MaxResults
	}
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "limit must be an integer"})
			return
		}
		limit = helpers.ClampInt(n, 1, limit)
	}
	results, err := h.db.Search(q, limit)
	if err != nil {
		h.logger.Error("search failed", "query", q, "error", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "search failed"})
		return
	}
	if results == nil {
		results = []database.SearchResult{}
	}

	c.JSON(http.StatusOK, models.SearchResponse{
		Query:   q,
		Count:   len(results),
		Results: results,
	})
}
