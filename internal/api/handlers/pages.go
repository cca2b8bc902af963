package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/robworks/opsdocs/internal/api/models"
	"github.com/robworks/opsdocs/internal/site"
)

// ListPages godoc
// @Summary List built pages
// @Description Returns every page of the current site model, optionally filtered by section
// @Tags content
// @Produce json
// @Param section query string false "Only pages of this section"
// @Success 200 {object} models.PageListResponse
// @Failure 503 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /pages [get]
func (h *Handler) ListPages(c *gin.Context) {
	model := h.Model()
	if model == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: "site not built yet"})
		return
	}

	section := c.Query("section")
	pages := make([]models.PageSummary, 0, len(model.Pages))
	for _, pm := range model.Pages {
		if section != "" && pm.Page.Section != section {
			continue
		}
		pages = append(pages, models.PageSummary{
			Route:       pm.Page.Route,
			Title:       pm.Page.Title(),
			Section:     pm.Page.Section,
			Description: pm.Page.Meta.Description,
			Tags:        pm.Page.Meta.Tags,
			Widgets:     len(pm.Fragment.Widgets),
		})
	}

	c.JSON(http.StatusOK, models.PageListResponse{
		Version: model.Version,
		Count:   len(pages),
		Pages:   pages,
	})
}

// GetPage godoc
// @Summary Page detail
// @Description Returns the structure of one page: metadata, table of contents and widget configurations
// @Tags content
// @Produce json
// @Param route path string true "Page route, e.g. /linux/grep/"
// @Success 200 {object} models.PageDetailResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /pages/{route} [get]
func (h *Handler) GetPage(c *gin.Context) {
	model := h.Model()
	if model == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: "site not built yet"})
		return
	}

	route := c.Param("route")
	pm, ok := model.Lookup(route)
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "page not found"})
		return
	}

	if h.db != nil {
		if err := h.db.TouchPageVisit(pm.Page.Route); err != nil {
			h.logger.Warn("visit not recorded", "route", pm.Page.Route, "error", err)
		}
	}

	c.JSON(http.StatusOK, models.PageDetailResponse{
		Route:       pm.Page.Route,
		Title:       pm.Page.Title(),
		Section:     pm.Page.Section,
		Description: pm.Page.Meta.Description,
		Tags:        pm.Page.Meta.Tags,
		SourcePath:  pm.Page.SourcePath,
		TOC:         pm.Fragment.Headings,
		Widgets:     h.widgetInfos(pm),
	})
}

// widgetInfos flattens the widget instances of a page for the API view.
func (h *Handler) widgetInfos(pm *site.PageModel) []models.WidgetInfo {
	infos := make([]models.WidgetInfo, 0, len(pm.Fragment.Widgets))
	for _, inst := range pm.Fragment.Widgets {
		info := models.WidgetInfo{
			Ref:   inst.Ref,
			Kind:  string(inst.Kind),
			Line:  inst.Line,
			Title: inst.Title,
		}
		switch {
		case inst.DecodeErr != nil:
			info.Error = inst.DecodeErr.Error()
		case inst.Widget != nil:
			cfg, err := inst.Widget.ConfigJSON()
			if err != nil {
				h.logger.Warn("widget config not serializable",
					"route", pm.Page.Route, "ref", inst.Ref, "error", err)
			} else {
				info.Config = json.RawMessage(cfg)
			}
		}
		infos = append(infos, info)
	}
	return infos
}
