package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/robworks/opsdocs/internal/api/models"
	"github.com/robworks/opsdocs/internal/lint"
)

// LintContent godoc
// @Summary Lint the loaded content
// @Description Runs the lint rules against the current site model and returns findings plus error/warning counts. Pages that failed to build are reported as "build" findings.
// @Tags content
// @Produce json
// @Success 200 {object} lint.Report
// @Failure 503 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /lint [get]
func (h *Handler) LintContent(c *gin.Context) {
	model := h.Model()
	if model == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: "site not built yet"})
		return
	}

	inputs := make([]lint.PageInput, 0, len(model.Pages))
	for _, pm := range model.Pages {
		inputs = append(inputs, lint.PageInput{Page: pm.Page, Fragment: pm.Fragment})
	}

	var disabled []string
	if h.cfg != nil {
		disabled = h.cfg.Lint.DisabledRules
	}
	report := lint.NewRunner(disabled).Run(lint.NewTarget(inputs))

	// Pages that failed to parse never reach the model, so the rules
	// cannot see them. Surface them as findings too.
	if errs := h.PageErrors(); len(errs) > 0 {
		build := make([]lint.Finding, 0, len(errs))
		for _, pe := range errs {
			build = append(build, lint.Finding{
				Rule:     "build",
				Severity: lint.SeverityError,
				File:     pe.Path,
				Message:  pe.Err.Error(),
			})
		}
		report.Findings = append(build, report.Findings...)
		report.Errors += len(build)
	}

	c.JSON(http.StatusOK, report)
}
