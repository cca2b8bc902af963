package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/robworks/opsdocs/internal/api/models"
	"github.com/robworks/opsdocs/internal/database"
	"github.com/robworks/opsdocs/internal/widget"
)

// SubmitQuizAttempt godoc
// @Summary Grade a quiz answer
// @Description Grades the selected options against the quiz on the page, records the attempt and returns the outcome
// @Tags activity
// @Accept json
// @Produce json
// @Param attempt body models.QuizAttemptRequest true "Quiz answer"
// @Success 200 {object} models.QuizAttemptResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /attempts/quiz [post]
func (h *Handler) SubmitQuizAttempt(c *gin.Context) {
	var req models.QuizAttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: fmt.Sprintf("invalid request: %v", err)})
		return
	}

	model := h.Model()
	if model == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: "site not built yet"})
		return
	}

	pm, inst, ok := model.Widget(req.PageRoute, req.WidgetRef)
	if pm == nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "page not found"})
		return
	}
	if !ok || inst.Widget == nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "unknown widget"})
		return
	}
	quiz, isQuiz := inst.Widget.Config.(*widget.Quiz)
	if !isQuiz {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: fmt.Sprintf("widget %s is not a quiz (kind %s)", req.WidgetRef, inst.Kind)})
		return
	}

	result, err := quiz.Grade(req.Selected)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	attempt := database.QuizAttempt{
		PageRoute: pm.Page.Route,
		WidgetRef: req.WidgetRef,
		Selected:  req.Selected,
		Correct:   result.Correct,
		Score:     result.Score,
	}
	if h.db != nil {
		if err := h.db.RecordQuizAttempt(&attempt); err != nil {
			h.logger.Warn("quiz attempt not recorded",
				"route", pm.Page.Route, "ref", req.WidgetRef, "error", err)
		}
	}

	c.JSON(http.StatusOK, models.QuizAttemptResponse{
		AttemptID: attempt.ID,
		Correct:   result.Correct,
		Score:     result.Score,
		Feedback:  result.Feedback,
	})
}

// RecordExerciseEvent godoc
// @Summary Record an exercise interaction
// @Description Stores a started, hint_used or completed event for an exercise widget
// @Tags activity
// @Accept json
// @Produce json
// @Param event body models.ExerciseEventRequest true "Exercise event"
// @Success 200 {object} models.StatusResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /attempts/exercise [post]
func (h *Handler) RecordExerciseEvent(c *gin.Context) {
	var req models.ExerciseEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: fmt.Sprintf("invalid request: %v", err)})
		return
	}
	if !database.ValidEvent(req.Event) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: fmt.Sprintf("unknown event %q", req.Event)})
		return
	}

	model := h.Model()
	if model == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: "site not built yet"})
		return
	}

	pm, inst, ok := model.Widget(req.PageRoute, req.WidgetRef)
	if pm == nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "page not found"})
		return
	}
	if !ok || inst.Widget == nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "unknown widget"})
		return
	}
	if _, isExercise := inst.Widget.Config.(*widget.Exercise); !isExercise {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: fmt.Sprintf("widget %s is not an exercise (kind %s)", req.WidgetRef, inst.Kind)})
		return
	}

	if h.db != nil {
		event := database.ExerciseEvent{
			PageRoute: pm.Page.Route,
			WidgetRef: req.WidgetRef,
			Event:     req.Event,
		}
		if err := h.db.RecordExerciseEvent(&event); err != nil {
			h.logger.Warn("exercise event not recorded",
				"route", pm.Page.Route, "ref", req.WidgetRef, "error", err)
		}
	}

	c.JSON(http.StatusOK, models.StatusResponse{Status: "recorded"})
}

// GetProgress godoc
// @Summary Learner progress
// @Description Returns per-section activity aggregates and whole-store totals
// @Tags activity
// @Produce json
// @Success 200 {object} models.ProgressResponse
// @Failure 500 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /progress [get]
func (h *Handler) GetProgress(c *gin.Context) {
	if h.db == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: "progress tracking unavailable"})
		return
	}

	sections, err := h.db.ProgressSummary()
	if err != nil {
		h.logger.Error("progress summary failed", "error", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "progress summary failed"})
		return
	}
	totals, err := h.db.Activity()
	if err != nil {
		h.logger.Error("activity totals failed", "error", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "progress summary failed"})
		return
	}
	if sections == nil {
		sections = []database.SectionProgress{}
	}

	c.JSON(http.StatusOK, models.ProgressResponse{
		Sections: sections,
		Totals:   totals,
	})
}
