package models

import "github.com/robworks/opsdocs/internal/database"

// QuizAttemptRequest is a learner's answer to a quiz widget.
type QuizAttemptRequest struct {
	PageRoute string `json:"page_route" binding:"required"`
	WidgetRef string `json:"widget_ref" binding:"required"`
	Selected  []int  `json:"selected"`
}

// QuizAttemptResponse is the grading outcome of a submitted attempt.
type QuizAttemptResponse struct {
	AttemptID string   `json:"attempt_id,omitempty"`
	Correct   bool     `json:"correct"`
	Score     float64  `json:"score"`
	Feedback  []string `json:"feedback,omitempty"`
}

// ExerciseEventRequest records a learner interaction with an exercise widget.
type ExerciseEventRequest struct {
	PageRoute string `json:"page_route" binding:"required"`
	WidgetRef string `json:"widget_ref" binding:"required"`
	Event     string `json:"event" binding:"required"`
}

// ProgressResponse aggregates learner activity per section plus whole-store
// totals.
type ProgressResponse struct {
	Sections []database.SectionProgress `json:"sections"`
	Totals   database.ActivityTotals    `json:"totals"`
}
