package database

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// QuizAttempt is one graded quiz submission.
type QuizAttempt struct {
	ID        string  `json:"id"`
	PageRoute string  `json:"page_route"`
	WidgetRef string  `json:"widget_ref"`
	Selected  []int   `json:"selected"`
	Correct   bool    `json:"correct"`
	Score     float64 `json:"score"`
}

// Exercise event types.
const (
	EventStarted   = "started"
	EventHintUsed  = "hint_used"
	EventCompleted = "completed"
)

// ExerciseEvent is one learner interaction with an exercise widget.
type ExerciseEvent struct {
	ID        string `json:"id"`
	PageRoute string `json:"page_route"`
	WidgetRef string `json:"widget_ref"`
	Event     string `json:"event"`
}

// ValidEvent reports whether s is a known exercise event type.
func ValidEvent(s string) bool {
	switch s {
	case EventStarted, EventHintUsed, EventCompleted:
		return true
	}
	return false
}

// RecordQuizAttempt stores a graded attempt. A missing ID is filled with
// a fresh UUID.
func (s *Store) RecordQuizAttempt(a *QuizAttempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	selected, err := json.Marshal(a.Selected)
	if err != nil {
		return fmt.Errorf("failed to encode selections: %w", err)
	}

	query := `
		INSERT INTO quiz_attempts (id, page_route, widget_ref, selected, correct, score, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	if _, err := s.conn.Exec(query, a.ID, a.PageRoute, a.WidgetRef, string(selected), a.Correct, a.Score, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to record quiz attempt: %w", err)
	}
	return nil
}

// RecordExerciseEvent stores one exercise event. A missing ID is filled
// with a fresh UUID.
func (s *Store) RecordExerciseEvent(e *ExerciseEvent) error {
	if !ValidEvent(e.Event) {
		return fmt.Errorf("unknown exercise event %q", e.Event)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if e.ID == "" {
		e.ID = uuid.NewString()
	}

	query := `
		INSERT INTO exercise_events (id, page_route, widget_ref, event, created_at)
		VALUES (?, ?, ?, ?, ?)
	`
	if _, err := s.conn.Exec(query, e.ID, e.PageRoute, e.WidgetRef, e.Event, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to record exercise event: %w", err)
	}
	return nil
}
