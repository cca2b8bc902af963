package database

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// SectionProgress aggregates learner activity for one content section.
type SectionProgress struct {
	Section            string `json:"section"`
	QuizAttempts       int    `json:"quiz_attempts"`
	QuizCorrect        int    `json:"quiz_correct"`
	ExercisesCompleted int    `json:"exercises_completed"`
	PagesVisited       int    `json:"pages_visited"`
}

// TouchPageVisit increments the visit counter for a route.
func (s *Store) TouchPageVisit(route string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO page_visits (page_route, visits, last_visit)
		VALUES (?, 1, ?)
		ON CONFLICT(page_route) DO UPDATE SET
			visits = visits + 1,
			last_visit = excluded.last_visit
	`
	if _, err := s.conn.Exec(query, route, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to record page visit: %w", err)
	}
	return nil
}

// ProgressSummary aggregates attempts, correct answers, completed
// exercises and visits per section. Sections are derived from the first
// route segment; the root page lands in "home".
func (s *Store) ProgressSummary() ([]SectionProgress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bySection := map[string]*SectionProgress{}
	get := func(route string) *SectionProgress {
		section := routeSection(route)
		p, ok := bySection[section]
		if !ok {
			p = &SectionProgress{Section: section}
			bySection[section] = p
		}
		return p
	}

	rows, err := s.conn.Query(`
		SELECT page_route, COUNT(*), COALESCE(SUM(correct), 0)
		FROM quiz_attempts
		GROUP BY page_route
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query quiz attempts: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var route string
		var attempts, correct int
		if err := rows.Scan(&route, &attempts, &correct); err != nil {
			return nil, fmt.Errorf("failed to scan quiz attempts: %w", err)
		}
		p := get(route)
		p.QuizAttempts += attempts
		p.QuizCorrect += correct
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating quiz attempts: %w", err)
	}

	rows, err = s.conn.Query(`
		SELECT page_route, COUNT(DISTINCT widget_ref)
		FROM exercise_events
		WHERE event = 'completed'
		GROUP BY page_route
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query exercise events: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var route string
		var completed int
		if err := rows.Scan(&route, &completed); err != nil {
			return nil, fmt.Errorf("failed to scan exercise events: %w", err)
		}
		get(route).ExercisesCompleted += completed
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating exercise events: %w", err)
	}

	rows, err = s.conn.Query(`SELECT page_route FROM page_visits`)
	if err != nil {
		return nil, fmt.Errorf("failed to query page visits: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var route string
		if err := rows.Scan(&route); err != nil {
			return nil, fmt.Errorf("failed to scan page visits: %w", err)
		}
		get(route).PagesVisited++
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating page visits: %w", err)
	}

	out := make([]SectionProgress, 0, len(bySection))
	for _, p := range bySection {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Section < out[j].Section })
	return out, nil
}

// ActivityTotals are whole-store learner activity counters.
type ActivityTotals struct {
	QuizAttempts   int64 `json:"quiz_attempts"`
	ExerciseEvents int64 `json:"exercise_events"`
	PageVisits     int64 `json:"page_visits"`
}

// Activity returns the total recorded quiz attempts, exercise events and
// page visits.
func (s *Store) Activity() (ActivityTotals, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var t ActivityTotals
	row := s.conn.QueryRow(`SELECT COUNT(*) FROM quiz_attempts`)
	if err := row.Scan(&t.QuizAttempts); err != nil {
		return t, fmt.Errorf("failed to count quiz attempts: %w", err)
	}
	row = s.conn.QueryRow(`SELECT COUNT(*) FROM exercise_events`)
	if err := row.Scan(&t.ExerciseEvents); err != nil {
		return t, fmt.Errorf("failed to count exercise events: %w", err)
	}
	row = s.conn.QueryRow(`SELECT COALESCE(SUM(visits), 0) FROM page_visits`)
	if err := row.Scan(&t.PageVisits); err != nil {
		return t, fmt.Errorf("failed to count page visits: %w", err)
	}
	return t, nil
}

// routeSection extracts the first segment of a route ("/linux/grep/"
// gives "linux"); the root route maps to "home".
func routeSection(route string) string {
	trimmed := strings.Trim(route, "/")
	if trimmed == "" {
		return "home"
	}
	if i := strings.IndexByte(trimmed, '/'); i >= 0 {
		return trimmed[:i]
	}
	return trimmed
}
