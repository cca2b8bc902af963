package database

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

// =============================================================================
// Open / Migration Tests
// =============================================================================

func TestOpenAppliesMigrations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Health())
	require.NoError(t, s.Close())

	// Reopening an up-to-date database must be a no-op.
	s, err = Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Health())
	require.NoError(t, s.Close())
}

// =============================================================================
// Attempt Tests
// =============================================================================

func TestRecordQuizAttempt(t *testing.T) {
	s := openTestStore(t)

	first := &QuizAttempt{
		PageRoute: "/linux/file-permissions/",
		WidgetRef: "quiz-1",
		Selected:  []int{0},
		Correct:   true,
		Score:     1.0,
	}
	require.NoError(t, s.RecordQuizAttempt(first))
	assert.NotEmpty(t, first.ID)

	second := &QuizAttempt{
		PageRoute: "/linux/file-permissions/",
		WidgetRef: "quiz-1",
		Selected:  []int{1},
	}
	require.NoError(t, s.RecordQuizAttempt(second))
	assert.NotEqual(t, first.ID, second.ID)

	summary, err := s.ProgressSummary()
	require.NoError(t, err)
	require.Len(t, summary, 1)
	assert.Equal(t, "linux", summary[0].Section)
	assert.Equal(t, 2, summary[0].QuizAttempts)
	assert.Equal(t, 1, summary[0].QuizCorrect)
}

func TestRecordExerciseEvent(t *testing.T) {
	s := openTestStore(t)

	for _, event := range []string{EventStarted, EventHintUsed, EventCompleted, EventCompleted} {
		err := s.RecordExerciseEvent(&ExerciseEvent{
			PageRoute: "/dns/zone-files/",
			WidgetRef: "exercise-1",
			Event:     event,
		})
		require.NoError(t, err)
	}

	err := s.RecordExerciseEvent(&ExerciseEvent{
		PageRoute: "/dns/zone-files/",
		WidgetRef: "exercise-1",
		Event:     "gave_up",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown exercise event")

	summary, err := s.ProgressSummary()
	require.NoError(t, err)
	require.Len(t, summary, 1)
	assert.Equal(t, "dns", summary[0].Section)
	// Two "completed" events for one widget count once.
	assert.Equal(t, 1, summary[0].ExercisesCompleted)
}

// =============================================================================
// Progress Tests
// =============================================================================

func TestTouchPageVisit(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.TouchPageVisit("/linux/grep/"))
	require.NoError(t, s.TouchPageVisit("/linux/grep/"))
	require.NoError(t, s.TouchPageVisit("/linux/awk/"))

	summary, err := s.ProgressSummary()
	require.NoError(t, err)
	require.Len(t, summary, 1)
	// Repeat visits to one page do not add pages.
	assert.Equal(t, 2, summary[0].PagesVisited)
}

func TestProgressSummarySections(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.RecordQuizAttempt(&QuizAttempt{PageRoute: "/linux/grep/", WidgetRef: "quiz-1"}))
	require.NoError(t, s.RecordQuizAttempt(&QuizAttempt{PageRoute: "/dns/records/", WidgetRef: "quiz-1", Correct: true, Score: 1}))
	require.NoError(t, s.RecordQuizAttempt(&QuizAttempt{PageRoute: "/", WidgetRef: "quiz-1"}))

	summary, err := s.ProgressSummary()
	require.NoError(t, err)
	require.Len(t, summary, 3)

	// Sorted by section name; the root route lands in "home".
	assert.Equal(t, "dns", summary[0].Section)
	assert.Equal(t, 1, summary[0].QuizCorrect)
	assert.Equal(t, "home", summary[1].Section)
	assert.Equal(t, "linux", summary[2].Section)
}

func TestActivityTotals(t *testing.T) {
	s := openTestStore(t)

	totals, err := s.Activity()
	require.NoError(t, err)
	assert.Equal(t, ActivityTotals{}, totals)

	require.NoError(t, s.RecordQuizAttempt(&QuizAttempt{PageRoute: "/linux/grep/", WidgetRef: "quiz-1"}))
	require.NoError(t, s.RecordQuizAttempt(&QuizAttempt{PageRoute: "/linux/grep/", WidgetRef: "quiz-2"}))
	require.NoError(t, s.RecordExerciseEvent(&ExerciseEvent{PageRoute: "/dns/records/", WidgetRef: "exercise-1", Event: EventStarted}))
	require.NoError(t, s.TouchPageVisit("/linux/grep/"))
	require.NoError(t, s.TouchPageVisit("/linux/grep/"))
	require.NoError(t, s.TouchPageVisit("/dns/records/"))

	totals, err = s.Activity()
	require.NoError(t, err)
	assert.Equal(t, int64(2), totals.QuizAttempts)
	assert.Equal(t, int64(1), totals.ExerciseEvents)
	// Visits sum across pages, repeats included.
	assert.Equal(t, int64(3), totals.PageVisits)
}

func TestConcurrentWrites(t *testing.T) {
	s := openTestStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.RecordQuizAttempt(&QuizAttempt{PageRoute: "/linux/grep/", WidgetRef: "quiz-1"})
			_ = s.TouchPageVisit("/linux/grep/")
		}()
	}
	wg.Wait()

	summary, err := s.ProgressSummary()
	require.NoError(t, err)
	require.Len(t, summary, 1)
	assert.Equal(t, 10, summary[0].QuizAttempts)
	assert.Equal(t, 1, summary[0].PagesVisited)
}

// =============================================================================
// Search Tests
// =============================================================================

func TestSearch(t *testing.T) {
	s := openTestStore(t)

	err := s.ReplaceSearchIndex([]SearchEntry{
		{Route: "/linux/file-permissions/", Title: "File Permissions", Section: "linux",
			Body: "Use chmod to change file permissions on Linux systems."},
		{Route: "/dns/zone-files/", Title: "Zone Files", Section: "dns",
			Body: "A zone file holds the DNS records for a domain."},
	})
	require.NoError(t, err)

	results, err := s.Search("permissions", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "/linux/file-permissions/", results[0].Route)
	assert.Equal(t, "File Permissions", results[0].Title)
	assert.Contains(t, results[0].Snippet, "<mark>")

	results, err = s.Search("zone records", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "/dns/zone-files/", results[0].Route)
}

func TestSearchEmptyQuery(t *testing.T) {
	s := openTestStore(t)
	results, err := s.Search("   ", 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchQuotesUserInput(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.ReplaceSearchIndex([]SearchEntry{
		{Route: "/linux/grep/", Title: "Grep", Section: "linux", Body: "Search files with grep."},
	}))

	// Operator-looking input must not produce FTS syntax errors.
	_, err := s.Search(`grep AND NOT "broken`, 10)
	require.NoError(t, err)
}

func TestReplaceSearchIndexSwapsAtomically(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.ReplaceSearchIndex([]SearchEntry{
		{Route: "/old/", Title: "Old", Body: "ancient lore"},
	}))
	require.NoError(t, s.ReplaceSearchIndex([]SearchEntry{
		{Route: "/new/", Title: "New", Body: "fresh content"},
	}))

	results, err := s.Search("ancient", 10)
	require.NoError(t, err)
	assert.Empty(t, results)

	results, err = s.Search("fresh", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "/new/", results[0].Route)
}

func TestBuildMatchQuery(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"chmod", `"chmod"`},
		{"zone transfer", `"zone" "transfer"`},
		{`say "hi"`, `"say" """hi"""`},
		{"  ", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, buildMatchQuery(tt.in))
	}
}

// =============================================================================
// Build History Tests
// =============================================================================

func TestLatestBuildEmpty(t *testing.T) {
	s := openTestStore(t)
	b, err := s.LatestBuild()
	require.NoError(t, err)
	assert.Nil(t, b)
}

func TestRecordBuild(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.RecordBuild("aaaa1111", 10))
	require.NoError(t, s.RecordBuild("bbbb2222", 12))

	b, err := s.LatestBuild()
	require.NoError(t, err)
	require.NotNil(t, b)
	assert.Equal(t, "bbbb2222", b.Version)
	assert.Equal(t, 12, b.Pages)
	assert.False(t, b.BuiltAt.IsZero())
}
