package widget_test

import (
	"testing"

	"github.com/robworks/opsdocs/internal/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func singleQuiz() *widget.Quiz {
	return &widget.Quiz{
		Question: "Which record maps a name to an IPv4 address?",
		Options: []widget.QuizOption{
			{Text: "A", Correct: true, Feedback: "A records hold IPv4 addresses."},
			{Text: "AAAA", Feedback: "AAAA is for IPv6."},
			{Text: "CNAME"},
		},
	}
}

func multiQuiz() *widget.Quiz {
	return &widget.Quiz{
		Question: "Which of these are archive tools?",
		Type:     widget.QuizMultiple,
		Options: []widget.QuizOption{
			{Text: "tar", Correct: true},
			{Text: "cpio", Correct: true},
			{Text: "grep"},
			{Text: "zip", Correct: true},
		},
	}
}

// =============================================================================
// CorrectSet Tests
// =============================================================================

func TestCorrectSet(t *testing.T) {
	assert.Equal(t, []int{0}, singleQuiz().CorrectSet())
	assert.Equal(t, []int{0, 1, 3}, multiQuiz().CorrectSet())
	assert.Nil(t, (&widget.Quiz{}).CorrectSet())
}

// =============================================================================
// Grading Tests
// =============================================================================

func TestGradeSingle(t *testing.T) {
	q := singleQuiz()

	res, err := q.Grade([]int{0})
	require.NoError(t, err)
	assert.True(t, res.Correct)
	assert.Equal(t, 1.0, res.Score)
	assert.Equal(t, []string{"A records hold IPv4 addresses."}, res.Feedback)

	res, err = q.Grade([]int{1})
	require.NoError(t, err)
	assert.False(t, res.Correct)
	assert.Equal(t, 0.0, res.Score)
	assert.Equal(t, []string{"AAAA is for IPv6."}, res.Feedback)
}

func TestGradeSingleMultipleSelectionsIsWrong(t *testing.T) {
	q := singleQuiz()

	// Selecting the right answer plus another is still wrong.
	res, err := q.Grade([]int{0, 1})
	require.NoError(t, err)
	assert.False(t, res.Correct)
	assert.Equal(t, 0.0, res.Score)
}

func TestGradeEmptySelectionIsWrong(t *testing.T) {
	res, err := singleQuiz().Grade(nil)
	require.NoError(t, err)
	assert.False(t, res.Correct)
}

func TestGradeMultiple(t *testing.T) {
	q := multiQuiz()

	// Exact match.
	res, err := q.Grade([]int{0, 1, 3})
	require.NoError(t, err)
	assert.True(t, res.Correct)
	assert.Equal(t, 1.0, res.Score)

	// Partial credit: two right picks, no wrong ones.
	res, err = q.Grade([]int{0, 1})
	require.NoError(t, err)
	assert.False(t, res.Correct)
	assert.InDelta(t, 2.0/3.0, res.Score, 1e-9)

	// A wrong pick cancels a right one.
	res, err = q.Grade([]int{0, 2})
	require.NoError(t, err)
	assert.False(t, res.Correct)
	assert.Equal(t, 0.0, res.Score)

	// All correct plus a wrong one is not fully correct.
	res, err = q.Grade([]int{0, 1, 2, 3})
	require.NoError(t, err)
	assert.False(t, res.Correct)
	assert.InDelta(t, 2.0/3.0, res.Score, 1e-9)
}

func TestGradeDeduplicatesSelections(t *testing.T) {
	res, err := singleQuiz().Grade([]int{0, 0, 0})
	require.NoError(t, err)
	assert.True(t, res.Correct)
}

func TestGradeOutOfRange(t *testing.T) {
	_, err := singleQuiz().Grade([]int{7})
	assert.Error(t, err)

	_, err = singleQuiz().Grade([]int{-1})
	assert.Error(t, err)
}

func TestGradeDegenerateQuizzes(t *testing.T) {
	_, err := (&widget.Quiz{}).Grade([]int{0})
	assert.Error(t, err, "no options")

	noCorrect := &widget.Quiz{Options: []widget.QuizOption{{Text: "a"}}}
	_, err = noCorrect.Grade([]int{0})
	assert.Error(t, err, "no correct option")
}

func TestGradeTrueFalse(t *testing.T) {
	q := &widget.Quiz{
		Question: "chmod 640 gives the group write access.",
		Type:     widget.QuizTrueFalse,
		Options: []widget.QuizOption{
			{Text: "True"},
			{Text: "False", Correct: true, Feedback: "640 is rw-r-----: group gets read only."},
		},
	}

	res, err := q.Grade([]int{1})
	require.NoError(t, err)
	assert.True(t, res.Correct)
	assert.Equal(t, []string{"640 is rw-r-----: group gets read only."}, res.Feedback)

	res, err = q.Grade([]int{0})
	require.NoError(t, err)
	assert.False(t, res.Correct)
}
