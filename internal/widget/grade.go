package widget

import (
	"fmt"
	"sort"
)

// GradeResult is the server-side verdict for a quiz attempt.
type GradeResult struct {
	Correct bool
	// Score is 1.0 for a fully correct answer. Multiple-answer quizzes get
	// partial credit: right picks minus wrong picks over the number of
	// correct options, floored at zero.
	Score float64
	// Feedback collects the feedback strings of the selected options, in
	// option order.
	Feedback []string
}

// CorrectSet returns the ascending indexes of the correct options.
func (q *Quiz) CorrectSet() []int {
	var set []int
	for i, opt := range q.Options {
		if opt.Correct {
			set = append(set, i)
		}
	}
	return set
}

// Grade scores a set of selected option indexes (0-based). Selections are
// deduplicated. An out-of-range index is an error; a single-answer quiz
// with several selections is simply wrong.
func (q *Quiz) Grade(selected []int) (GradeResult, error) {
	if len(q.Options) == 0 {
		return GradeResult{}, fmt.Errorf("quiz has no options")
	}
	correct := q.CorrectSet()
	if len(correct) == 0 {
		return GradeResult{}, fmt.Errorf("quiz has no correct option")
	}

	picks := dedupe(selected)
	for _, idx := range picks {
		if idx < 0 || idx >= len(q.Options) {
			return GradeResult{}, fmt.Errorf("selection %d out of range (quiz has %d options)", idx, len(q.Options))
		}
	}

	res := GradeResult{}
	for _, idx := range picks {
		if fb := q.Options[idx].Feedback; fb != "" {
			res.Feedback = append(res.Feedback, fb)
		}
	}

	switch q.EffectiveType() {
	case QuizMultiple:
		hits, misses := 0, 0
		for _, idx := range picks {
			if q.Options[idx].Correct {
				hits++
			} else {
				misses++
			}
		}
		res.Correct = hits == len(correct) && misses == 0
		if res.Correct {
			res.Score = 1.0
		} else if hits > misses {
			res.Score = float64(hits-misses) / float64(len(correct))
		}
	default: // single, true-false
		res.Correct = len(picks) == 1 && q.Options[picks[0]].Correct
		if res.Correct {
			res.Score = 1.0
		}
	}

	return res, nil
}

func dedupe(in []int) []int {
	if len(in) <= 1 {
		return append([]int(nil), in...)
	}
	out := append([]int(nil), in...)
	sort.Ints(out)
	n := 1
	for i := 1; i < len(out); i++ {
		if out[i] != out[i-1] {
			out[n] = out[i]
			n++
		}
	}
	return out[:n]
}
