// Package scoring computes exam and practice results from a question set and
// the selected answers. Everything here is pure.
package scoring

import "github.com/abhisek/onthi/internal/questionbank"

// Standard exam pass rule: 21 of 25 correct and no critical question wrong.
const (
	StandardTotal   = 25
	StandardPassing = 21
)

// PassThreshold returns the minimum correct answers needed to pass a set of
// total questions. The 21-of-25 ratio is scaled and rounded up for other
// sizes; an empty set cannot be passed.
func PassThreshold(total int) int {
	if total <= 0 {
		return 1
	}
	return (total*StandardPassing + StandardTotal - 1) / StandardTotal
}

// Outcome is the result for one question.
type Outcome struct {
	QuestionID int                   `json:"questionId"`
	Selected   int                   `json:"selected"` // -1 when unanswered
	Correct    int                   `json:"correctAnswer"`
	IsCorrect  bool                  `json:"isCorrect"`
	Answered   bool                  `json:"answered"`
	IsCritical bool                  `json:"isDiemLiet"`
	HasImage   bool                  `json:"hasImage"`
	Category   questionbank.Category `json:"category"`
}

// CategoryScore is the per-topic breakdown.
type CategoryScore struct {
	Category questionbank.Category `json:"category"`
	Total    int                   `json:"total"`
	Correct  int                   `json:"correct"`
}

// Result is the scored session.
type Result struct {
	Total         int             `json:"totalQuestions"`
	Correct       int             `json:"correctCount"`
	Wrong         int             `json:"wrongCount"`
	Unanswered    int             `json:"unansweredCount"`
	Percent       int             `json:"score"`
	CriticalWrong int             `json:"diemLietWrongCount"`
	Passed        bool            `json:"isPassed"`
	Outcomes      []Outcome       `json:"outcomes"`
	Categories    []CategoryScore `json:"categories"`
}

// HasCriticalWrong reports whether any critical question was answered wrong.
func (r Result) HasCriticalWrong() bool {
	return r.CriticalWrong > 0
}

// Score evaluates questions against selected (question ID → option index).
func Score(questions []questionbank.Question, selected map[int]int) Result {
	r := Result{
		Total:    len(questions),
		Outcomes: make([]Outcome, 0, len(questions)),
	}
	byCat := make(map[questionbank.Category]*CategoryScore)

	for _, q := range questions {
		o := Outcome{
			QuestionID: q.ID,
			Selected:   -1,
			Correct:    q.CorrectAnswer,
			IsCritical: q.IsCritical,
			HasImage:   q.HasImage(),
			Category:   q.Category,
		}
		if sel, ok := selected[q.ID]; ok {
			o.Selected = sel
			o.Answered = true
			o.IsCorrect = sel == q.CorrectAnswer
		}

		switch {
		case !o.Answered:
			r.Unanswered++
		case o.IsCorrect:
			r.Correct++
		case q.IsCritical:
			r.CriticalWrong++
		}

		cs, ok := byCat[q.Category]
		if !ok {
			cs = &CategoryScore{Category: q.Category}
			byCat[q.Category] = cs
		}
		cs.Total++
		if o.IsCorrect {
			cs.Correct++
		}
		r.Outcomes = append(r.Outcomes, o)
	}

	r.Wrong = r.Total - r.Correct - r.Unanswered
	r.Percent = Percent(r.Correct, r.Total)
	r.Passed = r.Total > 0 && r.Correct >= PassThreshold(r.Total) && r.CriticalWrong == 0

	for _, c := range questionbank.AllCategories() {
		if cs, ok := byCat[c]; ok {
			r.Categories = append(r.Categories, *cs)
		}
	}
	return r
}

// Percent returns part/total as a 0–100 integer rounded half up.
func Percent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return (part*200 + total) / (2 * total)
}
