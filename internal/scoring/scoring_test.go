package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/onthi/internal/questionbank"
	"github.com/abhisek/onthi/internal/questionbank/qbtest"
)

// answer selects the correct option for the first correct questions, a wrong
// option for the next wrong ones and leaves the rest unanswered.
func answer(qs []questionbank.Question, correct, wrong int) map[int]int {
	sel := make(map[int]int)
	for i, q := range qs {
		switch {
		case i < correct:
			sel[q.ID] = q.CorrectAnswer
		case i < correct+wrong:
			sel[q.ID] = qbtest.Wrong(q)
		}
	}
	return sel
}

func TestPassThreshold(t *testing.T) {
	tests := []struct {
		total, want int
	}{
		{25, 21},
		{0, 1},
		{1, 1},
		{10, 9},
		{50, 42},
		{250, 210},
		{30, 26},
	}
	for _, tt := range tests {
		if got := PassThreshold(tt.total); got != tt.want {
			t.Errorf("PassThreshold(%d) = %d, want %d", tt.total, got, tt.want)
		}
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		part, total, want int
	}{
		{0, 0, 0},
		{25, 25, 100},
		{21, 25, 84},
		{1, 8, 13}, // 12.5 rounds up
		{1, 3, 33},
		{2, 3, 67},
	}
	for _, tt := range tests {
		if got := Percent(tt.part, tt.total); got != tt.want {
			t.Errorf("Percent(%d, %d) = %d, want %d", tt.part, tt.total, got, tt.want)
		}
	}
}

func TestScore_Counts(t *testing.T) {
	qs := qbtest.Questions(qbtest.Spec{Critical: 2, Regular: 23})
	r := Score(qs, answer(qs, 20, 3))

	assert.Equal(t, 25, r.Total)
	assert.Equal(t, 20, r.Correct)
	assert.Equal(t, 3, r.Wrong)
	assert.Equal(t, 2, r.Unanswered)
	assert.Equal(t, 80, r.Percent)
	assert.Equal(t, 0, r.CriticalWrong)
	assert.False(t, r.Passed)
	require.Len(t, r.Outcomes, 25)
	assert.Equal(t, -1, r.Outcomes[24].Selected)
	assert.False(t, r.Outcomes[24].Answered)
}

func TestScore_PassRule(t *testing.T) {
	regular := qbtest.Questions(qbtest.Spec{Regular: 25})
	r := Score(regular, answer(regular, 21, 4))
	assert.True(t, r.Passed, "21/25 with no critical wrong passes")

	// Critical questions come first in the synthetic set: 22 correct starting
	// after one wrong critical.
	withCritical := qbtest.Questions(qbtest.Spec{Critical: 2, Regular: 23})
	sel := make(map[int]int)
	sel[withCritical[0].ID] = qbtest.Wrong(withCritical[0])
	for _, q := range withCritical[1:23] {
		sel[q.ID] = q.CorrectAnswer
	}
	r = Score(withCritical, sel)
	assert.Equal(t, 22, r.Correct)
	assert.Equal(t, 1, r.CriticalWrong)
	assert.True(t, r.HasCriticalWrong())
	assert.False(t, r.Passed)
}

func TestScore_UnansweredCriticalIsNotCriticalWrong(t *testing.T) {
	qs := qbtest.Questions(qbtest.Spec{Critical: 1, Regular: 24})
	sel := make(map[int]int)
	for _, q := range qs[1:] {
		sel[q.ID] = q.CorrectAnswer
	}
	r := Score(qs, sel)
	assert.Equal(t, 0, r.CriticalWrong)
	assert.Equal(t, 1, r.Unanswered)
	assert.True(t, r.Passed)
}

func TestScore_Pure(t *testing.T) {
	qs := qbtest.Questions(qbtest.Spec{Critical: 2, Signs: 3, Regular: 20})
	sel := answer(qs, 15, 5)
	assert.Equal(t, Score(qs, sel), Score(qs, sel))
}

func TestScore_Empty(t *testing.T) {
	r := Score(nil, nil)
	assert.Equal(t, 0, r.Total)
	assert.Equal(t, 0, r.Percent)
	assert.False(t, r.Passed)
	assert.Empty(t, r.Outcomes)
}

func TestScore_Categories(t *testing.T) {
	bank := qbtest.Bank(qbtest.Spec{Signs: 2, Regular: 3})
	qs := bank.All()
	r := Score(qs, answer(qs, 3, 0))

	require.Len(t, r.Categories, 2)
	assert.Equal(t, questionbank.CategoryConcepts, r.Categories[0].Category)
	assert.Equal(t, 3, r.Categories[0].Total)
	assert.Equal(t, 1, r.Categories[0].Correct)
	assert.Equal(t, questionbank.CategorySigns, r.Categories[1].Category)
	assert.Equal(t, 2, r.Categories[1].Correct)
}
