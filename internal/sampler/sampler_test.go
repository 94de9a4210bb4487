package sampler

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/onthi/internal/questionbank"
	"github.com/abhisek/onthi/internal/questionbank/qbtest"
)

func testRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func countCritical(qs []questionbank.Question) int {
	n := 0
	for _, q := range qs {
		if q.IsCritical {
			n++
		}
	}
	return n
}

func assertUnique(t *testing.T, qs []questionbank.Question) {
	t.Helper()
	seen := make(map[int]bool)
	for _, q := range qs {
		require.False(t, seen[q.ID], "duplicate id %d", q.ID)
		seen[q.ID] = true
	}
}

func TestSample_RandomShape(t *testing.T) {
	bank := qbtest.Bank(qbtest.Spec{Critical: 20, Signs: 30, Regular: 200})
	for seed := uint64(0); seed < 50; seed++ {
		got := Sample(ModeRandom, bank, Context{}, testRand(seed))
		require.Len(t, got, ExamSize)
		assert.Equal(t, ExamCritical, countCritical(got))
		assertUnique(t, got)
	}
}

func TestSample_RandomFewCritical(t *testing.T) {
	tests := []struct {
		name         string
		spec         qbtest.Spec
		wantLen      int
		wantCritical int
	}{
		{"one critical", qbtest.Spec{Critical: 1, Regular: 100}, 25, 1},
		{"no critical", qbtest.Spec{Regular: 100}, 25, 0},
		{"small bank", qbtest.Spec{Critical: 3, Regular: 5}, 7, 2},
		{"only critical", qbtest.Spec{Critical: 10}, 2, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sample(ModeRandom, qbtest.Bank(tt.spec), Context{}, testRand(1))
			assert.Len(t, got, tt.wantLen)
			assert.Equal(t, tt.wantCritical, countCritical(got))
			assertUnique(t, got)
		})
	}
}

func TestSample_SpeedMatchesExamShape(t *testing.T) {
	bank := qbtest.Bank(qbtest.Spec{Critical: 5, Regular: 60})
	got := Sample(ModeSpeed, bank, Context{}, testRand(7))
	assert.Len(t, got, ExamSize)
	assert.Equal(t, ExamCritical, countCritical(got))
}

func TestSample_Deterministic(t *testing.T) {
	bank := qbtest.Bank(qbtest.Spec{Critical: 5, Regular: 60})
	a := questionbank.IDs(Sample(ModeRandom, bank, Context{}, testRand(42)))
	b := questionbank.IDs(Sample(ModeRandom, bank, Context{}, testRand(42)))
	assert.Equal(t, a, b)
}

func TestSample_Full(t *testing.T) {
	bank := qbtest.Bank(qbtest.Spec{Critical: 3, Regular: 30})

	got := Sample(ModeFull, bank, Context{}, testRand(3))
	assert.ElementsMatch(t, questionbank.IDs(bank.All()), questionbank.IDs(got))

	limited := Sample(ModeFull, bank, Context{Limit: 10}, testRand(3))
	assert.Len(t, limited, 10)
	assertUnique(t, limited)

	over := Sample(ModeFull, bank, Context{Limit: 500}, testRand(3))
	assert.Len(t, over, bank.Len())
}

func TestSample_Wrong(t *testing.T) {
	bank := qbtest.Bank(qbtest.Spec{Critical: 2, Regular: 20})

	got := Sample(ModeWrong, bank, Context{WrongIDs: []int{3, 7, 11, 999}}, testRand(5))
	assert.ElementsMatch(t, []int{3, 7, 11}, questionbank.IDs(got))

	capped := Sample(ModeWrong, bank, Context{WrongIDs: []int{3, 7, 11}, Limit: 2}, testRand(5))
	assert.Len(t, capped, 2)
	for _, q := range capped {
		assert.Contains(t, []int{3, 7, 11}, q.ID)
	}

	assert.Empty(t, Sample(ModeWrong, bank, Context{}, testRand(5)))
}

func TestSample_FilterModes(t *testing.T) {
	bank := qbtest.Bank(qbtest.Spec{Critical: 4, Signs: 6, Regular: 10})

	critical := Sample(ModeCritical, bank, Context{}, testRand(1))
	assert.Equal(t, []int{1, 2, 3, 4}, questionbank.IDs(critical))

	signs := Sample(ModeSigns, bank, Context{}, testRand(1))
	assert.Equal(t, []int{5, 6, 7, 8, 9, 10}, questionbank.IDs(signs))

	byCat := Sample(ModeCategory, bank, Context{Category: questionbank.CategorySigns}, testRand(1))
	assert.Equal(t, questionbank.IDs(signs), questionbank.IDs(byCat))
	for _, q := range Sample(ModeCategory, bank, Context{Category: questionbank.CategoryConcepts}, testRand(1)) {
		assert.Equal(t, questionbank.CategoryConcepts, q.Category)
	}
}

func TestSample_CustomKeepsMembership(t *testing.T) {
	bank := qbtest.Bank(qbtest.Spec{Regular: 30})
	got := Sample(ModeCustom, bank, Context{CustomIDs: []int{20, 2, 2, 15, 404}}, testRand(1))
	assert.Equal(t, []int{2, 15, 20}, questionbank.IDs(got))
}

func TestSample_EmptyBank(t *testing.T) {
	empty, err := questionbank.New(nil)
	require.NoError(t, err)
	for _, m := range AllModes() {
		assert.Empty(t, Sample(m, empty, Context{WrongIDs: []int{1}}, testRand(1)), "mode %s", m)
	}
	assert.Empty(t, Sample(ModeRandom, nil, Context{}, testRand(1)))
}

func TestSample_UnknownMode(t *testing.T) {
	bank := qbtest.Bank(qbtest.Spec{Regular: 5})
	assert.Empty(t, Sample(Mode("bogus"), bank, Context{}, testRand(1)))
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("wrong")
	require.NoError(t, err)
	assert.Equal(t, ModeWrong, m)

	_, err = ParseMode("nope")
	assert.Error(t, err)
}
