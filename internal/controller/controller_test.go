package controller

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/onthi/internal/achievements"
	"github.com/abhisek/onthi/internal/questionbank"
	"github.com/abhisek/onthi/internal/questionbank/qbtest"
	"github.com/abhisek/onthi/internal/sampler"
	"github.com/abhisek/onthi/internal/session"
	"github.com/abhisek/onthi/internal/store"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestController(t *testing.T, spec qbtest.Spec) (*Controller, *store.Store, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2024, 1, 1, 10, 0, 0, 0, time.Local)}
	st := store.New(store.NewMemoryKV(), zerolog.Nop())
	c := New(qbtest.Bank(spec), st, Options{
		Rand: rand.New(rand.NewPCG(1, 2)),
		Now:  clock.now,
	})
	return c, st, clock
}

// answerAll selects, for every question, the correct option when pick
// returns true and a wrong one otherwise.
func answerAll(s *session.Session, pick func(i int, q questionbank.Question) bool) {
	for i, q := range s.Questions {
		s.GoTo(i)
		if pick(i, q) {
			s.Select(q.CorrectAnswer)
		} else {
			s.Select(qbtest.Wrong(q))
		}
	}
}

func TestScenarioA_PerfectRandomExam(t *testing.T) {
	c, st, clock := newTestController(t, qbtest.Spec{Critical: 2, Regular: 248})
	ctx := context.Background()

	s, err := c.Start(ctx, Exam(session.VariantStandard))
	require.NoError(t, err)
	require.Equal(t, 25, s.Len())

	answerAll(s, func(int, questionbank.Question) bool { return true })
	clock.advance(12 * time.Minute)

	res, err := c.Finish(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, 100, res.Percent)
	assert.True(t, res.Passed)
	assert.Contains(t, res.NewlyUnlocked, achievements.PerfectScore)
	assert.Contains(t, res.NewlyUnlocked, achievements.FirstPass)
	assert.NotContains(t, res.NewlyUnlocked, achievements.SpeedRun)
	assert.Equal(t, 1, res.Streak)

	h := st.History(ctx)
	require.Len(t, h, 1)
	assert.Equal(t, 100, h[0].Score)
	assert.Equal(t, 25, h[0].TotalQuestions)
	assert.Equal(t, 720, h[0].DurationSeconds)
	assert.Contains(t, h[0].NewAchievements, string(achievements.PerfectScore))
	assert.Equal(t, h[0].NewAchievements, h[0].Achievements)
}

func TestScenarioB_TwentyOfTwentyFiveFails(t *testing.T) {
	c, _, clock := newTestController(t, qbtest.Spec{Critical: 2, Regular: 248})
	ctx := context.Background()

	s, err := c.Start(ctx, Exam(session.VariantStandard))
	require.NoError(t, err)

	// Every critical question right, five regular ones wrong.
	missed := 0
	answerAll(s, func(_ int, q questionbank.Question) bool {
		if !q.IsCritical && missed < 5 {
			missed++
			return false
		}
		return true
	})
	clock.advance(time.Minute)

	res, err := c.Finish(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, 20, res.Correct)
	assert.Equal(t, 0, res.CriticalWrong)
	assert.False(t, res.Passed)
	assert.NotContains(t, res.NewlyUnlocked, achievements.FirstPass)
}

func TestScenarioC_EmptyWrongSession(t *testing.T) {
	c, st, _ := newTestController(t, qbtest.Spec{Critical: 2, Regular: 48})
	ctx := context.Background()

	s, err := c.Start(ctx, Practice(sampler.ModeWrong))
	require.NoError(t, err)
	assert.True(t, s.Empty())

	res, err := c.Finish(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Total)
	assert.Empty(t, st.History(ctx))
	assert.Equal(t, store.StreakState{}, st.Streak(ctx))
}

func TestEmptyExamPersistsNothing(t *testing.T) {
	c, st, _ := newTestController(t, qbtest.Spec{Regular: 10})
	ctx := context.Background()

	s, err := c.Start(ctx, Exam(session.VariantWrong))
	require.NoError(t, err)
	require.True(t, s.Empty())

	res, err := c.Finish(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Total)
	assert.Empty(t, st.History(ctx))
	assert.Empty(t, st.Achievements(ctx))
}

func TestPracticeSubmitCommits(t *testing.T) {
	c, st, _ := newTestController(t, qbtest.Spec{Regular: 10})
	ctx := context.Background()

	// Two separate sessions answer question 7 wrong: one record remains.
	for _, opt := range []int{0, 1} {
		s, err := c.Start(ctx, StartRequest{Kind: session.KindPractice, Mode: sampler.ModeCustom, CustomIDs: []int{7}})
		require.NoError(t, err)
		q, _ := s.CurrentQuestion()
		require.Equal(t, 7, q.ID)
		require.NotEqual(t, q.CorrectAnswer, opt, "fixture: option must be wrong")
		s.Select(opt)

		fb, err := c.Submit(ctx, s)
		require.NoError(t, err)
		assert.True(t, fb.Submitted)
		assert.False(t, fb.Correct)
	}
	recs := st.WrongAnswers(ctx)
	require.Len(t, recs, 1)
	assert.Equal(t, 7, recs[0].QuestionID)
	assert.Equal(t, 1, recs[0].SelectedAnswer)

	// Answering it correctly later clears the record.
	s, err := c.Start(ctx, Practice(sampler.ModeWrong))
	require.NoError(t, err)
	require.Equal(t, 1, s.Len())
	q, _ := s.CurrentQuestion()
	s.Select(q.CorrectAnswer)
	fb, err := c.Submit(ctx, s)
	require.NoError(t, err)
	assert.True(t, fb.Correct)
	assert.Empty(t, st.WrongAnswers(ctx))
}

func TestSubmitWithoutSelectionIsNoop(t *testing.T) {
	c, st, _ := newTestController(t, qbtest.Spec{Regular: 3})
	ctx := context.Background()

	s, err := c.Start(ctx, Practice(sampler.ModeFull))
	require.NoError(t, err)
	fb, err := c.Submit(ctx, s)
	require.NoError(t, err)
	assert.False(t, fb.Submitted)
	assert.Empty(t, st.WrongAnswers(ctx))
}

func TestPracticeFinishDoesNotRecordHistory(t *testing.T) {
	c, st, _ := newTestController(t, qbtest.Spec{Regular: 5})
	ctx := context.Background()

	s, err := c.Start(ctx, Practice(sampler.ModeFull))
	require.NoError(t, err)
	for i, q := range s.Questions {
		s.GoTo(i)
		s.Select(q.CorrectAnswer)
		_, err := c.Submit(ctx, s)
		require.NoError(t, err)
	}

	res, err := c.Finish(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, 5, res.Correct)
	assert.Empty(t, st.History(ctx))
	assert.Empty(t, st.Achievements(ctx))
}

func TestPracticeFinishIgnoresUnsubmitted(t *testing.T) {
	c, st, _ := newTestController(t, qbtest.Spec{Regular: 10})
	ctx := context.Background()

	s, err := c.Start(ctx, Practice(sampler.ModeFull))
	require.NoError(t, err)
	answerAll(s, func(i int, _ questionbank.Question) bool { return i == 0 })

	s.GoTo(0)
	_, err = c.Submit(ctx, s)
	require.NoError(t, err)

	res, err := c.Finish(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Correct)
	assert.Equal(t, 0, res.Wrong)
	assert.Equal(t, 9, res.Unanswered)
	assert.Empty(t, st.WrongAnswers(ctx))
}

// flakyKV fails the first n writes of one key.
type flakyKV struct {
	*store.MemoryKV
	key   string
	fails int
}

func (f *flakyKV) Set(ctx context.Context, key, value string) error {
	if key == f.key && f.fails > 0 {
		f.fails--
		return errors.New("disk full")
	}
	return f.MemoryKV.Set(ctx, key, value)
}

func TestFailedExamCommitIsRetried(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 10, 0, 0, 0, time.Local)}
	kv := &flakyKV{MemoryKV: store.NewMemoryKV(), key: store.KeyExamHistory, fails: 1}
	st := store.New(kv, zerolog.Nop())
	c := New(qbtest.Bank(qbtest.Spec{Critical: 2, Regular: 60}), st, Options{
		Rand: rand.New(rand.NewPCG(1, 2)),
		Now:  clock.now,
	})
	ctx := context.Background()

	s, err := c.Start(ctx, Exam(session.VariantStandard))
	require.NoError(t, err)
	answerAll(s, func(int, questionbank.Question) bool { return true })
	clock.advance(10 * time.Minute)

	_, err = c.Finish(ctx, s)
	require.Error(t, err)
	assert.Empty(t, st.History(ctx))

	res, err := c.Finish(ctx, s)
	require.NoError(t, err)
	assert.Contains(t, res.NewlyUnlocked, achievements.FirstPass)
	assert.Equal(t, 1, res.Streak)

	h := st.History(ctx)
	require.Len(t, h, 1)
	assert.Contains(t, h[0].Achievements, string(achievements.FirstPass))

	again, done, err := c.Tick(ctx, s)
	require.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, res.Percent, again.Percent)
	assert.Len(t, st.History(ctx), 1)
}

func TestExamMergesWrongAnswers(t *testing.T) {
	c, st, _ := newTestController(t, qbtest.Spec{Critical: 2, Regular: 30})
	ctx := context.Background()

	s, err := c.Start(ctx, Exam(session.VariantStandard))
	require.NoError(t, err)

	first := s.Questions[0]
	second := s.Questions[1]
	require.NoError(t, st.UpsertWrongAnswer(ctx, store.WrongAnswerRecord{QuestionID: second.ID}))

	s.GoTo(0)
	s.Select(qbtest.Wrong(first))
	s.GoTo(1)
	s.Select(second.CorrectAnswer)

	_, err = c.Finish(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, []int{first.ID}, st.WrongAnswerIDs(ctx))
}

func TestFinishIdempotent(t *testing.T) {
	c, st, clock := newTestController(t, qbtest.Spec{Critical: 2, Regular: 30})
	ctx := context.Background()

	s, err := c.Start(ctx, Exam(session.VariantStandard))
	require.NoError(t, err)
	answerAll(s, func(int, questionbank.Question) bool { return true })

	first, err := c.Finish(ctx, s)
	require.NoError(t, err)
	clock.advance(time.Hour)
	second, err := c.Finish(ctx, s)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, st.History(ctx), 1)
}

func TestTick(t *testing.T) {
	c, st, clock := newTestController(t, qbtest.Spec{Critical: 2, Regular: 30})
	ctx := context.Background()

	s, err := c.Start(ctx, Exam(session.VariantSpeed))
	require.NoError(t, err)

	clock.advance(4 * time.Minute)
	_, done, err := c.Tick(ctx, s)
	require.NoError(t, err)
	assert.False(t, done)

	clock.advance(time.Minute)
	res, done, err := c.Tick(ctx, s)
	require.NoError(t, err)
	assert.True(t, done)
	assert.True(t, res.TimedOut)
	assert.Equal(t, 25, res.Unanswered)

	// A manual finish racing the timer is a no-op.
	again, err := c.Finish(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, res, again)
	assert.Len(t, st.History(ctx), 1)
}

func TestStartRequestValidation(t *testing.T) {
	c, _, _ := newTestController(t, qbtest.Spec{Regular: 5})
	ctx := context.Background()

	tests := []struct {
		name string
		req  StartRequest
	}{
		{"missing kind", StartRequest{Mode: sampler.ModeFull}},
		{"bad kind", StartRequest{Kind: "quiz", Mode: sampler.ModeFull}},
		{"exam without variant", StartRequest{Kind: session.KindExam}},
		{"bad variant", StartRequest{Kind: session.KindExam, Variant: "marathon"}},
		{"practice without mode", StartRequest{Kind: session.KindPractice}},
		{"bad mode", StartRequest{Kind: session.KindPractice, Mode: "bogus"}},
		{"category missing", StartRequest{Kind: session.KindPractice, Mode: sampler.ModeCategory}},
		{"custom empty", StartRequest{Kind: session.KindPractice, Mode: sampler.ModeCustom}},
		{"negative id", StartRequest{Kind: session.KindPractice, Mode: sampler.ModeCustom, CustomIDs: []int{-1}}},
		{"negative limit", StartRequest{Kind: session.KindPractice, Mode: sampler.ModeFull, Limit: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Start(ctx, tt.req)
			assert.True(t, errors.Is(err, ErrInvalidRequest), "err = %v", err)
		})
	}
}

func TestStartWithSearchTerm(t *testing.T) {
	c, _, _ := newTestController(t, qbtest.Spec{Regular: 30})
	s, err := c.Start(context.Background(), StartRequest{
		Kind:       session.KindPractice,
		Mode:       sampler.ModeCustom,
		SearchTerm: "question 2",
	})
	require.NoError(t, err)
	// "Question 2" and "Question 20".."Question 29".
	assert.Equal(t, 11, s.Len())
}

func TestDiemLietStats(t *testing.T) {
	c, st, _ := newTestController(t, qbtest.Spec{Critical: 4, Regular: 6})
	ctx := context.Background()

	require.NoError(t, st.UpsertWrongAnswer(ctx, store.WrongAnswerRecord{QuestionID: 2}))
	require.NoError(t, st.UpsertWrongAnswer(ctx, store.WrongAnswerRecord{QuestionID: 9}))

	s, err := c.Start(ctx, Practice(sampler.ModeCritical))
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		s.GoTo(i)
		q, _ := s.CurrentQuestion()
		s.Select(q.CorrectAnswer)
		_, err := c.Submit(ctx, s)
		require.NoError(t, err)
	}

	stats := c.DiemLietStats(ctx, s)
	assert.Equal(t, DiemLietStats{Total: 4, Answered: 2, Correct: 2, Wrong: 0}, stats)
	assert.Equal(t, 50, stats.Progress())
	assert.Equal(t, 100, stats.Accuracy())

	none := c.DiemLietStats(ctx, nil)
	assert.Equal(t, DiemLietStats{Total: 4}, none)
}
