// Package controller runs practice and exam sessions end to end: sampling,
// answer commits, scoring, persistence and achievements.
package controller

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/rs/zerolog"

	"github.com/abhisek/onthi/internal/achievements"
	"github.com/abhisek/onthi/internal/questionbank"
	"github.com/abhisek/onthi/internal/sampler"
	"github.com/abhisek/onthi/internal/scoring"
	"github.com/abhisek/onthi/internal/session"
	"github.com/abhisek/onthi/internal/store"
)

// Result is what a finished session reports to the presentation layer.
type Result struct {
	scoring.Result

	SessionID     string            `json:"sessionId"`
	Kind          session.Kind      `json:"kind"`
	Mode          sampler.Mode      `json:"mode"`
	Variant       session.Variant   `json:"variant,omitempty"`
	Duration      time.Duration     `json:"duration"`
	TimedOut      bool              `json:"timedOut"`
	NewlyUnlocked []achievements.ID `json:"newlyUnlocked"`
	Streak        int               `json:"streak"`
}

// Feedback is the outcome of a practice submit.
type Feedback struct {
	Question  questionbank.Question
	Selected  int
	Correct   bool
	Submitted bool // false when there was nothing to submit
}

// Options configures a Controller. Zero values get defaults.
type Options struct {
	Rand   *rand.Rand
	Now    func() time.Time
	Logger zerolog.Logger
}

// Controller orchestrates sessions. It is meant for a single caller at a
// time, like the sessions it drives.
type Controller struct {
	bank   *questionbank.Bank
	store  *store.Store
	engine *achievements.Engine
	rng    *rand.Rand
	now    func() time.Time
	log    zerolog.Logger

	// finished remembers results so repeated Finish calls are no-ops.
	finished map[string]Result
	// uncommitted holds exam results whose persistence failed. The next
	// Finish or Tick retries them.
	uncommitted map[string]Result
}

// New creates a Controller over bank and st.
func New(bank *questionbank.Bank, st *store.Store, opts Options) *Controller {
	if opts.Rand == nil {
		opts.Rand = sampler.NewRand()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Controller{
		bank:     bank,
		store:    st,
		engine:   achievements.NewEngine(st, opts.Logger),
		rng:      opts.Rand,
		now:      opts.Now,
		log:      opts.Logger.With().Str("component", "controller").Logger(),
		finished: make(map[string]Result),

		uncommitted: make(map[string]Result),
	}
}

// Bank returns the question bank.
func (c *Controller) Bank() *questionbank.Bank { return c.bank }

// Store returns the persistence store.
func (c *Controller) Store() *store.Store { return c.store }

// Achievements returns the achievement engine.
func (c *Controller) Achievements() *achievements.Engine { return c.engine }

// Now returns the controller's clock reading.
func (c *Controller) Now() time.Time { return c.now() }

// Start validates req, samples the questions and starts a session. A mode
// with no candidates yields an empty, in-progress session; callers should
// show guidance and finish it.
func (c *Controller) Start(ctx context.Context, req StartRequest) (*session.Session, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var s *session.Session
	if req.Kind == session.KindExam {
		s = session.NewExam(req.Variant)
	} else {
		s = session.NewPractice(req.Mode)
	}

	sctx := sampler.Context{
		Category:  req.Category,
		CustomIDs: req.CustomIDs,
		Limit:     req.Limit,
	}
	if s.Mode == sampler.ModeWrong {
		sctx.WrongIDs = c.store.WrongAnswerIDs(ctx)
	}
	if s.Mode == sampler.ModeCustom && len(sctx.CustomIDs) == 0 {
		sctx.CustomIDs = questionbank.IDs(c.bank.Search(req.SearchTerm))
	}

	questions := sampler.Sample(s.Mode, c.bank, sctx, c.rng)
	if err := s.Start(questions, c.now()); err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}

	c.log.Debug().
		Str("session_id", s.ID).
		Str("kind", string(s.Kind)).
		Str("mode", string(s.Mode)).
		Int("questions", s.Len()).
		Msg("session started")
	return s, nil
}

// Submit locks the current practice answer and commits it: a wrong answer
// replaces the stored record for the question, a correct one clears it.
func (c *Controller) Submit(ctx context.Context, s *session.Session) (Feedback, error) {
	q, correct, ok := s.Submit()
	if !ok {
		return Feedback{Question: q}, nil
	}
	selected, _ := s.SelectionFor(q.ID)
	fb := Feedback{Question: q, Selected: selected, Correct: correct, Submitted: true}

	var err error
	if correct {
		err = c.store.ClearWrongAnswer(ctx, q.ID)
	} else {
		err = c.store.UpsertWrongAnswer(ctx, store.WrongAnswerRecord{
			QuestionID:     q.ID,
			SelectedAnswer: selected,
			CorrectAnswer:  q.CorrectAnswer,
			Timestamp:      c.now(),
		})
	}
	if err != nil {
		return fb, fmt.Errorf("commit answer for question %d: %w", q.ID, err)
	}
	return fb, nil
}

// Finish ends s and returns its result. The first call persists exam
// outcomes; later calls return the same result without side effects.
func (c *Controller) Finish(ctx context.Context, s *session.Session) (Result, error) {
	return c.finish(ctx, s, false)
}

// Tick finishes s if its time limit has passed. done reports whether the
// session is finished after the call.
func (c *Controller) Tick(ctx context.Context, s *session.Session) (res Result, done bool, err error) {
	if s.Status == session.StatusFinished {
		res, err = c.finish(ctx, s, false)
		return res, true, err
	}
	if !s.Expired(c.now()) {
		return Result{}, false, nil
	}
	res, err = c.finish(ctx, s, true)
	return res, true, err
}

func (c *Controller) finish(ctx context.Context, s *session.Session, timedOut bool) (Result, error) {
	now := c.now()
	if !s.Finish(now) {
		if res, ok := c.uncommitted[s.ID]; ok {
			return c.commit(ctx, s, res)
		}
		return c.finished[s.ID], nil
	}

	res := Result{
		Result:    s.Score(),
		SessionID: s.ID,
		Kind:      s.Kind,
		Mode:      s.Mode,
		Variant:   s.Variant,
		Duration:  s.Duration(now),
		TimedOut:  timedOut,
	}

	if s.Empty() || s.Kind != session.KindExam {
		c.finished[s.ID] = res
		return res, nil
	}

	return c.commit(ctx, s, res)
}

// commit persists an exam result. On failure the result is kept for a retry.
func (c *Controller) commit(ctx context.Context, s *session.Session, res Result) (Result, error) {
	if err := c.commitExam(ctx, s, &res); err != nil {
		c.uncommitted[s.ID] = res
		c.log.Warn().Err(err).Str("session_id", s.ID).Msg("exam not saved")
		return res, err
	}
	delete(c.uncommitted, s.ID)
	c.finished[s.ID] = res

	c.log.Info().
		Str("session_id", s.ID).
		Str("variant", string(s.Variant)).
		Int("score", res.Percent).
		Bool("passed", res.Passed).
		Bool("timed_out", res.TimedOut).
		Msg("exam finished")
	return res, nil
}

// commitExam merges wrong answers, evaluates achievements and appends the
// history entry.
func (c *Controller) commitExam(ctx context.Context, s *session.Session, res *Result) error {
	var wrong []store.WrongAnswerRecord
	var correct []int
	for _, o := range res.Outcomes {
		switch {
		case o.IsCorrect:
			correct = append(correct, o.QuestionID)
		case o.Answered:
			wrong = append(wrong, store.WrongAnswerRecord{
				QuestionID:     o.QuestionID,
				SelectedAnswer: o.Selected,
				CorrectAnswer:  o.Correct,
				Timestamp:      s.FinishedAt,
			})
		}
	}
	if err := c.store.MergeWrongAnswers(ctx, wrong, correct); err != nil {
		return fmt.Errorf("merge wrong answers: %w", err)
	}

	eval, err := c.engine.Evaluate(ctx, achievements.SummaryFrom(res.Result, s.Mode, res.Duration, s.FinishedAt))
	if err != nil {
		return fmt.Errorf("evaluate achievements: %w", err)
	}
	// A retried commit finds earlier unlocks already stored.
	for _, id := range eval.NewlyUnlocked {
		if !slices.Contains(res.NewlyUnlocked, id) {
			res.NewlyUnlocked = append(res.NewlyUnlocked, id)
		}
	}
	res.Streak = eval.Streak

	entry := store.HistoryEntry{
		Timestamp:          s.FinishedAt,
		Score:              res.Percent,
		CorrectCount:       res.Correct,
		WrongCount:         res.Wrong,
		UnansweredCount:    res.Unanswered,
		TotalQuestions:     res.Total,
		IsPassed:           res.Passed,
		HasDiemLietWrong:   res.HasCriticalWrong(),
		DiemLietWrongCount: res.CriticalWrong,
		Mode:               string(s.Mode),
		Variant:            string(s.Variant),
		DurationSeconds:    int(res.Duration / time.Second),
		NewAchievements:    achievements.Strings(res.NewlyUnlocked),
	}
	if len(entry.NewAchievements) == 0 {
		entry.NewAchievements = nil
	}
	entry.Achievements = entry.NewAchievements
	if err := c.store.AppendHistory(ctx, entry); err != nil {
		return fmt.Errorf("append history: %w", err)
	}
	return nil
}

// DiemLietStats summarizes progress on critical questions.
type DiemLietStats struct {
	Total    int
	Answered int // submitted in the given practice session
	Correct  int // answered and without a stored wrong answer
	Wrong    int // with a stored wrong answer
}

// Progress returns Answered as a 0–100 share of Total.
func (d DiemLietStats) Progress() int {
	return scoring.Percent(d.Answered, d.Total)
}

// Accuracy returns Correct as a 0–100 share of Answered.
func (d DiemLietStats) Accuracy() int {
	return scoring.Percent(d.Correct, d.Answered)
}

// DiemLietStats reports critical-question progress from the stored wrong
// answers and, when s is not nil, the answers submitted in s.
func (c *Controller) DiemLietStats(ctx context.Context, s *session.Session) DiemLietStats {
	wrong := make(map[int]bool)
	for _, id := range c.store.WrongAnswerIDs(ctx) {
		wrong[id] = true
	}

	var stats DiemLietStats
	for _, q := range c.bank.Critical() {
		stats.Total++
		answered := s != nil && s.IsSubmitted(q.ID)
		if answered {
			stats.Answered++
			if !wrong[q.ID] {
				stats.Correct++
			}
		}
		if wrong[q.ID] {
			stats.Wrong++
		}
	}
	return stats
}
