package achievements

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/abhisek/onthi/internal/sampler"
	"github.com/abhisek/onthi/internal/scoring"
	"github.com/abhisek/onthi/internal/store"
)

// SpeedRunLimit is the longest exam that still counts as a speed run.
const SpeedRunLimit = 5 * time.Minute

// Summary is what the engine needs to know about a finished exam.
type Summary struct {
	Passed        bool
	Percent       int
	CriticalWrong int
	Mode          sampler.Mode
	Duration      time.Duration
	FinishedAt    time.Time // local time; drives the streak day and NightOwl
	Outcomes      []scoring.Outcome
}

// SummaryFrom builds a Summary from a scored exam.
func SummaryFrom(r scoring.Result, mode sampler.Mode, duration time.Duration, finishedAt time.Time) Summary {
	return Summary{
		Passed:        r.Passed,
		Percent:       r.Percent,
		CriticalWrong: r.CriticalWrong,
		Mode:          mode,
		Duration:      duration,
		FinishedAt:    finishedAt,
		Outcomes:      r.Outcomes,
	}
}

// Result is the outcome of one evaluation.
type Result struct {
	All           []ID
	NewlyUnlocked []ID
	Streak        int
}

// Engine evaluates unlock rules against the persisted state.
type Engine struct {
	store *store.Store
	log   zerolog.Logger
}

// NewEngine creates an Engine backed by st.
func NewEngine(st *store.Store, log zerolog.Logger) *Engine {
	return &Engine{
		store: st,
		log:   log.With().Str("component", "achievements").Logger(),
	}
}

// Evaluate advances the streak and unlocks every achievement the summary
// earns. Streak achievements count completed exams; the rest require a pass.
// Already unlocked achievements are never reported again.
func (e *Engine) Evaluate(ctx context.Context, sum Summary) (Result, error) {
	streak := AdvanceStreak(e.store.Streak(ctx), sum.FinishedAt)
	if err := e.store.SaveStreak(ctx, streak); err != nil {
		return Result{}, fmt.Errorf("save streak: %w", err)
	}

	all := FromStrings(e.store.Achievements(ctx))
	unlocked := make(map[ID]bool, len(all))
	for _, id := range all {
		unlocked[id] = true
	}

	var newly []ID
	unlock := func(id ID, earned bool) {
		if earned && !unlocked[id] {
			unlocked[id] = true
			all = append(all, id)
			newly = append(newly, id)
		}
	}

	for _, m := range streakMilestones {
		unlock(m.id, streak.Count >= m.days)
	}

	if sum.Passed {
		unlock(FirstPass, true)
		unlock(PerfectScore, sum.Percent == 100)
		unlock(NightOwl, sum.FinishedAt.Hour() < 4)
		unlock(SpeedRun, sum.Duration <= SpeedRunLimit)
		unlock(LearnFromMistakes, sum.Mode == sampler.ModeWrong)
		unlock(DiemLietMaster, sum.CriticalWrong == 0)
		unlock(SignMaster, allImageQuestionsCorrect(sum.Outcomes))
	}

	if len(newly) > 0 {
		if err := e.store.SaveAchievements(ctx, Strings(all)); err != nil {
			return Result{}, fmt.Errorf("save achievements: %w", err)
		}
		e.log.Info().
			Strs("unlocked", Strings(newly)).
			Int("streak", streak.Count).
			Msg("achievements unlocked")
	}

	return Result{All: all, NewlyUnlocked: newly, Streak: streak.Count}, nil
}

// Unlocked returns the persisted achievements.
func (e *Engine) Unlocked(ctx context.Context) []ID {
	return FromStrings(e.store.Achievements(ctx))
}

// CurrentStreak returns the persisted streak count.
func (e *Engine) CurrentStreak(ctx context.Context) int {
	return e.store.Streak(ctx).Count
}

// allImageQuestionsCorrect reports whether at least one answered question
// carried an image and every such answer was correct.
func allImageQuestionsCorrect(outcomes []scoring.Outcome) bool {
	seen := false
	for _, o := range outcomes {
		if !o.Answered || !o.HasImage {
			continue
		}
		if !o.IsCorrect {
			return false
		}
		seen = true
	}
	return seen
}
