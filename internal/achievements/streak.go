package achievements

import (
	"time"

	"github.com/abhisek/onthi/internal/store"
)

// streakMilestones pairs each streak length with the achievement it unlocks.
var streakMilestones = []struct {
	days int
	id   ID
}{
	{3, Streak3},
	{7, Streak7},
	{30, Streak30},
}

// NextStreakMilestone returns the next streak length above current that
// unlocks an achievement, or 0 when all are behind.
func NextStreakMilestone(current int) int {
	for _, m := range streakMilestones {
		if m.days > current {
			return m.days
		}
	}
	return 0
}

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) string {
	return t.Format(store.DateLayout)
}

// DaysBetween returns the whole calendar days from one YYYY-MM-DD date to
// another. ok is false if either date fails to parse.
func DaysBetween(from, to string) (days int, ok bool) {
	a, err := time.Parse(store.DateLayout, from)
	if err != nil {
		return 0, false
	}
	b, err := time.Parse(store.DateLayout, to)
	if err != nil {
		return 0, false
	}
	// Both parse as UTC midnight, so the difference is an exact day multiple.
	return int(b.Sub(a).Hours() / 24), true
}

// AdvanceStreak applies an exam completed at finishedAt to st.
//
//   - no previous date: streak starts at 1
//   - same day: unchanged
//   - next day: +1
//   - later: back to 1
//   - earlier (clock moved backward): unchanged, and the stored date is kept
func AdvanceStreak(st store.StreakState, finishedAt time.Time) store.StreakState {
	today := DateOf(finishedAt)
	if st.LastDate == "" {
		return store.StreakState{Count: 1, LastDate: today}
	}

	diff, ok := DaysBetween(st.LastDate, today)
	switch {
	case !ok:
		return store.StreakState{Count: 1, LastDate: today}
	case diff < 0:
		if st.Count < 1 {
			st.Count = 1
		}
		return st
	case diff == 0:
		if st.Count < 1 {
			st.Count = 1
		}
	case diff == 1:
		st.Count++
	default:
		st.Count = 1
	}
	st.LastDate = today
	return st
}
