package store

import "time"

// Storage keys. Values are JSON except the two scalar streak keys.
const (
	KeyWrongAnswers = "wrongAnswers"
	KeyExamHistory  = "examHistory"
	KeyAchievements = "achievements"
	KeyLastExamDate = "lastExamDate"
	KeyStreakCount  = "streakCount"
	KeyExamGoalDate = "examGoalDate"
)

// AllKeys returns every key the store writes.
func AllKeys() []string {
	return []string{
		KeyWrongAnswers,
		KeyExamHistory,
		KeyAchievements,
		KeyLastExamDate,
		KeyStreakCount,
		KeyExamGoalDate,
	}
}

// DateLayout is the calendar-date format used for stored dates.
const DateLayout = "2006-01-02"

// WrongAnswerRecord is the latest wrong answer given for a question.
type WrongAnswerRecord struct {
	QuestionID     int       `json:"questionId"`
	SelectedAnswer int       `json:"selectedAnswer"`
	CorrectAnswer  int       `json:"correctAnswer"`
	Timestamp      time.Time `json:"timestamp"`
}

// HistoryEntry is one completed exam.
type HistoryEntry struct {
	Timestamp          time.Time `json:"timestamp"`
	Score              int       `json:"score"`
	CorrectCount       int       `json:"correctCount"`
	WrongCount         int       `json:"wrongCount"`
	UnansweredCount    int       `json:"unansweredCount"`
	TotalQuestions     int       `json:"totalQuestions"`
	IsPassed           bool      `json:"isPassed"`
	HasDiemLietWrong   bool      `json:"hasDiemLietWrong"`
	DiemLietWrongCount int       `json:"diemLietWrongCount"`
	Mode               string    `json:"mode,omitempty"`
	Variant            string    `json:"variant,omitempty"`
	DurationSeconds    int       `json:"durationSeconds,omitempty"`

	// Achievements unlocked by this exam. Permanent.
	Achievements []string `json:"achievements,omitempty"`

	// NewAchievements is shown once by the UI, then cleared.
	NewAchievements []string `json:"newAchievements,omitempty"`
}

// StreakState is the day-streak counter and the calendar date of the last
// exam that counted toward it. LastDate is empty when no exam was recorded.
type StreakState struct {
	Count    int
	LastDate string // DateLayout
}
