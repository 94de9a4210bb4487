// Package session holds the mutable state of one practice or exam run.
package session

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/onthi/internal/questionbank"
	"github.com/abhisek/onthi/internal/sampler"
	"github.com/abhisek/onthi/internal/scoring"
)

// ErrAlreadyStarted is returned when Start is called twice.
var ErrAlreadyStarted = errors.New("session already started")

// Session tracks one run from start to finish. It is owned by a single
// caller and is not safe for concurrent use.
type Session struct {
	// ID is the UUID for this session.
	ID string

	Kind    Kind
	Mode    sampler.Mode
	Variant Variant // exam only

	// Questions is fixed at Start for the lifetime of the session.
	Questions []questionbank.Question

	// Current is the index into Questions of the displayed question.
	Current int

	// Selected maps question ID to the chosen option index.
	Selected map[int]int

	// Submitted marks practice answers that were checked and locked.
	Submitted map[int]bool

	// TimeLimit is zero for untimed sessions.
	TimeLimit time.Duration

	StartedAt  time.Time
	FinishedAt time.Time
	Status     Status
}

// NewPractice creates an untimed practice session for mode.
func NewPractice(mode sampler.Mode) *Session {
	return newSession(KindPractice, mode)
}

// NewExam creates a timed exam session for variant.
func NewExam(variant Variant) *Session {
	s := newSession(KindExam, variant.Mode())
	s.Variant = variant
	s.TimeLimit = variant.TimeLimit()
	return s
}

func newSession(kind Kind, mode sampler.Mode) *Session {
	return &Session{
		ID:        uuid.New().String(),
		Kind:      kind,
		Mode:      mode,
		Selected:  make(map[int]int),
		Submitted: make(map[int]bool),
		Status:    StatusNotStarted,
	}
}

// Start fixes the question set and moves the session in progress. An empty
// question set is allowed; such a session can only be finished.
func (s *Session) Start(questions []questionbank.Question, now time.Time) error {
	if s.Status != StatusNotStarted {
		return ErrAlreadyStarted
	}
	s.Questions = append([]questionbank.Question(nil), questions...)
	s.Current = 0
	s.StartedAt = now
	s.Status = StatusInProgress
	return nil
}

// Len returns the number of questions in the session.
func (s *Session) Len() int {
	return len(s.Questions)
}

// Empty reports whether the session has no questions.
func (s *Session) Empty() bool {
	return len(s.Questions) == 0
}

// InProgress reports whether the session accepts answers.
func (s *Session) InProgress() bool {
	return s.Status == StatusInProgress
}

// CurrentQuestion returns the displayed question.
func (s *Session) CurrentQuestion() (questionbank.Question, bool) {
	if s.Empty() {
		return questionbank.Question{}, false
	}
	return s.Questions[s.Current], true
}

// Select records option for the current question. It is a no-op once the
// session is finished, for an out-of-range option, or in practice after the
// question was submitted. Returns true when the selection changed state.
func (s *Session) Select(option int) bool {
	q, ok := s.CurrentQuestion()
	if !ok || !s.InProgress() {
		return false
	}
	if option < 0 || option >= len(q.Answers) {
		return false
	}
	if s.Kind == KindPractice && s.Submitted[q.ID] {
		return false
	}
	s.Selected[q.ID] = option
	return true
}

// SelectionFor returns the selected option for question id.
func (s *Session) SelectionFor(id int) (int, bool) {
	opt, ok := s.Selected[id]
	return opt, ok
}

// Next moves to the following question, stopping at the last one.
func (s *Session) Next() { s.GoTo(s.Current + 1) }

// Prev moves to the preceding question, stopping at the first one.
func (s *Session) Prev() { s.GoTo(s.Current - 1) }

// GoTo jumps to index i, clamped to the question range.
func (s *Session) GoTo(i int) {
	if s.Status == StatusFinished {
		return
	}
	if i >= len(s.Questions) {
		i = len(s.Questions) - 1
	}
	if i < 0 {
		i = 0
	}
	s.Current = i
}

// Submit locks the current practice answer. It requires a selection and only
// applies to practice sessions. The returned ok is false when nothing was
// submitted; correct reports whether the locked answer is right.
func (s *Session) Submit() (q questionbank.Question, correct, ok bool) {
	q, exists := s.CurrentQuestion()
	if !exists || !s.InProgress() || s.Kind != KindPractice || s.Submitted[q.ID] {
		return q, false, false
	}
	opt, selected := s.Selected[q.ID]
	if !selected {
		return q, false, false
	}
	s.Submitted[q.ID] = true
	return q, opt == q.CorrectAnswer, true
}

// IsSubmitted reports whether the practice answer for id is locked.
func (s *Session) IsSubmitted(id int) bool {
	return s.Submitted[id]
}

// AnsweredCount returns how many questions have a selection.
func (s *Session) AnsweredCount() int {
	n := 0
	for _, q := range s.Questions {
		if _, ok := s.Selected[q.ID]; ok {
			n++
		}
	}
	return n
}

// Finish ends the session. It returns false if the session was already
// finished, so callers can treat a second call as a no-op.
func (s *Session) Finish(now time.Time) bool {
	if s.Status == StatusFinished {
		return false
	}
	if s.StartedAt.IsZero() {
		s.StartedAt = now
	}
	s.FinishedAt = now
	s.Status = StatusFinished
	return true
}

// Duration returns the time spent so far, or in total once finished.
func (s *Session) Duration(now time.Time) time.Duration {
	if s.StartedAt.IsZero() {
		return 0
	}
	end := now
	if s.Status == StatusFinished {
		end = s.FinishedAt
	}
	if end.Before(s.StartedAt) {
		return 0
	}
	return end.Sub(s.StartedAt)
}

// Remaining returns the countdown left for a timed session. Untimed sessions
// return zero.
func (s *Session) Remaining(now time.Time) time.Duration {
	if s.TimeLimit <= 0 {
		return 0
	}
	left := s.TimeLimit - s.Duration(now)
	if left < 0 {
		return 0
	}
	return left
}

// Expired reports whether a timed, in-progress session has run out of time.
func (s *Session) Expired(now time.Time) bool {
	return s.InProgress() && s.TimeLimit > 0 && s.Duration(now) >= s.TimeLimit
}

// Score evaluates the session. Exams score every selection; practice scores
// only submitted answers, so an unchecked selection counts as unanswered.
func (s *Session) Score() scoring.Result {
	if s.Kind != KindPractice {
		return scoring.Score(s.Questions, s.Selected)
	}
	submitted := make(map[int]int, len(s.Submitted))
	for id, sel := range s.Selected {
		if s.Submitted[id] {
			submitted[id] = sel
		}
	}
	return scoring.Score(s.Questions, submitted)
}
