// Package quiz is the screen that runs a practice or exam session.
package quiz

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/onthi/internal/controller"
	"github.com/abhisek/onthi/internal/router"
	"github.com/abhisek/onthi/internal/screen"
	"github.com/abhisek/onthi/internal/screens/result"
	"github.com/abhisek/onthi/internal/session"
	"github.com/abhisek/onthi/internal/ui/layout"
)

// tickMsg drives the exam countdown.
type tickMsg time.Time

type confirmKind int

const (
	confirmNone confirmKind = iota
	confirmFinish
	confirmQuit
)

// QuizScreen implements screen.Screen for an active session.
type QuizScreen struct {
	ctl     *controller.Controller
	sess    *session.Session
	cursor  int
	confirm confirmKind
	errMsg  string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.EscHandler = (*QuizScreen)(nil)

// New creates a QuizScreen for a started session.
func New(ctl *controller.Controller, s *session.Session) *QuizScreen {
	q := &QuizScreen{ctl: ctl, sess: s}
	q.syncCursor()
	return q
}

// Open starts a session for req and pushes its screen. Invalid requests
// push an error notice instead.
func Open(ctl *controller.Controller, req controller.StartRequest) tea.Cmd {
	return func() tea.Msg {
		s, err := ctl.Start(context.Background(), req)
		if err != nil {
			return router.PushScreenMsg{Screen: &QuizScreen{ctl: ctl, errMsg: err.Error()}}
		}
		return router.PushScreenMsg{Screen: New(ctl, s)}
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	if s.sess == nil || s.sess.Empty() || s.sess.TimeLimit == 0 {
		return nil
	}
	return tickCmd()
}

func (s *QuizScreen) Title() string {
	if s.sess == nil {
		return "Lỗi"
	}
	if s.sess.Kind == session.KindExam {
		return s.sess.Variant.DisplayName()
	}
	return s.sess.Mode.DisplayName()
}

// HandlesEsc keeps the app from popping a running session without asking.
func (s *QuizScreen) HandlesEsc() bool {
	return s.sess != nil && s.sess.InProgress() && !s.sess.Empty()
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.sess == nil || s.sess.Empty():
		return []layout.KeyHint{{Key: "phím bất kỳ", Description: "Quay lại"}}
	case s.confirm != confirmNone:
		return []layout.KeyHint{
			{Key: "Y", Description: "Đồng ý"},
			{Key: "N", Description: "Tiếp tục làm bài"},
		}
	case s.practiceRevealed():
		return []layout.KeyHint{
			{Key: "Enter", Description: "Câu tiếp"},
			{Key: "←→", Description: "Chuyển câu"},
			{Key: "F", Description: "Kết thúc"},
		}
	}
	enter := "Chọn & câu tiếp"
	if s.sess.Kind == session.KindPractice {
		enter = "Kiểm tra"
	}
	return []layout.KeyHint{
		{Key: "A-D/1-4", Description: "Chọn"},
		{Key: "Enter", Description: enter},
		{Key: "←→", Description: "Chuyển câu"},
		{Key: "F", Description: "Nộp bài"},
		{Key: "Esc", Description: "Thoát"},
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return s.handleTick()
	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *QuizScreen) handleTick() (screen.Screen, tea.Cmd) {
	if s.sess == nil || !s.sess.InProgress() {
		return s, nil
	}
	res, done, err := s.ctl.Tick(context.Background(), s.sess)
	if done {
		return s, router.Replace(s.resultScreen(res, err))
	}
	return s, tickCmd()
}

func (s *QuizScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.sess == nil {
		return s, router.Pop
	}
	// Nothing to answer: close the empty session and go back.
	if s.sess.Empty() {
		_, _ = s.ctl.Finish(context.Background(), s.sess)
		return s, router.Pop
	}
	if !s.sess.InProgress() {
		return s, nil
	}

	if s.confirm != confirmNone {
		switch key {
		case "y", "Y":
			if s.confirm == confirmQuit {
				return s, router.Pop
			}
			s.confirm = confirmNone
			return s, s.finish()
		case "n", "N", "esc":
			s.confirm = confirmNone
		}
		return s, nil
	}

	switch key {
	case "esc":
		s.confirm = confirmQuit
	case "f", "F":
		s.confirm = confirmFinish
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if q, ok := s.sess.CurrentQuestion(); ok && s.cursor < len(q.Answers)-1 {
			s.cursor++
		}
	case "left", "h":
		s.move(-1)
	case "right", "l":
		s.move(1)
	case "space":
		s.choose(s.cursor)
	case "enter":
		return s.enter()
	default:
		if i, ok := optionIndex(key); ok {
			s.choose(i)
		}
	}
	return s, nil
}

// enter submits in practice mode and records-then-advances in an exam.
func (s *QuizScreen) enter() (screen.Screen, tea.Cmd) {
	q, ok := s.sess.CurrentQuestion()
	if !ok {
		return s, nil
	}

	if s.sess.Kind == session.KindPractice {
		if s.sess.IsSubmitted(q.ID) {
			return s.advance()
		}
		if _, picked := s.sess.SelectionFor(q.ID); !picked {
			s.choose(s.cursor)
		}
		if _, err := s.ctl.Submit(context.Background(), s.sess); err != nil {
			s.errMsg = err.Error()
		}
		return s, nil
	}

	s.choose(s.cursor)
	return s.advance()
}

func (s *QuizScreen) advance() (screen.Screen, tea.Cmd) {
	if s.sess.Current == s.sess.Len()-1 {
		s.confirm = confirmFinish
		return s, nil
	}
	s.move(1)
	return s, nil
}

func (s *QuizScreen) choose(i int) {
	if s.sess.Select(i) {
		s.cursor = i
		s.errMsg = ""
	}
}

func (s *QuizScreen) move(delta int) {
	s.sess.GoTo(s.sess.Current + delta)
	s.syncCursor()
}

// syncCursor points the cursor at the current question's selection.
func (s *QuizScreen) syncCursor() {
	s.cursor = 0
	if s.sess == nil {
		return
	}
	if q, ok := s.sess.CurrentQuestion(); ok {
		if sel, picked := s.sess.SelectionFor(q.ID); picked {
			s.cursor = sel
		}
	}
}

func (s *QuizScreen) finish() tea.Cmd {
	res, err := s.ctl.Finish(context.Background(), s.sess)
	return router.Replace(s.resultScreen(res, err))
}

func (s *QuizScreen) resultScreen(res controller.Result, err error) *result.ResultScreen {
	sess := s.sess
	return result.New(res, sess.Questions, err).WithRetry(func() (controller.Result, error) {
		return s.ctl.Finish(context.Background(), sess)
	})
}

// practiceRevealed reports whether the current practice answer is checked.
func (s *QuizScreen) practiceRevealed() bool {
	if s.sess.Kind != session.KindPractice {
		return false
	}
	q, ok := s.sess.CurrentQuestion()
	return ok && s.sess.IsSubmitted(q.ID)
}

// optionIndex maps a–z and 1–9 to option indexes.
func optionIndex(key string) (int, bool) {
	if len(key) != 1 {
		return 0, false
	}
	c := strings.ToLower(key)[0]
	switch {
	case c >= 'a' && c <= 'z':
		return int(c - 'a'), true
	case c >= '1' && c <= '9':
		return int(c - '1'), true
	}
	return 0, false
}

// tickCmd returns a 1-second tick command.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
