// Package result shows the outcome of a finished session.
package result

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/onthi/internal/controller"
	"github.com/abhisek/onthi/internal/questionbank"
	"github.com/abhisek/onthi/internal/router"
	"github.com/abhisek/onthi/internal/scoring"
	"github.com/abhisek/onthi/internal/screen"
	"github.com/abhisek/onthi/internal/session"
	"github.com/abhisek/onthi/internal/ui/components"
	"github.com/abhisek/onthi/internal/ui/layout"
	"github.com/abhisek/onthi/internal/ui/theme"
)

// ResultScreen displays a session result and the questions that were missed.
type ResultScreen struct {
	res       controller.Result
	questions map[int]questionbank.Question
	review    []scoring.Outcome // wrong and unanswered, in session order
	offset    int
	warning   string
	retry     func() (controller.Result, error)
}

var _ screen.Screen = (*ResultScreen)(nil)
var _ screen.KeyHintProvider = (*ResultScreen)(nil)
var _ screen.EscHandler = (*ResultScreen)(nil)

// New creates a ResultScreen. A non-nil err means saving the result failed;
// it is shown as a warning.
func New(res controller.Result, questions []questionbank.Question, err error) *ResultScreen {
	s := &ResultScreen{
		res:       res,
		questions: make(map[int]questionbank.Question, len(questions)),
	}
	for _, q := range questions {
		s.questions[q.ID] = q
	}
	for _, o := range res.Outcomes {
		if !o.IsCorrect {
			s.review = append(s.review, o)
		}
	}
	if err != nil {
		s.warning = err.Error()
	}
	return s
}

// WithRetry lets the user retry a failed save with r.
func (s *ResultScreen) WithRetry(retry func() (controller.Result, error)) *ResultScreen {
	s.retry = retry
	return s
}

func (s *ResultScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultScreen) Title() string {
	return "Kết quả"
}

// HandlesEsc makes Esc return home instead of to the closed session.
func (s *ResultScreen) HandlesEsc() bool { return true }

func (s *ResultScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Enter/Esc", Description: "Về trang chủ"}}
	if len(s.review) > 0 {
		hints = append(hints, layout.KeyHint{Key: "↑↓", Description: "Xem câu sai"})
	}
	if s.warning != "" && s.retry != nil {
		hints = append(hints, layout.KeyHint{Key: "r", Description: "Lưu lại"})
	}
	return hints
}

func (s *ResultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		case "up", "k":
			if s.offset > 0 {
				s.offset--
			}
		case "down", "j":
			if s.offset < len(s.review)-1 {
				s.offset++
			}
		case "r":
			if s.warning == "" || s.retry == nil {
				break
			}
			res, err := s.retry()
			s.warning = ""
			if err != nil {
				s.warning = err.Error()
				break
			}
			s.res = res
		}
	}
	return s, nil
}

func (s *ResultScreen) View(width, height int) string {
	res := s.res
	var b strings.Builder
	b.WriteString("\n")

	if res.Total == 0 {
		b.WriteString(layout.Centered(width, theme.Hint, "Không có câu hỏi nào được làm."))
		return b.String()
	}

	b.WriteString(layout.Centered(width, verdictStyle(res), verdict(res)))
	b.WriteString("\n\n")

	stats := fmt.Sprintf("Đúng %d/%d (%d%%)   Sai %d   Bỏ trống %d   Thời gian %s",
		res.Correct, res.Total, res.Percent, res.Wrong, res.Unanswered, layout.FormatClock(res.Duration))
	b.WriteString(layout.Centered(width, lipgloss.NewStyle().Foreground(theme.Text), stats))
	b.WriteString("\n")

	if res.Kind == session.KindExam {
		need := fmt.Sprintf("Cần tối thiểu %d câu đúng và không sai câu điểm liệt", scoring.PassThreshold(res.Total))
		b.WriteString(layout.Centered(width, lipgloss.NewStyle().Foreground(theme.TextDim), need))
		b.WriteString("\n")
	}
	if res.TimedOut {
		b.WriteString(layout.Centered(width, lipgloss.NewStyle().Foreground(theme.Accent), "Hết giờ! Bài đã được nộp tự động."))
		b.WriteString("\n")
	}
	if res.HasCriticalWrong() {
		b.WriteString(layout.Centered(width, theme.Incorrect,
			fmt.Sprintf("Sai %d câu điểm liệt", res.CriticalWrong)))
		b.WriteString("\n")
	}
	if s.warning != "" {
		b.WriteString(layout.Centered(width, lipgloss.NewStyle().Foreground(theme.Error), "Không lưu được kết quả: "+s.warning))
		b.WriteString("\n")
	}

	if len(res.Categories) > 0 {
		b.WriteString("\n")
		b.WriteString(section(width, "Theo chủ đề"))
		for _, c := range res.Categories {
			bar := components.NewProgressBar(
				fmt.Sprintf("%-22s %2d/%-2d", c.Category.DisplayName(), c.Correct, c.Total),
				scoring.Percent(c.Correct, c.Total), true, min(width-8, 64))
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
			b.WriteString("\n")
		}
	}

	if len(res.NewlyUnlocked) > 0 {
		b.WriteString("\n")
		b.WriteString(section(width, "Thành tích mới"))
		for _, id := range res.NewlyUnlocked {
			line := fmt.Sprintf("%s %s: %s", id.Icon(), id.DisplayName(), id.Description())
			b.WriteString(layout.Centered(width, lipgloss.NewStyle().Foreground(theme.Accent), line))
			b.WriteString("\n")
		}
	}
	if res.Streak > 0 {
		b.WriteString(layout.Centered(width, lipgloss.NewStyle().Foreground(theme.Accent),
			fmt.Sprintf("🔥 Chuỗi %d ngày luyện thi", res.Streak)))
		b.WriteString("\n")
	}

	if len(s.review) > 0 {
		b.WriteString("\n")
		b.WriteString(section(width, fmt.Sprintf("Câu cần xem lại (%d/%d)", s.offset+1, len(s.review))))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderReview(min(width-8, 90))))
	}

	return b.String()
}

func (s *ResultScreen) renderReview(width int) string {
	o := s.review[s.offset]
	q, ok := s.questions[o.QuestionID]
	if !ok {
		return ""
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Width(width).Bold(true).Foreground(theme.Text).
		Render(fmt.Sprintf("Câu %d: %s", q.ID, q.Text)))
	b.WriteString("\n")
	chosen := "Bỏ trống"
	if o.Answered {
		chosen = questionbank.OptionLabel(o.Selected)
	}
	b.WriteString(theme.Incorrect.Render("Bạn chọn: " + chosen))
	b.WriteString("   ")
	b.WriteString(theme.Correct.Render(fmt.Sprintf("Đáp án: %s. %s",
		questionbank.OptionLabel(q.CorrectAnswer), q.Answers[q.CorrectAnswer])))
	if q.Explanation != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Width(width).Foreground(theme.TextDim).Render(q.Explanation))
	}
	return b.String()
}

func verdict(res controller.Result) string {
	if res.Kind != session.KindExam {
		return "Hoàn thành luyện tập"
	}
	if res.Passed {
		return "ĐẠT"
	}
	return "KHÔNG ĐẠT"
}

func verdictStyle(res controller.Result) lipgloss.Style {
	switch {
	case res.Kind != session.KindExam:
		return theme.Title
	case res.Passed:
		return theme.Correct
	default:
		return theme.Incorrect
	}
}

func section(width int, title string) string {
	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", min(width-8, 60)))
	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(title)) + "\n" +
		lipgloss.PlaceHorizontal(width, lipgloss.Center, divider) + "\n"
}
