package quiz

import (
	"context"
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/onthi/internal/questionbank"
	"github.com/abhisek/onthi/internal/sampler"
	"github.com/abhisek/onthi/internal/session"
	"github.com/abhisek/onthi/internal/ui/components"
	"github.com/abhisek/onthi/internal/ui/layout"
	"github.com/abhisek/onthi/internal/ui/theme"
)

// navWindow is how many question numbers the navigator shows at once.
const navWindow = 20

func (s *QuizScreen) View(width, height int) string {
	if s.sess == nil {
		return renderError(width, s.errMsg)
	}
	if s.sess.Empty() {
		return renderEmpty(width, s.sess)
	}
	if s.confirm == confirmQuit {
		return renderConfirm(width, "Thoát khỏi bài làm?", "Kết quả sẽ không được lưu.")
	}
	if s.confirm == confirmFinish {
		unanswered := s.sess.Len() - s.sess.AnsweredCount()
		detail := "Bạn đã trả lời tất cả các câu."
		if unanswered > 0 {
			detail = fmt.Sprintf("Còn %d câu chưa trả lời.", unanswered)
		}
		return renderConfirm(width, "Nộp bài và xem kết quả?", detail)
	}
	return s.renderQuestion(width)
}

func (s *QuizScreen) renderQuestion(width int) string {
	q, _ := s.sess.CurrentQuestion()
	cw := min(width-4, 90)

	var b strings.Builder

	info := fmt.Sprintf("  Câu %d/%d · Đã trả lời %d", s.sess.Current+1, s.sess.Len(), s.sess.AnsweredCount())
	infoLeft := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(info)
	infoLine := infoLeft
	if s.sess.TimeLimit > 0 {
		remaining := s.sess.Remaining(s.ctl.Now())
		clock := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
		if remaining < timeWarning(s.sess) {
			clock = clock.Foreground(theme.Error)
		}
		infoRight := clock.Render("⏱ " + layout.FormatClock(remaining))
		if pad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4; pad > 0 {
			infoLine += strings.Repeat(" ", pad) + infoRight
		}
	}
	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderNavigator()))
	b.WriteString("\n")
	if s.sess.Kind == session.KindPractice && s.sess.Mode == sampler.ModeCritical {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderDiemLietStats()))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	var body strings.Builder
	if q.IsCritical {
		body.WriteString(theme.CriticalTag.Render("ĐIỂM LIỆT"))
		body.WriteString("\n")
	}
	body.WriteString(lipgloss.NewStyle().
		Width(cw).
		Foreground(theme.Text).
		Bold(true).
		Render(fmt.Sprintf("Câu %d: %s", q.ID, q.Text)))
	body.WriteString("\n")
	if q.HasImage() {
		body.WriteString(theme.Hint.Render("[Hình minh họa: " + q.Image + "]"))
		body.WriteString("\n")
	}
	body.WriteString("\n")

	revealed := s.practiceRevealed()
	selected := -1
	if sel, ok := s.sess.SelectionFor(q.ID); ok {
		selected = sel
	}
	body.WriteString(components.Choices{
		Options:  q.Answers,
		Cursor:   s.cursor,
		Selected: selected,
		Reveal:   revealed,
		Correct:  q.CorrectAnswer,
		Width:    cw,
	}.View())

	if revealed {
		body.WriteString("\n\n")
		body.WriteString(renderFeedback(q, selected, cw))
	}
	if s.errMsg != "" {
		body.WriteString("\n\n")
		body.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render("Lỗi: " + s.errMsg))
	}

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, body.String()))
	return b.String()
}

// renderNavigator shows question numbers around the current one: answered
// in teal, current bracketed.
func (s *QuizScreen) renderNavigator() string {
	start := max(0, s.sess.Current-navWindow/2)
	end := min(s.sess.Len(), start+navWindow)
	start = max(0, end-navWindow)

	parts := make([]string, 0, end-start+2)
	if start > 0 {
		parts = append(parts, "…")
	}
	for i := start; i < end; i++ {
		q := s.sess.Questions[i]
		label := fmt.Sprintf("%d", i+1)
		style := lipgloss.NewStyle().Foreground(theme.TextDim)
		if _, ok := s.sess.SelectionFor(q.ID); ok {
			style = lipgloss.NewStyle().Foreground(theme.Secondary)
		}
		if i == s.sess.Current {
			label = "[" + label + "]"
			style = style.Bold(true).Foreground(theme.Accent)
		}
		parts = append(parts, style.Render(label))
	}
	if end < s.sess.Len() {
		parts = append(parts, "…")
	}
	return strings.Join(parts, " ")
}

// renderDiemLietStats shows progress through the critical questions during
// critical-mode practice.
func (s *QuizScreen) renderDiemLietStats() string {
	st := s.ctl.DiemLietStats(context.Background(), s.sess)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	return theme.CriticalTag.Render("ĐIỂM LIỆT") + " " +
		dim.Render(fmt.Sprintf("Đã học %d/%d · ", st.Answered, st.Total)) +
		theme.Correct.Render(fmt.Sprintf("Đúng %d", st.Correct)) + dim.Render(" · ") +
		theme.Incorrect.Render(fmt.Sprintf("Sai %d", st.Wrong)) +
		dim.Render(fmt.Sprintf(" · Tiến độ %d%% · Chính xác %d%%", st.Progress(), st.Accuracy()))
}

func renderFeedback(q questionbank.Question, selected, width int) string {
	var b strings.Builder
	if selected == q.CorrectAnswer {
		b.WriteString(theme.Correct.Render("✓ Chính xác!"))
	} else {
		b.WriteString(theme.Incorrect.Render("✗ Chưa đúng. Đáp án đúng: " + questionbank.OptionLabel(q.CorrectAnswer)))
	}
	if q.Explanation != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Width(width).Foreground(theme.TextDim).Render(q.Explanation))
	}
	return b.String()
}

// timeWarning is when the countdown turns red.
func timeWarning(s *session.Session) time.Duration {
	return s.TimeLimit / 10
}

func renderConfirm(width int, title, detail string) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(layout.Centered(width, lipgloss.NewStyle().Foreground(theme.Text).Bold(true), title))
	b.WriteString("\n")
	b.WriteString(layout.Centered(width, lipgloss.NewStyle().Foreground(theme.TextDim), detail))
	b.WriteString("\n\n")
	b.WriteString(layout.Centered(width, lipgloss.NewStyle().Foreground(theme.Success), "[Y] Đồng ý"))
	b.WriteString("\n")
	b.WriteString(layout.Centered(width, lipgloss.NewStyle().Foreground(theme.Primary), "[N] Tiếp tục làm bài"))
	return b.String()
}

func renderEmpty(width int, s *session.Session) string {
	msg := "Không có câu hỏi nào cho chế độ này."
	if s.Mode == sampler.ModeWrong {
		msg = "Bạn chưa có câu nào làm sai. Hãy luyện tập thêm!"
	}
	return "\n\n\n" + layout.Centered(width, theme.Hint, msg) +
		"\n\n" + layout.Centered(width, lipgloss.NewStyle().Foreground(theme.TextDim), "Nhấn phím bất kỳ để quay lại.")
}

func renderError(width int, errMsg string) string {
	return "\n\n\n" + layout.Centered(width, lipgloss.NewStyle().Foreground(theme.Error),
		fmt.Sprintf("Lỗi: %s\n\nNhấn phím bất kỳ để quay lại.", errMsg))
}
