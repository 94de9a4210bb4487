// Package history lists past exams.
package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/onthi/internal/achievements"
	"github.com/abhisek/onthi/internal/screen"
	"github.com/abhisek/onthi/internal/session"
	"github.com/abhisek/onthi/internal/store"
	"github.com/abhisek/onthi/internal/ui/layout"
	"github.com/abhisek/onthi/internal/ui/theme"
)

// HistoryScreen displays past exams, newest first.
type HistoryScreen struct {
	store        *store.Store
	entries      []store.HistoryEntry
	selected     int
	expanded     map[int]bool
	confirmClear bool
	errMsg       string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(st *store.Store) *HistoryScreen {
	return &HistoryScreen{
		store:    st,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	s.entries = s.store.History(context.Background())
	return nil
}

func (s *HistoryScreen) Title() string {
	return "Lịch sử thi"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	if s.confirmClear {
		return []layout.KeyHint{
			{Key: "Y", Description: "Xóa"},
			{Key: "N", Description: "Hủy"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Chi tiết"},
		{Key: "↑↓", Description: "Chọn"},
		{Key: "X", Description: "Xóa lịch sử"},
		{Key: "Esc", Description: "Quay lại"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}

	if s.confirmClear {
		switch kmsg.String() {
		case "y", "Y":
			if err := s.store.ClearHistory(context.Background()); err != nil {
				s.errMsg = err.Error()
			} else {
				s.entries = nil
				s.selected = 0
				s.expanded = make(map[int]bool)
			}
			s.confirmClear = false
		case "n", "N", "esc":
			s.confirmClear = false
		}
		return s, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(s.entries)-1 {
			s.selected++
		}
	case "enter":
		s.expanded[s.selected] = !s.expanded[s.selected]
	case "x", "X":
		if len(s.entries) > 0 {
			s.confirmClear = true
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return layout.Centered(width, lipgloss.NewStyle().Foreground(theme.Error),
			fmt.Sprintf("\n\nLỗi: %s", s.errMsg))
	}
	if s.confirmClear {
		return "\n\n\n" + layout.Centered(width, lipgloss.NewStyle().Foreground(theme.Text).Bold(true),
			fmt.Sprintf("Xóa toàn bộ %d lần thi?", len(s.entries))) +
			"\n" + layout.Centered(width, lipgloss.NewStyle().Foreground(theme.TextDim), "[Y] Xóa   [N] Hủy")
	}
	if len(s.entries) == 0 {
		return "\n\n" + layout.Centered(width, theme.Hint, "Chưa có lần thi nào. Hãy thử một đề thi!")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(layout.Centered(width, lipgloss.NewStyle().Foreground(theme.TextDim), summaryLine(s.entries)))
	b.WriteString("\n\n")

	for i, e := range s.entries {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		verdict := "ĐẠT"
		if !e.IsPassed {
			verdict = "TRƯỢT"
		}
		line := fmt.Sprintf("%s%s  %-5s  %3d%%  %d/%d  %s  %s",
			prefix,
			e.Timestamp.Local().Format("02/01/2006 15:04"),
			verdict,
			e.Score,
			e.CorrectCount, e.TotalQuestions,
			layout.FormatClock(time.Duration(e.DurationSeconds)*time.Second),
			variantName(e.Variant))

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if !e.IsPassed {
			style = style.Foreground(theme.Error)
		}
		if i == s.selected {
			style = style.Bold(true).Foreground(theme.Primary)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, renderDetail(e)))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func renderDetail(e store.HistoryEntry) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	lines := []string{
		fmt.Sprintf("    Sai %d · Bỏ trống %d · Sai điểm liệt %d", e.WrongCount, e.UnansweredCount, e.DiemLietWrongCount),
	}
	for _, id := range achievements.FromStrings(e.Achievements) {
		lines = append(lines, fmt.Sprintf("    %s %s", id.Icon(), id.DisplayName()))
	}
	return dim.Render(strings.Join(lines, "\n"))
}

// summaryLine reports the pass rate and average score.
func summaryLine(entries []store.HistoryEntry) string {
	passed, total := 0, 0
	for _, e := range entries {
		if e.IsPassed {
			passed++
		}
		total += e.Score
	}
	return fmt.Sprintf("%d lần thi · đạt %d · điểm trung bình %d%%", len(entries), passed, total/len(entries))
}

func variantName(v string) string {
	if v == "" {
		return ""
	}
	return session.Variant(v).DisplayName()
}
