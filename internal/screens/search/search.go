// Package search finds questions by text and starts practice on the hits.
package search

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/onthi/internal/controller"
	"github.com/abhisek/onthi/internal/questionbank"
	"github.com/abhisek/onthi/internal/sampler"
	"github.com/abhisek/onthi/internal/screen"
	"github.com/abhisek/onthi/internal/screens/quiz"
	"github.com/abhisek/onthi/internal/session"
	"github.com/abhisek/onthi/internal/ui/components"
	"github.com/abhisek/onthi/internal/ui/layout"
	"github.com/abhisek/onthi/internal/ui/theme"
)

// maxListed caps the result lines drawn at once.
const maxListed = 12

// SearchScreen implements screen.Screen for question search.
type SearchScreen struct {
	ctl     *controller.Controller
	input   components.TextInput
	term    string
	results []questionbank.Question
	groups  []questionbank.KeywordGroup
	offset  int
}

var _ screen.Screen = (*SearchScreen)(nil)
var _ screen.KeyHintProvider = (*SearchScreen)(nil)

// New creates a SearchScreen.
func New(ctl *controller.Controller) *SearchScreen {
	return &SearchScreen{
		ctl:   ctl,
		input: components.NewTextInput("Nhập từ khóa, ví dụ: tốc độ", 80),
	}
}

func (s *SearchScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *SearchScreen) Title() string { return "Tìm kiếm câu hỏi" }

func (s *SearchScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Luyện các câu tìm được"},
		{Key: "↑↓", Description: "Cuộn"},
		{Key: "Esc", Description: "Quay lại"},
	}
}

func (s *SearchScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "enter":
			if len(s.results) == 0 {
				return s, nil
			}
			return s, quiz.Open(s.ctl, controller.StartRequest{
				Kind:      session.KindPractice,
				Mode:      sampler.ModeCustom,
				CustomIDs: questionbank.IDs(s.results),
			})
		case "up":
			if s.offset > 0 {
				s.offset--
			}
			return s, nil
		case "down":
			if s.offset < len(s.results)-1 {
				s.offset++
			}
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	s.setTerm(s.input.Value())
	return s, cmd
}

func (s *SearchScreen) setTerm(term string) {
	if term == s.term {
		return
	}
	s.term = term
	s.results = s.ctl.Bank().Search(term)
	s.groups = questionbank.GroupByKeyword(s.results)
	s.offset = 0
}

func (s *SearchScreen) View(width, height int) string {
	cw := min(width-4, 90)
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Width(cw).Render(s.input.View())))
	b.WriteString("\n\n")

	if strings.TrimSpace(s.term) == "" {
		b.WriteString(layout.Centered(width, theme.Hint, "Tìm trong câu hỏi, đáp án và giải thích."))
		return b.String()
	}
	if len(s.results) == 0 {
		b.WriteString(layout.Centered(width, theme.Hint, "Không tìm thấy câu hỏi nào."))
		return b.String()
	}

	summary := fmt.Sprintf("Tìm thấy %d câu", len(s.results))
	b.WriteString(layout.Centered(width, lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true), summary))
	b.WriteString("\n")
	tags := make([]string, 0, len(s.groups))
	for _, g := range s.groups {
		tags = append(tags, fmt.Sprintf("%s (%d)", g.Keyword, len(g.Questions)))
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Width(cw).Foreground(theme.TextDim).Render(strings.Join(tags, " · "))))
	b.WriteString("\n\n")

	end := min(len(s.results), s.offset+maxListed)
	lines := make([]string, 0, end-s.offset)
	for _, q := range s.results[s.offset:end] {
		text := fmt.Sprintf("Câu %d: %s", q.ID, q.Text)
		if lipgloss.Width(text) > cw {
			text = string([]rune(text)[:max(cw-1, 0)]) + "…"
		}
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if q.IsCritical {
			style = style.Foreground(theme.Critical)
		}
		lines = append(lines, style.Render(text))
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Width(cw).Render(strings.Join(lines, "\n"))))
	return b.String()
}
