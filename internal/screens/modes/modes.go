// Package modes lists the practice modes.
package modes

import (
	"fmt"

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

// ModesScreen lets the user pick a practice mode or a topic.
type ModesScreen struct {
	menu components.Menu
}

var _ screen.Screen = (*ModesScreen)(nil)
var _ screen.KeyHintProvider = (*ModesScreen)(nil)

// New creates a ModesScreen.
func New(ctl *controller.Controller) *ModesScreen {
	bank := ctl.Bank()
	counts := bank.CountByCategory()

	practice := func(label, detail string, req controller.StartRequest) components.MenuItem {
		return components.MenuItem{
			Label:  label,
			Detail: detail,
			Action: func() tea.Cmd { return quiz.Open(ctl, req) },
		}
	}
	questions := func(n int) string { return fmt.Sprintf("%d câu", n) }

	items := []components.MenuItem{
		practice(sampler.ModeRandom.DisplayName(), "", controller.Practice(sampler.ModeRandom)),
		practice(sampler.ModeFull.DisplayName(), questions(bank.Len()), controller.Practice(sampler.ModeFull)),
		practice(sampler.ModeCritical.DisplayName(), questions(len(bank.Critical())), controller.Practice(sampler.ModeCritical)),
		practice(sampler.ModeSigns.DisplayName(), "", controller.Practice(sampler.ModeSigns)),
		practice(sampler.ModeWrong.DisplayName(), "", controller.Practice(sampler.ModeWrong)),
	}
	for _, c := range questionbank.AllCategories() {
		items = append(items, practice("Chủ đề: "+c.DisplayName(), questions(counts[c]), controller.StartRequest{
			Kind:     session.KindPractice,
			Mode:     sampler.ModeCategory,
			Category: c,
		}))
	}

	return &ModesScreen{menu: components.NewMenu(items)}
}

func (s *ModesScreen) Init() tea.Cmd { return nil }

func (s *ModesScreen) Title() string { return "Luyện tập" }

func (s *ModesScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Chọn"},
		{Key: "Enter", Description: "Bắt đầu"},
		{Key: "Esc", Description: "Quay lại"},
	}
}

func (s *ModesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *ModesScreen) View(width, height int) string {
	return "\n" + layout.Centered(width, theme.Subtitle, "Chọn chế độ luyện tập") + "\n\n" +
		lipgloss.PlaceHorizontal(width, lipgloss.Center, s.menu.View())
}
