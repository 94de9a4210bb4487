// Package achievements shows unlocked and locked achievements.
package achievements

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/onthi/internal/achievements"
	"github.com/abhisek/onthi/internal/screen"
	"github.com/abhisek/onthi/internal/ui/components"
	"github.com/abhisek/onthi/internal/ui/layout"
	"github.com/abhisek/onthi/internal/ui/theme"
)

// AchievementsScreen lists every achievement with its state.
type AchievementsScreen struct {
	engine   *achievements.Engine
	unlocked map[achievements.ID]bool
	streak   int
}

var _ screen.Screen = (*AchievementsScreen)(nil)
var _ screen.KeyHintProvider = (*AchievementsScreen)(nil)

// New creates a new AchievementsScreen.
func New(engine *achievements.Engine) *AchievementsScreen {
	return &AchievementsScreen{engine: engine}
}

func (s *AchievementsScreen) Init() tea.Cmd {
	ctx := context.Background()
	s.unlocked = make(map[achievements.ID]bool)
	for _, id := range s.engine.Unlocked(ctx) {
		s.unlocked[id] = true
	}
	s.streak = s.engine.CurrentStreak(ctx)
	return nil
}

func (s *AchievementsScreen) Title() string {
	return "Thành tích"
}

func (s *AchievementsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Esc", Description: "Quay lại"}}
}

func (s *AchievementsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	return s, nil
}

func (s *AchievementsScreen) View(width, height int) string {
	all := achievements.AllIDs()
	cw := min(width-8, 72)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(layout.Centered(width, lipgloss.NewStyle().Foreground(theme.Primary).Bold(true),
		fmt.Sprintf("Đã mở khóa %d/%d", len(s.unlocked), len(all))))
	b.WriteString("\n")
	bar := components.NewProgressBar("", len(s.unlocked)*100/len(all), true, cw)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n")

	streak := fmt.Sprintf("🔥 Chuỗi hiện tại: %d ngày", s.streak)
	if next := achievements.NextStreakMilestone(s.streak); next > 0 {
		streak += fmt.Sprintf(" · mốc tiếp theo: %d ngày", next)
	}
	b.WriteString(layout.Centered(width, lipgloss.NewStyle().Foreground(theme.Accent), streak))
	b.WriteString("\n\n")

	lines := make([]string, 0, len(all))
	for _, id := range all {
		if s.unlocked[id] {
			lines = append(lines,
				lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(id.Icon()+" "+id.DisplayName())+
					"\n"+lipgloss.NewStyle().Foreground(theme.Text).Render("   "+id.Description()))
		} else {
			lines = append(lines,
				lipgloss.NewStyle().Foreground(theme.TextDim).Render("🔒 "+id.DisplayName())+
					"\n"+lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("   "+id.Description()))
		}
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Width(cw).Render(strings.Join(lines, "\n"))))
	return b.String()
}
