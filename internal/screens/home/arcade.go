package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/onthi/internal/achievements"
	"github.com/abhisek/onthi/internal/goal"
	"github.com/abhisek/onthi/internal/ui/components"
	"github.com/abhisek/onthi/internal/ui/theme"
)

const titleFull = `╔═╗╔╗╔  ╔╦╗╦ ╦╦  ╔═╗╔═╗╦  ═╗ ╦
║ ║║║║   ║ ╠═╣║  ║ ╦╠═╝║  ╔╩╦╝
╚═╝╝╚╝   ╩ ╩ ╩╩  ╚═╝╩  ╩═╝╩ ╚═`

const titleCompact = "ÔN THI GIẤY PHÉP LÁI XE"

// contentWidth returns the uniform inner width used for all sections.
func contentWidth(frameWidth int) int {
	// Leave room for cabinet border (2) + inner padding (4)
	return max(20, min(frameWidth-6, 64))
}

func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Accent).
		Bold(true)

	art := titleFull
	if compact {
		art = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(art))
}

// renderStatsBar renders the dashboard counters in a bordered box.
func renderStatsBar(d dashboard, cw int, compact bool) string {
	streakStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	wrongStyle := lipgloss.NewStyle().Foreground(theme.Error).Bold(true)
	examStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s %s",
			streakStyle.Render(fmt.Sprintf("🔥%d", d.streak)),
			wrongStyle.Render(fmt.Sprintf("✗%d", d.wrong)),
			examStyle.Render(fmt.Sprintf("✓%d/%d", d.passed, d.exams)),
		)
	} else {
		stats = fmt.Sprintf("%s  %s  %s",
			streakStyle.Render(fmt.Sprintf("🔥 %d NGÀY", d.streak)),
			wrongStyle.Render(fmt.Sprintf("✗ %d CÂU SAI", d.wrong)),
			examStyle.Render(fmt.Sprintf("✓ ĐẠT %d/%d LẦN THI", d.passed, d.exams)),
		)
		if d.diemLiet.Total > 0 {
			stats += "\n" + dimStyle.Render(fmt.Sprintf("Điểm liệt: %d câu · còn sai %d",
				d.diemLiet.Total, d.diemLiet.Wrong))
		}
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

func renderGoal(c goal.Countdown, cw int) string {
	var text string
	if c.Passed {
		text = "Ngày thi mục tiêu đã qua"
	} else {
		text = fmt.Sprintf("Còn %d ngày %d giờ %d phút đến ngày thi", c.Days, c.Hours, c.Minutes)
	}

	color := theme.Success
	switch goal.UrgencyOf(c) {
	case goal.UrgencySoon:
		color = theme.Accent
	case goal.UrgencyImminent:
		color = theme.Error
	}

	bar := components.NewProgressBar("", c.Progress, true, cw-4)
	bar.Color = color
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(lipgloss.NewStyle().Foreground(color).Render(text) + "\n" + bar.View())
}

func renderUnlockBanner(ids []achievements.ID, cw int) string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		names = append(names, id.Icon()+" "+id.DisplayName())
	}
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render("Thành tích mới: " + strings.Join(names, ", "))
}

func renderMenu(m components.Menu, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(m.View())
}

// renderCabinetFrame wraps content in a double-border frame, centred in
// the given dimensions.
func renderCabinetFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
