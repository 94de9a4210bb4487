// Package theme holds the lipgloss palette and shared styles.
package theme

import (
	"charm.land/lipgloss/v2"
)

// Palette borrowed from Vietnamese road signage.
var (
	Primary   = lipgloss.Color("#2563EB") // information-sign blue
	Secondary = lipgloss.Color("#14B8A6") // teal
	Accent    = lipgloss.Color("#FACC15") // warning-sign yellow
	Success   = lipgloss.Color("#22C55E")
	Error     = lipgloss.Color("#EF4444") // prohibition red
	Critical  = lipgloss.Color("#F97316") // điểm liệt highlight
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	BgDark    = lipgloss.Color("#0F172A")
	BgCard    = lipgloss.Color("#1E293B")
	Border    = lipgloss.Color("#334155")
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	CriticalTag = lipgloss.NewStyle().
			Foreground(BgDark).
			Background(Critical).
			Bold(true).
			Padding(0, 1)
)

// Components
var (
	ProgressFilled = lipgloss.NewStyle().
			Background(Secondary)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)

	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	MenuActive = lipgloss.NewStyle().
			Foreground(BgDark).
			Background(Accent).
			Bold(true)
)
