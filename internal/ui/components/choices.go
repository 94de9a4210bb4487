package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/onthi/internal/questionbank"
	"github.com/abhisek/onthi/internal/ui/theme"
)

// Choices renders the answer options of a question.
type Choices struct {
	Options  []string
	Cursor   int
	Selected int // -1 when nothing is chosen
	// Reveal shows the correct option and marks a wrong selection.
	Reveal  bool
	Correct int
	Width   int
}

// View renders the options labelled A, B, C…
func (c Choices) View() string {
	lines := make([]string, 0, len(c.Options))
	for i, opt := range c.Options {
		prefix := "  "
		if i == c.Cursor && !c.Reveal {
			prefix = "▸ "
		}
		mark := " "
		if i == c.Selected {
			mark = "●"
		}
		line := fmt.Sprintf("%s%s %s. %s", prefix, mark, questionbank.OptionLabel(i), opt)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case c.Reveal && i == c.Correct:
			style = theme.Correct
		case c.Reveal && i == c.Selected:
			style = theme.Incorrect
		case c.Reveal:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == c.Selected:
			style = theme.Selected
		case i == c.Cursor:
			style = lipgloss.NewStyle().Foreground(theme.Accent)
		}
		if c.Width > 0 {
			style = style.Width(c.Width)
		}
		lines = append(lines, style.Render(line))
	}
	return strings.Join(lines, "\n")
}
