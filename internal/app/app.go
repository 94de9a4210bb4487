// Package app wires the screen router into the Bubble Tea program.
package app

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/onthi/internal/controller"
	"github.com/abhisek/onthi/internal/router"
	"github.com/abhisek/onthi/internal/screen"
	"github.com/abhisek/onthi/internal/screens/home"
	"github.com/abhisek/onthi/internal/screens/quiz"
	"github.com/abhisek/onthi/internal/ui/layout"
)

// Options configures the TUI.
type Options struct {
	Controller *controller.Controller
	// Start opens a session on launch, on top of the home screen.
	Start *controller.StartRequest
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	ctl    *controller.Controller
	start  *controller.StartRequest
	stats  layout.HeaderStats
	width  int
	height int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(opts Options) AppModel {
	m := AppModel{
		router: router.New(home.New(opts.Controller)),
		ctl:    opts.Controller,
		start:  opts.Start,
	}
	m.stats = m.loadStats()
	return m
}

func (m AppModel) Init() tea.Cmd {
	cmd := m.router.Active().Init()
	if m.start != nil {
		cmd = tea.Batch(cmd, quiz.Open(m.ctl, *m.start))
	}
	return cmd
}

func (m AppModel) loadStats() layout.HeaderStats {
	ctx := context.Background()
	return layout.HeaderStats{
		Streak: m.ctl.Achievements().CurrentStreak(ctx),
		Wrong:  len(m.ctl.Store().WrongAnswerIDs(ctx)),
	}
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 && !m.activeHandlesEsc() {
				return m, router.Pop
			}
			if m.router.Depth() == 1 {
				return m, nil
			}
		}

	case router.PushScreenMsg, router.PopScreenMsg, router.ReplaceScreenMsg, router.PopToRootMsg:
		cmd := m.router.Update(msg)
		m.stats = m.loadStats()
		return m, cmd
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) activeHandlesEsc() bool {
	h, ok := m.router.Active().(screen.EscHandler)
	return ok && h.HandlesEsc()
}

func (m AppModel) footerHints() []layout.KeyHint {
	if p, ok := m.router.Active().(screen.KeyHintProvider); ok {
		if hints := p.KeyHints(); len(hints) > 0 {
			return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Thoát"})
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Quay lại"},
			{Key: "Ctrl+C", Description: "Thoát"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Di chuyển"},
		{Key: "Enter", Description: "Chọn"},
		{Key: "Ctrl+C", Description: "Thoát"},
	}
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	title := ""
	if active := m.router.Active(); active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.stats, m.width)
	footer := layout.RenderFooter(m.footerHints(), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)

	content := m.router.View(m.width, contentHeight)
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
