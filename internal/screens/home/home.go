// Package home is the main menu and dashboard.
package home

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/onthi/internal/achievements"
	"github.com/abhisek/onthi/internal/controller"
	"github.com/abhisek/onthi/internal/goal"
	"github.com/abhisek/onthi/internal/router"
	"github.com/abhisek/onthi/internal/screen"
	achievementsscreen "github.com/abhisek/onthi/internal/screens/achievements"
	"github.com/abhisek/onthi/internal/screens/history"
	"github.com/abhisek/onthi/internal/screens/modes"
	"github.com/abhisek/onthi/internal/screens/quiz"
	"github.com/abhisek/onthi/internal/screens/search"
	"github.com/abhisek/onthi/internal/session"
	"github.com/abhisek/onthi/internal/ui/components"
)

// dashboard is the data shown above the menu.
type dashboard struct {
	streak   int
	wrong    int
	exams    int
	passed   int
	goal     *goal.Countdown
	diemLiet controller.DiemLietStats
}

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	ctl        *controller.Controller
	menu       components.Menu
	stats      dashboard
	newUnlocks []achievements.ID
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Refresher = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(ctl *controller.Controller) *HomeScreen {
	h := &HomeScreen{ctl: ctl}

	exam := func(v session.Variant) components.MenuItem {
		return components.MenuItem{
			Label:  v.DisplayName(),
			Detail: timeLimitLabel(v.TimeLimit()),
			Action: func() tea.Cmd { return quiz.Open(ctl, controller.Exam(v)) },
		}
	}
	push := func(label string, factory func() screen.Screen) components.MenuItem {
		return components.MenuItem{
			Label:  label,
			Action: func() tea.Cmd { return router.Push(factory()) },
		}
	}

	h.menu = components.NewMenu([]components.MenuItem{
		exam(session.VariantStandard),
		exam(session.VariantFull),
		exam(session.VariantWrong),
		exam(session.VariantSpeed),
		push("Luyện tập", func() screen.Screen { return modes.New(ctl) }),
		push("Tìm kiếm câu hỏi", func() screen.Screen { return search.New(ctl) }),
		push("Lịch sử thi", func() screen.Screen { return history.New(ctl.Store()) }),
		push("Thành tích", func() screen.Screen { return achievementsscreen.New(ctl.Achievements()) }),
		{Label: "Thoát", Action: func() tea.Cmd { return tea.Quit }},
	})
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	ctx := context.Background()
	if raw, err := h.ctl.Store().TakeNewAchievements(ctx); err == nil {
		h.newUnlocks = achievements.FromStrings(raw)
	}
	h.load(ctx)
	return nil
}

// Refresh reloads the dashboard after returning from another screen.
func (h *HomeScreen) Refresh() tea.Cmd {
	ctx := context.Background()
	// Results are shown on the result screen already.
	_, _ = h.ctl.Store().TakeNewAchievements(ctx)
	h.newUnlocks = nil
	h.load(ctx)
	return nil
}

func (h *HomeScreen) load(ctx context.Context) {
	st := h.ctl.Store()
	d := dashboard{
		streak:   h.ctl.Achievements().CurrentStreak(ctx),
		wrong:    len(st.WrongAnswerIDs(ctx)),
		diemLiet: h.ctl.DiemLietStats(ctx, nil),
	}
	for _, e := range st.History(ctx) {
		d.exams++
		if e.IsPassed {
			d.passed++
		}
	}
	now := h.ctl.Now()
	if date, ok := st.GoalDate(ctx, now.Location()); ok {
		c := goal.Compute(date, now)
		d.goal = &c
	}
	h.stats = d
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := height < 30 || width < 100
	cw := contentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	if len(h.newUnlocks) > 0 {
		sections = append(sections, renderUnlockBanner(h.newUnlocks, cw))
	}
	sections = append(sections, renderStatsBar(h.stats, cw, compact))
	if h.stats.goal != nil {
		sections = append(sections, renderGoal(*h.stats.goal, cw))
	}
	sections = append(sections, renderMenu(h.menu, cw))

	gap := "\n\n"
	if compact {
		gap = "\n"
	}
	return renderCabinetFrame(strings.Join(sections, gap), width, height)
}

func (h *HomeScreen) Title() string {
	return "Trang chủ"
}

func timeLimitLabel(d time.Duration) string {
	if d == 0 {
		return ""
	}
	return fmt.Sprintf("%d phút", int(d.Minutes()))
}
