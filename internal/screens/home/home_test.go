package home

import (
	"context"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/abhisek/onthi/internal/achievements"
	"github.com/abhisek/onthi/internal/controller"
	"github.com/abhisek/onthi/internal/questionbank/qbtest"
	"github.com/abhisek/onthi/internal/router"
	"github.com/abhisek/onthi/internal/screens/quiz"
	"github.com/abhisek/onthi/internal/store"
)

var testNow = time.Date(2024, 3, 1, 9, 0, 0, 0, time.Local)

func newHome(t *testing.T) (*HomeScreen, *store.Store) {
	t.Helper()
	st := store.New(store.NewMemoryKV(), zerolog.Nop())
	ctl := controller.New(qbtest.Bank(qbtest.Spec{Critical: 3, Regular: 30}), st, controller.Options{
		Rand: rand.New(rand.NewPCG(3, 3)),
		Now:  func() time.Time { return testNow },
	})
	return New(ctl), st
}

func TestViewShowsDashboard(t *testing.T) {
	h, st := newHome(t)
	ctx := context.Background()
	if err := st.AppendHistory(ctx, store.HistoryEntry{Timestamp: testNow, Score: 96, IsPassed: true, TotalQuestions: 25}); err != nil {
		t.Fatal(err)
	}
	if err := st.UpsertWrongAnswer(ctx, store.WrongAnswerRecord{QuestionID: 1, SelectedAnswer: 0, CorrectAnswer: 1, Timestamp: testNow}); err != nil {
		t.Fatal(err)
	}
	if err := st.SetGoalDate(ctx, testNow.AddDate(0, 0, 2)); err != nil {
		t.Fatal(err)
	}

	h.Init()
	view := h.View(120, 50)
	for _, want := range []string{
		"✗ 1 CÂU SAI",
		"ĐẠT 1/1 LẦN THI",
		"Điểm liệt: 3 câu · còn sai 1",
		"Còn 2 ngày 14 giờ 59 phút",
		"Thi thử 25 câu",
		"19 phút",
		"Thoát",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("home view missing %q", want)
		}
	}
}

func TestUnlockBannerShownOnce(t *testing.T) {
	h, st := newHome(t)
	ctx := context.Background()
	entry := store.HistoryEntry{
		Timestamp:       testNow,
		IsPassed:        true,
		NewAchievements: []string{string(achievements.FirstPass)},
	}
	if err := st.AppendHistory(ctx, entry); err != nil {
		t.Fatal(err)
	}

	h.Init()
	if len(h.newUnlocks) != 1 || h.newUnlocks[0] != achievements.FirstPass {
		t.Fatalf("newUnlocks = %v", h.newUnlocks)
	}
	if !strings.Contains(h.View(120, 50), "Thành tích mới") {
		t.Error("banner missing")
	}

	h.Refresh()
	if len(h.newUnlocks) != 0 {
		t.Error("refresh should clear the banner")
	}
	if got := st.History(ctx)[0].NewAchievements; len(got) != 0 {
		t.Errorf("achievements not consumed: %v", got)
	}
}

func TestEnterStartsStandardExam(t *testing.T) {
	h, _ := newHome(t)
	h.Init()

	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg")
	}
	if _, ok := push.Screen.(*quiz.QuizScreen); !ok {
		t.Errorf("pushed %T", push.Screen)
	}
}

func TestTimeLimitLabel(t *testing.T) {
	if got := timeLimitLabel(5 * time.Minute); got != "5 phút" {
		t.Errorf("timeLimitLabel = %q", got)
	}
	if got := timeLimitLabel(0); got != "" {
		t.Errorf("timeLimitLabel(0) = %q", got)
	}
}
