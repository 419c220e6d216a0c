package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/keyquill/internal/game"
	"github.com/verte-zerg/keyquill/internal/generator"
	"github.com/verte-zerg/keyquill/internal/lesson"
	"github.com/verte-zerg/keyquill/internal/model"
	"github.com/verte-zerg/keyquill/internal/session"
	"github.com/verte-zerg/keyquill/internal/statsui"
	"github.com/verte-zerg/keyquill/internal/store"
)

var testCatalog = lesson.MustCatalog([]lesson.Lesson{
	{ID: "cat", Title: "Cat Lesson", Category: "Basics", Difficulty: lesson.Beginner, Language: lesson.English, Content: "cat"},
	{ID: "dog", Title: "Dog Lesson", Category: "Basics", Difficulty: lesson.Beginner, Language: lesson.English, Content: "dog"},
	{ID: "ka", Title: "Ka Lesson", Category: "Basics", Difficulty: lesson.Beginner, Language: lesson.Hindi, Content: "कत"},
})

type testApp struct {
	m     *Model
	st    *store.Store
	clock *time.Time
}

func newTestApp(t *testing.T, advance time.Duration) testApp {
	t.Helper()
	st, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	current := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time { return current }
	engine := session.New(session.Options{
		Catalog:  testCatalog,
		Language: lesson.English,
		Timer:    session.TimerOnStart,
		Clock:    clock,
	})
	m := NewModel(Options{
		Engine:      engine,
		Store:       st,
		AutoAdvance: advance,
		Game: game.Options{
			Duration:  30 * time.Second,
			Batch:     12,
			Generator: generator.NewWithSeed(1),
		},
		GameWords: map[lesson.Language][]string{lesson.English: {"go"}},
		Clock:     clock,
	})
	return testApp{m: m, st: st, clock: &current}
}

func key(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPracticeCompletionRecordsAttempt(t *testing.T) {
	app := newTestApp(t, 0)
	app.m.Update(key(tea.KeyDown))
	app.m.Update(key(tea.KeyEnter))
	*app.clock = app.clock.Add(time.Second)
	_, cmd := app.m.Update(runes("cat"))
	if cmd != nil {
		t.Fatalf("expected no auto-advance command when disabled")
	}
	snap := app.m.engine.Snapshot()
	if snap.Phase != session.Complete {
		t.Fatalf("expected complete, got %s", snap.Phase)
	}
	attempts, err := app.st.ListAttempts(context.Background(), model.HistoryFilter{})
	if err != nil {
		t.Fatalf("list attempts: %v", err)
	}
	if len(attempts) != 1 {
		t.Fatalf("expected 1 attempt, got %d", len(attempts))
	}
	if attempts[0].LessonID != "cat" || attempts[0].WPM != 36 || attempts[0].Accuracy != 100 {
		t.Fatalf("unexpected attempt: %+v", attempts[0])
	}
	if !strings.Contains(app.m.renderFooter(), "Last 36 WPM") {
		t.Fatalf("expected last attempt in footer: %s", app.m.renderFooter())
	}
}

func TestInputIgnoredBeforeStart(t *testing.T) {
	app := newTestApp(t, 0)
	app.m.Update(key(tea.KeyDown))
	app.m.Update(runes("c"))
	if got := app.m.engine.Snapshot().RawInput; got != "" {
		t.Fatalf("expected no input before start, got %q", got)
	}
}

func TestBackspaceRemovesLastRune(t *testing.T) {
	app := newTestApp(t, 0)
	app.m.Update(key(tea.KeyDown))
	app.m.Update(key(tea.KeyEnter))
	app.m.Update(runes("cx"))
	app.m.Update(key(tea.KeyBackspace))
	if got := app.m.engine.Snapshot().RawInput; got != "c" {
		t.Fatalf("expected %q, got %q", "c", got)
	}
}

func TestAutoAdvanceFires(t *testing.T) {
	app := newTestApp(t, 2*time.Second)
	app.m.Update(key(tea.KeyDown))
	app.m.Update(key(tea.KeyEnter))
	_, cmd := app.m.Update(runes("cat"))
	if cmd == nil {
		t.Fatalf("expected auto-advance command")
	}
	tok := app.m.engine.Pending()
	app.m.Update(advanceMsg{token: tok})
	if got := app.m.activeLessonID(); got != "dog" {
		t.Fatalf("expected dog after advance, got %q", got)
	}
	if app.m.engine.Phase() != session.Ready {
		t.Fatalf("expected ready after advance, got %s", app.m.engine.Phase())
	}
}

func TestAutoAdvanceSupersededByReset(t *testing.T) {
	app := newTestApp(t, 2*time.Second)
	app.m.Update(key(tea.KeyDown))
	app.m.Update(key(tea.KeyEnter))
	app.m.Update(runes("cat"))
	tok := app.m.engine.Pending()
	app.m.Update(key(tea.KeyCtrlR))
	app.m.Update(advanceMsg{token: tok})
	if got := app.m.activeLessonID(); got != "cat" {
		t.Fatalf("expected to stay on cat, got %q", got)
	}
}

func TestToggleLanguageClearsLesson(t *testing.T) {
	app := newTestApp(t, 0)
	app.m.Update(key(tea.KeyDown))
	app.m.Update(key(tea.KeyCtrlL))
	if app.m.engine.Language() != lesson.Hindi {
		t.Fatalf("expected hindi")
	}
	if app.m.engine.Phase() != session.Idle {
		t.Fatalf("expected idle after language change")
	}
	app.m.Update(key(tea.KeyDown))
	if got := app.m.activeLessonID(); got != "ka" {
		t.Fatalf("expected ka, got %q", got)
	}
}

func TestEnterWithoutLessonShowsNotice(t *testing.T) {
	app := newTestApp(t, 0)
	app.m.Update(key(tea.KeyEnter))
	if !strings.Contains(app.m.View(), "Select a lesson") {
		t.Fatalf("expected selection notice")
	}
}

func TestPracticeViewShowsLesson(t *testing.T) {
	app := newTestApp(t, 0)
	app.m.Update(tea.WindowSizeMsg{Width: 140, Height: 50})
	app.m.Update(key(tea.KeyDown))
	out := app.m.View()
	for _, want := range []string{"Cat Lesson", "Basics", "WPM", "Accuracy", "Press enter"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in view", want)
		}
	}
}

func TestGameRoundRecordsAttempt(t *testing.T) {
	app := newTestApp(t, 0)
	app.m.Update(key(tea.KeyCtrlG))
	if app.m.screen != ScreenGame {
		t.Fatalf("expected game screen")
	}
	_, cmd := app.m.Update(key(tea.KeyEnter))
	if cmd == nil {
		t.Fatalf("expected tick command")
	}
	app.m.Update(runes("go"))
	app.m.Update(key(tea.KeySpace))
	app.m.Update(runes("gx"))
	app.m.Update(key(tea.KeySpace))
	*app.clock = app.clock.Add(30 * time.Second)
	_, cmd = app.m.Update(tickMsg(*app.clock))
	if cmd != nil {
		t.Fatalf("expected ticking to stop after the round")
	}
	if app.m.game.State() != game.StateOver {
		t.Fatalf("expected game over")
	}
	attempts, err := app.st.ListAttempts(context.Background(), model.HistoryFilter{Kind: model.KindGame})
	if err != nil {
		t.Fatalf("list attempts: %v", err)
	}
	if len(attempts) != 1 || attempts[0].WPM != 2 || attempts[0].Accuracy != 50 {
		t.Fatalf("unexpected game attempts: %+v", attempts)
	}
	if !strings.Contains(app.m.View(), "Game over") {
		t.Fatalf("expected game over view")
	}
	app.m.Update(key(tea.KeyEsc))
	if app.m.screen != ScreenPractice {
		t.Fatalf("expected practice screen after esc")
	}
}

func TestHistoryScreenRoundTrip(t *testing.T) {
	app := newTestApp(t, 0)
	app.m.Update(key(tea.KeyCtrlO))
	if app.m.screen != ScreenHistory {
		t.Fatalf("expected history screen")
	}
	_, cmd := app.m.Update(key(tea.KeyEsc))
	if cmd == nil {
		t.Fatalf("expected back command")
	}
	msg := cmd()
	if _, ok := msg.(statsui.BackMsg); !ok {
		t.Fatalf("expected BackMsg, got %T", msg)
	}
	app.m.Update(msg)
	if app.m.screen != ScreenPractice {
		t.Fatalf("expected practice screen")
	}
}

func TestCtrlCQuits(t *testing.T) {
	app := newTestApp(t, 0)
	_, cmd := app.m.Update(key(tea.KeyCtrlC))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected quit message")
	}
}

func TestGameWithoutWordsForLanguageDoesNotStart(t *testing.T) {
	app := newTestApp(t, 0)
	app.m.Update(key(tea.KeyCtrlL))
	app.m.Update(key(tea.KeyCtrlG))
	_, cmd := app.m.Update(key(tea.KeyEnter))
	if cmd != nil {
		t.Fatalf("expected no tick without a hindi word list")
	}
	if app.m.game.State() != game.StateIdle {
		t.Fatalf("expected idle game, got %v", app.m.game.State())
	}
	if !strings.Contains(app.m.View(), "No Hindi word list") {
		t.Fatalf("expected word list notice")
	}
}

func TestGameUsesWordsOfCurrentLanguage(t *testing.T) {
	app := newTestApp(t, 0)
	app.m.gameWords[lesson.Hindi] = []string{"कत"}
	app.m.Update(key(tea.KeyCtrlL))
	app.m.Update(key(tea.KeyCtrlG))
	if _, cmd := app.m.Update(key(tea.KeyEnter)); cmd == nil {
		t.Fatalf("expected tick command")
	}
	for _, w := range app.m.game.Queue() {
		if w != "कत" {
			t.Fatalf("expected hindi words only, got %q", w)
		}
	}
	app.m.Update(runes("कत"))
	app.m.Update(key(tea.KeySpace))
	*app.clock = app.clock.Add(30 * time.Second)
	app.m.Update(tickMsg(*app.clock))

	attempts, err := app.st.ListAttempts(context.Background(), model.HistoryFilter{Kind: model.KindGame, Lang: "hindi"})
	if err != nil {
		t.Fatalf("list attempts: %v", err)
	}
	if len(attempts) != 1 {
		t.Fatalf("expected one hindi game attempt, got %+v", attempts)
	}
	keys, err := app.st.GetWeakKeys(context.Background(), 10, "hindi")
	if err != nil {
		t.Fatalf("weak keys: %v", err)
	}
	if len(keys) == 0 {
		t.Fatalf("expected hindi key stats")
	}
	for _, k := range keys {
		if k.Char != "क" && k.Char != "त" {
			t.Fatalf("unexpected key %q in hindi history", k.Char)
		}
	}
}
