// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/keyquill/internal/game"
	"github.com/verte-zerg/keyquill/internal/lesson"
	logpkg "github.com/verte-zerg/keyquill/internal/logger"
	"github.com/verte-zerg/keyquill/internal/model"
	"github.com/verte-zerg/keyquill/internal/session"
	statsPkg "github.com/verte-zerg/keyquill/internal/stats"
	"github.com/verte-zerg/keyquill/internal/statsui"
	"github.com/verte-zerg/keyquill/internal/store"
)

// Screen selects what the app shows.
type Screen int

// Screens.
const (
	// ScreenPractice shows the lesson list and the typing area.
	ScreenPractice Screen = iota
	// ScreenGame shows the timed word game.
	ScreenGame
	// ScreenHistory shows attempts recorded in this process.
	ScreenHistory
)

const (
	sidebarWidth = 30
	weakWindow   = 20
	tickInterval = time.Second
)

type tickMsg time.Time

type advanceMsg struct {
	token session.AdvanceToken
}

// Options configures the app model.
type Options struct {
	Engine *session.Engine
	Store  *store.Store
	Logger *slog.Logger
	// AutoAdvance moves to the next lesson this long after completion. Zero disables it.
	AutoAdvance time.Duration
	// Game holds round settings. Its Words are replaced at round start by
	// the GameWords entry for the engine's current language.
	Game game.Options
	// GameWords maps a language to its game word list. A language without
	// an entry cannot start a round.
	GameWords  map[lesson.Language][]string
	GameConfig model.GameConfig
	Screen     Screen
	Clock      func() time.Time
}

// Model is the root Bubble Tea model.
type Model struct {
	engine  *session.Engine
	store   *store.Store
	logger  *slog.Logger
	now     func() time.Time
	screen  Screen
	advance time.Duration

	gameOpts   game.Options
	gameWords  map[lesson.Language][]string
	gameConfig model.GameConfig
	game       *game.Game
	history    *statsui.Model
	progress   progress.Model

	ticking bool
	notice  string

	lastWPM int
	lastAcc int
	hasLast bool

	width  int
	height int
}

// NewModel constructs the app model.
func NewModel(opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = logpkg.Discard()
	}
	now := opts.Clock
	if now == nil {
		now = time.Now
	}
	m := &Model{
		engine:     opts.Engine,
		store:      opts.Store,
		logger:     logger,
		now:        now,
		screen:     opts.Screen,
		advance:    opts.AutoAdvance,
		gameOpts:   opts.Game,
		gameWords:  opts.GameWords,
		gameConfig: opts.GameConfig,
		progress:   progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
	m.game = game.New(m.gameOpts)
	m.history = statsui.NewModel(opts.Store, model.HistoryFilter{Lang: string(opts.Engine.Language())}, logger)
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = max(10, m.mainWidth()-4)
		_, cmd := m.history.Update(msg)
		return m, cmd
	case tickMsg:
		return m, m.handleTick()
	case advanceMsg:
		m.handleAdvance(msg.token)
		return m, nil
	case statsui.BackMsg:
		m.screen = ScreenPractice
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.screen {
		case ScreenHistory:
			_, cmd := m.history.Update(msg)
			return m, cmd
		case ScreenGame:
			return m, m.updateGame(msg)
		default:
			return m, m.updatePractice(msg)
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	switch m.screen {
	case ScreenHistory:
		return m.history.View()
	case ScreenGame:
		return m.viewGame()
	default:
		return m.viewPractice()
	}
}

func (m *Model) openHistory() {
	m.history.SetLang(string(m.engine.Language()))
	m.screen = ScreenHistory
}

func (m *Model) startTicking() tea.Cmd {
	if m.ticking {
		return nil
	}
	m.ticking = true
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) handleTick() tea.Cmd {
	m.engine.Tick()
	if m.game.Tick(m.now()) {
		m.finishGame()
	}
	if m.engine.Phase() == session.InProgress || m.game.State() == game.StateRunning {
		return tickCmd()
	}
	m.ticking = false
	return nil
}

func (m *Model) handleAdvance(tok session.AdvanceToken) {
	if m.engine.AdvanceIfCurrent(tok) {
		m.logger.Info("auto-advance fired", "from", tok.LessonID(), "to", m.activeLessonID())
		return
	}
	m.logger.Debug("auto-advance suppressed", "lesson", tok.LessonID())
}

func (m *Model) activeLessonID() string {
	snap := m.engine.Snapshot()
	if snap.ActiveLesson == nil {
		return ""
	}
	return snap.ActiveLesson.ID
}

// recordLesson stores a completed lesson attempt.
func (m *Model) recordLesson(snap session.Snapshot) {
	m.lastWPM = snap.Stats.WordsPerMinute
	m.lastAcc = snap.Stats.AccuracyPercent
	m.hasLast = true
	if snap.ActiveLesson == nil {
		return
	}
	ended := m.now()
	started := snap.StartedAt
	if started.IsZero() {
		started = ended
	}
	attempt := model.AttemptStats{
		Kind:       model.KindLesson,
		LessonID:   snap.ActiveLesson.ID,
		Lang:       string(snap.Language),
		StartedAt:  started,
		EndedAt:    ended,
		Correct:    snap.Stats.CorrectChars,
		Incorrect:  snap.Stats.IncorrectChars,
		DurationMs: int64(snap.Stats.ElapsedSeconds * 1000),
		WPM:        snap.Stats.WordsPerMinute,
		Accuracy:   snap.Stats.AccuracyPercent,
	}
	m.insertAttempt(attempt, snap.KeyTallies())
}

func (m *Model) insertAttempt(attempt model.AttemptStats, tallies []session.KeyTally) {
	if m.store == nil {
		return
	}
	keys := make([]model.KeyStats, 0, len(tallies))
	for _, t := range tallies {
		keys = append(keys, model.KeyStats{Char: string(t.Char), Correct: t.Correct, Incorrect: t.Incorrect})
	}
	id, err := m.store.InsertAttempt(context.Background(), attempt, keys)
	if err != nil {
		m.logger.Error("saving attempt", "kind", attempt.Kind, "error", err)
		m.notice = "Failed to save attempt"
		return
	}
	m.logger.Info("attempt completed",
		"id", id,
		"kind", attempt.Kind,
		"lesson", attempt.LessonID,
		"wpm", attempt.WPM,
		"accuracy", attempt.Accuracy,
		"elapsed_ms", attempt.DurationMs,
	)
}

func (m *Model) weakSet() map[rune]struct{} {
	if m.store == nil || !m.gameConfig.FocusWeak {
		return nil
	}
	aggs, err := m.store.GetWeakKeys(context.Background(), weakWindow, string(m.engine.Language()))
	if err != nil {
		m.logger.Error("loading weak keys", "error", err)
		return nil
	}
	if len(aggs) == 0 {
		m.notice = "No history for weak-key focus yet; using the plain word list"
		return nil
	}
	return statsPkg.SelectWeakChars(aggs, m.gameConfig.WeakTop)
}

func accuracyPercent(correct, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}
