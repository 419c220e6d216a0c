package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hako/durafmt"

	"github.com/verte-zerg/keyquill/internal/game"
	"github.com/verte-zerg/keyquill/internal/model"
)

const gameQueuePreview = 12

func (m *Model) updateGame(msg tea.KeyMsg) tea.Cmd {
	running := m.game.State() == game.StateRunning
	switch msg.Type {
	case tea.KeyEsc:
		if !running {
			m.screen = ScreenPractice
		}
		return nil
	case tea.KeyEnter:
		if running {
			return nil
		}
		return m.startGame()
	case tea.KeyBackspace, tea.KeyDelete:
		if running {
			input := []rune(m.game.Input())
			if len(input) > 0 {
				m.game.Submit(string(input[:len(input)-1]))
			}
		}
		return nil
	case tea.KeySpace:
		if running {
			m.game.Submit(m.game.Input() + " ")
		}
		return nil
	case tea.KeyRunes:
		if running {
			m.game.Submit(m.game.Input() + string(msg.Runes))
		}
		return nil
	}
	switch msg.String() {
	case "ctrl+o":
		if !running {
			m.openHistory()
		}
	}
	return nil
}

func (m *Model) startGame() tea.Cmd {
	lang := m.engine.Language()
	words := m.gameWords[lang]
	if len(words) == 0 {
		m.notice = fmt.Sprintf("No %s word list for the game; restart with --words-file", lang.Label())
		m.logger.Warn("game not started: no word list", "lang", string(lang))
		return nil
	}
	m.notice = ""
	opts := m.gameOpts
	opts.Words = words
	opts.WeakSet = m.weakSet()
	if len(opts.WeakSet) == 0 {
		opts.WeakFactor = 0
	}
	m.game = game.New(opts)
	m.game.Start(m.now())
	m.logger.Info("game started", "lang", string(lang), "words", len(words), "duration", m.game.Duration().String(), "focus_weak", len(opts.WeakSet) > 0)
	return m.startTicking()
}

func (m *Model) finishGame() {
	res := m.game.Result()
	tallies := m.game.KeyTallies()
	var correct, incorrect int
	for _, t := range tallies {
		correct += t.Correct
		incorrect += t.Incorrect
	}
	started := m.game.StartedAt()
	attempt := model.AttemptStats{
		Kind:       model.KindGame,
		Lang:       string(m.engine.Language()),
		StartedAt:  started,
		EndedAt:    started.Add(res.Duration),
		Correct:    correct,
		Incorrect:  incorrect,
		DurationMs: res.Duration.Milliseconds(),
		WPM:        res.WPM,
		Accuracy:   accuracyPercent(res.CorrectWords, res.Submitted),
	}
	m.insertAttempt(attempt, tallies)
}

func (m *Model) viewGame() string {
	now := m.now()
	sections := []string{titleStyle.Render("Speed Typing Game")}
	switch m.game.State() {
	case game.StateIdle:
		sections = append(sections,
			subtitleStyle.Render(fmt.Sprintf("Type as many words as you can in %s.", formatGameDuration(m.game.Duration()))),
			subtitleStyle.Render("Press enter to start. A space submits each word."),
		)
	case game.StateRunning:
		res := m.game.Result()
		sections = append(sections,
			lipgloss.JoinHorizontal(lipgloss.Top,
				badge("Time", fmt.Sprintf("%ds", int(m.game.Remaining(now).Round(time.Second).Seconds()))),
				badge("Words", fmt.Sprintf("%d", res.CorrectWords)),
			),
			renderQueue(m.game.Queue(), m.game.Input(), m.mainWidth()),
			"> "+m.game.Input()+cursorStyle.Render(" "),
		)
	case game.StateOver:
		res := m.game.Result()
		sections = append(sections,
			noticeStyle.Render("Game over!"),
			fmt.Sprintf("You typed %d words in %s (%d WPM).", res.CorrectWords, formatGameDuration(res.Duration), res.WPM),
			subtitleStyle.Render("Press enter to play again."),
		)
	}
	if m.notice != "" && m.game.State() != game.StateRunning {
		sections = append(sections, noticeStyle.Render(m.notice))
	}
	body := strings.Join(sections, "\n\n")
	footer := footerStyle.Render("enter start  esc back  ctrl+o history  ctrl+c quit")
	if m.width == 0 || m.height < 3 {
		return body + "\n" + footer
	}
	content := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, body)
	return content + "\n" + footer
}

// renderQueue shows the next words, marking the head against the input.
func renderQueue(queue []string, input string, width int) string {
	if len(queue) == 0 {
		return ""
	}
	if len(queue) > gameQueuePreview {
		queue = queue[:gameQueuePreview]
	}
	parts := make([]string, 0, len(queue))
	parts = append(parts, renderHeadWord(queue[0], input))
	for _, w := range queue[1:] {
		parts = append(parts, pendingStyle.Render(w))
	}
	return lipgloss.NewStyle().Width(max(20, width)).Render(strings.Join(parts, " "))
}

func renderHeadWord(word, input string) string {
	want := []rune(word)
	got := []rune(input)
	var b strings.Builder
	for i, r := range want {
		switch {
		case i >= len(got):
			b.WriteString(currentWordStyle.Render(string(r)))
		case got[i] == r:
			b.WriteString(correctStyle.Render(string(r)))
		default:
			b.WriteString(incorrectStyle.Render(string(r)))
		}
	}
	return b.String()
}

func formatGameDuration(d time.Duration) string {
	return durafmt.Parse(d).LimitFirstN(1).String()
}
