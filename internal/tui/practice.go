package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/keyquill/internal/keymap"
	"github.com/verte-zerg/keyquill/internal/lesson"
	"github.com/verte-zerg/keyquill/internal/session"
)

func (m *Model) updatePractice(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyDelete:
		m.handleBackspace()
		return nil
	case tea.KeySpace:
		return m.handleRunes([]rune{' '})
	case tea.KeyRunes:
		return m.handleRunes(msg.Runes)
	}
	switch msg.String() {
	case "enter":
		return m.startAttempt()
	case "ctrl+r":
		m.engine.Reset()
		m.logger.Debug("attempt reset", "lesson", m.activeLessonID())
	case "ctrl+n":
		if m.engine.AdvanceToNextLesson() {
			m.logger.Info("lesson selected", "lesson", m.activeLessonID(), "via", "next")
		}
	case "up":
		m.moveSelection(-1)
	case "down":
		m.moveSelection(1)
	case "ctrl+l":
		lang := m.engine.Language().Toggle()
		m.engine.SetLanguage(lang)
		m.notice = ""
		m.logger.Info("language changed", "lang", string(lang))
	case "ctrl+g":
		m.screen = ScreenGame
	case "ctrl+o":
		m.openHistory()
	}
	return nil
}

func (m *Model) startAttempt() tea.Cmd {
	if !m.engine.Start() {
		if m.engine.Phase() == session.Idle {
			m.notice = "Select a lesson with up/down first"
		}
		return nil
	}
	m.notice = ""
	m.logger.Info("attempt started", "lesson", m.activeLessonID())
	return m.startTicking()
}

func (m *Model) moveSelection(delta int) {
	lessons := m.engine.Lessons()
	if len(lessons) == 0 {
		return
	}
	idx := m.engine.Catalog().IndexOf(m.engine.Language(), m.activeLessonID())
	switch {
	case idx < 0 && delta > 0:
		idx = 0
	case idx < 0:
		idx = len(lessons) - 1
	default:
		idx = max(0, min(len(lessons)-1, idx+delta))
	}
	if lessons[idx].ID == m.activeLessonID() {
		return
	}
	if m.engine.SelectLesson(lessons[idx].ID) {
		m.notice = ""
		m.logger.Info("lesson selected", "lesson", lessons[idx].ID)
	}
}

func (m *Model) handleBackspace() {
	snap := m.engine.Snapshot()
	if snap.Phase != session.InProgress {
		return
	}
	input := []rune(snap.RawInput)
	if len(input) == 0 {
		return
	}
	m.engine.SubmitInput(string(input[:len(input)-1]))
}

func (m *Model) handleRunes(runes []rune) tea.Cmd {
	snap := m.engine.Snapshot()
	if snap.Phase != session.InProgress {
		return nil
	}
	if !m.engine.SubmitInput(snap.RawInput + string(runes)) {
		return nil
	}
	done := m.engine.Snapshot()
	m.recordLesson(done)
	if m.advance <= 0 {
		return nil
	}
	tok := m.engine.Pending()
	return tea.Tick(m.advance, func(time.Time) tea.Msg {
		return advanceMsg{token: tok}
	})
}

func (m *Model) mainWidth() int {
	if m.width == 0 {
		return 80
	}
	return max(20, m.width-sidebarWidth-2)
}

func (m *Model) viewPractice() string {
	snap := m.engine.Snapshot()
	sidebar := sidebarStyle.Width(sidebarWidth).Render(
		renderSidebar(m.engine.Catalog().Categories(snap.Language), m.activeLessonID(), snap.Language),
	)
	width := m.mainWidth()
	sections := []string{
		renderLessonHeader(snap),
		renderBadges(snap.Stats),
		m.progress.ViewAs(snap.Progress()),
	}
	if snap.ActiveLesson != nil {
		sections = append(sections, renderLessonText(snap, width-2))
	}
	if status := m.statusLine(snap); status != "" {
		sections = append(sections, status)
	}
	showKey := snap.HasExpected && snap.Phase != session.Complete
	sections = append(sections,
		renderKeyboard(highlightFor(snap.CurrentExpected, showKey), snap.Language),
	)
	placement, ok := keymap.Placement{}, false
	if showKey {
		placement, ok = keymap.FingerFor(snap.CurrentExpected)
	}
	sections = append(sections, renderHands(placement, ok))
	main := lipgloss.NewStyle().Width(width).Padding(0, 1).Render(strings.Join(sections, "\n\n"))
	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, main)
	footer := m.renderFooter()
	if m.height < 3 {
		return body + "\n" + footer
	}
	body = lipgloss.PlaceVertical(m.height-1, lipgloss.Top, body)
	return body + "\n" + footer
}

func (m *Model) statusLine(snap session.Snapshot) string {
	if m.notice != "" {
		return noticeStyle.Render(m.notice)
	}
	switch snap.Phase {
	case session.Idle:
		return subtitleStyle.Render("Choose a lesson with up/down, then press enter to start.")
	case session.Ready:
		return subtitleStyle.Render("Press enter to start typing.")
	case session.Complete:
		msg := fmt.Sprintf("Lesson complete: %d WPM with %d%% accuracy. Press enter to try again or ctrl+n for the next lesson.",
			snap.Stats.WordsPerMinute, snap.Stats.AccuracyPercent)
		return noticeStyle.Render(msg)
	default:
		return ""
	}
}

func renderSidebar(groups []lesson.CategoryGroup, activeID string, lang lesson.Language) string {
	lines := []string{titleStyle.Render("Lessons · " + lang.Label()), ""}
	for _, g := range groups {
		lines = append(lines, categoryStyle.Render(g.Name))
		for _, l := range g.Lessons {
			marker := "  "
			style := lessonStyle
			if l.ID == activeID {
				marker = "> "
				style = activeLessonStyle
			}
			badge := difficultyStyles[string(l.Difficulty)].Render(l.Difficulty.Label()[:1])
			lines = append(lines, style.Render(marker+l.Title)+" "+badge)
		}
		lines = append(lines, "")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}

func renderLessonHeader(snap session.Snapshot) string {
	if snap.ActiveLesson == nil {
		return titleStyle.Render("No lesson selected") + "\n" + subtitleStyle.Render(snap.Language.Label())
	}
	l := snap.ActiveLesson
	diff := difficultyStyles[string(l.Difficulty)].Render(l.Difficulty.Label())
	return titleStyle.Render(l.Title) + "\n" + subtitleStyle.Render(l.Category+" · ") + diff
}

func renderBadges(st session.Stats) string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		badge("WPM", fmt.Sprintf("%d", st.WordsPerMinute)),
		badge("Accuracy", fmt.Sprintf("%d%%", st.AccuracyPercent)),
		badge("Time", formatElapsed(st.ElapsedSeconds)),
	)
}

func badge(label, value string) string {
	return badgeStyle.Render(badgeLabelStyle.Render(label) + " " + badgeValueStyle.Render(value))
}

func formatElapsed(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

func (m *Model) renderFooter() string {
	snap := m.engine.Snapshot()
	segments := []string{fmt.Sprintf("Progress %d%%", int(snap.Progress()*100))}
	if m.hasLast {
		segments = append(segments, fmt.Sprintf("Last %d WPM · %d%%", m.lastWPM, m.lastAcc))
	}
	segments = append(segments, "enter start", "ctrl+r reset", "ctrl+n next", "ctrl+l language", "ctrl+g game", "ctrl+o history", "ctrl+c quit")
	return footerStyle.Render(strings.Join(segments, "  "))
}
