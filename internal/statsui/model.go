// Package statsui provides the Bubble Tea attempt history screen.
package statsui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/hako/durafmt"
	"github.com/mattn/go-runewidth"
	"github.com/samber/lo"

	logpkg "github.com/verte-zerg/keyquill/internal/logger"
	"github.com/verte-zerg/keyquill/internal/model"
	"github.com/verte-zerg/keyquill/internal/stats"
	"github.com/verte-zerg/keyquill/internal/store"
)

const (
	tabOverview = iota
	tabKeys
)

const recentLimit = 8

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

// BackMsg asks the parent program to leave the history screen.
type BackMsg struct{}

// Model implements the history screen.
type Model struct {
	store  *store.Store
	filter model.HistoryFilter
	logger *slog.Logger

	report stats.Report
	errMsg string

	tabs      []string
	activeTab int
	overview  viewport.Model
	keyTable  table.Model

	width  int
	height int
}

// NewModel constructs a history screen reading from st.
func NewModel(st *store.Store, filter model.HistoryFilter, logger *slog.Logger) *Model {
	if logger == nil {
		logger = logpkg.Discard()
	}
	m := &Model{
		store:    st,
		filter:   filter,
		logger:   logger,
		tabs:     []string{"Overview", "Keys"},
		overview: viewport.New(0, 0),
		keyTable: buildKeyTable(nil, 0, 1),
	}
	m.Refresh()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Filter returns the active history filter.
func (m *Model) Filter() model.HistoryFilter {
	return m.filter
}

// SetLang narrows the history to one language and reloads it.
func (m *Model) SetLang(lang string) {
	m.filter.Lang = lang
	m.Refresh()
}

// Refresh reloads the report from the store.
func (m *Model) Refresh() {
	if m.store == nil {
		return
	}
	report, err := stats.BuildReport(context.Background(), m.store, m.filter)
	if err != nil {
		m.errMsg = err.Error()
		m.logger.Error("loading history", "error", err)
		return
	}
	m.errMsg = ""
	m.report = report
	m.keyTable.SetRows(buildKeyRows(report.KeyAggsAll))
	m.renderContents()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderContents()
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			return m, func() tea.Msg { return BackMsg{} }
		case "left", "h":
			m.moveTab(-1)
			return m, nil
		case "right", "l", "tab":
			m.moveTab(1)
			return m, nil
		case "f":
			m.filter.Kind = nextKind(m.filter.Kind)
			m.Refresh()
			return m, nil
		case "=":
			m.filter.CurveWindow = stepCurveWindow(m.filter.CurveWindow, 1)
			m.renderContents()
			return m, nil
		case "-":
			m.filter.CurveWindow = stepCurveWindow(m.filter.CurveWindow, -1)
			m.renderContents()
			return m, nil
		case "g", "home":
			if m.activeTab == tabKeys {
				m.keyTable.GotoTop()
			} else {
				m.overview.GotoTop()
			}
			return m, nil
		case "G", "end":
			if m.activeTab == tabKeys {
				m.keyTable.GotoBottom()
			} else {
				m.overview.GotoBottom()
			}
			return m, nil
		}
		var cmd tea.Cmd
		if m.activeTab == tabKeys {
			m.keyTable, cmd = m.keyTable.Update(msg)
		} else {
			m.overview, cmd = m.overview.Update(msg)
		}
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitBlock(m.renderHeader(), m.width, headerHeight)
	var body string
	if m.activeTab == tabKeys {
		body = m.keyTable.View()
	} else {
		body = m.overview.View()
	}
	body = fitBlock(body, m.width, bodyHeight)
	footer := fitBlock(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := max(1, lipgloss.Height(activeNavStyle.Render("X")))
	headerHeight = tabsHeight + 1
	footerHeight = 1
	if m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = max(1, m.height-headerHeight-footerHeight)
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	m.overview.Width = m.width
	m.overview.Height = bodyHeight
	m.keyTable.SetWidth(m.width)
	m.keyTable.SetHeight(max(1, bodyHeight-1))
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	m.activeTab = (m.activeTab + delta + count) % count
	if m.activeTab == tabKeys {
		m.keyTable.Focus()
	} else {
		m.keyTable.Blur()
	}
}

func (m *Model) renderContents() {
	m.overview.SetContent(renderOverview(m.report.Attempts, m.filter.CurveWindow, m.width))
}

func (m *Model) renderHeader() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	tabs := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	return tabs + "\n" + headerStyle.Render(m.filterSummary())
}

func (m *Model) filterSummary() string {
	kind := m.filter.Kind
	if kind == "" {
		kind = "all"
	}
	lang := m.filter.Lang
	if lang == "" {
		lang = "all"
	}
	window := "all"
	if m.filter.CurveWindow > 0 {
		window = fmt.Sprintf("%d", m.filter.CurveWindow)
	}
	return fmt.Sprintf("Kind: %s  Lang: %s  Window: %s", kind, lang, window)
}

func (m *Model) renderFooter() string {
	help := headerStyle.Render("h/l tabs  f kind  -/= window  j/k scroll  esc back")
	if m.errMsg == "" {
		return help
	}
	return errorStyle.Render("Error: "+m.errMsg) + "\n" + help
}

func renderOverview(attempts []model.AttemptAggregate, window, width int) string {
	if len(attempts) == 0 {
		return "No attempts yet. Finish a lesson or a game to see it here."
	}
	sections := []string{renderSummaryCards(attempts, width)}

	series := stats.WPMSeries(attempts)
	if window > 1 {
		series = stats.MovingAverage(series, window)
	}
	spark := stats.Sparkline(series)
	if width > 0 {
		spark = truncateLine(spark, max(1, width-6))
	}
	sections = append(sections, cardTitleStyle.Render("WPM")+" "+spark)
	sections = append(sections, renderRecent(attempts, time.Now()))
	return strings.Join(sections, "\n\n")
}

func renderSummaryCards(attempts []model.AttemptAggregate, width int) string {
	s := stats.Summarize(attempts)
	cards := []string{
		metricCard("Attempts", fmt.Sprintf("%d", s.Attempts)),
		metricCard("Avg WPM", fmt.Sprintf("%.1f", s.AvgWPM)),
		metricCard("Best WPM", fmt.Sprintf("%d", s.BestWPM)),
		metricCard("Avg Accuracy", fmt.Sprintf("%.1f%%", s.AvgAccuracy)),
		metricCard("Time Typed", formatDuration(time.Duration(s.TotalMs)*time.Millisecond)),
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, cards...)
	if width > 0 && lipgloss.Width(row) > width {
		half := len(cards) / 2
		return lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.JoinHorizontal(lipgloss.Top, cards[:half]...),
			lipgloss.JoinHorizontal(lipgloss.Top, cards[half:]...),
		)
	}
	return row
}

func metricCard(label, value string) string {
	content := cardTitleStyle.Render(label) + "\n" + cardValueStyle.Render(value)
	return cardStyle.Render(content)
}

func renderRecent(attempts []model.AttemptAggregate, now time.Time) string {
	recent := lo.Reverse(append([]model.AttemptAggregate(nil), attempts...))
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}
	lines := []string{cardTitleStyle.Render("Recent")}
	for _, a := range recent {
		name := a.LessonID
		if a.Kind == model.KindGame {
			name = "game"
		}
		lines = append(lines, mutedStyle.Render(fmt.Sprintf("%-16s %3d wpm %3d%%  %-10s %s",
			truncateLine(name, 16),
			a.WPM,
			a.Accuracy,
			formatDuration(time.Duration(a.DurationMs)*time.Millisecond),
			humanize.RelTime(a.EndedAt, now, "ago", "from now"),
		)))
	}
	return strings.Join(lines, "\n")
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return "0 seconds"
	}
	return durafmt.Parse(d.Truncate(time.Second)).LimitFirstN(2).String()
}

func buildKeyTable(aggs []model.KeyAggregate, width, height int) table.Model {
	columns := []table.Column{
		{Title: "Key", Width: 8},
		{Title: "Accuracy", Width: 9},
		{Title: "Correct", Width: 7},
		{Title: "Incorrect", Width: 9},
		{Title: "Total", Width: 6},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(buildKeyRows(aggs)),
		table.WithHeight(max(1, height-1)),
	)
	t.SetWidth(width)
	t.SetStyles(keyTableStyles())
	return t
}

// buildKeyRows lists keys weakest first with a typed total column.
func buildKeyRows(aggs []model.KeyAggregate) []table.Row {
	return lo.Map(stats.KeyRows(aggs), func(r stats.KeyRow, _ int) table.Row {
		return table.Row{
			r.Char,
			fmt.Sprintf("%.1f%%", r.Accuracy*100),
			fmt.Sprint(r.Correct),
			fmt.Sprint(r.Incorrect),
			fmt.Sprint(r.Correct + r.Incorrect),
		}
	})
}

func keyTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func nextKind(kind string) string {
	switch kind {
	case "":
		return model.KindLesson
	case model.KindLesson:
		return model.KindGame
	default:
		return ""
	}
}

// curveWindows are the selectable "last N attempts" windows; 0 means all.
var curveWindows = []int{0, 3, 5, 10, 20}

// stepCurveWindow moves n by delta along curveWindows, clamping at both
// ends. Values not in the list snap to the nearest larger step.
func stepCurveWindow(n, delta int) int {
	idx := len(curveWindows) - 1
	for i, w := range curveWindows {
		if w >= n {
			idx = i
			break
		}
	}
	idx = min(max(idx+delta, 0), len(curveWindows)-1)
	return curveWindows[idx]
}

// fitBlock pads or clips s to exactly width x height cells.
func fitBlock(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	return lipgloss.NewStyle().
		Width(width).MaxWidth(width).
		Height(height).MaxHeight(height).
		Render(s)
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}
