package tui

import "github.com/charmbracelet/lipgloss"

var (
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#7FD88F"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Background(lipgloss.Color("#3A1E1E"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	cursorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Underline(true)
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))

	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	subtitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	badgeStyle    = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	badgeLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	badgeValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	noticeStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))

	sidebarStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), false, true, false, false).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	categoryStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C")).Bold(true)
	lessonStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#B0B0B0"))
	activeLessonStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)

	keyStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#B0B0B0")).Background(lipgloss.Color("#2A2A2A"))
	activeKeyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#1A1A1A")).Background(lipgloss.Color("#C89A3A")).Bold(true)
)

var difficultyStyles = map[string]lipgloss.Style{
	"beginner":     lipgloss.NewStyle().Foreground(lipgloss.Color("#7FD88F")),
	"intermediate": lipgloss.NewStyle().Foreground(lipgloss.Color("#E0C060")),
	"advanced":     lipgloss.NewStyle().Foreground(lipgloss.Color("#FF7A6E")),
}
