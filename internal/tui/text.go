package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/keyquill/internal/session"
)

// wrongSpaceGlyph replaces a mistyped space so the error stays visible.
const wrongSpaceGlyph = '•'

// maxTextLines bounds the lesson text block; longer lessons scroll.
const maxTextLines = 6

// cell is one rendered target character.
type cell struct {
	text   string
	width  int
	space  bool
	cursor bool
}

// targetCells styles every target character by its display state. The
// untyped rest of the word holding the cursor gets its own style.
func targetCells(snap session.Snapshot) []cell {
	target := []rune(snap.TargetText)
	wordStart, wordEnd := -1, -1
	if !snap.IsComplete && snap.Cursor >= 0 && snap.Cursor < len(target) {
		wordStart, wordEnd = wordAround(target, snap.Cursor)
	}

	cells := make([]cell, len(target))
	for i, r := range target {
		verdict := session.Untyped
		if i < len(snap.Verdicts) {
			verdict = snap.Verdicts[i]
		}
		shown, style := r, pendingStyle
		switch session.Display(verdict, snap.IsCursor(i)) {
		case session.DisplayCorrect:
			style = correctStyle
		case session.DisplayIncorrect:
			style = incorrectStyle
			if r == ' ' {
				shown = wrongSpaceGlyph
			}
		case session.DisplayCursor:
			style = cursorStyle
		default:
			if r != ' ' && i >= wordStart && i < wordEnd {
				style = currentWordStyle
			}
		}
		cells[i] = cell{
			text:   style.Render(string(shown)),
			width:  runewidth.RuneWidth(shown),
			space:  r == ' ',
			cursor: snap.IsCursor(i),
		}
	}
	return cells
}

// wordAround returns the [start, end) bounds of the word at i. On a space
// it returns the word that follows.
func wordAround(text []rune, i int) (int, int) {
	for i < len(text) && text[i] == ' ' {
		i++
	}
	start, end := i, i
	for start > 0 && text[start-1] != ' ' {
		start--
	}
	for end < len(text) && text[end] != ' ' {
		end++
	}
	return start, end
}

// layoutCells breaks cells into lines no wider than width, preferring to
// break after a space. A word longer than the line is split. Width <= 0
// keeps everything on one line.
func layoutCells(cells []cell, width int) [][]cell {
	if width <= 0 {
		return [][]cell{cells}
	}
	var lines [][]cell
	var line []cell
	used, breakAt := 0, -1
	for _, c := range cells {
		for used+c.width > width && len(line) > 0 {
			cut := len(line)
			if breakAt >= 0 {
				cut = breakAt + 1
			}
			lines = append(lines, line[:cut:cut])
			line = append([]cell(nil), line[cut:]...)
			used, breakAt = 0, -1
			for j, rest := range line {
				used += rest.width
				if rest.space {
					breakAt = j
				}
			}
		}
		line = append(line, c)
		used += c.width
		if c.space {
			breakAt = len(line) - 1
		}
	}
	return append(lines, line)
}

// visibleLines returns at most limit lines, scrolled so the cursor line
// sits on the second row once the text is taller than limit.
func visibleLines(lines [][]cell, limit int) [][]cell {
	if limit <= 0 || len(lines) <= limit {
		return lines
	}
	cursorLine := 0
	for i, line := range lines {
		for _, c := range line {
			if c.cursor {
				cursorLine = i
			}
		}
	}
	top := min(max(0, cursorLine-1), len(lines)-limit)
	return lines[top : top+limit]
}

func renderLessonText(snap session.Snapshot, width int) string {
	lines := visibleLines(layoutCells(targetCells(snap), width), maxTextLines)
	rendered := make([]string, len(lines))
	for i, line := range lines {
		var b strings.Builder
		for _, c := range line {
			b.WriteString(c.text)
		}
		rendered[i] = b.String()
	}
	return lipgloss.JoinVertical(lipgloss.Left, rendered...)
}
