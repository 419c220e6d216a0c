package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/keyquill/internal/keymap"
	"github.com/verte-zerg/keyquill/internal/lesson"
)

var keyWidths = map[string]int{
	"Backspace": 9,
	"Tab":       5,
	"Caps":      6,
	"Enter":     7,
	"Shift":     8,
	"Space":     24,
	"Ctrl":      5,
	"Win":       4,
	"Alt":       4,
	"Fn":        4,
}

// keyHighlight is the key to light up for the expected character.
type keyHighlight struct {
	key   string
	shift bool
}

func highlightFor(expected rune, ok bool) keyHighlight {
	if !ok {
		return keyHighlight{}
	}
	key, found := keymap.KeyFor(expected)
	if !found {
		return keyHighlight{}
	}
	return keyHighlight{key: key, shift: keymap.NeedsShift(expected)}
}

// renderKeyboard draws the layout rows with the highlighted key. Hindi
// shows the InScript glyph on character keys.
func renderKeyboard(h keyHighlight, lang lesson.Language) string {
	rows := keymap.Layout()
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		keys := make([]string, 0, len(row))
		for _, key := range row {
			keys = append(keys, renderKey(key, h, lang))
		}
		lines = append(lines, strings.Join(keys, " "))
	}
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

func renderKey(key string, h keyHighlight, lang lesson.Language) string {
	label := key
	if lang == lesson.Hindi && len([]rune(key)) == 1 {
		if glyph, ok := keymap.HindiGlyphFor([]rune(key)[0]); ok {
			label = string(glyph)
		}
	}
	width := keyWidths[key]
	if width == 0 {
		width = 3
	}
	style := keyStyle
	if key == h.key || (h.shift && key == "Shift") {
		style = activeKeyStyle
	}
	return style.Width(width).Align(lipgloss.Center).Render(label)
}

var (
	leftFingers  = []keymap.Finger{keymap.Pinky, keymap.Ring, keymap.Middle, keymap.Index, keymap.Thumb}
	rightFingers = []keymap.Finger{keymap.Thumb, keymap.Index, keymap.Middle, keymap.Ring, keymap.Pinky}
)

// renderHands draws both hands with the finger for p highlighted.
func renderHands(p keymap.Placement, ok bool) string {
	left := renderHand(keymap.Left, leftFingers, p, ok)
	right := renderHand(keymap.Right, rightFingers, p, ok)
	hands := left + "    " + right
	caption := subtitleStyle.Render("Hands rest on the home row")
	if ok {
		caption = noticeStyle.Render("Use " + p.String())
	}
	return lipgloss.JoinVertical(lipgloss.Center, hands, caption)
}

func renderHand(hand keymap.Hand, fingers []keymap.Finger, p keymap.Placement, ok bool) string {
	parts := make([]string, 0, len(fingers))
	for _, f := range fingers {
		label := strings.ToUpper(f.String()[:1])
		style := keyStyle
		if ok && p.Hand == hand && p.Finger == f {
			style = activeKeyStyle
		}
		parts = append(parts, style.Width(3).Align(lipgloss.Center).Render(label))
	}
	return strings.Join(parts, " ")
}
