// Package keymap maps typed characters to keyboard keys and fingers.
package keymap

import "unicode"

// Hand identifies the typing hand.
type Hand string

// Hands.
const (
	Left  Hand = "left"
	Right Hand = "right"
)

// Finger numbers the fingers of one hand.
type Finger int

// Fingers, numbered from the index finger outward; the thumb is last.
const (
	Index Finger = iota
	Middle
	Ring
	Pinky
	Thumb
)

// String returns the finger name.
func (f Finger) String() string {
	switch f {
	case Index:
		return "index"
	case Middle:
		return "middle"
	case Ring:
		return "ring"
	case Pinky:
		return "pinky"
	case Thumb:
		return "thumb"
	default:
		return "unknown"
	}
}

// Placement is the hand and finger conventionally used for a key.
type Placement struct {
	Hand   Hand
	Finger Finger
}

// String renders the placement as "left index".
func (p Placement) String() string {
	return string(p.Hand) + " " + p.Finger.String()
}

var fingerColumns = []struct {
	keys      string
	placement Placement
}{
	{"`1qaz", Placement{Left, Pinky}},
	{"2wsx", Placement{Left, Ring}},
	{"3edc", Placement{Left, Middle}},
	{"4rfv5tgb", Placement{Left, Index}},
	{"6yhn7ujm", Placement{Right, Index}},
	{"8ik,", Placement{Right, Middle}},
	{"9ol.", Placement{Right, Ring}},
	{"0p;/-=[]'\\", Placement{Right, Pinky}},
}

// shiftedBase maps shifted US QWERTY symbols to their unshifted key.
var shiftedBase = map[rune]rune{
	'~': '`', '!': '1', '@': '2', '#': '3', '$': '4', '%': '5',
	'^': '6', '&': '7', '*': '8', '(': '9', ')': '0', '_': '-',
	'+': '=', '{': '[', '}': ']', '|': '\\', ':': ';', '"': '\'',
	'<': ',', '>': '.', '?': '/',
}

var fingerByKey = buildFingerTable()

func buildFingerTable() map[rune]Placement {
	table := map[rune]Placement{' ': {Right, Thumb}}
	for _, col := range fingerColumns {
		for _, r := range col.keys {
			table[r] = col.placement
		}
	}
	return table
}

// BaseKey returns the unshifted physical key producing r on a US QWERTY
// layout, and whether Shift is needed.
func BaseKey(r rune) (key rune, shifted bool, ok bool) {
	if r >= 'A' && r <= 'Z' {
		return unicode.ToLower(r), true, true
	}
	if base, found := shiftedBase[r]; found {
		return base, true, true
	}
	if _, found := fingerByKey[r]; found {
		return r, false, true
	}
	return 0, false, false
}

// FingerFor returns the placement for a typed character. Letters are
// case-insensitive. Devanagari glyphs resolve through their InScript key.
func FingerFor(r rune) (Placement, bool) {
	if key, _, ok := BaseKey(r); ok {
		return fingerByKey[key], true
	}
	if key, ok := PhysicalKeyFor(r); ok {
		if base, _, ok := BaseKey(key); ok {
			return fingerByKey[base], true
		}
	}
	return Placement{}, false
}

// KeyFor returns the label of the keyboard key that types r, as used by
// Layout rows. Space resolves to "Space".
func KeyFor(r rune) (string, bool) {
	if r == ' ' {
		return "Space", true
	}
	if key, _, ok := BaseKey(r); ok {
		return string(key), true
	}
	if phys, ok := PhysicalKeyFor(r); ok {
		if key, _, ok := BaseKey(phys); ok {
			return string(key), true
		}
	}
	return "", false
}

// NeedsShift reports whether typing r requires Shift.
func NeedsShift(r rune) bool {
	if _, shifted, ok := BaseKey(r); ok {
		return shifted
	}
	if phys, ok := PhysicalKeyFor(r); ok {
		_, shifted, _ := BaseKey(phys)
		return shifted
	}
	return false
}

// Layout returns the keyboard rows rendered by the virtual keyboard.
func Layout() [][]string {
	return [][]string{
		{"`", "1", "2", "3", "4", "5", "6", "7", "8", "9", "0", "-", "=", "Backspace"},
		{"Tab", "q", "w", "e", "r", "t", "y", "u", "i", "o", "p", "[", "]", "\\"},
		{"Caps", "a", "s", "d", "f", "g", "h", "j", "k", "l", ";", "'", "Enter"},
		{"Shift", "z", "x", "c", "v", "b", "n", "m", ",", ".", "/", "Shift"},
		{"Ctrl", "Win", "Alt", "Space", "Alt", "Fn", "Ctrl"},
	}
}
