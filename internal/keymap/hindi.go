package keymap

// inscript maps QWERTY keys to the Hindi InScript glyph they produce.
var inscript = map[rune]rune{
	'1': '१', '2': '२', '3': '३', '4': '४', '5': '५',
	'6': '६', '7': '७', '8': '८', '9': '९', '0': '०',
	'=': 'ृ',
	'q': 'ौ', 'w': 'ै', 'e': 'ा', 'r': 'ी', 't': 'ू',
	'y': 'ब', 'u': 'ह', 'i': 'ग', 'o': 'द', 'p': 'ज',
	'[': 'ड', ']': '़',
	'a': 'ो', 's': 'े', 'd': '्', 'f': 'ि', 'g': 'ु',
	'h': 'प', 'j': 'र', 'k': 'क', 'l': 'त', ';': 'च', '\'': 'ट',
	'z': 'ॆ', 'x': 'ं', 'c': 'म', 'v': 'न', 'b': 'व',
	'n': 'ल', 'm': 'स', '/': 'य',
	'Q': 'औ', 'W': 'ऐ', 'E': 'आ', 'R': 'ई', 'T': 'ऊ',
	'Y': 'भ', 'U': 'ङ', 'I': 'घ', 'O': 'ध', 'P': 'झ',
	'{': 'ढ', '}': 'ञ',
	'A': 'ओ', 'S': 'ए', 'D': 'अ', 'F': 'इ', 'G': 'उ',
	'H': 'फ', 'J': 'ऱ', 'K': 'ख', 'L': 'थ', ':': 'छ', '"': 'ठ',
	'Z': 'ऎ', 'X': 'ँ', 'C': 'ण', 'V': 'ऩ', 'B': 'ऴ',
	'N': 'ळ', 'M': 'श', '<': 'ष', '>': '।', '?': '\u095F',
	'+': 'ऋ', '_': 'ः',
}

var physicalByGlyph = invert(inscript)

func invert(m map[rune]rune) map[rune]rune {
	out := make(map[rune]rune, len(m))
	for k, v := range m {
		out[v] = k
	}
	return out
}

// HindiGlyphFor returns the InScript glyph produced by a physical key.
func HindiGlyphFor(key rune) (rune, bool) {
	g, ok := inscript[key]
	return g, ok
}

// PhysicalKeyFor returns the QWERTY key that produces an InScript glyph.
func PhysicalKeyFor(glyph rune) (rune, bool) {
	k, ok := physicalByGlyph[glyph]
	return k, ok
}
