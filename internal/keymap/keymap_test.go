package keymap

import "testing"

func TestFingerForHomeRow(t *testing.T) {
	cases := map[rune]Placement{
		'a': {Left, Pinky},
		's': {Left, Ring},
		'd': {Left, Middle},
		'f': {Left, Index},
		'j': {Right, Index},
		'k': {Right, Middle},
		'l': {Right, Ring},
		';': {Right, Pinky},
		' ': {Right, Thumb},
	}
	for r, want := range cases {
		got, ok := FingerFor(r)
		if !ok || got != want {
			t.Fatalf("FingerFor(%q) = %v, %v; want %v", r, got, ok, want)
		}
	}
}

func TestFingerForIsCaseInsensitive(t *testing.T) {
	for _, r := range "abcdefghijklmnopqrstuvwxyz" {
		lower, ok := FingerFor(r)
		if !ok {
			t.Fatalf("expected mapping for %q", r)
		}
		upper, ok := FingerFor(r - 'a' + 'A')
		if !ok || upper != lower {
			t.Fatalf("expected %q and its uppercase to share a finger", r)
		}
	}
}

func TestFingerForShiftedSymbols(t *testing.T) {
	got, ok := FingerFor('!')
	if !ok || got != (Placement{Left, Pinky}) {
		t.Fatalf("expected ! on left pinky, got %v", got)
	}
	got, ok = FingerFor('?')
	if !ok || got != (Placement{Right, Pinky}) {
		t.Fatalf("expected ? on right pinky, got %v", got)
	}
}

func TestFingerForUnknownCharacter(t *testing.T) {
	if _, ok := FingerFor('€'); ok {
		t.Fatalf("expected no mapping for euro sign")
	}
	if _, ok := KeyFor('\t'); ok {
		t.Fatalf("expected no key for tab")
	}
}

func TestHindiGlyphRoundTrip(t *testing.T) {
	glyph, ok := HindiGlyphFor('k')
	if !ok || glyph != 'क' {
		t.Fatalf("expected k to produce क, got %q", glyph)
	}
	key, ok := PhysicalKeyFor('क')
	if !ok || key != 'k' {
		t.Fatalf("expected क on k, got %q", key)
	}
}

func TestFingerForHindiUsesPhysicalKey(t *testing.T) {
	got, ok := FingerFor('क')
	if !ok || got != (Placement{Right, Middle}) {
		t.Fatalf("expected क on right middle, got %v ok=%v", got, ok)
	}
	got, ok = FingerFor('श')
	if !ok || got != (Placement{Right, Index}) {
		t.Fatalf("expected श on right index, got %v ok=%v", got, ok)
	}
	if !NeedsShift('श') {
		t.Fatalf("expected श to need shift")
	}
}

func TestKeyFor(t *testing.T) {
	cases := map[rune]string{'A': "a", ' ': "Space", '{': "[", 'र': "j"}
	for r, want := range cases {
		got, ok := KeyFor(r)
		if !ok || got != want {
			t.Fatalf("KeyFor(%q) = %q, %v; want %q", r, got, ok, want)
		}
	}
}

func TestLayoutKeysHaveFingers(t *testing.T) {
	for _, row := range Layout() {
		for _, key := range row {
			runes := []rune(key)
			if len(runes) != 1 {
				continue
			}
			if _, ok := FingerFor(runes[0]); !ok {
				t.Fatalf("layout key %q has no finger", key)
			}
		}
	}
}
