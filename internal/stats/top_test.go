package stats

import (
	"testing"

	"github.com/verte-zerg/keyquill/internal/model"
)

func TestTopCharsByFrequency(t *testing.T) {
	aggs := []model.KeyAggregate{
		{Char: "b", Correct: 3, Incorrect: 1},
		{Char: "a", Correct: 2, Incorrect: 2},
		{Char: "c", Correct: 1, Incorrect: 0},
	}
	top := TopCharsByFrequency(aggs, 2)
	if len(top) != 2 {
		t.Fatalf("expected 2 chars, got %d", len(top))
	}
	if top[0] != "a" || top[1] != "b" {
		t.Fatalf("unexpected order: %v", top)
	}
}

func TestSelectWeakChars(t *testing.T) {
	aggs := []model.KeyAggregate{
		{Char: "a", Correct: 9, Incorrect: 1},
		{Char: "s", Correct: 1, Incorrect: 3},
		{Char: "d", Correct: 2, Incorrect: 2},
	}
	weak := SelectWeakChars(aggs, 2)
	if len(weak) != 2 {
		t.Fatalf("expected 2 weak chars, got %d", len(weak))
	}
	for _, r := range []rune{'s', 'd'} {
		if _, ok := weak[r]; !ok {
			t.Fatalf("expected %q in weak set", r)
		}
	}
}

func TestSelectWeakCharsSkipsRareKeys(t *testing.T) {
	aggs := []model.KeyAggregate{
		{Char: "q", Correct: 0, Incorrect: 1},
		{Char: "f", Correct: 3, Incorrect: 2},
		{Char: "j", Correct: 8, Incorrect: 0},
	}
	weak := SelectWeakChars(aggs, 1)
	if _, ok := weak['f']; !ok || len(weak) != 1 {
		t.Fatalf("expected only f, got %v", weak)
	}
}

func TestSelectWeakCharsFallsBackToRareKeys(t *testing.T) {
	aggs := []model.KeyAggregate{
		{Char: "क", Correct: 0, Incorrect: 2},
		{Char: "x", Correct: 1, Incorrect: 0},
	}
	weak := SelectWeakChars(aggs, 0)
	if len(weak) != 2 {
		t.Fatalf("expected both keys, got %v", weak)
	}
	if _, ok := weak['क']; !ok {
		t.Fatalf("expected Devanagari key in weak set")
	}
}
