package stats

import (
	"bytes"
	"strings"
	"testing"

	"github.com/verte-zerg/keyquill/internal/model"
)

func TestSessionMetrics(t *testing.T) {
	wpm, cpm, acc := SessionMetrics(50, 10, 60000)
	if wpm != 10 || cpm != 50 {
		t.Fatalf("unexpected speed: wpm=%v cpm=%v", wpm, cpm)
	}
	if acc < 0.833 || acc > 0.834 {
		t.Fatalf("unexpected accuracy %v", acc)
	}
	if wpm, _, _ := SessionMetrics(5, 0, 0); wpm != 0 {
		t.Fatalf("expected zero wpm without duration")
	}
}

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{2, 4, 6, 8}, 2)
	want := []float64{2, 3, 5, 7}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline([]float64{1, 1, 1}); got != "+++" {
		t.Fatalf("expected flat sparkline, got %q", got)
	}
	got := Sparkline([]float64{0, 10})
	if got != " @" {
		t.Fatalf("expected min/max glyphs, got %q", got)
	}
}

func TestRenderSummary(t *testing.T) {
	var buf bytes.Buffer
	attempts := []model.AttemptAggregate{{WPM: 30, Accuracy: 90}, {WPM: 50, Accuracy: 100}}
	if err := RenderSummary(&buf, attempts); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Attempts: 2", "Avg WPM: 40.0", "Best WPM: 50", "Avg Accuracy: 95.0%"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}
}

func TestRenderKeyTableSortsWeakestFirst(t *testing.T) {
	var buf bytes.Buffer
	aggs := []model.KeyAggregate{
		{Char: "a", Correct: 10},
		{Char: " ", Correct: 1, Incorrect: 1},
	}
	if err := RenderKeyTable(&buf, aggs); err != nil {
		t.Fatalf("render: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d: %q", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[2], "<space>") {
		t.Fatalf("expected space row first, got %q", lines[2])
	}
}
