// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/verte-zerg/keyquill/internal/model"
)

const sparkChars = " .:-=+*#%@"

// SessionMetrics computes WPM, CPM, and accuracy (0-1) from counts.
func SessionMetrics(correct, incorrect int, durationMs int64) (wpm, cpm, accuracy float64) {
	den := float64(correct + incorrect)
	if den > 0 {
		accuracy = float64(correct) / den
	}
	if durationMs <= 0 {
		return 0, 0, accuracy
	}
	minutes := float64(durationMs) / 60000.0
	wpm = (float64(correct) / 5.0) / minutes
	cpm = float64(correct) / minutes
	return wpm, cpm, accuracy
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 1 || len(values) == 0 {
		copy(out, values)
		return out
	}
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := lo.Min(values)
	maxVal := lo.Max(values)
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		idx = max(0, min(idx, len(sparkChars)-1))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// WPMSeries returns the recorded WPM of each attempt.
func WPMSeries(attempts []model.AttemptAggregate) []float64 {
	return lo.Map(attempts, func(a model.AttemptAggregate, _ int) float64 {
		return float64(a.WPM)
	})
}

// Summary aggregates attempts for the overview cards.
type Summary struct {
	Attempts    int
	AvgWPM      float64
	BestWPM     int
	AvgAccuracy float64
	TotalMs     int64
}

// Summarize computes the overview numbers for attempts.
func Summarize(attempts []model.AttemptAggregate) Summary {
	if len(attempts) == 0 {
		return Summary{}
	}
	s := Summary{Attempts: len(attempts)}
	var wpm, acc float64
	for _, a := range attempts {
		wpm += float64(a.WPM)
		acc += float64(a.Accuracy)
		s.TotalMs += a.DurationMs
		if a.WPM > s.BestWPM {
			s.BestWPM = a.WPM
		}
	}
	s.AvgWPM = wpm / float64(len(attempts))
	s.AvgAccuracy = acc / float64(len(attempts))
	return s
}

// RenderSummary prints a summary block for attempts.
func RenderSummary(w io.Writer, attempts []model.AttemptAggregate) error {
	if len(attempts) == 0 {
		_, err := fmt.Fprintln(w, "No attempts yet.")
		return err
	}
	s := Summarize(attempts)
	lines := []string{
		"Summary",
		fmt.Sprintf("Attempts: %d", s.Attempts),
		fmt.Sprintf("Avg WPM: %.1f", s.AvgWPM),
		fmt.Sprintf("Best WPM: %d", s.BestWPM),
		fmt.Sprintf("Avg Accuracy: %.1f%%", s.AvgAccuracy),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// KeyRow is one formatted row of the per-key table.
type KeyRow struct {
	Char      string
	Accuracy  float64
	Correct   int
	Incorrect int
}

// KeyRows sorts aggregates by lowest accuracy and labels the space key.
func KeyRows(aggs []model.KeyAggregate) []KeyRow {
	rows := lo.Map(aggs, func(agg model.KeyAggregate, _ int) KeyRow {
		label := agg.Char
		if label == " " {
			label = "<space>"
		}
		return KeyRow{Char: label, Accuracy: accuracy(agg), Correct: agg.Correct, Incorrect: agg.Incorrect}
	})
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Accuracy == rows[j].Accuracy {
			return rows[i].Char < rows[j].Char
		}
		return rows[i].Accuracy < rows[j].Accuracy
	})
	return rows
}

// RenderKeyTable prints per-key aggregates, weakest first.
func RenderKeyTable(w io.Writer, aggs []model.KeyAggregate) error {
	if len(aggs) == 0 {
		_, err := fmt.Fprintln(w, "No key stats yet.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Per-Key"); err != nil {
		return err
	}
	tbl := newTextTable(
		column{title: "Key"},
		column{title: "Accuracy", right: true},
		column{title: "Correct", right: true},
		column{title: "Incorrect", right: true},
	)
	for _, r := range KeyRows(aggs) {
		tbl.add(r.Char, fmt.Sprintf("%.2f%%", r.Accuracy*100), fmt.Sprintf("%d", r.Correct), fmt.Sprintf("%d", r.Incorrect))
	}
	return tbl.write(w)
}
