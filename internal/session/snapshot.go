package session

import (
	"time"

	"github.com/verte-zerg/keyquill/internal/lesson"
)

// Snapshot is the engine state observed by the presentation layer.
type Snapshot struct {
	ActiveLesson    *lesson.Lesson
	TargetText      string
	RawInput        string
	Verdicts        []Verdict
	Cursor          int
	IsStarted       bool
	IsComplete      bool
	Stats           Stats
	StartedAt       time.Time
	Language        lesson.Language
	Phase           Phase
	CurrentExpected rune
	HasExpected     bool
}

// KeyTally counts verdicts for one expected character.
type KeyTally struct {
	Char      rune
	Correct   int
	Incorrect int
}

// KeyTallies aggregates typed verdicts by expected character, skipping
// spaces, in first-seen order.
func (s Snapshot) KeyTallies() []KeyTally {
	target := []rune(s.TargetText)
	index := map[rune]int{}
	var out []KeyTally
	for i, v := range s.Verdicts {
		if v == Untyped || i >= len(target) || target[i] == ' ' {
			continue
		}
		idx, ok := index[target[i]]
		if !ok {
			idx = len(out)
			index[target[i]] = idx
			out = append(out, KeyTally{Char: target[i]})
		}
		if v == Correct {
			out[idx].Correct++
		} else {
			out[idx].Incorrect++
		}
	}
	return out
}

// Progress is the share of target characters typed correctly, 0-1.
func (s Snapshot) Progress() float64 {
	if s.Stats.TotalChars == 0 {
		return 0
	}
	return float64(s.Stats.CorrectChars) / float64(s.Stats.TotalChars)
}

// IsCursor reports whether index i is the character awaiting input.
func (s Snapshot) IsCursor(i int) bool {
	return i == s.Cursor && !s.IsComplete
}
