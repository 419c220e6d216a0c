// Package model defines shared data structures.
package model

import "time"

// Attempt kinds.
const (
	KindLesson = "lesson"
	KindGame   = "game"
)

// Config defines practice settings.
type Config struct {
	Lang        string
	Lesson      string
	AutoStart   bool
	WPM         string
	Timer       string
	AutoAdvance time.Duration
}

// GameConfig defines timed word game settings.
type GameConfig struct {
	Duration   time.Duration
	Batch      int
	CapsPct    float64
	PunctPct   float64
	PunctSet   string
	WordsFile  string
	FocusWeak  bool
	WeakTop    int
	WeakFactor float64
}

// HistoryFilter narrows attempts shown in the history screen.
type HistoryFilter struct {
	Kind        string
	Lang        string
	Last        int
	CurveWindow int
}

// AttemptStats captures a completed lesson attempt or game round.
type AttemptStats struct {
	ID         string
	Kind       string
	LessonID   string
	Lang       string
	StartedAt  time.Time
	EndedAt    time.Time
	Correct    int
	Incorrect  int
	DurationMs int64
	WPM        int
	Accuracy   int
}

// KeyStats stores per-character counts for an attempt.
type KeyStats struct {
	Char      string
	Correct   int
	Incorrect int
}

// KeyAggregate aggregates character counts across attempts.
type KeyAggregate struct {
	Char      string
	Correct   int
	Incorrect int
}

// AttemptAggregate summarizes an attempt for reporting.
type AttemptAggregate struct {
	AttemptID  string
	Kind       string
	LessonID   string
	EndedAt    time.Time
	Correct    int
	Incorrect  int
	DurationMs int64
	WPM        int
	Accuracy   int
}
