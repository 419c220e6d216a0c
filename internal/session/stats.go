package session

import (
	"math"
	"time"

	"github.com/samber/lo"
)

// WPMPolicy selects which characters count toward typing speed.
type WPMPolicy int

// WPM policies.
const (
	// WPMCorrectChars counts only correctly typed characters.
	WPMCorrectChars WPMPolicy = iota
	// WPMRawChars counts every typed character.
	WPMRawChars
)

// Stats are derived from the verdicts and the clock.
type Stats struct {
	WordsPerMinute  int
	AccuracyPercent int
	ElapsedSeconds  float64
	CorrectChars    int
	IncorrectChars  int
	TotalChars      int
}

func computeStats(verdicts []Verdict, cursor int, elapsed time.Duration, policy WPMPolicy) Stats {
	correct := lo.Count(verdicts, Correct)
	incorrect := lo.Count(verdicts, Incorrect)
	st := Stats{
		CorrectChars:   correct,
		IncorrectChars: incorrect,
		TotalChars:     len(verdicts),
	}
	if elapsed > 0 {
		st.ElapsedSeconds = elapsed.Seconds()
	}
	if cursor > 0 {
		st.AccuracyPercent = int(math.Round(100 * float64(correct) / float64(cursor)))
	}
	if st.ElapsedSeconds > 0 {
		counted := correct
		if policy == WPMRawChars {
			counted = cursor
		}
		st.WordsPerMinute = int(math.Round((float64(counted) / 5) / (st.ElapsedSeconds / 60)))
	}
	return st
}
