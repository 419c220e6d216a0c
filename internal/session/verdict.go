package session

// Verdict classifies one target character against the typed input.
type Verdict int

// Verdicts.
const (
	Untyped Verdict = iota
	Correct
	Incorrect
)

// String returns the verdict name.
func (v Verdict) String() string {
	switch v {
	case Correct:
		return "correct"
	case Incorrect:
		return "incorrect"
	default:
		return "untyped"
	}
}

// DisplayState is how the presentation layer should draw a character.
type DisplayState int

// Display states.
const (
	DisplayPending DisplayState = iota
	DisplayCursor
	DisplayCorrect
	DisplayIncorrect
)

// Display maps a verdict and cursor flag to a display state. The cursor
// takes precedence over the verdict.
func Display(v Verdict, isCursor bool) DisplayState {
	if isCursor {
		return DisplayCursor
	}
	switch v {
	case Correct:
		return DisplayCorrect
	case Incorrect:
		return DisplayIncorrect
	default:
		return DisplayPending
	}
}

// Phase is the attempt state.
type Phase int

// Phases.
const (
	Idle Phase = iota
	Ready
	InProgress
	Complete
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case Ready:
		return "ready"
	case InProgress:
		return "in-progress"
	case Complete:
		return "complete"
	default:
		return "idle"
	}
}
