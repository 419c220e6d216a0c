// Package session implements the typing session engine: it diffs typed
// input against a lesson, derives statistics and drives lesson progression.
package session

import (
	"time"

	"github.com/verte-zerg/keyquill/internal/lesson"
)

// TimerPolicy selects when the attempt clock starts.
type TimerPolicy int

// Timer policies.
const (
	// TimerOnFirstKey starts the clock on the first non-empty input.
	TimerOnFirstKey TimerPolicy = iota
	// TimerOnStart starts the clock when Start is called.
	TimerOnStart
)

// Options configures an Engine.
type Options struct {
	Catalog  *lesson.Catalog
	Language lesson.Language
	// AutoStart makes Start select the first lesson of the active
	// language when no lesson is selected.
	AutoStart bool
	WPM       WPMPolicy
	Timer     TimerPolicy
	Clock     func() time.Time
}

// AdvanceToken identifies the attempt a deferred advance was scheduled for.
type AdvanceToken struct {
	attempt  uint64
	lessonID string
}

// LessonID returns the lesson the token was issued for.
func (t AdvanceToken) LessonID() string {
	return t.lessonID
}

// Engine owns the session state. It is not safe for concurrent use; the
// presentation layer drives it from a single event loop.
type Engine struct {
	catalog   *lesson.Catalog
	language  lesson.Language
	autoStart bool
	wpm       WPMPolicy
	timer     TimerPolicy
	now       func() time.Time

	active    *lesson.Lesson
	target    []rune
	input     []rune
	verdicts  []Verdict
	startedAt time.Time
	started   bool
	complete  bool
	stats     Stats
	attempt   uint64
}

// New constructs an engine with no lesson selected.
func New(opts Options) *Engine {
	catalog := opts.Catalog
	if catalog == nil {
		catalog = lesson.Default()
	}
	lang := opts.Language
	if !lang.Valid() {
		lang = lesson.English
	}
	now := opts.Clock
	if now == nil {
		now = time.Now
	}
	e := &Engine{
		catalog:   catalog,
		language:  lang,
		autoStart: opts.AutoStart,
		wpm:       opts.WPM,
		timer:     opts.Timer,
		now:       now,
	}
	e.Reset()
	return e
}

// Language returns the active language filter.
func (e *Engine) Language() lesson.Language {
	return e.language
}

// Lessons returns the catalog subset for the active language.
func (e *Engine) Lessons() []lesson.Lesson {
	return e.catalog.FilterByLanguage(e.language)
}

// Catalog returns the catalog the engine was built with.
func (e *Engine) Catalog() *lesson.Catalog {
	return e.catalog
}

// SelectLesson activates the lesson with the given id and resets the
// attempt. Ids outside the filtered catalog are ignored.
func (e *Engine) SelectLesson(id string) bool {
	l, ok := e.catalog.ByID(id)
	if !ok || l.Language != e.language {
		return false
	}
	e.active = &l
	e.target = []rune(l.Content)
	e.Reset()
	return true
}

// Reset clears the attempt for the current target text.
func (e *Engine) Reset() {
	e.input = nil
	e.verdicts = make([]Verdict, len(e.target))
	e.startedAt = time.Time{}
	e.started = false
	e.complete = false
	e.stats = Stats{TotalChars: len(e.target)}
	e.attempt++
}

// Start unlocks input. Starting a completed attempt begins a fresh one.
func (e *Engine) Start() bool {
	if e.active == nil {
		if !e.autoStart {
			return false
		}
		lessons := e.Lessons()
		if len(lessons) == 0 || !e.SelectLesson(lessons[0].ID) {
			return false
		}
	}
	if e.complete {
		e.Reset()
	}
	if e.started {
		return false
	}
	e.started = true
	if e.timer == TimerOnStart {
		e.startedAt = e.now()
	}
	return true
}

// SubmitInput replaces the typed text and recomputes verdicts and stats.
// It reports whether this call completed the attempt.
func (e *Engine) SubmitInput(raw string) bool {
	if !e.started || e.complete {
		return false
	}
	input := []rune(raw)
	if len(input) > len(e.target) {
		input = input[:len(e.target)]
	}
	if e.startedAt.IsZero() && len(input) > 0 {
		e.startedAt = e.now()
	}
	e.input = input
	for i := range e.verdicts {
		switch {
		case i >= len(input):
			e.verdicts[i] = Untyped
		case input[i] == e.target[i]:
			e.verdicts[i] = Correct
		default:
			e.verdicts[i] = Incorrect
		}
	}
	e.refreshStats()
	if len(e.target) > 0 && len(input) == len(e.target) {
		e.complete = true
		return true
	}
	return false
}

// Tick refreshes the elapsed time while an attempt is in progress.
func (e *Engine) Tick() {
	if !e.started || e.complete {
		return
	}
	e.refreshStats()
}

func (e *Engine) refreshStats() {
	var elapsed time.Duration
	if !e.startedAt.IsZero() {
		elapsed = e.now().Sub(e.startedAt)
	}
	e.stats = computeStats(e.verdicts, len(e.input), elapsed, e.wpm)
}

// AdvanceToNextLesson selects the lesson after the active one in the
// filtered catalog. It does nothing on the last lesson.
func (e *Engine) AdvanceToNextLesson() bool {
	id := ""
	if e.active != nil {
		id = e.active.ID
	}
	next, ok := e.catalog.Next(e.language, id)
	if !ok {
		return false
	}
	return e.SelectLesson(next.ID)
}

// Pending returns the token a deferred auto-advance must present.
func (e *Engine) Pending() AdvanceToken {
	tok := AdvanceToken{attempt: e.attempt}
	if e.active != nil {
		tok.lessonID = e.active.ID
	}
	return tok
}

// AdvanceIfCurrent advances only when the engine is still complete for
// the attempt the token was issued for.
func (e *Engine) AdvanceIfCurrent(tok AdvanceToken) bool {
	if !e.complete || tok.attempt != e.attempt || e.active == nil || e.active.ID != tok.lessonID {
		return false
	}
	return e.AdvanceToNextLesson()
}

// SetLanguage switches the lesson filter. A selected lesson in another
// language is cleared.
func (e *Engine) SetLanguage(lang lesson.Language) {
	if !lang.Valid() || lang == e.language {
		return
	}
	e.language = lang
	if e.active != nil && e.active.Language != lang {
		e.active = nil
		e.target = nil
		e.Reset()
	}
}

// Phase returns the attempt phase.
func (e *Engine) Phase() Phase {
	switch {
	case e.active == nil:
		return Idle
	case e.complete:
		return Complete
	case e.started:
		return InProgress
	default:
		return Ready
	}
}

// Snapshot returns a read-only copy of the session state.
func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		TargetText: string(e.target),
		RawInput:   string(e.input),
		Verdicts:   append([]Verdict(nil), e.verdicts...),
		Cursor:     len(e.input),
		IsStarted:  e.started,
		IsComplete: e.complete,
		Stats:      e.stats,
		StartedAt:  e.startedAt,
		Language:   e.language,
		Phase:      e.Phase(),
	}
	if e.active != nil {
		l := *e.active
		s.ActiveLesson = &l
	}
	if s.Cursor < len(e.target) {
		s.CurrentExpected = e.target[s.Cursor]
		s.HasExpected = true
	}
	return s
}
