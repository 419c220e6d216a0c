// Package game implements the timed word game: type as many queued words
// as possible before the clock runs out.
package game

import (
	"math"
	"strings"
	"time"

	"github.com/verte-zerg/keyquill/internal/generator"
	"github.com/verte-zerg/keyquill/internal/session"
)

const (
	// DefaultDuration is the length of a round.
	DefaultDuration = 30 * time.Second
	// DefaultBatch is the number of words generated when a round starts.
	DefaultBatch = 50

	refillBelow = 10
	refillCount = 20
)

// State is the lifecycle position of a round.
type State int

// Round states.
const (
	// StateIdle means no round has started yet.
	StateIdle State = iota
	// StateRunning means the clock is running and words are accepted.
	StateRunning
	// StateOver means the duration elapsed; Result is final.
	StateOver
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateOver:
		return "over"
	default:
		return "idle"
	}
}

// Options configures a Game.
type Options struct {
	Duration  time.Duration
	Batch     int
	Words     []string
	Generator *generator.Generator
	Style     generator.Style
	// WeakSet biases word selection toward these characters when non-empty.
	WeakSet    map[rune]struct{}
	WeakFactor float64
}

// Result summarizes a finished round.
type Result struct {
	CorrectWords int
	Submitted    int
	Duration     time.Duration
	WPM          int
}

// Game holds the state of one timed round.
type Game struct {
	opts      Options
	state     State
	queue     []string
	input     string
	correct   []string
	submitted int
	startedAt time.Time
	tallies   []session.KeyTally
	tallyIdx  map[rune]int
}

// New returns an idle game. Empty fields of opts take defaults.
func New(opts Options) *Game {
	if opts.Duration <= 0 {
		opts.Duration = DefaultDuration
	}
	if opts.Batch <= 0 {
		opts.Batch = DefaultBatch
	}
	if opts.Generator == nil {
		opts.Generator = generator.New()
	}
	return &Game{opts: opts, tallyIdx: map[rune]int{}}
}

// Start begins a new round at now, discarding any previous one.
func (g *Game) Start(now time.Time) {
	g.state = StateRunning
	g.startedAt = now
	g.input = ""
	g.correct = nil
	g.submitted = 0
	g.tallies = nil
	g.tallyIdx = map[rune]int{}
	g.queue = g.generate(g.opts.Batch)
}

// Submit takes the whole input field and returns what the field should
// hold afterwards. A trailing space submits the typed word against the
// head of the queue.
func (g *Game) Submit(input string) string {
	if g.state != StateRunning {
		return ""
	}
	if !strings.HasSuffix(input, " ") {
		g.input = input
		return input
	}
	typed := strings.TrimSpace(input)
	g.input = ""
	if typed == "" || len(g.queue) == 0 {
		return ""
	}
	target := g.queue[0]
	g.tally(target, typed)
	g.submitted++
	if typed == target {
		g.correct = append(g.correct, typed)
	}
	g.queue = g.queue[1:]
	if len(g.queue) < refillBelow {
		g.queue = append(g.queue, g.generate(refillCount)...)
	}
	return ""
}

// Tick ends the round when its duration has elapsed at now. It reports
// whether this call ended the round.
func (g *Game) Tick(now time.Time) bool {
	if g.state != StateRunning {
		return false
	}
	if now.Sub(g.startedAt) < g.opts.Duration {
		return false
	}
	g.state = StateOver
	g.input = ""
	return true
}

// Remaining returns the time left in the round at now.
func (g *Game) Remaining(now time.Time) time.Duration {
	switch g.state {
	case StateRunning:
		return max(0, g.opts.Duration-now.Sub(g.startedAt))
	case StateOver:
		return 0
	default:
		return g.opts.Duration
	}
}

// Result returns the score of the current or finished round.
func (g *Game) Result() Result {
	secs := g.opts.Duration.Seconds()
	wpm := 0
	if secs > 0 {
		wpm = int(math.Round(float64(len(g.correct)) / secs * 60))
	}
	return Result{
		CorrectWords: len(g.correct),
		Submitted:    g.submitted,
		Duration:     g.opts.Duration,
		WPM:          wpm,
	}
}

// State reports where the round is in its lifecycle.
func (g *Game) State() State { return g.state }

// StartedAt is the time passed to the last Start.
func (g *Game) StartedAt() time.Time { return g.startedAt }

// Input is the partial word typed for the head of the queue.
func (g *Game) Input() string { return g.input }

// Duration is the round length after defaults are applied.
func (g *Game) Duration() time.Duration { return g.opts.Duration }

// Queue returns a copy of the words still to be typed.
func (g *Game) Queue() []string {
	out := make([]string, len(g.queue))
	copy(out, g.queue)
	return out
}

// KeyTallies returns per-character counts over submitted words, in
// first-seen order.
func (g *Game) KeyTallies() []session.KeyTally {
	out := make([]session.KeyTally, len(g.tallies))
	copy(out, g.tallies)
	return out
}

func (g *Game) tally(target, typed string) {
	want := []rune(target)
	got := []rune(typed)
	for i, r := range want {
		idx, ok := g.tallyIdx[r]
		if !ok {
			idx = len(g.tallies)
			g.tallyIdx[r] = idx
			g.tallies = append(g.tallies, session.KeyTally{Char: r})
		}
		if i < len(got) && got[i] == r {
			g.tallies[idx].Correct++
		} else {
			g.tallies[idx].Incorrect++
		}
	}
}

func (g *Game) generate(n int) []string {
	o := g.opts
	if len(o.WeakSet) > 0 && o.WeakFactor > 0 {
		return o.Generator.GenerateWeighted(o.Words, n, o.Style, o.WeakSet, o.WeakFactor)
	}
	return o.Generator.Generate(o.Words, n, o.Style)
}
