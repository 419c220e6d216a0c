// Package generator picks words for timed rounds.
package generator

import (
	"math/rand"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/samber/lo"
)

// Style decorates picked words.
type Style struct {
	// Caps is the chance (0-1) the first letter is upper-cased.
	Caps float64
	// Punct is the chance (0-1) a mark from PunctSet is appended.
	Punct    float64
	PunctSet []rune
}

// Generator produces randomized word sequences.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewWithSeed(time.Now().UnixNano())
}

// NewWithSeed returns a Generator with a fixed seed.
func NewWithSeed(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// ParsePunctSet returns the distinct punctuation runes of set in order.
func ParsePunctSet(set string) []rune {
	return lo.Uniq([]rune(strings.TrimSpace(set)))
}

// Generate picks count words uniformly.
func (g *Generator) Generate(words []string, count int, style Style) []string {
	if len(words) == 0 || count <= 0 {
		return nil
	}
	return g.pick(count, style, func() string {
		return words[g.rnd.Intn(len(words))]
	})
}

// GenerateWeighted picks count words, giving each word extra weight of
// factor per character found in weak. Matching ignores case. With no weak
// keys or a non-positive factor it behaves like Generate.
func (g *Generator) GenerateWeighted(words []string, count int, style Style, weak map[rune]struct{}, factor float64) []string {
	if len(words) == 0 || count <= 0 {
		return nil
	}
	if len(weak) == 0 || factor <= 0 {
		return g.Generate(words, count, style)
	}
	cumulative := make([]float64, len(words))
	total := 0.0
	for i, word := range words {
		hits := lo.CountBy([]rune(word), func(r rune) bool {
			_, ok := weak[unicode.ToLower(r)]
			return ok
		})
		total += 1 + float64(hits)*factor
		cumulative[i] = total
	}
	return g.pick(count, style, func() string {
		idx := sort.SearchFloat64s(cumulative, g.rnd.Float64()*total)
		return words[min(idx, len(words)-1)]
	})
}

func (g *Generator) pick(count int, style Style, next func() string) []string {
	out := make([]string, count)
	for i := range out {
		out[i] = g.decorate(next(), style)
	}
	return out
}

func (g *Generator) decorate(word string, style Style) string {
	if word == "" {
		return word
	}
	if style.Caps > 0 && g.rnd.Float64() < style.Caps {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		word = string(runes)
	}
	if style.Punct > 0 && len(style.PunctSet) > 0 && g.rnd.Float64() < style.Punct {
		word += string(style.PunctSet[g.rnd.Intn(len(style.PunctSet))])
	}
	return word
}
