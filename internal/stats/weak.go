package stats

import (
	"cmp"
	"slices"

	"github.com/samber/lo"

	"github.com/verte-zerg/keyquill/internal/model"
)

// minWeakSamples is the fewest typed occurrences a key needs before it can
// be called weak. Keys seen once or twice are noise.
const minWeakSamples = 3

// SelectWeakChars returns up to top keys with the lowest accuracy. Keys
// below minWeakSamples are only used when nothing else qualifies. A
// non-positive top selects every candidate.
func SelectWeakChars(aggs []model.KeyAggregate, top int) map[rune]struct{} {
	candidates := lo.Filter(aggs, func(agg model.KeyAggregate, _ int) bool {
		return agg.Char != "" && agg.Correct+agg.Incorrect >= minWeakSamples
	})
	if len(candidates) == 0 {
		candidates = lo.Filter(aggs, func(agg model.KeyAggregate, _ int) bool {
			return agg.Char != ""
		})
	}
	slices.SortStableFunc(candidates, compareWeakest)
	if top > 0 && top < len(candidates) {
		candidates = candidates[:top]
	}
	return lo.SliceToMap(candidates, func(agg model.KeyAggregate) (rune, struct{}) {
		return []rune(agg.Char)[0], struct{}{}
	})
}

// compareWeakest orders by accuracy, then by more mistakes, then by key.
func compareWeakest(a, b model.KeyAggregate) int {
	if c := cmp.Compare(accuracy(a), accuracy(b)); c != 0 {
		return c
	}
	if c := cmp.Compare(b.Incorrect, a.Incorrect); c != 0 {
		return c
	}
	return cmp.Compare(a.Char, b.Char)
}

func accuracy(agg model.KeyAggregate) float64 {
	total := agg.Correct + agg.Incorrect
	if total == 0 {
		return 1
	}
	return float64(agg.Correct) / float64(total)
}
