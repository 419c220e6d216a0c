package stats

import (
	"context"

	"github.com/samber/lo"

	"github.com/verte-zerg/keyquill/internal/model"
	"github.com/verte-zerg/keyquill/internal/store"
)

// Report contains precomputed data for the history screen.
type Report struct {
	Attempts         []model.AttemptAggregate
	WindowAttemptIDs []string
	KeyAggsAll       []model.KeyAggregate
	KeyAggsWindow    []model.KeyAggregate
}

// BuildReport loads and prepares data for history rendering.
func BuildReport(ctx context.Context, st *store.Store, filter model.HistoryFilter) (Report, error) {
	attempts, err := st.ListAttempts(ctx, filter)
	if err != nil {
		return Report{}, err
	}

	allIDs := attemptIDs(attempts)
	windowIDs := lastAttemptIDs(attempts, filter.CurveWindow)
	keyAggsAll, err := st.ListKeyAggregatesForAttempts(ctx, allIDs)
	if err != nil {
		return Report{}, err
	}
	keyAggsWindow, err := st.ListKeyAggregatesForAttempts(ctx, windowIDs)
	if err != nil {
		return Report{}, err
	}

	return Report{
		Attempts:         attempts,
		WindowAttemptIDs: windowIDs,
		KeyAggsAll:       keyAggsAll,
		KeyAggsWindow:    keyAggsWindow,
	}, nil
}

// CountByKind returns how many attempts of kind the report holds.
func (r Report) CountByKind(kind string) int {
	return lo.CountBy(r.Attempts, func(a model.AttemptAggregate) bool {
		return a.Kind == kind
	})
}

func attemptIDs(attempts []model.AttemptAggregate) []string {
	return lo.Map(attempts, func(a model.AttemptAggregate, _ int) string {
		return a.AttemptID
	})
}

func lastAttemptIDs(attempts []model.AttemptAggregate, window int) []string {
	if window <= 0 || len(attempts) <= window {
		return attemptIDs(attempts)
	}
	return attemptIDs(attempts[len(attempts)-window:])
}
