package stats

import (
	"context"
	"testing"
	"time"

	"github.com/verte-zerg/keyquill/internal/model"
	"github.com/verte-zerg/keyquill/internal/store"
)

func TestBuildReport(t *testing.T) {
	st, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	ctx := context.Background()
	var ids []string
	for i := 0; i < 3; i++ {
		start := time.Unix(0, 0).Add(time.Duration(i) * time.Minute)
		end := start.Add(30 * time.Second)
		kind := model.KindLesson
		if i == 0 {
			kind = model.KindGame
		}
		attempt := model.AttemptStats{
			Kind:       kind,
			LessonID:   "home-row",
			Lang:       "english",
			StartedAt:  start,
			EndedAt:    end,
			Correct:    10,
			Incorrect:  1,
			DurationMs: end.Sub(start).Milliseconds(),
			WPM:        20 + i,
			Accuracy:   91,
		}
		keys := []model.KeyStats{
			{Char: "a", Correct: 5, Incorrect: 0},
			{Char: "b", Correct: 4, Incorrect: 1},
		}
		id, err := st.InsertAttempt(ctx, attempt, keys)
		if err != nil {
			t.Fatalf("insert attempt: %v", err)
		}
		ids = append(ids, id)
	}

	filter := model.HistoryFilter{Lang: "english", Last: 3, CurveWindow: 2}
	report, err := BuildReport(ctx, st, filter)
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if len(report.Attempts) != 3 {
		t.Fatalf("expected 3 attempts, got %d", len(report.Attempts))
	}
	if len(report.WindowAttemptIDs) != 2 {
		t.Fatalf("expected 2 window ids, got %d", len(report.WindowAttemptIDs))
	}
	if report.WindowAttemptIDs[0] != ids[1] || report.WindowAttemptIDs[1] != ids[2] {
		t.Fatalf("unexpected window ids: %v", report.WindowAttemptIDs)
	}
	if got := report.CountByKind(model.KindGame); got != 1 {
		t.Fatalf("expected 1 game attempt, got %d", got)
	}

	var bAll, bWindow model.KeyAggregate
	for _, agg := range report.KeyAggsAll {
		if agg.Char == "b" {
			bAll = agg
		}
	}
	for _, agg := range report.KeyAggsWindow {
		if agg.Char == "b" {
			bWindow = agg
		}
	}
	if bAll.Correct != 12 || bAll.Incorrect != 3 {
		t.Fatalf("unexpected all aggregate: %+v", bAll)
	}
	if bWindow.Correct != 8 || bWindow.Incorrect != 2 {
		t.Fatalf("unexpected window aggregate: %+v", bWindow)
	}
}

func TestBuildReportEmpty(t *testing.T) {
	st, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	report, err := BuildReport(context.Background(), st, model.HistoryFilter{})
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if len(report.Attempts) != 0 || len(report.KeyAggsAll) != 0 {
		t.Fatalf("expected empty report, got %+v", report)
	}
}
