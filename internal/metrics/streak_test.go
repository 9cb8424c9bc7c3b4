package metrics

import (
	"testing"
	"time"

	"acordiario/internal/practice"

	"pgregory.net/rapid"
)

var today = time.Date(2025, time.July, 9, 20, 0, 0, 0, time.UTC) // Wednesday

func logOn(daysAgo, minutes int) practice.PracticeLog {
	return practice.PracticeLog{
		Date:     today.AddDate(0, 0, -daysAgo).Format(practice.DateLayout),
		Duration: minutes,
		Category: "Guitarra",
	}
}

func TestStreakThreeConsecutiveDays(t *testing.T) {
	logs := []practice.PracticeLog{logOn(2, 10), logOn(0, 10), logOn(1, 10)}
	if got := CalculateStreak(logs, today); got != 3 {
		t.Fatalf("expected streak 3, got %d", got)
	}
}

func TestStreakBrokenWhenLatestIsOlderThanYesterday(t *testing.T) {
	logs := []practice.PracticeLog{logOn(2, 10), logOn(3, 10)}
	if got := CalculateStreak(logs, today); got != 0 {
		t.Fatalf("expected streak 0, got %d", got)
	}
}

func TestStreakSameDayLogsCountOnce(t *testing.T) {
	logs := []practice.PracticeLog{logOn(0, 10), logOn(0, 25)}
	if got := CalculateStreak(logs, today); got != 1 {
		t.Fatalf("expected streak 1, got %d", got)
	}
}

func TestStreakAnchorsOnYesterday(t *testing.T) {
	logs := []practice.PracticeLog{logOn(1, 10), logOn(2, 10), logOn(4, 10)}
	if got := CalculateStreak(logs, today); got != 2 {
		t.Fatalf("expected streak 2, got %d", got)
	}
}

func TestStreakEmptyAndGarbageDates(t *testing.T) {
	if got := CalculateStreak(nil, today); got != 0 {
		t.Fatalf("expected 0 for no logs, got %d", got)
	}
	logs := []practice.PracticeLog{{Date: "not-a-date", Duration: 5, Category: "x"}, logOn(0, 5)}
	if got := CalculateStreak(logs, today); got != 1 {
		t.Fatalf("expected garbage dates to be ignored, got %d", got)
	}
}

func TestStreakCrossesMonthBoundary(t *testing.T) {
	now := time.Date(2025, time.March, 1, 9, 0, 0, 0, time.UTC)
	logs := []practice.PracticeLog{
		{Date: "2025-03-01", Duration: 5, Category: "x"},
		{Date: "2025-02-28", Duration: 5, Category: "x"},
		{Date: "2025-02-27", Duration: 5, Category: "x"},
	}
	if got := CalculateStreak(logs, now); got != 3 {
		t.Fatalf("expected streak across month end, got %d", got)
	}
}

func TestStreakCountsConsecutiveRunProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		run := rapid.IntRange(1, 40).Draw(rt, "run")
		anchor := rapid.IntRange(0, 1).Draw(rt, "anchor")
		var logs []practice.PracticeLog
		for i := 0; i < run; i++ {
			copies := rapid.IntRange(1, 3).Draw(rt, "copies")
			for c := 0; c < copies; c++ {
				logs = append(logs, logOn(anchor+i, 10))
			}
		}
		// A session beyond a one-day gap must not extend the run.
		logs = append(logs, logOn(anchor+run+1, 10))
		perm := rapid.Permutation(logs).Draw(rt, "order")
		if got := CalculateStreak(perm, today); got != run {
			rt.Fatalf("expected streak %d, got %d", run, got)
		}
	})
}
