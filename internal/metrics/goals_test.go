package metrics

import (
	"testing"
	"time"

	"acordiario/internal/practice"
)

func TestGoalProgressSumsDayAndWeek(t *testing.T) {
	logs := []practice.PracticeLog{
		logOn(0, 20), // Wednesday
		logOn(0, 5),
		logOn(2, 30), // Monday
		logOn(3, 60), // previous Sunday
	}
	got := GoalProgress(logs, practice.UserSettings{DailyGoal: 50, WeeklyGoal: 110}, today)
	if got.Daily.Progress != 25 || got.Daily.Goal != 50 || got.Daily.Percentage != 50 {
		t.Fatalf("unexpected daily progress %+v", got.Daily)
	}
	if got.Weekly.Progress != 55 || got.Weekly.Percentage != 50 {
		t.Fatalf("unexpected weekly progress %+v", got.Weekly)
	}
}

func TestGoalProgressZeroGoalIsZeroPercent(t *testing.T) {
	logs := []practice.PracticeLog{logOn(0, 45)}
	got := GoalProgress(logs, practice.UserSettings{DailyGoal: 0, WeeklyGoal: 0}, today)
	if got.Daily.Percentage != 0 || got.Weekly.Percentage != 0 {
		t.Fatalf("expected 0%% for zero goals, got %+v", got)
	}
	if got.Daily.Progress != 45 {
		t.Fatalf("expected progress to still be reported, got %d", got.Daily.Progress)
	}
}

func TestGoalProgressClampsAtHundred(t *testing.T) {
	logs := []practice.PracticeLog{logOn(0, 60)}
	got := GoalProgress(logs, practice.UserSettings{DailyGoal: 30, WeeklyGoal: 180}, today)
	if got.Daily.Percentage != 100 {
		t.Fatalf("expected clamp to 100, got %v", got.Daily.Percentage)
	}
}

func TestStartOfWeekIsMonday(t *testing.T) {
	cases := map[string]string{
		"2025-07-07": "2025-07-07", // Monday
		"2025-07-09": "2025-07-07", // Wednesday
		"2025-07-13": "2025-07-07", // Sunday
		"2025-07-14": "2025-07-14",
	}
	for in, want := range cases {
		d, _ := practice.ParseDate(in)
		if got := StartOfWeek(d).Format(practice.DateLayout); got != want {
			t.Fatalf("StartOfWeek(%s) = %s, want %s", in, got, want)
		}
	}
}

func TestWeeklyProgressOnSundayIncludesMonday(t *testing.T) {
	sunday := time.Date(2025, time.July, 13, 10, 0, 0, 0, time.UTC)
	logs := []practice.PracticeLog{
		{Date: "2025-07-07", Duration: 10, Category: "x"},
		{Date: "2025-07-06", Duration: 99, Category: "x"},
		{Date: "2025-07-13", Duration: 5, Category: "x"},
	}
	got := GoalProgress(logs, practice.DefaultSettings(), sunday)
	if got.Weekly.Progress != 15 {
		t.Fatalf("expected 15 weekly minutes, got %d", got.Weekly.Progress)
	}
}
