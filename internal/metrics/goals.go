package metrics

import (
	"time"

	"acordiario/internal/practice"
)

// GoalStatus is minutes practiced against a goal.
type GoalStatus struct {
	Progress   int     `json:"progress"`
	Goal       int     `json:"goal"`
	Percentage float64 `json:"percentage"`
}

type Progress struct {
	Daily  GoalStatus `json:"daily"`
	Weekly GoalStatus `json:"weekly"`
}

// GoalProgress sums today's minutes and the minutes logged since the Monday
// of the current week.
func GoalProgress(logs []practice.PracticeLog, settings practice.UserSettings, today time.Time) Progress {
	todayStr := practice.DateOf(today)
	weekStart := practice.DateOf(StartOfWeek(today))

	daily, weekly := 0, 0
	for _, l := range logs {
		if l.Date == todayStr {
			daily += l.Duration
		}
		if practice.IsValidDate(l.Date) && l.Date >= weekStart {
			weekly += l.Duration
		}
	}
	return Progress{
		Daily:  newGoalStatus(daily, settings.DailyGoal),
		Weekly: newGoalStatus(weekly, settings.WeeklyGoal),
	}
}

func newGoalStatus(progress, goal int) GoalStatus {
	return GoalStatus{Progress: progress, Goal: goal, Percentage: Percentage(progress, goal)}
}

// Percentage is 100*progress/goal clamped to 100, or 0 when goal is not
// positive.
func Percentage(progress, goal int) float64 {
	if goal <= 0 {
		return 0
	}
	p := 100 * float64(progress) / float64(goal)
	if p > 100 {
		return 100
	}
	return p
}

// StartOfWeek returns the Monday on or before today. Sunday belongs to the
// week that started six days earlier.
func StartOfWeek(today time.Time) time.Time {
	d := practice.Day(today)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}
