package app

import (
	"time"

	"acordiario/internal/metrics"
	"acordiario/internal/plan"
	"acordiario/internal/practice"
)

// Dashboard is everything the home screen shows for one day.
type Dashboard struct {
	Today    time.Time
	Task     plan.Task
	Icon     string
	Streak   int
	Goals    metrics.Progress
	Summary  metrics.Summary
	Settings practice.UserSettings
}

// SessionInput describes a finished practice session. Empty fields fall back
// to today's date and today's planned task.
type SessionInput struct {
	Seconds  int
	Date     string
	Category string
	Focus    string
	Notes    string
}
