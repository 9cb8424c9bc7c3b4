package ui

import (
	"time"

	"acordiario/internal/metrics"
	"acordiario/internal/plan"
)

type Options struct {
	StyleVariant string
	ASCIIOnly    bool
	// Width is the outer width of panels; zero means DefaultWidth.
	Width int
}

const DefaultWidth = 64

// DashboardData is the home screen model.
type DashboardData struct {
	Today   time.Time
	Task    plan.Task
	Icon    string
	Streak  int
	Goals   metrics.Progress
	Summary metrics.Summary
}
