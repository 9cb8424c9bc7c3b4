package plan

import (
	"fmt"
	"time"

	"acordiario/internal/practice"
)

// FreePracticeFocus is the focus text used when no week overrides the day.
func FreePracticeFocus(category string) string {
	return fmt.Sprintf("Free practice of %s.", category)
}

// ResolveToday returns the category and focus for today. The first week, in
// declaration order, whose range contains today wins.
func ResolveToday(p StudyPlan, today time.Time) Task {
	weekday := int(today.Weekday())
	category := p.Rotation[weekday]
	task := Task{Category: category, Focus: FreePracticeFocus(category)}

	day := practice.Day(today)
	dayName := p.DayName(today.Weekday())
	for _, phase := range p.Phases {
		for _, week := range phase.Weeks {
			if !week.Contains(day) {
				continue
			}
			if focus, ok := week.Focus[dayName]; ok && focus != "" {
				task.Focus = focus
			}
			return task
		}
	}
	return task
}

func (p StudyPlan) ResolveToday(today time.Time) Task {
	return ResolveToday(p, today)
}

// Start returns the week's first day, or the zero time if StartDate is bad.
func (w Week) Start() time.Time {
	t, err := practice.ParseDate(w.StartDate)
	if err != nil {
		return time.Time{}
	}
	return t
}

// End returns the week's last day (inclusive).
func (w Week) End() time.Time {
	start := w.Start()
	if start.IsZero() {
		return start
	}
	return start.AddDate(0, 0, 6)
}

// Contains reports whether day's calendar date falls in the week.
func (w Week) Contains(day time.Time) bool {
	start := w.Start()
	if start.IsZero() {
		return false
	}
	d := practice.Day(day)
	return !d.Before(start) && !d.After(w.End())
}
