package metrics

import (
	"sort"
	"time"

	"acordiario/internal/practice"
)

// CalculateStreak counts consecutive practice days ending today, or
// yesterday when today has not been logged yet. Several logs on one day
// count once; logs with unparseable dates are ignored.
func CalculateStreak(logs []practice.PracticeLog, today time.Time) int {
	dates := distinctDates(logs)
	if len(dates) == 0 {
		return 0
	}
	todayDay := practice.Day(today)
	yesterday := todayDay.AddDate(0, 0, -1)
	if !dates[0].Equal(todayDay) && !dates[0].Equal(yesterday) {
		return 0
	}

	streak := 1
	anchor := dates[0]
	for _, d := range dates[1:] {
		if !d.Equal(anchor.AddDate(0, 0, -1)) {
			break
		}
		streak++
		anchor = d
	}
	return streak
}

// distinctDates returns the unique log dates, newest first.
func distinctDates(logs []practice.PracticeLog) []time.Time {
	seen := make(map[string]struct{}, len(logs))
	out := make([]time.Time, 0, len(logs))
	for _, l := range logs {
		if _, ok := seen[l.Date]; ok {
			continue
		}
		seen[l.Date] = struct{}{}
		t, err := practice.ParseDate(l.Date)
		if err != nil {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].After(out[j]) })
	return out
}
