package metrics

import (
	"fmt"
	"sort"
	"time"

	"acordiario/internal/practice"
)

type CategoryTotal struct {
	Category string
	Minutes  int
}

type Summary struct {
	TotalMinutes int
	Sessions     int
	ByCategory   []CategoryTotal
}

// Summarize totals all logs. ByCategory follows the order of categories and
// leaves out logs whose category is not listed.
func Summarize(logs []practice.PracticeLog, categories []string) Summary {
	idx := make(map[string]int, len(categories))
	by := make([]CategoryTotal, len(categories))
	for i, c := range categories {
		idx[c] = i
		by[i] = CategoryTotal{Category: c}
	}
	s := Summary{Sessions: len(logs), ByCategory: by}
	for _, l := range logs {
		s.TotalMinutes += l.Duration
		if i, ok := idx[l.Category]; ok {
			by[i].Minutes += l.Duration
		}
	}
	return s
}

type DayTotal struct {
	Date    string
	Minutes int
}

// MonthCalendar returns one entry per day of the month with the minutes
// logged on it.
func MonthCalendar(logs []practice.PracticeLog, year int, month time.Month) []DayTotal {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	days := first.AddDate(0, 1, -1).Day()
	out := make([]DayTotal, days)
	for i := range out {
		out[i].Date = first.AddDate(0, 0, i).Format(practice.DateLayout)
	}
	prefix := fmt.Sprintf("%04d-%02d-", year, int(month))
	for _, l := range logs {
		if len(l.Date) != len(practice.DateLayout) || l.Date[:8] != prefix {
			continue
		}
		t, err := practice.ParseDate(l.Date)
		if err != nil {
			continue
		}
		out[t.Day()-1].Minutes += l.Duration
	}
	return out
}

// HistoryEntry pairs a log with its current index in the store.
type HistoryEntry struct {
	Index int
	Log   practice.PracticeLog
}

// History lists logs newest date first. Logs sharing a date keep their
// insertion order.
func History(logs []practice.PracticeLog) []HistoryEntry {
	out := make([]HistoryEntry, len(logs))
	for i, l := range logs {
		out[i] = HistoryEntry{Index: i, Log: l}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Log.Date > out[j].Log.Date })
	return out
}

// FormatMinutes renders minutes as "45m" or "1h 5m".
func FormatMinutes(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}
