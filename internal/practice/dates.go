package practice

import (
	"math"
	"regexp"
	"time"
)

// DateLayout is the calendar-date form used for PracticeLog.Date.
const DateLayout = "2006-01-02"

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ParseDate parses a YYYY-MM-DD string into midnight UTC.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// IsValidDate reports whether s is a real calendar date in YYYY-MM-DD form.
func IsValidDate(s string) bool {
	if !datePattern.MatchString(s) {
		return false
	}
	_, err := ParseDate(s)
	return err == nil
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) string {
	return t.Format(DateLayout)
}

// Day truncates t to its calendar date, expressed as midnight UTC so that
// day arithmetic never crosses a DST boundary.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AddDays shifts a YYYY-MM-DD date by n calendar days.
func AddDays(date string, n int) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, n).Format(DateLayout), nil
}

// MinutesFromSeconds converts a timed session to whole minutes, never
// returning less than one.
func MinutesFromSeconds(seconds int) int {
	m := int(math.Round(float64(seconds) / 60))
	if m < 1 {
		return 1
	}
	return m
}
