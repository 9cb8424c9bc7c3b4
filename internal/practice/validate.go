package practice

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDate     = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidDuration = errors.New("duration must be a non-negative number of minutes")
	ErrEmptyCategory   = errors.New("category must not be empty")
	ErrInvalidSettings = errors.New("goals must be non-negative")
)

// Validate checks the fields every stored log must satisfy.
func (l PracticeLog) Validate() error {
	if !IsValidDate(l.Date) {
		return fmt.Errorf("%w: %q", ErrInvalidDate, l.Date)
	}
	if l.Duration < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidDuration, l.Duration)
	}
	if l.Category == "" {
		return ErrEmptyCategory
	}
	return nil
}

func (s UserSettings) Validate() error {
	if s.DailyGoal < 0 || s.WeeklyGoal < 0 {
		return fmt.Errorf("%w: daily=%d weekly=%d", ErrInvalidSettings, s.DailyGoal, s.WeeklyGoal)
	}
	return nil
}
