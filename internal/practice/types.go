package practice

// PracticeLog is one recorded practice session.
type PracticeLog struct {
	ID       string `json:"id,omitempty"`
	Date     string `json:"date"` // "2025-06-18"
	Duration int    `json:"duration"`
	Category string `json:"category"`
	Focus    string `json:"focus"`
	Notes    string `json:"notes"`
}

// UserSettings holds the daily and weekly goals in minutes.
type UserSettings struct {
	DailyGoal  int `json:"dailyGoal"`
	WeeklyGoal int `json:"weeklyGoal"`
}

// SettingsPatch changes only the fields that are set.
type SettingsPatch struct {
	DailyGoal  *int
	WeeklyGoal *int
}

const (
	DefaultDailyGoal  = 30
	DefaultWeeklyGoal = 180
)

// DefaultSettings returns settings with default values.
func DefaultSettings() UserSettings {
	return UserSettings{
		DailyGoal:  DefaultDailyGoal,
		WeeklyGoal: DefaultWeeklyGoal,
	}
}

// SeedLogs returns the example sessions a fresh store starts with.
func SeedLogs() []PracticeLog {
	return []PracticeLog{
		{Date: "2025-06-18", Duration: 30, Category: "Guitarra", Focus: "Acordes básicos"},
		{Date: "2025-06-19", Duration: 45, Category: "Teclado", Focus: "Escalas C Mayor"},
		{Date: "2025-06-20", Duration: 25, Category: "Teoría Musical", Focus: "Lectura rítmica"},
	}
}

// Apply merges the set fields of p into s.
func (p SettingsPatch) Apply(s UserSettings) UserSettings {
	if p.DailyGoal != nil {
		s.DailyGoal = *p.DailyGoal
	}
	if p.WeeklyGoal != nil {
		s.WeeklyGoal = *p.WeeklyGoal
	}
	return s
}

// IsEmpty reports whether the patch changes nothing.
func (p SettingsPatch) IsEmpty() bool {
	return p.DailyGoal == nil && p.WeeklyGoal == nil
}
