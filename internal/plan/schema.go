package plan

import (
	"fmt"
	"time"

	"acordiario/internal/practice"
)

const (
	PlanKind               = "study_plan"
	SupportedSchemaVersion = 1
	DefaultIcon            = "🎵"
)

// DefaultDayNames are the focus keys, Sunday first.
var DefaultDayNames = [7]string{"Domingo", "Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado"}

// StudyPlan is the fixed rotation of categories plus dated focus overrides.
// It is loaded once and never mutated.
type StudyPlan struct {
	Kind          string            `yaml:"kind"`
	SchemaVersion int               `yaml:"schema_version"`
	Name          string            `yaml:"name"`
	DayNames      []string          `yaml:"day_names"`
	Rotation      []string          `yaml:"rotation"`
	Categories    []string          `yaml:"categories"`
	Icons         map[string]string `yaml:"icons"`
	Phases        []Phase           `yaml:"phases"`
}

type Phase struct {
	Name  string `yaml:"name"`
	Weeks []Week `yaml:"weeks"`
}

// Week covers StartDate through StartDate+6 days, both inclusive.
type Week struct {
	Range     string            `yaml:"range"`
	StartDate string            `yaml:"start_date"`
	Focus     map[string]string `yaml:"focus"`
}

// Task is what the plan asks for on a given day.
type Task struct {
	Category string
	Focus    string
}

func (p StudyPlan) Validate() error {
	if p.Kind != PlanKind {
		return fmt.Errorf("kind must be %q", PlanKind)
	}
	if p.SchemaVersion == 0 {
		return fmt.Errorf("schema_version is required")
	}
	if p.SchemaVersion > SupportedSchemaVersion {
		return fmt.Errorf("unsupported plan schema_version %d (max supported %d)", p.SchemaVersion, SupportedSchemaVersion)
	}
	if len(p.DayNames) != 7 {
		return fmt.Errorf("day_names must have 7 entries, got %d", len(p.DayNames))
	}
	if len(p.Rotation) != 7 {
		return fmt.Errorf("rotation must have 7 entries, got %d", len(p.Rotation))
	}
	if len(p.Categories) == 0 {
		return fmt.Errorf("categories must contain at least one item")
	}
	known := map[string]struct{}{}
	for _, c := range p.Categories {
		if c == "" {
			return fmt.Errorf("categories[] must not be empty")
		}
		if _, ok := known[c]; ok {
			return fmt.Errorf("duplicate category %q", c)
		}
		known[c] = struct{}{}
	}
	for i, c := range p.Rotation {
		if _, ok := known[c]; !ok {
			return fmt.Errorf("rotation[%d] %q is not a listed category", i, c)
		}
	}
	days := map[string]struct{}{}
	for _, d := range p.DayNames {
		days[d] = struct{}{}
	}
	for _, ph := range p.Phases {
		if ph.Name == "" {
			return fmt.Errorf("phases[].name is required")
		}
		for _, w := range ph.Weeks {
			if !practice.IsValidDate(w.StartDate) {
				return fmt.Errorf("phase %q: invalid start_date %q", ph.Name, w.StartDate)
			}
			for day := range w.Focus {
				if _, ok := days[day]; !ok {
					return fmt.Errorf("phase %q week %s: unknown day %q", ph.Name, w.StartDate, day)
				}
			}
		}
	}
	return nil
}

// Icon returns the emoji for a category, or DefaultIcon.
func (p StudyPlan) Icon(category string) string {
	if icon, ok := p.Icons[category]; ok && icon != "" {
		return icon
	}
	return DefaultIcon
}

// DayName returns the focus key for a weekday. Plans without a full set of
// day names use DefaultDayNames.
func (p StudyPlan) DayName(wd time.Weekday) string {
	if len(p.DayNames) != 7 {
		return DefaultDayNames[wd]
	}
	return p.DayNames[wd]
}
