package plan

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default_plan.yaml
var defaultPlanYAML []byte

type FSLoader struct{}

func NewLoader() *FSLoader { return &FSLoader{} }

// Load reads a plan file; an empty path yields the built-in plan.
func (l *FSLoader) Load(path string) (StudyPlan, error) {
	if path == "" {
		return Default()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return StudyPlan{}, err
	}
	p, err := Parse(b)
	if err != nil {
		return StudyPlan{}, fmt.Errorf("load plan %s: %w", path, err)
	}
	return p, nil
}

// Default returns the built-in study plan.
func Default() (StudyPlan, error) {
	p, err := Parse(defaultPlanYAML)
	if err != nil {
		return StudyPlan{}, fmt.Errorf("built-in plan: %w", err)
	}
	return p, nil
}

// Parse decodes and validates a plan document.
func Parse(b []byte) (StudyPlan, error) {
	var p StudyPlan
	if err := yaml.Unmarshal(b, &p); err != nil {
		return p, fmt.Errorf("parse plan: %w", err)
	}
	applyPlanDefaults(&p)
	if err := p.Validate(); err != nil {
		return p, fmt.Errorf("validate plan: %w", err)
	}
	return p, nil
}

func applyPlanDefaults(p *StudyPlan) {
	if p.Kind == "" {
		p.Kind = PlanKind
	}
	if len(p.DayNames) == 0 {
		p.DayNames = append([]string(nil), DefaultDayNames[:]...)
	}
	if p.Icons == nil {
		p.Icons = map[string]string{}
	}
	if len(p.Categories) == 0 {
		seen := map[string]struct{}{}
		for _, c := range p.Rotation {
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			p.Categories = append(p.Categories, c)
		}
	}
}
