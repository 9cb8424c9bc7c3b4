package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"

	"acordiario/internal/plan"
	"acordiario/internal/practice"
)

// PlanMarkdown writes the study plan as a markdown document. The week that
// contains today is marked "(this week)".
func PlanMarkdown(p plan.StudyPlan, today time.Time) string {
	day := practice.Day(today)
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", p.Name)

	b.WriteString("## Rotation\n\n")
	b.WriteString("| Day | Category |\n|---|---|\n")
	for i := 1; i <= 7; i++ {
		wd := i % 7
		fmt.Fprintf(&b, "| %s | %s %s |\n", p.DayName(time.Weekday(wd)), p.Icon(p.Rotation[wd]), p.Rotation[wd])
	}

	for _, phase := range p.Phases {
		fmt.Fprintf(&b, "\n## %s\n", phase.Name)
		for _, w := range phase.Weeks {
			title := fmt.Sprintf("%s (%s)", w.Range, w.StartDate)
			if w.Contains(day) {
				title += " (this week)"
			}
			fmt.Fprintf(&b, "\n### %s\n\n", title)
			for i := 1; i <= 7; i++ {
				name := p.DayName(time.Weekday(i % 7))
				if focus, ok := w.Focus[name]; ok && focus != "" {
					fmt.Fprintf(&b, "- **%s**: %s\n", name, focus)
				}
			}
		}
	}
	return b.String()
}

// Markdown renders md for the terminal. If glamour fails the source is
// returned unchanged.
func (r *Renderer) Markdown(md string) string {
	style := "dark"
	if r.ascii {
		style = "notty"
	}
	tr, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(r.width),
	)
	if err != nil {
		return md
	}
	out, err := tr.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
