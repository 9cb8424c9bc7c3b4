package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"charm.land/bubbles/v2/progress"
	"github.com/charmbracelet/x/ansi"

	"acordiario/internal/metrics"
	"acordiario/internal/plan"
	"acordiario/internal/practice"
)

// Renderer turns practice data into styled terminal text.
type Renderer struct {
	theme Theme
	ascii bool
	width int
	bar   progress.Model
}

func New(opts Options) *Renderer {
	theme := ThemeForVariant(opts.StyleVariant)
	width := opts.Width
	if width <= 0 {
		width = DefaultWidth
	}
	width = max(24, width)
	bar := progress.New(
		progress.WithWidth(max(10, width/2-8)),
		progress.WithColors(theme.BarColors...),
		progress.WithScaled(true),
	)
	return &Renderer{theme: theme, ascii: opts.ASCIIOnly, width: width, bar: bar}
}

func (r *Renderer) Width() int { return r.width }

func (r *Renderer) Dashboard(d DashboardData) string {
	header := r.theme.Header.Render(fit(fmt.Sprintf("acordiario · %s %s", d.Today.Weekday(), practice.DateOf(d.Today)), r.width-2))

	task := []string{
		r.theme.TaskTitle.Render(r.categoryLabel(d.Icon, d.Task.Category)),
		d.Task.Focus,
	}

	goals := []string{
		fmt.Sprintf("Streak  %s", r.streakLabel(d.Streak)),
		"Daily   " + r.goalLine(d.Goals.Daily),
		"Weekly  " + r.goalLine(d.Goals.Weekly),
	}

	summary := []string{
		fmt.Sprintf("Total %s in %d sessions", r.theme.Accent.Render(metrics.FormatMinutes(d.Summary.TotalMinutes)), d.Summary.Sessions),
	}
	for _, c := range d.Summary.ByCategory {
		label := fit(c.Category, 16)
		value := metrics.FormatMinutes(c.Minutes)
		if c.Minutes == 0 {
			value = r.theme.Muted.Render(value)
		}
		summary = append(summary, label+" "+value)
	}

	footer := r.theme.Status.Render(fit(dashboardHint(d.Goals.Daily), r.width-2))

	return strings.Join([]string{
		header,
		r.panel("Today", task),
		r.panel("Goals", goals),
		r.panel("Progress", summary),
		footer,
	}, "\n")
}

func dashboardHint(daily metrics.GoalStatus) string {
	left := daily.Goal - daily.Progress
	if daily.Goal <= 0 || left <= 0 {
		return "Daily goal done. log add --minutes N records a session"
	}
	return fmt.Sprintf("%s to go today. log add --minutes N records a session", metrics.FormatMinutes(left))
}

// Notice styles a one-line command result.
func (r *Renderer) Notice(s string) string {
	return r.theme.Info.Render(s)
}

func (r *Renderer) categoryLabel(icon, category string) string {
	if r.ascii || icon == "" {
		return category
	}
	return icon + " " + category
}

func (r *Renderer) streakLabel(days int) string {
	unit := "days"
	if days == 1 {
		unit = "day"
	}
	s := fmt.Sprintf("%d %s", days, unit)
	if days == 0 {
		return r.theme.Fail.Render(s)
	}
	return r.theme.Pass.Render(s)
}

func (r *Renderer) goalLine(g metrics.GoalStatus) string {
	count := fmt.Sprintf("%d/%d min", g.Progress, g.Goal)
	if g.Goal > 0 && g.Progress >= g.Goal {
		count = r.theme.Pass.Render(count)
	} else {
		count = r.theme.Pending.Render(count)
	}
	return r.goalBar(g.Percentage) + " " + count
}

// goalBar draws pct, which is on a 0-100 scale.
func (r *Renderer) goalBar(pct float64) string {
	if r.ascii {
		cells := max(10, r.width/2-13)
		filled := int(pct / 100 * float64(cells))
		filled = min(cells, max(0, filled))
		return "[" + strings.Repeat("#", filled) + strings.Repeat("-", cells-filled) + "] " + fmt.Sprintf("%3.0f%%", pct)
	}
	return r.bar.ViewAs(pct / 100)
}

// History lists sessions newest first with the index used to edit them.
func (r *Renderer) History(entries []metrics.HistoryEntry) string {
	if len(entries) == 0 {
		return r.panel("History", []string{r.theme.Muted.Render("No sessions yet.")})
	}
	lines := make([]string, 0, len(entries)*2)
	for _, e := range entries {
		l := e.Log
		head := fmt.Sprintf("%s %s  %s  %s",
			r.theme.Muted.Render(fmt.Sprintf("#%-3d", e.Index)),
			l.Date,
			r.theme.Accent.Render(l.Category),
			metrics.FormatMinutes(l.Duration),
		)
		lines = append(lines, head)
		detail := strings.TrimSpace(strings.Join(nonEmpty(l.Focus, l.Notes), " · "))
		if detail != "" {
			lines = append(lines, "     "+strings.ReplaceAll(detail, "\n", " "))
		}
	}
	return r.panel("History", lines)
}

// Log renders one session, e.g. after it has been saved.
func (r *Renderer) Log(index int, l practice.PracticeLog) string {
	lines := []string{
		fmt.Sprintf("Index     %d", index),
		fmt.Sprintf("ID        %s", l.ID),
		fmt.Sprintf("Date      %s", l.Date),
		fmt.Sprintf("Category  %s", l.Category),
		fmt.Sprintf("Duration  %s", metrics.FormatMinutes(l.Duration)),
	}
	if l.Focus != "" {
		lines = append(lines, "Focus     "+l.Focus)
	}
	if l.Notes != "" {
		for i, n := range strings.Split(l.Notes, "\n") {
			label := "Notes     "
			if i > 0 {
				label = "          "
			}
			lines = append(lines, label+n)
		}
	}
	return r.panel("Session", lines)
}

func (r *Renderer) Settings(s practice.UserSettings) string {
	return r.panel("Goals", []string{
		fmt.Sprintf("Daily goal   %d min", s.DailyGoal),
		fmt.Sprintf("Weekly goal  %d min (%s)", s.WeeklyGoal, metrics.FormatMinutes(s.WeeklyGoal)),
	})
}

var weekdayHeads = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

const calendarCell = 7

// Calendar draws a Monday-first month grid with minutes per day.
func (r *Renderer) Calendar(year int, month time.Month, days []metrics.DayTotal) string {
	title := fmt.Sprintf("%s %d", month, year)
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	offset := (int(first.Weekday()) + 6) % 7

	heads := make([]string, 7)
	for i, h := range weekdayHeads {
		heads[i] = fit(h, calendarCell)
	}
	lines := []string{r.theme.Muted.Render(strings.Join(heads, " "))}

	row := make([]string, 0, 7)
	for i := 0; i < offset; i++ {
		row = append(row, strings.Repeat(" ", calendarCell))
	}
	total, active := 0, 0
	for i, d := range days {
		mins := ""
		if d.Minutes > 0 {
			mins = strconv.Itoa(d.Minutes) + "m"
			total += d.Minutes
			active++
		}
		cell := fmt.Sprintf("%2d %4s", i+1, mins)
		if d.Minutes > 0 {
			cell = r.theme.Pass.Render(cell)
		}
		row = append(row, cell)
		if len(row) == 7 {
			lines = append(lines, strings.Join(row, " "))
			row = row[:0]
		}
	}
	if len(row) > 0 {
		lines = append(lines, strings.Join(row, " "))
	}
	lines = append(lines, "", fmt.Sprintf("Total %s over %d days", metrics.FormatMinutes(total), active))
	return r.panel(title, lines)
}

// Plan lists the study plan, marking the week that contains today.
func (r *Renderer) Plan(p plan.StudyPlan, today time.Time) string {
	marker := "▶ "
	if r.ascii {
		marker = "> "
	}
	day := practice.Day(today)

	rotation := make([]string, 0, 7)
	for i := 1; i <= 7; i++ {
		wd := i % 7
		rotation = append(rotation, fmt.Sprintf("%s: %s", p.DayName(time.Weekday(wd)), r.categoryLabel(p.Icon(p.Rotation[wd]), p.Rotation[wd])))
	}
	out := []string{r.panel(p.Name, rotation)}

	for _, phase := range p.Phases {
		var lines []string
		for _, w := range phase.Weeks {
			prefix := "  "
			title := fmt.Sprintf("%s (%s)", w.Range, w.StartDate)
			if w.Contains(day) {
				prefix = marker
				title = r.theme.Accent.Render(title)
			}
			lines = append(lines, prefix+title)
			for i := 1; i <= 7; i++ {
				name := p.DayName(time.Weekday(i % 7))
				if focus, ok := w.Focus[name]; ok && focus != "" {
					lines = append(lines, fmt.Sprintf("    %-10s %s", name, focus))
				}
			}
		}
		out = append(out, r.panel(phase.Name, lines))
	}
	return strings.Join(out, "\n")
}

// panel boxes lines at the renderer width, truncating what does not fit.
func (r *Renderer) panel(title string, lines []string) string {
	h, v := "─", "│"
	tl, tr, bl, br := "┌", "┐", "└", "┘"
	if r.ascii {
		h, v = "-", "|"
		tl, tr, bl, br = "+", "+", "+", "+"
	}
	inner := r.width - 2

	top := tl + strings.Repeat(h, inner) + tr
	if title != "" && inner > 4 {
		label := ansi.Truncate(" "+title+" ", inner-2, "…")
		rest := inner - 1 - ansi.StringWidth(label)
		top = r.theme.PanelBorder.Render(tl+h) + r.theme.PanelTitle.Render(label) + r.theme.PanelBorder.Render(strings.Repeat(h, rest)+tr)
	} else {
		top = r.theme.PanelBorder.Render(top)
	}

	out := make([]string, 0, len(lines)+2)
	out = append(out, top)
	for _, line := range lines {
		out = append(out, r.theme.PanelBorder.Render(v)+" "+r.theme.PanelBody.Render(fit(line, inner-2))+" "+r.theme.PanelBorder.Render(v))
	}
	out = append(out, r.theme.PanelBorder.Render(bl+strings.Repeat(h, inner)+br))
	return strings.Join(out, "\n")
}

// fit pads or truncates s to exactly width cells, ignoring escape codes.
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = strings.ReplaceAll(s, "\t", "    ")
	s = ansi.Truncate(s, width, "…")
	if w := ansi.StringWidth(s); w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}

func nonEmpty(parts ...string) []string {
	out := parts[:0:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}
