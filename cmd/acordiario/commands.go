package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"acordiario/internal/app"
	"acordiario/internal/csvcodec"
	"acordiario/internal/practice"
	"acordiario/internal/ui"
)

func newDashboardCmd(c *cli) *cobra.Command {
	var follow bool
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show today's task, goals and totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if follow {
				return c.watchDashboard(cmd.Context())
			}
			return c.printDashboard()
		},
	}
	cmd.Flags().BoolVarP(&follow, "watch", "w", false, "redraw whenever the stored data changes")
	return cmd
}

func newTodayCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Print today's planned category and focus",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			task := c.app.TodayTask()
			c.println(fmt.Sprintf("%s %s: %s", c.app.Plan().Icon(task.Category), task.Category, task.Focus))
			return nil
		},
	}
}

type logFields struct {
	date     string
	category string
	focus    string
	notes    string
	minutes  int
	seconds  int
}

func (f *logFields) bind(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.date, "date", "", "session date YYYY-MM-DD (default: today)")
	fs.StringVar(&f.category, "category", "", "category (default: today's planned category)")
	fs.StringVar(&f.focus, "focus", "", "what the session focused on")
	fs.StringVar(&f.notes, "notes", "", "free-form notes")
	fs.IntVar(&f.minutes, "minutes", 0, "duration in minutes")
}

func newLogCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Record, list, edit and delete practice sessions",
	}
	cmd.AddCommand(
		newLogAddCmd(c),
		newLogListCmd(c),
		newLogShowCmd(c),
		newLogEditCmd(c),
		newLogRemoveCmd(c),
	)
	return cmd
}

func newLogAddCmd(c *cli) *cobra.Command {
	var f logFields
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a finished session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			seconds := f.seconds
			if cmd.Flags().Changed("minutes") {
				seconds = f.minutes * 60
			}
			log, err := c.app.LogSession(cmd.Context(), app.SessionInput{
				Seconds:  seconds,
				Date:     f.date,
				Category: f.category,
				Focus:    f.focus,
				Notes:    f.notes,
			})
			if err != nil {
				return err
			}
			c.println(c.view.Log(c.app.Logs().IndexOf(log.ID), log))
			return nil
		},
	}
	f.bind(cmd)
	cmd.Flags().IntVar(&f.seconds, "seconds", 0, "duration in seconds, rounded to whole minutes")
	cmd.MarkFlagsMutuallyExclusive("minutes", "seconds")
	cmd.MarkFlagsOneRequired("minutes", "seconds")
	return cmd
}

func newLogListCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "history"},
		Short:   "List sessions, newest first",
		Args:    cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			c.println(c.view.History(c.app.History()))
			return nil
		},
	}
}

// target resolves a session either from --id or from a positional index.
type target struct {
	id string
}

func (t *target) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&t.id, "id", "", "select the session by id instead of index")
}

func (t *target) index(c *cli, args []string) (int, error) {
	if t.id != "" {
		if len(args) > 0 {
			return 0, errors.New("give either an index or --id, not both")
		}
		i := c.app.Logs().IndexOf(t.id)
		if i < 0 {
			return 0, fmt.Errorf("no session with id %q", t.id)
		}
		return i, nil
	}
	if len(args) != 1 {
		return 0, errors.New("session index required")
	}
	i, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid index %q", args[0])
	}
	return i, nil
}

func newLogShowCmd(c *cli) *cobra.Command {
	var t target
	cmd := &cobra.Command{
		Use:   "show [index]",
		Short: "Show one session",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			i, err := t.index(c, args)
			if err != nil {
				return err
			}
			log, err := c.app.Logs().Get(i)
			if err != nil {
				return err
			}
			c.println(c.view.Log(i, log))
			return nil
		},
	}
	t.bind(cmd)
	return cmd
}

func newLogEditCmd(c *cli) *cobra.Command {
	var (
		t target
		f logFields
	)
	cmd := &cobra.Command{
		Use:   "edit [index]",
		Short: "Change fields of a session",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("minutes") && f.minutes < 1 {
				return fmt.Errorf("--minutes must be at least 1: %w", app.ErrEmptySession)
			}
			i, err := t.index(c, args)
			if err != nil {
				return err
			}
			store := c.app.Logs()
			log, err := store.Get(i)
			if err != nil {
				return err
			}
			changed := cmd.Flags().Changed
			if changed("date") {
				log.Date = f.date
			}
			if changed("category") {
				log.Category = f.category
			}
			if changed("focus") {
				log.Focus = f.focus
			}
			if changed("notes") {
				log.Notes = f.notes
			}
			if changed("minutes") {
				log.Duration = f.minutes
			}
			if t.id != "" {
				err = store.UpdateLogByID(cmd.Context(), t.id, log)
			} else {
				err = store.UpdateLog(cmd.Context(), i, log)
			}
			if err != nil {
				return err
			}
			updated, err := store.Get(i)
			if err != nil {
				return err
			}
			c.println(c.view.Log(i, updated))
			return nil
		},
	}
	t.bind(cmd)
	f.bind(cmd)
	return cmd
}

func newLogRemoveCmd(c *cli) *cobra.Command {
	var t target
	cmd := &cobra.Command{
		Use:     "rm [index]",
		Aliases: []string{"delete"},
		Short:   "Delete a session; later indices shift down",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := c.app.Logs()
			if t.id != "" && len(args) == 0 {
				if err := store.DeleteLogByID(cmd.Context(), t.id); err != nil {
					return err
				}
				c.println("deleted " + t.id)
				return nil
			}
			i, err := t.index(c, args)
			if err != nil {
				return err
			}
			if err := store.DeleteLog(cmd.Context(), i); err != nil {
				return err
			}
			c.println(c.view.Notice(fmt.Sprintf("deleted #%d", i)))
			return nil
		},
	}
	t.bind(cmd)
	return cmd
}

func newSettingsCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change practice goals",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			c.println(c.view.Settings(c.app.Logs().Settings()))
			return nil
		},
	}

	var daily, weekly int
	set := &cobra.Command{
		Use:   "set",
		Short: "Change the daily and/or weekly goal in minutes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var patch practice.SettingsPatch
			if cmd.Flags().Changed("daily") {
				patch.DailyGoal = &daily
			}
			if cmd.Flags().Changed("weekly") {
				patch.WeeklyGoal = &weekly
			}
			if patch.IsEmpty() {
				return errors.New("nothing to change: pass --daily and/or --weekly")
			}
			s, err := c.app.Logs().UpdateSettings(cmd.Context(), patch)
			if err != nil {
				return err
			}
			c.println(c.view.Settings(s))
			return nil
		},
	}
	set.Flags().IntVar(&daily, "daily", 0, "daily goal in minutes")
	set.Flags().IntVar(&weekly, "weekly", 0, "weekly goal in minutes")

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the current goals",
		Args:  cobra.NoArgs,
		RunE:  cmd.RunE,
	}
	cmd.AddCommand(show, set)
	return cmd
}

func newExportCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Write all sessions to a CSV file (default " + csvcodec.DefaultFileName + ")",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			if path == "-" {
				_, err := fmt.Fprint(c.out, c.app.Logs().Export())
				return err
			}
			written, err := c.app.ExportFile(path)
			if err != nil {
				return err
			}
			c.println(c.view.Notice(fmt.Sprintf("exported %d sessions to %s", c.app.Logs().Len(), written)))
			return nil
		},
	}
}

func newImportCmd(c *cli) *cobra.Command {
	var (
		replace    bool
		policyName string
	)
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Load sessions from a CSV export",
		Long: "Load sessions from a CSV export. Rows are appended to the existing\n" +
			"sessions unless --replace is given. Any invalid row aborts the import\n" +
			"and leaves stored sessions untouched.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			policy, ok := csvcodec.ParsePolicy(policyName)
			if !ok {
				return fmt.Errorf("invalid import policy %q, want merge or replace", policyName)
			}
			if replace {
				policy = csvcodec.Replace
			}
			n, err := c.app.ImportFile(cmd.Context(), args[0], policy)
			if err != nil {
				return err
			}
			c.println(c.view.Notice(fmt.Sprintf("imported %d sessions (%s), %d total", n, policy, c.app.Logs().Len())))
			return nil
		},
	}
	cmd.Flags().StringVar(&policyName, "policy", "merge", "merge (append) or replace")
	cmd.Flags().BoolVar(&replace, "replace", false, "shorthand for --policy replace")
	return cmd
}

func newPlanCmd(c *cli) *cobra.Command {
	var markdown, raw bool
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show the study plan",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			p, today := c.app.Plan(), c.app.Today()
			switch {
			case raw:
				_, err := fmt.Fprint(c.out, ui.PlanMarkdown(p, today))
				return err
			case markdown:
				c.println(c.view.Markdown(ui.PlanMarkdown(p, today)))
			default:
				c.println(c.view.Plan(p, today))
			}
			return nil
		},
	}
	cmd.PersistentFlags().BoolVar(&markdown, "markdown", false, "render the plan as formatted markdown")
	cmd.PersistentFlags().BoolVar(&raw, "raw", false, "print the plan's markdown source")
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the study plan",
		Args:  cobra.NoArgs,
		RunE:  cmd.RunE,
	})
	return cmd
}

func newCalendarCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "calendar [YYYY-MM]",
		Short: "Show minutes practiced per day for a month",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			month := c.app.Today()
			if len(args) == 1 {
				t, err := time.Parse("2006-01", args[0])
				if err != nil {
					return fmt.Errorf("invalid month %q, want YYYY-MM", args[0])
				}
				month = t
			}
			y, m := month.Year(), month.Month()
			c.println(c.view.Calendar(y, m, c.app.Calendar(y, m)))
			return nil
		},
	}
}
