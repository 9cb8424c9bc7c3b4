package main

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/colorprofile"
	"github.com/spf13/cobra"

	"acordiario/internal/app"
	"acordiario/internal/telemetry"
	"acordiario/internal/ui"
)

type rootFlags struct {
	configPath string
	envFiles   []string
	dataDir    string
	backend    string
	planPath   string
	logPath    string
	style      string
	ascii      bool
	width      int
	verbose    bool
}

// cli carries what every subcommand needs once the root has opened the app.
type cli struct {
	flags   rootFlags
	stdout  io.Writer
	environ []string
	appOpts []app.Option

	app  *app.App
	cfg  app.Config
	view *ui.Renderer
	out  *colorprofile.Writer
}

func newCLI(stdout io.Writer, environ []string, appOpts ...app.Option) *cli {
	return &cli{stdout: stdout, environ: environ, appOpts: appOpts}
}

func newRootCmd(stdout io.Writer, environ []string, appOpts ...app.Option) *cobra.Command {
	return newCLI(stdout, environ, appOpts...).rootCmd()
}

// execute runs the command tree and closes the app afterwards. Cobra skips
// PersistentPostRunE when a command fails, so the close happens here too.
func (c *cli) execute(ctx context.Context, args []string) (err error) {
	root := c.rootCmd()
	root.SetArgs(args)
	defer func() {
		if cerr := c.close(); err == nil {
			err = cerr
		}
	}()
	return root.ExecuteContext(ctx)
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "acordiario",
		Short:         "Track music practice against a rotating study plan",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.open(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return c.close()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.printDashboard()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&c.flags.configPath, "config", "", "YAML config file")
	pf.StringSliceVar(&c.flags.envFiles, "env-file", nil, "dotenv files with ACORDIARIO_* overrides")
	pf.StringVar(&c.flags.dataDir, "data-dir", "", "directory for stored practice data")
	pf.StringVar(&c.flags.backend, "backend", app.BackendSQLite, "storage backend: sqlite, file or memory")
	pf.StringVar(&c.flags.planPath, "plan", "", "study plan YAML (default: built-in plan)")
	pf.StringVar(&c.flags.logPath, "log", "", "append JSON diagnostics to this file")
	pf.StringVar(&c.flags.style, "style", "modern_arcade", "style variant: modern_arcade, cozy_clean or retro_terminal")
	pf.BoolVar(&c.flags.ascii, "ascii", false, "plain ASCII output")
	pf.IntVar(&c.flags.width, "width", ui.DefaultWidth, "panel width in columns")
	pf.BoolVarP(&c.flags.verbose, "verbose", "v", false, "print diagnostics to stderr")

	root.AddCommand(
		newDashboardCmd(c),
		newTodayCmd(c),
		newLogCmd(c),
		newSettingsCmd(c),
		newExportCmd(c),
		newImportCmd(c),
		newPlanCmd(c),
		newCalendarCmd(c),
	)
	return root
}

// config layers, lowest first: defaults, config file, ACORDIARIO_* environment
// (process, then env files), and flags the user set explicitly.
func (c *cli) config(cmd *cobra.Command) (app.Config, error) {
	cfg := app.DefaultConfig()
	if c.flags.configPath != "" {
		loaded, err := app.LoadConfigFile(c.flags.configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	lookup, err := app.EnvLookup(c.flags.envFiles...)
	if err != nil {
		return cfg, err
	}
	if err := cfg.ApplyEnv(lookup); err != nil {
		return cfg, err
	}
	changed := cmd.Flags().Changed
	if changed("data-dir") {
		cfg.DataDir = c.flags.dataDir
	}
	if changed("backend") {
		cfg.Backend = c.flags.backend
	}
	if changed("plan") {
		cfg.PlanPath = c.flags.planPath
	}
	if changed("log") {
		cfg.LogPath = c.flags.logPath
	}
	if changed("style") {
		cfg.UI.StyleVariant = c.flags.style
	}
	if changed("ascii") {
		cfg.UI.ASCIIOnly = c.flags.ascii
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *cli) open(cmd *cobra.Command) error {
	cfg, err := c.config(cmd)
	if err != nil {
		return err
	}
	console := telemetry.NewConsoleLogger(cmd.ErrOrStderr(), c.flags.verbose)
	opts := append([]app.Option{app.WithDiagnostics(console)}, c.appOpts...)
	a, err := app.New(cmd.Context(), cfg, opts...)
	if err != nil {
		return fmt.Errorf("open practice data: %w", err)
	}
	c.app = a
	c.cfg = cfg
	c.view = ui.New(ui.Options{
		StyleVariant: cfg.UI.StyleVariant,
		ASCIIOnly:    cfg.UI.ASCIIOnly,
		Width:        c.flags.width,
	})
	c.out = colorprofile.NewWriter(c.stdout, c.environ)
	if cfg.UI.ASCIIOnly {
		c.out.Profile = colorprofile.Ascii
	}
	return nil
}

func (c *cli) close() error {
	if c.app == nil {
		return nil
	}
	err := c.app.Close()
	c.app = nil
	return err
}

func (c *cli) println(s string) {
	_, _ = fmt.Fprintln(c.out, s)
}

func (c *cli) printDashboard() error {
	d := c.app.Dashboard()
	c.println(c.view.Dashboard(ui.DashboardData{
		Today:   d.Today,
		Task:    d.Task,
		Icon:    d.Icon,
		Streak:  d.Streak,
		Goals:   d.Goals,
		Summary: d.Summary,
	}))
	return nil
}
