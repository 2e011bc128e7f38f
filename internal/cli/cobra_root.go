package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"hq-timers/internal/config"
	"hq-timers/internal/repository/sqlite"
)

// Command is implemented by every command handler
type Command interface {
	Execute(ctx context.Context, args []string) error
}

// AppFactory builds the application once the effective configuration is known.
// cleanup releases what the App holds open.
type AppFactory func(cfg *config.Config) (app *App, cleanup func(), err error)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd     *cobra.Command
	config  *config.Config
	factory AppFactory

	app     *App
	cleanup func()
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(cfg *config.Config, factory AppFactory) *RootCommand {
	root := &RootCommand{
		config:  cfg,
		factory: factory,
	}

	root.cmd = &cobra.Command{
		Use:   "hq",
		Short: "Timers and pomodoros from the command line",
		Long: `hq tracks one timer at a time. Pomodoros are counted per day.

EXAMPLES:
  hq start "reading" --area study     # Start a plain timer
  hq pomodoro "writing"               # Start a pomodoro
  hq finish                           # Finish the running timer
  hq cancel                           # Cancel the running timer
  hq current                          # Show the running timer
  hq history --by-date                # Last completed timers, grouped per day
  hq stats 2024-01-01                 # Pomodoro counters of a day
  hq stats-history --days 7           # Counters of the previous days
  hq today                            # Today's time per activity
  hq serve                            # Local HTTP API

CONFIGURATION:
  Priority order: command-line flags > environment variables > config file > defaults
  Config file: ~/.config/.timers/config.toml (override with HQ_CONFIG)
  HQ_ENV=development keeps the database in ./file.db`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.applyFlags()
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	defer r.close()
	return r.cmd.Execute()
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("db-dir", "", "Database directory (overrides HQ_DB_DIR)")
	flags.String("db-filename", "", "Database filename (overrides HQ_DB_FILENAME)")
	flags.Duration("db-query-timeout", 0, "Database query timeout (overrides HQ_DB_QUERY_TIMEOUT)")
	flags.String("time-format", "", "Time display format (overrides HQ_TIME_DISPLAY_FORMAT)")
	flags.String("time-location", "", "Time zone of calendar days: UTC (default), Local or an IANA name (overrides HQ_TIME_LOCATION)")
	flags.String("notify", "", "Notification backend: log, exec or none (overrides HQ_NOTIFY_BACKEND)")
	flags.Duration("app-timeout", 0, "Command timeout (overrides HQ_APP_TIMEOUT)")
	flags.Bool("verbose", false, "Enable verbose logging (overrides HQ_APP_VERBOSE)")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	var area string
	startCmd := &cobra.Command{
		Use:   "start [activity]",
		Short: "Start a plain timer",
		Long:  "Start a plain timer. Fails while another timer is running.",
		RunE: r.run("start", func(app *App) Command {
			c := NewStartCommand(app)
			c.Area = area
			return c
		}),
	}
	startCmd.Flags().StringVar(&area, "area", "", "Area the activity belongs to")

	pomodoroCmd := &cobra.Command{
		Use:   "pomodoro [activity]",
		Short: "Start a pomodoro",
		Long:  "Start a pomodoro. It counts as started today and sends a notification.",
		RunE: r.run("pomodoro", func(app *App) Command {
			return NewPomodoroCommand(app)
		}),
	}

	finishCmd := &cobra.Command{
		Use:   "finish",
		Short: "Finish the running timer",
		Args:  cobra.NoArgs,
		RunE: r.run("finish", func(app *App) Command {
			return NewFinishCommand(app)
		}),
	}

	cancelCmd := &cobra.Command{
		Use:   "cancel",
		Short: "Cancel the running timer",
		Args:  cobra.NoArgs,
		RunE: r.run("cancel", func(app *App) Command {
			return NewCancelCommand(app)
		}),
	}

	currentCmd := &cobra.Command{
		Use:   "current",
		Short: "Show the running timer",
		Args:  cobra.NoArgs,
		RunE: r.run("current", func(app *App) Command {
			return NewCurrentCommand(app)
		}),
	}

	var byDate bool
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List the last completed timers",
		Args:  cobra.NoArgs,
		RunE: r.run("history", func(app *App) Command {
			c := NewHistoryCommand(app)
			c.ByDate = byDate
			return c
		}),
	}
	historyCmd.Flags().BoolVar(&byDate, "by-date", false, "Group the timers by day")

	activityCmd := &cobra.Command{
		Use:   "activity <id> <activity>",
		Short: "Change the activity of a timer",
		Args:  cobra.MinimumNArgs(2),
		RunE: r.run("activity", func(app *App) Command {
			return NewActivityCommand(app)
		}),
	}

	statsCmd := &cobra.Command{
		Use:   "stats [YYYY-MM-DD]",
		Short: "Show the pomodoro counters of a day",
		Args:  cobra.MaximumNArgs(1),
		RunE: r.run("stats", func(app *App) Command {
			return NewStatsCommand(app)
		}),
	}

	var days int
	statsHistoryCmd := &cobra.Command{
		Use:   "stats-history",
		Short: "Show the pomodoro counters of the previous days",
		Args:  cobra.NoArgs,
		RunE: r.run("stats-history", func(app *App) Command {
			c := NewStatsHistoryCommand(app)
			c.Days = days
			return c
		}),
	}
	statsHistoryCmd.Flags().IntVar(&days, "days", 0, "Number of days (default from configuration)")

	todayCmd := &cobra.Command{
		Use:   "today",
		Short: "Summarize today's timers per activity",
		Args:  cobra.NoArgs,
		RunE: r.run("today", func(app *App) Command {
			return NewTodayCommand(app)
		}),
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration and the schema status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if err := r.config.Encode(out); err != nil {
				return err
			}

			status := "up to date"
			if err := sqlite.CheckSchema(r.config.GetDatabasePath()); err != nil {
				status = err.Error()
			}
			fmt.Fprintf(out, "\n# schema: %s\n", status)
			return nil
		},
	}

	var addr string
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the timer commands over local HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := r.ensureApp()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			c := NewServeCommand(app)
			c.Addr = addr
			return c.Execute(ctx, args)
		},
	}
	serveCmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides HQ_SERVER_ADDR)")

	r.cmd.AddCommand(
		startCmd,
		pomodoroCmd,
		finishCmd,
		cancelCmd,
		currentCmd,
		historyCmd,
		activityCmd,
		statsCmd,
		statsHistoryCmd,
		todayCmd,
		configCmd,
		serveCmd,
	)
}

// run builds the handler once the App exists and executes it under the command context
func (r *RootCommand) run(name string, handler func(app *App) Command) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		app, err := r.ensureApp()
		if err != nil {
			return err
		}

		ctx, cancel := app.commandContext(cmd.Context(), name)
		defer cancel()
		return handler(app).Execute(ctx, args)
	}
}

func (r *RootCommand) ensureApp() (*App, error) {
	if r.app != nil {
		return r.app, nil
	}
	if r.factory == nil {
		return nil, fmt.Errorf("application not initialized")
	}

	app, cleanup, err := r.factory(r.config)
	if err != nil {
		return nil, err
	}
	r.app, r.cleanup = app, cleanup
	return app, nil
}

func (r *RootCommand) close() {
	if r.cleanup != nil {
		r.cleanup()
		r.cleanup = nil
	}
	r.app = nil
}

// applyFlags applies the flags that were set on top of the loaded configuration
func (r *RootCommand) applyFlags() error {
	if r.config == nil {
		return fmt.Errorf("configuration not initialized")
	}

	flags := r.cmd.PersistentFlags()
	overrides := &config.ConfigOverrides{}

	if flags.Changed("db-dir") {
		v, _ := flags.GetString("db-dir")
		overrides.DBDir = &v
	}
	if flags.Changed("db-filename") {
		v, _ := flags.GetString("db-filename")
		overrides.DBFilename = &v
	}
	if flags.Changed("db-query-timeout") {
		v, _ := flags.GetDuration("db-query-timeout")
		overrides.DBQueryTimeout = &v
	}
	if flags.Changed("time-format") {
		v, _ := flags.GetString("time-format")
		overrides.TimeFormat = &v
	}
	if flags.Changed("time-location") {
		v, _ := flags.GetString("time-location")
		overrides.TimeLocation = &v
	}
	if flags.Changed("notify") {
		v, _ := flags.GetString("notify")
		overrides.NotifyBackend = &v
	}
	if flags.Changed("app-timeout") {
		v, _ := flags.GetDuration("app-timeout")
		overrides.Timeout = &v
	}
	if flags.Changed("verbose") {
		v, _ := flags.GetBool("verbose")
		overrides.Verbose = &v
	}

	config.ApplyOverrides(r.config, overrides)
	return r.config.Validate()
}
