package cli

import (
	"context"
	"fmt"
	"time"

	"hq-timers/internal/errors"
	"hq-timers/internal/services"
)

// StatsCommand shows the pomodoro counters of one day
type StatsCommand struct {
	app *App
}

// NewStatsCommand creates a new stats command handler
func NewStatsCommand(app *App) *StatsCommand {
	return &StatsCommand{app: app}
}

// Execute accepts an optional YYYY-MM-DD date; today otherwise
func (c *StatsCommand) Execute(ctx context.Context, args []string) error {
	var date *time.Time
	if len(args) > 0 {
		parsed, err := time.ParseInLocation("2006-01-02", args[0], c.app.loc)
		if err != nil {
			return c.app.errorHandler.Handle("get statistics",
				errors.NewInvalidInputError("date", args[0], "expected YYYY-MM-DD"))
		}
		date = &parsed
	}

	stat, err := c.app.api.GetDailyStatistics(ctx, date)
	if err != nil {
		return c.app.errorHandler.Handle("get statistics", err)
	}
	c.app.printStatistic(stat)
	return nil
}

// StatsHistoryCommand shows the counters of the days before today
type StatsHistoryCommand struct {
	app  *App
	Days int
}

// NewStatsHistoryCommand creates a new stats-history command handler
func NewStatsHistoryCommand(app *App) *StatsHistoryCommand {
	return &StatsHistoryCommand{app: app}
}

// Execute runs the stats-history command
func (c *StatsHistoryCommand) Execute(ctx context.Context, args []string) error {
	stats, err := c.app.api.GetStatisticsHistory(ctx, c.Days)
	if err != nil {
		return c.app.errorHandler.Handle("get statistics history", err)
	}

	if len(stats) == 0 {
		fmt.Fprintln(c.app.out, "No statistics recorded before today")
		return nil
	}
	for _, stat := range stats {
		c.app.printStatistic(stat)
	}
	return nil
}

// TodayCommand summarizes the completed timers of today per activity
type TodayCommand struct {
	app *App
}

// NewTodayCommand creates a new today command handler
func NewTodayCommand(app *App) *TodayCommand {
	return &TodayCommand{app: app}
}

// Execute runs the today command
func (c *TodayCommand) Execute(ctx context.Context, args []string) error {
	summary, err := c.app.api.GetTodaySummary(ctx)
	if err != nil {
		return c.app.errorHandler.Handle("get today summary", err)
	}

	headerColor.Fprintf(c.app.out, "%s  total %s\n", summary.Date, services.FormatSeconds(summary.TotalDuration))
	for _, activity := range summary.Activities {
		fmt.Fprintf(c.app.out, "  %-8s  %s (%d timers)\n",
			services.FormatSeconds(activity.TotalDuration),
			activity.Activity,
			len(activity.Timers))
	}
	return nil
}
