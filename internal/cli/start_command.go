package cli

import (
	"context"
	"fmt"
	"strings"
)

// StartCommand starts a plain timer
type StartCommand struct {
	app  *App
	Area string
}

// NewStartCommand creates a new start command handler
func NewStartCommand(app *App) *StartCommand {
	return &StartCommand{app: app}
}

// Execute runs the start command. All arguments form the activity.
func (c *StartCommand) Execute(ctx context.Context, args []string) error {
	entry, err := c.app.api.StartTimer(ctx, optionalText(args), optionalString(c.Area))
	if err != nil {
		return c.app.errorHandler.Handle("start timer", err)
	}

	fmt.Fprintf(c.app.out, "%s timer %s: %s\n", successColor.Sprint("Started"), entryID(entry.ID), describeEntry(entry))
	return nil
}

// PomodoroCommand starts a pomodoro
type PomodoroCommand struct {
	app *App
}

// NewPomodoroCommand creates a new pomodoro command handler
func NewPomodoroCommand(app *App) *PomodoroCommand {
	return &PomodoroCommand{app: app}
}

// Execute runs the pomodoro command. All arguments form the activity.
func (c *PomodoroCommand) Execute(ctx context.Context, args []string) error {
	entry, err := c.app.api.StartPomodoro(ctx, optionalText(args))
	if err != nil {
		return c.app.errorHandler.Handle("start pomodoro", err)
	}

	fmt.Fprintf(c.app.out, "%s pomodoro %s: %s\n", successColor.Sprint("Started"), entryID(entry.ID), describeEntry(entry))
	return nil
}

func optionalText(args []string) *string {
	return optionalString(strings.Join(args, " "))
}

// optionalString maps "" to nil; blank labels are normalized downstream
func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
