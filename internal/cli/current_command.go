package cli

import (
	"context"
	"fmt"

	"hq-timers/internal/services"
)

// CurrentCommand handles the current command
type CurrentCommand struct {
	app *App
}

// NewCurrentCommand creates a new current command handler
func NewCurrentCommand(app *App) *CurrentCommand {
	return &CurrentCommand{app: app}
}

// Execute shows the running timer, if any
func (c *CurrentCommand) Execute(ctx context.Context, args []string) error {
	entry, err := c.app.api.GetActiveTimer(ctx)
	if c.app.errorHandler.IsNotFoundError(err) {
		fmt.Fprintln(c.app.out, "No timer is running")
		return nil
	}
	if err != nil {
		return c.app.errorHandler.Handle("get active timer", err)
	}

	fmt.Fprintf(c.app.out, "Current %s %s: %s (started %s, running for %s)\n",
		entryKind(entry),
		entryID(entry.ID),
		describeEntry(entry),
		c.app.formatTime(entry.StartTime),
		services.FormatSeconds(entry.Duration))
	return nil
}
