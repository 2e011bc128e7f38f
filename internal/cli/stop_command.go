package cli

import (
	"context"
	"fmt"

	"hq-timers/internal/domain"
	"hq-timers/internal/services"
)

// FinishCommand ends the active timer
type FinishCommand struct {
	app *App
}

// NewFinishCommand creates a new finish command handler
func NewFinishCommand(app *App) *FinishCommand {
	return &FinishCommand{app: app}
}

// Execute runs the finish command
func (c *FinishCommand) Execute(ctx context.Context, args []string) error {
	entry, err := c.app.api.FinishTimer(ctx)
	if err != nil {
		return c.app.errorHandler.Handle("finish timer", err)
	}
	c.app.printStopped("Finished", entry)
	return nil
}

// CancelCommand abandons the active timer
type CancelCommand struct {
	app *App
}

// NewCancelCommand creates a new cancel command handler
func NewCancelCommand(app *App) *CancelCommand {
	return &CancelCommand{app: app}
}

// Execute runs the cancel command
func (c *CancelCommand) Execute(ctx context.Context, args []string) error {
	entry, err := c.app.api.CancelTimer(ctx)
	if err != nil {
		return c.app.errorHandler.Handle("cancel timer", err)
	}
	c.app.printStopped("Cancelled", entry)
	return nil
}

func (a *App) printStopped(verb string, entry *domain.TimerEntry) {
	if entry == nil {
		fmt.Fprintln(a.out, "No timer is running")
		return
	}
	fmt.Fprintf(a.out, "%s %s %s after %s: %s\n",
		successColor.Sprint(verb),
		entryKind(entry),
		entryID(entry.ID),
		services.FormatSeconds(entry.Duration),
		describeEntry(entry))
}
