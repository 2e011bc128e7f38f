package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"hq-timers/internal/errors"
)

// HistoryCommand lists the most recently completed timers
type HistoryCommand struct {
	app    *App
	ByDate bool
}

// NewHistoryCommand creates a new history command handler
func NewHistoryCommand(app *App) *HistoryCommand {
	return &HistoryCommand{app: app}
}

// Execute runs the history command
func (c *HistoryCommand) Execute(ctx context.Context, args []string) error {
	if c.ByDate {
		byDate, err := c.app.api.GetHistoryByDate(ctx)
		if err != nil {
			return c.app.errorHandler.Handle("get history", err)
		}
		c.app.printEntriesByDate(byDate)
		return nil
	}

	entries, err := c.app.api.GetHistory(ctx)
	if err != nil {
		return c.app.errorHandler.Handle("get history", err)
	}
	c.app.printEntries(entries)
	return nil
}

// ActivityCommand relabels a timer entry
type ActivityCommand struct {
	app *App
}

// NewActivityCommand creates a new activity command handler
func NewActivityCommand(app *App) *ActivityCommand {
	return &ActivityCommand{app: app}
}

// Execute expects the entry id followed by the new activity
func (c *ActivityCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return c.app.errorHandler.Handle("update activity",
			errors.NewInvalidInputError("args", args, "usage: hq activity <id> <activity>"))
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return c.app.errorHandler.Handle("update activity",
			errors.NewInvalidInputError("id", args[0], "must be an integer"))
	}

	entry, err := c.app.api.UpdateEntryActivity(ctx, id, strings.Join(args[1:], " "))
	if err != nil {
		return c.app.errorHandler.Handle("update activity", err)
	}

	fmt.Fprintf(c.app.out, "%s %s: %s\n", successColor.Sprint("Updated"), entryID(entry.ID), describeEntry(entry))
	return nil
}
