package cli

import (
	"context"
	"fmt"

	"hq-timers/internal/server"
)

// ServeCommand exposes the command contract over local HTTP
type ServeCommand struct {
	app  *App
	Addr string
}

// NewServeCommand creates a new serve command handler
func NewServeCommand(app *App) *ServeCommand {
	return &ServeCommand{app: app}
}

// Execute serves until ctx is cancelled
func (c *ServeCommand) Execute(ctx context.Context, args []string) error {
	addr := c.Addr
	if addr == "" {
		addr = c.app.config.Server.Addr
	}

	srv := server.New(c.app.api, server.Options{
		Location: c.app.loc,
		Timeout:  c.app.config.Application.Timeout,
		Logger:   c.app.logger,
	})

	fmt.Fprintf(c.app.out, "Serving timers on http://%s\n", addr)
	if err := srv.ListenAndServe(ctx, addr); err != nil {
		return c.app.errorHandler.Handle("serve", err)
	}
	return nil
}
