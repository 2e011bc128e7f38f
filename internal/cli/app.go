package cli

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"hq-timers/internal/api"
	"hq-timers/internal/config"
	"hq-timers/internal/logging"
)

// App holds what every command needs: the API, the effective configuration and the output stream
type App struct {
	api          api.API
	config       *config.Config
	logger       logging.Logger
	out          io.Writer
	loc          *time.Location
	errorHandler *ErrorHandler
}

// NewApp creates a new CLI application writing to stdout
func NewApp(apiInstance api.API, cfg *config.Config, logger logging.Logger) (*App, error) {
	return NewAppWithOutput(apiInstance, cfg, logger, os.Stdout)
}

// NewAppWithOutput creates a new CLI application writing to out
func NewAppWithOutput(apiInstance api.API, cfg *config.Config, logger logging.Logger, out io.Writer) (*App, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	loc, err := cfg.GetLocation()
	if err != nil {
		return nil, err
	}

	return &App{
		api:          apiInstance,
		config:       cfg,
		logger:       logger,
		out:          out,
		loc:          loc,
		errorHandler: NewErrorHandler(logger),
	}, nil
}

// commandContext tags ctx with a fresh operation id and bounds it with the application timeout
func (a *App) commandContext(parent context.Context, command string) (context.Context, context.CancelFunc) {
	opID := uuid.NewString()
	ctx := logging.WithOperationID(parent, opID)
	logging.ForContext(ctx, a.logger).Debug("running command", "command", command)

	timeout := a.config.Application.Timeout
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// formatTime renders t in the configured zone and display format
func (a *App) formatTime(t time.Time) string {
	return t.In(a.loc).Format(a.config.Time.DisplayFormat)
}
