package main

import (
	"fmt"
	"os"

	"hq-timers/internal/api"
	"hq-timers/internal/cli"
	"hq-timers/internal/clock"
	"hq-timers/internal/config"
	"hq-timers/internal/logging"
	"hq-timers/internal/notify"
	"hq-timers/internal/services"
	"hq-timers/internal/validation"
)

func main() {
	cfg, err := config.NewLoader().Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	root := cli.NewRootCommand(cfg, buildApp)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// buildApp opens the store and wires the services behind the command contract
func buildApp(cfg *config.Config) (*cli.App, func(), error) {
	logger := logging.NewLogger(os.Stderr, logging.LevelFromVerbose(cfg.Application.Verbose))
	realClock := clock.RealClock{}

	store, err := config.CreateStore(cfg, realClock, logger)
	if err != nil {
		return nil, nil, err
	}

	notifier, err := notify.New(cfg.Notifications, logger)
	if err != nil {
		store.Close()
		return nil, nil, err
	}

	validator := validation.NewTimerValidatorWithValidator(validation.NewValidatorWithConfig(cfg))
	container := services.NewServiceContainer(store, notifier, logger, validator, cfg.Statistics.HistoryDays)

	app, err := cli.NewApp(api.New(container, realClock), cfg, logger)
	if err != nil {
		store.Close()
		return nil, nil, err
	}

	cleanup := func() {
		if err := store.Close(); err != nil {
			logger.Warn("closing database failed", "error", err)
		}
	}
	return app, cleanup, nil
}
