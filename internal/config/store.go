package config

import (
	"fmt"
	"os"

	"hq-timers/internal/clock"
	"hq-timers/internal/logging"
	"hq-timers/internal/repository/sqlite"
)

// CreateStore opens the SQLite store described by the configuration
func CreateStore(config *Config, c clock.Clock, logger logging.Logger) (*sqlite.SQLiteRepository, error) {
	dbPath := config.GetDatabasePath()

	if dbPath != ":memory:" {
		if err := os.MkdirAll(config.Database.Dir, os.FileMode(config.Database.DirPermissions)); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	loc, err := config.GetLocation()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve time zone: %w", err)
	}

	repo, err := sqlite.NewWithOptions(dbPath, sqlite.Options{
		Clock:           c,
		Location:        loc,
		ConflictRetries: config.Statistics.ConflictRetries,
		BusyTimeout:     config.Database.BusyTimeout,
		QueryTimeout:    config.GetQueryTimeout(),
		Logger:          logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	logging.Debugf("opened timer database at %s\n", dbPath)
	return repo, nil
}

