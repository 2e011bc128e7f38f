package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Environment represents the current environment
type Environment string

const (
	Development Environment = "development"
	Testing     Environment = "testing"
	Production  Environment = "production"
)

// GetEnvironment determines the current environment from HQ_ENV
func GetEnvironment() Environment {
	switch os.Getenv("HQ_ENV") {
	case "development":
		return Development
	case "testing":
		return Testing
	default:
		// Default to production for safety
		return Production
	}
}

// Config holds all configuration options for the timers application
type Config struct {
	Environment   Environment         `toml:"-"`
	Database      DatabaseConfig      `toml:"database"`
	Time          TimeConfig          `toml:"time"`
	Validation    ValidationConfig    `toml:"validation"`
	Statistics    StatisticsConfig    `toml:"statistics"`
	Notifications NotificationsConfig `toml:"notifications"`
	Server        ServerConfig        `toml:"server"`
	Application   ApplicationConfig   `toml:"application"`
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Dir            string        `toml:"dir" env:"HQ_DB_DIR"`
	Filename       string        `toml:"filename" env:"HQ_DB_FILENAME"`
	QueryTimeout   time.Duration `toml:"query_timeout" env:"HQ_DB_QUERY_TIMEOUT"`
	BusyTimeout    time.Duration `toml:"busy_timeout" env:"HQ_DB_BUSY_TIMEOUT"`
	DirPermissions uint32        `toml:"dir_permissions" env:"HQ_DB_DIR_PERMISSIONS"`
}

// TimeConfig holds time formatting configuration
type TimeConfig struct {
	DisplayFormat string `toml:"display_format" env:"HQ_TIME_DISPLAY_FORMAT"`
	// Location names the zone used for calendar days: "UTC" (default), "Local" or an IANA name.
	Location string `toml:"location" env:"HQ_TIME_LOCATION"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	LabelMaxLength int `toml:"label_max_length" env:"HQ_VALIDATION_LABEL_MAX"`
	MaxHistoryDays int `toml:"max_history_days" env:"HQ_VALIDATION_MAX_HISTORY_DAYS"`
}

// StatisticsConfig holds statistics aggregation configuration
type StatisticsConfig struct {
	HistoryDays     int `toml:"history_days" env:"HQ_STATS_HISTORY_DAYS"`
	ConflictRetries int `toml:"conflict_retries" env:"HQ_STATS_CONFLICT_RETRIES"`
}

// NotificationsConfig selects the notification sink
type NotificationsConfig struct {
	Backend string `toml:"backend" env:"HQ_NOTIFY_BACKEND"` // "log", "exec" or "none"
	Command string `toml:"command" env:"HQ_NOTIFY_COMMAND"` // only used for backend=exec
}

// ServerConfig holds the HTTP dispatcher configuration
type ServerConfig struct {
	Addr string `toml:"addr" env:"HQ_SERVER_ADDR"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `toml:"timeout" env:"HQ_APP_TIMEOUT"`
	Verbose bool          `toml:"verbose" env:"HQ_APP_VERBOSE"`
}

// DefaultBaseDir returns ~/.config/.timers, where the database and config file live
func DefaultBaseDir() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".config", ".timers")
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	return &Config{
		Environment: Production,
		Database: DatabaseConfig{
			Dir:            DefaultBaseDir(),
			Filename:       "db.sqlite",
			QueryTimeout:   10 * time.Second,
			BusyTimeout:    5 * time.Second,
			DirPermissions: 0755,
		},
		Time: TimeConfig{
			DisplayFormat: "2006-01-02 15:04:05",
			Location:      "UTC",
		},
		Validation: ValidationConfig{
			LabelMaxLength: 255,
			MaxHistoryDays: 365,
		},
		Statistics: StatisticsConfig{
			HistoryDays:     10,
			ConflictRetries: 5,
		},
		Notifications: NotificationsConfig{
			Backend: "log",
			Command: "notify-send",
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:4815",
		},
		Application: ApplicationConfig{
			Timeout: 60 * time.Second,
			Verbose: false,
		},
	}
}

// ApplyEnvironment adjusts defaults for the given environment.
// Development keeps the database next to the working directory.
func (c *Config) ApplyEnvironment(env Environment) {
	c.Environment = env
	switch env {
	case Development:
		c.Database.Dir = "."
		c.Database.Filename = "file.db"
		c.Application.Verbose = true
	case Testing:
		c.Database.Dir = ""
		c.Database.Filename = ":memory:"
	}
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	if c.Database.Filename == ":memory:" {
		return ":memory:"
	}
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// GetQueryTimeout returns the database query timeout
func (c *Config) GetQueryTimeout() time.Duration {
	return c.Database.QueryTimeout
}

// GetLocation resolves the configured calendar time zone
func (c *Config) GetLocation() (*time.Location, error) {
	switch c.Time.Location {
	case "", "UTC":
		return time.UTC, nil
	case "Local":
		return time.Local, nil
	}
	return time.LoadLocation(c.Time.Location)
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	// Database configuration
	if dir := os.Getenv("HQ_DB_DIR"); dir != "" {
		c.Database.Dir = dir
	}
	if filename := os.Getenv("HQ_DB_FILENAME"); filename != "" {
		c.Database.Filename = filename
	}
	if timeout := os.Getenv("HQ_DB_QUERY_TIMEOUT"); timeout != "" {
		c.Database.QueryTimeout = ParseDurationWithFallback(timeout, c.Database.QueryTimeout)
	}
	if timeout := os.Getenv("HQ_DB_BUSY_TIMEOUT"); timeout != "" {
		c.Database.BusyTimeout = ParseDurationWithFallback(timeout, c.Database.BusyTimeout)
	}
	if perms := os.Getenv("HQ_DB_DIR_PERMISSIONS"); perms != "" {
		c.Database.DirPermissions = ParseUint32WithFallback(perms, 8, c.Database.DirPermissions)
	}

	// Time configuration
	if format := os.Getenv("HQ_TIME_DISPLAY_FORMAT"); format != "" {
		c.Time.DisplayFormat = format
	}
	if loc := os.Getenv("HQ_TIME_LOCATION"); loc != "" {
		c.Time.Location = loc
	}

	// Validation configuration
	if maxLen := os.Getenv("HQ_VALIDATION_LABEL_MAX"); maxLen != "" {
		c.Validation.LabelMaxLength = ParseIntWithFallback(maxLen, c.Validation.LabelMaxLength)
	}
	if days := os.Getenv("HQ_VALIDATION_MAX_HISTORY_DAYS"); days != "" {
		c.Validation.MaxHistoryDays = ParseIntWithFallback(days, c.Validation.MaxHistoryDays)
	}

	// Statistics configuration
	if days := os.Getenv("HQ_STATS_HISTORY_DAYS"); days != "" {
		c.Statistics.HistoryDays = ParseIntWithFallback(days, c.Statistics.HistoryDays)
	}
	if retries := os.Getenv("HQ_STATS_CONFLICT_RETRIES"); retries != "" {
		c.Statistics.ConflictRetries = ParseIntWithFallback(retries, c.Statistics.ConflictRetries)
	}

	// Notification configuration
	if backend := os.Getenv("HQ_NOTIFY_BACKEND"); backend != "" {
		c.Notifications.Backend = backend
	}
	if command := os.Getenv("HQ_NOTIFY_COMMAND"); command != "" {
		c.Notifications.Command = command
	}

	// Server configuration
	if addr := os.Getenv("HQ_SERVER_ADDR"); addr != "" {
		c.Server.Addr = addr
	}

	// Application configuration
	if timeout := os.Getenv("HQ_APP_TIMEOUT"); timeout != "" {
		c.Application.Timeout = ParseDurationWithFallback(timeout, c.Application.Timeout)
	}
	if verbose := os.Getenv("HQ_APP_VERBOSE"); verbose != "" {
		if b, err := strconv.ParseBool(verbose); err == nil {
			c.Application.Verbose = b
		}
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Validate database configuration
	if c.Database.Filename == "" {
		return &ConfigError{Field: "database.filename", Message: "database filename cannot be empty"}
	}
	if c.Database.Filename != ":memory:" && c.Database.Dir == "" {
		return &ConfigError{Field: "database.dir", Message: "database directory cannot be empty"}
	}
	if c.Database.QueryTimeout <= 0 {
		return &ConfigError{Field: "database.query_timeout", Message: "query timeout must be positive"}
	}
	if c.Database.BusyTimeout < 0 {
		return &ConfigError{Field: "database.busy_timeout", Message: "busy timeout cannot be negative"}
	}

	// Validate time configuration
	if c.Time.DisplayFormat == "" {
		return &ConfigError{Field: "time.display_format", Message: "display format cannot be empty"}
	}
	if _, err := c.GetLocation(); err != nil {
		return &ConfigError{Field: "time.location", Message: "unknown time zone " + c.Time.Location}
	}

	// Validate validation configuration
	if c.Validation.LabelMaxLength < 1 {
		return &ConfigError{Field: "validation.label_max_length", Message: "label maximum length must be at least 1"}
	}
	if c.Validation.MaxHistoryDays < 1 {
		return &ConfigError{Field: "validation.max_history_days", Message: "maximum history window must be at least 1 day"}
	}

	// Validate statistics configuration
	if c.Statistics.HistoryDays < 1 || c.Statistics.HistoryDays > c.Validation.MaxHistoryDays {
		return &ConfigError{Field: "statistics.history_days", Message: "history days must be between 1 and the maximum history window"}
	}
	if c.Statistics.ConflictRetries < 1 {
		return &ConfigError{Field: "statistics.conflict_retries", Message: "conflict retries must be at least 1"}
	}

	// Validate notification configuration
	switch c.Notifications.Backend {
	case "log", "none":
	case "exec":
		if c.Notifications.Command == "" {
			return &ConfigError{Field: "notifications.command", Message: "command cannot be empty for the exec backend"}
		}
	default:
		return &ConfigError{Field: "notifications.backend", Message: "backend must be one of log, exec, none"}
	}

	// Validate server configuration
	if c.Server.Addr == "" {
		return &ConfigError{Field: "server.addr", Message: "server address cannot be empty"}
	}

	// Validate application configuration
	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
