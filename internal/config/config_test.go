package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, "db.sqlite", cfg.Database.Filename)
	assert.Equal(t, filepath.Join(DefaultBaseDir(), "db.sqlite"), cfg.GetDatabasePath())
	assert.Equal(t, 10, cfg.Statistics.HistoryDays)
	assert.Equal(t, "log", cfg.Notifications.Backend)
	assert.Equal(t, 10*time.Second, cfg.GetQueryTimeout())
	assert.NoError(t, cfg.Validate())
}

func TestGetLocation_DefaultsToUTC(t *testing.T) {
	loc, err := NewConfig().GetLocation()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestApplyEnvironment(t *testing.T) {
	t.Run("development uses file.db in the working directory", func(t *testing.T) {
		cfg := NewConfig()
		cfg.ApplyEnvironment(Development)
		assert.Equal(t, filepath.Join(".", "file.db"), cfg.GetDatabasePath())
		assert.True(t, cfg.Application.Verbose)
	})

	t.Run("testing uses an in-memory database", func(t *testing.T) {
		cfg := NewConfig()
		cfg.ApplyEnvironment(Testing)
		assert.Equal(t, ":memory:", cfg.GetDatabasePath())
		assert.NoError(t, cfg.Validate())
	})
}

func TestGetEnvironment(t *testing.T) {
	tests := []struct {
		value string
		want  Environment
	}{
		{"development", Development},
		{"testing", Testing},
		{"", Production},
		{"staging", Production},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("HQ_ENV", tt.value)
			assert.Equal(t, tt.want, GetEnvironment())
		})
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("HQ_DB_DIR", "/tmp/hq")
	t.Setenv("HQ_DB_QUERY_TIMEOUT", "3s")
	t.Setenv("HQ_DB_DIR_PERMISSIONS", "700")
	t.Setenv("HQ_TIME_LOCATION", "Local")
	t.Setenv("HQ_STATS_HISTORY_DAYS", "30")
	t.Setenv("HQ_NOTIFY_BACKEND", "none")
	t.Setenv("HQ_APP_VERBOSE", "true")
	t.Setenv("HQ_APP_TIMEOUT", "not-a-duration")

	cfg := NewConfig()
	require.NoError(t, cfg.LoadFromEnvironment())

	assert.Equal(t, "/tmp/hq", cfg.Database.Dir)
	assert.Equal(t, 3*time.Second, cfg.Database.QueryTimeout)
	assert.Equal(t, uint32(0700), cfg.Database.DirPermissions)
	assert.Equal(t, "Local", cfg.Time.Location)
	assert.Equal(t, 30, cfg.Statistics.HistoryDays)
	assert.Equal(t, "none", cfg.Notifications.Backend)
	assert.True(t, cfg.Application.Verbose)
	assert.Equal(t, 60*time.Second, cfg.Application.Timeout, "unparseable values keep the previous setting")
}

func TestDecodeOverlaysFile(t *testing.T) {
	doc := `
[database]
filename = "timers.db"
query_timeout = "2s"

[statistics]
history_days = 14

[notifications]
backend = "exec"
command = "terminal-notifier"
`
	cfg := NewConfig()
	require.NoError(t, cfg.Decode(strings.NewReader(doc)))

	assert.Equal(t, "timers.db", cfg.Database.Filename)
	assert.Equal(t, 2*time.Second, cfg.Database.QueryTimeout)
	assert.Equal(t, 14, cfg.Statistics.HistoryDays)
	assert.Equal(t, "exec", cfg.Notifications.Backend)
	assert.Equal(t, "terminal-notifier", cfg.Notifications.Command)
	assert.Equal(t, 5, cfg.Statistics.ConflictRetries, "keys absent from the file keep their defaults")
}

func TestDecode_Malformed(t *testing.T) {
	cfg := NewConfig()
	err := cfg.Decode(strings.NewReader("[database\nfilename = "))
	assert.Error(t, err)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cfg := NewConfig()
	cfg.Statistics.HistoryDays = 21
	cfg.Time.Location = "Europe/London"

	var buf bytes.Buffer
	require.NoError(t, cfg.Encode(&buf))

	decoded := NewConfig()
	require.NoError(t, decoded.Decode(&buf))
	assert.Equal(t, cfg.Statistics, decoded.Statistics)
	assert.Equal(t, cfg.Time, decoded.Time)
	assert.Equal(t, cfg.Database, decoded.Database)
}

func TestLoadFromFile(t *testing.T) {
	t.Run("missing file keeps defaults", func(t *testing.T) {
		cfg := NewConfig()
		require.NoError(t, cfg.LoadFromFile(filepath.Join(t.TempDir(), "absent.toml")))
		assert.Equal(t, NewConfig().Statistics, cfg.Statistics)
	})

	t.Run("existing file is applied", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(path, []byte("[server]\naddr = \"127.0.0.1:9999\"\n"), 0600))

		cfg := NewConfig()
		require.NoError(t, cfg.LoadFromFile(path))
		assert.Equal(t, "127.0.0.1:9999", cfg.Server.Addr)
	})
}

func TestLoader_Cascade(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[statistics]\nhistory_days = 20\n\n[server]\naddr = \"127.0.0.1:1111\"\n"), 0600))
	t.Setenv("HQ_ENV", "")
	t.Setenv("HQ_STATS_HISTORY_DAYS", "25")

	cfg, err := NewLoaderWithPath(path).Load()
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.Statistics.HistoryDays, "environment beats file")

	days := 30
	ApplyOverrides(cfg, &ConfigOverrides{HistoryDays: &days})
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "127.0.0.1:1111", cfg.Server.Addr, "file beats defaults")
	assert.Equal(t, 30, cfg.Statistics.HistoryDays, "flags beat environment beats file")
}

func TestLoader_InvalidOverride(t *testing.T) {
	backend := "carrier-pigeon"
	cfg, err := NewLoaderWithPath("").Load()
	require.NoError(t, err)

	ApplyOverrides(cfg, &ConfigOverrides{NotifyBackend: &backend})
	err = cfg.Validate()
	require.Error(t, err)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "notifications.backend", cfgErr.Field)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"empty filename", func(c *Config) { c.Database.Filename = "" }, "database.filename"},
		{"non-positive query timeout", func(c *Config) { c.Database.QueryTimeout = 0 }, "database.query_timeout"},
		{"unknown location", func(c *Config) { c.Time.Location = "Mars/Olympus_Mons" }, "time.location"},
		{"history beyond maximum", func(c *Config) { c.Statistics.HistoryDays = 400 }, "statistics.history_days"},
		{"no conflict retries", func(c *Config) { c.Statistics.ConflictRetries = 0 }, "statistics.conflict_retries"},
		{"exec without command", func(c *Config) { c.Notifications.Backend = "exec"; c.Notifications.Command = "" }, "notifications.command"},
		{"empty server address", func(c *Config) { c.Server.Addr = "" }, "server.addr"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestConfigPath(t *testing.T) {
	t.Setenv("HQ_CONFIG", "/etc/hq.toml")
	assert.Equal(t, "/etc/hq.toml", ConfigPath())

	t.Setenv("HQ_CONFIG", "")
	assert.Equal(t, DefaultConfigPath(), ConfigPath())
}
