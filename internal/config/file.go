package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// DefaultConfigPath returns ~/.config/.timers/config.toml
func DefaultConfigPath() string {
	return filepath.Join(DefaultBaseDir(), "config.toml")
}

// ConfigPath returns the config file path, honouring HQ_CONFIG
func ConfigPath() string {
	if path := os.Getenv("HQ_CONFIG"); path != "" {
		return path
	}
	return DefaultConfigPath()
}

// Decode overlays the TOML document read from r onto c.
// Keys absent from the document keep their current values.
func (c *Config) Decode(r io.Reader) error {
	if _, err := toml.NewDecoder(r).Decode(c); err != nil {
		return fmt.Errorf("failed to decode config: %w", err)
	}
	return nil
}

// Encode writes c as TOML to w.
func (c *Config) Encode(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// LoadFromFile overlays the config file at path onto c.
// A missing file is not an error; the defaults stay in place.
func (c *Config) LoadFromFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	if err := c.Decode(f); err != nil {
		return fmt.Errorf("reading config from %s: %w", path, err)
	}
	return nil
}
