// Package config loads and saves the user's TOML configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
)

// Scrollback limits applied when validating configuration.
const (
	MinScrollbackLines = 100
	MaxScrollbackLines = 1000000
)

// Config is the user configuration stored at
// ~/.config/tide/config.toml.
type Config struct {
	Appearance AppearanceConfig `toml:"appearance"`
	Terminal   TerminalConfig   `toml:"terminal"`
}

// AppearanceConfig holds appearance-related settings.
type AppearanceConfig struct {
	Theme           string `toml:"theme"`            // Color theme name (e.g. "tokyo-night", "dracula", or a custom theme)
	ScrollbackLines int    `toml:"scrollback_lines"` // Lines kept in scrollback (default 10000)
}

// TerminalConfig holds terminal-related settings.
type TerminalConfig struct {
	PreferredShell string `toml:"preferred_shell"` // Shell to spawn; empty auto-detects
	Cols           int    `toml:"cols"`            // Initial columns before the host reports a size
	Rows           int    `toml:"rows"`            // Initial rows before the host reports a size
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Appearance: AppearanceConfig{
			Theme:           "tokyo-night",
			ScrollbackLines: 10000,
		},
		Terminal: TerminalConfig{
			Cols: 80,
			Rows: 24,
		},
	}
}

// Path returns the config file path, creating parent directories.
func Path() (string, error) {
	path, err := xdg.ConfigFile("tide/config.toml")
	if err != nil {
		return "", fmt.Errorf("failed to resolve config path: %w", err)
	}
	return path, nil
}

// Load reads the configuration from the default path. A missing file
// is not an error and yields the defaults.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), err
	}
	return LoadFrom(path)
}

// LoadFrom reads the configuration from path. A missing file yields
// the defaults.
func LoadFrom(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path) // #nosec G304 - user's own config path
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.validate()
	return cfg, nil
}

// Save writes the configuration as TOML to path.
func Save(cfg Config, path string) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// validate clamps out-of-range values back to sane defaults.
func (c *Config) validate() {
	if c.Appearance.ScrollbackLines < MinScrollbackLines || c.Appearance.ScrollbackLines > MaxScrollbackLines {
		c.Appearance.ScrollbackLines = Default().Appearance.ScrollbackLines
	}
	if c.Terminal.Cols <= 0 {
		c.Terminal.Cols = Default().Terminal.Cols
	}
	if c.Terminal.Rows <= 0 {
		c.Terminal.Rows = Default().Terminal.Rows
	}
}
