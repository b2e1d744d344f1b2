// Package config loads and saves the invtop client configuration:
// which server to talk to, the API token, and UI defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Config represents the config.toml file in the user's config dir.
type Config struct {
	Server ServerConfig `toml:"server"`
	UI     UIConfig     `toml:"ui"`
}

// ServerConfig identifies the inventory server.
type ServerConfig struct {
	URL   string `toml:"url"`
	Token string `toml:"token"`
}

// UIConfig holds interface defaults.
type UIConfig struct {
	PageSize int `toml:"page_size"`
}

// Default returns a config with default values.
func Default() *Config {
	return &Config{
		UI: UIConfig{PageSize: 25},
	}
}

// Dir returns the invtop config directory.
// Follows XDG Base Directory spec on Linux, platform conventions elsewhere.
func Dir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "invtop")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "invtop")
	default: // Linux and others - follow XDG
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "invtop")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "invtop")
	}
}

// Path returns the path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// PrefsPath returns the path to the table-preference file.
func PrefsPath() string {
	return filepath.Join(Dir(), "tables.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(Path()); err == nil {
		if _, err := toml.DecodeFile(Path(), cfg); err != nil {
			return nil, err
		}
	}

	if cfg.UI.PageSize == 0 {
		cfg.UI.PageSize = Default().UI.PageSize
	}

	return cfg, nil
}

// Save writes the config file.
func (c *Config) Save() error {
	if err := os.MkdirAll(Dir(), 0755); err != nil {
		return err
	}

	f, err := os.Create(Path())
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(c)
}

// Get returns a config value by dotted key.
func (c *Config) Get(key string) (string, bool) {
	switch key {
	case "server.url":
		return c.Server.URL, true
	case "server.token":
		return c.Server.Token, true
	case "ui.page_size":
		return strconv.Itoa(c.UI.PageSize), true
	default:
		return "", false
	}
}

// Set assigns a config value by dotted key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "server.url":
		c.Server.URL = value
	case "server.token":
		c.Server.Token = value
	case "ui.page_size":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("ui.page_size must be a positive integer, got %q", value)
		}
		c.UI.PageSize = n
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}

// Keys returns all available config keys.
func Keys() []string {
	return []string{"server.url", "server.token", "ui.page_size"}
}
