// Package config loads plugdeck's own configuration file. This is the
// tool's configuration, not the plugin ecosystem's: it points at the
// ecosystem root and the plugin-management executable.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds plugdeck settings from ~/.plugdeck.yaml. Every field is
// optional; zero values fall back to defaults at the point of use.
type Config struct {
	// Root overrides the plugin ecosystem root directory.
	Root string `yaml:"root"`

	// Executable overrides the plugin-management program.
	Executable string `yaml:"executable"`

	// DefaultSort is the initial sort key: installCount, name, or installedAt.
	DefaultSort string `yaml:"default_sort"`

	// DefaultDirection is ascending or descending.
	DefaultDirection string `yaml:"default_direction"`
}

// Load reads the config file from the user's home directory. A missing file
// yields a zero Config; a malformed one is an error. Env vars PLUGDECK_ROOT
// and PLUGDECK_EXECUTABLE override file values.
func Load() (Config, error) {
	var cfg Config

	home, err := os.UserHomeDir()
	if err == nil {
		path := filepath.Join(home, ".plugdeck.yaml")
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("read %s: %w", path, err)
		}
	}

	if v := os.Getenv("PLUGDECK_ROOT"); v != "" {
		cfg.Root = v
	}
	if v := os.Getenv("PLUGDECK_EXECUTABLE"); v != "" {
		cfg.Executable = v
	}
	return cfg, nil
}
