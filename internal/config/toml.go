// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Display DisplayConfig `toml:"display"`
	Scroll  ScrollConfig  `toml:"scroll"`
}

// DisplayConfig maps live-display settings.
type DisplayConfig struct {
	Quiet     *bool `toml:"quiet"`
	RefreshMs *int  `toml:"refresh-ms"`
}

// ScrollConfig maps scroll-normalization settings.
type ScrollConfig struct {
	DebounceMs *int `toml:"debounce-ms"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
