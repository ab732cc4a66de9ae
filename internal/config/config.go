package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the user-tunable settings. Every field has a default, so a
// missing or partial file is fine.
type Config struct {
	// Theme picks the catppuccin flavor: latte, frappe, macchiato, mocha.
	Theme string `yaml:"theme"`
	// LogCount is how many commits the log view loads per refresh.
	LogCount int `yaml:"log_count"`
	// HistoryFile is where the interactive shell persists its history.
	HistoryFile string `yaml:"history_file"`
}

func Default() Config {
	home, _ := os.UserHomeDir()
	return Config{
		Theme:       "mocha",
		LogCount:    20,
		HistoryFile: filepath.Join(home, ".git-hydra_history"),
	}
}

// Load reads config.yaml from the user config directory, falling back to
// defaults when it is absent.
func Load() (Config, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return Default(), nil
	}
	return loadFrom(filepath.Join(dir, "git-hydra", "config.yaml"))
}

// loadFrom reads one config file. Absence falls back to defaults; a file
// that exists but does not parse is an error, since silently ignoring it
// would mask typos.
func loadFrom(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	if cfg.LogCount <= 0 {
		cfg.LogCount = Default().LogCount
	}
	return cfg, nil
}
