package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the optional per-user file at ~/.kuhi.yaml. A missing file or
// field falls back to the defaults.
type Config struct {
	// History is the REPL history file path.
	History string `yaml:"history"`
	// Color is one of "auto", "always", "never".
	Color string `yaml:"color"`
}

// Load reads the user config. It never fails: unreadable or malformed
// files yield the defaults.
func Load() Config {
	cfg := Config{Color: "auto", History: DefaultHistoryFile}
	home, err := os.UserHomeDir()
	if err != nil {
		return cfg
	}
	cfg.History = filepath.Join(home, DefaultHistoryFile)
	data, err := os.ReadFile(filepath.Join(home, ConfigFileName))
	if err != nil {
		return cfg
	}
	var file Config
	if yaml.Unmarshal(data, &file) != nil {
		return cfg
	}
	if file.History != "" {
		cfg.History = file.History
	}
	if file.Color != "" {
		cfg.Color = file.Color
	}
	return cfg
}

// ColorEnabled resolves the color mode against the output terminal.
func (c Config) ColorEnabled(isTTY bool) bool {
	switch c.Color {
	case "always":
		return true
	case "never":
		return false
	}
	return isTTY
}
