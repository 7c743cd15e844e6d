// Package config locates tally's configuration directory and loads
// config.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
)

// Screens a session can start on.
const (
	ScreenCalculator = "calculator"
	ScreenLogin      = "login"
	ScreenRegister   = "register"
	ScreenWelcome    = "welcome"
)

// ValidScreen reports whether name is one of the Screen constants.
func ValidScreen(name string) bool {
	switch name {
	case ScreenCalculator, ScreenLogin, ScreenRegister, ScreenWelcome:
		return true
	}
	return false
}

// Config is the decoded config.toml.
type Config struct {
	UI      UIConfig      `toml:"ui"`
	History HistoryConfig `toml:"history"`
	Log     LogConfig     `toml:"log"`
	Script  ScriptConfig  `toml:"script"`
}

// UIConfig holds front-end settings.
type UIConfig struct {
	StartScreen string `toml:"start_screen"`
	ShowHistory bool   `toml:"show_history"`
}

// HistoryConfig controls where calculation history is persisted.
type HistoryConfig struct {
	File  string `toml:"file"`  // JSON key-value file; "" keeps history in memory
	Key   string `toml:"key"`   // key the list is stored under
	Limit int    `toml:"limit"` // 0 = unlimited
}

// LogConfig controls the structured log file.
type LogConfig struct {
	File  string `toml:"file"` // "" disables logging
	Level string `toml:"level"`
}

// ScriptConfig controls Lua scripting.
type ScriptConfig struct {
	Watch bool `toml:"watch"` // reload scripts when *.lua in Dir() changes
}

// Dir returns the tally configuration directory.
// Respects XDG_CONFIG_HOME on Unix, APPDATA on Windows.
func Dir() string {
	var base string

	if runtime.GOOS == "windows" {
		base = os.Getenv("APPDATA")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	} else {
		base = os.Getenv("XDG_CONFIG_HOME")
		if base == "" {
			home, _ := os.UserHomeDir()
			base = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(base, "tally")
}

// InitFile returns the path to init.lua in dir.
func InitFile(dir string) string {
	return filepath.Join(dir, "init.lua")
}

// File returns the default config.toml path.
func File() string {
	return filepath.Join(Dir(), "config.toml")
}

// Debug reports whether TALLY_DEBUG=1 is set.
func Debug() bool {
	return os.Getenv("TALLY_DEBUG") == "1"
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		UI: UIConfig{
			StartScreen: ScreenCalculator,
			ShowHistory: true,
		},
		History: HistoryConfig{
			File: filepath.Join(Dir(), "storage.json"),
			Key:  "calculatorHistory",
		},
		Log: LogConfig{
			File:  filepath.Join(Dir(), "tally.log"),
			Level: "info",
		},
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	cfg.History.File = expandTilde(cfg.History.File)
	cfg.Log.File = expandTilde(cfg.Log.File)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	if !ValidScreen(c.UI.StartScreen) {
		return fmt.Errorf("ui.start_screen: unknown screen %q", c.UI.StartScreen)
	}
	if c.History.Limit < 0 {
		return fmt.Errorf("history.limit: must not be negative")
	}
	return nil
}

func expandTilde(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}
