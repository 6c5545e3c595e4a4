// Package config loads the styio command configuration from TOML.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultFile is looked up in the working directory when no path is given.
const DefaultFile = "styio.toml"

// EnvVar names the environment variable that can point at a config file.
const EnvVar = "STYIO_CONFIG"

// Config holds the complete command configuration.
type Config struct {
	Output  OutputConfig  `toml:"output"`
	Log     LogConfig     `toml:"log"`
	Infer   InferConfig   `toml:"infer"`
	Backend BackendConfig `toml:"backend"`
	Repl    ReplConfig    `toml:"repl"`
}

// OutputConfig controls how trees and diagnostics are printed.
type OutputConfig struct {
	Format string `toml:"format"`
	Pretty bool   `toml:"pretty"`
	Color  bool   `toml:"color"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"`
}

// InferConfig toggles the type-inference pass.
type InferConfig struct {
	Enabled bool `toml:"enabled"`
}

// BackendConfig selects the compiler backend by registry name.
type BackendConfig struct {
	Name string `toml:"name"`
}

// ReplConfig holds interactive session settings.
type ReplConfig struct {
	History string `toml:"history"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Output:  OutputConfig{Format: "text", Pretty: true, Color: true},
		Log:     LogConfig{Level: "warn"},
		Infer:   InferConfig{Enabled: true},
		Backend: BackendConfig{Name: "nop"},
		Repl:    ReplConfig{History: "~/.styio_history"},
	}
}

// Load reads a TOML file over the defaults. Keys the file leaves out keep
// their default value; unknown keys are an error.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.Repl.History = expandHome(os.ExpandEnv(cfg.Repl.History))
	return cfg, nil
}

// Resolve picks the config for a run: an explicit path, then $STYIO_CONFIG,
// then ./styio.toml. With none of those it returns the defaults.
func Resolve(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvVar)
	}
	if path == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			path = DefaultFile
		}
	}
	if path == "" {
		cfg := Default()
		cfg.Repl.History = expandHome(cfg.Repl.History)
		return cfg, nil
	}
	return Load(path)
}

// Validate checks the enumerated settings.
func (c *Config) Validate() error {
	switch c.Output.Format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("output.format must be text, json or yaml, got %q", c.Output.Format)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	if c.Backend.Name == "" {
		return fmt.Errorf("backend.name must not be empty")
	}
	return nil
}

// SlogLevel returns the configured log level.
func (c *Config) SlogLevel() slog.Level {
	lvl, err := parseLevel(c.Log.Level)
	if err != nil {
		return slog.LevelWarn
	}
	return lvl
}

func parseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("log.level must be debug, info, warn or error, got %q", s)
	}
	return lvl, nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
