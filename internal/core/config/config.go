// Package config handles configuration loading and validation for focus.
package config

import (
	"fmt"
	"maps"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/colonyops/focus/internal/core/focus"
)

// DefaultListen matches the address the service has always bound to.
const DefaultListen = "0.0.0.0:3000"

// Config holds the application configuration. The Slack token is not part of
// the file; it comes from the environment or a flag.
type Config struct {
	Listen               string                `yaml:"listen"`
	DefaultSnoozeMinutes int                   `yaml:"default_snooze_minutes"`
	Slack                SlackConfig           `yaml:"slack"`
	Modes                map[string]focus.Mode `yaml:"modes"`
}

// SlackConfig holds Slack client settings.
type SlackConfig struct {
	// APIURL overrides the Web API base URL (Enterprise Grid, tests).
	APIURL string `yaml:"api_url"`
	Debug  bool   `yaml:"debug"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Listen:               DefaultListen,
		DefaultSnoozeMinutes: focus.DefaultSnoozeMinutes,
		Modes:                focus.DefaultModes(),
	}
}

// Load reads and validates configuration from the given path.
func Load(configPath string) (*Config, error) {
	cfg, err := Read(configPath)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Read reads configuration from the given path without validating it. If
// configPath is empty or doesn't exist, the defaults are returned. Modes from
// the file are merged over the built-in table, replacing entries with the same
// name.
func Read(configPath string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.Modes = nil

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.Modes = mergeModes(focus.DefaultModes(), cfg.Modes)
	cfg.applyDefaults()

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Listen == "" {
		c.Listen = defaults.Listen
	}
	if c.DefaultSnoozeMinutes == 0 {
		c.DefaultSnoozeMinutes = defaults.DefaultSnoozeMinutes
	}
	// The Slack client appends method names directly to the base URL.
	if c.Slack.APIURL != "" && !strings.HasSuffix(c.Slack.APIURL, "/") {
		c.Slack.APIURL += "/"
	}
}

// mergeModes merges user modes into defaults.
// User modes override defaults with the same name.
func mergeModes(defaults, user map[string]focus.Mode) map[string]focus.Mode {
	result := make(map[string]focus.Mode, len(defaults)+len(user))
	maps.Copy(result, defaults)
	maps.Copy(result, user)
	return result
}

// Registry builds the immutable mode registry from the configured table.
func (c *Config) Registry() (*focus.Registry, error) {
	return focus.NewRegistry(c.Modes)
}
