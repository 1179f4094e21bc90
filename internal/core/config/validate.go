package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/focus/internal/core/focus"
)

// Validate checks that the configuration is structurally valid.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("listen", c.Listen, validListenAddr),
		c.validateSnooze(),
		criterio.Run("slack.api_url", c.Slack.APIURL, validAPIURL),
		focus.ValidateModes(c.Modes),
	)
}

// ValidateDeep runs Validate and additionally checks the config file on disk.
// An empty configPath skips the file check.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		validateConfigFile(configPath),
	)
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

func validListenAddr(addr string) error {
	if addr == "" {
		return errors.New("cannot be empty")
	}
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return fmt.Errorf("invalid address %q: %w", addr, err)
	}
	return nil
}

func (c *Config) validateSnooze() error {
	if c.DefaultSnoozeMinutes < 1 {
		return criterio.NewFieldErrors("default_snooze_minutes", errors.New("must be at least 1"))
	}
	return nil
}

func validAPIURL(raw string) error {
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	return nil
}
