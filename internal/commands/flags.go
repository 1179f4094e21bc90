package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/focus/internal/core/config"
	"github.com/colonyops/focus/internal/core/focus"
	"github.com/colonyops/focus/internal/core/logging"
	"github.com/colonyops/focus/internal/integration/slack"
)

// TokenEnvVar holds the Slack user token used for status updates.
const TokenEnvVar = "SLACK_BOT_TOKEN"

// ErrMissingToken is returned by commands that talk to Slack when no token
// was provided.
var ErrMissingToken = errors.New("slack token is required (set " + TokenEnvVar + " or --token)")

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "focus", "config.yaml")
}

// tokenFlag is shared by commands that call Slack.
func tokenFlag(dest *string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:        "token",
		Usage:       "Slack user token with users.profile:write, users:write and dnd:write scopes",
		Sources:     cli.EnvVars(TokenEnvVar),
		Destination: dest,
	}
}

// newDispatcher builds the dispatcher for commands that call Slack. It fails
// before any request is made when the token is missing.
func newDispatcher(flags *Flags, token string, updater focus.StatusUpdater) (*focus.Dispatcher, error) {
	if err := flags.Config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if updater == nil {
		if token == "" {
			return nil, ErrMissingToken
		}
		updater = slack.New(token, slack.Options{
			APIURL: flags.Config.Slack.APIURL,
			Debug:  flags.Config.Slack.Debug,
		})
	}

	registry, err := flags.Config.Registry()
	if err != nil {
		return nil, err
	}

	return focus.NewDispatcher(registry, updater, dispatcherLogger(), focus.DispatcherOptions{
		DefaultSnoozeMinutes: flags.Config.DefaultSnoozeMinutes,
	}), nil
}

func dispatcherLogger() zerolog.Logger {
	return logging.Component("dispatcher")
}
