package config

import (
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/focus/internal/core/focus"
)

func validConfig(t *testing.T) *Config {
	t.Helper()
	cfg := DefaultConfig()
	return &cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(c *Config)
		wantField string
	}{
		{
			name:   "defaults",
			mutate: func(c *Config) {},
		},
		{
			name:      "empty listen",
			mutate:    func(c *Config) { c.Listen = "" },
			wantField: "listen",
		},
		{
			name:      "listen without port",
			mutate:    func(c *Config) { c.Listen = "localhost" },
			wantField: "listen",
		},
		{
			name:      "zero snooze",
			mutate:    func(c *Config) { c.DefaultSnoozeMinutes = 0 },
			wantField: "default_snooze_minutes",
		},
		{
			name:      "bad api url scheme",
			mutate:    func(c *Config) { c.Slack.APIURL = "ftp://slack.example/" },
			wantField: "slack.api_url",
		},
		{
			name: "invalid mode",
			mutate: func(c *Config) {
				c.Modes["broken"] = focus.Mode{Presence: "sleeping"}
			},
			wantField: `modes["broken"].presence`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var fieldErrs criterio.FieldErrors
			require.ErrorAs(t, err, &fieldErrs)
			require.Len(t, fieldErrs, 1)
			assert.Contains(t, fieldErrs[0].Field, tt.wantField)
		})
	}
}

func TestValidateDeep_ConfigFileIsDirectory(t *testing.T) {
	cfg := validConfig(t)

	err := cfg.ValidateDeep(t.TempDir())

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Len(t, fieldErrs, 1)
	assert.Contains(t, fieldErrs[0].Field, "config_file")
	assert.Contains(t, fieldErrs[0].Err.Error(), "is a directory")
}

func TestValidateDeep_MissingFileIsFine(t *testing.T) {
	cfg := validConfig(t)
	assert.NoError(t, cfg.ValidateDeep("/does/not/exist.yaml"))
	assert.NoError(t, cfg.ValidateDeep(""))
}
