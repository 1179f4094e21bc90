// Package focus maps named focus modes onto Slack status updates.
package focus

// ClearModeName is always resolvable, whether or not the table defines it.
const ClearModeName = "clear"

// DefaultSnoozeMinutes is used when a mode suppresses notifications without
// naming a snooze duration.
const DefaultSnoozeMinutes = 120

// Presence is the presence value requested from Slack.
type Presence string

// Supported presence values.
const (
	PresenceActive Presence = "active"
	PresenceAway   Presence = "away"
	PresenceAuto   Presence = "auto"
)

// IsValid reports whether p is a supported presence value.
func (p Presence) IsValid() bool {
	switch p {
	case PresenceActive, PresenceAway, PresenceAuto:
		return true
	default:
		return false
	}
}

// Mode is one row of the focus mode table.
type Mode struct {
	Name string `yaml:"-" json:"name"`
	// Active marks an "engaged" mode. Informational only.
	Active            bool     `yaml:"active"                    json:"active"`
	StatusText        string   `yaml:"status_text"               json:"status_text"`
	StatusEmoji       string   `yaml:"status_emoji"              json:"status_emoji"`
	Notifications     bool     `yaml:"notifications"             json:"notifications"`
	Presence          Presence `yaml:"presence"                  json:"presence"`
	SnoozeMinutes     int      `yaml:"snooze_minutes"            json:"snooze_minutes,omitempty"`            // 0 = use the default
	ExpirationMinutes int      `yaml:"status_expiration_minutes" json:"status_expiration_minutes,omitempty"` // 0 = never expires
}

// IsClear reports whether m is the implicit clear mode.
func (m Mode) IsClear() bool {
	return m.Name == ClearModeName
}

// clearMode is the entry returned for ClearModeName regardless of the table.
func clearMode() Mode {
	return Mode{Name: ClearModeName}
}

// DefaultModes returns the built-in mode table.
func DefaultModes() map[string]Mode {
	return map[string]Mode{
		"personal": {
			Active:        false,
			Notifications: false,
			Presence:      PresenceAway,
		},
		"work": {
			Active:        true,
			StatusText:    "Available",
			Notifications: true,
			Presence:      PresenceAuto,
		},
		"dnd": {
			Active:        true,
			StatusText:    "Focusing",
			StatusEmoji:   ":technologist:",
			Notifications: false,
			Presence:      PresenceAuto,
			SnoozeMinutes: 30,
		},
		"commuting": {
			Active:            true,
			StatusText:        "Commuting",
			StatusEmoji:       ":bus:",
			Notifications:     true,
			Presence:          PresenceAway,
			ExpirationMinutes: 60,
		},
	}
}
