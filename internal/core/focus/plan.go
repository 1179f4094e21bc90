package focus

import "time"

// Profile is the payload of the profile call.
type Profile struct {
	StatusText  string `json:"status_text"`
	StatusEmoji string `json:"status_emoji"`
	// Expiration is a Unix timestamp in seconds. Zero means the status
	// never expires.
	Expiration int64 `json:"status_expiration,omitempty"`
}

// SnoozeAction selects the do-not-disturb call issued for a plan.
type SnoozeAction string

const (
	SnoozeNone  SnoozeAction = ""
	SnoozeEnd   SnoozeAction = "end"
	SnoozeStart SnoozeAction = "start"
)

// Snooze is the resolved do-not-disturb instruction.
type Snooze struct {
	Action  SnoozeAction `json:"action,omitempty"`
	Minutes int          `json:"minutes,omitempty"`
}

// UpdatePlan is the set of calls derived from a single Mode. Empty Presence
// and SnoozeNone mean the corresponding call is skipped.
type UpdatePlan struct {
	Mode     string   `json:"mode"`
	Profile  Profile  `json:"profile"`
	Presence Presence `json:"presence,omitempty"`
	Snooze   Snooze   `json:"snooze"`
}

// BuildPlan derives the calls for m. The clear mode only resets the profile
// and never carries an expiration.
func BuildPlan(m Mode, now time.Time, defaultSnoozeMinutes int) UpdatePlan {
	if m.IsClear() {
		return UpdatePlan{Mode: m.Name}
	}

	plan := UpdatePlan{
		Mode: m.Name,
		Profile: Profile{
			StatusText:  m.StatusText,
			StatusEmoji: m.StatusEmoji,
		},
		Presence: m.Presence,
	}

	if m.ExpirationMinutes > 0 {
		plan.Profile.Expiration = now.Add(time.Duration(m.ExpirationMinutes) * time.Minute).Unix()
	}

	if m.Notifications {
		plan.Snooze = Snooze{Action: SnoozeEnd}
	} else {
		minutes := m.SnoozeMinutes
		if minutes <= 0 {
			minutes = defaultSnoozeMinutes
		}
		plan.Snooze = Snooze{Action: SnoozeStart, Minutes: minutes}
	}

	return plan
}
