package focus

import (
	"errors"
	"testing"
	"time"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Lookup(t *testing.T) {
	reg := MustNewRegistry(DefaultModes())

	for name, want := range DefaultModes() {
		t.Run(name, func(t *testing.T) {
			got, err := reg.Lookup(name)
			require.NoError(t, err)

			want.Name = name
			assert.Equal(t, want, got)
		})
	}
}

func TestRegistry_LookupClear(t *testing.T) {
	modes := DefaultModes()
	modes[ClearModeName] = Mode{StatusText: "should be ignored", Presence: PresenceAway, ExpirationMinutes: 10}

	reg, err := NewRegistry(modes)
	require.NoError(t, err)

	got, err := reg.Lookup(ClearModeName)
	require.NoError(t, err)
	assert.Equal(t, Mode{Name: ClearModeName}, got)
	assert.True(t, got.IsClear())
}

func TestRegistry_LookupMissing(t *testing.T) {
	reg := MustNewRegistry(DefaultModes())

	tests := []string{"", "nonexistent", "DND", " dnd"}
	for _, name := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := reg.Lookup(name)
			assert.ErrorIs(t, err, ErrModeNotFound)
		})
	}
}

func TestRegistry_Names(t *testing.T) {
	reg := MustNewRegistry(DefaultModes())
	assert.Equal(t, []string{"clear", "commuting", "dnd", "personal", "work"}, reg.Names())
}

func TestRegistry_ModesSorted(t *testing.T) {
	reg := MustNewRegistry(DefaultModes())

	modes := reg.Modes()
	require.Len(t, modes, 4)
	assert.Equal(t, "commuting", modes[0].Name)
	assert.Equal(t, "work", modes[3].Name)
}

func TestRegistry_IsolatedFromInput(t *testing.T) {
	modes := DefaultModes()
	reg := MustNewRegistry(modes)

	modes["dnd"] = Mode{StatusText: "changed", Presence: PresenceAway}
	delete(modes, "work")

	got, err := reg.Lookup("dnd")
	require.NoError(t, err)
	assert.Equal(t, "Focusing", got.StatusText)

	_, err = reg.Lookup("work")
	assert.NoError(t, err)
}

func TestValidateModes(t *testing.T) {
	tests := []struct {
		name      string
		modes     map[string]Mode
		wantField string
		wantErr   string
	}{
		{
			name:  "defaults are valid",
			modes: DefaultModes(),
		},
		{
			name:      "empty name",
			modes:     map[string]Mode{"": {Presence: PresenceAuto}},
			wantField: `modes[""]`,
			wantErr:   "name cannot be empty",
		},
		{
			name:      "whitespace in name",
			modes:     map[string]Mode{"deep work": {Presence: PresenceAuto}},
			wantField: `modes["deep work"]`,
			wantErr:   "cannot contain whitespace",
		},
		{
			name:      "missing presence",
			modes:     map[string]Mode{"work": {StatusText: "Available"}},
			wantField: `modes["work"].presence`,
			wantErr:   "invalid presence",
		},
		{
			name:      "unknown presence",
			modes:     map[string]Mode{"work": {Presence: "busy"}},
			wantField: `modes["work"].presence`,
			wantErr:   "invalid presence",
		},
		{
			name:      "negative snooze",
			modes:     map[string]Mode{"dnd": {Presence: PresenceAuto, SnoozeMinutes: -5}},
			wantField: `modes["dnd"].snooze_minutes`,
			wantErr:   "must be positive",
		},
		{
			name:      "snooze with notifications on",
			modes:     map[string]Mode{"work": {Presence: PresenceAuto, Notifications: true, SnoozeMinutes: 30}},
			wantField: `modes["work"].snooze_minutes`,
			wantErr:   "notifications are enabled",
		},
		{
			name:      "negative expiration",
			modes:     map[string]Mode{"work": {Presence: PresenceAuto, ExpirationMinutes: -1}},
			wantField: `modes["work"].status_expiration_minutes`,
			wantErr:   "must be positive",
		},
		{
			name:  "clear entry is not validated",
			modes: map[string]Mode{ClearModeName: {Presence: "bogus"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateModes(tt.modes)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}

			var fieldErrs criterio.FieldErrors
			require.ErrorAs(t, err, &fieldErrs)
			require.Len(t, fieldErrs, 1)
			assert.Equal(t, tt.wantField, fieldErrs[0].Field)
			assert.Contains(t, fieldErrs[0].Err.Error(), tt.wantErr)
		})
	}
}

func TestNewRegistry_RejectsInvalid(t *testing.T) {
	_, err := NewRegistry(map[string]Mode{"work": {Presence: "busy"}})
	require.Error(t, err)
}

func TestBuildPlan(t *testing.T) {
	now := time.Date(2024, 7, 26, 17, 3, 33, 0, time.UTC)

	tests := []struct {
		name string
		mode Mode
		want UpdatePlan
	}{
		{
			name: "dnd starts snooze with configured minutes",
			mode: Mode{Name: "dnd", StatusText: "Focusing", StatusEmoji: ":technologist:", Presence: PresenceAuto, SnoozeMinutes: 30},
			want: UpdatePlan{
				Mode:     "dnd",
				Profile:  Profile{StatusText: "Focusing", StatusEmoji: ":technologist:"},
				Presence: PresenceAuto,
				Snooze:   Snooze{Action: SnoozeStart, Minutes: 30},
			},
		},
		{
			name: "suppressed notifications fall back to default snooze",
			mode: Mode{Name: "personal", Presence: PresenceAway},
			want: UpdatePlan{
				Mode:     "personal",
				Presence: PresenceAway,
				Snooze:   Snooze{Action: SnoozeStart, Minutes: 45},
			},
		},
		{
			name: "notifications on ends snooze",
			mode: Mode{Name: "work", StatusText: "Available", Notifications: true, Presence: PresenceAuto},
			want: UpdatePlan{
				Mode:     "work",
				Profile:  Profile{StatusText: "Available"},
				Presence: PresenceAuto,
				Snooze:   Snooze{Action: SnoozeEnd},
			},
		},
		{
			name: "expiration is epoch seconds from now",
			mode: Mode{Name: "commuting", StatusText: "Commuting", StatusEmoji: ":bus:", Notifications: true, Presence: PresenceAway, ExpirationMinutes: 60},
			want: UpdatePlan{
				Mode:     "commuting",
				Profile:  Profile{StatusText: "Commuting", StatusEmoji: ":bus:", Expiration: now.Add(time.Hour).Unix()},
				Presence: PresenceAway,
				Snooze:   Snooze{Action: SnoozeEnd},
			},
		},
		{
			name: "clear only empties the profile",
			mode: Mode{Name: ClearModeName, StatusText: "ignored", ExpirationMinutes: 30, Presence: PresenceAway},
			want: UpdatePlan{Mode: ClearModeName},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildPlan(tt.mode, now, 45))
		})
	}
}

func TestUpdateError_Message(t *testing.T) {
	withCode := newUpdateError("dnd", StagePresence, &CallError{Code: "invalid_auth", StatusCode: 200})
	assert.Equal(t, "presence: invalid_auth", withCode.Error())
	assert.Equal(t, 200, withCode.StatusCode)

	transport := newUpdateError("dnd", StageProfile, errors.New("connection refused"))
	assert.Equal(t, "profile: connection refused", transport.Error())
	assert.Empty(t, transport.Code)
}
