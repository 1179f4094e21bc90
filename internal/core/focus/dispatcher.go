package focus

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// StatusUpdater is the Slack capability consumed by the Dispatcher.
type StatusUpdater interface {
	// SetProfile sets the status text, emoji and optional expiration.
	SetProfile(ctx context.Context, p Profile) error
	// SetPresence sets the user's presence.
	SetPresence(ctx context.Context, p Presence) error
	// EndSnooze turns notifications back on.
	EndSnooze(ctx context.Context) error
	// StartSnooze suppresses notifications for the given number of minutes.
	StartSnooze(ctx context.Context, minutes int) error
}

// DispatcherOptions configures a Dispatcher. Zero values select defaults.
type DispatcherOptions struct {
	DefaultSnoozeMinutes int
	Now                  func() time.Time
}

// Dispatcher applies focus modes by issuing profile, presence and snooze
// calls in that order, stopping at the first failure.
type Dispatcher struct {
	registry      *Registry
	updater       StatusUpdater
	log           zerolog.Logger
	defaultSnooze int
	now           func() time.Time
}

// NewDispatcher creates a Dispatcher over registry and updater.
func NewDispatcher(registry *Registry, updater StatusUpdater, logger zerolog.Logger, opts DispatcherOptions) *Dispatcher {
	d := &Dispatcher{
		registry:      registry,
		updater:       updater,
		log:           logger,
		defaultSnooze: opts.DefaultSnoozeMinutes,
		now:           opts.Now,
	}
	if d.defaultSnooze <= 0 {
		d.defaultSnooze = DefaultSnoozeMinutes
	}
	if d.now == nil {
		d.now = time.Now
	}
	return d
}

// Registry returns the registry the dispatcher resolves modes against.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Plan resolves name and returns the calls Apply would issue, without
// issuing them.
func (d *Dispatcher) Plan(name string) (UpdatePlan, error) {
	m, err := d.registry.Lookup(name)
	if err != nil {
		return UpdatePlan{}, fmt.Errorf("%w: %w", ErrInvalidMode, err)
	}
	return BuildPlan(m, d.now(), d.defaultSnooze), nil
}

// Apply resolves name and issues its calls. It returns ErrInvalidMode when the
// mode is unknown and an *UpdateError for the first failed call.
func (d *Dispatcher) Apply(ctx context.Context, name string) error {
	plan, err := d.Plan(name)
	if err != nil {
		d.log.Debug().Ctx(ctx).Str("mode", name).Msg("rejected unknown focus mode")
		return err
	}

	d.log.Info().Ctx(ctx).
		Str("mode", plan.Mode).
		Str("status_text", plan.Profile.StatusText).
		Str("status_emoji", plan.Profile.StatusEmoji).
		Int64("expiration", plan.Profile.Expiration).
		Msg("applying focus mode")

	if err := d.updater.SetProfile(ctx, plan.Profile); err != nil {
		return d.fail(ctx, plan.Mode, StageProfile, err)
	}

	if plan.Presence != "" {
		if err := d.updater.SetPresence(ctx, plan.Presence); err != nil {
			return d.fail(ctx, plan.Mode, StagePresence, err)
		}
	}

	switch plan.Snooze.Action {
	case SnoozeEnd:
		err = d.updater.EndSnooze(ctx)
	case SnoozeStart:
		err = d.updater.StartSnooze(ctx, plan.Snooze.Minutes)
	}
	if err != nil {
		return d.fail(ctx, plan.Mode, StageSnooze, err)
	}

	d.log.Debug().Ctx(ctx).Str("mode", plan.Mode).Msg("focus mode applied")
	return nil
}

func (d *Dispatcher) fail(ctx context.Context, mode string, stage Stage, err error) error {
	ue := newUpdateError(mode, stage, err)

	d.log.Error().Ctx(ctx).
		Err(err).
		Str("mode", mode).
		Str("stage", string(stage)).
		Str("code", ue.Code).
		Int("status_code", ue.StatusCode).
		Msg("focus mode update failed")

	return ue
}
