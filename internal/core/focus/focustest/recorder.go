// Package focustest provides test doubles for the focus package.
package focustest

import (
	"context"
	"sync"

	"github.com/colonyops/focus/internal/core/focus"
)

// Call captures one StatusUpdater invocation.
type Call struct {
	Stage    focus.Stage
	Profile  focus.Profile
	Presence focus.Presence
	// Snooze is SnoozeEnd or SnoozeStart for snooze calls.
	Snooze  focus.SnoozeAction
	Minutes int
}

// Recorder is a StatusUpdater that records calls. Configure Errors to make a
// stage fail; the failing call is still recorded.
type Recorder struct {
	mu    sync.Mutex
	Calls []Call

	// Errors maps a stage to the error its call returns.
	Errors map[focus.Stage]error
}

var _ focus.StatusUpdater = (*Recorder)(nil)

func (r *Recorder) SetProfile(_ context.Context, p focus.Profile) error {
	return r.record(Call{Stage: focus.StageProfile, Profile: p})
}

func (r *Recorder) SetPresence(_ context.Context, p focus.Presence) error {
	return r.record(Call{Stage: focus.StagePresence, Presence: p})
}

func (r *Recorder) EndSnooze(_ context.Context) error {
	return r.record(Call{Stage: focus.StageSnooze, Snooze: focus.SnoozeEnd})
}

func (r *Recorder) StartSnooze(_ context.Context, minutes int) error {
	return r.record(Call{Stage: focus.StageSnooze, Snooze: focus.SnoozeStart, Minutes: minutes})
}

func (r *Recorder) record(c Call) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Calls = append(r.Calls, c)

	if r.Errors != nil {
		return r.Errors[c.Stage]
	}
	return nil
}

// Stages returns the stage of every recorded call in order.
func (r *Recorder) Stages() []focus.Stage {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]focus.Stage, len(r.Calls))
	for i, c := range r.Calls {
		out[i] = c.Stage
	}
	return out
}

// Count returns the number of recorded calls for stage.
func (r *Recorder) Count(stage focus.Stage) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, c := range r.Calls {
		if c.Stage == stage {
			n++
		}
	}
	return n
}

// Reset clears recorded calls.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls = nil
}
