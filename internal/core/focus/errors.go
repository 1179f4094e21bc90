package focus

import (
	"errors"
	"fmt"
)

// ErrInvalidMode is returned by Apply when the requested mode cannot be
// resolved. No external calls are made in that case.
var ErrInvalidMode = errors.New("invalid focus mode")

// Stage names one of the ordered calls issued by the Dispatcher.
type Stage string

const (
	StageProfile  Stage = "profile"
	StagePresence Stage = "presence"
	StageSnooze   Stage = "snooze"
)

// CallError is returned by StatusUpdater implementations that can classify a
// failure. Code is the machine readable reason reported by the remote API
// (e.g. "invalid_auth"); StatusCode is the HTTP status when known.
type CallError struct {
	Code       string
	StatusCode int
	Err        error
}

func (e *CallError) Error() string {
	switch {
	case e.Code != "" && e.Err != nil && e.Err.Error() != e.Code:
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	case e.Code != "":
		return e.Code
	case e.Err != nil:
		return e.Err.Error()
	default:
		return fmt.Sprintf("status %d", e.StatusCode)
	}
}

func (e *CallError) Unwrap() error { return e.Err }

// UpdateError reports the first failed call of an Apply. Calls issued before
// Stage are not rolled back.
type UpdateError struct {
	Mode       string
	Stage      Stage
	Code       string
	StatusCode int
	Err        error
}

func (e *UpdateError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Stage, e.Code)
	}
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *UpdateError) Unwrap() error { return e.Err }

func newUpdateError(mode string, stage Stage, err error) *UpdateError {
	ue := &UpdateError{Mode: mode, Stage: stage, Err: err}

	var ce *CallError
	if errors.As(err, &ce) {
		ue.Code = ce.Code
		ue.StatusCode = ce.StatusCode
	}

	return ue
}
