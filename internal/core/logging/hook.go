package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// ContextHook copies request_id and focus_mode from the event context.
type ContextHook struct{}

// Run adds contextual fields to the zerolog event.
func (h ContextHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	ctx := e.GetCtx()
	if ctx == nil || ctx == context.Background() {
		return
	}

	if id := GetRequestID(ctx); id != "" {
		e.Str("request_id", id)
	}

	if mode := GetFocusMode(ctx); mode != "" {
		e.Str("focus_mode", mode)
	}
}
