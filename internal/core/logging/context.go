package logging

import "context"

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	focusModeKey contextKey = "focus_mode"
)

// WithRequestID adds a request ID to the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// WithFocusMode adds the requested focus mode to the context.
func WithFocusMode(ctx context.Context, mode string) context.Context {
	return context.WithValue(ctx, focusModeKey, mode)
}

// GetRequestID retrieves the request ID from the context.
// Returns empty string if not present.
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// GetFocusMode retrieves the focus mode from the context.
// Returns empty string if not present.
func GetFocusMode(ctx context.Context) string {
	if mode, ok := ctx.Value(focusModeKey).(string); ok {
		return mode
	}
	return ""
}
