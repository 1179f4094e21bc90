package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/focus/internal/core/focus"
	"github.com/colonyops/focus/internal/core/focus/focustest"
)

func newTestServer(t *testing.T, rec *focustest.Recorder) *Server {
	t.Helper()
	d := focus.NewDispatcher(
		focus.MustNewRegistry(focus.DefaultModes()),
		rec,
		zerolog.Nop(),
		focus.DispatcherOptions{},
	)
	return New("127.0.0.1:0", d, zerolog.Nop())
}

func do(t *testing.T, s *Server, target string) (*http.Response, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	resp := w.Result()
	var body map[string]any
	if resp.Header.Get("Content-Type") == "application/json" {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	}
	return resp, body
}

func TestHealth(t *testing.T) {
	rec := &focustest.Recorder{}
	s := newTestServer(t, rec)

	resp, body := do(t, s, "/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, map[string]any{"ok": true}, body)
	assert.Empty(t, rec.Calls)
}

func TestUpdate(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		errs       map[focus.Stage]error
		wantStatus int
		wantBody   map[string]any
		wantCalls  int
	}{
		{
			name:       "success",
			target:     "/update?focus_mode=dnd",
			wantStatus: http.StatusOK,
			wantBody:   map[string]any{"success": true},
			wantCalls:  3,
		},
		{
			name:       "clear",
			target:     "/update?focus_mode=clear",
			wantStatus: http.StatusOK,
			wantBody:   map[string]any{"success": true},
			wantCalls:  1,
		},
		{
			name:       "missing mode",
			target:     "/update",
			wantStatus: http.StatusBadRequest,
			wantBody:   map[string]any{"success": false, "error": "Invalid or missing focus_mode"},
		},
		{
			name:       "unknown mode",
			target:     "/update?focus_mode=nonexistent",
			wantStatus: http.StatusBadRequest,
			wantBody:   map[string]any{"success": false, "error": "Invalid or missing focus_mode"},
		},
		{
			name:       "profile failure",
			target:     "/update?focus_mode=work",
			errs:       map[focus.Stage]error{focus.StageProfile: &focus.CallError{Code: "invalid_auth"}},
			wantStatus: http.StatusInternalServerError,
			wantBody:   map[string]any{"success": false, "error": "profile: invalid_auth"},
			wantCalls:  1,
		},
		{
			name:       "snooze transport failure",
			target:     "/update?focus_mode=dnd",
			errs:       map[focus.Stage]error{focus.StageSnooze: errors.New("timeout")},
			wantStatus: http.StatusInternalServerError,
			wantBody:   map[string]any{"success": false, "error": "snooze: timeout"},
			wantCalls:  3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &focustest.Recorder{Errors: tt.errs}
			s := newTestServer(t, rec)

			resp, body := do(t, s, tt.target)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, tt.wantBody, body)
			assert.Len(t, rec.Calls, tt.wantCalls)
		})
	}
}

func TestModes(t *testing.T) {
	s := newTestServer(t, &focustest.Recorder{})

	resp, body := do(t, s, "/modes")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []any{"clear", "commuting", "dnd", "personal", "work"}, body["modes"])
}

func TestMethodNotAllowed(t *testing.T) {
	rec := &focustest.Recorder{}
	s := newTestServer(t, rec)

	req := httptest.NewRequest(http.MethodPost, "/update?focus_mode=dnd", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Empty(t, rec.Calls)
}

func TestRequestID(t *testing.T) {
	s := newTestServer(t, &focustest.Recorder{})

	resp, _ := do(t, s, "/")
	assert.NotEmpty(t, resp.Header.Get(requestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(requestIDHeader))
}

func TestServer_StartAndShutdown(t *testing.T) {
	s := newTestServer(t, &focustest.Recorder{})

	require.NoError(t, s.Start(context.Background()))
	require.NotEmpty(t, s.Addr())

	resp, err := http.Get("http://" + s.Addr() + "/")
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok": true}`, string(data))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, s.Shutdown(ctx))
}

func TestServer_RunStopsOnCancel(t *testing.T) {
	s := newTestServer(t, &focustest.Recorder{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	require.Eventually(t, func() bool { return s.Addr() != "" }, 2*time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
