// Package slack implements focus.StatusUpdater on top of the Slack Web API.
package slack

import (
	"context"
	"errors"
	"net/http"

	goslack "github.com/slack-go/slack"

	"github.com/colonyops/focus/internal/core/focus"
)

// Options configures the Slack client.
type Options struct {
	// APIURL overrides the Web API base URL. It must end with a slash.
	APIURL     string
	HTTPClient *http.Client
	Debug      bool
}

// Updater sets status, presence and do-not-disturb for the token's user.
type Updater struct {
	client *goslack.Client
}

var _ focus.StatusUpdater = (*Updater)(nil)

// New creates an Updater authenticated with token.
func New(token string, opts Options) *Updater {
	var clientOpts []goslack.Option
	if opts.APIURL != "" {
		clientOpts = append(clientOpts, goslack.OptionAPIURL(opts.APIURL))
	}
	if opts.HTTPClient != nil {
		clientOpts = append(clientOpts, goslack.OptionHTTPClient(opts.HTTPClient))
	}
	if opts.Debug {
		clientOpts = append(clientOpts, goslack.OptionDebug(true))
	}

	return &Updater{client: goslack.New(token, clientOpts...)}
}

// SetProfile calls users.profile.set with the status fields of p.
func (u *Updater) SetProfile(ctx context.Context, p focus.Profile) error {
	err := u.client.SetUserCustomStatusContext(ctx, p.StatusText, p.StatusEmoji, p.Expiration)
	return classify(err)
}

// SetPresence calls users.setPresence. Slack only knows "auto" and "away";
// active is sent as auto, which shows the user as active while connected.
func (u *Updater) SetPresence(ctx context.Context, p focus.Presence) error {
	value := string(p)
	if p == focus.PresenceActive {
		value = string(focus.PresenceAuto)
	}
	return classify(u.client.SetUserPresenceContext(ctx, value))
}

// EndSnooze calls dnd.endSnooze.
func (u *Updater) EndSnooze(ctx context.Context) error {
	_, err := u.client.EndSnoozeContext(ctx)
	return classify(err)
}

// StartSnooze calls dnd.setSnooze.
func (u *Updater) StartSnooze(ctx context.Context, minutes int) error {
	_, err := u.client.SetSnoozeContext(ctx, minutes)
	return classify(err)
}

// classify converts Slack client errors into *focus.CallError so the
// dispatcher can report the API error code.
func classify(err error) error {
	if err == nil {
		return nil
	}

	ce := &focus.CallError{Err: err}

	var (
		apiErr    goslack.SlackErrorResponse
		statusErr goslack.StatusCodeError
		rateErr   *goslack.RateLimitedError
	)

	switch {
	case errors.As(err, &apiErr):
		ce.Code = apiErr.Err
		ce.StatusCode = http.StatusOK
	case errors.As(err, &rateErr):
		ce.Code = "ratelimited"
		ce.StatusCode = http.StatusTooManyRequests
	case errors.As(err, &statusErr):
		ce.StatusCode = statusErr.Code
	}

	return ce
}
