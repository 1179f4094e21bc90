package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/focus/internal/core/focus"
	"github.com/colonyops/focus/internal/printer"
	"github.com/colonyops/focus/pkg/iojson"
)

type ApplyCmd struct {
	flags  *Flags
	token  string
	dryRun bool
	format string

	// updater replaces the Slack client in tests.
	updater focus.StatusUpdater
}

// NewApplyCmd creates a new apply command.
func NewApplyCmd(flags *Flags) *ApplyCmd {
	return &ApplyCmd{flags: flags}
}

// Register adds the apply command to the application.
func (cmd *ApplyCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "apply",
		Usage:     "Apply a focus mode once",
		UsageText: "focus apply [options] <mode>",
		Description: `Applies a focus mode to your Slack status without starting the server.

Use --dry-run to print the calls that would be made.`,
		Flags: []cli.Flag{
			tokenFlag(&cmd.token),
			&cli.BoolFlag{
				Name:        "dry-run",
				Usage:       "print the update plan without calling Slack",
				Destination: &cmd.dryRun,
			},
			&cli.StringFlag{
				Name:        "format",
				Usage:       "dry-run output format (text, json)",
				Value:       "text",
				Destination: &cmd.format,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ApplyCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one mode, got %d", c.Args().Len())
	}
	mode := c.Args().First()
	p := printer.Ctx(ctx)

	if cmd.dryRun {
		return cmd.printPlan(c, p, mode)
	}

	dispatcher, err := newDispatcher(cmd.flags, cmd.token, cmd.updater)
	if err != nil {
		return err
	}

	err = dispatcher.Apply(ctx, mode)
	if errors.Is(err, focus.ErrInvalidMode) {
		return fmt.Errorf("unknown mode %q (known: %v)", mode, dispatcher.Registry().Names())
	}
	if err != nil {
		return fmt.Errorf("apply %s: %w", mode, err)
	}

	p.Successf("Applied focus mode %q", mode)
	return nil
}

func (cmd *ApplyCmd) printPlan(c *cli.Command, p *printer.Printer, mode string) error {
	registry, err := cmd.flags.Config.Registry()
	if err != nil {
		return err
	}

	// The plan does not touch Slack, so no updater or token is needed.
	dispatcher := focus.NewDispatcher(registry, nil, dispatcherLogger(), focus.DispatcherOptions{
		DefaultSnoozeMinutes: cmd.flags.Config.DefaultSnoozeMinutes,
	})

	plan, err := dispatcher.Plan(mode)
	if err != nil {
		return fmt.Errorf("unknown mode %q (known: %v)", mode, registry.Names())
	}

	if cmd.format == "json" {
		return iojson.WriteWith(c.Root().Writer, os.Stderr, plan)
	}

	expires := "never"
	if plan.Profile.Expiration > 0 {
		expires = time.Unix(plan.Profile.Expiration, 0).Format(time.Kitchen)
	}

	p.Infof("profile:  text=%q emoji=%q expires=%s", plan.Profile.StatusText, plan.Profile.StatusEmoji, expires)
	if plan.Presence != "" {
		p.Infof("presence: %s", plan.Presence)
	} else {
		p.Printf("%s", printer.Muted("presence: unchanged"))
	}
	switch plan.Snooze.Action {
	case focus.SnoozeStart:
		p.Infof("snooze:   start for %d minutes", plan.Snooze.Minutes)
	case focus.SnoozeEnd:
		p.Infof("snooze:   end")
	default:
		p.Printf("%s", printer.Muted("snooze:   unchanged"))
	}

	return nil
}
