package commands

import (
	"context"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/focus/internal/core/focus"
	"github.com/colonyops/focus/internal/printer"
	"github.com/colonyops/focus/pkg/iojson"
)

type ModesCmd struct {
	flags  *Flags
	format string
}

// NewModesCmd creates a new modes command.
func NewModesCmd(flags *Flags) *ModesCmd {
	return &ModesCmd{flags: flags}
}

// Register adds the modes command to the application.
func (cmd *ModesCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "modes",
		Usage:       "List configured focus modes",
		UsageText:   "focus modes [options]",
		Description: "Prints every focus mode from the built-in table merged with the config file.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (text, json)",
				Value:       "text",
				Destination: &cmd.format,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ModesCmd) run(ctx context.Context, c *cli.Command) error {
	registry, err := cmd.flags.Config.Registry()
	if err != nil {
		return err
	}

	modes := registry.Modes()

	if cmd.format == "json" {
		return iojson.WriteWith(c.Root().Writer, os.Stderr, modes)
	}

	p := printer.Ctx(ctx)
	for _, m := range modes {
		p.Printf("%-12s %s", m.Name, describe(m))
	}
	p.Printf("%-12s %s", focus.ClearModeName, printer.Muted("clears status text and emoji"))

	return nil
}

func describe(m focus.Mode) string {
	var parts []string

	if m.StatusText != "" || m.StatusEmoji != "" {
		parts = append(parts, strings.TrimSpace(m.StatusEmoji+" "+m.StatusText))
	} else {
		parts = append(parts, printer.Muted("(no status)"))
	}

	parts = append(parts, "presence="+string(m.Presence))

	if m.Notifications {
		parts = append(parts, "notifications=on")
	} else {
		parts = append(parts, "notifications=off")
	}

	return strings.Join(parts, "  ")
}
