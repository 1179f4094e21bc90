package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/focus/internal/core/focus"
	"github.com/colonyops/focus/internal/core/logging"
	"github.com/colonyops/focus/internal/profiler"
	"github.com/colonyops/focus/internal/server"
)

type ServeCmd struct {
	flags     *Flags
	listen    string
	token     string
	pprofAddr string

	// updater replaces the Slack client in tests.
	updater focus.StatusUpdater
}

// NewServeCmd creates a new serve command.
func NewServeCmd(flags *Flags) *ServeCmd {
	return &ServeCmd{flags: flags}
}

// Register adds the serve command to the application.
func (cmd *ServeCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "serve",
		Usage:     "Serve the focus mode HTTP API",
		UsageText: "focus serve [options]",
		Description: `Starts an HTTP server that applies focus modes to your Slack status.

  GET /                      liveness probe
  GET /update?focus_mode=X   apply mode X
  GET /modes                 list known modes

The server stops gracefully on SIGINT or SIGTERM.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "listen",
				Usage:       "address to listen on (overrides config)",
				Sources:     cli.EnvVars("FOCUS_LISTEN"),
				Destination: &cmd.listen,
			},
			tokenFlag(&cmd.token),
			&cli.StringFlag{
				Name:        "pprof-addr",
				Usage:       "serve net/http/pprof on this address (disabled when empty)",
				Sources:     cli.EnvVars("FOCUS_PPROF_ADDR"),
				Destination: &cmd.pprofAddr,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ServeCmd) run(ctx context.Context, c *cli.Command) error {
	dispatcher, err := newDispatcher(cmd.flags, cmd.token, cmd.updater)
	if err != nil {
		return err
	}

	addr := cmd.listen
	if addr == "" {
		addr = cmd.flags.Config.Listen
	}

	if cmd.pprofAddr != "" {
		prof := profiler.New(cmd.pprofAddr, logging.Component("profiler"))
		if err := prof.Start(ctx); err != nil {
			return err
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = prof.Shutdown(shutdownCtx)
		}()
	}

	srv := server.New(addr, dispatcher, logging.Component("server"))
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("serve: %w", err)
	}

	return nil
}
