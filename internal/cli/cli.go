package cli

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/goliatone/go-schemaform/internal/logging"
)

// Run is the CLI entry point. It wires logging before dispatching to the
// subcommands.
func Run(ctx context.Context, args []string, version string) error {
	var logLevel string
	var logFormat string

	app := &cli.Command{
		Name:    "schemaform",
		Usage:   "Render, validate, and serve JSON-schema driven forms",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "Log level (debug, info, warn, error)",
				Value:       "info",
				Sources:     cli.EnvVars("SCHEMAFORM_LOG_LEVEL"),
				Destination: &logLevel,
			},
			&cli.StringFlag{
				Name:        "log-format",
				Usage:       "Log format (console, json)",
				Value:       "console",
				Sources:     cli.EnvVars("SCHEMAFORM_LOG_FORMAT"),
				Destination: &logFormat,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			if err := logging.Configure(logLevel, logFormat, os.Stderr); err != nil {
				return ctx, err
			}
			return ctx, nil
		},
		Commands: []*cli.Command{
			cmdRender(),
			cmdValidate(),
			cmdPrompt(),
			cmdServe(),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		logging.Default().Error("command failed", "error", err)
		return err
	}
	return nil
}
