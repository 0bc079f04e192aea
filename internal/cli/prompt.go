package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/goliatone/go-schemaform/pkg/orchestrator"
	"github.com/goliatone/go-schemaform/pkg/renderers/tui"
	"github.com/goliatone/go-schemaform/pkg/validate"
)

func cmdPrompt() *cli.Command {
	var output string
	var numericBounds bool

	return &cli.Command{
		Name:      "prompt",
		Usage:     "Fill a schema interactively in the terminal",
		ArgsUsage: "<schema-file>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "output",
				Usage:       "Output file for the collected values (default stdout)",
				Destination: &output,
			},
			&cli.BoolFlag{
				Name:        "numeric-bounds",
				Usage:       "Enforce min/max constraints on number fields",
				Destination: &numericBounds,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			path := c.Args().First()
			if path == "" {
				return errors.New("schema file argument is required")
			}

			raw, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read schema file: %w", err)
			}

			schemaText, err := resolveSchemaText(ctx, path, raw, "")
			if err != nil {
				return err
			}

			var options []validate.Option
			if numericBounds {
				options = append(options, validate.WithNumericBounds())
			}
			renderer, err := tui.New(tui.WithValidator(validate.New(options...)))
			if err != nil {
				return err
			}

			orch := orchestrator.New(
				orchestrator.WithRenderer(renderer),
			)
			values, err := orch.Generate(ctx, orchestrator.Request{
				SchemaText: schemaText,
				Renderer:   renderer.Name(),
			})
			if err != nil {
				return err
			}

			if output == "" {
				_, err = fmt.Fprintln(os.Stdout, string(values))
				return err
			}
			return os.WriteFile(output, values, 0o644)
		},
	}
}
