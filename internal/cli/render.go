package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/goliatone/go-schemaform/pkg/openapi"
	"github.com/goliatone/go-schemaform/pkg/orchestrator"
	"github.com/goliatone/go-schemaform/pkg/schema"
)

func cmdRender() *cli.Command {
	var rendererName string
	var output string
	var operationID string

	return &cli.Command{
		Name:      "render",
		Usage:     "Render a schema document to HTML",
		ArgsUsage: "<schema-file>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "renderer",
				Usage:       "Renderer to use",
				Value:       "vanilla",
				Destination: &rendererName,
			},
			&cli.StringFlag{
				Name:        "output",
				Usage:       "Output file (default stdout)",
				Destination: &output,
			},
			&cli.StringFlag{
				Name:        "operation",
				Usage:       "Treat the input as an OpenAPI document and render this operation's request body",
				Destination: &operationID,
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

			schemaText, err := resolveSchemaText(ctx, path, raw, operationID)
			if err != nil {
				return err
			}

			orch := orchestrator.New()
			rendered, err := orch.Generate(ctx, orchestrator.Request{
				SchemaText: schemaText,
				Renderer:   rendererName,
			})
			if err != nil {
				return err
			}

			if output == "" {
				_, err = os.Stdout.Write(rendered)
				return err
			}
			return os.WriteFile(output, rendered, 0o644)
		},
	}
}

// resolveSchemaText returns the schema document to render. With an operation
// id the input is an OpenAPI document and is converted first; YAML schema
// files are detected by extension and normalised through ParseYAML.
func resolveSchemaText(ctx context.Context, path string, raw []byte, operationID string) (string, error) {
	if operationID != "" {
		form, err := openapi.FormFromData(ctx, raw, operationID)
		if err != nil {
			return "", err
		}
		return schema.MarshalText(form)
	}

	if isYAMLPath(path) {
		form, err := schema.ParseYAML(string(raw))
		if err != nil {
			return "", err
		}
		return schema.MarshalText(form)
	}

	return string(raw), nil
}

func isYAMLPath(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml")
}
