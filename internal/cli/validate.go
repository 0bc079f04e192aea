package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/urfave/cli/v3"

	"github.com/goliatone/go-schemaform/internal/logging"
	"github.com/goliatone/go-schemaform/pkg/schema"
	"github.com/goliatone/go-schemaform/pkg/validate"
)

func cmdValidate() *cli.Command {
	var valuesPath string
	var numericBounds bool

	return &cli.Command{
		Name:      "validate",
		Usage:     "Check a schema document and optionally validate values against it",
		ArgsUsage: "<schema-file>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "values",
				Usage:       "JSON file with field-id to value mappings to validate",
				Destination: &valuesPath,
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

			var form *schema.FormSchema
			if isYAMLPath(path) {
				form, err = schema.ParseYAML(string(raw))
			} else {
				form, err = schema.Parse(string(raw))
			}
			if err != nil {
				return err
			}
			if form == nil {
				return errors.New("schema file is empty")
			}

			failed := false
			if issues := schema.Lint(form); len(issues) > 0 {
				failed = true
				for _, issue := range issues {
					logging.Default().Warn("schema issue", "field", issue.Field, "message", issue.Message)
				}
			}

			if valuesPath != "" {
				values, err := readValues(valuesPath)
				if err != nil {
					return err
				}

				var options []validate.Option
				if numericBounds {
					options = append(options, validate.WithNumericBounds())
				}
				if errs := validate.New(options...).Form(form, values); len(errs) > 0 {
					failed = true
					ids := make([]string, 0, len(errs))
					for id := range errs {
						ids = append(ids, id)
					}
					sort.Strings(ids)
					for _, id := range ids {
						logging.Default().Warn("field invalid", "field", id, "message", errs[id])
					}
				}
			}

			if failed {
				return errors.New("validation failed")
			}

			logging.Default().Info("schema valid", "title", form.Title, "fields", len(form.Fields))
			return nil
		},
	}
}

func readValues(path string) (map[string]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read values file: %w", err)
	}
	values := map[string]string{}
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("decode values file: %w", err)
	}
	return values, nil
}
