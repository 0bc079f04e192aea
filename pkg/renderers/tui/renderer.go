package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-schemaform/pkg/render"
	"github.com/goliatone/go-schemaform/pkg/schema"
	"github.com/goliatone/go-schemaform/pkg/validate"
)

const skipChoice = "(skip)"

// Renderer implements render.Renderer for terminal-driven sessions: every
// field becomes a prompt, answers are validated in a loop, and the collected
// values serialize as JSON.
type Renderer struct {
	driver    PromptDriver
	validator *validate.Validator
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, standard
// validator).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		driver:    newSurveyDriver(),
		validator: validate.New(),
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	return "application/json"
}

// Render walks the form fields in declaration order, prompting for each and
// re-prompting until the answer validates. The returned bytes are the
// collected field-id to value mapping as JSON.
func (r *Renderer) Render(ctx context.Context, form schema.FormSchema, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}
	if opts.SchemaError != "" {
		return nil, fmt.Errorf("tui: schema error: %s", opts.SchemaError)
	}

	if form.Title != "" {
		if err := r.driver.Info(ctx, form.Title); err != nil {
			return nil, err
		}
	}
	if description := schema.SanitizeDescription(form.Description); description != "" {
		if err := r.driver.Info(ctx, description); err != nil {
			return nil, err
		}
	}

	values := make(map[string]string, len(form.Fields))
	for _, field := range form.Fields {
		value, err := r.promptField(ctx, field, opts.Values[field.ID])
		if err != nil {
			return nil, err
		}
		values[field.ID] = value
	}

	payload, err := json.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("tui: serialize values: %w", err)
	}
	return payload, nil
}

func (r *Renderer) promptField(ctx context.Context, field schema.Field, previous string) (string, error) {
	switch field.Type {
	case schema.FieldTypeSelect, schema.FieldTypeRadio:
		return r.promptChoice(ctx, field, previous)
	case schema.FieldTypeTextarea:
		return r.promptTextArea(ctx, field, previous)
	default:
		return r.promptInput(ctx, field, previous)
	}
}

func (r *Renderer) promptInput(ctx context.Context, field schema.Field, previous string) (string, error) {
	cfg := InputConfig{
		Message:     promptLabel(field),
		Default:     previous,
		Placeholder: field.Placeholder,
	}

	for {
		response, err := r.driver.Input(ctx, cfg)
		if err != nil {
			return "", err
		}
		if message := r.validator.Field(field, response); message != "" {
			if err := r.driver.Info(ctx, message); err != nil {
				return "", err
			}
			cfg.Default = response
			continue
		}
		return response, nil
	}
}

func (r *Renderer) promptTextArea(ctx context.Context, field schema.Field, previous string) (string, error) {
	cfg := TextAreaConfig{
		Message: promptLabel(field),
		Default: previous,
	}

	for {
		response, err := r.driver.TextArea(ctx, cfg)
		if err != nil {
			return "", err
		}
		if message := r.validator.Field(field, response); message != "" {
			if err := r.driver.Info(ctx, message); err != nil {
				return "", err
			}
			cfg.Default = response
			continue
		}
		return response, nil
	}
}

// promptChoice drives select and radio fields through a single-selection
// prompt. Optional fields get a skip entry so the user can leave them empty.
func (r *Renderer) promptChoice(ctx context.Context, field schema.Field, previous string) (string, error) {
	labels := make([]string, 0, len(field.Options)+1)
	if !field.Required {
		labels = append(labels, skipChoice)
	}
	for _, option := range field.Options {
		labels = append(labels, option.DisplayLabel())
	}

	defaultIdx := -1
	if previous != "" {
		for i, option := range field.Options {
			if option.Value == previous {
				defaultIdx = i
				if !field.Required {
					defaultIdx++
				}
				break
			}
		}
	}

	for {
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      promptLabel(field),
			Options:      labels,
			DefaultIndex: defaultIdx,
		})
		if err != nil {
			return "", err
		}
		value, ok := choiceValue(field, idx)
		if !ok {
			if err := r.driver.Info(ctx, fmt.Sprintf("Invalid selection for %s", field.DisplayLabel())); err != nil {
				return "", err
			}
			continue
		}
		if message := r.validator.Field(field, value); message != "" {
			if err := r.driver.Info(ctx, message); err != nil {
				return "", err
			}
			continue
		}
		return value, nil
	}
}

func choiceValue(field schema.Field, idx int) (string, bool) {
	if !field.Required {
		if idx == 0 {
			return "", true
		}
		idx--
	}
	if idx < 0 || idx >= len(field.Options) {
		return "", false
	}
	return field.Options[idx].Value, true
}

func promptLabel(field schema.Field) string {
	label := strings.TrimSpace(field.DisplayLabel())
	if field.Required {
		label += " *"
	}
	return label
}
