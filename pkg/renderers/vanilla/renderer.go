package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/goliatone/go-schemaform/pkg/render"
	rendertemplate "github.com/goliatone/go-schemaform/pkg/render/template"
	gotemplate "github.com/goliatone/go-schemaform/pkg/render/template/gotemplate"
	"github.com/goliatone/go-schemaform/pkg/schema"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// Renderer produces self-contained HTML for a form schema: the form chrome
// comes from the embedded templates, control markup is assembled per field.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render emits the full form markup. When options.SchemaError is set the
// error panel replaces the form entirely.
func (r *Renderer) Render(ctx context.Context, form schema.FormSchema, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	if options.SchemaError != "" {
		return r.RenderError(ctx, options.SchemaError)
	}

	fields := make([]any, 0, len(form.Fields))
	for _, field := range form.Fields {
		markup := buildFieldMarkup(field, options.Values[field.ID], options.Errors[field.ID])
		fields = append(fields, markup)
	}

	hidden := make([]any, 0, len(options.Hidden))
	for _, name := range sortedKeys(options.Hidden) {
		hidden = append(hidden, hiddenInputMarkup(name, options.Hidden[name]))
	}

	data := map[string]any{
		"title":       form.Title,
		"description": schema.SanitizeDescription(form.Description),
		"fields":      fields,
		"hidden":      hidden,
		"submit_url":  submitURL(options),
		"method":      method(options),
		"submitting":  options.Submitting,
		"submitted":   options.Submitted,
		"css_vars":    cssVars(options),
	}

	result, err := r.templates.RenderTemplate("templates/form.tmpl", data)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

// RenderError emits the schema error panel.
func (r *Renderer) RenderError(_ context.Context, message string) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	result, err := r.templates.RenderTemplate("templates/error_panel.tmpl", map[string]any{
		"message": message,
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render error panel: %w", err)
	}
	return []byte(result), nil
}

func submitURL(options render.RenderOptions) string {
	if options.SubmitURL != "" {
		return options.SubmitURL
	}
	return "#"
}

func method(options render.RenderOptions) string {
	if options.Method != "" {
		return options.Method
	}
	return "POST"
}

// cssVars flattens a resolved theme into a style attribute value. Tokens are
// emitted as custom properties; explicit CSSVars win on collision.
func cssVars(options render.RenderOptions) string {
	if options.Theme == nil {
		return ""
	}

	vars := make(map[string]string, len(options.Theme.Tokens)+len(options.Theme.CSSVars))
	order := make([]string, 0, len(options.Theme.Tokens)+len(options.Theme.CSSVars))

	add := func(name, value string) {
		name = strings.TrimSpace(name)
		if name == "" || value == "" {
			return
		}
		if !strings.HasPrefix(name, "--") {
			name = "--" + name
		}
		if _, exists := vars[name]; !exists {
			order = append(order, name)
		}
		vars[name] = value
	}

	for _, name := range sortedKeys(options.Theme.Tokens) {
		add(name, options.Theme.Tokens[name])
	}
	for _, name := range sortedKeys(options.Theme.CSSVars) {
		add(name, options.Theme.CSSVars[name])
	}

	if len(order) == 0 {
		return ""
	}

	var builder strings.Builder
	for i, name := range order {
		if i > 0 {
			builder.WriteString("; ")
		}
		builder.WriteString(name)
		builder.WriteString(": ")
		builder.WriteString(vars[name])
	}
	return builder.String()
}

func sortedKeys(in map[string]string) []string {
	keys := make([]string, 0, len(in))
	for key := range in {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
