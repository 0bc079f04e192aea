package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-schemaform/pkg/render"
	"github.com/goliatone/go-schemaform/pkg/renderers/vanilla"
	"github.com/goliatone/go-schemaform/pkg/schema"
)

const defaultRendererName = "vanilla"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithRenderer registers an additional renderer on the orchestrator's
// registry during construction.
func WithRenderer(renderer render.Renderer) Option {
	return func(o *Orchestrator) {
		if renderer != nil {
			o.pending = append(o.pending, renderer)
		}
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithThemeSelector passes a go-theme selector through so theme/variant
// choices can be resolved ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
	}
}

// WithDefaultTheme sets the theme and variant used when a request omits them.
func WithDefaultTheme(name, variant string) Option {
	return func(o *Orchestrator) {
		o.defaultTheme = name
		o.defaultVariant = variant
	}
}

// Orchestrator coordinates the pipeline from schema text to rendered output.
// It applies sensible defaults (vanilla renderer, embedded templates) while
// remaining open to dependency injection for advanced callers.
type Orchestrator struct {
	registry        *render.Registry
	defaultRenderer string
	themeSelector   theme.ThemeSelector
	defaultTheme    string
	defaultVariant  string

	pending       []render.Renderer
	initialiseErr error
}

// New constructs an Orchestrator applying any provided options. A missing
// registry is initialised with the built-in vanilla renderer so callers can
// start with a single constructor call.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

func (o *Orchestrator) applyDefaults() {
	if o.registry == nil {
		o.registry = render.NewRegistry()
		htmlRenderer, err := vanilla.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: initialise vanilla renderer: %w", err)
			return
		}
		if err := o.registry.Register(htmlRenderer); err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: register vanilla renderer: %w", err)
			return
		}
	}

	for _, renderer := range o.pending {
		if o.registry.Has(renderer.Name()) {
			continue
		}
		if err := o.registry.Register(renderer); err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: register renderer %q: %w", renderer.Name(), err)
			return
		}
	}
	o.pending = nil
}

// Request describes the inputs required to render a form from schema text.
type Request struct {
	// SchemaText is the raw schema document (JSON).
	SchemaText string

	// Renderer names the renderer to use. If empty, the orchestrator falls
	// back to the configured default renderer.
	Renderer string

	// Values prefills rendered controls keyed by field id.
	Values map[string]string

	// Errors carries validation feedback keyed by field id.
	Errors map[string]string

	// Hidden adds hidden inputs to the rendered form, keyed by input name.
	Hidden map[string]string

	// Submitted renders the success indicator.
	Submitted bool

	// Submitting disables the submit control.
	Submitting bool

	// SubmitURL and Method override the form action.
	SubmitURL string
	Method    string

	// ThemeName and ThemeVariant select a theme; empty values fall back to
	// the orchestrator defaults.
	ThemeName    string
	ThemeVariant string
}

// Generate parses the schema text and renders it with the requested
// renderer. Parse failures still produce output: the error message is handed
// to the renderer so it can surface its error panel in place of the form.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.SchemaText) == "" {
		return nil, errors.New("orchestrator: schema text is required")
	}

	renderer, err := o.Renderer(req.Renderer)
	if err != nil {
		return nil, err
	}

	options := render.RenderOptions{
		Values:     req.Values,
		Errors:     req.Errors,
		Hidden:     req.Hidden,
		Submitted:  req.Submitted,
		Submitting: req.Submitting,
		SubmitURL:  req.SubmitURL,
		Method:     req.Method,
	}

	form, parseErr := schema.Parse(req.SchemaText)
	if parseErr != nil {
		options.SchemaError = parseErr.Error()
		output, err := renderer.Render(ctx, schema.FormSchema{}, options)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: render schema error: %w", err)
		}
		return output, nil
	}

	themeConfig, err := o.resolveTheme(req)
	if err != nil {
		return nil, err
	}
	options.Theme = themeConfig

	output, err := renderer.Render(ctx, *form, options)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

// Renderer resolves a renderer by name, falling back to the configured
// default and then to any registered renderer.
func (o *Orchestrator) Renderer(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}
	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

// resolveTheme turns the selector's resolution into the renderer-facing
// config. Without a selector (or a theme name) rendering proceeds unthemed.
func (o *Orchestrator) resolveTheme(req Request) (*theme.RendererConfig, error) {
	if o.themeSelector == nil {
		return nil, nil
	}

	name := req.ThemeName
	if name == "" {
		name = o.defaultTheme
	}
	if name == "" {
		return nil, nil
	}
	variant := req.ThemeVariant
	if variant == "" {
		variant = o.defaultVariant
	}

	selection, err := o.themeSelector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: select theme %q: %w", name, err)
	}
	if selection == nil {
		return nil, nil
	}

	config := &theme.RendererConfig{
		Theme:   selection.Theme,
		Variant: selection.Variant,
	}
	if selection.Manifest != nil && len(selection.Manifest.Tokens) > 0 {
		config.Tokens = make(map[string]string, len(selection.Manifest.Tokens))
		config.CSSVars = make(map[string]string, len(selection.Manifest.Tokens))
		for key, value := range selection.Manifest.Tokens {
			config.Tokens[key] = value
			config.CSSVars["--"+key] = value
		}
	}
	return config, nil
}
