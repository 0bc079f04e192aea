package schemaform

import (
	"context"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-schemaform/pkg/orchestrator"
	"github.com/goliatone/go-schemaform/pkg/render"
	"github.com/goliatone/go-schemaform/pkg/schema"
)

// FormSchema aliases the parsed schema document exported via the root
// package for convenience.
type FormSchema = schema.FormSchema

// Field aliases a single form field declaration.
type Field = schema.Field

// RenderOptions describes per-request overrides that renderers can use to
// prefill values or surface validation errors.
type RenderOptions = render.RenderOptions

// Request aliases the orchestrator request.
type Request = orchestrator.Request

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateHTML parses the schema text and renders it with the named renderer
// (or the default vanilla renderer when empty). It is the simplest entry
// point for callers that just want HTML output.
func GenerateHTML(ctx context.Context, schemaText, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		SchemaText: schemaText,
		Renderer:   rendererName,
	})
}

// WithThemeSelector passes a go-theme selector through to the orchestrator
// so theme/variant choices can be resolved ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector)
}

// WithRenderer registers an additional renderer alongside the defaults.
func WithRenderer(renderer render.Renderer) orchestrator.Option {
	return orchestrator.WithRenderer(renderer)
}
