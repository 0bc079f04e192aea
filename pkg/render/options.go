package render

import theme "github.com/goliatone/go-theme"

// RenderOptions describe per-request data that renderers can use to
// customise their output without mutating the parsed schema.
type RenderOptions struct {
	// Values pre-populates rendered controls keyed by field id.
	Values map[string]string
	// Errors surfaces validation feedback keyed by field id. One message per
	// field; renderers place it beneath the control.
	Errors map[string]string
	// SchemaError renders an error panel instead of the form when the schema
	// document itself failed to parse.
	SchemaError string
	// Submitted renders the success indicator alongside the form.
	Submitted bool
	// Submitting disables the submit control while the simulated wait runs.
	Submitting bool
	// Hidden adds hidden inputs to the rendered form, keyed by input name.
	// The playground server uses this to round-trip the schema text.
	Hidden map[string]string
	// SubmitURL is the form action. Renderers default to "#" when empty so
	// the markup stays self-contained.
	SubmitURL string
	// Method is the form method, defaulting to POST.
	Method string
	// Theme carries a resolved go-theme selection; renderers emit its tokens
	// as CSS custom properties when present.
	Theme *theme.RendererConfig
}
