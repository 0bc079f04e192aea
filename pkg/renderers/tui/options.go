package tui

import "github.com/goliatone/go-schemaform/pkg/validate"

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver swaps the prompt implementation. Tests use this to script
// a session without a terminal.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithValidator replaces the default validator used for the prompt loops.
func WithValidator(validator *validate.Validator) Option {
	return func(r *Renderer) {
		if validator != nil {
			r.validator = validator
		}
	}
}
