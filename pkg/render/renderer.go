package render

import (
	"context"

	"github.com/goliatone/go-schemaform/pkg/schema"
)

// Renderer converts a FormSchema into a byte representation (HTML, terminal
// session output, etc.).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form schema.FormSchema, options RenderOptions) ([]byte, error)
}
