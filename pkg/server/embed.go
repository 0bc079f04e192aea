package server

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the playground page templates.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
