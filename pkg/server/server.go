package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/goliatone/go-schemaform/pkg/form"
	"github.com/goliatone/go-schemaform/pkg/orchestrator"
	gotemplate "github.com/goliatone/go-schemaform/pkg/render/template/gotemplate"
)

// schemaField is the hidden input that carries the schema text through the
// stateless preview/submit round trips.
const schemaField = "_schema"

const sampleSchema = `{
  "title": "Contact us",
  "fields": [
    {"id": "name", "type": "text", "label": "Name", "required": true},
    {"id": "email", "type": "email", "label": "Email", "required": true,
     "validation": {"pattern": "^[^@\\s]+@[^@\\s]+$", "message": "Enter a valid email"}},
    {"id": "message", "type": "textarea", "label": "Message", "required": true}
  ]
}`

// Server is the schema playground: an editor page that renders schema text
// into a live form, plus stateless preview and submit endpoints. Schema text
// round-trips in every request; nothing is stored server side.
type Server struct {
	router *chi.Mux
	orch   *orchestrator.Orchestrator
	pages  *gotemplate.Engine
	logger *slog.Logger
}

// Options configures the Server.
type Options func(*Server)

// WithOrchestrator replaces the default orchestrator (vanilla renderer,
// embedded templates).
func WithOrchestrator(orch *orchestrator.Orchestrator) Options {
	return func(s *Server) {
		if orch != nil {
			s.orch = orch
		}
	}
}

// WithLogger sets the request and submission logger.
func WithLogger(logger *slog.Logger) Options {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs the playground server.
func New(opts ...Options) (*Server, error) {
	s := &Server{
		router: chi.NewRouter(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.orch == nil {
		s.orch = orchestrator.New()
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}

	pages, err := gotemplate.New(gotemplate.WithFS(TemplatesFS()))
	if err != nil {
		return nil, fmt.Errorf("server: load page templates: %w", err)
	}
	s.pages = pages

	s.router.Use(middleware.RequestID)
	s.router.Use(s.accessLogger)
	s.router.Use(middleware.Recoverer)

	s.router.Get("/", s.handleEditor)
	s.router.Post("/preview", s.handlePreview)
	s.router.Post("/submit", s.handleSubmit)

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			s.logger.Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

func (s *Server) handleEditor(w http.ResponseWriter, r *http.Request) {
	s.renderEditor(w, r, sampleSchema, orchestrator.Request{
		SchemaText: sampleSchema,
	})
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "malformed form payload", http.StatusBadRequest)
		return
	}
	schemaText := r.PostFormValue("schema")
	if strings.TrimSpace(schemaText) == "" {
		http.Error(w, "schema text is required", http.StatusBadRequest)
		return
	}

	s.renderEditor(w, r, schemaText, orchestrator.Request{
		SchemaText: schemaText,
	})
}

// handleSubmit rebuilds a one-shot controller from the posted schema text and
// values, then drives the full submit lifecycle: revalidation, the simulated
// wait (collapsed to zero for the round trip), and the diagnostic log entry.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "malformed form payload", http.StatusBadRequest)
		return
	}
	schemaText := r.PostFormValue(schemaField)
	if strings.TrimSpace(schemaText) == "" {
		http.Error(w, "schema text is required", http.StatusBadRequest)
		return
	}

	controller := form.New(
		form.WithDelay(0),
		form.WithLogger(s.logger),
	)
	if err := controller.SetSchemaText(schemaText); err != nil {
		s.renderEditor(w, r, schemaText, orchestrator.Request{SchemaText: schemaText})
		return
	}

	for _, field := range controller.Schema().Fields {
		controller.SetValue(field.ID, r.PostFormValue(field.ID))
	}

	submitted := false
	if err := controller.Submit(r.Context()); err != nil {
		if !errors.Is(err, form.ErrValidationFailed) {
			http.Error(w, "submission failed", http.StatusInternalServerError)
			return
		}
	} else {
		submitted = true
	}

	s.renderEditor(w, r, schemaText, orchestrator.Request{
		SchemaText: schemaText,
		Values:     controller.Values(),
		Errors:     controller.Errors(),
		Submitted:  submitted,
	})
}

// renderEditor renders the editor page around the generated form fragment.
// Parse failures surface as the renderer's error panel inside the preview
// pane, never as an HTTP error.
func (s *Server) renderEditor(w http.ResponseWriter, r *http.Request, schemaText string, req orchestrator.Request) {
	req.SubmitURL = "/submit"
	req.Method = "POST"
	req.Hidden = map[string]string{schemaField: schemaText}

	output, err := s.orch.Generate(r.Context(), req)
	if err != nil {
		s.logger.Error("render fragment", "error", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	fragment := string(output)

	page, err := s.pages.RenderTemplate("templates/editor.tmpl", map[string]any{
		"schema_text": schemaText,
		"fragment":    fragment,
	})
	if err != nil {
		s.logger.Error("render editor page", "error", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(page))
}
