package schema

import (
	"encoding/json"
	"errors"
	"strings"

	"gopkg.in/yaml.v3"
)

// ShapeErrorMessage is the fixed user-facing message for documents that parse
// but do not look like a form schema.
const ShapeErrorMessage = "Invalid schema format. Must include a form title and fields array."

// ErrInvalidShape reports a structurally valid document that is missing a
// non-empty title or whose fields member is not an array.
var ErrInvalidShape = errors.New(ShapeErrorMessage)

// ParseError wraps the underlying decode failure for raw text that is not
// valid JSON (or YAML). The message keeps the decoder detail so the editor
// can surface it.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	if e == nil || e.Err == nil {
		return "Invalid JSON"
	}
	return "Invalid JSON: " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse converts raw schema text into a FormSchema.
//
// Empty or whitespace-only input yields (nil, nil): the editor is idle and
// neither a form nor an error should show. Undecodable input yields a
// *ParseError. Decodable input missing a non-empty title, or whose fields
// member is not an array, yields ErrInvalidShape. Anything else yields the
// typed schema with field order preserved.
func Parse(raw string) (*FormSchema, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(trimmed), &payload); err != nil {
		return nil, &ParseError{Err: err}
	}
	if err := checkShape(payload); err != nil {
		return nil, err
	}

	var parsed FormSchema
	if err := json.Unmarshal([]byte(trimmed), &parsed); err != nil {
		// The document is valid JSON with the right top-level members but a
		// field entry has the wrong type for the typed model.
		return nil, ErrInvalidShape
	}
	return &parsed, nil
}

// ParseYAML decodes a YAML schema document using the same two-tier contract
// as Parse.
func ParseYAML(raw string) (*FormSchema, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}

	var payload map[string]any
	if err := yaml.Unmarshal([]byte(trimmed), &payload); err != nil {
		return nil, &ParseError{Err: err}
	}
	if err := checkShape(payload); err != nil {
		return nil, err
	}

	var parsed FormSchema
	if err := yaml.Unmarshal([]byte(trimmed), &parsed); err != nil {
		return nil, ErrInvalidShape
	}
	return &parsed, nil
}

// MarshalText serialises a schema back to the canonical JSON document form,
// suitable for feeding to Parse or the playground editor.
func MarshalText(s *FormSchema) (string, error) {
	if s == nil {
		return "", errors.New("schema: nil schema")
	}
	encoded, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

func checkShape(payload map[string]any) error {
	if payload == nil {
		return ErrInvalidShape
	}
	title, ok := payload["title"].(string)
	if !ok || strings.TrimSpace(title) == "" {
		return ErrInvalidShape
	}
	switch payload["fields"].(type) {
	case []any:
		return nil
	default:
		return ErrInvalidShape
	}
}
