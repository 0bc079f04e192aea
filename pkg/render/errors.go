package render

import (
	"strings"

	"github.com/goliatone/go-schemaform/pkg/schema"
)

// ErrorMapping splits an error payload into field-level messages keyed by
// field id plus form-level messages for anything that could not be
// attributed to a declared field.
type ErrorMapping struct {
	Fields map[string]string
	Form   []string
}

// NormalizeMessages trims whitespace and removes duplicates while preserving
// order.
func NormalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

// MapErrorPayload normalises a message payload keyed by arbitrary paths into
// per-field messages renderers can consume. Fields hold a single message
// slot, so the first normalised message per declared id wins; messages for
// unknown ids become form-level so nothing is lost.
func MapErrorPayload(form schema.FormSchema, payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{}
	if len(payload) == 0 {
		return mapping
	}

	known := make(map[string]struct{}, len(form.Fields))
	for _, field := range form.Fields {
		if id := strings.TrimSpace(field.ID); id != "" {
			known[id] = struct{}{}
		}
	}

	for rawKey, messages := range payload {
		normalized := NormalizeMessages(messages)
		if len(normalized) == 0 {
			continue
		}

		key := strings.TrimSpace(rawKey)
		if _, ok := known[key]; !ok {
			mapping.Form = append(mapping.Form, normalized...)
			continue
		}
		if mapping.Fields == nil {
			mapping.Fields = make(map[string]string)
		}
		if _, exists := mapping.Fields[key]; !exists {
			mapping.Fields[key] = normalized[0]
		}
	}

	mapping.Form = NormalizeMessages(mapping.Form)
	return mapping
}
