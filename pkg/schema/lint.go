package schema

import (
	"fmt"
	"regexp"
	"strings"
)

// Issue is a structural problem found in a parsed schema, with optional
// field attribution. Issues never block rendering; they exist so authoring
// surfaces (CLI validate, editor) can report problems the two-tier parse
// contract deliberately tolerates.
type Issue struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// Lint inspects a parsed schema for problems beyond the title/fields shape
// check: duplicate or empty ids, option-less select/radio fields, unknown
// field types, uncompilable patterns, and inverted length or numeric bounds.
func Lint(s *FormSchema) []Issue {
	if s == nil {
		return nil
	}

	var issues []Issue
	seen := make(map[string]struct{}, len(s.Fields))

	for idx, field := range s.Fields {
		name := strings.TrimSpace(field.ID)
		if name == "" {
			issues = append(issues, Issue{
				Message: fmt.Sprintf("field %d has an empty id", idx),
			})
			continue
		}
		if _, dup := seen[name]; dup {
			issues = append(issues, Issue{
				Field:   name,
				Message: fmt.Sprintf("duplicate field id %q", name),
			})
		}
		seen[name] = struct{}{}

		if !field.Type.Known() {
			issues = append(issues, Issue{
				Field:   name,
				Message: fmt.Sprintf("unknown field type %q", field.Type),
			})
		}
		if field.Type.HasOptions() && len(field.Options) == 0 {
			issues = append(issues, Issue{
				Field:   name,
				Message: fmt.Sprintf("%s field requires options", field.Type),
			})
		}

		issues = append(issues, lintValidation(name, field.Validation)...)
	}
	return issues
}

func lintValidation(field string, rules *Validation) []Issue {
	if rules == nil {
		return nil
	}

	var issues []Issue
	if rules.Pattern != "" {
		if _, err := regexp.Compile(rules.Pattern); err != nil {
			issues = append(issues, Issue{
				Field:   field,
				Message: fmt.Sprintf("invalid pattern: %v", err),
			})
		}
	}
	if rules.MinLength != nil && rules.MaxLength != nil && *rules.MinLength > *rules.MaxLength {
		issues = append(issues, Issue{
			Field:   field,
			Message: fmt.Sprintf("minLength %d exceeds maxLength %d", *rules.MinLength, *rules.MaxLength),
		})
	}
	if rules.Min != nil && rules.Max != nil && *rules.Min > *rules.Max {
		issues = append(issues, Issue{
			Field:   field,
			Message: fmt.Sprintf("min %v exceeds max %v", *rules.Min, *rules.Max),
		})
	}
	return issues
}
