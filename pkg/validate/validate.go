package validate

import (
	"fmt"
	"regexp"
	"strconv"
	"sync"

	"github.com/goliatone/go-schemaform/pkg/schema"
)

// Canonical messages for the built-in rules. Pattern failures prefer the
// schema-supplied message when one is declared.
const (
	MessageRequired      = "This field is required"
	MessageInvalidFormat = "Invalid format"
)

// Option configures a Validator.
type Option func(*Validator)

// WithNumericBounds enforces the declared min/max constraints on number
// fields. The default leaves them unenforced: the schema shape carries the
// bounds but the legacy validator never checked them, and callers relying on
// that behavior get it unless they opt in.
func WithNumericBounds() Option {
	return func(v *Validator) {
		v.numericBounds = true
	}
}

// Validator evaluates field values against their declared constraints.
// Compiled patterns are cached across calls; a Validator is safe for
// concurrent use.
type Validator struct {
	numericBounds bool

	mu       sync.RWMutex
	patterns map[string]*regexp.Regexp
}

// New constructs a Validator applying any provided options.
func New(options ...Option) *Validator {
	v := &Validator{
		patterns: make(map[string]*regexp.Regexp),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(v)
	}
	return v
}

// Field evaluates a single field against value and returns one error message,
// or "" when the value is acceptable.
//
// Rules run in a fixed order and write to a single message slot, so the last
// failing rule wins: required, then pattern, then minLength, then maxLength
// (then numeric bounds when enabled). The required rule is terminal; the
// remaining rules are evaluated even for empty optional values, matching the
// form's live-validation behavior for constrained-but-optional fields.
func (v *Validator) Field(field schema.Field, value string) string {
	if field.Required && value == "" {
		return MessageRequired
	}

	rules := field.Validation
	if rules == nil {
		return ""
	}

	message := ""
	if rules.Pattern != "" && !v.matches(rules.Pattern, value) {
		if rules.Message != "" {
			message = rules.Message
		} else {
			message = MessageInvalidFormat
		}
	}
	if rules.MinLength != nil && len(value) < *rules.MinLength {
		message = fmt.Sprintf("Minimum length is %d", *rules.MinLength)
	}
	if rules.MaxLength != nil && len(value) > *rules.MaxLength {
		message = fmt.Sprintf("Maximum length is %d", *rules.MaxLength)
	}

	if v.numericBounds && field.Type == schema.FieldTypeNumber && value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			if rules.Min != nil && parsed < *rules.Min {
				message = fmt.Sprintf("Minimum value is %v", *rules.Min)
			}
			if rules.Max != nil && parsed > *rules.Max {
				message = fmt.Sprintf("Maximum value is %v", *rules.Max)
			}
		}
	}
	return message
}

// Form validates every field in the schema against values, returning a map
// of field id to error message for the fields that failed. Fields absent
// from values validate against the empty string, so untouched required
// fields still report.
func (v *Validator) Form(s *schema.FormSchema, values map[string]string) map[string]string {
	if s == nil {
		return nil
	}
	errs := make(map[string]string)
	for _, field := range s.Fields {
		if message := v.Field(field, values[field.ID]); message != "" {
			errs[field.ID] = message
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// matches reports whether value satisfies the pattern. An uncompilable
// pattern never matches, so the field surfaces its format message instead of
// panicking mid-render.
func (v *Validator) matches(pattern, value string) bool {
	v.mu.RLock()
	re, ok := v.patterns[pattern]
	v.mu.RUnlock()

	if !ok {
		compiled, err := regexp.Compile(pattern)
		if err != nil {
			compiled = nil
		}
		v.mu.Lock()
		v.patterns[pattern] = compiled
		v.mu.Unlock()
		re = compiled
	}

	if re == nil {
		return false
	}
	return re.MatchString(value)
}
