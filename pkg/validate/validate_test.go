package validate

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-schemaform/pkg/schema"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestField_RequiredWinsOverEverything(t *testing.T) {
	field := schema.Field{
		ID:       "zip",
		Type:     schema.FieldTypeText,
		Required: true,
		Validation: &schema.Validation{
			Pattern:   "^[0-9]{5}$",
			MinLength: intPtr(5),
		},
	}
	if got := New().Field(field, ""); got != MessageRequired {
		t.Fatalf("want %q, got %q", MessageRequired, got)
	}
}

func TestField_PatternMessages(t *testing.T) {
	field := schema.Field{
		ID:   "zip",
		Type: schema.FieldTypeText,
		Validation: &schema.Validation{
			Pattern: "^[0-9]{5}$",
		},
	}

	v := New()
	if got := v.Field(field, "1234"); got != MessageInvalidFormat {
		t.Fatalf("default message: want %q, got %q", MessageInvalidFormat, got)
	}

	field.Validation.Message = "Five digits please"
	if got := v.Field(field, "1234"); got != "Five digits please" {
		t.Fatalf("custom message: want custom, got %q", got)
	}

	if got := v.Field(field, "12345"); got != "" {
		t.Fatalf("matching value should pass, got %q", got)
	}
}

func TestField_LengthRules(t *testing.T) {
	field := schema.Field{
		ID:   "name",
		Type: schema.FieldTypeText,
		Validation: &schema.Validation{
			MinLength: intPtr(3),
			MaxLength: intPtr(5),
		},
	}

	v := New()
	if got := v.Field(field, "ab"); got != "Minimum length is 3" {
		t.Fatalf("min: got %q", got)
	}
	if got := v.Field(field, "abcdef"); got != "Maximum length is 5" {
		t.Fatalf("max: got %q", got)
	}
	if got := v.Field(field, "abcd"); got != "" {
		t.Fatalf("in range: got %q", got)
	}
}

// Pattern and minLength both fail: the rules share one message slot and the
// length rule runs later, so its message is the one shown.
func TestField_SequentialOverwrite(t *testing.T) {
	field := schema.Field{
		ID:   "code",
		Type: schema.FieldTypeText,
		Validation: &schema.Validation{
			Pattern:   "^[0-9]+$",
			Message:   "Digits only",
			MinLength: intPtr(4),
		},
	}
	if got := New().Field(field, "ab"); got != "Minimum length is 4" {
		t.Fatalf("want minLength overwrite, got %q", got)
	}
}

func TestField_InvalidPatternNeverMatches(t *testing.T) {
	field := schema.Field{
		ID:   "x",
		Type: schema.FieldTypeText,
		Validation: &schema.Validation{
			Pattern: "[",
		},
	}
	if got := New().Field(field, "anything"); got != MessageInvalidFormat {
		t.Fatalf("want %q, got %q", MessageInvalidFormat, got)
	}
}

func TestField_NumericBoundsGap(t *testing.T) {
	field := schema.Field{
		ID:   "age",
		Type: schema.FieldTypeNumber,
		Validation: &schema.Validation{
			Min: floatPtr(18),
			Max: floatPtr(65),
		},
	}

	// Default reproduces the legacy gap: bounds declared but unenforced.
	if got := New().Field(field, "12"); got != "" {
		t.Fatalf("bounds should be unenforced by default, got %q", got)
	}

	v := New(WithNumericBounds())
	if got := v.Field(field, "12"); got != "Minimum value is 18" {
		t.Fatalf("min bound: got %q", got)
	}
	if got := v.Field(field, "90"); got != "Maximum value is 65" {
		t.Fatalf("max bound: got %q", got)
	}
	if got := v.Field(field, "40"); got != "" {
		t.Fatalf("in range: got %q", got)
	}
}

func TestForm(t *testing.T) {
	s := &schema.FormSchema{
		Title: "T",
		Fields: []schema.Field{
			{ID: "n", Type: schema.FieldTypeText, Label: "Name", Required: true},
			{ID: "zip", Type: schema.FieldTypeText, Validation: &schema.Validation{Pattern: "^[0-9]{5}$"}},
			{ID: "ok", Type: schema.FieldTypeText},
		},
	}

	got := New().Form(s, map[string]string{"zip": "1234", "ok": "fine"})
	want := map[string]string{
		"n":   MessageRequired,
		"zip": MessageInvalidFormat,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}

	if got := New().Form(s, map[string]string{"n": "Alice", "zip": "12345"}); got != nil {
		t.Fatalf("expected clean form, got %v", got)
	}
}
