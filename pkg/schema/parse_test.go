package schema

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse_EmptyInputIsIdle(t *testing.T) {
	for _, raw := range []string{"", "   ", "\n\t  \n"} {
		parsed, err := Parse(raw)
		if parsed != nil {
			t.Fatalf("expected no schema for %q, got %+v", raw, parsed)
		}
		if err != nil {
			t.Fatalf("expected no error for %q, got %v", raw, err)
		}
	}
}

func TestParse_InvalidJSON(t *testing.T) {
	parsed, err := Parse("{not json")
	if parsed != nil {
		t.Fatalf("expected nil schema, got %+v", parsed)
	}
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %T: %v", err, err)
	}
	if parseErr.Unwrap() == nil {
		t.Fatal("expected underlying decode error")
	}
}

func TestParse_ShapeFailures(t *testing.T) {
	cases := map[string]string{
		"missing title":    `{"fields": []}`,
		"empty title":      `{"title": "  ", "fields": []}`,
		"title not string": `{"title": 7, "fields": []}`,
		"missing fields":   `{"title": "Contact"}`,
		"fields not array": `{"title": "Contact", "fields": {"id": "x"}}`,
		"field bad type":   `{"title": "Contact", "fields": [{"id": 42}]}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			parsed, err := Parse(raw)
			if parsed != nil {
				t.Fatalf("expected nil schema, got %+v", parsed)
			}
			if !errors.Is(err, ErrInvalidShape) {
				t.Fatalf("expected ErrInvalidShape, got %v", err)
			}
			if err.Error() != ShapeErrorMessage {
				t.Fatalf("unexpected message: %q", err.Error())
			}
		})
	}
}

func TestParse_ValidSchema(t *testing.T) {
	raw := `{
		"title": "Contact",
		"description": "Reach out",
		"fields": [
			{"id": "name", "type": "text", "label": "Name", "required": true, "placeholder": "Jane"},
			{"id": "topic", "type": "select", "label": "Topic", "options": [
				{"value": "sales", "label": "Sales"},
				{"value": "support", "label": "Support"}
			]},
			{"id": "zip", "type": "text", "label": "ZIP", "validation": {
				"pattern": "^[0-9]{5}$", "message": "Five digits", "minLength": 5, "maxLength": 5
			}}
		]
	}`

	parsed, err := Parse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	minLen, maxLen := 5, 5
	want := &FormSchema{
		Title:       "Contact",
		Description: "Reach out",
		Fields: []Field{
			{ID: "name", Type: FieldTypeText, Label: "Name", Required: true, Placeholder: "Jane"},
			{ID: "topic", Type: FieldTypeSelect, Label: "Topic", Options: []Option{
				{Value: "sales", Label: "Sales"},
				{Value: "support", Label: "Support"},
			}},
			{ID: "zip", Type: FieldTypeText, Label: "ZIP", Validation: &Validation{
				Pattern: "^[0-9]{5}$", Message: "Five digits", MinLength: &minLen, MaxLength: &maxLen,
			}},
		},
	}
	if diff := cmp.Diff(want, parsed); diff != "" {
		t.Fatalf("schema mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_FieldOrderPreserved(t *testing.T) {
	raw := `{"title": "T", "fields": [
		{"id": "c", "type": "text", "label": "C"},
		{"id": "a", "type": "text", "label": "A"},
		{"id": "b", "type": "text", "label": "B"}
	]}`
	parsed, err := Parse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var got []string
	for _, field := range parsed.Fields {
		got = append(got, field.ID)
	}
	if diff := cmp.Diff([]string{"c", "a", "b"}, got); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestParseYAML(t *testing.T) {
	raw := `
title: Survey
fields:
  - id: age
    type: number
    label: Age
    validation:
      min: 0
      max: 130
`
	parsed, err := ParseYAML(raw)
	if err != nil {
		t.Fatalf("parse yaml: %v", err)
	}
	if parsed.Title != "Survey" {
		t.Fatalf("unexpected title %q", parsed.Title)
	}
	field, ok := parsed.FieldByID("age")
	if !ok {
		t.Fatal("age field missing")
	}
	if field.Validation == nil || field.Validation.Min == nil || *field.Validation.Min != 0 {
		t.Fatalf("numeric bounds not decoded: %+v", field.Validation)
	}

	if _, err := ParseYAML("title: T"); !errors.Is(err, ErrInvalidShape) {
		t.Fatalf("expected shape error for fieldless yaml, got %v", err)
	}
}

func TestLint(t *testing.T) {
	parsed := &FormSchema{
		Title: "T",
		Fields: []Field{
			{ID: "a", Type: FieldTypeText, Label: "A"},
			{ID: "a", Type: FieldTypeSelect, Label: "Dup"},
			{ID: "p", Type: "password", Label: "P"},
			{ID: "re", Type: FieldTypeText, Validation: &Validation{Pattern: "["}},
		},
	}
	issues := Lint(parsed)
	if len(issues) != 4 {
		t.Fatalf("expected 4 issues, got %d: %+v", len(issues), issues)
	}
}

func TestSanitizeDescription(t *testing.T) {
	in := `Reach <strong>out</strong> <script>alert(1)</script>`
	got := SanitizeDescription(in)
	want := "Reach <strong>out</strong>"
	if got != want {
		t.Fatalf("sanitize: want %q, got %q", want, got)
	}
}
